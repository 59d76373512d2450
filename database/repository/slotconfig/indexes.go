// File: database/repository/slotconfig/indexes.go
package slotconfigRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique keys on both collections.
func (r *mongoSlotConfigRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.configColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slotId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_slot_id"),
	})
	if err != nil {
		return fmt.Errorf("failed to create slotconfig index: %w", err)
	}

	_, err = r.overrideColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}, {Key: "slotId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_date_slot"),
	})
	if err != nil {
		return fmt.Errorf("failed to create slotdateoverride index: %w", err)
	}
	return nil
}
