// File: database/repository/submission/indexes.go
package submissionRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the submissions collection.
func (r *mongoSubmissionRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Unique phone: one submission per registrant.
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_phone"),
		},
		// Sweep query pattern: registered + slot window per flag.
		{
			Keys: bson.D{
				{Key: "isRegistered", Value: 1},
				{Key: "step3Data.slotDate", Value: 1},
			},
			Options: options.Index().SetName("registered_slotdate_idx"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("created_at_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create submission indexes: %w", err)
	}
	return nil
}
