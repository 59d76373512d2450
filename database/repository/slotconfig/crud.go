// File: database/repository/slotconfig/crud.go
package slotconfigRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sripavantejb/GuideXpert-Backend/models"
)

func (r *mongoSlotConfigRepo) GetConfigs(ctx context.Context, slotIDs []string) (map[string]bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	out := make(map[string]bool, len(slotIDs))
	if len(slotIDs) == 0 {
		return out, nil
	}

	cursor, err := r.configColl.Find(ctx, bson.M{"slotId": bson.M{"$in": slotIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var configs []models.SlotConfig
	if err := cursor.All(ctx, &configs); err != nil {
		return nil, err
	}
	for _, c := range configs {
		out[c.SlotID] = c.Enabled
	}
	return out, nil
}

func (r *mongoSlotConfigRepo) SetEnabled(ctx context.Context, slotID string, enabled bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"slotId":    slotID,
		"enabled":   enabled,
		"updatedAt": time.Now(),
	}}
	opts := options.Update().SetUpsert(true)
	_, err := r.configColl.UpdateOne(ctx, bson.M{"slotId": slotID}, update, opts)
	return err
}

func (r *mongoSlotConfigRepo) GetOverrides(ctx context.Context, keys []DateSlot) (map[DateSlot]bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	out := make(map[DateSlot]bool, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	or := make([]bson.M, len(keys))
	for i, k := range keys {
		or[i] = bson.M{"date": k.Date, "slotId": k.SlotID}
	}
	cursor, err := r.overrideColl.Find(ctx, bson.M{"$or": or})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var overrides []models.SlotDateOverride
	if err := cursor.All(ctx, &overrides); err != nil {
		return nil, err
	}
	for _, o := range overrides {
		out[DateSlot{Date: o.Date, SlotID: o.SlotID}] = o.Enabled
	}
	return out, nil
}

func (r *mongoSlotConfigRepo) SetOverride(ctx context.Context, key DateSlot, enabled bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"date":      key.Date,
		"slotId":    key.SlotID,
		"enabled":   enabled,
		"updatedAt": time.Now(),
	}}
	opts := options.Update().SetUpsert(true)
	_, err := r.overrideColl.UpdateOne(ctx, bson.M{"date": key.Date, "slotId": key.SlotID}, update, opts)
	return err
}
