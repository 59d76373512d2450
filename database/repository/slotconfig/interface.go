// File: database/repository/slotconfig/interface.go
package slotconfigRepo

import (
	"context"

	"github.com/sripavantejb/GuideXpert-Backend/database"

	"go.mongodb.org/mongo-driver/mongo"
)

// DateSlot identifies one (IST calendar date, slot) override key.
type DateSlot struct {
	Date   string
	SlotID string
}

// SlotConfigRepository resolves the three-layer slot enablement:
// SlotDateOverride beats SlotConfig beats the default (enabled).
type SlotConfigRepository interface {
	// GetConfigs returns the enabled state for each requested slot that has
	// an explicit config; absent slots default to enabled at the caller.
	GetConfigs(ctx context.Context, slotIDs []string) (map[string]bool, error)
	SetEnabled(ctx context.Context, slotID string, enabled bool) error
	// GetOverrides returns the enabled state for each (date, slot) pair that
	// has an explicit override.
	GetOverrides(ctx context.Context, keys []DateSlot) (map[DateSlot]bool, error)
	SetOverride(ctx context.Context, key DateSlot, enabled bool) error
	EnsureIndexes(ctx context.Context) error
}

type mongoSlotConfigRepo struct {
	configColl   *mongo.Collection
	overrideColl *mongo.Collection
}

// NewMongoSlotConfigRepo constructs a MongoDB SlotConfigRepository.
func NewMongoSlotConfigRepo() SlotConfigRepository {
	db := database.DB()
	return &mongoSlotConfigRepo{
		configColl:   db.Collection("slotconfigs"),
		overrideColl: db.Collection("slotdateoverrides"),
	}
}
