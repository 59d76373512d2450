// File: database/repository/otp/indexes.go
package otpRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ttlGraceSeconds keeps expired records around for another 10 minutes so
// CountSince can still see the full 15-minute issuance window (codes expire
// after 5). Verify treats expiresAt as authoritative either way.
const ttlGraceSeconds = 600

// EnsureIndexes creates the phone lookup and TTL indexes. The TTL index on
// expiresAt guarantees stale OTP records are deleted even if never swept.
func (r *mongoOtpRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "phoneNumber", Value: 1},
				{Key: "createdAt", Value: -1},
			},
			Options: options.Index().SetName("phone_created_idx"),
		},
		{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(ttlGraceSeconds).SetName("expires_ttl"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create otp indexes: %w", err)
	}
	return nil
}
