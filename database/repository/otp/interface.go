// File: database/repository/otp/interface.go
package otpRepo

import (
	"context"
	"time"

	"github.com/sripavantejb/GuideXpert-Backend/database"
	"github.com/sripavantejb/GuideXpert-Backend/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// OtpRepository stores at most one live OTP record per phone, plus the
// issuance history needed for rate limiting.
type OtpRepository interface {
	// Latest returns the most recent record for the phone, consumed or not,
	// or mongo.ErrNoDocuments. The caller checks Consumed; returning spent
	// records keeps the resend cooldown anchored to the real last issuance.
	Latest(ctx context.Context, phone string) (*models.OtpRecord, error)
	// CountSince counts OTPs issued to the phone since the given instant,
	// including consumed ones.
	CountSince(ctx context.Context, phone string, since time.Time) (int64, error)
	// Insert stores a new issuance record. Prior records are kept so the
	// rolling rate window can count them; Latest supersedes them for
	// verification.
	Insert(ctx context.Context, rec models.OtpRecord) error
	// Retire marks every record for the phone consumed. The records stay
	// until the TTL reaps them so the cooldown and rate window hold.
	Retire(ctx context.Context, phone string) error
	// IncrementAttempts bumps the attempt counter on the latest record and
	// returns the new value.
	IncrementAttempts(ctx context.Context, phone string) (int, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoOtpRepo struct {
	coll *mongo.Collection
}

// NewMongoOtpRepo constructs a MongoDB OtpRepository.
func NewMongoOtpRepo() OtpRepository {
	return &mongoOtpRepo{
		coll: database.DB().Collection("otpverifications"),
	}
}
