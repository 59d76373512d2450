// File: database/repository/submission/interface.go
package submissionRepo

import (
	"context"
	"time"

	"github.com/sripavantejb/GuideXpert-Backend/database"
	"github.com/sripavantejb/GuideXpert-Backend/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// SubmissionRepository is the durable store for form submissions, keyed by
// normalized 10-digit phone.
type SubmissionRepository interface {
	UpsertStep1(ctx context.Context, phone string, data models.Step1Data, attr *models.Attribution) (*models.Submission, error)
	SetStep2(ctx context.Context, phone string, data models.Step2Data) (*models.Submission, error)
	SetStep3(ctx context.Context, phone string, data models.Step3Data, bookingRef string) (*models.Submission, error)
	SetPostRegistration(ctx context.Context, phone string, data models.PostRegistrationData) (*models.Submission, error)
	FindByPhone(ctx context.Context, phone string) (*models.Submission, error)

	// DueForNotification lists registered submissions whose slot falls within
	// [from, to] and whose flag for kind is not yet set.
	DueForNotification(ctx context.Context, kind models.NotificationKind, from, to time.Time) ([]models.Submission, error)
	// MarkNotificationSent conditionally flips the flag for kind on the given
	// phones. The filter re-checks that the flag is still unset, so a racing
	// sweep cannot double-mark (and the caller can detect lost races from the
	// modified count).
	MarkNotificationSent(ctx context.Context, kind models.NotificationKind, phones []string, at time.Time) (int64, error)
	// ResetNotificationFlag clears a flag so the next sweep resends that SMS.
	ResetNotificationFlag(ctx context.Context, kind models.NotificationKind, phone string) error

	SetSheetRow(ctx context.Context, phone string, row int64) error
	CountBookingsBySlot(ctx context.Context, from, to time.Time) ([]SlotBookingCount, error)
	CountRegistrationsByInfluencer(ctx context.Context, from, to time.Time, sortLatest bool) ([]InfluencerCount, error)
	RegistrationTrendByDay(ctx context.Context, from, to time.Time) ([]DailyCount, error)
	EnsureIndexes(ctx context.Context) error
}

// SlotBookingCount is one (IST day, slot) bucket of registered bookings.
type SlotBookingCount struct {
	Date   string `bson:"date" json:"date"`
	SlotID string `bson:"slotId" json:"slotId"`
	Count  int64  `bson:"count" json:"count"`
}

// InfluencerCount is one influencer's registration bucket, grouped by the
// utm_content tag their campaign link carries.
type InfluencerCount struct {
	InfluencerName     string     `bson:"influencerName" json:"influencerName"`
	Platform           string     `bson:"platform" json:"platform"`
	TotalRegistrations int64      `bson:"totalRegistrations" json:"totalRegistrations"`
	LatestRegistration *time.Time `bson:"latestRegistration" json:"latestRegistration,omitempty"`
}

// DailyCount is one day's attributed-registration total.
type DailyCount struct {
	Date  string `bson:"date" json:"date"`
	Count int64  `bson:"count" json:"count"`
}

type mongoSubmissionRepo struct {
	coll *mongo.Collection
}

// NewMongoSubmissionRepo constructs a MongoDB SubmissionRepository.
func NewMongoSubmissionRepo() SubmissionRepository {
	return &mongoSubmissionRepo{
		coll: database.DB().Collection("formsubmissions"),
	}
}
