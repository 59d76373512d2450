// File: services/registration/interface.go
package registration

import (
	"context"
	"time"

	submissionRepo "github.com/sripavantejb/GuideXpert-Backend/database/repository/submission"
	"github.com/sripavantejb/GuideXpert-Backend/models"
	"github.com/sripavantejb/GuideXpert-Backend/services/notify"
	"github.com/sripavantejb/GuideXpert-Backend/services/otp"
	"github.com/sripavantejb/GuideXpert-Backend/services/sheets"
	"github.com/sripavantejb/GuideXpert-Backend/services/slots"
)

// Step1Request carries the identity details of the first form step. Phone is
// already normalized to 10 digits by the caller.
type Step1Request struct {
	FullName    string
	Phone       string
	Occupation  string
	Attribution *models.Attribution
}

// PostRegistrationRequest carries the optional step-4 survey.
type PostRegistrationRequest struct {
	Phone         string
	InterestLevel int
	Email         string
}

// Service is the registration state machine. It drives a submission through
// the funnel (identity -> phone verification -> slot booking -> survey),
// enforcing the ordering gates along the way.
type Service interface {
	SaveStep1(ctx context.Context, req Step1Request) (*models.Submission, error)
	SaveStep2(ctx context.Context, phone string) (*models.Submission, error)
	// SaveStep3 books a slot. slotDateISO optionally pins the exact
	// occurrence the client saw; empty means the next occurrence.
	SaveStep3(ctx context.Context, phone, slotID, slotDateISO string) (*models.Submission, models.BookingDispatch, error)
	SavePostRegistration(ctx context.Context, req PostRegistrationRequest) (*models.Submission, error)
	Status(ctx context.Context, phone string) (*models.Submission, error)
}

// DefaultService wires the state machine to its stores and side effects.
type DefaultService struct {
	Subs      submissionRepo.SubmissionRepository
	Verified  otp.VerifiedStore
	Slots     slots.Resolver
	Scheduler notify.Scheduler
	// Mirror is optional; nil disables spreadsheet mirroring entirely.
	Mirror sheets.Mirror

	Now func() time.Time
}

func (s *DefaultService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
