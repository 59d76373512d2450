// File: services/registration/service.go
package registration

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/sripavantejb/GuideXpert-Backend/models"
	"github.com/sripavantejb/GuideXpert-Backend/services/slots"
	"github.com/sripavantejb/GuideXpert-Backend/utils"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SaveStep1 creates the submission or re-enters an existing one. Returning
// to step 1 never drops data recorded by later steps.
func (s *DefaultService) SaveStep1(ctx context.Context, req Step1Request) (*models.Submission, error) {
	name := strings.TrimSpace(req.FullName)
	occupation := strings.TrimSpace(req.Occupation)
	if len(name) < 2 {
		return nil, utils.NewValidationError("Please provide your full name.")
	}
	if occupation == "" {
		return nil, utils.NewValidationError("Please provide your occupation.")
	}
	if !utils.IsValidPhone(req.Phone) {
		return nil, utils.NewValidationError("Please provide a valid 10-digit phone number.")
	}

	data := models.Step1Data{
		FullName:         name,
		WhatsappNumber:   req.Phone,
		Occupation:       occupation,
		Step1CompletedAt: s.now(),
	}
	sub, err := s.Subs.UpsertStep1(ctx, req.Phone, data, req.Attribution)
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("step 1 saved",
		zap.String("phone", utils.MaskPhone(sub.Phone)),
		zap.Int("currentStep", sub.CurrentStep))
	s.mirror(sub)
	return sub, nil
}

// SaveStep2 records the OTP-verified gate. The phone must hold a live
// verification grace from a recent successful OTP check.
func (s *DefaultService) SaveStep2(ctx context.Context, phone string) (*models.Submission, error) {
	if !utils.IsValidPhone(phone) {
		return nil, utils.NewValidationError("Please provide a valid 10-digit phone number.")
	}
	if err := s.requireVerified(ctx, phone); err != nil {
		return nil, err
	}

	data := models.Step2Data{OTPVerified: true, Step2CompletedAt: s.now()}
	sub, err := s.Subs.SetStep2(ctx, phone, data)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewNotFoundError("No submission found for this phone. Complete step 1 first.")
		}
		return nil, err
	}

	utils.GetLogger().Info("step 2 saved", zap.String("phone", utils.MaskPhone(phone)))
	s.mirror(sub)
	return sub, nil
}

// SaveStep3 books a demo slot. The slot must parse, must currently be
// bookable for its next occurrence, and the phone must still hold its
// verification grace. On success the booking notifications are dispatched
// and the grace is consumed.
func (s *DefaultService) SaveStep3(ctx context.Context, phone, slotID, slotDateISO string) (*models.Submission, models.BookingDispatch, error) {
	var dispatch models.BookingDispatch

	if !utils.IsValidPhone(phone) {
		return nil, dispatch, utils.NewValidationError("Please provide a valid 10-digit phone number.")
	}
	sid, err := slots.ParseSlotID(slotID)
	if err != nil {
		return nil, dispatch, utils.NewValidationError("Invalid slot selection.")
	}
	if err := s.requireVerified(ctx, phone); err != nil {
		return nil, dispatch, err
	}

	slotDate, err := s.resolveSlotDate(sid, slotDateISO)
	if err != nil {
		return nil, dispatch, err
	}
	open, err := s.Slots.IsSlotOpen(ctx, sid.Raw, slotDate)
	if err != nil {
		return nil, dispatch, err
	}
	if !open {
		return nil, dispatch, utils.NewConflictError("This slot is no longer available. Please pick another.")
	}

	data := models.Step3Data{
		SelectedSlot:     sid.Raw,
		SlotDate:         slotDate,
		Step3CompletedAt: s.now(),
	}
	sub, err := s.Subs.SetStep3(ctx, phone, data, uuid.NewString())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, dispatch, utils.NewNotFoundError("No submission found for this phone. Complete step 1 first.")
		}
		return nil, dispatch, err
	}

	dispatch = s.Scheduler.DispatchAtBooking(ctx, sub)

	// The grace is single-use per booking; clearing it is best-effort.
	if err := s.Verified.ClearVerified(ctx, phone); err != nil {
		utils.GetLogger().Warn("failed to clear verification grace",
			zap.String("phone", utils.MaskPhone(phone)), zap.Error(err))
	}

	utils.GetLogger().Info("slot booked",
		zap.String("phone", utils.MaskPhone(phone)),
		zap.String("slotId", sid.Raw),
		zap.Time("slotDate", slotDate),
		zap.String("bookingRef", sub.BookingRef))
	s.mirror(sub)
	return sub, dispatch, nil
}

// SavePostRegistration records the optional survey. Only registered
// submissions may complete it.
func (s *DefaultService) SavePostRegistration(ctx context.Context, req PostRegistrationRequest) (*models.Submission, error) {
	if !utils.IsValidPhone(req.Phone) {
		return nil, utils.NewValidationError("Please provide a valid 10-digit phone number.")
	}
	if req.InterestLevel < 1 || req.InterestLevel > 5 {
		return nil, utils.NewValidationError("Interest level must be between 1 and 5.")
	}
	email := strings.TrimSpace(req.Email)
	if email != "" && !emailPattern.MatchString(email) {
		return nil, utils.NewValidationError("Please provide a valid email address.")
	}

	existing, err := s.Subs.FindByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewNotFoundError("No submission found for this phone.")
		}
		return nil, err
	}
	if !existing.IsRegistered {
		return nil, utils.NewUnauthorizedError("Complete your slot booking before the survey.")
	}

	data := models.PostRegistrationData{
		InterestLevel: req.InterestLevel,
		Email:         email,
		CompletedAt:   s.now(),
	}
	sub, err := s.Subs.SetPostRegistration(ctx, req.Phone, data)
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("post-registration saved", zap.String("phone", utils.MaskPhone(req.Phone)))
	s.mirror(sub)
	return sub, nil
}

// Status returns the submission for a phone, for funnel resumption.
func (s *DefaultService) Status(ctx context.Context, phone string) (*models.Submission, error) {
	if !utils.IsValidPhone(phone) {
		return nil, utils.NewValidationError("Please provide a valid 10-digit phone number.")
	}
	sub, err := s.Subs.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewNotFoundError("No submission found for this phone.")
		}
		return nil, err
	}
	return sub, nil
}

// resolveSlotDate pins the booked occurrence. A client-supplied instant must
// land exactly on the slot's IST weekday and wall-clock time and lie in the
// future; without one the next occurrence is used.
func (s *DefaultService) resolveSlotDate(sid slots.SlotID, slotDateISO string) (time.Time, error) {
	if slotDateISO == "" {
		return utils.NextSlotOccurrence(s.now(), sid.Weekday, sid.Hour, sid.Minute), nil
	}

	t, err := time.Parse(time.RFC3339, slotDateISO)
	if err != nil {
		return time.Time{}, utils.NewValidationError("slotDate must be a valid ISO timestamp.")
	}
	parts := utils.ISTPartsOf(t)
	if parts.Weekday != sid.Weekday || parts.Hour != sid.Hour || parts.Minute != sid.Minute {
		return time.Time{}, utils.NewValidationError("slotDate does not match the selected slot.")
	}
	if !t.After(s.now()) {
		return time.Time{}, utils.NewValidationError("slotDate is already in the past.")
	}
	return t.UTC(), nil
}

func (s *DefaultService) requireVerified(ctx context.Context, phone string) error {
	ok, err := s.Verified.IsVerified(ctx, phone)
	if err != nil {
		return err
	}
	if !ok {
		return utils.NewUnauthorizedError("Phone number is not verified. Please verify the OTP first.")
	}
	return nil
}

// mirror pushes the submission to the spreadsheet in the background. Mirror
// failures are logged and never surface to the caller.
func (s *DefaultService) mirror(sub *models.Submission) {
	if s.Mirror == nil {
		return
	}
	snapshot := *sub
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()

		row, err := s.Mirror.Record(ctx, &snapshot)
		if err != nil {
			utils.GetLogger().Warn("sheet mirror failed",
				zap.String("phone", utils.MaskPhone(snapshot.Phone)), zap.Error(err))
			return
		}
		if snapshot.SheetRow == 0 && row > 0 {
			if err := s.Subs.SetSheetRow(ctx, snapshot.Phone, row); err != nil {
				utils.GetLogger().Warn("failed to record sheet row",
					zap.String("phone", utils.MaskPhone(snapshot.Phone)), zap.Error(err))
			}
		}
	}()
}
