// File: services/notify/scheduler.go
package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	submissionRepo "github.com/sripavantejb/GuideXpert-Backend/database/repository/submission"
	"github.com/sripavantejb/GuideXpert-Backend/models"
	"github.com/sripavantejb/GuideXpert-Backend/utils"
)

// Scheduler delivers the slot confirmation and the three time-triggered
// notifications, through two cooperating paths: the inline fast path at
// booking time and the periodic sweep. Both gate on the same persisted
// per-type flag, and the flag is only set after a confirmed send, so each
// notification reaches a submission at most once.
type Scheduler interface {
	DispatchAtBooking(ctx context.Context, sub *models.Submission) models.BookingDispatch
	Sweep(ctx context.Context) (models.SweepStats, error)
}

// DefaultScheduler implements Scheduler.
type DefaultScheduler struct {
	Subs        submissionRepo.SubmissionRepository
	Gateway     Gateway
	Lock        SweepLock
	MeetingLink string

	// Now is overridable in tests; nil means time.Now.
	Now func() time.Time
}

func (s *DefaultScheduler) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func kindTemplate(kind models.NotificationKind) Template {
	switch kind {
	case models.NotificationReminder4h:
		return TemplateReminder4h
	case models.NotificationMeetLink1h:
		return TemplateMeetLink
	case models.NotificationReminder30m:
		return TemplateReminder30m
	}
	return ""
}

// kindVars extends the shared variables with the meeting link for the kinds
// whose template carries it.
func (s *DefaultScheduler) kindVars(kind models.NotificationKind, base map[string]string) map[string]string {
	if kind != models.NotificationMeetLink1h && kind != models.NotificationReminder30m {
		return base
	}
	vars := make(map[string]string, len(base)+1)
	for k, v := range base {
		vars[k] = v
	}
	vars["var"] = s.MeetingLink
	return vars
}

// DispatchAtBooking runs the fast path as part of the step-3 transition: the
// confirmation always, plus every notification whose threshold has already
// elapsed for the booked slot. Send failures leave the flag unset so the
// sweep retries; they never fail the booking.
func (s *DefaultScheduler) DispatchAtBooking(ctx context.Context, sub *models.Submission) models.BookingDispatch {
	logger := utils.GetLogger()
	now := s.now()
	until := sub.SlotDate().Sub(now)

	var out models.BookingDispatch

	out.Confirmation.Attempted = true
	if err := s.Gateway.Send(ctx, TemplateConfirmation, sub.Phone, smsVars(sub)); err != nil {
		out.Confirmation.Error = err.Error()
		logger.Warn("booking confirmation send failed",
			zap.String("phone", utils.MaskPhone(sub.Phone)), zap.Error(err))
	} else {
		out.Confirmation.Sent = true
	}

	for _, kind := range models.AllNotificationKinds {
		outcome := s.fastPathSend(ctx, sub, kind, until)
		switch kind {
		case models.NotificationReminder4h:
			out.Reminder4h = outcome
		case models.NotificationMeetLink1h:
			out.MeetLink1h = outcome
		case models.NotificationReminder30m:
			out.Reminder30Min = outcome
		}
	}
	return out
}

func (s *DefaultScheduler) fastPathSend(ctx context.Context, sub *models.Submission, kind models.NotificationKind, until time.Duration) models.DispatchOutcome {
	var outcome models.DispatchOutcome
	if until <= 0 || until > kind.Threshold() {
		return outcome
	}

	outcome.Attempted = true
	vars := s.kindVars(kind, smsVars(sub))
	if err := s.Gateway.Send(ctx, kindTemplate(kind), sub.Phone, vars); err != nil {
		outcome.Error = err.Error()
		utils.GetLogger().Warn("fast-path notification send failed",
			zap.String("kind", string(kind)),
			zap.String("phone", utils.MaskPhone(sub.Phone)),
			zap.Error(err))
		return outcome
	}

	if _, err := s.Subs.MarkNotificationSent(ctx, kind, []string{sub.Phone}, s.now()); err != nil {
		// The SMS went out but the flag write failed; the sweep may resend
		// once. At-least-once is the accepted trade-off.
		utils.GetLogger().Error("failed to mark fast-path notification sent",
			zap.String("kind", string(kind)),
			zap.String("phone", utils.MaskPhone(sub.Phone)),
			zap.Error(err))
	}
	outcome.Sent = true
	return outcome
}
