package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	submissionRepo "github.com/sripavantejb/GuideXpert-Backend/database/repository/submission"
	"github.com/sripavantejb/GuideXpert-Backend/models"
)

type sentMsg struct {
	Template Template
	Phones   []string
	Vars     map[string]string
}

type recordingGateway struct {
	sent []sentMsg
	err  error
}

func (g *recordingGateway) Send(ctx context.Context, tpl Template, phone string, vars map[string]string) error {
	if g.err != nil {
		return g.err
	}
	g.sent = append(g.sent, sentMsg{Template: tpl, Phones: []string{phone}, Vars: vars})
	return nil
}

func (g *recordingGateway) SendBulk(ctx context.Context, tpl Template, phones []string, vars map[string]string) error {
	if g.err != nil {
		return g.err
	}
	g.sent = append(g.sent, sentMsg{Template: tpl, Phones: phones, Vars: vars})
	return nil
}

// memSubs implements just enough of the submission repository for the
// scheduler: an in-memory set of registered submissions with flag state.
type memSubs struct {
	subs    map[string]*models.Submission
	markErr error
}

func newMemSubs(subs ...*models.Submission) *memSubs {
	m := &memSubs{subs: make(map[string]*models.Submission)}
	for _, s := range subs {
		m.subs[s.Phone] = s
	}
	return m
}

func (m *memSubs) flag(sub *models.Submission, kind models.NotificationKind) *bool {
	switch kind {
	case models.NotificationReminder4h:
		return &sub.ReminderSent
	case models.NotificationMeetLink1h:
		return &sub.MeetLinkSent
	default:
		return &sub.Reminder30MinSent
	}
}

func (m *memSubs) DueForNotification(ctx context.Context, kind models.NotificationKind, from, to time.Time) ([]models.Submission, error) {
	var out []models.Submission
	for _, sub := range m.subs {
		if !sub.IsRegistered || *m.flag(sub, kind) {
			continue
		}
		slot := sub.SlotDate()
		if slot.Before(from) || slot.After(to) {
			continue
		}
		out = append(out, *sub)
	}
	return out, nil
}

func (m *memSubs) MarkNotificationSent(ctx context.Context, kind models.NotificationKind, phones []string, at time.Time) (int64, error) {
	if m.markErr != nil {
		return 0, m.markErr
	}
	var n int64
	for _, phone := range phones {
		sub, ok := m.subs[phone]
		if !ok {
			continue
		}
		f := m.flag(sub, kind)
		if !*f {
			*f = true
			n++
		}
	}
	return n, nil
}

func (m *memSubs) ResetNotificationFlag(ctx context.Context, kind models.NotificationKind, phone string) error {
	if sub, ok := m.subs[phone]; ok {
		*m.flag(sub, kind) = false
	}
	return nil
}

func (m *memSubs) UpsertStep1(ctx context.Context, phone string, data models.Step1Data, attr *models.Attribution) (*models.Submission, error) {
	return nil, errors.New("not implemented")
}
func (m *memSubs) SetStep2(ctx context.Context, phone string, data models.Step2Data) (*models.Submission, error) {
	return nil, errors.New("not implemented")
}
func (m *memSubs) SetStep3(ctx context.Context, phone string, data models.Step3Data, bookingRef string) (*models.Submission, error) {
	return nil, errors.New("not implemented")
}
func (m *memSubs) SetPostRegistration(ctx context.Context, phone string, data models.PostRegistrationData) (*models.Submission, error) {
	return nil, errors.New("not implemented")
}
func (m *memSubs) FindByPhone(ctx context.Context, phone string) (*models.Submission, error) {
	return nil, errors.New("not implemented")
}
func (m *memSubs) SetSheetRow(ctx context.Context, phone string, row int64) error { return nil }
func (m *memSubs) CountBookingsBySlot(ctx context.Context, from, to time.Time) ([]submissionRepo.SlotBookingCount, error) {
	return nil, errors.New("not implemented")
}
func (m *memSubs) CountRegistrationsByInfluencer(ctx context.Context, from, to time.Time, sortLatest bool) ([]submissionRepo.InfluencerCount, error) {
	return nil, errors.New("not implemented")
}
func (m *memSubs) RegistrationTrendByDay(ctx context.Context, from, to time.Time) ([]submissionRepo.DailyCount, error) {
	return nil, errors.New("not implemented")
}
func (m *memSubs) EnsureIndexes(ctx context.Context) error { return nil }

type freeLock struct{ held bool }

func (l *freeLock) TryLock(ctx context.Context) (bool, func(), error) {
	if l.held {
		return false, nil, nil
	}
	l.held = true
	return true, func() { l.held = false }, nil
}

func bookedSub(phone string, slot time.Time) *models.Submission {
	return &models.Submission{
		Phone:        phone,
		FullName:     "Asha",
		SelectedSlot: "FRIDAY_7PM",
		IsRegistered: true,
		Step3Data:    &models.Step3Data{SelectedSlot: "FRIDAY_7PM", SlotDate: slot},
	}
}

func newTestScheduler(subs *memSubs, gw *recordingGateway, now time.Time) *DefaultScheduler {
	return &DefaultScheduler{
		Subs:        subs,
		Gateway:     gw,
		Lock:        &freeLock{},
		MeetingLink: "https://meet.example.com/demo",
		Now:         func() time.Time { return now },
	}
}

func TestDispatchAtBooking_FarOutSlotSendsConfirmationOnly(t *testing.T) {
	now := time.Date(2025, 2, 14, 8, 0, 0, 0, time.UTC)
	sub := bookedSub("9876543210", now.Add(10*time.Hour))
	gw := &recordingGateway{}
	s := newTestScheduler(newMemSubs(sub), gw, now)

	out := s.DispatchAtBooking(context.Background(), sub)

	if !out.Confirmation.Sent {
		t.Fatalf("expected confirmation sent")
	}
	if out.Reminder4h.Attempted || out.MeetLink1h.Attempted || out.Reminder30Min.Attempted {
		t.Fatalf("expected no fast-path sends for a far-out slot: %+v", out)
	}
	if len(gw.sent) != 1 || gw.sent[0].Template != TemplateConfirmation {
		t.Fatalf("unexpected gateway traffic: %+v", gw.sent)
	}
}

func TestDispatchAtBooking_ImminentSlotSendsAllThree(t *testing.T) {
	now := time.Date(2025, 2, 14, 8, 0, 0, 0, time.UTC)
	sub := bookedSub("9876543210", now.Add(24*time.Minute))
	subs := newMemSubs(sub)
	gw := &recordingGateway{}
	s := newTestScheduler(subs, gw, now)

	out := s.DispatchAtBooking(context.Background(), sub)

	if !out.Reminder4h.Sent || !out.MeetLink1h.Sent || !out.Reminder30Min.Sent {
		t.Fatalf("expected all three fast-path sends: %+v", out)
	}
	// Confirmation plus the three notifications.
	if len(gw.sent) != 4 {
		t.Fatalf("expected 4 sends, got %d", len(gw.sent))
	}
	stored := subs.subs[sub.Phone]
	if !stored.ReminderSent || !stored.MeetLinkSent || !stored.Reminder30MinSent {
		t.Fatalf("expected all flags set: %+v", stored)
	}
}

func TestDispatchAtBooking_TwoHoursOutSendsReminderOnly(t *testing.T) {
	now := time.Date(2025, 2, 14, 8, 0, 0, 0, time.UTC)
	sub := bookedSub("9876543210", now.Add(2*time.Hour))
	gw := &recordingGateway{}
	s := newTestScheduler(newMemSubs(sub), gw, now)

	out := s.DispatchAtBooking(context.Background(), sub)

	if !out.Reminder4h.Sent {
		t.Fatalf("expected 4h reminder sent")
	}
	if out.MeetLink1h.Attempted || out.Reminder30Min.Attempted {
		t.Fatalf("expected 1h and 30m not attempted: %+v", out)
	}
}

func TestDispatchAtBooking_PastSlotSkipsFastPath(t *testing.T) {
	now := time.Date(2025, 2, 14, 8, 0, 0, 0, time.UTC)
	sub := bookedSub("9876543210", now.Add(-time.Minute))
	gw := &recordingGateway{}
	s := newTestScheduler(newMemSubs(sub), gw, now)

	out := s.DispatchAtBooking(context.Background(), sub)
	if out.Reminder4h.Attempted || out.MeetLink1h.Attempted || out.Reminder30Min.Attempted {
		t.Fatalf("expected no fast-path sends for a past slot: %+v", out)
	}
}

func TestDispatchAtBooking_SendFailureLeavesFlagUnset(t *testing.T) {
	now := time.Date(2025, 2, 14, 8, 0, 0, 0, time.UTC)
	sub := bookedSub("9876543210", now.Add(24*time.Minute))
	subs := newMemSubs(sub)
	gw := &recordingGateway{err: errors.New("msg91 down")}
	s := newTestScheduler(subs, gw, now)

	out := s.DispatchAtBooking(context.Background(), sub)

	if out.Confirmation.Sent || out.Reminder4h.Sent {
		t.Fatalf("expected nothing marked sent: %+v", out)
	}
	stored := subs.subs[sub.Phone]
	if stored.ReminderSent || stored.MeetLinkSent || stored.Reminder30MinSent {
		t.Fatalf("send failure must leave flags unset: %+v", stored)
	}
}

func TestDispatchAtBooking_MeetLinkVarsCarryLink(t *testing.T) {
	now := time.Date(2025, 2, 14, 8, 0, 0, 0, time.UTC)
	sub := bookedSub("9876543210", now.Add(50*time.Minute))
	gw := &recordingGateway{}
	s := newTestScheduler(newMemSubs(sub), gw, now)

	s.DispatchAtBooking(context.Background(), sub)

	var found bool
	for _, msg := range gw.sent {
		if msg.Template == TemplateMeetLink {
			found = true
			if msg.Vars["var"] != s.MeetingLink {
				t.Fatalf("expected meeting link in vars, got %v", msg.Vars)
			}
		}
	}
	if !found {
		t.Fatalf("expected a meet-link send")
	}
}

func TestSweep_SendsDueAndSetsFlags(t *testing.T) {
	now := time.Date(2025, 2, 14, 8, 0, 0, 0, time.UTC)
	a := bookedSub("9876543210", now.Add(3*time.Hour))
	b := bookedSub("9123456780", now.Add(45*time.Minute))
	far := bookedSub("9000000000", now.Add(20*time.Hour))
	subs := newMemSubs(a, b, far)
	gw := &recordingGateway{}
	s := newTestScheduler(subs, gw, now)

	stats, err := s.Sweep(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := stats[models.NotificationReminder4h]; got.Found != 2 || got.Sent != 2 {
		t.Fatalf("unexpected 4h stats: %+v", got)
	}
	if got := stats[models.NotificationMeetLink1h]; got.Found != 1 || got.Sent != 1 {
		t.Fatalf("unexpected 1h stats: %+v", got)
	}
	if got := stats[models.NotificationReminder30m]; got.Found != 0 {
		t.Fatalf("unexpected 30m stats: %+v", got)
	}

	if !subs.subs[a.Phone].ReminderSent || !subs.subs[b.Phone].ReminderSent {
		t.Fatalf("expected 4h flags set for both due submissions")
	}
	if subs.subs[far.Phone].ReminderSent {
		t.Fatalf("far-out submission must not be swept")
	}
}

func TestSweep_SecondRunIsIdempotent(t *testing.T) {
	now := time.Date(2025, 2, 14, 8, 0, 0, 0, time.UTC)
	sub := bookedSub("9876543210", now.Add(3*time.Hour))
	subs := newMemSubs(sub)
	gw := &recordingGateway{}
	s := newTestScheduler(subs, gw, now)

	if _, err := s.Sweep(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	firstSends := len(gw.sent)

	stats, err := s.Sweep(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := stats[models.NotificationReminder4h]; got.Found != 0 {
		t.Fatalf("expected nothing due on second run: %+v", got)
	}
	if len(gw.sent) != firstSends {
		t.Fatalf("second sweep must not resend")
	}
}

func TestSweep_BulkFailureLeavesFlagsForRetry(t *testing.T) {
	now := time.Date(2025, 2, 14, 8, 0, 0, 0, time.UTC)
	sub := bookedSub("9876543210", now.Add(3*time.Hour))
	subs := newMemSubs(sub)
	gw := &recordingGateway{err: errors.New("msg91 down")}
	s := newTestScheduler(subs, gw, now)

	stats, err := s.Sweep(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := stats[models.NotificationReminder4h]; got.Found != 1 || got.Failed != 1 || got.Sent != 0 {
		t.Fatalf("unexpected stats: %+v", got)
	}
	if subs.subs[sub.Phone].ReminderSent {
		t.Fatalf("failed send must leave flag unset")
	}
}

func TestSweep_LockHeldReturnsInProgress(t *testing.T) {
	now := time.Date(2025, 2, 14, 8, 0, 0, 0, time.UTC)
	s := newTestScheduler(newMemSubs(), &recordingGateway{}, now)
	s.Lock = &freeLock{held: true}

	if _, err := s.Sweep(context.Background()); !errors.Is(err, ErrSweepInProgress) {
		t.Fatalf("expected ErrSweepInProgress, got %v", err)
	}
}
