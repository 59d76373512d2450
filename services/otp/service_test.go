package otp

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sripavantejb/GuideXpert-Backend/models"
	"github.com/sripavantejb/GuideXpert-Backend/services/notify"
	"github.com/sripavantejb/GuideXpert-Backend/utils"
)

type fakeOtpRepo struct {
	rec     *models.OtpRecord
	history []time.Time
}

func (f *fakeOtpRepo) Latest(ctx context.Context, phone string) (*models.OtpRecord, error) {
	if f.rec == nil {
		return nil, mongo.ErrNoDocuments
	}
	cp := *f.rec
	return &cp, nil
}

func (f *fakeOtpRepo) CountSince(ctx context.Context, phone string, since time.Time) (int64, error) {
	var n int64
	for _, at := range f.history {
		if !at.Before(since) {
			n++
		}
	}
	return n, nil
}

func (f *fakeOtpRepo) Insert(ctx context.Context, rec models.OtpRecord) error {
	f.rec = &rec
	f.history = append(f.history, rec.CreatedAt)
	return nil
}

func (f *fakeOtpRepo) Retire(ctx context.Context, phone string) error {
	if f.rec != nil {
		f.rec.Consumed = true
	}
	return nil
}

func (f *fakeOtpRepo) IncrementAttempts(ctx context.Context, phone string) (int, error) {
	if f.rec == nil {
		return 0, mongo.ErrNoDocuments
	}
	f.rec.Attempts++
	return f.rec.Attempts, nil
}

func (f *fakeOtpRepo) EnsureIndexes(ctx context.Context) error { return nil }

type fakeVerifiedStore struct {
	verified map[string]bool
}

func newFakeVerifiedStore() *fakeVerifiedStore {
	return &fakeVerifiedStore{verified: make(map[string]bool)}
}

func (f *fakeVerifiedStore) MarkVerified(ctx context.Context, phone string) error {
	f.verified[phone] = true
	return nil
}

func (f *fakeVerifiedStore) IsVerified(ctx context.Context, phone string) (bool, error) {
	return f.verified[phone], nil
}

func (f *fakeVerifiedStore) ClearVerified(ctx context.Context, phone string) error {
	delete(f.verified, phone)
	return nil
}

type fakeGateway struct {
	sent []string
	err  error
}

func (f *fakeGateway) Send(ctx context.Context, tpl notify.Template, phone string, vars map[string]string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, phone)
	return nil
}

func (f *fakeGateway) SendBulk(ctx context.Context, tpl notify.Template, phones []string, vars map[string]string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, phones...)
	return nil
}

const testPhone = "9876543210"

func newTestService(repo *fakeOtpRepo, gw *fakeGateway, now time.Time) (*DefaultService, *fakeVerifiedStore) {
	store := newFakeVerifiedStore()
	svc := &DefaultService{
		Repo:     repo,
		Verified: store,
		Gateway:  gw,
		Secret:   "test-secret",
		Expiry:   5 * time.Minute,
		Now:      func() time.Time { return now },
	}
	return svc, store
}

func rateLimited(t *testing.T, err error) *utils.AppError {
	t.Helper()
	var appErr *utils.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != utils.CodeRateLimited {
		t.Fatalf("expected rate_limited, got %s", appErr.Code)
	}
	return appErr
}

func TestCanSend_FirstRequestAllowed(t *testing.T) {
	svc, _ := newTestService(&fakeOtpRepo{}, &fakeGateway{}, time.Now())
	if err := svc.CanSend(context.Background(), testPhone); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCanSend_ResendCooldown(t *testing.T) {
	now := time.Date(2025, 2, 14, 10, 0, 0, 0, time.UTC)
	repo := &fakeOtpRepo{
		rec:     &models.OtpRecord{PhoneNumber: testPhone, CreatedAt: now.Add(-20 * time.Second)},
		history: []time.Time{now.Add(-20 * time.Second)},
	}
	svc, _ := newTestService(repo, &fakeGateway{}, now)

	appErr := rateLimited(t, svc.CanSend(context.Background(), testPhone))
	if appErr.RetryAfter != 40 {
		t.Fatalf("expected retryAfter 40, got %d", appErr.RetryAfter)
	}
}

func TestCanSend_WindowLimit(t *testing.T) {
	now := time.Date(2025, 2, 14, 10, 0, 0, 0, time.UTC)
	repo := &fakeOtpRepo{
		rec: &models.OtpRecord{PhoneNumber: testPhone, CreatedAt: now.Add(-5 * time.Minute)},
		history: []time.Time{
			now.Add(-14 * time.Minute),
			now.Add(-9 * time.Minute),
			now.Add(-5 * time.Minute),
		},
	}
	svc, _ := newTestService(repo, &fakeGateway{}, now)

	rateLimited(t, svc.CanSend(context.Background(), testPhone))
}

func TestCanSend_OldIssuancesExpireFromWindow(t *testing.T) {
	now := time.Date(2025, 2, 14, 10, 0, 0, 0, time.UTC)
	repo := &fakeOtpRepo{
		rec: &models.OtpRecord{PhoneNumber: testPhone, CreatedAt: now.Add(-16 * time.Minute)},
		history: []time.Time{
			now.Add(-40 * time.Minute),
			now.Add(-30 * time.Minute),
			now.Add(-16 * time.Minute),
		},
	}
	svc, _ := newTestService(repo, &fakeGateway{}, now)

	if err := svc.CanSend(context.Background(), testPhone); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIssue_PersistsHashedRecord(t *testing.T) {
	now := time.Date(2025, 2, 14, 10, 0, 0, 0, time.UTC)
	repo := &fakeOtpRepo{}
	gw := &fakeGateway{}
	svc, _ := newTestService(repo, gw, now)

	if err := svc.Issue(context.Background(), testPhone); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gw.sent) != 1 {
		t.Fatalf("expected one gateway send, got %d", len(gw.sent))
	}
	if repo.rec == nil {
		t.Fatalf("expected a persisted record")
	}
	if repo.rec.OtpHash == "" || len(repo.rec.OtpHash) != 64 {
		t.Fatalf("expected a hex sha256 hash, got %q", repo.rec.OtpHash)
	}
	if !repo.rec.ExpiresAt.Equal(now.Add(5 * time.Minute)) {
		t.Fatalf("expected expiry 5m out, got %v", repo.rec.ExpiresAt)
	}
}

func TestIssue_GatewayFailureLeavesNoRecord(t *testing.T) {
	repo := &fakeOtpRepo{}
	gw := &fakeGateway{err: errors.New("msg91 down")}
	svc, _ := newTestService(repo, gw, time.Now())

	err := svc.Issue(context.Background(), testPhone)
	if err == nil {
		t.Fatalf("expected error")
	}
	if repo.rec != nil {
		t.Fatalf("expected no record after gateway failure")
	}
}

func TestVerify_Success(t *testing.T) {
	now := time.Date(2025, 2, 14, 10, 0, 0, 0, time.UTC)
	hash, _ := HashCode("123456", "test-secret")
	repo := &fakeOtpRepo{rec: &models.OtpRecord{
		PhoneNumber: testPhone,
		OtpHash:     hash,
		ExpiresAt:   now.Add(2 * time.Minute),
		CreatedAt:   now.Add(-time.Minute),
	}}
	svc, store := newTestService(repo, &fakeGateway{}, now)

	if err := svc.Verify(context.Background(), testPhone, "123456"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.rec == nil || !repo.rec.Consumed {
		t.Fatalf("expected record retired after success, got %+v", repo.rec)
	}
	if ok, _ := store.IsVerified(context.Background(), testPhone); !ok {
		t.Fatalf("expected verified grace to open")
	}
}

func TestVerify_SuccessKeepsRateWindow(t *testing.T) {
	now := time.Date(2025, 2, 14, 10, 0, 0, 0, time.UTC)
	hash, _ := HashCode("123456", "test-secret")
	repo := &fakeOtpRepo{
		rec: &models.OtpRecord{
			PhoneNumber: testPhone,
			OtpHash:     hash,
			ExpiresAt:   now.Add(2 * time.Minute),
			CreatedAt:   now.Add(-90 * time.Second),
		},
		history: []time.Time{
			now.Add(-10 * time.Minute),
			now.Add(-5 * time.Minute),
			now.Add(-90 * time.Second),
		},
	}
	svc, _ := newTestService(repo, &fakeGateway{}, now)

	if err := svc.Verify(context.Background(), testPhone, "123456"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Three issuances in the last 15 minutes still count after the verify.
	rateLimited(t, svc.CanSend(context.Background(), testPhone))
}

func TestVerify_SuccessKeepsResendCooldown(t *testing.T) {
	now := time.Date(2025, 2, 14, 10, 0, 0, 0, time.UTC)
	hash, _ := HashCode("123456", "test-secret")
	repo := &fakeOtpRepo{
		rec: &models.OtpRecord{
			PhoneNumber: testPhone,
			OtpHash:     hash,
			ExpiresAt:   now.Add(4 * time.Minute),
			CreatedAt:   now.Add(-20 * time.Second),
		},
		history: []time.Time{now.Add(-20 * time.Second)},
	}
	svc, _ := newTestService(repo, &fakeGateway{}, now)

	if err := svc.Verify(context.Background(), testPhone, "123456"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	appErr := rateLimited(t, svc.CanSend(context.Background(), testPhone))
	if appErr.RetryAfter != 40 {
		t.Fatalf("expected retryAfter 40, got %d", appErr.RetryAfter)
	}
}

func TestVerify_ConsumedCodeRejected(t *testing.T) {
	now := time.Date(2025, 2, 14, 10, 0, 0, 0, time.UTC)
	hash, _ := HashCode("123456", "test-secret")
	repo := &fakeOtpRepo{rec: &models.OtpRecord{
		PhoneNumber: testPhone,
		OtpHash:     hash,
		ExpiresAt:   now.Add(2 * time.Minute),
		Consumed:    true,
	}}
	svc, store := newTestService(repo, &fakeGateway{}, now)

	if err := svc.Verify(context.Background(), testPhone, "123456"); err == nil {
		t.Fatalf("expected a spent code to be rejected")
	}
	if ok, _ := store.IsVerified(context.Background(), testPhone); ok {
		t.Fatalf("spent code must not open the grace")
	}
}

func TestVerify_WrongCodeIncrementsAttempts(t *testing.T) {
	now := time.Date(2025, 2, 14, 10, 0, 0, 0, time.UTC)
	hash, _ := HashCode("123456", "test-secret")
	repo := &fakeOtpRepo{rec: &models.OtpRecord{
		PhoneNumber: testPhone,
		OtpHash:     hash,
		ExpiresAt:   now.Add(2 * time.Minute),
	}}
	svc, store := newTestService(repo, &fakeGateway{}, now)

	if err := svc.Verify(context.Background(), testPhone, "000000"); err == nil {
		t.Fatalf("expected error")
	}
	if repo.rec == nil || repo.rec.Attempts != 1 {
		t.Fatalf("expected attempts=1, got %+v", repo.rec)
	}
	if ok, _ := store.IsVerified(context.Background(), testPhone); ok {
		t.Fatalf("wrong code must not open the grace")
	}
}

func TestVerify_ThirdFailureRetiresRecord(t *testing.T) {
	now := time.Date(2025, 2, 14, 10, 0, 0, 0, time.UTC)
	hash, _ := HashCode("123456", "test-secret")
	repo := &fakeOtpRepo{rec: &models.OtpRecord{
		PhoneNumber: testPhone,
		OtpHash:     hash,
		ExpiresAt:   now.Add(2 * time.Minute),
		Attempts:    2,
	}}
	svc, _ := newTestService(repo, &fakeGateway{}, now)

	if err := svc.Verify(context.Background(), testPhone, "000000"); err == nil {
		t.Fatalf("expected error")
	}
	if repo.rec == nil || !repo.rec.Consumed {
		t.Fatalf("expected record retired on exhausted attempts, got %+v", repo.rec)
	}
}

func TestVerify_CorrectCodeAfterExhaustionRejected(t *testing.T) {
	now := time.Date(2025, 2, 14, 10, 0, 0, 0, time.UTC)
	hash, _ := HashCode("123456", "test-secret")
	repo := &fakeOtpRepo{rec: &models.OtpRecord{
		PhoneNumber: testPhone,
		OtpHash:     hash,
		ExpiresAt:   now.Add(2 * time.Minute),
		Attempts:    3,
	}}
	svc, store := newTestService(repo, &fakeGateway{}, now)

	if err := svc.Verify(context.Background(), testPhone, "123456"); err == nil {
		t.Fatalf("expected rejection after exhausted attempts")
	}
	if ok, _ := store.IsVerified(context.Background(), testPhone); ok {
		t.Fatalf("grace must not open after exhaustion")
	}
}

func TestVerify_Expired(t *testing.T) {
	now := time.Date(2025, 2, 14, 10, 0, 0, 0, time.UTC)
	hash, _ := HashCode("123456", "test-secret")
	repo := &fakeOtpRepo{rec: &models.OtpRecord{
		PhoneNumber: testPhone,
		OtpHash:     hash,
		ExpiresAt:   now.Add(-time.Second),
	}}
	svc, _ := newTestService(repo, &fakeGateway{}, now)

	if err := svc.Verify(context.Background(), testPhone, "123456"); err == nil {
		t.Fatalf("expected expired code to be rejected")
	}
	if repo.rec == nil || !repo.rec.Consumed {
		t.Fatalf("expected expired record retired, got %+v", repo.rec)
	}
}

func TestVerify_NoRecord(t *testing.T) {
	svc, _ := newTestService(&fakeOtpRepo{}, &fakeGateway{}, time.Now())
	if err := svc.Verify(context.Background(), testPhone, "123456"); err == nil {
		t.Fatalf("expected error with no record")
	}
}
