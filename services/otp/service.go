// File: services/otp/service.go
package otp

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	otpRepo "github.com/sripavantejb/GuideXpert-Backend/database/repository/otp"
	"github.com/sripavantejb/GuideXpert-Backend/models"
	"github.com/sripavantejb/GuideXpert-Backend/services/notify"
	"github.com/sripavantejb/GuideXpert-Backend/utils"
)

const (
	// ResendCooldown is the minimum gap between two OTP issuances to one phone.
	ResendCooldown = 60 * time.Second
	// RateWindow and MaxPerWindow bound issuance volume per phone.
	RateWindow   = 15 * time.Minute
	MaxPerWindow = 3
	// MaxVerifyAttempts caps failed verifications per record.
	MaxVerifyAttempts = 3
)

// Service issues and verifies one-time codes.
type Service interface {
	CanSend(ctx context.Context, phone string) error
	Issue(ctx context.Context, phone string) error
	Verify(ctx context.Context, phone, code string) error
}

// DefaultService implements Service over the OTP repository, the verified
// grace store and the SMS gateway.
type DefaultService struct {
	Repo     otpRepo.OtpRepository
	Verified VerifiedStore
	Gateway  notify.Gateway
	Secret   string
	Expiry   time.Duration

	// Now is overridable in tests; nil means time.Now.
	Now func() time.Time
}

func (s *DefaultService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CanSend enforces the resend cooldown (60s since the last issuance) and the
// rolling window limit (3 per 15 minutes). A denial carries retry-after.
func (s *DefaultService) CanSend(ctx context.Context, phone string) error {
	now := s.now()

	latest, err := s.Repo.Latest(ctx, phone)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return utils.NewUpstreamError("Could not check OTP status.")
	}
	if latest != nil {
		elapsed := now.Sub(latest.CreatedAt)
		if elapsed < ResendCooldown {
			wait := int(math.Ceil((ResendCooldown - elapsed).Seconds()))
			return utils.NewRateLimitedError("Please wait before requesting another OTP.", wait)
		}
	}

	count, err := s.Repo.CountSince(ctx, phone, now.Add(-RateWindow))
	if err != nil {
		return utils.NewUpstreamError("Could not check OTP status.")
	}
	if count >= MaxPerWindow {
		return utils.NewRateLimitedError("Too many OTP requests. Try again after 15 minutes.", int(RateWindow.Seconds()))
	}
	return nil
}

// Issue generates a fresh code, sends it through the gateway and persists the
// keyed hash. The newest record supersedes older ones for verification. A
// gateway failure means the issuance did not happen: nothing the caller could
// later verify against is left behind.
func (s *DefaultService) Issue(ctx context.Context, phone string) error {
	code, err := GenerateCode()
	if err != nil {
		return utils.NewUpstreamError("Could not send OTP.")
	}
	hash, err := HashCode(code, s.Secret)
	if err != nil {
		utils.GetLogger().Error("otp secret missing at issue time", zap.Error(err))
		return utils.NewUpstreamError("Could not send OTP.")
	}

	if err := s.Gateway.Send(ctx, notify.TemplateOTP, phone, map[string]string{"otp": code}); err != nil {
		return utils.NewUpstreamError("Could not send OTP.")
	}

	now := s.now()
	rec := models.OtpRecord{
		PhoneNumber: phone,
		OtpHash:     hash,
		ExpiresAt:   now.Add(s.Expiry),
		Attempts:    0,
		CreatedAt:   now,
	}
	if err := s.Repo.Insert(ctx, rec); err != nil {
		utils.GetLogger().Error("failed to persist otp record",
			zap.String("phone", utils.MaskPhone(phone)), zap.Error(err))
		return utils.NewUpstreamError("Could not send OTP.")
	}
	return nil
}

// Verify checks a candidate code. On success it retires the record and opens
// the verified grace window; on failure it increments attempts and retires
// the record once expired or exhausted. Retired records stay on disk until
// the TTL reaps them, so a verify outcome never resets the resend cooldown
// or the rolling rate window.
func (s *DefaultService) Verify(ctx context.Context, phone, code string) error {
	rec, err := s.Repo.Latest(ctx, phone)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return utils.NewValidationError("Invalid or expired OTP.")
	}
	if err != nil {
		return utils.NewUpstreamError("Could not verify OTP.")
	}

	if rec.Consumed {
		return utils.NewValidationError("Invalid or expired OTP.")
	}
	if s.now().After(rec.ExpiresAt) {
		_ = s.Repo.Retire(ctx, phone)
		return utils.NewValidationError("Invalid or expired OTP.")
	}
	if rec.Attempts >= MaxVerifyAttempts {
		_ = s.Repo.Retire(ctx, phone)
		return utils.NewValidationError("Too many attempts.")
	}

	if !VerifyCode(code, rec.OtpHash, s.Secret) {
		attempts, incErr := s.Repo.IncrementAttempts(ctx, phone)
		if incErr == nil && attempts >= MaxVerifyAttempts {
			_ = s.Repo.Retire(ctx, phone)
		}
		return utils.NewValidationError("Invalid OTP.")
	}

	if err := s.Repo.Retire(ctx, phone); err != nil {
		return utils.NewUpstreamError("Could not verify OTP.")
	}
	if err := s.Verified.MarkVerified(ctx, phone); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	return nil
}
