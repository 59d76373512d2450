// File: services/admin/service.go
package admin

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sripavantejb/GuideXpert-Backend/config"
	adminRepo "github.com/sripavantejb/GuideXpert-Backend/database/repository/admin"
	slotconfigRepo "github.com/sripavantejb/GuideXpert-Backend/database/repository/slotconfig"
	submissionRepo "github.com/sripavantejb/GuideXpert-Backend/database/repository/submission"
	"github.com/sripavantejb/GuideXpert-Backend/models"
	"github.com/sripavantejb/GuideXpert-Backend/services/slots"
	"github.com/sripavantejb/GuideXpert-Backend/utils"
)

// Service covers the operator surface: login, slot catalogue toggles and
// booking analytics.
type Service interface {
	Login(ctx context.Context, username, password string) (string, error)
	CreateAdmin(ctx context.Context, username, password, name string) (*models.Admin, error)
	SetSlotEnabled(ctx context.Context, slotID string, enabled bool) error
	SetDateOverride(ctx context.Context, date, slotID string, enabled bool) error
	BookingCounts(ctx context.Context, from, to time.Time) ([]submissionRepo.SlotBookingCount, error)
	ResendNotification(ctx context.Context, phone, kind string) error
}

type DefaultService struct {
	Admins      adminRepo.AdminRepository
	SlotConfigs slotconfigRepo.SlotConfigRepository
	Subs        submissionRepo.SubmissionRepository
}

// Login checks the credentials and mints an admin JWT. Wrong username and
// wrong password return the same error.
func (s *DefaultService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", utils.NewValidationError("Username and password are required.")
	}

	adm, err := s.Admins.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", utils.NewUnauthorizedError("Invalid credentials.")
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(adm.Password), []byte(password)); err != nil {
		return "", utils.NewUnauthorizedError("Invalid credentials.")
	}

	expiry := 24 * time.Hour
	if d, err := time.ParseDuration(config.AppConfig.AdminJWTExpiresIn); err == nil && d > 0 {
		expiry = d
	}
	token, err := utils.GenerateAdminToken(adm.Username, expiry)
	if err != nil {
		return "", err
	}
	utils.GetLogger().Info("admin login", zap.String("username", adm.Username))
	return token, nil
}

// CreateAdmin provisions a new operator account with a bcrypt-hashed
// password. Usernames are unique.
func (s *DefaultService) CreateAdmin(ctx context.Context, username, password, name string) (*models.Admin, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 {
		return nil, utils.NewValidationError("Username must be at least 3 characters.")
	}
	if len(password) < 8 {
		return nil, utils.NewValidationError("Password must be at least 8 characters.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	adm, err := s.Admins.Create(ctx, models.Admin{
		Username: username,
		Password: string(hash),
		Name:     strings.TrimSpace(name),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, utils.NewConflictError("An admin with that username already exists.")
		}
		return nil, err
	}
	utils.GetLogger().Info("admin created", zap.String("username", adm.Username))
	return adm, nil
}

// SetSlotEnabled toggles a weekly catalogue slot on or off for all future
// dates, until overridden per date.
func (s *DefaultService) SetSlotEnabled(ctx context.Context, slotID string, enabled bool) error {
	if !slots.IsValidSlotID(slotID) {
		return utils.NewValidationError("Invalid slot id.")
	}
	if err := s.SlotConfigs.SetEnabled(ctx, slotID, enabled); err != nil {
		return err
	}
	utils.GetLogger().Info("slot config updated",
		zap.String("slotId", slotID), zap.Bool("enabled", enabled))
	return nil
}

// SetDateOverride pins a slot's availability for one calendar date,
// taking precedence over the weekly config.
func (s *DefaultService) SetDateOverride(ctx context.Context, date, slotID string, enabled bool) error {
	if _, _, ok := utils.ISTDayRangeUTC(date); !ok {
		return utils.NewValidationError("Date must be a valid YYYY-MM-DD.")
	}
	if !slots.IsValidSlotID(slotID) {
		return utils.NewValidationError("Invalid slot id.")
	}
	key := slotconfigRepo.DateSlot{Date: date, SlotID: slotID}
	if err := s.SlotConfigs.SetOverride(ctx, key, enabled); err != nil {
		return err
	}
	utils.GetLogger().Info("slot override updated",
		zap.String("date", date), zap.String("slotId", slotID), zap.Bool("enabled", enabled))
	return nil
}

// ResendNotification clears a sent flag so the next sweep delivers that SMS
// again; support tool for when a lead reports a missing reminder.
func (s *DefaultService) ResendNotification(ctx context.Context, phone, kind string) error {
	normalized := utils.NormalizePhone(phone)
	if !utils.IsValidPhone(normalized) {
		return utils.NewValidationError("Invalid phone number.")
	}
	k, ok := models.ParseNotificationKind(kind)
	if !ok {
		return utils.NewValidationError("Unknown notification type.")
	}
	if err := s.Subs.ResetNotificationFlag(ctx, k, normalized); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.NewNotFoundError("No submission found for this phone.")
		}
		return err
	}
	utils.GetLogger().Info("notification re-armed",
		zap.String("phone", utils.MaskPhone(normalized)), zap.String("type", string(k)))
	return nil
}

// BookingCounts aggregates registered bookings per (date, slot) bucket.
func (s *DefaultService) BookingCounts(ctx context.Context, from, to time.Time) ([]submissionRepo.SlotBookingCount, error) {
	if !from.Before(to) {
		return nil, utils.NewValidationError("Invalid date range.")
	}
	return s.Subs.CountBookingsBySlot(ctx, from, to)
}
