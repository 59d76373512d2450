// File: services/attendance/service.go
package attendance

import (
	"context"
	"strings"

	"go.uber.org/zap"

	attendanceRepo "github.com/sripavantejb/GuideXpert-Backend/database/repository/attendance"
	"github.com/sripavantejb/GuideXpert-Backend/models"
	"github.com/sripavantejb/GuideXpert-Backend/utils"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// Page describes one page of attendance records.
type Page struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// Service records and lists demo-meeting joins.
type Service interface {
	Record(ctx context.Context, name, mobile string) (*models.MeetingAttendance, error)
	List(ctx context.Context, page, limit int) ([]models.MeetingAttendance, Page, error)
}

type DefaultService struct {
	Repo attendanceRepo.AttendanceRepository
}

// Record marks one person as joined.
func (s *DefaultService) Record(ctx context.Context, name, mobile string) (*models.MeetingAttendance, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return nil, utils.NewValidationError("Name is required (at least 2 characters).")
	}
	if len(name) > 100 {
		return nil, utils.NewValidationError("Name must be at most 100 characters.")
	}
	phone := utils.NormalizePhone(mobile)
	if !utils.IsValidPhone(phone) {
		return nil, utils.NewValidationError("Valid 10-digit mobile number is required.")
	}

	rec, err := s.Repo.Create(ctx, models.MeetingAttendance{
		Name:             name,
		MobileNumber:     phone,
		AttendanceStatus: models.AttendanceJoined,
	})
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("meeting join recorded", zap.String("phone", utils.MaskPhone(phone)))
	return rec, nil
}

// List returns one page of join records, newest first.
func (s *DefaultService) List(ctx context.Context, page, limit int) ([]models.MeetingAttendance, Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	skip := int64(page-1) * int64(limit)
	recs, total, err := s.Repo.List(ctx, skip, int64(limit))
	if err != nil {
		return nil, Page{}, err
	}

	totalPages := total / int64(limit)
	if total%int64(limit) != 0 || totalPages == 0 {
		totalPages++
	}
	return recs, Page{Page: page, Limit: limit, Total: total, TotalPages: totalPages}, nil
}
