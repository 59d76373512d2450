// File: services/sheets/mirror.go
package sheets

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"github.com/sripavantejb/GuideXpert-Backend/config"
	"github.com/sripavantejb/GuideXpert-Backend/models"
	"github.com/sripavantejb/GuideXpert-Backend/utils"
)

// Mirror pushes submission snapshots into an external spreadsheet for the
// sales team. It is strictly best-effort: callers must never fail a request
// on a mirror error.
type Mirror interface {
	// Record appends the submission as a new row, or rewrites its existing
	// row when one is already tracked. It returns the 1-based row number.
	Record(ctx context.Context, sub *models.Submission) (int64, error)
}

// NewMirror builds a Google Sheets mirror from config, or nil when the sheet
// is not configured. A nil Mirror is valid and simply skipped by callers.
func NewMirror(ctx context.Context) (Mirror, error) {
	cfg := config.AppConfig
	if cfg.GoogleSheetID == "" {
		return nil, nil
	}
	var opts []option.ClientOption
	if cfg.GoogleCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.GoogleCredentialsFile))
	}
	opts = append(opts, option.WithScopes(sheetsv4.SpreadsheetsScope))
	svc, err := sheetsv4.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("init sheets client: %w", err)
	}
	return &sheetsMirror{
		svc:           svc,
		spreadsheetID: cfg.GoogleSheetID,
		appendRange:   cfg.GoogleSheetRange,
	}, nil
}

type sheetsMirror struct {
	svc           *sheetsv4.Service
	spreadsheetID string
	appendRange   string
}

// updatedRangeRow extracts the row number from an A1 range like "Leads!A42:N42".
var updatedRangeRow = regexp.MustCompile(`![A-Z]+(\d+)`)

func (m *sheetsMirror) Record(ctx context.Context, sub *models.Submission) (int64, error) {
	vr := &sheetsv4.ValueRange{Values: [][]interface{}{rowValues(sub)}}

	if sub.SheetRow > 0 {
		target := fmt.Sprintf("A%d", sub.SheetRow)
		_, err := m.svc.Spreadsheets.Values.
			Update(m.spreadsheetID, target, vr).
			ValueInputOption("USER_ENTERED").
			Context(ctx).Do()
		if err != nil {
			return 0, fmt.Errorf("update sheet row %d: %w", sub.SheetRow, err)
		}
		return sub.SheetRow, nil
	}

	resp, err := m.svc.Spreadsheets.Values.
		Append(m.spreadsheetID, m.appendRange, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("append sheet row: %w", err)
	}
	if resp.Updates == nil {
		return 0, fmt.Errorf("append sheet row: empty update response")
	}
	match := updatedRangeRow.FindStringSubmatch(resp.Updates.UpdatedRange)
	if match == nil {
		return 0, fmt.Errorf("append sheet row: unparseable range %q", resp.Updates.UpdatedRange)
	}
	row, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("append sheet row: bad row in range %q", resp.Updates.UpdatedRange)
	}
	return row, nil
}

func rowValues(sub *models.Submission) []interface{} {
	slotDate := ""
	if !sub.SlotDate().IsZero() {
		slotDate = sub.SlotDate().In(utils.IST).Format("2006-01-02 3:04 PM")
	}
	registeredAt := ""
	if sub.RegisteredAt != nil {
		registeredAt = sub.RegisteredAt.In(utils.IST).Format("2006-01-02 15:04")
	}
	return []interface{}{
		sub.Phone,
		sub.FullName,
		sub.Occupation,
		sub.CurrentStep,
		sub.ApplicationStatus,
		sub.SelectedSlot,
		slotDate,
		sub.BookingRef,
		registeredAt,
		sub.Email,
		sub.InterestLevel,
		sub.CreatedAt.In(utils.IST).Format(time.RFC3339),
		sub.UpdatedAt.In(utils.IST).Format(time.RFC3339),
	}
}
