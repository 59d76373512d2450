// File: services/slots/resolver.go
package slots

import (
	"context"
	"fmt"
	"time"

	slotconfigRepo "github.com/sripavantejb/GuideXpert-Backend/database/repository/slotconfig"
	"github.com/sripavantejb/GuideXpert-Backend/models"
	"github.com/sripavantejb/GuideXpert-Backend/utils"
)

// Resolver computes which slots are bookable, applying the three-layer
// enablement rule: per-date override beats per-slot config beats the default
// (enabled).
type Resolver interface {
	SlotsForNow(ctx context.Context) ([]models.Slot, error)
	SlotsForDate(ctx context.Context, date string) ([]models.Slot, error)
	IsSlotOpen(ctx context.Context, slotID string, slotDate time.Time) (bool, error)
}

// DefaultResolver implements Resolver over the slot config repository.
type DefaultResolver struct {
	Repo slotconfigRepo.SlotConfigRepository

	// Now is overridable in tests; nil means time.Now.
	Now func() time.Time
}

func (r *DefaultResolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// SlotsForNow returns the currently offered slots: the cutoff-aware candidate
// set for the current IST moment, filtered down to enabled ones.
func (r *DefaultResolver) SlotsForNow(ctx context.Context) ([]models.Slot, error) {
	now := r.now()
	ref := utils.ISTPartsOf(now)

	var all []models.Slot
	for _, c := range candidatesFor(ref) {
		st := slotTimes[c.TimeKey]
		date := utils.NextSlotOccurrence(now, c.Weekday, st.Hour, st.Minute)
		id := makeSlotID(c.Weekday, c.TimeKey)
		all = append(all, models.Slot{
			ID:    id,
			Label: slotLabel(id, date),
			Date:  date,
		})
	}

	resolved, err := r.resolveEnabled(ctx, all)
	if err != nil {
		return nil, err
	}

	open := make([]models.Slot, 0, len(resolved))
	for _, s := range resolved {
		if s.Enabled {
			open = append(open, s)
		}
	}
	return open, nil
}

// SlotsForDate returns the recurring slots enabled on one explicit IST
// calendar date.
func (r *DefaultResolver) SlotsForDate(ctx context.Context, date string) ([]models.Slot, error) {
	start, _, ok := utils.ISTDayRangeUTC(date)
	if !ok {
		return nil, utils.NewValidationError("date must be a valid YYYY-MM-DD")
	}
	weekday := start.In(utils.IST).Weekday()

	var all []models.Slot
	for _, id := range weekdayCatalogue(weekday) {
		parsed, err := ParseSlotID(id)
		if err != nil {
			return nil, err
		}
		slotDate := start.In(utils.IST).Add(time.Duration(parsed.Hour*60+parsed.Minute) * time.Minute).UTC()
		all = append(all, models.Slot{
			ID:    id,
			Label: slotLabel(id, slotDate),
			Date:  slotDate,
		})
	}

	resolved, err := r.resolveEnabled(ctx, all)
	if err != nil {
		return nil, err
	}

	open := make([]models.Slot, 0, len(resolved))
	for _, s := range resolved {
		if s.Enabled {
			open = append(open, s)
		}
	}
	return open, nil
}

// IsSlotOpen re-checks a single slot at booking time.
func (r *DefaultResolver) IsSlotOpen(ctx context.Context, slotID string, slotDate time.Time) (bool, error) {
	if _, err := ParseSlotID(slotID); err != nil {
		return false, utils.NewValidationError("selectedSlot must be a valid slot ID (e.g. FRIDAY_7PM, SUNDAY_11AM)")
	}

	resolved, err := r.resolveEnabled(ctx, []models.Slot{{ID: slotID, Date: slotDate}})
	if err != nil {
		return false, err
	}
	return resolved[0].Enabled, nil
}

// resolveEnabled applies config then override to each slot.
func (r *DefaultResolver) resolveEnabled(ctx context.Context, in []models.Slot) ([]models.Slot, error) {
	if len(in) == 0 {
		return in, nil
	}

	ids := make([]string, len(in))
	keys := make([]slotconfigRepo.DateSlot, len(in))
	for i, s := range in {
		ids[i] = s.ID
		keys[i] = slotconfigRepo.DateSlot{Date: utils.ISTCalendarDate(s.Date), SlotID: s.ID}
	}

	configs, err := r.Repo.GetConfigs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load slot configs: %w", err)
	}
	overrides, err := r.Repo.GetOverrides(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("load slot overrides: %w", err)
	}

	out := make([]models.Slot, len(in))
	for i, s := range in {
		enabled := true
		if v, ok := configs[s.ID]; ok {
			enabled = v
		}
		if v, ok := overrides[keys[i]]; ok {
			enabled = v
		}
		s.Enabled = enabled
		out[i] = s
	}
	return out, nil
}

// slotLabel renders "Saturday, 15th Feb - 7:00 PM" for client display.
func slotLabel(id string, date time.Time) string {
	parsed, err := ParseSlotID(id)
	if err != nil {
		return id
	}
	ist := date.In(utils.IST)
	return fmt.Sprintf("%s, %s %s - %s",
		ist.Weekday().String(),
		ordinalDay(ist.Day()),
		ist.Month().String()[:3],
		parsed.TimeLabel(),
	)
}

func ordinalDay(day int) string {
	suffix := "th"
	switch day {
	case 1, 21, 31:
		suffix = "st"
	case 2, 22:
		suffix = "nd"
	case 3, 23:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", day, suffix)
}
