// File: services/slots/schedule.go
package slots

import (
	"time"

	"github.com/sripavantejb/GuideXpert-Backend/utils"
)

// The weekly demo schedule: every day has a 7 PM session and Sunday adds an
// 11 AM one. Same-day booking closes at a per-weekday cutoff (10 AM on
// Sunday mornings for the 11 AM slot, 6 PM everywhere else); past the
// cutoff the offer rolls forward to the next occurrences.

const (
	defaultCutoffHour = 18
	sundayCutoffHour  = 10
)

// candidate is one slot occurrence offered relative to "now".
type candidate struct {
	Weekday time.Weekday
	TimeKey string
}

// candidatesFor returns the ordered slot candidates for the given IST
// reference moment.
func candidatesFor(ref utils.ISTParts) []candidate {
	day := func(offset int) time.Weekday {
		return time.Weekday((int(ref.Weekday) + offset) % 7)
	}

	switch ref.Weekday {
	case time.Friday:
		if ref.Hour < defaultCutoffHour {
			return []candidate{
				{time.Friday, "7PM"},
				{time.Saturday, "7PM"},
			}
		}
		return []candidate{
			{time.Saturday, "7PM"},
			{time.Sunday, "11AM"},
			{time.Sunday, "7PM"},
		}
	case time.Saturday:
		if ref.Hour < defaultCutoffHour {
			return []candidate{
				{time.Saturday, "7PM"},
				{time.Sunday, "11AM"},
				{time.Sunday, "7PM"},
			}
		}
		return []candidate{
			{time.Sunday, "11AM"},
			{time.Sunday, "7PM"},
			{time.Monday, "7PM"},
		}
	case time.Sunday:
		if ref.Hour < sundayCutoffHour {
			return []candidate{
				{time.Sunday, "11AM"},
				{time.Sunday, "7PM"},
				{time.Monday, "7PM"},
			}
		}
		return []candidate{
			{time.Sunday, "7PM"},
			{time.Monday, "7PM"},
		}
	default: // Monday through Thursday
		if ref.Hour < defaultCutoffHour {
			return []candidate{
				{day(0), "7PM"},
				{day(1), "7PM"},
			}
		}
		return []candidate{
			{day(1), "7PM"},
			{day(2), "7PM"},
		}
	}
}

// weekdayCatalogue returns the recurring slot ids for one weekday.
func weekdayCatalogue(weekday time.Weekday) []string {
	ids := []string{makeSlotID(weekday, "7PM")}
	if weekday == time.Sunday {
		ids = append([]string{makeSlotID(time.Sunday, "11AM")}, ids...)
	}
	return ids
}
