// File: utils/clock.go
package utils

import (
	"regexp"
	"time"
)

// IST is the fixed UTC+5:30 civil timezone used for all calendar business
// logic, independent of the host timezone. A fixed offset is deliberate:
// the product operates on wall-clock IST and must not depend on tzdata.
var IST = time.FixedZone("IST", 5*3600+30*60)

// ISTParts are the civil calendar components of an instant as observed in IST.
type ISTParts struct {
	Year    int
	Month   time.Month
	Day     int
	Weekday time.Weekday
	Hour    int
	Minute  int
}

// ISTPartsOf returns the IST calendar components of t.
func ISTPartsOf(t time.Time) ISTParts {
	ist := t.In(IST)
	return ISTParts{
		Year:    ist.Year(),
		Month:   ist.Month(),
		Day:     ist.Day(),
		Weekday: ist.Weekday(),
		Hour:    ist.Hour(),
		Minute:  ist.Minute(),
	}
}

// ISTCalendarDate returns the IST calendar date of t as "YYYY-MM-DD".
// Used as the canonical key for per-date slot overrides.
func ISTCalendarDate(t time.Time) string {
	return t.In(IST).Format("2006-01-02")
}

var dateRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`)

// ISTDayRangeUTC returns the half-open UTC instant range [start, start+24h)
// covering the given IST calendar day. Malformed dates yield ok=false rather
// than a silently-wrong range.
func ISTDayRangeUTC(date string) (start, end time.Time, ok bool) {
	if !dateRe.MatchString(date) {
		return time.Time{}, time.Time{}, false
	}
	t, err := time.ParseInLocation("2006-01-02", date, IST)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	// Reject dates like 2025-02-31 that time.Parse would normalize.
	if t.Format("2006-01-02") != date {
		return time.Time{}, time.Time{}, false
	}
	start = t.UTC()
	return start, start.Add(24 * time.Hour), true
}

// NextSlotOccurrence returns the next instant at which the given IST weekday
// and wall-clock time occurs, strictly after now when the slot time today has
// already been reached.
func NextSlotOccurrence(now time.Time, weekday time.Weekday, hour, minute int) time.Time {
	ref := ISTPartsOf(now)
	daysToAdd := (int(weekday) - int(ref.Weekday) + 7) % 7
	nowMins := ref.Hour*60 + ref.Minute
	slotMins := hour*60 + minute
	if daysToAdd == 0 && nowMins >= slotMins {
		daysToAdd = 7
	}
	midnight := time.Date(ref.Year, ref.Month, ref.Day, 0, 0, 0, 0, IST)
	return midnight.AddDate(0, 0, daysToAdd).Add(time.Duration(slotMins) * time.Minute).UTC()
}
