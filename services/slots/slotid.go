// File: services/slots/slotid.go
package slots

import (
	"fmt"
	"strings"
	"time"
)

// Slot identifiers follow the WEEKDAY_TIME grammar, e.g. "FRIDAY_7PM". The
// string is both the display-label source and the lookup key; anything
// outside the grammar is rejected as invalid input.

var weekdayNames = map[string]time.Weekday{
	"SUNDAY":    time.Sunday,
	"MONDAY":    time.Monday,
	"TUESDAY":   time.Tuesday,
	"WEDNESDAY": time.Wednesday,
	"THURSDAY":  time.Thursday,
	"FRIDAY":    time.Friday,
	"SATURDAY":  time.Saturday,
}

var dayNames = [7]string{"SUNDAY", "MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY"}

// slotTime is one of the recognized times of day.
type slotTime struct {
	Hour   int
	Minute int
	Label  string // e.g. "7:00 PM"
}

var slotTimes = map[string]slotTime{
	"7PM":  {Hour: 19, Label: "7:00 PM"},
	"11AM": {Hour: 11, Label: "11:00 AM"},
	"3PM":  {Hour: 15, Label: "3:00 PM"},
}

// SlotID is a parsed slot identifier.
type SlotID struct {
	Raw     string
	Weekday time.Weekday
	Hour    int
	Minute  int
	TimeKey string
}

// ParseSlotID validates a raw identifier against the grammar.
func ParseSlotID(raw string) (SlotID, error) {
	parts := strings.SplitN(raw, "_", 2)
	if len(parts) != 2 {
		return SlotID{}, fmt.Errorf("invalid slot id %q", raw)
	}
	wd, ok := weekdayNames[parts[0]]
	if !ok {
		return SlotID{}, fmt.Errorf("invalid slot id %q: unknown weekday", raw)
	}
	st, ok := slotTimes[parts[1]]
	if !ok {
		return SlotID{}, fmt.Errorf("invalid slot id %q: unknown time", raw)
	}
	return SlotID{
		Raw:     raw,
		Weekday: wd,
		Hour:    st.Hour,
		Minute:  st.Minute,
		TimeKey: parts[1],
	}, nil
}

// IsValidSlotID reports whether raw matches the slot grammar.
func IsValidSlotID(raw string) bool {
	_, err := ParseSlotID(raw)
	return err == nil
}

// TimeLabel returns the human-readable time for a slot id ("7:00 PM").
func (s SlotID) TimeLabel() string {
	return slotTimes[s.TimeKey].Label
}

func makeSlotID(weekday time.Weekday, timeKey string) string {
	return dayNames[int(weekday)] + "_" + timeKey
}
