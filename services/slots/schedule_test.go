package slots

import (
	"testing"
	"time"

	"github.com/sripavantejb/GuideXpert-Backend/utils"
)

func ref(weekday time.Weekday, hour int) utils.ISTParts {
	return utils.ISTParts{Weekday: weekday, Hour: hour}
}

func assertCandidates(t *testing.T, got []candidate, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d candidates, got %d (%v)", len(want), len(got), got)
	}
	for i, c := range got {
		id := makeSlotID(c.Weekday, c.TimeKey)
		if id != want[i] {
			t.Fatalf("candidate %d: expected %s, got %s", i, want[i], id)
		}
	}
}

func TestCandidatesFor_WeekdayBeforeCutoff(t *testing.T) {
	assertCandidates(t, candidatesFor(ref(time.Tuesday, 10)),
		"TUESDAY_7PM", "WEDNESDAY_7PM")
}

func TestCandidatesFor_WeekdayAfterCutoff(t *testing.T) {
	assertCandidates(t, candidatesFor(ref(time.Tuesday, 18)),
		"WEDNESDAY_7PM", "THURSDAY_7PM")
}

func TestCandidatesFor_ThursdayEveningRollsIntoWeekend(t *testing.T) {
	assertCandidates(t, candidatesFor(ref(time.Thursday, 20)),
		"FRIDAY_7PM", "SATURDAY_7PM")
}

func TestCandidatesFor_FridayBeforeCutoff(t *testing.T) {
	assertCandidates(t, candidatesFor(ref(time.Friday, 17)),
		"FRIDAY_7PM", "SATURDAY_7PM")
}

func TestCandidatesFor_FridayAfterCutoff(t *testing.T) {
	assertCandidates(t, candidatesFor(ref(time.Friday, 19)),
		"SATURDAY_7PM", "SUNDAY_11AM", "SUNDAY_7PM")
}

func TestCandidatesFor_SaturdayBeforeCutoff(t *testing.T) {
	assertCandidates(t, candidatesFor(ref(time.Saturday, 9)),
		"SATURDAY_7PM", "SUNDAY_11AM", "SUNDAY_7PM")
}

func TestCandidatesFor_SaturdayAfterCutoff(t *testing.T) {
	assertCandidates(t, candidatesFor(ref(time.Saturday, 18)),
		"SUNDAY_11AM", "SUNDAY_7PM", "MONDAY_7PM")
}

func TestCandidatesFor_SundayEarlyMorning(t *testing.T) {
	assertCandidates(t, candidatesFor(ref(time.Sunday, 9)),
		"SUNDAY_11AM", "SUNDAY_7PM", "MONDAY_7PM")
}

func TestCandidatesFor_SundayAfterMorningCutoff(t *testing.T) {
	assertCandidates(t, candidatesFor(ref(time.Sunday, 10)),
		"SUNDAY_7PM", "MONDAY_7PM")
}

func TestWeekdayCatalogue(t *testing.T) {
	sun := weekdayCatalogue(time.Sunday)
	if len(sun) != 2 || sun[0] != "SUNDAY_11AM" || sun[1] != "SUNDAY_7PM" {
		t.Fatalf("unexpected Sunday catalogue: %v", sun)
	}

	wed := weekdayCatalogue(time.Wednesday)
	if len(wed) != 1 || wed[0] != "WEDNESDAY_7PM" {
		t.Fatalf("unexpected Wednesday catalogue: %v", wed)
	}
}

func TestParseSlotID(t *testing.T) {
	sid, err := ParseSlotID("SUNDAY_11AM")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sid.Weekday != time.Sunday || sid.Hour != 11 || sid.Minute != 0 {
		t.Fatalf("unexpected parse result: %+v", sid)
	}
	if sid.TimeLabel() != "11:00 AM" {
		t.Fatalf("unexpected time label: %s", sid.TimeLabel())
	}

	for _, bad := range []string{"", "SUNDAY", "SUNDAY_8PM", "FUNDAY_7PM", "sunday_7pm", "SUNDAY_7PM_EXTRA"} {
		if IsValidSlotID(bad) {
			t.Fatalf("expected %q to be invalid", bad)
		}
	}
}
