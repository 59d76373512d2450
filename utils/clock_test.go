package utils

import (
	"testing"
	"time"
)

func TestISTPartsOf_CrossesMidnight(t *testing.T) {
	// 20:00 UTC is 01:30 the next day in IST.
	utc := time.Date(2025, 2, 14, 20, 0, 0, 0, time.UTC)
	parts := ISTPartsOf(utc)

	if parts.Day != 15 {
		t.Fatalf("expected IST day 15, got %d", parts.Day)
	}
	if parts.Weekday != time.Saturday {
		t.Fatalf("expected Saturday, got %v", parts.Weekday)
	}
	if parts.Hour != 1 || parts.Minute != 30 {
		t.Fatalf("expected 01:30 IST, got %02d:%02d", parts.Hour, parts.Minute)
	}
}

func TestISTCalendarDate(t *testing.T) {
	utc := time.Date(2025, 2, 14, 20, 0, 0, 0, time.UTC)
	if got := ISTCalendarDate(utc); got != "2025-02-15" {
		t.Fatalf("expected 2025-02-15, got %s", got)
	}
}

func TestISTDayRangeUTC(t *testing.T) {
	start, end, ok := ISTDayRangeUTC("2025-02-15")
	if !ok {
		t.Fatalf("expected valid date")
	}
	// IST midnight is 18:30 UTC of the previous day.
	wantStart := time.Date(2025, 2, 14, 18, 30, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Fatalf("expected start %v, got %v", wantStart, start)
	}
	if got := end.Sub(start); got != 24*time.Hour {
		t.Fatalf("expected 24h range, got %v", got)
	}
}

func TestISTDayRangeUTC_Malformed(t *testing.T) {
	bad := []string{"", "2025-2-15", "15-02-2025", "2025-13-01", "2025-02-31", "2025-02-15T10:00"}
	for _, date := range bad {
		if _, _, ok := ISTDayRangeUTC(date); ok {
			t.Fatalf("expected %q to be rejected", date)
		}
	}
}

func TestNextSlotOccurrence_SameDayFuture(t *testing.T) {
	// Friday 2025-02-14 10:00 IST.
	now := time.Date(2025, 2, 14, 4, 30, 0, 0, time.UTC)
	got := NextSlotOccurrence(now, time.Friday, 19, 0)

	want := time.Date(2025, 2, 14, 19, 0, 0, 0, IST)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNextSlotOccurrence_SameDayPastRollsWeek(t *testing.T) {
	// Friday 2025-02-14 20:00 IST, after the 7PM slot.
	now := time.Date(2025, 2, 14, 14, 30, 0, 0, time.UTC)
	got := NextSlotOccurrence(now, time.Friday, 19, 0)

	want := time.Date(2025, 2, 21, 19, 0, 0, 0, IST)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNextSlotOccurrence_ExactSlotTimeRolls(t *testing.T) {
	// Exactly 7PM IST counts as passed.
	now := time.Date(2025, 2, 14, 13, 30, 0, 0, time.UTC)
	got := NextSlotOccurrence(now, time.Friday, 19, 0)

	want := time.Date(2025, 2, 21, 19, 0, 0, 0, IST)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNextSlotOccurrence_OtherWeekday(t *testing.T) {
	// Friday evening asking for Sunday 11AM.
	now := time.Date(2025, 2, 14, 14, 30, 0, 0, time.UTC)
	got := NextSlotOccurrence(now, time.Sunday, 11, 0)

	want := time.Date(2025, 2, 16, 11, 0, 0, 0, IST)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
