package models

import "time"

// NotificationKind identifies one of the three time-triggered SMS types tied
// to a booked slot.
type NotificationKind string

const (
	NotificationReminder4h  NotificationKind = "reminder4h"
	NotificationMeetLink1h  NotificationKind = "meetLink1h"
	NotificationReminder30m NotificationKind = "reminder30m"
)

// Threshold returns how long before the slot this notification becomes due.
func (k NotificationKind) Threshold() time.Duration {
	switch k {
	case NotificationReminder4h:
		return 4 * time.Hour
	case NotificationMeetLink1h:
		return time.Hour
	case NotificationReminder30m:
		return 30 * time.Minute
	}
	return 0
}

// ParseNotificationKind maps a wire value to a kind.
func ParseNotificationKind(s string) (NotificationKind, bool) {
	switch NotificationKind(s) {
	case NotificationReminder4h, NotificationMeetLink1h, NotificationReminder30m:
		return NotificationKind(s), true
	}
	return "", false
}

// AllNotificationKinds lists the kinds in descending threshold order, which
// is also the order the fast path evaluates them in.
var AllNotificationKinds = []NotificationKind{
	NotificationReminder4h,
	NotificationMeetLink1h,
	NotificationReminder30m,
}

// DispatchOutcome reports one send attempt made during step-3 booking.
type DispatchOutcome struct {
	Attempted bool   `json:"attempted"`
	Sent      bool   `json:"sent"`
	Error     string `json:"error,omitempty"`
}

// BookingDispatch aggregates the fast-path outcomes returned with the step-3
// response.
type BookingDispatch struct {
	Confirmation  DispatchOutcome `json:"confirmation"`
	Reminder4h    DispatchOutcome `json:"reminder4h"`
	MeetLink1h    DispatchOutcome `json:"meetLink1h"`
	Reminder30Min DispatchOutcome `json:"reminder30Min"`
}

// SweepKindStats counts one notification kind's matches in a sweep run.
type SweepKindStats struct {
	Found  int `json:"found"`
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// SweepStats is the full result of one sweep invocation.
type SweepStats map[NotificationKind]SweepKindStats
