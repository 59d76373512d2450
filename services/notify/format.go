// File: services/notify/format.go
package notify

import (
	"fmt"
	"time"

	"github.com/sripavantejb/GuideXpert-Backend/models"
	"github.com/sripavantejb/GuideXpert-Backend/services/slots"
	"github.com/sripavantejb/GuideXpert-Backend/utils"
)

// smsVars builds the shared template variables for a booked submission:
// registrant name, slot date ("Saturday, 15th Feb") and slot time ("7:00 PM").
func smsVars(sub *models.Submission) map[string]string {
	name := sub.FullName
	if sub.Step1Data != nil && sub.Step1Data.FullName != "" {
		name = sub.Step1Data.FullName
	}
	return map[string]string{
		"name": name,
		"date": formatSlotDate(sub.SlotDate()),
		"time": formatSlotTime(sub.SelectedSlot),
	}
}

// formatSlotDate renders an instant as its IST date, e.g. "Saturday, 15th Feb".
func formatSlotDate(t time.Time) string {
	ist := t.In(utils.IST)
	day := ist.Day()
	suffix := "th"
	switch day {
	case 1, 21, 31:
		suffix = "st"
	case 2, 22:
		suffix = "nd"
	case 3, 23:
		suffix = "rd"
	}
	return fmt.Sprintf("%s, %d%s %s", ist.Weekday().String(), day, suffix, ist.Month().String()[:3])
}

// formatSlotTime extracts the display time from a slot id, e.g. "7:00 PM".
func formatSlotTime(slotID string) string {
	parsed, err := slots.ParseSlotID(slotID)
	if err != nil {
		return ""
	}
	return parsed.TimeLabel()
}
