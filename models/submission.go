package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Application lifecycle statuses. Progression is forward-only: once a
// submission is registered it never regresses to in_progress.
const (
	StatusInProgress = "in_progress"
	StatusRegistered = "registered"
	StatusCompleted  = "completed"
)

// Step1Data is the identity snapshot taken when step 1 completes.
type Step1Data struct {
	FullName        string    `bson:"fullName" json:"fullName"`
	WhatsappNumber  string    `bson:"whatsappNumber" json:"whatsappNumber"`
	Occupation      string    `bson:"occupation" json:"occupation"`
	Step1CompletedAt time.Time `bson:"step1CompletedAt" json:"step1CompletedAt"`
}

// Step2Data records the OTP verification gate.
type Step2Data struct {
	OTPVerified      bool      `bson:"otpVerified" json:"otpVerified"`
	Step2CompletedAt time.Time `bson:"step2CompletedAt" json:"step2CompletedAt"`
}

// Step3Data is the slot-booking snapshot.
type Step3Data struct {
	SelectedSlot     string    `bson:"selectedSlot" json:"selectedSlot"`
	SlotDate         time.Time `bson:"slotDate" json:"slotDate"`
	Step3CompletedAt time.Time `bson:"step3CompletedAt" json:"step3CompletedAt"`
}

// PostRegistrationData is the step-4 survey snapshot.
type PostRegistrationData struct {
	InterestLevel int       `bson:"interestLevel" json:"interestLevel"`
	Email         string    `bson:"email" json:"email"`
	CompletedAt   time.Time `bson:"completedAt" json:"completedAt"`
}

// Attribution carries first-touch campaign tags. The core never mutates it.
type Attribution struct {
	UTMSource   string `bson:"utmSource,omitempty" json:"utmSource,omitempty"`
	UTMMedium   string `bson:"utmMedium,omitempty" json:"utmMedium,omitempty"`
	UTMCampaign string `bson:"utmCampaign,omitempty" json:"utmCampaign,omitempty"`
	UTMContent  string `bson:"utmContent,omitempty" json:"utmContent,omitempty"`
}

// Submission is one registrant's form submission, unique per normalized
// 10-digit phone. Step snapshots are retained even as later steps overwrite
// the top-level fields.
//
// Field ownership: the registration state machine owns currentStep,
// applicationStatus and isRegistered; the notification scheduler owns the
// three sent/sentAt flag pairs. The sets are disjoint, so the two components
// never contend beyond the document's own atomic update.
type Submission struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName   string             `bson:"fullName" json:"fullName"`
	Phone      string             `bson:"phone" json:"phone"`
	Occupation string             `bson:"occupation" json:"occupation"`

	CurrentStep       int    `bson:"currentStep" json:"currentStep"`
	ApplicationStatus string `bson:"applicationStatus" json:"applicationStatus"`

	Step1Data            *Step1Data            `bson:"step1Data,omitempty" json:"step1Data,omitempty"`
	Step2Data            *Step2Data            `bson:"step2Data,omitempty" json:"step2Data,omitempty"`
	Step3Data            *Step3Data            `bson:"step3Data,omitempty" json:"step3Data,omitempty"`
	PostRegistrationData *PostRegistrationData `bson:"postRegistrationData,omitempty" json:"postRegistrationData,omitempty"`

	SelectedSlot  string     `bson:"selectedSlot,omitempty" json:"selectedSlot,omitempty"`
	IsRegistered  bool       `bson:"isRegistered" json:"isRegistered"`
	RegisteredAt  *time.Time `bson:"registeredAt,omitempty" json:"registeredAt,omitempty"`
	BookingRef    string     `bson:"bookingRef,omitempty" json:"bookingRef,omitempty"`
	Email         string     `bson:"email,omitempty" json:"email,omitempty"`
	InterestLevel int        `bson:"interestLevel,omitempty" json:"interestLevel,omitempty"`

	// Notification flags: each transitions false -> true exactly once and is
	// only set after a confirmed-successful send.
	ReminderSent        bool       `bson:"reminderSent" json:"reminderSent"`
	ReminderSentAt      *time.Time `bson:"reminderSentAt,omitempty" json:"reminderSentAt,omitempty"`
	MeetLinkSent        bool       `bson:"meetLinkSent" json:"meetLinkSent"`
	MeetLinkSentAt      *time.Time `bson:"meetLinkSentAt,omitempty" json:"meetLinkSentAt,omitempty"`
	Reminder30MinSent   bool       `bson:"reminder30MinSent" json:"reminder30MinSent"`
	Reminder30MinSentAt *time.Time `bson:"reminder30MinSentAt,omitempty" json:"reminder30MinSentAt,omitempty"`

	Attribution    *Attribution `bson:"attribution,omitempty" json:"attribution,omitempty"`
	Notes          string       `bson:"notes,omitempty" json:"notes,omitempty"`
	FollowUpStatus string       `bson:"followUpStatus,omitempty" json:"followUpStatus,omitempty"`

	// SheetRow points at the mirrored Google Sheets row. Optional: core
	// correctness never depends on it being present.
	SheetRow int64 `bson:"sheetRow,omitempty" json:"sheetRow,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SlotDate returns the booked slot instant, zero when no slot is booked.
func (s *Submission) SlotDate() time.Time {
	if s.Step3Data == nil {
		return time.Time{}
	}
	return s.Step3Data.SlotDate
}
