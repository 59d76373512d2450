package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AttendanceJoined is the only attendance status recorded today; the field
// stays a string so no-shows can be marked later without a migration.
const AttendanceJoined = "joined"

// MeetingAttendance records one person joining a demo meeting. It is keyed
// independently of Submission: walk-ins who never completed the funnel still
// get counted.
type MeetingAttendance struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	MobileNumber     string             `bson:"mobileNumber" json:"mobileNumber"`
	Timestamp        time.Time          `bson:"timestamp" json:"timestamp"`
	AttendanceStatus string             `bson:"attendanceStatus" json:"attendanceStatus"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}
