package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OtpRecord is one OTP issuance for a phone. Only the keyed hash of the
// code is stored, never the plaintext. A TTL index on expiresAt guarantees
// eventual deletion even without explicit cleanup.
type OtpRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PhoneNumber string             `bson:"phoneNumber" json:"phoneNumber"`
	OtpHash     string             `bson:"otpHash" json:"-"`
	ExpiresAt   time.Time          `bson:"expiresAt" json:"expiresAt"`
	Attempts    int                `bson:"attempts" json:"attempts"`
	// Consumed marks a spent record: verified, expired or attempt-exhausted.
	// The record stays behind until the TTL reaps it so the resend cooldown
	// and the rolling rate window keep counting it.
	Consumed  bool      `bson:"consumed,omitempty" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
