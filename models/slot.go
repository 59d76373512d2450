package models

import "time"

// SlotConfig is the global on/off switch for one recurring weekly slot
// (all future occurrences). Absent config means enabled.
type SlotConfig struct {
	SlotID    string    `bson:"slotId" json:"slotId"`
	Enabled   bool      `bson:"enabled" json:"enabled"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SlotDateOverride enables or disables one slot on one specific IST calendar
// date only. Overrides win over SlotConfig; absence defers to it.
type SlotDateOverride struct {
	Date      string    `bson:"date" json:"date"` // IST calendar date, "YYYY-MM-DD"
	SlotID    string    `bson:"slotId" json:"slotId"`
	Enabled   bool      `bson:"enabled" json:"enabled"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Slot is one bookable occurrence offered to the client.
type Slot struct {
	ID      string    `json:"id"`
	Label   string    `json:"label"`
	Date    time.Time `json:"date"`
	Enabled bool      `json:"enabled"`
}
