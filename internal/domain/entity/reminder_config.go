// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReminderTypes selects which day-offset buckets produce a reminder.
type ReminderTypes struct {
	DueToday    bool
	DueTomorrow bool
	DueIn3Days  bool
	DueInWeek   bool
}

// ReminderConfig is a user's reminder preference record.
type ReminderConfig struct {
	UserID        uuid.UUID
	Enabled       bool
	DaysBeforeDue int
	TimeOfDay     string // HH:MM
	ReminderTypes ReminderTypes
	Target        string // Delivery address understood by the push sender
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DefaultReminderConfig returns the configuration used when a user has not stored one.
func DefaultReminderConfig(userID uuid.UUID) *ReminderConfig {
	now := time.Now().UTC()
	return &ReminderConfig{
		UserID:        userID,
		Enabled:       true,
		DaysBeforeDue: 3,
		TimeOfDay:     "09:00",
		ReminderTypes: ReminderTypes{
			DueToday:    true,
			DueTomorrow: true,
			DueIn3Days:  true,
			DueInWeek:   false,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
