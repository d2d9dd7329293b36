// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryStatus represents the outcome of a reminder dispatch.
type DeliveryStatus string

const (
	DeliveryStatusSent   DeliveryStatus = "sent"
	DeliveryStatusFailed DeliveryStatus = "failed"
)

// ReminderDelivery records one reminder dispatch attempt.
type ReminderDelivery struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	ScheduleID   uuid.UUID
	DueDate      time.Time
	DaysUntilDue int
	Title        string
	Status       DeliveryStatus
	ProviderID   string
	LastError    string
	CreatedAt    time.Time
}

// NewReminderDelivery creates a delivery record for a dispatched reminder.
func NewReminderDelivery(userID, scheduleID uuid.UUID, dueDate time.Time, daysUntilDue int, title string) *ReminderDelivery {
	return &ReminderDelivery{
		ID:           uuid.New(),
		UserID:       userID,
		ScheduleID:   scheduleID,
		DueDate:      dueDate,
		DaysUntilDue: daysUntilDue,
		Title:        title,
		CreatedAt:    time.Now().UTC(),
	}
}

// MarkSent marks the delivery as accepted by the provider.
func (d *ReminderDelivery) MarkSent(providerID string) {
	d.Status = DeliveryStatusSent
	d.ProviderID = providerID
}

// MarkFailed marks the delivery as failed. Reminders are never retried.
func (d *ReminderDelivery) MarkFailed(err error) {
	d.Status = DeliveryStatusFailed
	d.LastError = err.Error()
}
