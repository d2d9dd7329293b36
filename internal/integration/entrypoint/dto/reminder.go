// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/usecase/reminder"
	"github.com/finance-tracker/recurring/internal/domain/entity"
	"github.com/finance-tracker/recurring/internal/domain/valueobject"
)

// ReminderTypesRequest carries optional per-offset toggles.
type ReminderTypesRequest struct {
	DueToday    *bool `json:"due_today,omitempty"`
	DueTomorrow *bool `json:"due_tomorrow,omitempty"`
	DueIn3Days  *bool `json:"due_in_3_days,omitempty"`
	DueInWeek   *bool `json:"due_in_week,omitempty"`
}

// UpdateReminderConfigRequest represents the request body for a reminder config update.
// Omitted fields keep their stored value.
type UpdateReminderConfigRequest struct {
	Enabled       *bool                 `json:"enabled,omitempty"`
	DaysBeforeDue *int                  `json:"days_before_due,omitempty"`
	TimeOfDay     *string               `json:"time_of_day,omitempty"`
	ReminderTypes *ReminderTypesRequest `json:"reminder_types,omitempty"`
	Target        *string               `json:"target,omitempty" binding:"omitempty,max=255"`
}

// ToInput converts the request into use case input.
func (r UpdateReminderConfigRequest) ToInput(userID uuid.UUID) reminder.UpdateConfigInput {
	input := reminder.UpdateConfigInput{
		UserID:        userID,
		Enabled:       r.Enabled,
		DaysBeforeDue: r.DaysBeforeDue,
		TimeOfDay:     r.TimeOfDay,
		Target:        r.Target,
	}
	if r.ReminderTypes != nil {
		input.DueToday = r.ReminderTypes.DueToday
		input.DueTomorrow = r.ReminderTypes.DueTomorrow
		input.DueIn3Days = r.ReminderTypes.DueIn3Days
		input.DueInWeek = r.ReminderTypes.DueInWeek
	}
	return input
}

// ReminderTypesResponse represents the per-offset toggles.
type ReminderTypesResponse struct {
	DueToday    bool `json:"due_today"`
	DueTomorrow bool `json:"due_tomorrow"`
	DueIn3Days  bool `json:"due_in_3_days"`
	DueInWeek   bool `json:"due_in_week"`
}

// ReminderConfigResponse represents a reminder configuration in API responses.
type ReminderConfigResponse struct {
	Enabled       bool                  `json:"enabled"`
	DaysBeforeDue int                   `json:"days_before_due"`
	TimeOfDay     string                `json:"time_of_day"`
	ReminderTypes ReminderTypesResponse `json:"reminder_types"`
	Target        string                `json:"target,omitempty"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// ToReminderConfigResponse converts a domain ReminderConfig to a ReminderConfigResponse DTO.
func ToReminderConfigResponse(c *entity.ReminderConfig) ReminderConfigResponse {
	return ReminderConfigResponse{
		Enabled:       c.Enabled,
		DaysBeforeDue: c.DaysBeforeDue,
		TimeOfDay:     c.TimeOfDay,
		ReminderTypes: ReminderTypesResponse{
			DueToday:    c.ReminderTypes.DueToday,
			DueTomorrow: c.ReminderTypes.DueTomorrow,
			DueIn3Days:  c.ReminderTypes.DueIn3Days,
			DueInWeek:   c.ReminderTypes.DueInWeek,
		},
		Target:    c.Target,
		UpdatedAt: c.UpdatedAt,
	}
}

// ReminderCheckResponse summarises a manual reminder check.
type ReminderCheckResponse struct {
	Matched    int `json:"matched"`
	Dispatched int `json:"dispatched"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
}

// ToReminderCheckResponse converts a reminder check result to a ReminderCheckResponse DTO.
func ToReminderCheckResponse(output *reminder.CheckRemindersOutput) ReminderCheckResponse {
	return ReminderCheckResponse{
		Matched:    output.Matched,
		Dispatched: output.Dispatched,
		Skipped:    output.Skipped,
		Failed:     output.Failed,
	}
}

// ReminderDeliveryResponse represents one delivery log entry.
type ReminderDeliveryResponse struct {
	ID           string    `json:"id"`
	ScheduleID   string    `json:"schedule_id"`
	DueDate      string    `json:"due_date"`
	DaysUntilDue int       `json:"days_until_due"`
	Title        string    `json:"title"`
	Status       string    `json:"status"`
	Error        string    `json:"error,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ReminderDeliveryListResponse represents the delivery log.
type ReminderDeliveryListResponse struct {
	Deliveries []ReminderDeliveryResponse `json:"deliveries"`
}

// ToReminderDeliveryListResponse converts deliveries to a ReminderDeliveryListResponse DTO.
func ToReminderDeliveryListResponse(deliveries []*entity.ReminderDelivery) ReminderDeliveryListResponse {
	items := make([]ReminderDeliveryResponse, 0, len(deliveries))
	for _, d := range deliveries {
		items = append(items, ReminderDeliveryResponse{
			ID:           d.ID.String(),
			ScheduleID:   d.ScheduleID.String(),
			DueDate:      valueobject.FormatDate(d.DueDate),
			DaysUntilDue: d.DaysUntilDue,
			Title:        d.Title,
			Status:       string(d.Status),
			Error:        d.LastError,
			CreatedAt:    d.CreatedAt,
		})
	}
	return ReminderDeliveryListResponse{Deliveries: items}
}
