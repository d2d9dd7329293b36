// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/recurring/internal/application/usecase/recurring"
	"github.com/finance-tracker/recurring/internal/domain/entity"
	"github.com/finance-tracker/recurring/internal/domain/valueobject"
)

// CreateScheduleRequest represents the request body for recurring schedule creation.
type CreateScheduleRequest struct {
	Amount           decimal.Decimal `json:"amount"`
	Description      string          `json:"description" binding:"required,min=1,max=255"`
	Category         string          `json:"category" binding:"max=100"`
	Kind             string          `json:"kind" binding:"required,oneof=expense income"`
	AccountRef       string          `json:"account_ref,omitempty" binding:"max=100"`
	Frequency        string          `json:"frequency" binding:"required,oneof=weekly monthly quarterly yearly"`
	AnchorDayOfWeek  *int            `json:"anchor_day_of_week,omitempty"`
	AnchorDayOfMonth *int            `json:"anchor_day_of_month,omitempty"`
	StartDate        string          `json:"start_date" binding:"required"`
	EndDate          *string         `json:"end_date,omitempty"`
	Notes            string          `json:"notes,omitempty" binding:"max=1000"`
	Tags             []string        `json:"tags,omitempty"`
}

// ToInput converts the request into use case input.
func (r CreateScheduleRequest) ToInput(userID uuid.UUID) (recurring.CreateScheduleInput, error) {
	start, err := valueobject.ParseDate(r.StartDate)
	if err != nil {
		return recurring.CreateScheduleInput{}, fmt.Errorf("start_date: %w", err)
	}
	end, err := parseOptionalDate(r.EndDate)
	if err != nil {
		return recurring.CreateScheduleInput{}, fmt.Errorf("end_date: %w", err)
	}

	return recurring.CreateScheduleInput{
		UserID:           userID,
		Amount:           r.Amount,
		Description:      r.Description,
		Category:         r.Category,
		Kind:             entity.TransactionType(r.Kind),
		AccountRef:       r.AccountRef,
		Frequency:        valueobject.Frequency(r.Frequency),
		AnchorDayOfWeek:  r.AnchorDayOfWeek,
		AnchorDayOfMonth: r.AnchorDayOfMonth,
		StartDate:        start,
		EndDate:          end,
		Notes:            r.Notes,
		Tags:             r.Tags,
	}, nil
}

// UpdateScheduleRequest represents the request body for recurring schedule update.
type UpdateScheduleRequest struct {
	Amount           *decimal.Decimal `json:"amount,omitempty"`
	Description      *string          `json:"description,omitempty" binding:"omitempty,min=1,max=255"`
	Category         *string          `json:"category,omitempty" binding:"omitempty,max=100"`
	Kind             *string          `json:"kind,omitempty" binding:"omitempty,oneof=expense income"`
	AccountRef       *string          `json:"account_ref,omitempty" binding:"omitempty,max=100"`
	Frequency        *string          `json:"frequency,omitempty" binding:"omitempty,oneof=weekly monthly quarterly yearly"`
	AnchorDayOfWeek  *int             `json:"anchor_day_of_week,omitempty"`
	AnchorDayOfMonth *int             `json:"anchor_day_of_month,omitempty"`
	StartDate        *string          `json:"start_date,omitempty"`
	EndDate          *string          `json:"end_date,omitempty"`
	ClearEndDate     bool             `json:"clear_end_date,omitempty"`
	Notes            *string          `json:"notes,omitempty" binding:"omitempty,max=1000"`
	Tags             []string         `json:"tags,omitempty"`
}

// ToInput converts the request into use case input.
func (r UpdateScheduleRequest) ToInput(scheduleID, userID uuid.UUID) (recurring.UpdateScheduleInput, error) {
	start, err := parseOptionalDate(r.StartDate)
	if err != nil {
		return recurring.UpdateScheduleInput{}, fmt.Errorf("start_date: %w", err)
	}
	end, err := parseOptionalDate(r.EndDate)
	if err != nil {
		return recurring.UpdateScheduleInput{}, fmt.Errorf("end_date: %w", err)
	}

	input := recurring.UpdateScheduleInput{
		ScheduleID:       scheduleID,
		UserID:           userID,
		Amount:           r.Amount,
		Description:      r.Description,
		Category:         r.Category,
		AccountRef:       r.AccountRef,
		AnchorDayOfWeek:  r.AnchorDayOfWeek,
		AnchorDayOfMonth: r.AnchorDayOfMonth,
		StartDate:        start,
		EndDate:          end,
		ClearEndDate:     r.ClearEndDate,
		Notes:            r.Notes,
		Tags:             r.Tags,
	}
	if r.Kind != nil {
		kind := entity.TransactionType(*r.Kind)
		input.Kind = &kind
	}
	if r.Frequency != nil {
		frequency := valueobject.Frequency(*r.Frequency)
		input.Frequency = &frequency
	}
	return input, nil
}

// ScheduleResponse represents a recurring schedule in API responses.
type ScheduleResponse struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	Amount            string    `json:"amount"`
	Description       string    `json:"description"`
	Category          string    `json:"category"`
	Kind              string    `json:"kind"`
	AccountRef        string    `json:"account_ref,omitempty"`
	Frequency         string    `json:"frequency"`
	AnchorDayOfWeek   *int      `json:"anchor_day_of_week,omitempty"`
	AnchorDayOfMonth  *int      `json:"anchor_day_of_month,omitempty"`
	StartDate         string    `json:"start_date"`
	EndDate           *string   `json:"end_date,omitempty"`
	IsActive          bool      `json:"is_active"`
	NextDueDate       string    `json:"next_due_date"`
	LastGeneratedDate *string   `json:"last_generated_date,omitempty"`
	Notes             string    `json:"notes"`
	Tags              []string  `json:"tags"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ScheduleListResponse represents a list of recurring schedules.
type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
}

// ToScheduleResponse converts a domain RecurringSchedule to a ScheduleResponse DTO.
func ToScheduleResponse(s *entity.RecurringSchedule) ScheduleResponse {
	tags := s.Tags
	if tags == nil {
		tags = []string{}
	}

	return ScheduleResponse{
		ID:                s.ID.String(),
		UserID:            s.UserID.String(),
		Amount:            s.Amount.StringFixed(2),
		Description:       s.Description,
		Category:          s.Category,
		Kind:              string(s.Kind),
		AccountRef:        s.AccountRef,
		Frequency:         string(s.Cadence.Frequency()),
		AnchorDayOfWeek:   s.Cadence.AnchorDayOfWeek(),
		AnchorDayOfMonth:  s.Cadence.AnchorDayOfMonth(),
		StartDate:         valueobject.FormatDate(s.StartDate),
		EndDate:           formatOptionalDate(s.EndDate),
		IsActive:          s.IsActive,
		NextDueDate:       valueobject.FormatDate(s.NextDueDate),
		LastGeneratedDate: formatOptionalDate(s.LastGeneratedDate),
		Notes:             s.Notes,
		Tags:              tags,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

// ToScheduleListResponse converts schedules to a ScheduleListResponse DTO.
func ToScheduleListResponse(schedules []*entity.RecurringSchedule) ScheduleListResponse {
	items := make([]ScheduleResponse, 0, len(schedules))
	for _, s := range schedules {
		items = append(items, ToScheduleResponse(s))
	}
	return ScheduleListResponse{Schedules: items}
}

// UpcomingOccurrenceResponse represents one projected occurrence.
type UpcomingOccurrenceResponse struct {
	ScheduleID  string `json:"schedule_id"`
	DueDate     string `json:"due_date"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Kind        string `json:"kind"`
	Frequency   string `json:"frequency"`
}

// UpcomingResponse represents the projection over a horizon. To is exclusive.
type UpcomingResponse struct {
	From        string                       `json:"from"`
	To          string                       `json:"to"`
	Occurrences []UpcomingOccurrenceResponse `json:"occurrences"`
}

// ToUpcomingResponse converts a projection to an UpcomingResponse DTO.
func ToUpcomingResponse(output *recurring.ListUpcomingOutput) UpcomingResponse {
	items := make([]UpcomingOccurrenceResponse, 0, len(output.Occurrences))
	for _, o := range output.Occurrences {
		items = append(items, UpcomingOccurrenceResponse{
			ScheduleID:  o.Schedule.ID.String(),
			DueDate:     valueobject.FormatDate(o.DueDate),
			Amount:      o.Schedule.Amount.StringFixed(2),
			Description: o.Schedule.Description,
			Category:    o.Schedule.Category,
			Kind:        string(o.Schedule.Kind),
			Frequency:   string(o.Schedule.Cadence.Frequency()),
		})
	}

	return UpcomingResponse{
		From:        valueobject.FormatDate(output.From),
		To:          valueobject.FormatDate(output.To),
		Occurrences: items,
	}
}

// GeneratedTransactionResponse represents a transaction generated by a schedule.
type GeneratedTransactionResponse struct {
	ID          string    `json:"id"`
	ScheduleID  string    `json:"schedule_id"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	AccountRef  string    `json:"account_ref,omitempty"`
	Notes       string    `json:"notes"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
}

// GeneratedTransactionListResponse represents a schedule's transaction history.
type GeneratedTransactionListResponse struct {
	Transactions []GeneratedTransactionResponse `json:"transactions"`
}

// ToGeneratedTransactionListResponse converts transactions to a GeneratedTransactionListResponse DTO.
func ToGeneratedTransactionListResponse(transactions []*entity.Transaction) GeneratedTransactionListResponse {
	items := make([]GeneratedTransactionResponse, 0, len(transactions))
	for _, txn := range transactions {
		item := GeneratedTransactionResponse{
			ID:          txn.ID.String(),
			Date:        valueobject.FormatDate(txn.Date),
			Description: txn.Description,
			Amount:      txn.Amount.StringFixed(2),
			Type:        string(txn.Type),
			Category:    txn.Category,
			AccountRef:  txn.AccountRef,
			Notes:       txn.Notes,
			Tags:        txn.Tags,
			CreatedAt:   txn.CreatedAt,
		}
		if txn.RecurringScheduleID != nil {
			item.ScheduleID = txn.RecurringScheduleID.String()
		}
		if item.Tags == nil {
			item.Tags = []string{}
		}
		items = append(items, item)
	}
	return GeneratedTransactionListResponse{Transactions: items}
}

// ScheduleOutcomeResponse represents the processing result for one schedule.
type ScheduleOutcomeResponse struct {
	ScheduleID    string  `json:"schedule_id"`
	Status        string  `json:"status"`
	DueDate       *string `json:"due_date,omitempty"`
	NextDueDate   *string `json:"next_due_date,omitempty"`
	TransactionID *string `json:"transaction_id,omitempty"`
	Reason        string  `json:"reason,omitempty"`
}

// DueProcessingResponse represents the result of a manual due-processing run.
type DueProcessingResponse struct {
	Generated int                       `json:"generated"`
	Outcomes  []ScheduleOutcomeResponse `json:"outcomes"`
}

// ToDueProcessingResponse converts a due-processing result to a DueProcessingResponse DTO.
func ToDueProcessingResponse(output *recurring.ApplyDueProcessingOutput) DueProcessingResponse {
	items := make([]ScheduleOutcomeResponse, 0, len(output.Outcomes))
	for _, o := range output.Outcomes {
		item := ScheduleOutcomeResponse{
			ScheduleID:  o.ScheduleID.String(),
			Status:      string(o.Status),
			DueDate:     formatNonZeroDate(o.DueDate),
			NextDueDate: formatNonZeroDate(o.NextDueDate),
			Reason:      o.Reason,
		}
		if o.TransactionID != nil {
			id := o.TransactionID.String()
			item.TransactionID = &id
		}
		items = append(items, item)
	}
	return DueProcessingResponse{
		Generated: output.Generated,
		Outcomes:  items,
	}
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := valueobject.ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := valueobject.FormatDate(*t)
	return &s
}

func formatNonZeroDate(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	return formatOptionalDate(&t)
}
