// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/recurring/internal/domain/valueobject"
)

// RecurringSchedule describes a repeating financial event owned by a user.
// NextDueDate is the only pointer driving generation; it never moves backwards.
type RecurringSchedule struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Amount            decimal.Decimal // Always positive, the sign comes from Kind
	Description       string
	Category          string
	Kind              TransactionType
	AccountRef        string
	Cadence           valueobject.Cadence
	StartDate         time.Time
	EndDate           *time.Time
	IsActive          bool
	NextDueDate       time.Time
	LastGeneratedDate *time.Time
	Notes             string
	Tags              []string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time // Soft-delete support
}

// NewRecurringSchedule creates a new active RecurringSchedule whose first due
// date is derived from the start date and the cadence anchor.
func NewRecurringSchedule(
	userID uuid.UUID,
	amount decimal.Decimal,
	description string,
	category string,
	kind TransactionType,
	accountRef string,
	cadence valueobject.Cadence,
	startDate time.Time,
	endDate *time.Time,
) *RecurringSchedule {
	now := time.Now().UTC()
	start := valueobject.DateOf(startDate)

	return &RecurringSchedule{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      amount,
		Description: description,
		Category:    category,
		Kind:        kind,
		AccountRef:  accountRef,
		Cadence:     cadence,
		StartDate:   start,
		EndDate:     endDate,
		IsActive:    true,
		NextDueDate: valueobject.FirstDueDate(start, cadence),
		Tags:        []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsExpired reports whether the end date lies before the calendar day of now.
func (s *RecurringSchedule) IsExpired(now time.Time) bool {
	return s.EndDate != nil && valueobject.DateOf(now).After(*s.EndDate)
}

// IsDue reports whether the next due date has arrived on the calendar day of now.
func (s *RecurringSchedule) IsDue(now time.Time) bool {
	return !valueobject.DateOf(now).Before(s.NextDueDate)
}

// RecomputeNextDueDate derives the next due date after an owner edit of the
// cadence or the start date. Once an occurrence has been generated the
// pointer continues strictly after it.
func (s *RecurringSchedule) RecomputeNextDueDate() {
	if s.LastGeneratedDate != nil {
		s.NextDueDate = valueobject.ComputeNextDueDate(*s.LastGeneratedDate, s.Cadence)
		return
	}
	s.NextDueDate = valueobject.FirstDueDate(s.StartDate, s.Cadence)
}

// Clone returns a deep copy of the schedule.
func (s *RecurringSchedule) Clone() *RecurringSchedule {
	c := *s
	if s.EndDate != nil {
		end := *s.EndDate
		c.EndDate = &end
	}
	if s.LastGeneratedDate != nil {
		last := *s.LastGeneratedDate
		c.LastGeneratedDate = &last
	}
	if s.DeletedAt != nil {
		deleted := *s.DeletedAt
		c.DeletedAt = &deleted
	}
	c.Tags = append([]string(nil), s.Tags...)
	return &c
}

// GeneratedTransaction is the immutable record emitted when a schedule fires.
// It is handed to the transaction store and never mutated afterwards.
type GeneratedTransaction struct {
	ScheduleID  uuid.UUID
	UserID      uuid.UUID
	Amount      decimal.Decimal
	Description string
	Category    string
	Kind        TransactionType
	AccountRef  string
	Notes       string
	Tags        []string
	OccurredOn  time.Time
}

// NewGeneratedTransaction builds the occurrence for the schedule's current due date.
func NewGeneratedTransaction(s *RecurringSchedule) GeneratedTransaction {
	return GeneratedTransaction{
		ScheduleID:  s.ID,
		UserID:      s.UserID,
		Amount:      s.Amount,
		Description: s.Description,
		Category:    s.Category,
		Kind:        s.Kind,
		AccountRef:  s.AccountRef,
		Notes:       s.Notes,
		Tags:        append([]string(nil), s.Tags...),
		OccurredOn:  s.NextDueDate,
	}
}

// IdempotencyKey identifies the occurrence across retries and sessions.
func (g GeneratedTransaction) IdempotencyKey() string {
	return g.ScheduleID.String() + ":" + valueobject.FormatDate(g.OccurredOn)
}
