// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// IsValid reports whether t is expense or income.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// Transaction represents a financial transaction in the Finance Tracker system.
type Transaction struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	Date                time.Time
	Description         string
	Amount              decimal.Decimal // Negative for expenses, positive for income
	Type                TransactionType
	Category            string
	AccountRef          string
	Notes               string
	Tags                []string
	IsRecurring         bool
	RecurringScheduleID *uuid.UUID
	OccurrenceKey       *string // Unique per generated occurrence
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           *time.Time // Soft-delete support
}

// NewTransactionFromOccurrence creates the transaction recorded for a generated occurrence.
func NewTransactionFromOccurrence(g GeneratedTransaction) *Transaction {
	now := time.Now().UTC()
	scheduleID := g.ScheduleID
	key := g.IdempotencyKey()

	amount := g.Amount.Abs()
	if g.Kind == TransactionTypeExpense {
		amount = amount.Neg()
	}

	return &Transaction{
		ID:                  uuid.New(),
		UserID:              g.UserID,
		Date:                g.OccurredOn,
		Description:         g.Description,
		Amount:              amount,
		Type:                g.Kind,
		Category:            g.Category,
		AccountRef:          g.AccountRef,
		Notes:               g.Notes,
		Tags:                append([]string(nil), g.Tags...),
		IsRecurring:         true,
		RecurringScheduleID: &scheduleID,
		OccurrenceKey:       &key,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}
