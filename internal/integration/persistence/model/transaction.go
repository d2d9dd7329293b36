// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/recurring/internal/domain/entity"
	"github.com/finance-tracker/recurring/internal/domain/valueobject"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID              uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date                time.Time       `gorm:"type:date;not null;index"`
	Description         string          `gorm:"type:varchar(255);not null"`
	Amount              decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Type                string          `gorm:"type:varchar(10);not null;index"`
	Category            string          `gorm:"type:varchar(100)"`
	AccountRef          string          `gorm:"type:varchar(100)"`
	Notes               string          `gorm:"type:text"`
	Tags                StringList      `gorm:"type:text"`
	IsRecurring         bool            `gorm:"not null"`
	RecurringScheduleID *uuid.UUID      `gorm:"type:uuid;index"`
	OccurrenceKey       *string         `gorm:"type:varchar(64);uniqueIndex"`
	CreatedAt           time.Time       `gorm:"not null"`
	UpdatedAt           time.Time       `gorm:"not null"`
	DeletedAt           gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	tags := []string(m.Tags)
	if tags == nil {
		tags = []string{}
	}

	return &entity.Transaction{
		ID:                  m.ID,
		UserID:              m.UserID,
		Date:                valueobject.DateOf(m.Date),
		Description:         m.Description,
		Amount:              m.Amount,
		Type:                entity.TransactionType(m.Type),
		Category:            m.Category,
		AccountRef:          m.AccountRef,
		Notes:               m.Notes,
		Tags:                tags,
		IsRecurring:         m.IsRecurring,
		RecurringScheduleID: m.RecurringScheduleID,
		OccurrenceKey:       m.OccurrenceKey,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
		DeletedAt:           deletedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(t *entity.Transaction) *TransactionModel {
	var deletedAt gorm.DeletedAt
	if t.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *t.DeletedAt, Valid: true}
	}

	return &TransactionModel{
		ID:                  t.ID,
		UserID:              t.UserID,
		Date:                t.Date,
		Description:         t.Description,
		Amount:              t.Amount,
		Type:                string(t.Type),
		Category:            t.Category,
		AccountRef:          t.AccountRef,
		Notes:               t.Notes,
		Tags:                StringList(t.Tags),
		IsRecurring:         t.IsRecurring,
		RecurringScheduleID: t.RecurringScheduleID,
		OccurrenceKey:       t.OccurrenceKey,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
		DeletedAt:           deletedAt,
	}
}
