// Package model defines database models for persistence layer.
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/recurring/internal/domain/entity"
	"github.com/finance-tracker/recurring/internal/domain/valueobject"
)

// RecurringScheduleModel represents the recurring_schedules table in the database.
// The cadence is flattened into frequency and the two anchor columns.
type RecurringScheduleModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount            decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description       string          `gorm:"type:varchar(255);not null"`
	Category          string          `gorm:"type:varchar(100)"`
	Kind              string          `gorm:"type:varchar(10);not null"`
	AccountRef        string          `gorm:"type:varchar(100)"`
	Frequency         string          `gorm:"type:varchar(20);not null"`
	AnchorDayOfWeek   *int            `gorm:"type:integer"`
	AnchorDayOfMonth  *int            `gorm:"type:integer"`
	StartDate         time.Time       `gorm:"type:date;not null"`
	EndDate           *time.Time      `gorm:"type:date"`
	IsActive          bool            `gorm:"not null;index"`
	NextDueDate       time.Time       `gorm:"type:date;not null;index"`
	LastGeneratedDate *time.Time      `gorm:"type:date"`
	Notes             string          `gorm:"type:text"`
	Tags              StringList      `gorm:"type:text"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
	DeletedAt         gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the RecurringScheduleModel.
func (RecurringScheduleModel) TableName() string {
	return "recurring_schedules"
}

// ToEntity converts a RecurringScheduleModel to a domain RecurringSchedule entity.
// It fails when the stored cadence columns do not form a valid cadence.
func (m *RecurringScheduleModel) ToEntity() (*entity.RecurringSchedule, error) {
	cadence, err := valueobject.NewCadence(valueobject.Frequency(m.Frequency), m.AnchorDayOfWeek, m.AnchorDayOfMonth)
	if err != nil {
		return nil, fmt.Errorf("recurring schedule %s: %w", m.ID, err)
	}

	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	tags := []string(m.Tags)
	if tags == nil {
		tags = []string{}
	}

	return &entity.RecurringSchedule{
		ID:                m.ID,
		UserID:            m.UserID,
		Amount:            m.Amount,
		Description:       m.Description,
		Category:          m.Category,
		Kind:              entity.TransactionType(m.Kind),
		AccountRef:        m.AccountRef,
		Cadence:           cadence,
		StartDate:         valueobject.DateOf(m.StartDate),
		EndDate:           datePtr(m.EndDate),
		IsActive:          m.IsActive,
		NextDueDate:       valueobject.DateOf(m.NextDueDate),
		LastGeneratedDate: datePtr(m.LastGeneratedDate),
		Notes:             m.Notes,
		Tags:              tags,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
		DeletedAt:         deletedAt,
	}, nil
}

// RecurringScheduleFromEntity creates a RecurringScheduleModel from a domain RecurringSchedule entity.
func RecurringScheduleFromEntity(s *entity.RecurringSchedule) *RecurringScheduleModel {
	var deletedAt gorm.DeletedAt
	if s.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *s.DeletedAt, Valid: true}
	}

	return &RecurringScheduleModel{
		ID:                s.ID,
		UserID:            s.UserID,
		Amount:            s.Amount,
		Description:       s.Description,
		Category:          s.Category,
		Kind:              string(s.Kind),
		AccountRef:        s.AccountRef,
		Frequency:         string(s.Cadence.Frequency()),
		AnchorDayOfWeek:   s.Cadence.AnchorDayOfWeek(),
		AnchorDayOfMonth:  s.Cadence.AnchorDayOfMonth(),
		StartDate:         s.StartDate,
		EndDate:           s.EndDate,
		IsActive:          s.IsActive,
		NextDueDate:       s.NextDueDate,
		LastGeneratedDate: s.LastGeneratedDate,
		Notes:             s.Notes,
		Tags:              StringList(s.Tags),
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
		DeletedAt:         deletedAt,
	}
}

// datePtr normalises a stored date to UTC midnight.
func datePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := valueobject.DateOf(*t)
	return &d
}
