// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/domain/entity"
	"github.com/finance-tracker/recurring/internal/domain/valueobject"
)

// ReminderConfigModel represents the reminder_configs table in the database.
type ReminderConfigModel struct {
	UserID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Enabled       bool      `gorm:"not null"`
	DaysBeforeDue int       `gorm:"type:integer;not null"`
	TimeOfDay     string    `gorm:"type:varchar(5);not null"`
	DueToday      bool      `gorm:"not null"`
	DueTomorrow   bool      `gorm:"not null"`
	DueIn3Days    bool      `gorm:"column:due_in_3_days;not null"`
	DueInWeek     bool      `gorm:"not null"`
	Target        string    `gorm:"type:varchar(255)"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the ReminderConfigModel.
func (ReminderConfigModel) TableName() string {
	return "reminder_configs"
}

// ToEntity converts a ReminderConfigModel to a domain ReminderConfig entity.
func (m *ReminderConfigModel) ToEntity() *entity.ReminderConfig {
	return &entity.ReminderConfig{
		UserID:        m.UserID,
		Enabled:       m.Enabled,
		DaysBeforeDue: m.DaysBeforeDue,
		TimeOfDay:     m.TimeOfDay,
		ReminderTypes: entity.ReminderTypes{
			DueToday:    m.DueToday,
			DueTomorrow: m.DueTomorrow,
			DueIn3Days:  m.DueIn3Days,
			DueInWeek:   m.DueInWeek,
		},
		Target:    m.Target,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ReminderConfigFromEntity creates a ReminderConfigModel from a domain ReminderConfig entity.
func ReminderConfigFromEntity(c *entity.ReminderConfig) *ReminderConfigModel {
	return &ReminderConfigModel{
		UserID:        c.UserID,
		Enabled:       c.Enabled,
		DaysBeforeDue: c.DaysBeforeDue,
		TimeOfDay:     c.TimeOfDay,
		DueToday:      c.ReminderTypes.DueToday,
		DueTomorrow:   c.ReminderTypes.DueTomorrow,
		DueIn3Days:    c.ReminderTypes.DueIn3Days,
		DueInWeek:     c.ReminderTypes.DueInWeek,
		Target:        c.Target,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// ReminderDeliveryModel represents the reminder_deliveries table in the database.
type ReminderDeliveryModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	ScheduleID   uuid.UUID `gorm:"type:uuid;not null;index"`
	DueDate      time.Time `gorm:"type:date;not null"`
	DaysUntilDue int       `gorm:"type:integer;not null"`
	Title        string    `gorm:"type:varchar(255);not null"`
	Status       string    `gorm:"type:varchar(20);not null;index"`
	ProviderID   string    `gorm:"type:varchar(255)"`
	LastError    string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"not null;index"`
}

// TableName returns the table name for the ReminderDeliveryModel.
func (ReminderDeliveryModel) TableName() string {
	return "reminder_deliveries"
}

// ToEntity converts a ReminderDeliveryModel to a domain ReminderDelivery entity.
func (m *ReminderDeliveryModel) ToEntity() *entity.ReminderDelivery {
	return &entity.ReminderDelivery{
		ID:           m.ID,
		UserID:       m.UserID,
		ScheduleID:   m.ScheduleID,
		DueDate:      valueobject.DateOf(m.DueDate),
		DaysUntilDue: m.DaysUntilDue,
		Title:        m.Title,
		Status:       entity.DeliveryStatus(m.Status),
		ProviderID:   m.ProviderID,
		LastError:    m.LastError,
		CreatedAt:    m.CreatedAt,
	}
}

// ReminderDeliveryFromEntity creates a ReminderDeliveryModel from a domain ReminderDelivery entity.
func ReminderDeliveryFromEntity(d *entity.ReminderDelivery) *ReminderDeliveryModel {
	return &ReminderDeliveryModel{
		ID:           d.ID,
		UserID:       d.UserID,
		ScheduleID:   d.ScheduleID,
		DueDate:      d.DueDate,
		DaysUntilDue: d.DaysUntilDue,
		Title:        d.Title,
		Status:       string(d.Status),
		ProviderID:   d.ProviderID,
		LastError:    d.LastError,
		CreatedAt:    d.CreatedAt,
	}
}

// AllModels lists the models managed by auto-migration.
func AllModels() []interface{} {
	return []interface{}{
		&RecurringScheduleModel{},
		&TransactionModel{},
		&ReminderConfigModel{},
		&ReminderDeliveryModel{},
	}
}
