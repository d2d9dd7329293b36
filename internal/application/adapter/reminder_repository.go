// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/domain/entity"
)

// ReminderConfigRepository defines the interface for reminder configuration persistence.
type ReminderConfigRepository interface {
	// FindByUserID retrieves the stored configuration of a user.
	// Returns domainerror.ErrReminderConfigNotFound when none is stored.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.ReminderConfig, error)

	// Save creates or replaces the configuration of a user.
	Save(ctx context.Context, config *entity.ReminderConfig) error
}

// ReminderDeliveryRepository records reminder dispatch attempts.
type ReminderDeliveryRepository interface {
	// Create records a delivery attempt.
	Create(ctx context.Context, delivery *entity.ReminderDelivery) error

	// FindByUserID retrieves the most recent deliveries of a user.
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.ReminderDelivery, error)
}

// ReminderLedger remembers which reminder buckets have already been notified.
type ReminderLedger interface {
	// MarkIfAbsent records key and reports whether it was newly recorded.
	MarkIfAbsent(ctx context.Context, key string) (bool, error)
}
