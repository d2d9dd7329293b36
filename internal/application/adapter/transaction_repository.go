// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/domain/entity"
)

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByRecurringSchedule retrieves the transactions generated by a schedule, newest first.
	FindByRecurringSchedule(ctx context.Context, scheduleID uuid.UUID) ([]*entity.Transaction, error)

	// ExistsByOccurrenceKey checks if an occurrence has already been recorded.
	ExistsByOccurrenceKey(ctx context.Context, key string) (bool, error)
}
