// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/domain/entity"
)

// RecurringScheduleRepository defines the interface for recurring schedule persistence operations.
type RecurringScheduleRepository interface {
	// Create creates a new recurring schedule in the database.
	Create(ctx context.Context, schedule *entity.RecurringSchedule) error

	// FindByID retrieves a recurring schedule by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringSchedule, error)

	// FindByUserID retrieves all recurring schedules for a given user.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringSchedule, error)

	// FindActiveByUserID retrieves the active recurring schedules for a given user.
	FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringSchedule, error)

	// FindAllActive retrieves the active recurring schedules of every user.
	FindAllActive(ctx context.Context) ([]*entity.RecurringSchedule, error)

	// Update saves an owner edit of a recurring schedule.
	Update(ctx context.Context, schedule *entity.RecurringSchedule) error

	// Delete removes a recurring schedule from the database (soft delete).
	Delete(ctx context.Context, id uuid.UUID) error
}

// OccurrenceCommitter persists the result of due processing for one schedule.
type OccurrenceCommitter interface {
	// Commit writes the advanced schedule and, when txn is not nil, inserts the
	// generated transaction, both in one database transaction. The schedule
	// write only applies while the stored next due date still equals
	// previousDueDate; otherwise domainerror.ErrScheduleConflict is returned and
	// nothing is written. inserted is false when the occurrence key was already
	// present in the transaction store.
	Commit(
		ctx context.Context,
		schedule *entity.RecurringSchedule,
		previousDueDate time.Time,
		txn *entity.Transaction,
	) (inserted bool, err error)
}
