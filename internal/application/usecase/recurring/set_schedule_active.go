// Package recurring contains recurring schedule use cases.
package recurring

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/entity"
)

// SetScheduleActiveInput represents the input for toggling a schedule.
type SetScheduleActiveInput struct {
	ScheduleID uuid.UUID
	UserID     uuid.UUID
	Active     bool
}

// SetScheduleActiveOutput represents the output of toggling a schedule.
type SetScheduleActiveOutput struct {
	Schedule *entity.RecurringSchedule
}

// SetScheduleActiveUseCase handles explicit activation and deactivation by the owner.
type SetScheduleActiveUseCase struct {
	scheduleRepo adapter.RecurringScheduleRepository
}

// NewSetScheduleActiveUseCase creates a new SetScheduleActiveUseCase instance.
func NewSetScheduleActiveUseCase(scheduleRepo adapter.RecurringScheduleRepository) *SetScheduleActiveUseCase {
	return &SetScheduleActiveUseCase{
		scheduleRepo: scheduleRepo,
	}
}

// Execute sets the active flag. The next due date is left untouched.
func (uc *SetScheduleActiveUseCase) Execute(ctx context.Context, input SetScheduleActiveInput) (*SetScheduleActiveOutput, error) {
	schedule, err := findOwnedSchedule(ctx, uc.scheduleRepo, input.ScheduleID, input.UserID)
	if err != nil {
		return nil, err
	}

	if schedule.IsActive == input.Active {
		return &SetScheduleActiveOutput{Schedule: schedule}, nil
	}

	schedule.IsActive = input.Active
	schedule.UpdatedAt = time.Now().UTC()

	if err := uc.scheduleRepo.Update(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to update recurring schedule: %w", err)
	}

	slog.Info("Recurring schedule toggled",
		"scheduleID", schedule.ID,
		"active", schedule.IsActive,
	)

	return &SetScheduleActiveOutput{
		Schedule: schedule,
	}, nil
}
