// Package recurring contains recurring schedule use cases.
package recurring

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/adapter"
)

// DeleteScheduleInput represents the input for recurring schedule deletion.
type DeleteScheduleInput struct {
	ScheduleID uuid.UUID
	UserID     uuid.UUID
}

// DeleteScheduleOutput represents the output of recurring schedule deletion.
type DeleteScheduleOutput struct {
	Success bool
}

// DeleteScheduleUseCase handles recurring schedule deletion logic.
// Transactions already generated by the schedule are kept.
type DeleteScheduleUseCase struct {
	scheduleRepo adapter.RecurringScheduleRepository
}

// NewDeleteScheduleUseCase creates a new DeleteScheduleUseCase instance.
func NewDeleteScheduleUseCase(scheduleRepo adapter.RecurringScheduleRepository) *DeleteScheduleUseCase {
	return &DeleteScheduleUseCase{
		scheduleRepo: scheduleRepo,
	}
}

// Execute performs the recurring schedule deletion.
func (uc *DeleteScheduleUseCase) Execute(ctx context.Context, input DeleteScheduleInput) (*DeleteScheduleOutput, error) {
	if _, err := findOwnedSchedule(ctx, uc.scheduleRepo, input.ScheduleID, input.UserID); err != nil {
		return nil, err
	}

	if err := uc.scheduleRepo.Delete(ctx, input.ScheduleID); err != nil {
		return nil, fmt.Errorf("failed to delete recurring schedule: %w", err)
	}

	return &DeleteScheduleOutput{
		Success: true,
	}, nil
}
