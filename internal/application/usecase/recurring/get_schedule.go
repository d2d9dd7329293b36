// Package recurring contains recurring schedule use cases.
package recurring

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/entity"
)

// GetScheduleInput represents the input for retrieving a recurring schedule.
type GetScheduleInput struct {
	ScheduleID uuid.UUID
	UserID     uuid.UUID
}

// GetScheduleOutput represents the output of retrieving a recurring schedule.
type GetScheduleOutput struct {
	Schedule *entity.RecurringSchedule
}

// GetScheduleUseCase handles retrieving a single recurring schedule.
type GetScheduleUseCase struct {
	scheduleRepo adapter.RecurringScheduleRepository
}

// NewGetScheduleUseCase creates a new GetScheduleUseCase instance.
func NewGetScheduleUseCase(scheduleRepo adapter.RecurringScheduleRepository) *GetScheduleUseCase {
	return &GetScheduleUseCase{
		scheduleRepo: scheduleRepo,
	}
}

// Execute retrieves the schedule if the user owns it.
func (uc *GetScheduleUseCase) Execute(ctx context.Context, input GetScheduleInput) (*GetScheduleOutput, error) {
	schedule, err := findOwnedSchedule(ctx, uc.scheduleRepo, input.ScheduleID, input.UserID)
	if err != nil {
		return nil, err
	}

	return &GetScheduleOutput{
		Schedule: schedule,
	}, nil
}
