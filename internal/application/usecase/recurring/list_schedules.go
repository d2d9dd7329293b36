// Package recurring contains recurring schedule use cases.
package recurring

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/entity"
)

// ListSchedulesInput represents the input for listing recurring schedules.
type ListSchedulesInput struct {
	UserID     uuid.UUID
	ActiveOnly bool
}

// ListSchedulesOutput represents the output of listing recurring schedules.
type ListSchedulesOutput struct {
	Schedules []*entity.RecurringSchedule
}

// ListSchedulesUseCase handles listing a user's recurring schedules.
type ListSchedulesUseCase struct {
	scheduleRepo adapter.RecurringScheduleRepository
}

// NewListSchedulesUseCase creates a new ListSchedulesUseCase instance.
func NewListSchedulesUseCase(scheduleRepo adapter.RecurringScheduleRepository) *ListSchedulesUseCase {
	return &ListSchedulesUseCase{
		scheduleRepo: scheduleRepo,
	}
}

// Execute lists the schedules ordered by next due date.
func (uc *ListSchedulesUseCase) Execute(ctx context.Context, input ListSchedulesInput) (*ListSchedulesOutput, error) {
	var (
		schedules []*entity.RecurringSchedule
		err       error
	)
	if input.ActiveOnly {
		schedules, err = uc.scheduleRepo.FindActiveByUserID(ctx, input.UserID)
	} else {
		schedules, err = uc.scheduleRepo.FindByUserID(ctx, input.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring schedules: %w", err)
	}

	if schedules == nil {
		schedules = []*entity.RecurringSchedule{}
	}

	return &ListSchedulesOutput{
		Schedules: schedules,
	}, nil
}
