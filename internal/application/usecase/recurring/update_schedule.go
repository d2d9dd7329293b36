// Package recurring contains recurring schedule use cases.
package recurring

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/entity"
	"github.com/finance-tracker/recurring/internal/domain/valueobject"
)

// UpdateScheduleInput represents the input for recurring schedule update.
// Nil fields are left unchanged. Frequency and anchors are replaced together.
type UpdateScheduleInput struct {
	ScheduleID       uuid.UUID
	UserID           uuid.UUID
	Amount           *decimal.Decimal
	Description      *string
	Category         *string
	Kind             *entity.TransactionType
	AccountRef       *string
	Frequency        *valueobject.Frequency
	AnchorDayOfWeek  *int
	AnchorDayOfMonth *int
	StartDate        *time.Time
	EndDate          *time.Time
	ClearEndDate     bool
	Notes            *string
	Tags             []string
}

// UpdateScheduleOutput represents the output of recurring schedule update.
type UpdateScheduleOutput struct {
	Schedule *entity.RecurringSchedule
}

// UpdateScheduleUseCase handles owner edits of a recurring schedule.
type UpdateScheduleUseCase struct {
	scheduleRepo adapter.RecurringScheduleRepository
}

// NewUpdateScheduleUseCase creates a new UpdateScheduleUseCase instance.
func NewUpdateScheduleUseCase(scheduleRepo adapter.RecurringScheduleRepository) *UpdateScheduleUseCase {
	return &UpdateScheduleUseCase{
		scheduleRepo: scheduleRepo,
	}
}

// Execute performs the recurring schedule update.
func (uc *UpdateScheduleUseCase) Execute(ctx context.Context, input UpdateScheduleInput) (*UpdateScheduleOutput, error) {
	schedule, err := findOwnedSchedule(ctx, uc.scheduleRepo, input.ScheduleID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		schedule.Amount = *input.Amount
	}

	if input.Description != nil {
		if err := validateDescription(*input.Description); err != nil {
			return nil, err
		}
		schedule.Description = *input.Description
	}

	if input.Kind != nil {
		if err := validateKind(*input.Kind); err != nil {
			return nil, err
		}
		schedule.Kind = *input.Kind
	}

	if input.Category != nil {
		schedule.Category = *input.Category
	}
	if input.AccountRef != nil {
		schedule.AccountRef = *input.AccountRef
	}
	if input.Notes != nil {
		schedule.Notes = *input.Notes
	}
	if input.Tags != nil {
		schedule.Tags = input.Tags
	}

	recompute := false

	if input.Frequency != nil {
		cadence, err := buildCadence(*input.Frequency, input.AnchorDayOfWeek, input.AnchorDayOfMonth)
		if err != nil {
			return nil, err
		}
		schedule.Cadence = cadence
		recompute = true
	}

	if input.StartDate != nil {
		start := valueobject.DateOf(*input.StartDate)
		if !start.Equal(schedule.StartDate) {
			schedule.StartDate = start
			recompute = true
		}
	}

	if input.ClearEndDate {
		schedule.EndDate = nil
	} else if input.EndDate != nil {
		schedule.EndDate = dateOfPtr(input.EndDate)
	}

	if err := validateDates(schedule.StartDate, schedule.EndDate); err != nil {
		return nil, err
	}

	if recompute {
		schedule.RecomputeNextDueDate()
	}
	schedule.UpdatedAt = time.Now().UTC()

	if err := uc.scheduleRepo.Update(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to update recurring schedule: %w", err)
	}

	return &UpdateScheduleOutput{
		Schedule: schedule,
	}, nil
}
