// Package recurring contains recurring schedule use cases.
package recurring

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/entity"
	"github.com/finance-tracker/recurring/internal/domain/valueobject"
)

// CreateScheduleInput represents the input for recurring schedule creation.
type CreateScheduleInput struct {
	UserID           uuid.UUID
	Amount           decimal.Decimal
	Description      string
	Category         string
	Kind             entity.TransactionType
	AccountRef       string
	Frequency        valueobject.Frequency
	AnchorDayOfWeek  *int // Only read for weekly schedules
	AnchorDayOfMonth *int // Only read for monthly, quarterly and yearly schedules
	StartDate        time.Time
	EndDate          *time.Time // Optional
	Notes            string
	Tags             []string
}

// CreateScheduleOutput represents the output of recurring schedule creation.
type CreateScheduleOutput struct {
	Schedule *entity.RecurringSchedule
}

// CreateScheduleUseCase handles recurring schedule creation logic.
type CreateScheduleUseCase struct {
	scheduleRepo adapter.RecurringScheduleRepository
}

// NewCreateScheduleUseCase creates a new CreateScheduleUseCase instance.
func NewCreateScheduleUseCase(scheduleRepo adapter.RecurringScheduleRepository) *CreateScheduleUseCase {
	return &CreateScheduleUseCase{
		scheduleRepo: scheduleRepo,
	}
}

// Execute performs the recurring schedule creation.
func (uc *CreateScheduleUseCase) Execute(ctx context.Context, input CreateScheduleInput) (*CreateScheduleOutput, error) {
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}
	if err := validateKind(input.Kind); err != nil {
		return nil, err
	}
	if err := validateDates(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	cadence, err := buildCadence(input.Frequency, input.AnchorDayOfWeek, input.AnchorDayOfMonth)
	if err != nil {
		return nil, err
	}

	schedule := entity.NewRecurringSchedule(
		input.UserID,
		input.Amount,
		input.Description,
		input.Category,
		input.Kind,
		input.AccountRef,
		cadence,
		input.StartDate,
		dateOfPtr(input.EndDate),
	)
	schedule.Notes = input.Notes
	if input.Tags != nil {
		schedule.Tags = input.Tags
	}

	if err := uc.scheduleRepo.Create(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to create recurring schedule: %w", err)
	}

	slog.Info("Recurring schedule created",
		"scheduleID", schedule.ID,
		"userID", schedule.UserID,
		"frequency", cadence.Frequency(),
		"nextDueDate", valueobject.FormatDate(schedule.NextDueDate),
	)

	return &CreateScheduleOutput{
		Schedule: schedule,
	}, nil
}
