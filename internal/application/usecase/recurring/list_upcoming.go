// Package recurring contains recurring schedule use cases.
package recurring

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
	"github.com/finance-tracker/recurring/internal/domain/valueobject"
)

const (
	// DefaultHorizonDays is the projection horizon used when none is given.
	DefaultHorizonDays = 30
	// MaxHorizonDays is the largest accepted projection horizon.
	MaxHorizonDays = 366
)

// ListUpcomingInput represents the input for listing upcoming occurrences.
type ListUpcomingInput struct {
	UserID uuid.UUID
	Days   int       // Zero means DefaultHorizonDays
	Now    time.Time // Zero means time.Now()
}

// ListUpcomingOutput represents the output of listing upcoming occurrences.
type ListUpcomingOutput struct {
	Occurrences []Occurrence
	From        time.Time
	To          time.Time // Exclusive
}

// ListUpcomingUseCase projects a user's schedules over a horizon starting today.
type ListUpcomingUseCase struct {
	scheduleRepo adapter.RecurringScheduleRepository
	loc          *time.Location
}

// NewListUpcomingUseCase creates a new ListUpcomingUseCase instance.
func NewListUpcomingUseCase(scheduleRepo adapter.RecurringScheduleRepository) *ListUpcomingUseCase {
	return &ListUpcomingUseCase{
		scheduleRepo: scheduleRepo,
		loc:          time.UTC,
	}
}

// InLocation sets the timezone that decides which day is today when no Now is given.
func (uc *ListUpcomingUseCase) InLocation(loc *time.Location) *ListUpcomingUseCase {
	if loc != nil {
		uc.loc = loc
	}
	return uc
}

// Execute performs the projection.
func (uc *ListUpcomingUseCase) Execute(ctx context.Context, input ListUpcomingInput) (*ListUpcomingOutput, error) {
	days := input.Days
	if days == 0 {
		days = DefaultHorizonDays
	}
	if days < 1 || days > MaxHorizonDays {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidHorizon,
			fmt.Sprintf("days must be between 1 and %d", MaxHorizonDays),
			domainerror.ErrInvalidHorizon,
		)
	}

	now := input.Now
	if now.IsZero() {
		now = time.Now().In(uc.loc)
	}
	today := valueobject.DateOf(now)

	schedules, err := uc.scheduleRepo.FindActiveByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring schedules: %w", err)
	}

	return &ListUpcomingOutput{
		Occurrences: ProjectUpcoming(schedules, days, today),
		From:        today,
		To:          today.AddDate(0, 0, days),
	}, nil
}
