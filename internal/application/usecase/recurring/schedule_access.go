// Package recurring contains recurring schedule use cases.
package recurring

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/entity"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
	"github.com/finance-tracker/recurring/internal/domain/valueobject"
)

// findOwnedSchedule loads a schedule and checks that it belongs to userID.
func findOwnedSchedule(
	ctx context.Context,
	repo adapter.RecurringScheduleRepository,
	scheduleID uuid.UUID,
	userID uuid.UUID,
) (*entity.RecurringSchedule, error) {
	schedule, err := repo.FindByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, domainerror.ErrRecurringScheduleNotFound) {
			return nil, domainerror.NewRecurringError(
				domainerror.ErrCodeScheduleNotFound,
				"recurring schedule not found",
				domainerror.ErrRecurringScheduleNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find recurring schedule: %w", err)
	}

	if schedule.UserID != userID {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeUnauthorizedSchedule,
			"not authorized to access this recurring schedule",
			domainerror.ErrUnauthorizedScheduleAccess,
		)
	}

	return schedule, nil
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidScheduleAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidScheduleAmount,
		)
	}
	return nil
}

func validateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeMissingScheduleFields,
			"description is required",
			domainerror.ErrMissingDescription,
		)
	}
	return nil
}

func validateKind(kind entity.TransactionType) error {
	if !kind.IsValid() {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidScheduleKind,
			"kind must be 'expense' or 'income'",
			domainerror.ErrInvalidScheduleKind,
		)
	}
	return nil
}

func validateDates(startDate time.Time, endDate *time.Time) error {
	if endDate != nil && valueobject.DateOf(*endDate).Before(valueobject.DateOf(startDate)) {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidScheduleDates,
			"end date must not be before start date",
			domainerror.ErrInvalidScheduleDates,
		)
	}
	return nil
}

// buildCadence maps cadence construction failures to coded errors.
func buildCadence(frequency valueobject.Frequency, anchorDayOfWeek, anchorDayOfMonth *int) (valueobject.Cadence, error) {
	cadence, err := valueobject.NewCadence(frequency, anchorDayOfWeek, anchorDayOfMonth)
	if err == nil {
		return cadence, nil
	}

	if errors.Is(err, domainerror.ErrInvalidAnchorDay) {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidAnchorDay,
			"anchor day of week must be 0-6 and anchor day of month 1-31",
			domainerror.ErrInvalidAnchorDay,
		)
	}
	return nil, domainerror.NewRecurringError(
		domainerror.ErrCodeInvalidFrequency,
		"frequency must be 'weekly', 'monthly', 'quarterly', or 'yearly'",
		domainerror.ErrInvalidFrequency,
	)
}

func dateOfPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := valueobject.DateOf(*t)
	return &d
}
