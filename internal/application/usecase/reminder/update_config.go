// Package reminder contains bill reminder use cases.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/entity"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
)

// UpdateConfigInput represents a partial reminder configuration update.
// Nil fields keep their current value.
type UpdateConfigInput struct {
	UserID        uuid.UUID
	Enabled       *bool
	DaysBeforeDue *int
	TimeOfDay     *string
	DueToday      *bool
	DueTomorrow   *bool
	DueIn3Days    *bool
	DueInWeek     *bool
	Target        *string
}

// UpdateConfigOutput represents the stored configuration after the update.
type UpdateConfigOutput struct {
	Config *entity.ReminderConfig
}

// UpdateConfigUseCase merges an update into the reminder configuration.
type UpdateConfigUseCase struct {
	configRepo adapter.ReminderConfigRepository
}

// NewUpdateConfigUseCase creates a new UpdateConfigUseCase instance.
func NewUpdateConfigUseCase(configRepo adapter.ReminderConfigRepository) *UpdateConfigUseCase {
	return &UpdateConfigUseCase{
		configRepo: configRepo,
	}
}

// Execute performs the update.
func (uc *UpdateConfigUseCase) Execute(ctx context.Context, input UpdateConfigInput) (*UpdateConfigOutput, error) {
	config, err := loadConfig(ctx, uc.configRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.TimeOfDay != nil {
		if _, err := time.Parse("15:04", *input.TimeOfDay); err != nil {
			return nil, domainerror.NewReminderError(
				domainerror.ErrCodeInvalidTimeOfDay,
				"time of day must be in HH:MM format",
				domainerror.ErrInvalidTimeOfDay,
			)
		}
		config.TimeOfDay = *input.TimeOfDay
	}

	if input.DaysBeforeDue != nil {
		if *input.DaysBeforeDue < 0 {
			return nil, domainerror.NewReminderError(
				domainerror.ErrCodeInvalidDaysBeforeDue,
				"days before due must not be negative",
				domainerror.ErrInvalidDaysBeforeDue,
			)
		}
		config.DaysBeforeDue = *input.DaysBeforeDue
	}

	if input.Enabled != nil {
		config.Enabled = *input.Enabled
	}
	if input.DueToday != nil {
		config.ReminderTypes.DueToday = *input.DueToday
	}
	if input.DueTomorrow != nil {
		config.ReminderTypes.DueTomorrow = *input.DueTomorrow
	}
	if input.DueIn3Days != nil {
		config.ReminderTypes.DueIn3Days = *input.DueIn3Days
	}
	if input.DueInWeek != nil {
		config.ReminderTypes.DueInWeek = *input.DueInWeek
	}
	if input.Target != nil {
		config.Target = *input.Target
	}
	config.UpdatedAt = time.Now().UTC()

	if err := uc.configRepo.Save(ctx, config); err != nil {
		return nil, fmt.Errorf("failed to save reminder configuration: %w", err)
	}

	return &UpdateConfigOutput{
		Config: config,
	}, nil
}
