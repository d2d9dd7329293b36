// Package reminder contains bill reminder use cases.
package reminder

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/entity"
)

// GetConfigInput represents the input for reading a reminder configuration.
type GetConfigInput struct {
	UserID uuid.UUID
}

// GetConfigOutput represents the effective reminder configuration.
type GetConfigOutput struct {
	Config *entity.ReminderConfig
}

// GetConfigUseCase returns the stored configuration merged over the defaults.
type GetConfigUseCase struct {
	configRepo adapter.ReminderConfigRepository
}

// NewGetConfigUseCase creates a new GetConfigUseCase instance.
func NewGetConfigUseCase(configRepo adapter.ReminderConfigRepository) *GetConfigUseCase {
	return &GetConfigUseCase{
		configRepo: configRepo,
	}
}

// Execute reads the configuration.
func (uc *GetConfigUseCase) Execute(ctx context.Context, input GetConfigInput) (*GetConfigOutput, error) {
	config, err := loadConfig(ctx, uc.configRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	return &GetConfigOutput{
		Config: config,
	}, nil
}
