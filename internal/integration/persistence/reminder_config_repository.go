// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/entity"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
	"github.com/finance-tracker/recurring/internal/integration/persistence/model"
)

// reminderConfigRepository implements the adapter.ReminderConfigRepository interface.
type reminderConfigRepository struct {
	db *gorm.DB
}

// NewReminderConfigRepository creates a new reminder configuration repository instance.
func NewReminderConfigRepository(db *gorm.DB) adapter.ReminderConfigRepository {
	return &reminderConfigRepository{
		db: db,
	}
}

// FindByUserID retrieves the stored configuration of a user.
func (r *reminderConfigRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.ReminderConfig, error) {
	var configModel model.ReminderConfigModel
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&configModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrReminderConfigNotFound
		}
		return nil, result.Error
	}
	return configModel.ToEntity(), nil
}

// Save creates or replaces the configuration of a user.
func (r *reminderConfigRepository) Save(ctx context.Context, config *entity.ReminderConfig) error {
	configModel := model.ReminderConfigFromEntity(config)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"enabled", "days_before_due", "time_of_day",
				"due_today", "due_tomorrow", "due_in_3_days", "due_in_week",
				"target", "updated_at",
			}),
		}).
		Create(configModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
