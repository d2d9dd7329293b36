// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/entity"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
	"github.com/finance-tracker/recurring/internal/integration/persistence/model"
)

// recurringScheduleRepository implements the adapter.RecurringScheduleRepository interface.
type recurringScheduleRepository struct {
	db *gorm.DB
}

// NewRecurringScheduleRepository creates a new recurring schedule repository instance.
func NewRecurringScheduleRepository(db *gorm.DB) adapter.RecurringScheduleRepository {
	return &recurringScheduleRepository{
		db: db,
	}
}

// Create creates a new recurring schedule in the database.
func (r *recurringScheduleRepository) Create(ctx context.Context, schedule *entity.RecurringSchedule) error {
	scheduleModel := model.RecurringScheduleFromEntity(schedule)
	result := r.db.WithContext(ctx).Create(scheduleModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a recurring schedule by its ID.
func (r *recurringScheduleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringSchedule, error) {
	var scheduleModel model.RecurringScheduleModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&scheduleModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRecurringScheduleNotFound
		}
		return nil, result.Error
	}
	return scheduleModel.ToEntity()
}

// FindByUserID retrieves all recurring schedules for a given user.
func (r *recurringScheduleRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringSchedule, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

// FindActiveByUserID retrieves the active recurring schedules for a given user.
func (r *recurringScheduleRepository) FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringSchedule, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ? AND is_active = ?", userID, true))
}

// FindAllActive retrieves the active recurring schedules of every user.
func (r *recurringScheduleRepository) FindAllActive(ctx context.Context) ([]*entity.RecurringSchedule, error) {
	return r.find(r.db.WithContext(ctx).Where("is_active = ?", true))
}

// Update updates an existing recurring schedule in the database.
func (r *recurringScheduleRepository) Update(ctx context.Context, schedule *entity.RecurringSchedule) error {
	scheduleModel := model.RecurringScheduleFromEntity(schedule)
	result := r.db.WithContext(ctx).Save(scheduleModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes a recurring schedule from the database (soft delete).
func (r *recurringScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.RecurringScheduleModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrRecurringScheduleNotFound
	}
	return nil
}

func (r *recurringScheduleRepository) find(query *gorm.DB) ([]*entity.RecurringSchedule, error) {
	var scheduleModels []model.RecurringScheduleModel
	result := query.Order("next_due_date ASC").Order("id ASC").Find(&scheduleModels)
	if result.Error != nil {
		return nil, result.Error
	}

	schedules := make([]*entity.RecurringSchedule, len(scheduleModels))
	for i := range scheduleModels {
		schedule, err := scheduleModels[i].ToEntity()
		if err != nil {
			return nil, err
		}
		schedules[i] = schedule
	}
	return schedules, nil
}
