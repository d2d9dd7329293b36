// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/entity"
	"github.com/finance-tracker/recurring/internal/integration/persistence/model"
)

// reminderDeliveryRepository implements the adapter.ReminderDeliveryRepository interface.
type reminderDeliveryRepository struct {
	db *gorm.DB
}

// NewReminderDeliveryRepository creates a new reminder delivery repository instance.
func NewReminderDeliveryRepository(db *gorm.DB) adapter.ReminderDeliveryRepository {
	return &reminderDeliveryRepository{
		db: db,
	}
}

// Create records a delivery attempt.
func (r *reminderDeliveryRepository) Create(ctx context.Context, delivery *entity.ReminderDelivery) error {
	result := r.db.WithContext(ctx).Create(model.ReminderDeliveryFromEntity(delivery))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByUserID retrieves the most recent deliveries of a user.
func (r *reminderDeliveryRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.ReminderDelivery, error) {
	var deliveryModels []model.ReminderDeliveryModel
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if result := query.Find(&deliveryModels); result.Error != nil {
		return nil, result.Error
	}

	deliveries := make([]*entity.ReminderDelivery, len(deliveryModels))
	for i := range deliveryModels {
		deliveries[i] = deliveryModels[i].ToEntity()
	}
	return deliveries, nil
}
