// Package reminder contains bill reminder use cases.
package reminder

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/entity"
)

const (
	// DefaultDeliveryLimit is the number of deliveries returned when no limit is given.
	DefaultDeliveryLimit = 50
	// MaxDeliveryLimit caps the number of deliveries returned.
	MaxDeliveryLimit = 200
)

// ListDeliveriesInput represents the input for reading the delivery log.
type ListDeliveriesInput struct {
	UserID uuid.UUID
	Limit  int
}

// ListDeliveriesOutput represents the most recent deliveries, newest first.
type ListDeliveriesOutput struct {
	Deliveries []*entity.ReminderDelivery
}

// ListDeliveriesUseCase reads a user's reminder delivery log.
type ListDeliveriesUseCase struct {
	deliveryRepo adapter.ReminderDeliveryRepository
}

// NewListDeliveriesUseCase creates a new ListDeliveriesUseCase instance.
func NewListDeliveriesUseCase(deliveryRepo adapter.ReminderDeliveryRepository) *ListDeliveriesUseCase {
	return &ListDeliveriesUseCase{
		deliveryRepo: deliveryRepo,
	}
}

// Execute lists deliveries. Out of range limits are clamped.
func (uc *ListDeliveriesUseCase) Execute(ctx context.Context, input ListDeliveriesInput) (*ListDeliveriesOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultDeliveryLimit
	}
	if limit > MaxDeliveryLimit {
		limit = MaxDeliveryLimit
	}

	deliveries, err := uc.deliveryRepo.FindByUserID(ctx, input.UserID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminder deliveries: %w", err)
	}

	return &ListDeliveriesOutput{
		Deliveries: deliveries,
	}, nil
}
