package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/domain/entity"
)

func TestListDeliveriesUseCase(t *testing.T) {
	userID := uuid.New()
	repo := &deliveryStub{}
	_ = repo.Create(context.Background(), entity.NewReminderDelivery(userID, uuid.New(), time.Now(), 1, "Bill Due Tomorrow"))
	_ = repo.Create(context.Background(), entity.NewReminderDelivery(uuid.New(), uuid.New(), time.Now(), 0, "Bill Due Today"))

	uc := NewListDeliveriesUseCase(repo)

	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{name: "default limit", limit: 0, wantLimit: DefaultDeliveryLimit},
		{name: "explicit limit", limit: 10, wantLimit: 10},
		{name: "clamped limit", limit: 5000, wantLimit: MaxDeliveryLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := uc.Execute(context.Background(), ListDeliveriesInput{UserID: userID, Limit: tt.limit})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(output.Deliveries) != 1 {
				t.Errorf("expected 1 delivery, got %d", len(output.Deliveries))
			}
			if repo.lastLimit != tt.wantLimit {
				t.Errorf("expected limit %d, got %d", tt.wantLimit, repo.lastLimit)
			}
		})
	}
}
