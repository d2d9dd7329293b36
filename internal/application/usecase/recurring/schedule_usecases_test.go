package recurring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/recurring/internal/domain/entity"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
	"github.com/finance-tracker/recurring/internal/domain/valueobject"
)

func validCreateInput(userID uuid.UUID) CreateScheduleInput {
	return CreateScheduleInput{
		UserID:           userID,
		Amount:           decimal.RequireFromString("15.99"),
		Description:      "Streaming",
		Category:         "Subscriptions",
		Kind:             entity.TransactionTypeExpense,
		Frequency:        valueobject.FrequencyMonthly,
		AnchorDayOfMonth: intPtr(15),
		StartDate:        day(2024, time.January, 20),
	}
}

func TestCreateScheduleUseCase(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("creates schedule with first due date from anchor", func(t *testing.T) {
		store := newMemoryStore()
		uc := NewCreateScheduleUseCase(store)

		out, err := uc.Execute(ctx, validCreateInput(userID))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Schedule.NextDueDate.Equal(day(2024, time.February, 15)) {
			t.Errorf("expected first due 2024-02-15, got %s", out.Schedule.NextDueDate)
		}
		if !out.Schedule.IsActive {
			t.Error("expected new schedule to be active")
		}
		if store.stored(out.Schedule.ID) == nil {
			t.Error("expected schedule to be stored")
		}
	})

	tests := []struct {
		name     string
		mutate   func(*CreateScheduleInput)
		wantCode domainerror.RecurringErrorCode
	}{
		{"zero amount", func(in *CreateScheduleInput) { in.Amount = decimal.Zero }, domainerror.ErrCodeInvalidScheduleAmount},
		{"negative amount", func(in *CreateScheduleInput) { in.Amount = decimal.NewFromInt(-5) }, domainerror.ErrCodeInvalidScheduleAmount},
		{"blank description", func(in *CreateScheduleInput) { in.Description = "  " }, domainerror.ErrCodeMissingScheduleFields},
		{"unknown kind", func(in *CreateScheduleInput) { in.Kind = "transfer" }, domainerror.ErrCodeInvalidScheduleKind},
		{"unknown frequency", func(in *CreateScheduleInput) { in.Frequency = "daily" }, domainerror.ErrCodeInvalidFrequency},
		{"anchor out of range", func(in *CreateScheduleInput) { in.AnchorDayOfMonth = intPtr(32) }, domainerror.ErrCodeInvalidAnchorDay},
		{"end before start", func(in *CreateScheduleInput) { in.EndDate = timePtr(day(2024, time.January, 1)) }, domainerror.ErrCodeInvalidScheduleDates},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validCreateInput(userID)
			tt.mutate(&input)

			_, err := NewCreateScheduleUseCase(newMemoryStore()).Execute(ctx, input)

			var recErr *domainerror.RecurringError
			if !errors.As(err, &recErr) {
				t.Fatalf("expected RecurringError, got %v", err)
			}
			if recErr.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, recErr.Code)
			}
		})
	}
}

func TestUpdateScheduleUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("cadence change recomputes from last generated date", func(t *testing.T) {
		s := newSchedule(valueobject.MonthlyCadence{Day: 15}, day(2024, time.February, 15))
		s.LastGeneratedDate = timePtr(day(2024, time.January, 15))
		store := newMemoryStore(s)
		weekly := valueobject.FrequencyWeekly

		out, err := NewUpdateScheduleUseCase(store).Execute(ctx, UpdateScheduleInput{
			ScheduleID: s.ID,
			UserID:     s.UserID,
			Frequency:  &weekly,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Schedule.NextDueDate.Equal(day(2024, time.January, 22)) {
			t.Errorf("expected next due 2024-01-22, got %s", out.Schedule.NextDueDate)
		}
	})

	t.Run("amount change keeps next due date", func(t *testing.T) {
		s := newSchedule(valueobject.MonthlyCadence{}, day(2024, time.February, 15))
		store := newMemoryStore(s)
		amount := decimal.RequireFromString("17.99")

		out, err := NewUpdateScheduleUseCase(store).Execute(ctx, UpdateScheduleInput{
			ScheduleID: s.ID,
			UserID:     s.UserID,
			Amount:     &amount,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Schedule.Amount.Equal(amount) {
			t.Errorf("expected amount 17.99, got %s", out.Schedule.Amount)
		}
		if !out.Schedule.NextDueDate.Equal(s.NextDueDate) {
			t.Error("expected next due date to be unchanged")
		}
	})

	t.Run("other user is rejected", func(t *testing.T) {
		s := newSchedule(valueobject.MonthlyCadence{}, day(2024, time.February, 15))
		store := newMemoryStore(s)

		_, err := NewUpdateScheduleUseCase(store).Execute(ctx, UpdateScheduleInput{
			ScheduleID: s.ID,
			UserID:     uuid.New(),
		})
		if !errors.Is(err, domainerror.ErrUnauthorizedScheduleAccess) {
			t.Errorf("expected unauthorized error, got %v", err)
		}
	})
}

func TestScheduleLifecycleUseCases(t *testing.T) {
	ctx := context.Background()
	s := newSchedule(valueobject.WeeklyCadence{}, day(2024, time.March, 4))
	store := newMemoryStore(s)

	t.Run("deactivate", func(t *testing.T) {
		out, err := NewSetScheduleActiveUseCase(store).Execute(ctx, SetScheduleActiveInput{
			ScheduleID: s.ID,
			UserID:     s.UserID,
			Active:     false,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Schedule.IsActive || store.stored(s.ID).IsActive {
			t.Error("expected schedule to be inactive")
		}
	})

	t.Run("inactive schedule is left out of upcoming", func(t *testing.T) {
		out, err := NewListUpcomingUseCase(store).Execute(ctx, ListUpcomingInput{
			UserID: s.UserID,
			Now:    day(2024, time.March, 4),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Occurrences) != 0 {
			t.Errorf("expected no occurrences, got %d", len(out.Occurrences))
		}
	})

	t.Run("activate", func(t *testing.T) {
		_, err := NewSetScheduleActiveUseCase(store).Execute(ctx, SetScheduleActiveInput{
			ScheduleID: s.ID,
			UserID:     s.UserID,
			Active:     true,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("upcoming uses the default horizon", func(t *testing.T) {
		out, err := NewListUpcomingUseCase(store).Execute(ctx, ListUpcomingInput{
			UserID: s.UserID,
			Now:    time.Date(2024, time.March, 4, 15, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Occurrences) != 5 {
			t.Errorf("expected 5 weekly occurrences in 30 days, got %d", len(out.Occurrences))
		}
		if !out.To.Equal(day(2024, time.April, 3)) {
			t.Errorf("expected window end 2024-04-03, got %s", out.To)
		}
	})

	t.Run("upcoming rejects oversized horizon", func(t *testing.T) {
		_, err := NewListUpcomingUseCase(store).Execute(ctx, ListUpcomingInput{UserID: s.UserID, Days: 400})
		if !errors.Is(err, domainerror.ErrInvalidHorizon) {
			t.Errorf("expected invalid horizon, got %v", err)
		}
	})

	t.Run("list", func(t *testing.T) {
		out, err := NewListSchedulesUseCase(store).Execute(ctx, ListSchedulesInput{UserID: s.UserID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Schedules) != 1 {
			t.Errorf("expected 1 schedule, got %d", len(out.Schedules))
		}
	})

	t.Run("transactions of schedule", func(t *testing.T) {
		_, err := NewApplyDueProcessingUseCase(store, store).Execute(ctx, ApplyDueProcessingInput{
			UserID: &s.UserID,
			Now:    day(2024, time.March, 4),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out, err := NewListScheduleTransactionsUseCase(store, transactionView{store}).Execute(ctx, ListScheduleTransactionsInput{
			ScheduleID: s.ID,
			UserID:     s.UserID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Transactions) != 1 {
			t.Errorf("expected 1 transaction, got %d", len(out.Transactions))
		}
	})

	t.Run("delete", func(t *testing.T) {
		out, err := NewDeleteScheduleUseCase(store).Execute(ctx, DeleteScheduleInput{
			ScheduleID: s.ID,
			UserID:     s.UserID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Success {
			t.Error("expected success")
		}

		_, err = NewGetScheduleUseCase(store).Execute(ctx, GetScheduleInput{ScheduleID: s.ID, UserID: s.UserID})
		if !errors.Is(err, domainerror.ErrRecurringScheduleNotFound) {
			t.Errorf("expected not found, got %v", err)
		}
	})
}
