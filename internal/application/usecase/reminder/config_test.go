package reminder

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
)

func TestReminderConfigUseCases(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	repo := newConfigStub()

	t.Run("get returns defaults", func(t *testing.T) {
		out, err := NewGetConfigUseCase(repo).Execute(ctx, GetConfigInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cfg := out.Config
		if !cfg.Enabled || cfg.DaysBeforeDue != 3 || cfg.TimeOfDay != "09:00" {
			t.Errorf("unexpected defaults %+v", cfg)
		}
		if !cfg.ReminderTypes.DueToday || !cfg.ReminderTypes.DueTomorrow || !cfg.ReminderTypes.DueIn3Days || cfg.ReminderTypes.DueInWeek {
			t.Errorf("unexpected default reminder types %+v", cfg.ReminderTypes)
		}
	})

	t.Run("update merges over defaults", func(t *testing.T) {
		week := true
		target := "owner@example.com"

		_, err := NewUpdateConfigUseCase(repo).Execute(ctx, UpdateConfigInput{
			UserID:    userID,
			DueInWeek: &week,
			Target:    &target,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out, err := NewGetConfigUseCase(repo).Execute(ctx, GetConfigInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Config.ReminderTypes.DueInWeek || !out.Config.ReminderTypes.DueToday {
			t.Errorf("expected merged reminder types, got %+v", out.Config.ReminderTypes)
		}
		if out.Config.Target != target {
			t.Errorf("expected target %s, got %s", target, out.Config.Target)
		}
	})

	t.Run("update rejects malformed time of day", func(t *testing.T) {
		bad := "9am"
		_, err := NewUpdateConfigUseCase(repo).Execute(ctx, UpdateConfigInput{UserID: userID, TimeOfDay: &bad})
		if !errors.Is(err, domainerror.ErrInvalidTimeOfDay) {
			t.Errorf("expected invalid time of day, got %v", err)
		}
	})

	t.Run("update rejects negative days before due", func(t *testing.T) {
		days := -1
		_, err := NewUpdateConfigUseCase(repo).Execute(ctx, UpdateConfigInput{UserID: userID, DaysBeforeDue: &days})
		if !errors.Is(err, domainerror.ErrInvalidDaysBeforeDue) {
			t.Errorf("expected invalid days before due, got %v", err)
		}
	})
}
