package reminder

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/recurring/internal/domain/entity"
	"github.com/finance-tracker/recurring/internal/domain/valueobject"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func scheduleDueOn(userID uuid.UUID, due time.Time) *entity.RecurringSchedule {
	s := entity.NewRecurringSchedule(
		userID,
		decimal.RequireFromString("89.50"),
		"Electricity",
		"Utilities",
		entity.TransactionTypeExpense,
		"",
		valueobject.MonthlyCadence{},
		due,
		nil,
	)
	s.NextDueDate = due
	return s
}

func TestCheckRemindersUseCase(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.May, 10, 14, 30, 0, 0, time.UTC)

	t.Run("schedule due in 3 days with offset enabled dispatches once", func(t *testing.T) {
		userID := uuid.New()
		s := scheduleDueOn(userID, day(2024, time.May, 13))
		cfg := entity.DefaultReminderConfig(userID)
		cfg.ReminderTypes = entity.ReminderTypes{DueIn3Days: true}
		cfg.Target = "owner@example.com"
		sender := &senderStub{}
		deliveries := &deliveryStub{}
		uc := NewCheckRemindersUseCase(&scheduleStub{schedules: []*entity.RecurringSchedule{s}}, newConfigStub(cfg), deliveries, nil, sender)

		out, err := uc.Execute(ctx, CheckRemindersInput{Now: now})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Dispatched != 1 || len(sender.sent) != 1 {
			t.Fatalf("expected 1 dispatch, got %d", len(sender.sent))
		}
		msg := sender.sent[0]
		if !strings.Contains(msg.Title, "3 Days") {
			t.Errorf("expected title to contain '3 Days', got %q", msg.Title)
		}
		if msg.Target != "owner@example.com" {
			t.Errorf("expected target owner@example.com, got %q", msg.Target)
		}
		if msg.Data["scheduleId"] != s.ID.String() || msg.Data["amount"] != "89.50" ||
			msg.Data["dueDate"] != "2024-05-13" || msg.Data["category"] != "Utilities" {
			t.Errorf("unexpected payload %v", msg.Data)
		}
		if len(deliveries.deliveries) != 1 || deliveries.deliveries[0].Status != entity.DeliveryStatusSent {
			t.Error("expected one sent delivery record")
		}
	})

	t.Run("same schedule with offset disabled dispatches nothing", func(t *testing.T) {
		userID := uuid.New()
		s := scheduleDueOn(userID, day(2024, time.May, 13))
		cfg := entity.DefaultReminderConfig(userID)
		cfg.ReminderTypes = entity.ReminderTypes{DueToday: true, DueTomorrow: true, DueInWeek: true}
		sender := &senderStub{}
		uc := NewCheckRemindersUseCase(&scheduleStub{schedules: []*entity.RecurringSchedule{s}}, newConfigStub(cfg), &deliveryStub{}, nil, sender)

		out, err := uc.Execute(ctx, CheckRemindersInput{UserID: &userID, Now: now})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Dispatched != 0 || len(sender.sent) != 0 {
			t.Errorf("expected no dispatch, got %d", len(sender.sent))
		}
	})

	t.Run("disabled configuration is a no-op", func(t *testing.T) {
		userID := uuid.New()
		s := scheduleDueOn(userID, day(2024, time.May, 10))
		cfg := entity.DefaultReminderConfig(userID)
		cfg.Enabled = false
		sender := &senderStub{}
		uc := NewCheckRemindersUseCase(&scheduleStub{schedules: []*entity.RecurringSchedule{s}}, newConfigStub(cfg), &deliveryStub{}, nil, sender)

		out, err := uc.Execute(ctx, CheckRemindersInput{Now: now})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Matched != 0 || len(sender.sent) != 0 {
			t.Errorf("expected nothing, got %+v", out)
		}
	})

	t.Run("defaults apply when no configuration is stored", func(t *testing.T) {
		userID := uuid.New()
		s := scheduleDueOn(userID, day(2024, time.May, 10))
		sender := &senderStub{}
		uc := NewCheckRemindersUseCase(&scheduleStub{schedules: []*entity.RecurringSchedule{s}}, newConfigStub(), &deliveryStub{}, nil, sender)

		if _, err := uc.Execute(ctx, CheckRemindersInput{Now: now}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sender.sent) != 1 || sender.sent[0].Title != "Bill Due Today" {
			t.Errorf("expected a due today reminder, got %v", sender.sent)
		}
	})

	t.Run("without a ledger repeated checks dispatch again", func(t *testing.T) {
		userID := uuid.New()
		s := scheduleDueOn(userID, day(2024, time.May, 11))
		sender := &senderStub{}
		uc := NewCheckRemindersUseCase(&scheduleStub{schedules: []*entity.RecurringSchedule{s}}, newConfigStub(), &deliveryStub{}, nil, sender)

		_, _ = uc.Execute(ctx, CheckRemindersInput{Now: now})
		_, _ = uc.Execute(ctx, CheckRemindersInput{Now: now.Add(time.Hour)})

		if len(sender.sent) != 2 {
			t.Errorf("expected 2 dispatches, got %d", len(sender.sent))
		}
	})

	t.Run("ledger suppresses repeated checks", func(t *testing.T) {
		userID := uuid.New()
		s := scheduleDueOn(userID, day(2024, time.May, 11))
		sender := &senderStub{}
		uc := NewCheckRemindersUseCase(&scheduleStub{schedules: []*entity.RecurringSchedule{s}}, newConfigStub(), &deliveryStub{}, &ledgerStub{}, sender)

		_, _ = uc.Execute(ctx, CheckRemindersInput{Now: now})
		out, err := uc.Execute(ctx, CheckRemindersInput{Now: now.Add(time.Hour)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(sender.sent) != 1 {
			t.Errorf("expected 1 dispatch, got %d", len(sender.sent))
		}
		if out.Skipped != 1 {
			t.Errorf("expected 1 skipped, got %d", out.Skipped)
		}
	})

	t.Run("send failure is recorded and swallowed", func(t *testing.T) {
		userID := uuid.New()
		s := scheduleDueOn(userID, day(2024, time.May, 10))
		sender := &senderStub{err: errSendFailed}
		deliveries := &deliveryStub{}
		uc := NewCheckRemindersUseCase(&scheduleStub{schedules: []*entity.RecurringSchedule{s}}, newConfigStub(), deliveries, nil, sender)

		out, err := uc.Execute(ctx, CheckRemindersInput{Now: now})
		if err != nil {
			t.Fatalf("expected failure to be swallowed, got %v", err)
		}
		if out.Failed != 1 {
			t.Errorf("expected 1 failure, got %d", out.Failed)
		}
		if len(deliveries.deliveries) != 1 || deliveries.deliveries[0].Status != entity.DeliveryStatusFailed {
			t.Error("expected one failed delivery record")
		}
	})

	t.Run("load failure is returned", func(t *testing.T) {
		uc := NewCheckRemindersUseCase(&scheduleStub{err: errSendFailed}, newConfigStub(), &deliveryStub{}, nil, &senderStub{})

		if _, err := uc.Execute(ctx, CheckRemindersInput{Now: now}); err == nil {
			t.Error("expected error")
		}
	})
}

func TestBuildNotices(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2024, time.May, 10, 23, 0, 0, 0, time.UTC)
	all := entity.ReminderTypes{DueToday: true, DueTomorrow: true, DueIn3Days: true, DueInWeek: true}

	tests := []struct {
		due       time.Time
		wantTitle string
	}{
		{day(2024, time.May, 10), "Bill Due Today"},
		{day(2024, time.May, 11), "Bill Due Tomorrow"},
		{day(2024, time.May, 13), "Bill Due in 3 Days"},
		{day(2024, time.May, 17), "Bill Due in 1 Week"},
		{day(2024, time.May, 12), ""},
		{day(2024, time.May, 18), ""},
	}

	for _, tt := range tests {
		t.Run(valueobject.FormatDate(tt.due), func(t *testing.T) {
			s := scheduleDueOn(userID, tt.due)
			s.Cadence = valueobject.YearlyCadence{}

			notices := BuildNotices([]*entity.RecurringSchedule{s}, all, now)

			if tt.wantTitle == "" {
				if len(notices) != 0 {
					t.Errorf("expected no notice, got %q", notices[0].Title)
				}
				return
			}
			if len(notices) != 1 {
				t.Fatalf("expected 1 notice, got %d", len(notices))
			}
			if notices[0].Title != tt.wantTitle {
				t.Errorf("expected %q, got %q", tt.wantTitle, notices[0].Title)
			}
		})
	}
}

func TestNotice_LedgerKey(t *testing.T) {
	id := uuid.MustParse("6f1c2a7e-0000-4000-8000-000000000001")
	n := Notice{ScheduleID: id, DueDate: day(2024, time.May, 13), DaysUntilDue: 3}

	want := "reminder:6f1c2a7e-0000-4000-8000-000000000001:2024-05-13:3"
	if got := n.LedgerKey(); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}
