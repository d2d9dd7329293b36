// Package reminder contains bill reminder use cases.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/entity"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
	"github.com/finance-tracker/recurring/internal/domain/valueobject"
)

// CheckRemindersInput represents the input for a reminder check.
type CheckRemindersInput struct {
	UserID *uuid.UUID // Nil checks every user with an active schedule
	Now    time.Time  // Zero means time.Now()
}

// CheckRemindersOutput summarises a reminder check.
type CheckRemindersOutput struct {
	UsersChecked int
	Matched      int // Notices whose offset was enabled
	Dispatched   int
	Skipped      int // Already notified according to the ledger
	Failed       int
}

// CheckRemindersUseCase dispatches bill reminders for schedules due soon.
type CheckRemindersUseCase struct {
	scheduleRepo adapter.RecurringScheduleRepository
	configRepo   adapter.ReminderConfigRepository
	deliveryRepo adapter.ReminderDeliveryRepository
	ledger       adapter.ReminderLedger
	sender       adapter.PushSender
	loc          *time.Location
}

// NewCheckRemindersUseCase creates a new CheckRemindersUseCase instance.
// ledger may be nil, in which case every matching check dispatches.
func NewCheckRemindersUseCase(
	scheduleRepo adapter.RecurringScheduleRepository,
	configRepo adapter.ReminderConfigRepository,
	deliveryRepo adapter.ReminderDeliveryRepository,
	ledger adapter.ReminderLedger,
	sender adapter.PushSender,
) *CheckRemindersUseCase {
	return &CheckRemindersUseCase{
		scheduleRepo: scheduleRepo,
		configRepo:   configRepo,
		deliveryRepo: deliveryRepo,
		ledger:       ledger,
		sender:       sender,
		loc:          time.UTC,
	}
}

// InLocation sets the timezone that decides which day is today when no Now is given.
func (uc *CheckRemindersUseCase) InLocation(loc *time.Location) *CheckRemindersUseCase {
	if loc != nil {
		uc.loc = loc
	}
	return uc
}

// Execute runs one reminder check. Delivery failures are logged and counted,
// never returned.
func (uc *CheckRemindersUseCase) Execute(ctx context.Context, input CheckRemindersInput) (*CheckRemindersOutput, error) {
	now := input.Now
	if now.IsZero() {
		now = time.Now().In(uc.loc)
	}

	byUser, err := uc.loadSchedules(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewReminderError(
			domainerror.ErrCodeReminderCheckFailed,
			"failed to load recurring schedules",
			err,
		)
	}

	output := &CheckRemindersOutput{}
	for userID, schedules := range byUser {
		output.UsersChecked++

		config, err := loadConfig(ctx, uc.configRepo, userID)
		if err != nil {
			slog.Error("Failed to load reminder configuration",
				"userID", userID,
				"error", err,
			)
			continue
		}
		if !config.Enabled {
			continue
		}

		for _, notice := range BuildNotices(schedules, config.ReminderTypes, now) {
			output.Matched++

			if !uc.markNew(ctx, notice) {
				output.Skipped++
				continue
			}

			if uc.dispatch(ctx, config.Target, notice) {
				output.Dispatched++
			} else {
				output.Failed++
			}
		}
	}

	if output.Matched > 0 {
		slog.Info("Reminder check completed",
			"users", output.UsersChecked,
			"matched", output.Matched,
			"dispatched", output.Dispatched,
			"skipped", output.Skipped,
			"failed", output.Failed,
		)
	}

	return output, nil
}

func (uc *CheckRemindersUseCase) loadSchedules(
	ctx context.Context,
	userID *uuid.UUID,
) (map[uuid.UUID][]*entity.RecurringSchedule, error) {
	var (
		schedules []*entity.RecurringSchedule
		err       error
	)
	if userID != nil {
		schedules, err = uc.scheduleRepo.FindActiveByUserID(ctx, *userID)
	} else {
		schedules, err = uc.scheduleRepo.FindAllActive(ctx)
	}
	if err != nil {
		return nil, err
	}

	byUser := make(map[uuid.UUID][]*entity.RecurringSchedule)
	if userID != nil {
		byUser[*userID] = schedules
		return byUser, nil
	}
	for _, s := range schedules {
		byUser[s.UserID] = append(byUser[s.UserID], s)
	}
	return byUser, nil
}

// markNew consults the ledger. A ledger failure lets the reminder through.
func (uc *CheckRemindersUseCase) markNew(ctx context.Context, notice Notice) bool {
	if uc.ledger == nil {
		return true
	}

	isNew, err := uc.ledger.MarkIfAbsent(ctx, notice.LedgerKey())
	if err != nil {
		slog.Warn("Reminder ledger unavailable, dispatching without deduplication",
			"scheduleID", notice.ScheduleID,
			"error", err,
		)
		return true
	}
	return isNew
}

func (uc *CheckRemindersUseCase) dispatch(ctx context.Context, target string, notice Notice) bool {
	delivery := entity.NewReminderDelivery(
		notice.UserID,
		notice.ScheduleID,
		notice.DueDate,
		notice.DaysUntilDue,
		notice.Title,
	)

	result, err := uc.sender.Send(ctx, adapter.PushMessage{
		Target: target,
		Title:  notice.Title,
		Body:   notice.Body,
		Data:   notice.Data,
	})
	if err != nil {
		slog.Warn("Failed to send reminder",
			"scheduleID", notice.ScheduleID,
			"dueDate", valueobject.FormatDate(notice.DueDate),
			"daysUntilDue", notice.DaysUntilDue,
			"error", err,
		)
		delivery.MarkFailed(err)
	} else {
		delivery.MarkSent(result.ProviderID)
	}

	if uc.deliveryRepo != nil {
		if recErr := uc.deliveryRepo.Create(ctx, delivery); recErr != nil {
			slog.Error("Failed to record reminder delivery",
				"scheduleID", notice.ScheduleID,
				"error", recErr,
			)
		}
	}

	return err == nil
}

// loadConfig returns the stored configuration or the defaults.
func loadConfig(
	ctx context.Context,
	repo adapter.ReminderConfigRepository,
	userID uuid.UUID,
) (*entity.ReminderConfig, error) {
	config, err := repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerror.ErrReminderConfigNotFound) {
			return entity.DefaultReminderConfig(userID), nil
		}
		return nil, fmt.Errorf("failed to find reminder configuration: %w", err)
	}
	return config, nil
}
