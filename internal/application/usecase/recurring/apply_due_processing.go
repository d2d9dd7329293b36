// Package recurring contains recurring schedule use cases.
package recurring

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/entity"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
	"github.com/finance-tracker/recurring/internal/domain/valueobject"
)

// OutcomeStatus is the per-schedule result of applying due processing.
type OutcomeStatus string

const (
	// OutcomeCommitted means the transaction was recorded and the schedule advanced.
	OutcomeCommitted OutcomeStatus = "committed"
	// OutcomeDuplicate means the occurrence already existed; the schedule still advanced.
	OutcomeDuplicate OutcomeStatus = "duplicate"
	// OutcomeConflict means another writer advanced the schedule first; nothing was written.
	OutcomeConflict OutcomeStatus = "conflict"
	// OutcomeDeactivated means the schedule passed its end date and was switched off.
	OutcomeDeactivated OutcomeStatus = "deactivated"
	// OutcomeFailed means the write failed; see Reason.
	OutcomeFailed OutcomeStatus = "failed"
)

// ScheduleOutcome describes what happened to one schedule.
type ScheduleOutcome struct {
	ScheduleID    uuid.UUID
	Status        OutcomeStatus
	DueDate       time.Time
	NextDueDate   time.Time
	TransactionID *uuid.UUID
	Reason        string
}

// ApplyDueProcessingInput represents the input for applying due processing.
type ApplyDueProcessingInput struct {
	UserID *uuid.UUID // Nil processes every user
	Now    time.Time  // Zero means time.Now()
}

// ApplyDueProcessingOutput represents the output of applying due processing.
type ApplyDueProcessingOutput struct {
	Outcomes  []ScheduleOutcome
	Generated int
}

// ApplyDueProcessingUseCase runs ProcessDue over the stored schedules and
// commits every change atomically per schedule.
type ApplyDueProcessingUseCase struct {
	scheduleRepo adapter.RecurringScheduleRepository
	committer    adapter.OccurrenceCommitter
	loc          *time.Location
}

// NewApplyDueProcessingUseCase creates a new ApplyDueProcessingUseCase instance.
func NewApplyDueProcessingUseCase(
	scheduleRepo adapter.RecurringScheduleRepository,
	committer adapter.OccurrenceCommitter,
) *ApplyDueProcessingUseCase {
	return &ApplyDueProcessingUseCase{
		scheduleRepo: scheduleRepo,
		committer:    committer,
		loc:          time.UTC,
	}
}

// InLocation sets the timezone that decides the calendar day when no Now is given.
func (uc *ApplyDueProcessingUseCase) InLocation(loc *time.Location) *ApplyDueProcessingUseCase {
	if loc != nil {
		uc.loc = loc
	}
	return uc
}

// Execute processes due schedules. Only schedules that changed are reported.
func (uc *ApplyDueProcessingUseCase) Execute(ctx context.Context, input ApplyDueProcessingInput) (*ApplyDueProcessingOutput, error) {
	now := input.Now
	if now.IsZero() {
		now = time.Now().In(uc.loc)
	}

	var (
		schedules []*entity.RecurringSchedule
		err       error
	)
	if input.UserID != nil {
		schedules, err = uc.scheduleRepo.FindActiveByUserID(ctx, *input.UserID)
	} else {
		schedules, err = uc.scheduleRepo.FindAllActive(ctx)
	}
	if err != nil {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeDueProcessingFailed,
			"failed to load recurring schedules",
			err,
		)
	}

	result := ProcessDue(schedules, now)

	generated := make(map[uuid.UUID]entity.GeneratedTransaction, len(result.Generated))
	for _, g := range result.Generated {
		generated[g.ScheduleID] = g
	}

	output := &ApplyDueProcessingOutput{
		Outcomes: []ScheduleOutcome{},
	}

	for i, updated := range result.UpdatedSchedules {
		original := schedules[i]

		occurrence, fired := generated[updated.ID]
		if !fired && updated.IsActive == original.IsActive {
			continue
		}

		updated.UpdatedAt = now.UTC()
		outcome := ScheduleOutcome{
			ScheduleID:  updated.ID,
			DueDate:     original.NextDueDate,
			NextDueDate: updated.NextDueDate,
		}

		var txn *entity.Transaction
		if fired {
			txn = entity.NewTransactionFromOccurrence(occurrence)
		}

		inserted, err := uc.committer.Commit(ctx, updated, original.NextDueDate, txn)
		switch {
		case errors.Is(err, domainerror.ErrScheduleConflict):
			outcome.Status = OutcomeConflict
			outcome.Reason = err.Error()
		case err != nil:
			outcome.Status = OutcomeFailed
			outcome.Reason = err.Error()
			slog.Error("Failed to commit recurring occurrence",
				"scheduleID", updated.ID,
				"dueDate", valueobject.FormatDate(original.NextDueDate),
				"error", err,
			)
		case !fired:
			outcome.Status = OutcomeDeactivated
		case !inserted:
			outcome.Status = OutcomeDuplicate
		default:
			outcome.Status = OutcomeCommitted
			outcome.TransactionID = &txn.ID
			output.Generated++
		}

		output.Outcomes = append(output.Outcomes, outcome)
	}

	if len(output.Outcomes) > 0 {
		slog.Info("Due processing applied",
			"schedules", len(schedules),
			"changed", len(output.Outcomes),
			"generated", output.Generated,
		)
	}

	return output, nil
}
