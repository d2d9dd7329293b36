// Package recurring contains recurring schedule use cases.
package recurring

import (
	"time"

	"github.com/finance-tracker/recurring/internal/domain/entity"
	"github.com/finance-tracker/recurring/internal/domain/valueobject"
)

// DueResult is the outcome of one due-processing pass.
// UpdatedSchedules is a full replacement set in input order.
type DueResult struct {
	Generated        []entity.GeneratedTransaction
	UpdatedSchedules []*entity.RecurringSchedule
}

// ProcessDue emits at most one transaction per due schedule and advances its
// next due date by exactly one period. Schedules that missed several periods
// catch up one period per call. The input schedules are never modified.
func ProcessDue(schedules []*entity.RecurringSchedule, now time.Time) DueResult {
	result := DueResult{
		Generated:        []entity.GeneratedTransaction{},
		UpdatedSchedules: make([]*entity.RecurringSchedule, 0, len(schedules)),
	}

	for _, s := range schedules {
		updated := s.Clone()

		switch {
		case !s.IsActive:
			// Passed through unchanged.
		case s.IsExpired(now):
			updated.IsActive = false
		case s.IsDue(now):
			result.Generated = append(result.Generated, entity.NewGeneratedTransaction(s))

			occurred := s.NextDueDate
			updated.LastGeneratedDate = &occurred
			updated.NextDueDate = valueobject.ComputeNextDueDate(occurred, s.Cadence)
			if updated.EndDate != nil && updated.NextDueDate.After(*updated.EndDate) {
				updated.IsActive = false
			}
		}

		result.UpdatedSchedules = append(result.UpdatedSchedules, updated)
	}

	return result
}
