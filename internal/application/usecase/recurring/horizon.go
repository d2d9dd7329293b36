// Package recurring contains recurring schedule use cases.
package recurring

import (
	"sort"
	"time"

	"github.com/finance-tracker/recurring/internal/domain/entity"
	"github.com/finance-tracker/recurring/internal/domain/valueobject"
)

// Occurrence is a projected future due date of a schedule.
type Occurrence struct {
	Schedule *entity.RecurringSchedule
	DueDate  time.Time
}

// ProjectUpcoming lists every due date in [today, today+horizonDays) for the
// active, unexpired schedules, ordered by date and then schedule ID. today is
// the calendar day of now, so a bill due today is included at any hour.
// Dates after a schedule's end date are left out.
func ProjectUpcoming(schedules []*entity.RecurringSchedule, horizonDays int, now time.Time) []Occurrence {
	occurrences := []Occurrence{}
	if horizonDays <= 0 {
		return occurrences
	}
	today := valueobject.DateOf(now)
	windowEnd := today.AddDate(0, 0, horizonDays)

	for _, s := range schedules {
		if !s.IsActive || s.IsExpired(now) {
			continue
		}

		for d := s.NextDueDate; d.Before(windowEnd); d = valueobject.ComputeNextDueDate(d, s.Cadence) {
			if s.EndDate != nil && d.After(*s.EndDate) {
				break
			}
			if d.Before(today) {
				continue
			}
			occurrences = append(occurrences, Occurrence{Schedule: s, DueDate: d})
		}
	}

	sort.Slice(occurrences, func(i, j int) bool {
		if !occurrences[i].DueDate.Equal(occurrences[j].DueDate) {
			return occurrences[i].DueDate.Before(occurrences[j].DueDate)
		}
		return occurrences[i].Schedule.ID.String() < occurrences[j].Schedule.ID.String()
	})

	return occurrences
}
