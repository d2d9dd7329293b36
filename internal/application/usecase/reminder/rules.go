// Package reminder contains bill reminder use cases.
package reminder

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/usecase/recurring"
	"github.com/finance-tracker/recurring/internal/domain/entity"
	"github.com/finance-tracker/recurring/internal/domain/valueobject"
)

// Day offsets that can trigger a reminder.
const (
	OffsetDueToday    = 0
	OffsetDueTomorrow = 1
	OffsetDueIn3Days  = 3
	OffsetDueInWeek   = 7
)

// WindowDays covers today through OffsetDueInWeek days ahead.
const WindowDays = OffsetDueInWeek + 1

// Notice is a reminder ready to be handed to the push sender.
type Notice struct {
	UserID       uuid.UUID
	ScheduleID   uuid.UUID
	DueDate      time.Time
	DaysUntilDue int
	Title        string
	Body         string
	Data         map[string]string
}

// LedgerKey identifies the reminder bucket for deduplication.
func (n Notice) LedgerKey() string {
	return fmt.Sprintf("reminder:%s:%s:%d", n.ScheduleID, valueobject.FormatDate(n.DueDate), n.DaysUntilDue)
}

// BuildNotices projects the schedules from the start of now's day and returns
// a notice for every occurrence whose day distance matches an enabled offset.
func BuildNotices(schedules []*entity.RecurringSchedule, types entity.ReminderTypes, now time.Time) []Notice {
	today := valueobject.DateOf(now)
	notices := []Notice{}

	for _, occ := range recurring.ProjectUpcoming(schedules, WindowDays, today) {
		days := valueobject.DaysBetween(today, occ.DueDate)
		if !offsetEnabled(types, days) {
			continue
		}
		notices = append(notices, newNotice(occ.Schedule, occ.DueDate, days))
	}

	return notices
}

func offsetEnabled(types entity.ReminderTypes, days int) bool {
	switch days {
	case OffsetDueToday:
		return types.DueToday
	case OffsetDueTomorrow:
		return types.DueTomorrow
	case OffsetDueIn3Days:
		return types.DueIn3Days
	case OffsetDueInWeek:
		return types.DueInWeek
	}
	return false
}

func newNotice(s *entity.RecurringSchedule, dueDate time.Time, days int) Notice {
	amount := s.Amount.StringFixed(2)

	return Notice{
		UserID:       s.UserID,
		ScheduleID:   s.ID,
		DueDate:      dueDate,
		DaysUntilDue: days,
		Title:        noticeTitle(days),
		Body:         noticeBody(s.Description, amount, days),
		Data: map[string]string{
			"scheduleId":   s.ID.String(),
			"amount":       amount,
			"dueDate":      valueobject.FormatDate(dueDate),
			"category":     s.Category,
			"daysUntilDue": strconv.Itoa(days),
			"kind":         string(s.Kind),
		},
	}
}

func noticeTitle(days int) string {
	switch days {
	case OffsetDueToday:
		return "Bill Due Today"
	case OffsetDueTomorrow:
		return "Bill Due Tomorrow"
	case OffsetDueInWeek:
		return "Bill Due in 1 Week"
	default:
		return fmt.Sprintf("Bill Due in %d Days", days)
	}
}

func noticeBody(description, amount string, days int) string {
	switch days {
	case OffsetDueToday:
		return fmt.Sprintf("%s (%s) is due today.", description, amount)
	case OffsetDueTomorrow:
		return fmt.Sprintf("%s (%s) is due tomorrow.", description, amount)
	case OffsetDueInWeek:
		return fmt.Sprintf("%s (%s) is due in one week.", description, amount)
	default:
		return fmt.Sprintf("%s (%s) is due in %d days.", description, amount, days)
	}
}
