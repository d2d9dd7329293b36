// Package valueobject contains domain value objects for the Finance Tracker system.
package valueobject

import (
	"time"

	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
)

// Frequency is the repetition period of a recurring schedule.
type Frequency string

const (
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// IsValid reports whether f is one of the supported frequencies.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	}
	return false
}

// Cadence is a frequency together with the anchor that is meaningful for it.
// The set of implementations is closed: WeeklyCadence, MonthlyCadence,
// QuarterlyCadence and YearlyCadence.
type Cadence interface {
	// Frequency returns the repetition period.
	Frequency() Frequency
	// AnchorDayOfWeek returns the weekday anchor (0=Sunday) or nil.
	AnchorDayOfWeek() *int
	// AnchorDayOfMonth returns the day-of-month anchor (1-31) or nil.
	AnchorDayOfMonth() *int

	next(from time.Time) time.Time
	first(start time.Time) time.Time
}

// WeeklyCadence repeats every 7 days, optionally pinned to a weekday.
type WeeklyCadence struct {
	Weekday *time.Weekday
}

// MonthlyCadence repeats every calendar month. Day 0 means no anchor.
type MonthlyCadence struct {
	Day int
}

// QuarterlyCadence repeats every three calendar months. Day 0 means no anchor.
type QuarterlyCadence struct {
	Day int
}

// YearlyCadence repeats every calendar year. Day 0 means no anchor.
type YearlyCadence struct {
	Day int
}

// NewCadence builds the cadence variant for a frequency from the flat
// representation used in storage and on the wire. Only the anchor relevant
// to the frequency is read; the other one is ignored.
func NewCadence(frequency Frequency, anchorDayOfWeek, anchorDayOfMonth *int) (Cadence, error) {
	switch frequency {
	case FrequencyWeekly:
		if anchorDayOfWeek == nil {
			return WeeklyCadence{}, nil
		}
		if *anchorDayOfWeek < 0 || *anchorDayOfWeek > 6 {
			return nil, domainerror.ErrInvalidAnchorDay
		}
		wd := time.Weekday(*anchorDayOfWeek)
		return WeeklyCadence{Weekday: &wd}, nil
	case FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		day := 0
		if anchorDayOfMonth != nil {
			if *anchorDayOfMonth < 1 || *anchorDayOfMonth > 31 {
				return nil, domainerror.ErrInvalidAnchorDay
			}
			day = *anchorDayOfMonth
		}
		switch frequency {
		case FrequencyMonthly:
			return MonthlyCadence{Day: day}, nil
		case FrequencyQuarterly:
			return QuarterlyCadence{Day: day}, nil
		default:
			return YearlyCadence{Day: day}, nil
		}
	default:
		return nil, domainerror.ErrInvalidFrequency
	}
}

// ComputeNextDueDate returns the next due date strictly after from.
//
// Weekly cadences advance 7 days and then snap forward to the anchor weekday.
// Month based cadences advance 1, 3 or 12 calendar months and set the day to
// min(anchor, last day of the target month); without an anchor the day of
// from is clamped the same way.
func ComputeNextDueDate(from time.Time, cadence Cadence) time.Time {
	return cadence.next(DateOf(from))
}

// FirstDueDate returns the first occurrence on or after start that is
// consistent with the cadence anchor.
func FirstDueDate(start time.Time, cadence Cadence) time.Time {
	return cadence.first(DateOf(start))
}

// Frequency implements Cadence.
func (WeeklyCadence) Frequency() Frequency { return FrequencyWeekly }

// AnchorDayOfWeek implements Cadence.
func (c WeeklyCadence) AnchorDayOfWeek() *int {
	if c.Weekday == nil {
		return nil
	}
	d := int(*c.Weekday)
	return &d
}

// AnchorDayOfMonth implements Cadence.
func (WeeklyCadence) AnchorDayOfMonth() *int { return nil }

func (c WeeklyCadence) next(from time.Time) time.Time {
	return c.snap(from.AddDate(0, 0, 7))
}

func (c WeeklyCadence) first(start time.Time) time.Time {
	return c.snap(start)
}

// snap moves d forward (never backward) onto the anchor weekday.
func (c WeeklyCadence) snap(d time.Time) time.Time {
	if c.Weekday == nil {
		return d
	}
	shift := (int(*c.Weekday) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, shift)
}

// Frequency implements Cadence.
func (MonthlyCadence) Frequency() Frequency { return FrequencyMonthly }

// AnchorDayOfWeek implements Cadence.
func (MonthlyCadence) AnchorDayOfWeek() *int { return nil }

// AnchorDayOfMonth implements Cadence.
func (c MonthlyCadence) AnchorDayOfMonth() *int { return dayPtr(c.Day) }

func (c MonthlyCadence) next(from time.Time) time.Time { return addMonths(from, 1, c.Day) }

func (c MonthlyCadence) first(start time.Time) time.Time { return firstInPeriod(start, 1, c.Day) }

// Frequency implements Cadence.
func (QuarterlyCadence) Frequency() Frequency { return FrequencyQuarterly }

// AnchorDayOfWeek implements Cadence.
func (QuarterlyCadence) AnchorDayOfWeek() *int { return nil }

// AnchorDayOfMonth implements Cadence.
func (c QuarterlyCadence) AnchorDayOfMonth() *int { return dayPtr(c.Day) }

func (c QuarterlyCadence) next(from time.Time) time.Time { return addMonths(from, 3, c.Day) }

func (c QuarterlyCadence) first(start time.Time) time.Time { return firstInPeriod(start, 3, c.Day) }

// Frequency implements Cadence.
func (YearlyCadence) Frequency() Frequency { return FrequencyYearly }

// AnchorDayOfWeek implements Cadence.
func (YearlyCadence) AnchorDayOfWeek() *int { return nil }

// AnchorDayOfMonth implements Cadence.
func (c YearlyCadence) AnchorDayOfMonth() *int { return dayPtr(c.Day) }

func (c YearlyCadence) next(from time.Time) time.Time { return addMonths(from, 12, c.Day) }

func (c YearlyCadence) first(start time.Time) time.Time { return firstInPeriod(start, 12, c.Day) }

// addMonths moves from forward by the given number of calendar months without
// overflowing into the following month (time.AddDate would turn Jan 31 + 1
// month into Mar 2).
func addMonths(from time.Time, months, anchor int) time.Time {
	day := from.Day()
	if anchor > 0 {
		day = anchor
	}
	target := time.Date(from.Year(), from.Month()+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	return clampDay(target.Year(), target.Month(), day)
}

// firstInPeriod places the anchor in the start month, moving one period
// forward when that day has already passed.
func firstInPeriod(start time.Time, months, anchor int) time.Time {
	if anchor == 0 {
		return start
	}
	candidate := clampDay(start.Year(), start.Month(), anchor)
	if candidate.Before(start) {
		return addMonths(start, months, anchor)
	}
	return candidate
}

func clampDay(year int, month time.Month, day int) time.Time {
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func dayPtr(day int) *int {
	if day == 0 {
		return nil
	}
	return &day
}
