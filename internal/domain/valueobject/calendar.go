// Package valueobject contains domain value objects for the Finance Tracker system.
package valueobject

import "time"

// DateLayout is the wire and storage layout for calendar dates.
const DateLayout = "2006-01-02"

// DateOf truncates t to its calendar date at UTC midnight.
// The calendar date is taken in t's own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate formats a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DaysBetween returns the number of whole calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(DateOf(b).Sub(DateOf(a)).Hours() / 24)
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
