package valueobject

import (
	"errors"
	"testing"
	"time"

	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

func mustCadence(t *testing.T, f Frequency, dow, dom *int) Cadence {
	t.Helper()
	c, err := NewCadence(f, dow, dom)
	if err != nil {
		t.Fatalf("NewCadence(%s) returned error: %v", f, err)
	}
	return c
}

func TestComputeNextDueDate(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		freq Frequency
		dow  *int
		dom  *int
		want time.Time
	}{
		{"weekly without anchor", date(2024, time.January, 3), FrequencyWeekly, nil, nil, date(2024, time.January, 10)},
		{"weekly on anchor weekday", date(2024, time.January, 1), FrequencyWeekly, intPtr(1), nil, date(2024, time.January, 8)},
		{"weekly snaps forward to anchor", date(2024, time.January, 3), FrequencyWeekly, intPtr(1), nil, date(2024, time.January, 15)},
		{"weekly snaps to sunday", date(2024, time.January, 6), FrequencyWeekly, intPtr(0), nil, date(2024, time.January, 14)},
		{"monthly anchor 31 from january", date(2024, time.January, 31), FrequencyMonthly, nil, intPtr(31), date(2024, time.February, 29)},
		{"monthly anchor 31 from february", date(2024, time.February, 29), FrequencyMonthly, nil, intPtr(31), date(2024, time.March, 31)},
		{"monthly anchor 31 in non leap year", date(2023, time.January, 31), FrequencyMonthly, nil, intPtr(31), date(2023, time.February, 28)},
		{"monthly anchor 15", date(2024, time.January, 15), FrequencyMonthly, nil, intPtr(15), date(2024, time.February, 15)},
		{"monthly without anchor clamps", date(2024, time.January, 31), FrequencyMonthly, nil, nil, date(2024, time.February, 29)},
		{"monthly december rolls year", date(2024, time.December, 10), FrequencyMonthly, nil, intPtr(10), date(2025, time.January, 10)},
		{"quarterly anchor 31", date(2024, time.January, 31), FrequencyQuarterly, nil, intPtr(31), date(2024, time.April, 30)},
		{"quarterly without anchor", date(2024, time.November, 30), FrequencyQuarterly, nil, nil, date(2025, time.February, 28)},
		{"yearly from leap day", date(2024, time.February, 29), FrequencyYearly, nil, nil, date(2025, time.February, 28)},
		{"yearly anchor 29 back to leap year", date(2027, time.February, 28), FrequencyYearly, nil, intPtr(29), date(2028, time.February, 29)},
		{"weekly ignores day of month", date(2024, time.January, 3), FrequencyWeekly, nil, intPtr(15), date(2024, time.January, 10)},
		{"monthly ignores day of week", date(2024, time.January, 15), FrequencyMonthly, intPtr(2), nil, date(2024, time.February, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustCadence(t, tt.freq, tt.dow, tt.dom)
			got := ComputeNextDueDate(tt.from, c)
			if !got.Equal(tt.want) {
				t.Errorf("expected %s, got %s", FormatDate(tt.want), FormatDate(got))
			}
			if !got.After(tt.from) {
				t.Errorf("expected %s to be after %s", FormatDate(got), FormatDate(tt.from))
			}
		})
	}
}

func TestComputeNextDueDate_StrictlyIncreasing(t *testing.T) {
	cadences := []Cadence{
		WeeklyCadence{},
		mustCadence(t, FrequencyWeekly, intPtr(5), nil),
		MonthlyCadence{},
		MonthlyCadence{Day: 31},
		QuarterlyCadence{Day: 30},
		YearlyCadence{Day: 29},
	}

	for _, c := range cadences {
		d := date(2023, time.January, 1)
		for i := 0; i < 60; i++ {
			next := ComputeNextDueDate(d, c)
			if !next.After(d) {
				t.Fatalf("%s: %s is not after %s", c.Frequency(), FormatDate(next), FormatDate(d))
			}
			d = next
		}
	}
}

func TestComputeNextDueDate_TruncatesTimeOfDay(t *testing.T) {
	from := time.Date(2024, time.March, 5, 18, 30, 0, 0, time.UTC)
	got := ComputeNextDueDate(from, MonthlyCadence{Day: 5})
	if !got.Equal(date(2024, time.April, 5)) {
		t.Errorf("expected 2024-04-05, got %s", got)
	}
}

func TestFirstDueDate(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		cadence Cadence
		want    time.Time
	}{
		{"no anchor starts on start date", date(2024, time.January, 20), MonthlyCadence{}, date(2024, time.January, 20)},
		{"anchor later in the start month", date(2024, time.January, 10), MonthlyCadence{Day: 15}, date(2024, time.January, 15)},
		{"anchor equal to start day", date(2024, time.January, 15), MonthlyCadence{Day: 15}, date(2024, time.January, 15)},
		{"anchor already passed", date(2024, time.January, 20), MonthlyCadence{Day: 15}, date(2024, time.February, 15)},
		{"anchor clamped in short start month", date(2024, time.February, 10), MonthlyCadence{Day: 31}, date(2024, time.February, 29)},
		{"quarterly anchor passed", date(2024, time.January, 20), QuarterlyCadence{Day: 1}, date(2024, time.April, 1)},
		{"yearly anchor passed", date(2024, time.March, 20), YearlyCadence{Day: 5}, date(2025, time.March, 5)},
		{"weekly snaps forward", date(2024, time.January, 3), mustCadence(t, FrequencyWeekly, intPtr(1), nil), date(2024, time.January, 8)},
		{"weekly without anchor", date(2024, time.January, 3), WeeklyCadence{}, date(2024, time.January, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FirstDueDate(tt.start, tt.cadence)
			if !got.Equal(tt.want) {
				t.Errorf("expected %s, got %s", FormatDate(tt.want), FormatDate(got))
			}
		})
	}
}

func TestNewCadence_Validation(t *testing.T) {
	tests := []struct {
		name    string
		freq    Frequency
		dow     *int
		dom     *int
		wantErr error
	}{
		{"weekly anchor too large", FrequencyWeekly, intPtr(7), nil, domainerror.ErrInvalidAnchorDay},
		{"weekly anchor negative", FrequencyWeekly, intPtr(-1), nil, domainerror.ErrInvalidAnchorDay},
		{"monthly anchor zero", FrequencyMonthly, nil, intPtr(0), domainerror.ErrInvalidAnchorDay},
		{"yearly anchor 32", FrequencyYearly, nil, intPtr(32), domainerror.ErrInvalidAnchorDay},
		{"unknown frequency", Frequency("daily"), nil, nil, domainerror.ErrInvalidFrequency},
		{"valid quarterly", FrequencyQuarterly, nil, intPtr(31), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCadence(tt.freq, tt.dow, tt.dom)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCadence_Anchors(t *testing.T) {
	weekly := mustCadence(t, FrequencyWeekly, intPtr(3), nil)
	if got := weekly.AnchorDayOfWeek(); got == nil || *got != 3 {
		t.Errorf("expected weekday anchor 3, got %v", got)
	}
	if weekly.AnchorDayOfMonth() != nil {
		t.Error("expected weekly cadence to have no day-of-month anchor")
	}

	monthly := mustCadence(t, FrequencyMonthly, intPtr(3), intPtr(12))
	if got := monthly.AnchorDayOfMonth(); got == nil || *got != 12 {
		t.Errorf("expected day-of-month anchor 12, got %v", got)
	}
	if monthly.AnchorDayOfWeek() != nil {
		t.Error("expected monthly cadence to have no weekday anchor")
	}

	if (MonthlyCadence{}).AnchorDayOfMonth() != nil {
		t.Error("expected unanchored monthly cadence to report nil")
	}
}

func TestDaysBetween(t *testing.T) {
	now := time.Date(2024, time.March, 9, 23, 59, 0, 0, time.UTC)
	if got := DaysBetween(now, date(2024, time.March, 10)); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
	if got := DaysBetween(now, date(2024, time.March, 9)); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if got := DaysBetween(date(2024, time.March, 1), date(2024, time.April, 1)); got != 31 {
		t.Errorf("expected 31, got %d", got)
	}
}
