// Package domain contains the period-report aggregation engine: day buckets,
// period aggregates, trigger insights, and completion-type breakdowns.
package domain

import "time"

// Period classifies a reporting window.
type Period string

const (
	PeriodWeek   Period = "week"
	PeriodMonth  Period = "month"
	PeriodCustom Period = "custom"
)

// IsValid checks if the period classifier is a known value.
func (p Period) IsValid() bool {
	switch p {
	case PeriodWeek, PeriodMonth, PeriodCustom:
		return true
	default:
		return false
	}
}

// PeriodRange is an inclusive range of calendar days.
type PeriodRange struct {
	Start  time.Time
	End    time.Time
	Period Period
}

// NewPeriodRange creates a day-normalized range. Start and end are swapped if
// given in reverse order.
func NewPeriodRange(start, end time.Time, period Period) PeriodRange {
	start = DayOf(start)
	end = DayOf(end)
	if end.Before(start) {
		start, end = end, start
	}
	return PeriodRange{Start: start, End: end, Period: period}
}

// WeekOf returns the Monday-to-Sunday week containing t.
func WeekOf(t time.Time) PeriodRange {
	day := DayOf(t)
	// Monday = 1 ... Sunday = 0, which maps to 6 days back.
	back := int(day.Weekday()) - 1
	if back < 0 {
		back = 6
	}
	monday := day.AddDate(0, 0, -back)
	return PeriodRange{Start: monday, End: monday.AddDate(0, 0, 6), Period: PeriodWeek}
}

// MonthOf returns the calendar month containing t.
func MonthOf(t time.Time) PeriodRange {
	day := DayOf(t)
	first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return PeriodRange{Start: first, End: last, Period: PeriodMonth}
}

// DayCount returns the number of calendar days in the range, inclusive.
func (r PeriodRange) DayCount() int {
	return int(r.End.Sub(r.Start)/(24*time.Hour)) + 1
}

// Previous returns the immediately preceding range of equal day-length.
// It always shifts by day count, so a month's previous window is the
// preceding N days rather than the preceding calendar month.
func (r PeriodRange) Previous() PeriodRange {
	n := r.DayCount()
	return PeriodRange{
		Start:  r.Start.AddDate(0, 0, -n),
		End:    r.End.AddDate(0, 0, -n),
		Period: r.Period,
	}
}

// Days enumerates every calendar day in the range in order.
func (r PeriodRange) Days() []time.Time {
	days := make([]time.Time, 0, r.DayCount())
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Contains reports whether t falls on a day inside the range.
func (r PeriodRange) Contains(t time.Time) bool {
	day := DayOf(t)
	return !day.Before(r.Start) && !day.After(r.End)
}

// DayOf normalizes a time to its calendar day at UTC midnight. All report
// arithmetic compares days, never clock times.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay checks if two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DayOf(a).Equal(DayOf(b))
}
