package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekRange(t *testing.T) PeriodRange {
	t.Helper()
	return NewPeriodRange(
		time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC),
		PeriodWeek,
	)
}

// buildDays creates one bucket per range day and lets the caller fill each.
func buildDays(r PeriodRange, fill func(i int, d *DayReport)) []*DayReport {
	days := make([]*DayReport, 0, r.DayCount())
	for i, date := range r.Days() {
		d := NewDayReport(date)
		if fill != nil {
			fill(i, d)
		}
		days = append(days, d)
	}
	return days
}

func TestPeriodReport_TotalsSumAcrossDays(t *testing.T) {
	r := weekRange(t)
	current := buildDays(r, func(i int, d *DayReport) {
		d.Due = 3
		d.Completed = 2
		d.Skipped = 1
		d.PointsEarned = 4
		d.PointsLost = 1
	})

	report := NewPeriodReport(r, current, nil, nil)

	assert.Equal(t, 21, report.TotalDue())
	assert.Equal(t, 14, report.Completed())
	assert.Equal(t, 7, report.Skipped())
	assert.Zero(t, report.Missed())
	assert.Zero(t, report.Pending())
	assert.Equal(t, 28, report.PointsEarned())
	assert.Equal(t, 7, report.PointsLost())
	assert.Equal(t, 21, report.NetPoints())
}

func TestPeriodReport_PreviousTotalsSumAcrossDays(t *testing.T) {
	r := weekRange(t)
	previous := buildDays(r.Previous(), func(i int, d *DayReport) {
		d.Due = 4
		d.Completed = 1
		d.Skipped = 1
		d.Missed = 1
		d.Pending = 1
		d.PointsEarned = 3
		d.PointsLost = 2
	})

	report := NewPeriodReport(r, nil, previous, nil)

	assert.Equal(t, 28, report.PreviousTotalDue())
	assert.Equal(t, 7, report.PreviousCompleted())
	assert.Equal(t, 7, report.PreviousSkipped())
	assert.Equal(t, 7, report.PreviousMissed())
	assert.Equal(t, 7, report.PreviousPending())
	assert.Equal(t, 21, report.PreviousPointsEarned())
	assert.Equal(t, 14, report.PreviousPointsLost())
	assert.Equal(t, 7, report.PreviousNetPoints())

	// The current window stays empty, so the current totals are untouched.
	assert.Zero(t, report.TotalDue())
	assert.Zero(t, report.PointsEarned())
}

func TestPeriodReport_CompletionDelta(t *testing.T) {
	// Current week: 2 due, 2 completed every day. Previous: 2 due, 1 completed.
	r := weekRange(t)
	current := buildDays(r, func(i int, d *DayReport) {
		d.Due, d.Completed = 2, 2
	})
	previous := buildDays(r.Previous(), func(i int, d *DayReport) {
		d.Due, d.Completed = 2, 1
	})

	report := NewPeriodReport(r, current, previous, nil)

	assert.InDelta(t, 1.0, report.CompletionRate(), 1e-9)
	assert.InDelta(t, 0.5, report.PreviousCompletionRate(), 1e-9)
	assert.InDelta(t, 0.5, report.CompletionDelta(), 1e-9)
}

func TestPeriodReport_ZeroDueYieldsZeroRate(t *testing.T) {
	r := weekRange(t)
	report := NewPeriodReport(r, buildDays(r, nil), nil, nil)

	assert.Zero(t, report.TotalDue())
	assert.Zero(t, report.CompletionRate())
	assert.Zero(t, report.ResistanceRate())
}

func TestPeriodReport_EmptyPreviousWindowDegradesToZero(t *testing.T) {
	r := weekRange(t)
	current := buildDays(r, func(i int, d *DayReport) {
		d.Due, d.Completed = 1, 1
	})

	report := NewPeriodReport(r, current, nil, nil)

	assert.Zero(t, report.PreviousCompletionRate())
	assert.InDelta(t, report.CompletionRate(), report.CompletionDelta(), 1e-9)
	assert.Zero(t, report.PreviousQuitPerformanceScore())
}

func TestPeriodReport_ResistanceRate(t *testing.T) {
	r := weekRange(t)
	current := buildDays(r, func(i int, d *DayReport) {
		if i == 0 {
			d.TemptationTotal = 4
			d.TemptationResisted = 3
			d.TemptationSlipped = 1
		}
	})
	previous := buildDays(r.Previous(), func(i int, d *DayReport) {
		if i == 0 {
			d.TemptationTotal = 2
			d.TemptationResisted = 1
			d.TemptationSlipped = 1
		}
	})

	report := NewPeriodReport(r, current, previous, nil)

	assert.Equal(t, 4, report.TemptationTotal())
	assert.InDelta(t, 0.75, report.ResistanceRate(), 1e-9)
	assert.InDelta(t, 0.5, report.PreviousResistanceRate(), 1e-9)
	assert.InDelta(t, 0.25, report.ResistanceRateDelta(), 1e-9)
}

func TestPeriodReport_QuitPerformanceScoreOrderIndependent(t *testing.T) {
	r := weekRange(t)
	fill := func(i int, d *DayReport) {
		d.Due = 2
		d.Completed = i % 3
		d.TemptationTotal = i % 2
		d.TemptationResisted = i % 2
	}

	forward := buildDays(r, fill)
	reversed := make([]*DayReport, len(forward))
	for i, d := range forward {
		reversed[len(forward)-1-i] = d
	}

	a := NewPeriodReport(r, forward, nil, nil)
	b := NewPeriodReport(r, reversed, nil, nil)

	assert.InDelta(t, a.QuitPerformanceScore(), b.QuitPerformanceScore(), 1e-9)
}

func TestPeriodReport_MergedMaps(t *testing.T) {
	habitID := uuid.New()
	r := weekRange(t)
	current := buildDays(r, func(i int, d *DayReport) {
		switch i {
		case 0:
			d.ReasonCounts["tired"] = 1
			d.SkipCountByHabit[habitID] = 1
			d.TemptationReasonCounts["noise"] = 2
			d.TemptationIntensityCounts["high"] = 1
		case 1:
			d.ReasonCounts["tired"] = 2
			d.ReasonCounts["travel"] = 1
			d.SkipCountByHabit[habitID] = 2
			d.TemptationSlipReasonCounts["noise"] = 1
			d.TemptationIntensityCounts["high"] = 2
		}
	})

	report := NewPeriodReport(r, current, nil, nil)

	assert.Equal(t, map[string]int{"tired": 3, "travel": 1}, report.SkipReasonCounts())
	assert.Equal(t, map[string]int{"noise": 2}, report.TemptationReasonCounts())
	assert.Equal(t, map[string]int{"noise": 1}, report.TemptationSlipReasonCounts())
	assert.Equal(t, map[string]int{"high": 3}, report.TemptationIntensityCounts())
	assert.Equal(t, map[uuid.UUID]int{habitID: 3}, report.SkipCountByHabit())
}

func TestPeriodReport_BlockerReasonCounts(t *testing.T) {
	r := weekRange(t)
	current := buildDays(r, func(i int, d *DayReport) {
		if i == 0 {
			d.ReasonCounts["tired"] = 2
			d.TemptationSlipReasonCounts["stress"] = 1
		}
	})

	report := NewPeriodReport(r, current, nil, nil)

	// Outside quit mode only skip reasons count as blockers.
	assert.Equal(t, map[string]int{"tired": 2}, report.BlockerReasonCounts())

	report.QuitMode = true
	assert.Equal(t, map[string]int{"tired": 2, "stress": 1}, report.BlockerReasonCounts())

	top, ok := report.TopBlockerReason()
	require.True(t, ok)
	assert.Equal(t, LabelCount{Label: "tired", Count: 2}, top)
}

func TestPeriodReport_UniqueCompletedHabits(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	r := weekRange(t)
	current := buildDays(r, func(i int, d *DayReport) {
		switch i {
		case 0:
			d.CompletedHabitIDs[a] = struct{}{}
		case 1:
			d.CompletedHabitIDs[a] = struct{}{}
			d.CompletedHabitIDs[b] = struct{}{}
		}
	})

	report := NewPeriodReport(r, current, nil, nil)

	assert.Equal(t, 2, report.UniqueCompletedHabits())
}

func TestPeriodReport_BestDay(t *testing.T) {
	r := weekRange(t)
	current := buildDays(r, func(i int, d *DayReport) {
		d.Due = 2
		if i == 3 {
			d.Completed = 2
		} else if i == 5 {
			d.Completed = 1
		}
	})

	report := NewPeriodReport(r, current, nil, nil)

	best, ok := report.BestDay()
	require.True(t, ok)
	assert.Equal(t, current[3].Date, best.Date)
}

func TestPeriodReport_BestDay_TieGoesToEarlierDate(t *testing.T) {
	// Days 2 and 5 both complete everything; the earlier one wins.
	r := weekRange(t)
	current := buildDays(r, func(i int, d *DayReport) {
		d.Due = 2
		if i == 2 || i == 5 {
			d.Completed = 2
		}
	})

	report := NewPeriodReport(r, current, nil, nil)

	best, ok := report.BestDay()
	require.True(t, ok)
	assert.Equal(t, current[2].Date, best.Date)
}

func TestPeriodReport_BestDay_EmptyWindow(t *testing.T) {
	report := NewPeriodReport(weekRange(t), nil, nil, nil)

	_, ok := report.BestDay()
	assert.False(t, ok)
}

func TestPeriodReport_PeakTemptationDay(t *testing.T) {
	r := weekRange(t)
	totals := []int{3, 3, 5, 0}
	slipped := []int{1, 2, 0, 0}
	current := buildDays(r, func(i int, d *DayReport) {
		if i < len(totals) {
			d.TemptationTotal = totals[i]
			d.TemptationSlipped = slipped[i]
		}
	})

	report := NewPeriodReport(r, current, nil, nil)

	peak, ok := report.PeakTemptationDay()
	require.True(t, ok)
	assert.Equal(t, current[2].Date, peak.Date)
	assert.Equal(t, 5, peak.TemptationTotal)
}

func TestPeriodReport_PeakTemptationDay_TieBrokenBySlips(t *testing.T) {
	r := weekRange(t)
	totals := []int{3, 3, 0}
	slipped := []int{1, 2, 0}
	current := buildDays(r, func(i int, d *DayReport) {
		if i < len(totals) {
			d.TemptationTotal = totals[i]
			d.TemptationSlipped = slipped[i]
		}
	})

	report := NewPeriodReport(r, current, nil, nil)

	peak, ok := report.PeakTemptationDay()
	require.True(t, ok)
	assert.Equal(t, current[1].Date, peak.Date)
}

func TestPeriodReport_PeakTemptationDay_NoEvents(t *testing.T) {
	r := weekRange(t)
	report := NewPeriodReport(r, buildDays(r, nil), nil, nil)

	_, ok := report.PeakTemptationDay()
	assert.False(t, ok)
}

func TestPeriodReport_TopSkippedHabit(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	habits := []HabitRef{
		{ID: a, Name: "Run", TrackingKind: "yes/no"},
		{ID: b, Name: "Read", TrackingKind: "yes/no"},
	}

	r := weekRange(t)
	current := buildDays(r, func(i int, d *DayReport) {
		if i == 0 {
			d.SkipCountByHabit[a] = 1
			d.SkipCountByHabit[b] = 3
		}
	})

	report := NewPeriodReport(r, current, nil, habits)

	ref, count, ok := report.TopSkippedHabit()
	require.True(t, ok)
	assert.Equal(t, "Read", ref.Name)
	assert.Equal(t, 3, count)
}

func TestPeriodReport_TopSkippedHabit_Empty(t *testing.T) {
	r := weekRange(t)
	report := NewPeriodReport(r, buildDays(r, nil), nil, nil)

	_, _, ok := report.TopSkippedHabit()
	assert.False(t, ok)
}

func TestPeriodReport_TriggerControlScore(t *testing.T) {
	r := weekRange(t)
	current := buildDays(r, func(i int, d *DayReport) {
		if i == 0 {
			d.TemptationReasonCounts["noise"] = 4
			d.TemptationSlipReasonCounts["noise"] = 1
		}
	})

	report := NewPeriodReport(r, current, nil, nil)

	assert.InDelta(t, 0.75, report.TriggerControlScore(), 1e-9)
}

func TestPeriodReport_TriggerControlScore_FallsBackToResistanceRate(t *testing.T) {
	r := weekRange(t)
	current := buildDays(r, func(i int, d *DayReport) {
		if i == 0 {
			// Temptations logged without trigger labels.
			d.TemptationTotal = 4
			d.TemptationResisted = 2
		}
	})

	report := NewPeriodReport(r, current, nil, nil)

	assert.Empty(t, report.TriggerInsights())
	assert.InDelta(t, 0.5, report.TriggerControlScore(), 1e-9)
}

func TestPeriodReport_TypeBreakdown(t *testing.T) {
	a := uuid.New()
	habits := []HabitRef{{ID: a, Name: "Run", TrackingKind: "Yes/No"}}

	r := weekRange(t)
	current := buildDays(r, func(i int, d *DayReport) {
		d.DueHabitIDs[a] = struct{}{}
		if i%2 == 0 {
			d.CompletedHabitIDs[a] = struct{}{}
		}
	})

	report := NewPeriodReport(r, current, nil, habits)

	breakdown := report.TypeBreakdown()
	require.Len(t, breakdown, 1)
	assert.Equal(t, TypeYesNo, breakdown[0].Type)
	assert.Equal(t, 7, breakdown[0].DueDays)
	assert.Equal(t, 4, breakdown[0].CompletedDays)
}

func TestNewPeriodReport_DerivesPreviousRange(t *testing.T) {
	r := weekRange(t)
	report := NewPeriodReport(r, nil, nil, nil)

	assert.Equal(t, r.Previous(), report.PreviousRange)
}
