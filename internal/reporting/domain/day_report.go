package domain

import (
	"time"

	"github.com/google/uuid"
)

// Weights of the per-day quit score composite.
const (
	quitWinWeight        = 0.55
	quitResistanceWeight = 0.25
	quitPointsWeight     = 0.20
)

// DayReport is the event bucket for a single calendar day. It is built once
// from the raw logs and never mutated afterwards; the period aggregate only
// reads it. due == completed+skipped+missed+pending is the expected
// relationship but is supplied by the caller, not enforced here.
type DayReport struct {
	Date time.Time

	Due       int
	Completed int
	Skipped   int
	Missed    int
	Pending   int

	PointsEarned int
	PointsLost   int // Magnitude of the deduction, never negative.

	DueHabitIDs       map[uuid.UUID]struct{}
	CompletedHabitIDs map[uuid.UUID]struct{}

	ReasonCounts     map[string]int
	SkipCountByHabit map[uuid.UUID]int

	TemptationTotal    int
	TemptationResisted int
	TemptationSlipped  int

	TemptationReasonCounts     map[string]int
	TemptationSlipReasonCounts map[string]int
	TemptationIntensityCounts  map[string]int
}

// NewDayReport creates an all-zero bucket for a day. Days without events keep
// this shape so a period's day list has no gaps.
func NewDayReport(date time.Time) *DayReport {
	return &DayReport{
		Date:                       DayOf(date),
		DueHabitIDs:                make(map[uuid.UUID]struct{}),
		CompletedHabitIDs:          make(map[uuid.UUID]struct{}),
		ReasonCounts:               make(map[string]int),
		SkipCountByHabit:           make(map[uuid.UUID]int),
		TemptationReasonCounts:     make(map[string]int),
		TemptationSlipReasonCounts: make(map[string]int),
		TemptationIntensityCounts:  make(map[string]int),
	}
}

// CompletionRate returns completed/due for the day, 0 when nothing was due.
func (d *DayReport) CompletionRate() float64 {
	if d.Due <= 0 {
		return 0
	}
	return float64(d.Completed) / float64(d.Due)
}

// NetPoints returns the day's point balance.
func (d *DayReport) NetPoints() int {
	return d.PointsEarned - d.PointsLost
}

// QuitScore computes the day's 0-100 quit performance composite.
//
// A day with nothing due counts as a perfect day, and missing temptation or
// point signals fall back to the win rate instead of skewing the score.
func (d *DayReport) QuitScore() float64 {
	winRate := 1.0
	if d.Due > 0 {
		winRate = clamp01(float64(d.Completed) / float64(d.Due))
	}

	resistanceRate := winRate
	if d.TemptationTotal > 0 {
		resistanceRate = clamp01(float64(d.TemptationResisted) / float64(d.TemptationTotal))
	}

	pointsSignal := winRate
	if total := d.PointsEarned + d.PointsLost; total > 0 {
		pointsSignal = clamp01(float64(d.PointsEarned) / float64(total))
	}

	score := (winRate*quitWinWeight + resistanceRate*quitResistanceWeight + pointsSignal*quitPointsWeight) * 100
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// MergeCounts sums occurrence counts across maps, key by key. Merging no maps
// yields an empty map.
func MergeCounts[K comparable](maps ...map[K]int) map[K]int {
	merged := make(map[K]int)
	for _, m := range maps {
		for k, v := range m {
			merged[k] += v
		}
	}
	return merged
}

func clamp01(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
