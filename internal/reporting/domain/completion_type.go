package domain

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// CompletionType buckets habits by how completion is measured.
type CompletionType string

const (
	TypeYesNo     CompletionType = "yes_no"
	TypeNumeric   CompletionType = "numeric"
	TypeTimer     CompletionType = "timer"
	TypeChecklist CompletionType = "checklist"
	TypeQuit      CompletionType = "quit"
	TypeOther     CompletionType = "other"
)

// HabitRef is the slice of a habit definition the report engine needs.
type HabitRef struct {
	ID           uuid.UUID
	Name         string
	TrackingKind string // Raw stored completion-type string; may carry legacy formatting.
	Quit         bool
}

// CompletionType classifies the referenced habit.
func (h HabitRef) CompletionType() CompletionType {
	return ClassifyTrackingKind(h.TrackingKind, h.Quit)
}

// ClassifyTrackingKind maps a stored completion-type string to exactly one
// bucket. Quit habits always classify as quit regardless of the stored kind.
// Matching is case- and separator-insensitive because the stored value may
// originate from older schema versions ("Yes/No", "yes-no", "YES_NO").
func ClassifyTrackingKind(kind string, quit bool) CompletionType {
	if quit {
		return TypeQuit
	}

	normalized := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-', '_', '/':
			return -1
		}
		return r
	}, strings.ToLower(kind))

	switch normalized {
	case "yesno":
		return TypeYesNo
	case "numeric":
		return TypeNumeric
	case "timer":
		return TypeTimer
	case "checklist":
		return TypeChecklist
	case "quit":
		return TypeQuit
	default:
		return TypeOther
	}
}

// TypeStats aggregates due/completed day counts for one completion type.
type TypeStats struct {
	Type          CompletionType
	TotalHabits   int // Habits of this type known to the report.
	ActiveHabits  int // Habits with at least one due day in the range.
	DueDays       int
	CompletedDays int
}

// CompletionRate returns completedDays/dueDays, 0 when nothing was due.
func (s TypeStats) CompletionRate() float64 {
	if s.DueDays <= 0 {
		return 0
	}
	return float64(s.CompletedDays) / float64(s.DueDays)
}

// buildTypeBreakdown accumulates per-habit due/completed day counts into
// per-type buckets over the given day list. Types with no habits are omitted.
// Ordered by due days, then active habits, both descending; type name breaks
// remaining ties.
func buildTypeBreakdown(habits map[uuid.UUID]HabitRef, days []*DayReport) []TypeStats {
	byType := make(map[CompletionType]*TypeStats)

	for id, habit := range habits {
		ct := habit.CompletionType()
		stats, ok := byType[ct]
		if !ok {
			stats = &TypeStats{Type: ct}
			byType[ct] = stats
		}
		stats.TotalHabits++

		dueDays, completedDays := 0, 0
		for _, day := range days {
			if _, due := day.DueHabitIDs[id]; !due {
				continue
			}
			dueDays++
			if _, done := day.CompletedHabitIDs[id]; done {
				completedDays++
			}
		}

		if dueDays > 0 {
			stats.ActiveHabits++
		}
		stats.DueDays += dueDays
		stats.CompletedDays += completedDays
	}

	breakdown := make([]TypeStats, 0, len(byType))
	for _, stats := range byType {
		breakdown = append(breakdown, *stats)
	}

	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].DueDays != breakdown[j].DueDays {
			return breakdown[i].DueDays > breakdown[j].DueDays
		}
		if breakdown[i].ActiveHabits != breakdown[j].ActiveHabits {
			return breakdown[i].ActiveHabits > breakdown[j].ActiveHabits
		}
		return breakdown[i].Type < breakdown[j].Type
	})

	return breakdown
}
