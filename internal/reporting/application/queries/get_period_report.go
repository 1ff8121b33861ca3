// Package queries contains the read-side handlers of the reporting context.
package queries

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/habitloop/habitloop/internal/reporting/domain"
)

// ErrQuitHabitNotFound is returned when the drill-down selector does not
// match any quit habit of the user.
var ErrQuitHabitNotFound = errors.New("selected quit habit not found")

// GetPeriodReportQuery describes one report computation.
type GetPeriodReportQuery struct {
	UserID   uuid.UUID
	Range    domain.PeriodRange
	QuitMode bool
	// QuitHabitID narrows a quit-mode report to a single habit.
	QuitHabitID *uuid.UUID
}

// GetPeriodReportHandler loads raw logs for the requested window and its
// derived previous window, buckets them by calendar day, and assembles the
// period report. The handler performs no computation of its own beyond
// bucketing; every metric lives on the domain aggregate.
type GetPeriodReportHandler struct {
	habits domain.HabitDirectory
	logs   domain.LogRepository
}

// NewGetPeriodReportHandler creates a new period report handler.
func NewGetPeriodReportHandler(habits domain.HabitDirectory, logs domain.LogRepository) *GetPeriodReportHandler {
	return &GetPeriodReportHandler{habits: habits, logs: logs}
}

// Handle executes the report query.
func (h *GetPeriodReportHandler) Handle(ctx context.Context, query GetPeriodReportQuery) (*domain.PeriodReport, error) {
	// Callers may build the range as a struct literal with a time-of-day;
	// bucketing keys days by UTC midnight, so normalize before anything else.
	query.Range = domain.NewPeriodRange(query.Range.Start, query.Range.End, query.Range.Period)

	refs, err := h.habits.HabitRefs(ctx, query.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load habits: %w", err)
	}

	quitHabits := make([]domain.HabitRef, 0)
	for _, ref := range refs {
		if ref.Quit {
			quitHabits = append(quitHabits, ref)
		}
	}
	sort.Slice(quitHabits, func(i, j int) bool { return quitHabits[i].Name < quitHabits[j].Name })

	scope := refs
	if query.QuitMode {
		scope = quitHabits
		if query.QuitHabitID != nil {
			selected := false
			for _, ref := range quitHabits {
				if ref.ID == *query.QuitHabitID {
					scope = []domain.HabitRef{ref}
					selected = true
					break
				}
			}
			if !selected {
				return nil, ErrQuitHabitNotFound
			}
		}
	}

	current := query.Range
	previous := current.Previous()

	currentDays, err := h.loadDays(ctx, query, current, scope)
	if err != nil {
		return nil, err
	}
	previousDays, err := h.loadDays(ctx, query, previous, scope)
	if err != nil {
		return nil, err
	}

	report := domain.NewPeriodReport(current, currentDays, previousDays, scope)
	report.QuitMode = query.QuitMode
	report.AvailableQuitHabits = quitHabits
	report.SelectedQuitHabitID = query.QuitHabitID

	return report, nil
}

func (h *GetPeriodReportHandler) loadDays(
	ctx context.Context,
	query GetPeriodReportQuery,
	window domain.PeriodRange,
	scope []domain.HabitRef,
) ([]*domain.DayReport, error) {
	entries, err := h.logs.CompletionsInRange(ctx, query.UserID, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to load completion log: %w", err)
	}
	events, err := h.logs.TemptationsInRange(ctx, query.UserID, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to load temptation log: %w", err)
	}

	return bucketDays(window, query, scope, entries, events), nil
}

// bucketDays folds raw log rows into one DayReport per calendar day. Days
// without events keep an all-zero bucket so chart rendering has no gaps.
func bucketDays(
	window domain.PeriodRange,
	query GetPeriodReportQuery,
	scope []domain.HabitRef,
	entries []domain.CompletionEntry,
	events []domain.TemptationEvent,
) []*domain.DayReport {
	inScope := make(map[uuid.UUID]struct{}, len(scope))
	for _, ref := range scope {
		inScope[ref.ID] = struct{}{}
	}

	days := make([]*domain.DayReport, 0, window.DayCount())
	byDay := make(map[int64]*domain.DayReport, window.DayCount())
	for _, date := range window.Days() {
		d := domain.NewDayReport(date)
		days = append(days, d)
		byDay[date.Unix()] = d
	}

	for _, entry := range entries {
		if !window.Contains(entry.Day) {
			continue
		}
		if query.QuitMode {
			if _, ok := inScope[entry.HabitID]; !ok {
				continue
			}
		}
		d := byDay[domain.DayOf(entry.Day).Unix()]

		d.Due++
		d.DueHabitIDs[entry.HabitID] = struct{}{}
		d.PointsEarned += entry.PointsEarned
		d.PointsLost += entry.PointsLost

		switch entry.Status {
		case domain.StatusCompleted:
			d.Completed++
			d.CompletedHabitIDs[entry.HabitID] = struct{}{}
		case domain.StatusSkipped:
			d.Skipped++
			d.SkipCountByHabit[entry.HabitID]++
			if entry.Reason != "" {
				d.ReasonCounts[entry.Reason]++
			}
		case domain.StatusMissed:
			d.Missed++
			if entry.Reason != "" {
				d.ReasonCounts[entry.Reason]++
			}
		case domain.StatusPending:
			d.Pending++
		}
	}

	for _, event := range events {
		if !window.Contains(event.Day) {
			continue
		}
		// Drill-down keeps only events attributed to the selected habit;
		// unattributed events stay in the all-habits view.
		if query.QuitMode && query.QuitHabitID != nil {
			if event.HabitID == nil || *event.HabitID != *query.QuitHabitID {
				continue
			}
		}
		d := byDay[domain.DayOf(event.Day).Unix()]

		d.TemptationTotal++
		if event.Trigger != "" {
			d.TemptationReasonCounts[event.Trigger]++
		}
		if event.Intensity != "" {
			d.TemptationIntensityCounts[event.Intensity]++
		}

		switch event.Outcome {
		case domain.OutcomeResisted:
			d.TemptationResisted++
		case domain.OutcomeSlipped:
			d.TemptationSlipped++
			if event.Trigger != "" {
				d.TemptationSlipReasonCounts[event.Trigger]++
			}
		}
	}

	return days
}
