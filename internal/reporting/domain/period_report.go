package domain

import (
	"github.com/google/uuid"
)

// LabelCount pairs a reason/trigger/intensity label with its occurrence count.
type LabelCount struct {
	Label string
	Count int
}

// PeriodReport is the aggregate root of a period report: the current window's
// day buckets, the immediately preceding equal-length window for deltas, and
// the habit index used for classification. Every metric is recomputed from
// the day lists on demand; nothing is cached. The day lists are small (at most
// about a year) and callers move range boundaries interactively, so
// recomputing is cheaper than invalidation.
type PeriodReport struct {
	CurrentRange  PeriodRange
	PreviousRange PeriodRange

	CurrentDays  []*DayReport
	PreviousDays []*DayReport

	HabitsByID map[uuid.UUID]HabitRef

	QuitMode            bool
	AvailableQuitHabits []HabitRef
	SelectedQuitHabitID *uuid.UUID
}

// NewPeriodReport assembles a report from pre-bucketed day lists. The
// previous range is derived from the current one, never supplied.
func NewPeriodReport(current PeriodRange, currentDays, previousDays []*DayReport, habits []HabitRef) *PeriodReport {
	byID := make(map[uuid.UUID]HabitRef, len(habits))
	for _, h := range habits {
		byID[h.ID] = h
	}
	return &PeriodReport{
		CurrentRange:  current,
		PreviousRange: current.Previous(),
		CurrentDays:   currentDays,
		PreviousDays:  previousDays,
		HabitsByID:    byID,
	}
}

// Totals over the current window.

func (r *PeriodReport) TotalDue() int     { return sumDays(r.CurrentDays, func(d *DayReport) int { return d.Due }) }
func (r *PeriodReport) Completed() int    { return sumDays(r.CurrentDays, func(d *DayReport) int { return d.Completed }) }
func (r *PeriodReport) Skipped() int      { return sumDays(r.CurrentDays, func(d *DayReport) int { return d.Skipped }) }
func (r *PeriodReport) Missed() int       { return sumDays(r.CurrentDays, func(d *DayReport) int { return d.Missed }) }
func (r *PeriodReport) Pending() int      { return sumDays(r.CurrentDays, func(d *DayReport) int { return d.Pending }) }
func (r *PeriodReport) PointsEarned() int { return sumDays(r.CurrentDays, func(d *DayReport) int { return d.PointsEarned }) }
func (r *PeriodReport) PointsLost() int   { return sumDays(r.CurrentDays, func(d *DayReport) int { return d.PointsLost }) }

// NetPoints returns earned minus lost points for the current window.
func (r *PeriodReport) NetPoints() int { return r.PointsEarned() - r.PointsLost() }

// Previous-window totals used for trend rendering.

func (r *PeriodReport) PreviousTotalDue() int {
	return sumDays(r.PreviousDays, func(d *DayReport) int { return d.Due })
}

func (r *PeriodReport) PreviousCompleted() int {
	return sumDays(r.PreviousDays, func(d *DayReport) int { return d.Completed })
}

func (r *PeriodReport) PreviousSkipped() int {
	return sumDays(r.PreviousDays, func(d *DayReport) int { return d.Skipped })
}

func (r *PeriodReport) PreviousMissed() int {
	return sumDays(r.PreviousDays, func(d *DayReport) int { return d.Missed })
}

func (r *PeriodReport) PreviousPending() int {
	return sumDays(r.PreviousDays, func(d *DayReport) int { return d.Pending })
}

func (r *PeriodReport) PreviousPointsEarned() int {
	return sumDays(r.PreviousDays, func(d *DayReport) int { return d.PointsEarned })
}

func (r *PeriodReport) PreviousPointsLost() int {
	return sumDays(r.PreviousDays, func(d *DayReport) int { return d.PointsLost })
}

func (r *PeriodReport) PreviousNetPoints() int {
	return r.PreviousPointsEarned() - r.PreviousPointsLost()
}

// CompletionRate returns completed/due over the current window, 0 when
// nothing was due.
func (r *PeriodReport) CompletionRate() float64 { return completionRateOf(r.CurrentDays) }

// PreviousCompletionRate is the same rate over the previous window. An empty
// previous window (the habit may not have existed yet) degrades to 0.
func (r *PeriodReport) PreviousCompletionRate() float64 { return completionRateOf(r.PreviousDays) }

// CompletionDelta is the rate change versus the previous window.
func (r *PeriodReport) CompletionDelta() float64 {
	return r.CompletionRate() - r.PreviousCompletionRate()
}

// Temptation totals over the current window.

func (r *PeriodReport) TemptationTotal() int {
	return sumDays(r.CurrentDays, func(d *DayReport) int { return d.TemptationTotal })
}

func (r *PeriodReport) TemptationResisted() int {
	return sumDays(r.CurrentDays, func(d *DayReport) int { return d.TemptationResisted })
}

func (r *PeriodReport) TemptationSlipped() int {
	return sumDays(r.CurrentDays, func(d *DayReport) int { return d.TemptationSlipped })
}

// ResistanceRate returns resisted/total temptations, 0 without any events.
func (r *PeriodReport) ResistanceRate() float64 { return resistanceRateOf(r.CurrentDays) }

// PreviousResistanceRate is the same rate over the previous window.
func (r *PeriodReport) PreviousResistanceRate() float64 { return resistanceRateOf(r.PreviousDays) }

// ResistanceRateDelta is the rate change versus the previous window.
func (r *PeriodReport) ResistanceRateDelta() float64 {
	return r.ResistanceRate() - r.PreviousResistanceRate()
}

// QuitPerformanceScore averages the per-day quit score over the current
// window, 0 for an empty window.
func (r *PeriodReport) QuitPerformanceScore() float64 { return quitScoreOf(r.CurrentDays) }

// PreviousQuitPerformanceScore is the same average over the previous window.
func (r *PeriodReport) PreviousQuitPerformanceScore() float64 { return quitScoreOf(r.PreviousDays) }

// QuitPerformanceDelta is the score change versus the previous window.
func (r *PeriodReport) QuitPerformanceDelta() float64 {
	return r.QuitPerformanceScore() - r.PreviousQuitPerformanceScore()
}

// Merged label maps over the current window.

func (r *PeriodReport) SkipReasonCounts() map[string]int {
	return mergeDayCounts(r.CurrentDays, func(d *DayReport) map[string]int { return d.ReasonCounts })
}

func (r *PeriodReport) TemptationReasonCounts() map[string]int {
	return mergeDayCounts(r.CurrentDays, func(d *DayReport) map[string]int { return d.TemptationReasonCounts })
}

func (r *PeriodReport) TemptationSlipReasonCounts() map[string]int {
	return mergeDayCounts(r.CurrentDays, func(d *DayReport) map[string]int { return d.TemptationSlipReasonCounts })
}

func (r *PeriodReport) TemptationIntensityCounts() map[string]int {
	return mergeDayCounts(r.CurrentDays, func(d *DayReport) map[string]int { return d.TemptationIntensityCounts })
}

// SkipCountByHabit merges per-day skip counts across the current window.
func (r *PeriodReport) SkipCountByHabit() map[uuid.UUID]int {
	maps := make([]map[uuid.UUID]int, 0, len(r.CurrentDays))
	for _, d := range r.CurrentDays {
		maps = append(maps, d.SkipCountByHabit)
	}
	return MergeCounts(maps...)
}

// BlockerReasonCounts returns skip reasons, merged with temptation slip
// reasons when the report is scoped to quit habits.
func (r *PeriodReport) BlockerReasonCounts() map[string]int {
	if !r.QuitMode {
		return r.SkipReasonCounts()
	}
	return MergeCounts(r.SkipReasonCounts(), r.TemptationSlipReasonCounts())
}

// CompletedHabitIDs unions the per-day completed-habit sets.
func (r *PeriodReport) CompletedHabitIDs() map[uuid.UUID]struct{} {
	union := make(map[uuid.UUID]struct{})
	for _, d := range r.CurrentDays {
		for id := range d.CompletedHabitIDs {
			union[id] = struct{}{}
		}
	}
	return union
}

// UniqueCompletedHabits counts distinct habits completed at least once in the
// current window.
func (r *PeriodReport) UniqueCompletedHabits() int {
	return len(r.CompletedHabitIDs())
}

// BestDay returns the current-window day with the highest completion rate.
// Ties go to the earlier date. False when the window is empty.
func (r *PeriodReport) BestDay() (*DayReport, bool) {
	var best *DayReport
	for _, d := range r.CurrentDays {
		if best == nil || d.CompletionRate() > best.CompletionRate() {
			best = d
		}
	}
	return best, best != nil
}

// PeakTemptationDay returns the day with the most temptation events; ties go
// to the higher slip count, then the earlier date. False when no temptations
// were logged.
func (r *PeriodReport) PeakTemptationDay() (*DayReport, bool) {
	var peak *DayReport
	for _, d := range r.CurrentDays {
		if d.TemptationTotal <= 0 {
			continue
		}
		if peak == nil ||
			d.TemptationTotal > peak.TemptationTotal ||
			(d.TemptationTotal == peak.TemptationTotal && d.TemptationSlipped > peak.TemptationSlipped) {
			peak = d
		}
	}
	return peak, peak != nil
}

// TopBlockerReason returns the most frequent blocking reason.
func (r *PeriodReport) TopBlockerReason() (LabelCount, bool) {
	return topLabel(r.BlockerReasonCounts())
}

// TopTemptationTrigger returns the most frequently logged temptation trigger.
func (r *PeriodReport) TopTemptationTrigger() (LabelCount, bool) {
	return topLabel(r.TemptationReasonCounts())
}

// PeakIntensity returns the most frequent temptation intensity label.
func (r *PeriodReport) PeakIntensity() (LabelCount, bool) {
	return topLabel(r.TemptationIntensityCounts())
}

// TopSkippedHabit returns the habit skipped most often in the current window.
// Unknown habit ids still rank; they surface with an id-only ref.
func (r *PeriodReport) TopSkippedHabit() (HabitRef, int, bool) {
	skips := r.SkipCountByHabit()
	if len(skips) == 0 {
		return HabitRef{}, 0, false
	}

	var topID uuid.UUID
	topCount := -1
	for id, count := range skips {
		if count > topCount || (count == topCount && id.String() < topID.String()) {
			topID, topCount = id, count
		}
	}

	ref, ok := r.HabitsByID[topID]
	if !ok {
		ref = HabitRef{ID: topID}
	}
	return ref, topCount, true
}

// TriggerInsights derives the ranked per-trigger insight list for the
// current window.
func (r *PeriodReport) TriggerInsights() []TriggerInsight {
	return DeriveTriggerInsights(r.TemptationReasonCounts(), r.TemptationSlipReasonCounts())
}

// HighestRiskTrigger selects the riskiest trigger of the window.
func (r *PeriodReport) HighestRiskTrigger() (TriggerInsight, bool) {
	return HighestRiskTrigger(r.TriggerInsights())
}

// StrongestResistedTrigger selects the most-resisted trigger of the window.
func (r *PeriodReport) StrongestResistedTrigger() (TriggerInsight, bool) {
	return StrongestResistedTrigger(r.TriggerInsights())
}

// TriggerControlScore returns resisted-over-total across all triggers,
// falling back to the window's overall resistance rate without trigger data.
func (r *PeriodReport) TriggerControlScore() float64 {
	return ControlScore(r.TriggerInsights(), r.ResistanceRate())
}

// TypeBreakdown returns per-completion-type due/completed statistics over the
// current window.
func (r *PeriodReport) TypeBreakdown() []TypeStats {
	return buildTypeBreakdown(r.HabitsByID, r.CurrentDays)
}

func sumDays(days []*DayReport, field func(*DayReport) int) int {
	total := 0
	for _, d := range days {
		total += field(d)
	}
	return total
}

func mergeDayCounts(days []*DayReport, field func(*DayReport) map[string]int) map[string]int {
	maps := make([]map[string]int, 0, len(days))
	for _, d := range days {
		maps = append(maps, field(d))
	}
	return MergeCounts(maps...)
}

func completionRateOf(days []*DayReport) float64 {
	due := sumDays(days, func(d *DayReport) int { return d.Due })
	if due <= 0 {
		return 0
	}
	completed := sumDays(days, func(d *DayReport) int { return d.Completed })
	return float64(completed) / float64(due)
}

func resistanceRateOf(days []*DayReport) float64 {
	total := sumDays(days, func(d *DayReport) int { return d.TemptationTotal })
	if total <= 0 {
		return 0
	}
	resisted := sumDays(days, func(d *DayReport) int { return d.TemptationResisted })
	return float64(resisted) / float64(total)
}

func quitScoreOf(days []*DayReport) float64 {
	if len(days) == 0 {
		return 0
	}
	var sum float64
	for _, d := range days {
		sum += d.QuitScore()
	}
	return sum / float64(len(days))
}

// topLabel scans a merged count map for the highest count; the
// alphabetically first label wins ties so the result is deterministic.
func topLabel(counts map[string]int) (LabelCount, bool) {
	if len(counts) == 0 {
		return LabelCount{}, false
	}
	var top LabelCount
	first := true
	for label, count := range counts {
		if first || count > top.Count || (count == top.Count && label < top.Label) {
			top = LabelCount{Label: label, Count: count}
			first = false
		}
	}
	return top, true
}
