// Package domain contains the habit bounded context: the definitions the
// reporting engine classifies and the scheduling rule that decides due-ness.
package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/habitloop/habitloop/internal/shared/domain"
)

var (
	ErrHabitEmptyName     = errors.New("habit name cannot be empty")
	ErrHabitInvalidFreq   = errors.New("invalid habit frequency")
	ErrHabitArchived      = errors.New("habit is archived")
	ErrHabitInvalidPoints = errors.New("points cannot be negative")
)

// Frequency represents how often a habit should be acted on.
type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyWeekdays Frequency = "weekdays" // Mon-Fri
	FrequencyWeekends Frequency = "weekends" // Sat-Sun
	FrequencyCustom   Frequency = "custom"   // X times per week
)

// IsValid checks if the frequency is valid.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyWeekdays, FrequencyWeekends, FrequencyCustom:
		return true
	default:
		return false
	}
}

// Habit represents a tracked behavior: either one the user wants to build, or
// (quit mode) one they want to abstain from.
type Habit struct {
	sharedDomain.BaseAggregateRoot
	userID       uuid.UUID
	name         string
	description  string
	trackingKind string // Raw completion-type string as stored; may carry legacy formatting.
	quit         bool
	frequency    Frequency
	timesPerWeek int
	points       int // Points earned per completion (or per clean day in quit mode).
	slipPenalty  int // Points lost per skip/slip, stored as a magnitude.
	archived     bool
}

// NewHabit creates a new habit definition.
func NewHabit(userID uuid.UUID, name, trackingKind string, quit bool, frequency Frequency) (*Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrHabitEmptyName
	}

	if !frequency.IsValid() {
		return nil, ErrHabitInvalidFreq
	}

	habit := &Habit{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		userID:            userID,
		name:              name,
		trackingKind:      strings.TrimSpace(trackingKind),
		quit:              quit,
		frequency:         frequency,
		timesPerWeek:      defaultTimesPerWeek(frequency),
		points:            1,
		slipPenalty:       1,
	}

	habit.AddDomainEvent(NewHabitCreated(habit))

	return habit, nil
}

// Getters
func (h *Habit) UserID() uuid.UUID    { return h.userID }
func (h *Habit) Name() string         { return h.name }
func (h *Habit) Description() string  { return h.description }
func (h *Habit) TrackingKind() string { return h.trackingKind }
func (h *Habit) IsQuit() bool         { return h.quit }
func (h *Habit) Frequency() Frequency { return h.frequency }
func (h *Habit) TimesPerWeek() int    { return h.timesPerWeek }
func (h *Habit) Points() int          { return h.points }
func (h *Habit) SlipPenalty() int     { return h.slipPenalty }
func (h *Habit) IsArchived() bool     { return h.archived }

// SetName updates the habit name.
func (h *Habit) SetName(name string) error {
	if h.archived {
		return ErrHabitArchived
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrHabitEmptyName
	}
	h.name = name
	h.Touch()
	return nil
}

// SetDescription updates the description.
func (h *Habit) SetDescription(desc string) error {
	if h.archived {
		return ErrHabitArchived
	}
	h.description = strings.TrimSpace(desc)
	h.Touch()
	return nil
}

// SetFrequency updates the frequency.
func (h *Habit) SetFrequency(freq Frequency, timesPerWeek int) error {
	if h.archived {
		return ErrHabitArchived
	}
	if !freq.IsValid() {
		return ErrHabitInvalidFreq
	}
	previousFreq := h.frequency
	previousTimes := h.timesPerWeek
	h.frequency = freq
	if freq == FrequencyCustom {
		h.timesPerWeek = timesPerWeek
	} else {
		h.timesPerWeek = defaultTimesPerWeek(freq)
	}
	h.Touch()
	if h.frequency != previousFreq || h.timesPerWeek != previousTimes {
		h.AddDomainEvent(NewHabitFrequencyChanged(h))
	}
	return nil
}

// SetPoints updates the point values attached to completions and slips.
func (h *Habit) SetPoints(points, slipPenalty int) error {
	if h.archived {
		return ErrHabitArchived
	}
	if points < 0 || slipPenalty < 0 {
		return ErrHabitInvalidPoints
	}
	h.points = points
	h.slipPenalty = slipPenalty
	h.Touch()
	return nil
}

// Archive marks the habit as archived.
func (h *Habit) Archive() {
	if !h.archived {
		h.archived = true
		h.Touch()
		h.AddDomainEvent(NewHabitArchived(h))
	}
}

// Unarchive restores an archived habit.
func (h *Habit) Unarchive() {
	if h.archived {
		h.archived = false
		h.Touch()
	}
}

// IsDueOn checks if the habit is scheduled for a given date.
func (h *Habit) IsDueOn(date time.Time) bool {
	if h.archived {
		return false
	}

	weekday := date.Weekday()

	switch h.frequency {
	case FrequencyDaily:
		return true
	case FrequencyWeekdays:
		return weekday >= time.Monday && weekday <= time.Friday
	case FrequencyWeekends:
		return weekday == time.Saturday || weekday == time.Sunday
	case FrequencyWeekly:
		// Due on the same weekday as creation.
		return weekday == h.CreatedAt().Weekday()
	case FrequencyCustom:
		// Custom habits track a weekly target, not fixed days.
		return true
	default:
		return false
	}
}

func defaultTimesPerWeek(freq Frequency) int {
	switch freq {
	case FrequencyDaily, FrequencyCustom:
		return 7
	case FrequencyWeekdays:
		return 5
	case FrequencyWeekends:
		return 2
	case FrequencyWeekly:
		return 1
	default:
		return 1
	}
}

// RehydrateHabit recreates a habit from persisted state without generating events.
func RehydrateHabit(
	id uuid.UUID,
	userID uuid.UUID,
	name string,
	description string,
	trackingKind string,
	quit bool,
	frequency Frequency,
	timesPerWeek int,
	points int,
	slipPenalty int,
	archived bool,
	createdAt time.Time,
	updatedAt time.Time,
) *Habit {
	baseEntity := sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)

	return &Habit{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(baseEntity),
		userID:            userID,
		name:              name,
		description:       description,
		trackingKind:      trackingKind,
		quit:              quit,
		frequency:         frequency,
		timesPerWeek:      timesPerWeek,
		points:            points,
		slipPenalty:       slipPenalty,
		archived:          archived,
	}
}
