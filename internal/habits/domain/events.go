package domain

import (
	"github.com/google/uuid"

	sharedDomain "github.com/habitloop/habitloop/internal/shared/domain"
)

const aggregateType = "Habit"

// HabitCreated is emitted when a habit is created.
type HabitCreated struct {
	sharedDomain.BaseEvent
	HabitID   uuid.UUID `json:"habit_id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Quit      bool      `json:"quit"`
	Frequency string    `json:"frequency"`
}

// NewHabitCreated creates a HabitCreated event.
func NewHabitCreated(h *Habit) *HabitCreated {
	return &HabitCreated{
		BaseEvent: sharedDomain.NewBaseEvent(h.ID(), aggregateType, "habits.habit.created"),
		HabitID:   h.ID(),
		UserID:    h.UserID(),
		Name:      h.Name(),
		Quit:      h.IsQuit(),
		Frequency: string(h.Frequency()),
	}
}

// HabitFrequencyChanged is emitted when a habit's schedule changes.
type HabitFrequencyChanged struct {
	sharedDomain.BaseEvent
	HabitID      uuid.UUID `json:"habit_id"`
	Frequency    string    `json:"frequency"`
	TimesPerWeek int       `json:"times_per_week"`
}

// NewHabitFrequencyChanged creates a HabitFrequencyChanged event.
func NewHabitFrequencyChanged(h *Habit) *HabitFrequencyChanged {
	return &HabitFrequencyChanged{
		BaseEvent:    sharedDomain.NewBaseEvent(h.ID(), aggregateType, "habits.habit.frequency_changed"),
		HabitID:      h.ID(),
		Frequency:    string(h.Frequency()),
		TimesPerWeek: h.TimesPerWeek(),
	}
}

// HabitArchived is emitted when a habit is archived.
type HabitArchived struct {
	sharedDomain.BaseEvent
	HabitID uuid.UUID `json:"habit_id"`
}

// NewHabitArchived creates a HabitArchived event.
func NewHabitArchived(h *Habit) *HabitArchived {
	return &HabitArchived{
		BaseEvent: sharedDomain.NewBaseEvent(h.ID(), aggregateType, "habits.habit.archived"),
		HabitID:   h.ID(),
	}
}
