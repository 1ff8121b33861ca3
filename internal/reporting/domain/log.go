package domain

import (
	"time"

	"github.com/google/uuid"
)

// CompletionStatus is the per-day resolution of a due habit.
type CompletionStatus string

const (
	StatusCompleted CompletionStatus = "completed"
	StatusSkipped   CompletionStatus = "skipped"
	StatusMissed    CompletionStatus = "missed"
	StatusPending   CompletionStatus = "pending"
)

// IsValid checks if the status is a known value.
func (s CompletionStatus) IsValid() bool {
	switch s {
	case StatusCompleted, StatusSkipped, StatusMissed, StatusPending:
		return true
	default:
		return false
	}
}

// CompletionEntry is one habit-day resolution row from the completion log.
// A habit counts as due on a day exactly when a row exists for it.
type CompletionEntry struct {
	ID           uuid.UUID
	HabitID      uuid.UUID
	Day          time.Time
	Status       CompletionStatus
	Reason       string // Skip/not-done reason label, verbatim from the log.
	PointsEarned int
	PointsLost   int
}

// TemptationOutcome classifies a logged urge. Classification may be partial:
// unclassified events count toward the total only.
type TemptationOutcome string

const (
	OutcomeResisted     TemptationOutcome = "resisted"
	OutcomeSlipped      TemptationOutcome = "slipped"
	OutcomeUnclassified TemptationOutcome = "unclassified"
)

// IsValid checks if the outcome is a known value.
func (o TemptationOutcome) IsValid() bool {
	switch o {
	case OutcomeResisted, OutcomeSlipped, OutcomeUnclassified:
		return true
	default:
		return false
	}
}

// TemptationEvent is one logged urge. HabitID is optional: events recorded
// outside a specific quit habit stay visible in the all-habits view only.
type TemptationEvent struct {
	ID        uuid.UUID
	HabitID   *uuid.UUID
	Day       time.Time
	Trigger   string
	Intensity string
	Outcome   TemptationOutcome
}
