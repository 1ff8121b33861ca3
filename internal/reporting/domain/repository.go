package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// HabitDirectory supplies the habit definitions relevant to a report window.
type HabitDirectory interface {
	HabitRefs(ctx context.Context, userID uuid.UUID) ([]HabitRef, error)
}

// LogRepository persists and reads the raw event logs the report engine
// aggregates. Range reads are inclusive on both ends and day-granular.
type LogRepository interface {
	RecordCompletion(ctx context.Context, userID uuid.UUID, entry CompletionEntry) error
	RecordTemptation(ctx context.Context, userID uuid.UUID, event TemptationEvent) error

	CompletionsInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]CompletionEntry, error)
	TemptationsInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]TemptationEvent, error)
}
