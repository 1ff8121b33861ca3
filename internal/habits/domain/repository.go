package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrHabitNotFound is returned when a habit does not exist.
var ErrHabitNotFound = errors.New("habit not found")

// Repository defines the persistence interface for habits.
type Repository interface {
	// Save persists a habit (insert or update).
	Save(ctx context.Context, habit *Habit) error

	// FindByID retrieves a habit by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Habit, error)

	// FindByName retrieves a non-archived habit by its exact name.
	FindByName(ctx context.Context, userID uuid.UUID, name string) (*Habit, error)

	// FindByUserID retrieves all habits for a user, archived included.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*Habit, error)
}
