package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	habitsDomain "github.com/habitloop/habitloop/internal/habits/domain"
	reportingDomain "github.com/habitloop/habitloop/internal/reporting/domain"
)

// SQLiteHabitRepository implements the habit repository and the reporting
// habit directory on SQLite.
type SQLiteHabitRepository struct {
	db *sql.DB
}

// NewSQLiteHabitRepository creates a new SQLite habit repository.
func NewSQLiteHabitRepository(db *sql.DB) *SQLiteHabitRepository {
	return &SQLiteHabitRepository{db: db}
}

// Save persists a habit (insert or update).
func (r *SQLiteHabitRepository) Save(ctx context.Context, habit *habitsDomain.Habit) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO habits (id, user_id, name, description, tracking_kind, quit,
			frequency, times_per_week, points, slip_penalty, archived, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			tracking_kind = excluded.tracking_kind,
			quit = excluded.quit,
			frequency = excluded.frequency,
			times_per_week = excluded.times_per_week,
			points = excluded.points,
			slip_penalty = excluded.slip_penalty,
			archived = excluded.archived,
			updated_at = excluded.updated_at`,
		habit.ID().String(),
		habit.UserID().String(),
		habit.Name(),
		toNullString(habit.Description()),
		habit.TrackingKind(),
		boolToInt64(habit.IsQuit()),
		string(habit.Frequency()),
		int64(habit.TimesPerWeek()),
		int64(habit.Points()),
		int64(habit.SlipPenalty()),
		boolToInt64(habit.IsArchived()),
		habit.CreatedAt().Format(time.RFC3339),
		habit.UpdatedAt().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save habit: %w", err)
	}
	return nil
}

// FindByID retrieves a habit by its ID.
func (r *SQLiteHabitRepository) FindByID(ctx context.Context, id uuid.UUID) (*habitsDomain.Habit, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, description, tracking_kind, quit,
			frequency, times_per_week, points, slip_penalty, archived, created_at, updated_at
		FROM habits WHERE id = ?`, id.String())
	return scanHabitRow(row)
}

// FindByName retrieves a non-archived habit by its exact name.
func (r *SQLiteHabitRepository) FindByName(ctx context.Context, userID uuid.UUID, name string) (*habitsDomain.Habit, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, description, tracking_kind, quit,
			frequency, times_per_week, points, slip_penalty, archived, created_at, updated_at
		FROM habits WHERE user_id = ? AND name = ? AND archived = 0`, userID.String(), name)
	return scanHabitRow(row)
}

// FindByUserID retrieves all habits for a user, archived included.
func (r *SQLiteHabitRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*habitsDomain.Habit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, description, tracking_kind, quit,
			frequency, times_per_week, points, slip_penalty, archived, created_at, updated_at
		FROM habits WHERE user_id = ? ORDER BY name`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	defer rows.Close()

	var habits []*habitsDomain.Habit
	for rows.Next() {
		habit, err := scanHabitRow(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}
	return habits, rows.Err()
}

// HabitRefs returns the non-archived habit definitions the report engine
// classifies.
func (r *SQLiteHabitRepository) HabitRefs(ctx context.Context, userID uuid.UUID) ([]reportingDomain.HabitRef, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, tracking_kind, quit
		FROM habits WHERE user_id = ? AND archived = 0 ORDER BY name`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list habit refs: %w", err)
	}
	defer rows.Close()

	var refs []reportingDomain.HabitRef
	for rows.Next() {
		var (
			idStr string
			ref   reportingDomain.HabitRef
			quit  int64
		)
		if err := rows.Scan(&idStr, &ref.Name, &ref.TrackingKind, &quit); err != nil {
			return nil, fmt.Errorf("failed to scan habit ref: %w", err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid habit id %q: %w", idStr, err)
		}
		ref.ID = id
		ref.Quit = quit != 0
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabitRow(row rowScanner) (*habitsDomain.Habit, error) {
	var (
		idStr, userIDStr, name, trackingKind, frequency string
		description                                     sql.NullString
		quit, timesPerWeek, points, slipPenalty, archived int64
		createdAtStr, updatedAtStr                      string
	)
	err := row.Scan(&idStr, &userIDStr, &name, &description, &trackingKind, &quit,
		&frequency, &timesPerWeek, &points, &slipPenalty, &archived, &createdAtStr, &updatedAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, habitsDomain.ErrHabitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan habit: %w", err)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid habit id %q: %w", idStr, err)
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", userIDStr, err)
	}
	createdAt, err := time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at %q: %w", createdAtStr, err)
	}
	updatedAt, err := time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("invalid updated_at %q: %w", updatedAtStr, err)
	}

	return habitsDomain.RehydrateHabit(
		id, userID, name, fromNullString(description), trackingKind, quit != 0,
		habitsDomain.Frequency(frequency), int(timesPerWeek), int(points), int(slipPenalty),
		archived != 0, createdAt, updatedAt,
	), nil
}
