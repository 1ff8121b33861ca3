package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	habitsDomain "github.com/habitloop/habitloop/internal/habits/domain"
	reportingDomain "github.com/habitloop/habitloop/internal/reporting/domain"
)

// PostgresHabitRepository implements the habit repository and the reporting
// habit directory on PostgreSQL.
type PostgresHabitRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresHabitRepository creates a new PostgreSQL habit repository.
func NewPostgresHabitRepository(pool *pgxpool.Pool) *PostgresHabitRepository {
	return &PostgresHabitRepository{pool: pool}
}

// Save persists a habit (insert or update).
func (r *PostgresHabitRepository) Save(ctx context.Context, habit *habitsDomain.Habit) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO habits (id, user_id, name, description, tracking_kind, quit,
			frequency, times_per_week, points, slip_penalty, archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			tracking_kind = EXCLUDED.tracking_kind,
			quit = EXCLUDED.quit,
			frequency = EXCLUDED.frequency,
			times_per_week = EXCLUDED.times_per_week,
			points = EXCLUDED.points,
			slip_penalty = EXCLUDED.slip_penalty,
			archived = EXCLUDED.archived,
			updated_at = EXCLUDED.updated_at`,
		habit.ID().String(),
		habit.UserID().String(),
		habit.Name(),
		toNullString(habit.Description()),
		habit.TrackingKind(),
		habit.IsQuit(),
		string(habit.Frequency()),
		habit.TimesPerWeek(),
		habit.Points(),
		habit.SlipPenalty(),
		habit.IsArchived(),
		habit.CreatedAt(),
		habit.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to save habit: %w", err)
	}
	return nil
}

// FindByID retrieves a habit by its ID.
func (r *PostgresHabitRepository) FindByID(ctx context.Context, id uuid.UUID) (*habitsDomain.Habit, error) {
	row := r.pool.QueryRow(ctx, habitSelect+` WHERE id = $1`, id.String())
	return scanPostgresHabit(row)
}

// FindByName retrieves a non-archived habit by its exact name.
func (r *PostgresHabitRepository) FindByName(ctx context.Context, userID uuid.UUID, name string) (*habitsDomain.Habit, error) {
	row := r.pool.QueryRow(ctx, habitSelect+` WHERE user_id = $1 AND name = $2 AND NOT archived`, userID.String(), name)
	return scanPostgresHabit(row)
}

// FindByUserID retrieves all habits for a user, archived included.
func (r *PostgresHabitRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*habitsDomain.Habit, error) {
	rows, err := r.pool.Query(ctx, habitSelect+` WHERE user_id = $1 ORDER BY name`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	defer rows.Close()

	var habits []*habitsDomain.Habit
	for rows.Next() {
		habit, err := scanPostgresHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}
	return habits, rows.Err()
}

// HabitRefs returns the non-archived habit definitions the report engine
// classifies.
func (r *PostgresHabitRepository) HabitRefs(ctx context.Context, userID uuid.UUID) ([]reportingDomain.HabitRef, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, tracking_kind, quit
		FROM habits WHERE user_id = $1 AND NOT archived ORDER BY name`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list habit refs: %w", err)
	}
	defer rows.Close()

	var refs []reportingDomain.HabitRef
	for rows.Next() {
		var (
			idStr string
			ref   reportingDomain.HabitRef
		)
		if err := rows.Scan(&idStr, &ref.Name, &ref.TrackingKind, &ref.Quit); err != nil {
			return nil, fmt.Errorf("failed to scan habit ref: %w", err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid habit id %q: %w", idStr, err)
		}
		ref.ID = id
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

const habitSelect = `
	SELECT id, user_id, name, description, tracking_kind, quit,
		frequency, times_per_week, points, slip_penalty, archived, created_at, updated_at
	FROM habits`

func scanPostgresHabit(row pgx.Row) (*habitsDomain.Habit, error) {
	var (
		idStr, userIDStr, name, trackingKind, frequency string
		description                                     *string
		quit, archived                                  bool
		timesPerWeek, points, slipPenalty               int
		createdAt, updatedAt                            time.Time
	)
	err := row.Scan(&idStr, &userIDStr, &name, &description, &trackingKind, &quit,
		&frequency, &timesPerWeek, &points, &slipPenalty, &archived, &createdAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
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

	desc := ""
	if description != nil {
		desc = *description
	}

	return habitsDomain.RehydrateHabit(
		id, userID, name, desc, trackingKind, quit,
		habitsDomain.Frequency(frequency), timesPerWeek, points, slipPenalty,
		archived, createdAt, updatedAt,
	), nil
}
