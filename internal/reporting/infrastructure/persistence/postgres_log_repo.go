package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/habitloop/habitloop/internal/reporting/domain"
)

// PostgresLogRepository implements the reporting log repository on PostgreSQL.
type PostgresLogRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresLogRepository creates a new PostgreSQL log repository.
func NewPostgresLogRepository(pool *pgxpool.Pool) *PostgresLogRepository {
	return &PostgresLogRepository{pool: pool}
}

// RecordCompletion upserts the habit-day resolution.
func (r *PostgresLogRepository) RecordCompletion(ctx context.Context, userID uuid.UUID, entry domain.CompletionEntry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO completion_log (id, user_id, habit_id, day, status, reason,
			points_earned, points_lost, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (habit_id, day) DO UPDATE SET
			status = EXCLUDED.status,
			reason = EXCLUDED.reason,
			points_earned = EXCLUDED.points_earned,
			points_lost = EXCLUDED.points_lost`,
		ensureID(entry.ID).String(),
		userID.String(),
		entry.HabitID.String(),
		domain.DayOf(entry.Day),
		string(entry.Status),
		toNullString(entry.Reason),
		entry.PointsEarned,
		entry.PointsLost,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record completion: %w", err)
	}
	return nil
}

// RecordTemptation appends a temptation event.
func (r *PostgresLogRepository) RecordTemptation(ctx context.Context, userID uuid.UUID, event domain.TemptationEvent) error {
	var habitID *string
	if event.HabitID != nil {
		s := event.HabitID.String()
		habitID = &s
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO temptation_log (id, user_id, habit_id, day, trigger_label, intensity, outcome, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		ensureID(event.ID).String(),
		userID.String(),
		habitID,
		domain.DayOf(event.Day),
		toNullString(event.Trigger),
		toNullString(event.Intensity),
		string(event.Outcome),
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record temptation: %w", err)
	}
	return nil
}

// CompletionsInRange reads completion rows for the inclusive day range.
func (r *PostgresLogRepository) CompletionsInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.CompletionEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, habit_id, day, status, reason, points_earned, points_lost
		FROM completion_log
		WHERE user_id = $1 AND day >= $2 AND day <= $3
		ORDER BY day`,
		userID.String(), domain.DayOf(from), domain.DayOf(to))
	if err != nil {
		return nil, fmt.Errorf("failed to query completion log: %w", err)
	}
	defer rows.Close()

	var entries []domain.CompletionEntry
	for rows.Next() {
		var (
			idStr, habitIDStr, status string
			day                       time.Time
			reason                    *string
			earned, lost              int
		)
		if err := rows.Scan(&idStr, &habitIDStr, &day, &status, &reason, &earned, &lost); err != nil {
			return nil, fmt.Errorf("failed to scan completion row: %w", err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid completion id %q: %w", idStr, err)
		}
		habitID, err := uuid.Parse(habitIDStr)
		if err != nil {
			return nil, fmt.Errorf("invalid habit id %q: %w", habitIDStr, err)
		}
		entry := domain.CompletionEntry{
			ID:           id,
			HabitID:      habitID,
			Day:          domain.DayOf(day),
			Status:       domain.CompletionStatus(status),
			PointsEarned: earned,
			PointsLost:   lost,
		}
		if reason != nil {
			entry.Reason = *reason
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// TemptationsInRange reads temptation rows for the inclusive day range.
func (r *PostgresLogRepository) TemptationsInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.TemptationEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, habit_id, day, trigger_label, intensity, outcome
		FROM temptation_log
		WHERE user_id = $1 AND day >= $2 AND day <= $3
		ORDER BY day`,
		userID.String(), domain.DayOf(from), domain.DayOf(to))
	if err != nil {
		return nil, fmt.Errorf("failed to query temptation log: %w", err)
	}
	defer rows.Close()

	var events []domain.TemptationEvent
	for rows.Next() {
		var (
			idStr, outcome              string
			habitIDStr, trigger, intensity *string
			day                         time.Time
		)
		if err := rows.Scan(&idStr, &habitIDStr, &day, &trigger, &intensity, &outcome); err != nil {
			return nil, fmt.Errorf("failed to scan temptation row: %w", err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid temptation id %q: %w", idStr, err)
		}
		event := domain.TemptationEvent{
			ID:      id,
			Day:     domain.DayOf(day),
			Outcome: domain.TemptationOutcome(outcome),
		}
		if habitIDStr != nil {
			hid, err := uuid.Parse(*habitIDStr)
			if err != nil {
				return nil, fmt.Errorf("invalid habit id %q: %w", *habitIDStr, err)
			}
			event.HabitID = &hid
		}
		if trigger != nil {
			event.Trigger = *trigger
		}
		if intensity != nil {
			event.Intensity = *intensity
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
