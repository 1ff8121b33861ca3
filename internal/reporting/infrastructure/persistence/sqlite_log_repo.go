package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/habitloop/habitloop/internal/reporting/domain"
)

// SQLiteLogRepository implements the reporting log repository on SQLite.
type SQLiteLogRepository struct {
	db *sql.DB
}

// NewSQLiteLogRepository creates a new SQLite log repository.
func NewSQLiteLogRepository(db *sql.DB) *SQLiteLogRepository {
	return &SQLiteLogRepository{db: db}
}

// RecordCompletion upserts the habit-day resolution. Logging a day twice
// replaces the earlier resolution, so a pending row can become completed.
func (r *SQLiteLogRepository) RecordCompletion(ctx context.Context, userID uuid.UUID, entry domain.CompletionEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO completion_log (id, user_id, habit_id, day, status, reason,
			points_earned, points_lost, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (habit_id, day) DO UPDATE SET
			status = excluded.status,
			reason = excluded.reason,
			points_earned = excluded.points_earned,
			points_lost = excluded.points_lost`,
		ensureID(entry.ID).String(),
		userID.String(),
		entry.HabitID.String(),
		formatDay(entry.Day),
		string(entry.Status),
		toNullString(entry.Reason),
		int64(entry.PointsEarned),
		int64(entry.PointsLost),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to record completion: %w", err)
	}
	return nil
}

// RecordTemptation appends a temptation event.
func (r *SQLiteLogRepository) RecordTemptation(ctx context.Context, userID uuid.UUID, event domain.TemptationEvent) error {
	var habitID sql.NullString
	if event.HabitID != nil {
		habitID = sql.NullString{String: event.HabitID.String(), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO temptation_log (id, user_id, habit_id, day, trigger_label, intensity, outcome, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ensureID(event.ID).String(),
		userID.String(),
		habitID,
		formatDay(event.Day),
		toNullString(event.Trigger),
		toNullString(event.Intensity),
		string(event.Outcome),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to record temptation: %w", err)
	}
	return nil
}

// CompletionsInRange reads completion rows for the inclusive day range.
func (r *SQLiteLogRepository) CompletionsInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.CompletionEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, habit_id, day, status, reason, points_earned, points_lost
		FROM completion_log
		WHERE user_id = ? AND day >= ? AND day <= ?
		ORDER BY day`,
		userID.String(), formatDay(from), formatDay(to))
	if err != nil {
		return nil, fmt.Errorf("failed to query completion log: %w", err)
	}
	defer rows.Close()

	var entries []domain.CompletionEntry
	for rows.Next() {
		var (
			idStr, habitIDStr, dayStr, status string
			reason                            sql.NullString
			earned, lost                      int64
		)
		if err := rows.Scan(&idStr, &habitIDStr, &dayStr, &status, &reason, &earned, &lost); err != nil {
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
		day, err := parseDay(dayStr)
		if err != nil {
			return nil, fmt.Errorf("invalid day %q: %w", dayStr, err)
		}
		entries = append(entries, domain.CompletionEntry{
			ID:           id,
			HabitID:      habitID,
			Day:          day,
			Status:       domain.CompletionStatus(status),
			Reason:       fromNullString(reason),
			PointsEarned: int(earned),
			PointsLost:   int(lost),
		})
	}
	return entries, rows.Err()
}

// TemptationsInRange reads temptation rows for the inclusive day range.
func (r *SQLiteLogRepository) TemptationsInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.TemptationEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, habit_id, day, trigger_label, intensity, outcome
		FROM temptation_log
		WHERE user_id = ? AND day >= ? AND day <= ?
		ORDER BY day`,
		userID.String(), formatDay(from), formatDay(to))
	if err != nil {
		return nil, fmt.Errorf("failed to query temptation log: %w", err)
	}
	defer rows.Close()

	var events []domain.TemptationEvent
	for rows.Next() {
		var (
			idStr, dayStr, outcome      string
			habitID, trigger, intensity sql.NullString
		)
		if err := rows.Scan(&idStr, &habitID, &dayStr, &trigger, &intensity, &outcome); err != nil {
			return nil, fmt.Errorf("failed to scan temptation row: %w", err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid temptation id %q: %w", idStr, err)
		}
		day, err := parseDay(dayStr)
		if err != nil {
			return nil, fmt.Errorf("invalid day %q: %w", dayStr, err)
		}
		event := domain.TemptationEvent{
			ID:        id,
			Day:       day,
			Trigger:   fromNullString(trigger),
			Intensity: fromNullString(intensity),
			Outcome:   domain.TemptationOutcome(outcome),
		}
		if habitID.Valid {
			hid, err := uuid.Parse(habitID.String)
			if err != nil {
				return nil, fmt.Errorf("invalid habit id %q: %w", habitID.String, err)
			}
			event.HabitID = &hid
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
