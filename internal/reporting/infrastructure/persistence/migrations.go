// Package persistence implements the habit and log repositories on SQLite
// and PostgreSQL.
package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS habits (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	name TEXT NOT NULL,
	description TEXT,
	tracking_kind TEXT NOT NULL DEFAULT '',
	quit INTEGER NOT NULL DEFAULT 0,
	frequency TEXT NOT NULL,
	times_per_week INTEGER NOT NULL,
	points INTEGER NOT NULL DEFAULT 1,
	slip_penalty INTEGER NOT NULL DEFAULT 1,
	archived INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_habits_user ON habits(user_id);

CREATE TABLE IF NOT EXISTS completion_log (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	habit_id TEXT NOT NULL,
	day TEXT NOT NULL,
	status TEXT NOT NULL,
	reason TEXT,
	points_earned INTEGER NOT NULL DEFAULT 0,
	points_lost INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	UNIQUE (habit_id, day)
);
CREATE INDEX IF NOT EXISTS idx_completion_log_user_day ON completion_log(user_id, day);

CREATE TABLE IF NOT EXISTS temptation_log (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	habit_id TEXT,
	day TEXT NOT NULL,
	trigger_label TEXT,
	intensity TEXT,
	outcome TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_temptation_log_user_day ON temptation_log(user_id, day);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS habits (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	name TEXT NOT NULL,
	description TEXT,
	tracking_kind TEXT NOT NULL DEFAULT '',
	quit BOOLEAN NOT NULL DEFAULT FALSE,
	frequency TEXT NOT NULL,
	times_per_week INTEGER NOT NULL,
	points INTEGER NOT NULL DEFAULT 1,
	slip_penalty INTEGER NOT NULL DEFAULT 1,
	archived BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_habits_user ON habits(user_id);

CREATE TABLE IF NOT EXISTS completion_log (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	habit_id TEXT NOT NULL,
	day DATE NOT NULL,
	status TEXT NOT NULL,
	reason TEXT,
	points_earned INTEGER NOT NULL DEFAULT 0,
	points_lost INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL,
	UNIQUE (habit_id, day)
);
CREATE INDEX IF NOT EXISTS idx_completion_log_user_day ON completion_log(user_id, day);

CREATE TABLE IF NOT EXISTS temptation_log (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	habit_id TEXT,
	day DATE NOT NULL,
	trigger_label TEXT,
	intensity TEXT,
	outcome TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_temptation_log_user_day ON temptation_log(user_id, day);
`

// MigrateSQLite applies the SQLite schema.
func MigrateSQLite(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("failed to apply sqlite schema: %w", err)
	}
	return nil
}

// MigratePostgres applies the PostgreSQL schema.
func MigratePostgres(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to apply postgres schema: %w", err)
	}
	return nil
}
