package persistence

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const dayFormat = "2006-01-02"

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func fromNullString(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

func boolToInt64(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func formatDay(t time.Time) string {
	return t.UTC().Format(dayFormat)
}

func parseDay(s string) (time.Time, error) {
	return time.Parse(dayFormat, s)
}

func ensureID(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}
