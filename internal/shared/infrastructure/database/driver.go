// Package database selects and opens the configured storage backend.
package database

import (
	"os"
	"path/filepath"
	"strings"
)

// Driver represents a database backend type.
type Driver string

const (
	// DriverPostgres represents PostgreSQL.
	DriverPostgres Driver = "postgres"
	// DriverSQLite represents SQLite.
	DriverSQLite Driver = "sqlite"
)

// String returns the string representation of the driver.
func (d Driver) String() string {
	return string(d)
}

// DetectDriver parses a connection string and returns the driver type.
// Returns DriverSQLite for empty URLs to enable zero-config local mode.
func DetectDriver(url string) Driver {
	if url == "" {
		return DriverSQLite
	}

	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return DriverPostgres
	}

	if strings.HasPrefix(url, "sqlite://") ||
		strings.HasPrefix(url, "file:") ||
		strings.HasSuffix(url, ".db") ||
		strings.HasSuffix(url, ".sqlite") ||
		strings.HasSuffix(url, ".sqlite3") {
		return DriverSQLite
	}

	return DriverPostgres
}

// DefaultSQLitePath returns the local database location used when no URL is
// configured.
func DefaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "habitloop.db"
	}
	return filepath.Join(home, ".habitloop", "habitloop.db")
}

// SQLitePathFromURL strips the sqlite:// scheme, if present.
func SQLitePathFromURL(url string) string {
	return strings.TrimPrefix(url, "sqlite://")
}

// EnsureDirectory creates the parent directory of a database file.
func EnsureDirectory(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
