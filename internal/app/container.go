// Package app wires configuration, storage and handlers into a container
// the CLI adapter consumes.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	habitsDomain "github.com/habitloop/habitloop/internal/habits/domain"
	reportingQueries "github.com/habitloop/habitloop/internal/reporting/application/queries"
	reportingDomain "github.com/habitloop/habitloop/internal/reporting/domain"
	"github.com/habitloop/habitloop/internal/reporting/infrastructure/cache"
	"github.com/habitloop/habitloop/internal/reporting/infrastructure/persistence"
	"github.com/habitloop/habitloop/internal/shared/infrastructure/database"
	"github.com/habitloop/habitloop/pkg/config"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Database
	DBDriver database.Driver
	SQLiteDB *sql.DB
	Pool     *pgxpool.Pool

	// Redis
	RedisClient *redis.Client

	// Repositories
	HabitRepo      habitsDomain.Repository
	HabitDirectory reportingDomain.HabitDirectory
	LogRepo        reportingDomain.LogRepository

	// Caches
	ReportCache *cache.ReportCache

	// Query handlers
	GetPeriodReportHandler *reportingQueries.GetPeriodReportHandler
}

// NewContainer connects to storage and wires all dependencies.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	c.DBDriver = database.DetectDriver(cfg.DatabaseURL)
	switch c.DBDriver {
	case database.DriverSQLite:
		path := database.SQLitePathFromURL(cfg.DatabaseURL)
		if path == "" {
			path = database.DefaultSQLitePath()
		}
		if err := database.EnsureDirectory(path); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		db, err := database.OpenSQLite(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := persistence.MigrateSQLite(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		c.SQLiteDB = db

		habitRepo := persistence.NewSQLiteHabitRepository(db)
		c.HabitRepo = habitRepo
		c.HabitDirectory = habitRepo
		c.LogRepo = persistence.NewSQLiteLogRepository(db)
		logger.Info("connected to database", "driver", "sqlite", "path", path)

	case database.DriverPostgres:
		pool, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := persistence.MigratePostgres(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		c.Pool = pool

		habitRepo := persistence.NewPostgresHabitRepository(pool)
		c.HabitRepo = habitRepo
		c.HabitDirectory = habitRepo
		c.LogRepo = persistence.NewPostgresLogRepository(pool)
		logger.Info("connected to database", "driver", "postgres")

	default:
		return nil, fmt.Errorf("unsupported database driver %q", c.DBDriver)
	}

	// Connect to Redis (optional, reports recompute on a miss)
	if cfg.CacheEnabled && cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Warn("invalid Redis URL, report caching disabled", "error", err)
		} else {
			client := redis.NewClient(opt)
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("Redis not available, report caching disabled", "error", err)
			} else {
				c.RedisClient = client
				logger.Info("connected to Redis")
			}
		}
	}
	c.ReportCache = cache.NewReportCache(c.RedisClient, cfg.ReportCacheTTL, logger)

	c.GetPeriodReportHandler = reportingQueries.NewGetPeriodReportHandler(c.HabitDirectory, c.LogRepo)

	return c, nil
}

// Close releases database and Redis connections.
func (c *Container) Close() {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing Redis connection", "error", err)
		}
	}

	if c.Pool != nil {
		c.Pool.Close()
		c.Logger.Info("PostgreSQL connection closed")
	}

	if c.SQLiteDB != nil {
		if err := c.SQLiteDB.Close(); err != nil {
			c.Logger.Warn("error closing SQLite connection", "error", err)
		} else {
			c.Logger.Info("SQLite connection closed")
		}
	}
}
