package cli

import (
	"github.com/google/uuid"

	habitsDomain "github.com/habitloop/habitloop/internal/habits/domain"
	reportingQueries "github.com/habitloop/habitloop/internal/reporting/application/queries"
	reportingDomain "github.com/habitloop/habitloop/internal/reporting/domain"
	"github.com/habitloop/habitloop/internal/reporting/infrastructure/cache"
)

// App holds the CLI application dependencies.
type App struct {
	// Repositories
	HabitRepo habitsDomain.Repository
	LogRepo   reportingDomain.LogRepository

	// Query Handlers
	GetPeriodReportHandler *reportingQueries.GetPeriodReportHandler

	// Caches
	ReportCache *cache.ReportCache

	// Report defaults
	DefaultPeriod string

	// Current user (configured per environment)
	CurrentUserID uuid.UUID
}

var appInstance *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	appInstance = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return appInstance
}
