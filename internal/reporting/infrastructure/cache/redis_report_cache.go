// Package cache provides a Redis-backed cache for rendered period reports.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/habitloop/habitloop/internal/reporting/domain"
)

// ReportCache stores computed report summaries keyed by user, range and mode.
// All operations are best-effort: a cache failure is logged and the caller
// recomputes from the log tables.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// CachedSummary is the subset of a period report worth caching. The full
// report carries derived maps that are cheap to rebuild, so only the headline
// numbers are stored.
type CachedSummary struct {
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	TotalDue        int       `json:"total_due"`
	TotalCompleted  int       `json:"total_completed"`
	TotalSkipped    int       `json:"total_skipped"`
	TotalMissed     int       `json:"total_missed"`
	CompletionRate  float64   `json:"completion_rate"`
	CompletionDelta float64   `json:"completion_delta"`
	NetPoints       int       `json:"net_points"`
	QuitMode        bool      `json:"quit_mode"`
	ResistanceRate  float64   `json:"resistance_rate"`
	QuitScore       float64   `json:"quit_score"`
	CachedAt        time.Time `json:"cached_at"`
}

// NewReportCache creates a report cache. The client may be nil, in which case
// every lookup misses and every store is a no-op.
func NewReportCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *ReportCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached summary for the key, or (nil, false) on a miss.
func (c *ReportCache) Get(ctx context.Context, userID uuid.UUID, r domain.PeriodRange, quitMode bool) (*CachedSummary, bool) {
	if c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, c.key(userID, r, quitMode)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("report cache read failed", "error", err)
		return nil, false
	}

	var summary CachedSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		c.logger.Warn("report cache entry corrupt", "error", err)
		return nil, false
	}
	return &summary, true
}

// Set stores the report's headline numbers under the range key.
func (c *ReportCache) Set(ctx context.Context, userID uuid.UUID, report *domain.PeriodReport) {
	if c.client == nil {
		return
	}

	summary := CachedSummary{
		Start:           report.CurrentRange.Start,
		End:             report.CurrentRange.End,
		TotalDue:        report.TotalDue(),
		TotalCompleted:  report.Completed(),
		TotalSkipped:    report.Skipped(),
		TotalMissed:     report.Missed(),
		CompletionRate:  report.CompletionRate(),
		CompletionDelta: report.CompletionDelta(),
		NetPoints:       report.NetPoints(),
		QuitMode:        report.QuitMode,
		ResistanceRate:  report.ResistanceRate(),
		QuitScore:       report.QuitPerformanceScore(),
		CachedAt:        time.Now().UTC(),
	}

	data, err := json.Marshal(summary)
	if err != nil {
		c.logger.Warn("report cache encode failed", "error", err)
		return
	}

	key := c.key(userID, report.CurrentRange, report.QuitMode)
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("report cache write failed", "error", err)
	}
}

// Invalidate drops every cached report for the user. Called after any log
// write, since a single entry can move several range windows.
func (c *ReportCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if c.client == nil {
		return
	}

	pattern := fmt.Sprintf("report:%s:*", userID)
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("report cache scan failed", "error", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("report cache invalidation failed", "error", err)
	}
}

func (c *ReportCache) key(userID uuid.UUID, r domain.PeriodRange, quitMode bool) string {
	mode := "all"
	if quitMode {
		mode = "quit"
	}
	return fmt.Sprintf("report:%s:%s:%s:%s",
		userID, r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"), mode)
}
