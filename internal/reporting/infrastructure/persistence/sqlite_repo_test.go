package persistence_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	habitsDomain "github.com/habitloop/habitloop/internal/habits/domain"
	reportingDomain "github.com/habitloop/habitloop/internal/reporting/domain"
	"github.com/habitloop/habitloop/internal/reporting/infrastructure/persistence"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// A second pooled connection would see its own empty in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, persistence.MigrateSQLite(context.Background(), db))
	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSQLiteHabitRepository_SaveAndFind(t *testing.T) {
	db := setupDB(t)
	repo := persistence.NewSQLiteHabitRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	habit, err := habitsDomain.NewHabit(userID, "Morning Run", "yes_no", false, habitsDomain.FrequencyDaily)
	require.NoError(t, err)
	require.NoError(t, habit.SetDescription("30 minutes before work"))
	require.NoError(t, repo.Save(ctx, habit))

	found, err := repo.FindByID(ctx, habit.ID())
	require.NoError(t, err)
	assert.Equal(t, habit.ID(), found.ID())
	assert.Equal(t, "Morning Run", found.Name())
	assert.Equal(t, "30 minutes before work", found.Description())
	assert.Equal(t, habitsDomain.FrequencyDaily, found.Frequency())
	assert.False(t, found.IsQuit())

	byName, err := repo.FindByName(ctx, userID, "Morning Run")
	require.NoError(t, err)
	assert.Equal(t, habit.ID(), byName.ID())
}

func TestSQLiteHabitRepository_SaveUpdatesExisting(t *testing.T) {
	db := setupDB(t)
	repo := persistence.NewSQLiteHabitRepository(db)
	ctx := context.Background()

	habit, err := habitsDomain.NewHabit(uuid.New(), "Read", "timer", false, habitsDomain.FrequencyDaily)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, habit))

	require.NoError(t, habit.SetName("Read Fiction"))
	require.NoError(t, repo.Save(ctx, habit))

	found, err := repo.FindByID(ctx, habit.ID())
	require.NoError(t, err)
	assert.Equal(t, "Read Fiction", found.Name())

	habits, err := repo.FindByUserID(ctx, habit.UserID())
	require.NoError(t, err)
	assert.Len(t, habits, 1)
}

func TestSQLiteHabitRepository_FindByNameExcludesArchived(t *testing.T) {
	db := setupDB(t)
	repo := persistence.NewSQLiteHabitRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	habit, err := habitsDomain.NewHabit(userID, "Meditate", "timer", false, habitsDomain.FrequencyDaily)
	require.NoError(t, err)
	habit.Archive()
	require.NoError(t, repo.Save(ctx, habit))

	_, err = repo.FindByName(ctx, userID, "Meditate")
	assert.ErrorIs(t, err, habitsDomain.ErrHabitNotFound)
}

func TestSQLiteHabitRepository_FindByIDNotFound(t *testing.T) {
	db := setupDB(t)
	repo := persistence.NewSQLiteHabitRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, habitsDomain.ErrHabitNotFound)
}

func TestSQLiteHabitRepository_HabitRefs(t *testing.T) {
	db := setupDB(t)
	repo := persistence.NewSQLiteHabitRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	run, err := habitsDomain.NewHabit(userID, "Run", "yes_no", false, habitsDomain.FrequencyDaily)
	require.NoError(t, err)
	smoke, err := habitsDomain.NewHabit(userID, "No Smoking", "quit", true, habitsDomain.FrequencyDaily)
	require.NoError(t, err)
	archived, err := habitsDomain.NewHabit(userID, "Abandoned", "yes_no", false, habitsDomain.FrequencyDaily)
	require.NoError(t, err)
	archived.Archive()

	for _, h := range []*habitsDomain.Habit{run, smoke, archived} {
		require.NoError(t, repo.Save(ctx, h))
	}

	refs, err := repo.HabitRefs(ctx, userID)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "No Smoking", refs[0].Name)
	assert.True(t, refs[0].Quit)
	assert.Equal(t, "Run", refs[1].Name)
	assert.False(t, refs[1].Quit)
}

func TestSQLiteLogRepository_CompletionRoundTrip(t *testing.T) {
	db := setupDB(t)
	repo := persistence.NewSQLiteLogRepository(db)
	ctx := context.Background()
	userID := uuid.New()
	habitID := uuid.New()

	err := repo.RecordCompletion(ctx, userID, reportingDomain.CompletionEntry{
		HabitID:      habitID,
		Day:          day(2026, time.March, 2),
		Status:       reportingDomain.StatusCompleted,
		PointsEarned: 10,
	})
	require.NoError(t, err)

	err = repo.RecordCompletion(ctx, userID, reportingDomain.CompletionEntry{
		HabitID: habitID,
		Day:     day(2026, time.March, 3),
		Status:  reportingDomain.StatusSkipped,
		Reason:  "travel",
	})
	require.NoError(t, err)

	entries, err := repo.CompletionsInRange(ctx, userID, day(2026, time.March, 1), day(2026, time.March, 7))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, reportingDomain.StatusCompleted, entries[0].Status)
	assert.Equal(t, day(2026, time.March, 2), entries[0].Day)
	assert.Equal(t, 10, entries[0].PointsEarned)
	assert.Equal(t, "travel", entries[1].Reason)
}

func TestSQLiteLogRepository_CompletionUpsertReplacesStatus(t *testing.T) {
	db := setupDB(t)
	repo := persistence.NewSQLiteLogRepository(db)
	ctx := context.Background()
	userID := uuid.New()
	habitID := uuid.New()
	d := day(2026, time.March, 2)

	require.NoError(t, repo.RecordCompletion(ctx, userID, reportingDomain.CompletionEntry{
		HabitID: habitID,
		Day:     d,
		Status:  reportingDomain.StatusPending,
	}))
	require.NoError(t, repo.RecordCompletion(ctx, userID, reportingDomain.CompletionEntry{
		HabitID:      habitID,
		Day:          d,
		Status:       reportingDomain.StatusCompleted,
		PointsEarned: 5,
	}))

	entries, err := repo.CompletionsInRange(ctx, userID, d, d)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, reportingDomain.StatusCompleted, entries[0].Status)
	assert.Equal(t, 5, entries[0].PointsEarned)
}

func TestSQLiteLogRepository_TemptationRoundTrip(t *testing.T) {
	db := setupDB(t)
	repo := persistence.NewSQLiteLogRepository(db)
	ctx := context.Background()
	userID := uuid.New()
	habitID := uuid.New()

	err := repo.RecordTemptation(ctx, userID, reportingDomain.TemptationEvent{
		HabitID:   &habitID,
		Day:       day(2026, time.March, 4),
		Trigger:   "stress",
		Intensity: "high",
		Outcome:   reportingDomain.OutcomeResisted,
	})
	require.NoError(t, err)

	err = repo.RecordTemptation(ctx, userID, reportingDomain.TemptationEvent{
		Day:     day(2026, time.March, 5),
		Outcome: reportingDomain.OutcomeSlipped,
	})
	require.NoError(t, err)

	events, err := repo.TemptationsInRange(ctx, userID, day(2026, time.March, 1), day(2026, time.March, 7))
	require.NoError(t, err)
	require.Len(t, events, 2)

	require.NotNil(t, events[0].HabitID)
	assert.Equal(t, habitID, *events[0].HabitID)
	assert.Equal(t, "stress", events[0].Trigger)
	assert.Equal(t, "high", events[0].Intensity)
	assert.Equal(t, reportingDomain.OutcomeResisted, events[0].Outcome)

	assert.Nil(t, events[1].HabitID)
	assert.Empty(t, events[1].Trigger)
	assert.Equal(t, reportingDomain.OutcomeSlipped, events[1].Outcome)
}

func TestSQLiteLogRepository_RangeIsInclusiveAndScopedToUser(t *testing.T) {
	db := setupDB(t)
	repo := persistence.NewSQLiteLogRepository(db)
	ctx := context.Background()
	userID := uuid.New()
	otherUser := uuid.New()
	habitID := uuid.New()

	for _, d := range []time.Time{
		day(2026, time.February, 28),
		day(2026, time.March, 1),
		day(2026, time.March, 7),
		day(2026, time.March, 8),
	} {
		require.NoError(t, repo.RecordCompletion(ctx, userID, reportingDomain.CompletionEntry{
			HabitID: uuid.New(),
			Day:     d,
			Status:  reportingDomain.StatusCompleted,
		}))
	}
	require.NoError(t, repo.RecordCompletion(ctx, otherUser, reportingDomain.CompletionEntry{
		HabitID: habitID,
		Day:     day(2026, time.March, 3),
		Status:  reportingDomain.StatusCompleted,
	}))

	entries, err := repo.CompletionsInRange(ctx, userID, day(2026, time.March, 1), day(2026, time.March, 7))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, day(2026, time.March, 1), entries[0].Day)
	assert.Equal(t, day(2026, time.March, 7), entries[1].Day)
}
