package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	reportingDomain "github.com/habitloop/habitloop/internal/reporting/domain"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log habit outcomes",
	Long:  `Record how a habit went on a given day. Logging a day twice replaces the earlier entry.`,
}

var (
	logDate   string
	logReason string
)

var logDoneCmd = &cobra.Command{
	Use:   "done [habit]",
	Short: "Mark a habit completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return recordCompletion(cmd, args[0], reportingDomain.StatusCompleted)
	},
}

var logSkipCmd = &cobra.Command{
	Use:   "skip [habit]",
	Short: "Mark a habit deliberately skipped",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return recordCompletion(cmd, args[0], reportingDomain.StatusSkipped)
	},
}

var logMissCmd = &cobra.Command{
	Use:   "miss [habit]",
	Short: "Mark a habit missed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return recordCompletion(cmd, args[0], reportingDomain.StatusMissed)
	},
}

func recordCompletion(cmd *cobra.Command, habitName string, status reportingDomain.CompletionStatus) error {
	app := GetApp()
	if app == nil || app.HabitRepo == nil || app.LogRepo == nil {
		fmt.Println("Logging requires a database connection.")
		return nil
	}

	habit, err := app.HabitRepo.FindByName(cmd.Context(), app.CurrentUserID, habitName)
	if err != nil {
		return fmt.Errorf("failed to find habit: %w", err)
	}

	day, err := parseLogDate(logDate)
	if err != nil {
		return err
	}

	entry := reportingDomain.CompletionEntry{
		HabitID: habit.ID(),
		Day:     day,
		Status:  status,
		Reason:  logReason,
	}
	switch status {
	case reportingDomain.StatusCompleted:
		entry.PointsEarned = habit.Points()
	case reportingDomain.StatusMissed:
		entry.PointsLost = habit.SlipPenalty()
	}

	if err := app.LogRepo.RecordCompletion(cmd.Context(), app.CurrentUserID, entry); err != nil {
		return fmt.Errorf("failed to record log entry: %w", err)
	}
	if app.ReportCache != nil {
		app.ReportCache.Invalidate(cmd.Context(), app.CurrentUserID)
	}

	fmt.Printf("Logged %s: %s on %s\n", status, habit.Name(), day.Format("2006-01-02"))
	if entry.PointsEarned > 0 {
		fmt.Printf("  +%d points\n", entry.PointsEarned)
	}
	if entry.PointsLost > 0 {
		fmt.Printf("  -%d points\n", entry.PointsLost)
	}
	return nil
}

// parseLogDate accepts an empty string for today or a YYYY-MM-DD date.
func parseLogDate(s string) (time.Time, error) {
	if s == "" {
		return reportingDomain.DayOf(time.Now()), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return reportingDomain.DayOf(t), nil
}

func init() {
	logCmd.PersistentFlags().StringVar(&logDate, "date", "", "day to log (YYYY-MM-DD, defaults to today)")
	logCmd.PersistentFlags().StringVar(&logReason, "reason", "", "why the habit was skipped or missed")

	logCmd.AddCommand(logDoneCmd)
	logCmd.AddCommand(logSkipCmd)
	logCmd.AddCommand(logMissCmd)
	rootCmd.AddCommand(logCmd)
}
