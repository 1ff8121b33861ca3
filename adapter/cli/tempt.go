package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	reportingDomain "github.com/habitloop/habitloop/internal/reporting/domain"
)

var (
	temptTrigger   string
	temptIntensity string
	temptSlipped   bool
	temptHabit     string
	temptDate      string
)

var temptCmd = &cobra.Command{
	Use:   "tempt",
	Short: "Record a temptation",
	Long: `Record a moment of temptation and whether you resisted or slipped.
Attributing it to a quit habit with --habit feeds the per-habit drill-down.

Examples:
  habitloop tempt --trigger stress --intensity high
  habitloop tempt --trigger boredom --slipped --habit "No smoking"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.LogRepo == nil {
			fmt.Println("Temptation logging requires a database connection.")
			return nil
		}

		day, err := parseLogDate(temptDate)
		if err != nil {
			return err
		}

		event := reportingDomain.TemptationEvent{
			Day:       day,
			Trigger:   temptTrigger,
			Intensity: temptIntensity,
			Outcome:   reportingDomain.OutcomeResisted,
		}
		if temptSlipped {
			event.Outcome = reportingDomain.OutcomeSlipped
		}

		if temptHabit != "" {
			habit, err := app.HabitRepo.FindByName(cmd.Context(), app.CurrentUserID, temptHabit)
			if err != nil {
				return fmt.Errorf("failed to find habit: %w", err)
			}
			id := habit.ID()
			event.HabitID = &id

			// A slip on a quit habit also costs its penalty points.
			if temptSlipped && habit.SlipPenalty() > 0 {
				entry := reportingDomain.CompletionEntry{
					HabitID:    habit.ID(),
					Day:        day,
					Status:     reportingDomain.StatusMissed,
					Reason:     temptTrigger,
					PointsLost: habit.SlipPenalty(),
				}
				if err := app.LogRepo.RecordCompletion(cmd.Context(), app.CurrentUserID, entry); err != nil {
					return fmt.Errorf("failed to record slip: %w", err)
				}
			}
		}

		if err := app.LogRepo.RecordTemptation(cmd.Context(), app.CurrentUserID, event); err != nil {
			return fmt.Errorf("failed to record temptation: %w", err)
		}
		if app.ReportCache != nil {
			app.ReportCache.Invalidate(cmd.Context(), app.CurrentUserID)
		}

		if temptSlipped {
			fmt.Println("Slip recorded. Tomorrow is a new day.")
		} else {
			fmt.Println("Resisted. Nice.")
		}
		return nil
	},
}

func init() {
	temptCmd.Flags().StringVar(&temptTrigger, "trigger", "", "what triggered the temptation (stress, boredom, social, ...)")
	temptCmd.Flags().StringVar(&temptIntensity, "intensity", "", "how strong it was (low, medium, high)")
	temptCmd.Flags().BoolVar(&temptSlipped, "slipped", false, "record a slip instead of a resist")
	temptCmd.Flags().StringVar(&temptHabit, "habit", "", "quit habit this temptation belongs to")
	temptCmd.Flags().StringVar(&temptDate, "date", "", "day of the temptation (YYYY-MM-DD, defaults to today)")

	rootCmd.AddCommand(temptCmd)
}
