package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	habitsDomain "github.com/habitloop/habitloop/internal/habits/domain"
)

var habitCmd = &cobra.Command{
	Use:   "habit",
	Short: "Manage habits",
	Long:  `Create, list, and archive the habits you track.`,
}

var (
	habitKind        string
	habitQuit        bool
	habitFrequency   string
	habitTimes       int
	habitPoints      int
	habitSlipPenalty int
	habitDescription string
)

var habitAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new habit",
	Long: `Add a habit to track. Use --quit for a habit you want to stop.

Tracking kinds:
  yes_no     - Did it or didn't
  numeric    - Count toward a target
  timer      - Time spent
  checklist  - Sub-items to tick off
  quit       - Avoidance habit (implied by --quit)

Examples:
  habitloop habit add "Morning run" --kind yes_no -f weekdays --points 10
  habitloop habit add "No smoking" --quit --penalty 20
  habitloop habit add "Read" --kind timer -f custom --times 3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.HabitRepo == nil {
			fmt.Println("Habit creation requires a database connection.")
			return nil
		}

		name := args[0]
		kind := habitKind
		if habitQuit && kind == "yes_no" {
			kind = "quit"
		}

		habit, err := habitsDomain.NewHabit(app.CurrentUserID, name, kind, habitQuit, habitsDomain.Frequency(habitFrequency))
		if err != nil {
			return fmt.Errorf("failed to create habit: %w", err)
		}
		if habitDescription != "" {
			if err := habit.SetDescription(habitDescription); err != nil {
				return err
			}
		}
		if habitFrequency == string(habitsDomain.FrequencyCustom) && habitTimes > 0 {
			if err := habit.SetFrequency(habitsDomain.FrequencyCustom, habitTimes); err != nil {
				return err
			}
		}
		if err := habit.SetPoints(habitPoints, habitSlipPenalty); err != nil {
			return err
		}

		if err := app.HabitRepo.Save(cmd.Context(), habit); err != nil {
			return fmt.Errorf("failed to save habit: %w", err)
		}

		fmt.Printf("Added habit: %s\n", name)
		fmt.Printf("  ID: %s\n", habit.ID())
		fmt.Printf("  Kind: %s\n", kind)
		fmt.Printf("  Frequency: %s\n", habitFrequency)
		if habitQuit {
			fmt.Printf("  Quit habit, slip penalty: %d points\n", habitSlipPenalty)
		} else if habitPoints > 0 {
			fmt.Printf("  Points per completion: %d\n", habitPoints)
		}
		return nil
	},
}

var habitListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your habits",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.HabitRepo == nil {
			fmt.Println("Habit listing requires a database connection.")
			return nil
		}

		habits, err := app.HabitRepo.FindByUserID(cmd.Context(), app.CurrentUserID)
		if err != nil {
			return fmt.Errorf("failed to list habits: %w", err)
		}
		if len(habits) == 0 {
			fmt.Println("No habits yet. Add one with 'habitloop habit add'.")
			return nil
		}

		for _, h := range habits {
			marker := "+"
			if h.IsQuit() {
				marker = "-"
			}
			line := fmt.Sprintf("  [%s] %s (%s, %s)", marker, h.Name(), h.TrackingKind(), h.Frequency())
			if h.IsArchived() {
				line += " [archived]"
			}
			fmt.Println(line)
		}
		return nil
	},
}

var habitArchiveCmd = &cobra.Command{
	Use:   "archive [name]",
	Short: "Archive a habit",
	Long:  `Archive a habit so it no longer appears in reports. The log history is kept.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.HabitRepo == nil {
			fmt.Println("Habit archiving requires a database connection.")
			return nil
		}

		habit, err := app.HabitRepo.FindByName(cmd.Context(), app.CurrentUserID, args[0])
		if err != nil {
			return fmt.Errorf("failed to find habit: %w", err)
		}
		habit.Archive()
		if err := app.HabitRepo.Save(cmd.Context(), habit); err != nil {
			return fmt.Errorf("failed to archive habit: %w", err)
		}
		if app.ReportCache != nil {
			app.ReportCache.Invalidate(cmd.Context(), app.CurrentUserID)
		}

		fmt.Printf("Archived habit: %s\n", habit.Name())
		return nil
	},
}

func init() {
	habitAddCmd.Flags().StringVar(&habitKind, "kind", "yes_no", "tracking kind (yes_no, numeric, timer, checklist, quit)")
	habitAddCmd.Flags().BoolVar(&habitQuit, "quit", false, "track this as a habit to quit")
	habitAddCmd.Flags().StringVarP(&habitFrequency, "frequency", "f", "daily", "frequency (daily, weekdays, weekends, weekly, custom)")
	habitAddCmd.Flags().IntVar(&habitTimes, "times", 0, "times per week (for custom frequency)")
	habitAddCmd.Flags().IntVar(&habitPoints, "points", 0, "points earned per completion")
	habitAddCmd.Flags().IntVar(&habitSlipPenalty, "penalty", 0, "points lost per slip or miss")
	habitAddCmd.Flags().StringVar(&habitDescription, "desc", "", "habit description")

	habitCmd.AddCommand(habitAddCmd)
	habitCmd.AddCommand(habitListCmd)
	habitCmd.AddCommand(habitArchiveCmd)
	rootCmd.AddCommand(habitCmd)
}
