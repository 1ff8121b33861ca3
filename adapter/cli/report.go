package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	reportingQueries "github.com/habitloop/habitloop/internal/reporting/application/queries"
	reportingDomain "github.com/habitloop/habitloop/internal/reporting/domain"
	"github.com/habitloop/habitloop/internal/reporting/infrastructure/cache"
)

var (
	reportFrom    string
	reportTo      string
	reportQuit    bool
	reportHabit   string
	reportSummary bool
)

var reportCmd = &cobra.Command{
	Use:   "report [week|month]",
	Short: "Show the period report",
	Long: `Compute the report for a week, a month, or a custom range, with trends
against the equal-length period before it.

Examples:
  habitloop report
  habitloop report month
  habitloop report --from 2026-03-01 --to 2026-03-14
  habitloop report --quit
  habitloop report --quit --habit "No smoking"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.GetPeriodReportHandler == nil {
			fmt.Println("Reports require a database connection.")
			return nil
		}

		rng, err := resolveRange(app, args)
		if err != nil {
			return err
		}

		// The summary fast path serves headline numbers from the cache.
		if reportSummary && reportHabit == "" && app.ReportCache != nil {
			if cached, ok := app.ReportCache.Get(cmd.Context(), app.CurrentUserID, rng, reportQuit); ok {
				renderCachedSummary(rng, cached)
				return nil
			}
		}

		query := reportingQueries.GetPeriodReportQuery{
			UserID:   app.CurrentUserID,
			Range:    rng,
			QuitMode: reportQuit,
		}
		if reportHabit != "" {
			if !reportQuit {
				return fmt.Errorf("--habit requires --quit")
			}
			habit, err := app.HabitRepo.FindByName(cmd.Context(), app.CurrentUserID, reportHabit)
			if err != nil {
				return fmt.Errorf("failed to find habit: %w", err)
			}
			id := habit.ID()
			query.QuitHabitID = &id
		}

		report, err := app.GetPeriodReportHandler.Handle(cmd.Context(), query)
		if err != nil {
			return err
		}

		if app.ReportCache != nil && query.QuitHabitID == nil {
			app.ReportCache.Set(cmd.Context(), app.CurrentUserID, report)
		}

		renderReport(report)
		return nil
	},
}

func resolveRange(app *App, args []string) (reportingDomain.PeriodRange, error) {
	if reportFrom != "" || reportTo != "" {
		if reportFrom == "" || reportTo == "" {
			return reportingDomain.PeriodRange{}, fmt.Errorf("--from and --to must be used together")
		}
		from, err := time.Parse("2006-01-02", reportFrom)
		if err != nil {
			return reportingDomain.PeriodRange{}, fmt.Errorf("invalid --from date %q: %w", reportFrom, err)
		}
		to, err := time.Parse("2006-01-02", reportTo)
		if err != nil {
			return reportingDomain.PeriodRange{}, fmt.Errorf("invalid --to date %q: %w", reportTo, err)
		}
		return reportingDomain.NewPeriodRange(from, to, reportingDomain.PeriodCustom), nil
	}

	period := app.DefaultPeriod
	if len(args) == 1 {
		period = args[0]
	}
	switch period {
	case "month":
		return reportingDomain.MonthOf(time.Now()), nil
	case "week", "":
		return reportingDomain.WeekOf(time.Now()), nil
	default:
		return reportingDomain.PeriodRange{}, fmt.Errorf("unknown period %q, expected week or month", period)
	}
}

func renderCachedSummary(rng reportingDomain.PeriodRange, s *cache.CachedSummary) {
	fmt.Printf("\n  %s - %s (cached %s)\n",
		rng.Start.Format("Jan 2"), rng.End.Format("Jan 2, 2006"),
		s.CachedAt.Format("15:04"))
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("  Due %d  Completed %d  Skipped %d  Missed %d\n",
		s.TotalDue, s.TotalCompleted, s.TotalSkipped, s.TotalMissed)
	fmt.Printf("  Completion: %s (%s)\n", formatPercent(s.CompletionRate), formatDelta(s.CompletionDelta))
	fmt.Printf("  Net points: %+d\n", s.NetPoints)
	if s.QuitMode {
		fmt.Printf("  Resistance: %s\n", formatPercent(s.ResistanceRate))
		fmt.Printf("  Quit score: %.0f/100\n", s.QuitScore)
	}
	fmt.Println()
}

func renderReport(r *reportingDomain.PeriodReport) {
	title := "HABIT REPORT"
	if r.QuitMode {
		title = "QUIT REPORT"
	}
	fmt.Printf("\n  %s  %s - %s\n", title,
		r.CurrentRange.Start.Format("Jan 2"), r.CurrentRange.End.Format("Jan 2, 2006"))
	fmt.Println(strings.Repeat("=", 60))

	renderTotals(r)
	if r.QuitMode {
		renderQuitSections(r)
	}
	renderHighlights(r)
	if !r.QuitMode {
		renderTypeBreakdown(r)
	}
	fmt.Println()
}

func renderTotals(r *reportingDomain.PeriodReport) {
	fmt.Println("\n  TOTALS")
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("    Due %d  Completed %d  Skipped %d  Missed %d  Pending %d\n",
		r.TotalDue(), r.Completed(), r.Skipped(), r.Missed(), r.Pending())
	fmt.Printf("    Completion: %s (%s vs previous %s)\n",
		formatPercent(r.CompletionRate()),
		formatDelta(r.CompletionDelta()),
		formatPercent(r.PreviousCompletionRate()))
	fmt.Printf("    Points: +%d / -%d (net %+d)\n", r.PointsEarned(), r.PointsLost(), r.NetPoints())
}

func renderQuitSections(r *reportingDomain.PeriodReport) {
	fmt.Println("\n  TEMPTATIONS")
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("    %d temptations: %d resisted, %d slipped\n",
		r.TemptationTotal(), r.TemptationResisted(), r.TemptationSlipped())
	fmt.Printf("    Resistance: %s (%s)\n", formatPercent(r.ResistanceRate()), formatDelta(r.ResistanceRateDelta()))
	fmt.Printf("    Quit score: %.0f/100 (%+.0f)\n", r.QuitPerformanceScore(), r.QuitPerformanceDelta())

	insights := r.TriggerInsights()
	if len(insights) > 0 {
		fmt.Println("\n  TRIGGERS")
		fmt.Println(strings.Repeat("-", 60))
		for _, ins := range insights {
			fmt.Printf("    %-16s %d total, %d slipped (%s slip rate)\n",
				ins.Trigger, ins.Total, ins.Slipped, formatPercent(ins.SlipRate()))
		}
		if risk, ok := r.HighestRiskTrigger(); ok {
			fmt.Printf("    Highest risk: %s\n", risk.Trigger)
		}
		if strong, ok := r.StrongestResistedTrigger(); ok {
			fmt.Printf("    Strongest resisted: %s\n", strong.Trigger)
		}
		fmt.Printf("    Trigger control: %s\n", formatPercent(r.TriggerControlScore()))
	}

	if peak, ok := r.PeakTemptationDay(); ok && peak.TemptationTotal > 0 {
		fmt.Printf("\n    Hardest day: %s (%d temptations, %d slips)\n",
			peak.Date.Format("Monday Jan 2"), peak.TemptationTotal, peak.TemptationSlipped)
	}
}

func renderHighlights(r *reportingDomain.PeriodReport) {
	fmt.Println("\n  HIGHLIGHTS")
	fmt.Println(strings.Repeat("-", 60))

	if best, ok := r.BestDay(); ok && best.Due > 0 {
		fmt.Printf("    Best day: %s (%s completed)\n",
			best.Date.Format("Monday Jan 2"), formatPercent(best.CompletionRate()))
	}
	fmt.Printf("    Distinct habits completed: %d\n", r.UniqueCompletedHabits())
	if blocker, ok := r.TopBlockerReason(); ok {
		fmt.Printf("    Top blocker: %s (%d times)\n", blocker.Label, blocker.Count)
	}
	if ref, count, ok := r.TopSkippedHabit(); ok {
		name := ref.Name
		if name == "" {
			name = ref.ID.String()
		}
		fmt.Printf("    Most skipped: %s (%d skips)\n", name, count)
	}
	if intensity, ok := r.PeakIntensity(); ok {
		fmt.Printf("    Typical temptation intensity: %s\n", intensity.Label)
	}
}

func renderTypeBreakdown(r *reportingDomain.PeriodReport) {
	breakdown := r.TypeBreakdown()
	if len(breakdown) == 0 {
		return
	}

	fmt.Println("\n  BY TYPE")
	fmt.Println(strings.Repeat("-", 60))
	for _, stats := range breakdown {
		fmt.Printf("    %-12s %d habits, %d due days, %s completed\n",
			stats.Type, stats.ActiveHabits, stats.DueDays, formatPercent(stats.CompletionRate()))
	}
}

func formatPercent(rate float64) string {
	return fmt.Sprintf("%.0f%%", rate*100)
}

// formatDelta renders a rate change in percentage points.
func formatDelta(delta float64) string {
	return fmt.Sprintf("%+.0fpp", delta*100)
}

func init() {
	reportCmd.Flags().StringVar(&reportFrom, "from", "", "range start (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "range end (YYYY-MM-DD, inclusive)")
	reportCmd.Flags().BoolVar(&reportQuit, "quit", false, "report on quit habits only")
	reportCmd.Flags().StringVar(&reportHabit, "habit", "", "drill into a single quit habit")
	reportCmd.Flags().BoolVar(&reportSummary, "summary", false, "headline numbers only")

	rootCmd.AddCommand(reportCmd)
}
