package cli

import (
	"fmt"
	"time"

	"github.com/clogboy/dagplan/internal/observability"
	"github.com/clogboy/dagplan/pkg/models"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a time-blocked schedule for one day",
	Long: `Generate a time-blocked schedule for one day.

Pending activities are scored and ranked, free windows are computed around
any committed blocks already on the day, and the highest-priority work is
placed first. The resulting blocks are persisted so a later run on the same
day treats them as committed.

Examples:
  dagplan plan
  dagplan plan --date 2026-09-01 --max-tasks 4
  dagplan plan --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Planner == nil || Activities == nil || Schedules == nil {
			return fmt.Errorf("planner not initialized")
		}

		dateFlag, _ := cmd.Flags().GetString("date")
		maxTasks, _ := cmd.Flags().GetInt("max-tasks")
		noFocus, _ := cmd.Flags().GetBool("no-focus")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		day, err := parseDayFlag(dateFlag)
		if err != nil {
			return err
		}

		opts := Config.Options
		if maxTasks > 0 {
			opts.MaxTasksPerDay = maxTasks
		}
		if noFocus {
			opts.PreferFocus = false
		}

		pending, err := Activities.Pending()
		if err != nil {
			return fmt.Errorf("loading pending activities: %w", err)
		}
		if len(pending) == 0 {
			fmt.Println("No pending activities to plan.")
			return nil
		}

		committed, err := Schedules.CommittedFor(day)
		if err != nil {
			return fmt.Errorf("loading committed blocks: %w", err)
		}

		result, err := Planner.PlanDay(day, pending, committed, opts, time.Now())
		if err != nil {
			return fmt.Errorf("planning %s: %w", day.Format("2006-01-02"), err)
		}

		printPlan(day, result)

		if dryRun {
			fmt.Println("\nDry run: nothing was persisted.")
			return nil
		}

		if err := Schedules.SaveBlocks(day, result.Blocks); err != nil {
			return fmt.Errorf("persisting plan: %w", err)
		}
		logPlanEvents(day, result)

		return nil
	},
}

// printPlan renders the schedule, conflicts, and suggestions.
func printPlan(day time.Time, result *models.ScheduleResult) {
	fmt.Printf("Schedule for %s:\n\n", day.Format("Monday 2006-01-02"))

	if len(result.Blocks) == 0 {
		fmt.Println("  (no blocks placed)")
	}
	for _, b := range result.Blocks {
		marker := " "
		if b.Kind == models.BlockBreak {
			marker = "~"
		}
		fmt.Printf("  %s %s-%s  %-35s %s\n",
			marker, b.Start.Format("15:04"), b.End.Format("15:04"), b.Title, b.Color)
	}

	if len(result.Unscheduled) > 0 {
		fmt.Println("\nUnscheduled:")
		for _, a := range result.Unscheduled {
			fmt.Printf("  - %s  %s\n", a.ID, a.Title)
		}
	}
	if len(result.Conflicts) > 0 {
		fmt.Println("\nConflicts:")
		for _, c := range result.Conflicts {
			fmt.Printf("  ! %s\n", c)
		}
	}
	if len(result.Suggestions) > 0 {
		fmt.Println("\nSuggestions:")
		for _, s := range result.Suggestions {
			fmt.Printf("  * %s\n", s)
		}
	}
}

// logPlanEvents records the planning outcome in the event log. Logging is
// best-effort: a missing event log never fails the command.
func logPlanEvents(day time.Time, result *models.ScheduleResult) {
	if EventLog == nil {
		return
	}

	tasks, breaks := 0, 0
	for _, b := range result.Blocks {
		if b.Kind == models.BlockTask {
			tasks++
		} else {
			breaks++
		}
	}

	_ = EventLog.Write(observability.Event{
		Type:    observability.EventPlanGenerated,
		Message: fmt.Sprintf("planned %d task blocks", tasks),
		Day:     day.Format("2006-01-02"),
		Data: map[string]any{
			"blocks":      tasks,
			"breaks":      breaks,
			"unscheduled": len(result.Unscheduled),
		},
	})
	for _, c := range result.Conflicts {
		_ = EventLog.Write(observability.Event{
			Level:   "WARN",
			Type:    observability.EventPlanConflict,
			Message: c,
			Day:     day.Format("2006-01-02"),
		})
	}
}

// parseDayFlag parses a --date value in YYYY-MM-DD form, defaulting to
// today.
func parseDayFlag(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	day, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q is not in YYYY-MM-DD form", s)
	}
	return day, nil
}

func init() {
	planCmd.Flags().String("date", "", "day to plan (YYYY-MM-DD, default today)")
	planCmd.Flags().Int("max-tasks", 0, "override the daily task cap")
	planCmd.Flags().Bool("no-focus", false, "skip recovery breaks after task blocks")
	planCmd.Flags().Bool("dry-run", false, "show the plan without persisting it")
	rootCmd.AddCommand(planCmd)
}
