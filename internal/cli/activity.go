package cli

import (
	"fmt"
	"time"

	"github.com/clogboy/dagplan/internal/observability"
	"github.com/clogboy/dagplan/pkg/models"
	"github.com/spf13/cobra"
)

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Manage activities (add, list, done)",
	Long: `Manage the activity registry that feeds the scheduler.

Activities are the pending work items competing for time blocks. Completed
activities no longer take part in planning.`,
}

var activityAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Register a new activity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Activities == nil {
			return fmt.Errorf("activity store not initialized")
		}

		tierFlag, _ := cmd.Flags().GetString("tier")
		dueFlag, _ := cmd.Flags().GetString("due")
		minutesFlag, _ := cmd.Flags().GetInt("minutes")
		contactsFlag, _ := cmd.Flags().GetStringSlice("contacts")
		descFlag, _ := cmd.Flags().GetString("description")

		if minutesFlag < 0 {
			return fmt.Errorf("minutes must not be negative, got %d", minutesFlag)
		}

		a := models.Activity{
			Title:            args[0],
			Description:      descFlag,
			Tier:             models.Tier(tierFlag),
			EstimatedMinutes: minutesFlag,
			Contacts:         contactsFlag,
		}
		if dueFlag != "" {
			due, err := time.ParseInLocation("2006-01-02", dueFlag, time.Local)
			if err != nil {
				return fmt.Errorf("due date %q is not in YYYY-MM-DD form", dueFlag)
			}
			a.DueDate = &due
		}

		created, err := Activities.Add(a)
		if err != nil {
			return fmt.Errorf("adding activity: %w", err)
		}
		if err := Activities.Save(); err != nil {
			return fmt.Errorf("saving activity registry: %w", err)
		}

		fmt.Printf("Added %s: %s (%s)\n", created.ID, created.Title, created.Tier)

		if EventLog != nil {
			_ = EventLog.Write(observability.Event{
				Type:    observability.EventActivityCreated,
				Message: fmt.Sprintf("activity %s created", created.ID),
				Data:    map[string]any{"id": created.ID, "tier": string(created.Tier)},
			})
		}

		return nil
	},
}

var activityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List activities",
	RunE: func(cmd *cobra.Command, args []string) error {
		if Activities == nil {
			return fmt.Errorf("activity store not initialized")
		}

		all, _ := cmd.Flags().GetBool("all")

		var list []models.Activity
		var err error
		if all {
			list, err = Activities.GetAll()
		} else {
			list, err = Activities.Pending()
		}
		if err != nil {
			return fmt.Errorf("listing activities: %w", err)
		}

		if len(list) == 0 {
			fmt.Println("No activities.")
			return nil
		}

		fmt.Printf("  %-10s %-35s %-8s %-10s %-12s %s\n", "ID", "TITLE", "TIER", "STATUS", "DUE", "EST")
		for _, a := range list {
			due := "-"
			if a.DueDate != nil {
				due = a.DueDate.Format("2006-01-02")
			}
			est := "-"
			if a.EstimatedMinutes > 0 {
				est = fmt.Sprintf("%dm", a.EstimatedMinutes)
			}
			fmt.Printf("  %-10s %-35s %-8s %-10s %-12s %s\n",
				a.ID, truncateTitle(a.Title, 35), a.Tier, a.Status, due, est)
		}

		return nil
	},
}

var activityDoneCmd = &cobra.Command{
	Use:   "done <activity-id>",
	Short: "Mark an activity as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Activities == nil {
			return fmt.Errorf("activity store not initialized")
		}

		id := args[0]
		if err := Activities.Complete(id); err != nil {
			return fmt.Errorf("completing activity: %w", err)
		}
		if err := Activities.Save(); err != nil {
			return fmt.Errorf("saving activity registry: %w", err)
		}

		fmt.Printf("Completed %s\n", id)

		if EventLog != nil {
			_ = EventLog.Write(observability.Event{
				Type:    observability.EventActivityCompleted,
				Message: fmt.Sprintf("activity %s completed", id),
				Data:    map[string]any{"id": id},
			})
		}

		return nil
	},
}

func init() {
	activityAddCmd.Flags().String("tier", "normal", "priority tier (urgent, high, normal, low)")
	activityAddCmd.Flags().String("due", "", "due date (YYYY-MM-DD)")
	activityAddCmd.Flags().Int("minutes", 0, "estimated duration in minutes")
	activityAddCmd.Flags().StringSlice("contacts", nil, "collaborator contact IDs")
	activityAddCmd.Flags().String("description", "", "longer description")
	activityListCmd.Flags().Bool("all", false, "include completed activities")

	activityCmd.AddCommand(activityAddCmd)
	activityCmd.AddCommand(activityListCmd)
	activityCmd.AddCommand(activityDoneCmd)
	rootCmd.AddCommand(activityCmd)
}
