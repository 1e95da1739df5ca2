package cli

import (
	"fmt"
	"time"

	"github.com/clogboy/dagplan/pkg/models"
	"github.com/spf13/cobra"
)

var blockCmd = &cobra.Command{
	Use:   "block",
	Short: "Manage committed calendar blocks",
	Long: `Manage the committed blocks the scheduler plans around.

Committed blocks represent calendar events that already occupy time on a
day: meetings, appointments, anything the planner must not overwrite.`,
}

var blockAddCmd = &cobra.Command{
	Use:   "add <start HH:MM> <end HH:MM>",
	Short: "Record a committed block on a day",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Schedules == nil {
			return fmt.Errorf("schedule store not initialized")
		}

		dateFlag, _ := cmd.Flags().GetString("date")
		day, err := parseDayFlag(dateFlag)
		if err != nil {
			return err
		}

		start, err := parseClockOnDay(day, args[0])
		if err != nil {
			return err
		}
		end, err := parseClockOnDay(day, args[1])
		if err != nil {
			return err
		}
		if !start.Before(end) {
			return fmt.Errorf("block start %s must be before end %s", args[0], args[1])
		}

		block := models.CommittedBlock{Start: start, End: end}
		if err := Schedules.AddCommitted(day, block); err != nil {
			return fmt.Errorf("saving committed block: %w", err)
		}

		fmt.Printf("Committed %s-%s on %s\n",
			start.Format("15:04"), end.Format("15:04"), day.Format("2006-01-02"))

		return nil
	},
}

var blockListCmd = &cobra.Command{
	Use:   "list",
	Short: "List committed blocks on a day",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Schedules == nil {
			return fmt.Errorf("schedule store not initialized")
		}

		dateFlag, _ := cmd.Flags().GetString("date")
		day, err := parseDayFlag(dateFlag)
		if err != nil {
			return err
		}

		committed, err := Schedules.CommittedFor(day)
		if err != nil {
			return fmt.Errorf("loading committed blocks: %w", err)
		}

		if len(committed) == 0 {
			fmt.Printf("No committed blocks on %s.\n", day.Format("2006-01-02"))
			return nil
		}

		fmt.Printf("Committed blocks on %s:\n", day.Format("2006-01-02"))
		for _, b := range committed {
			fmt.Printf("  %s-%s\n", b.Start.Format("15:04"), b.End.Format("15:04"))
		}

		return nil
	},
}

// parseClockOnDay combines a day with an HH:MM clock value.
func parseClockOnDay(day time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("time %q is not in HH:MM form", clock)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}

func init() {
	blockAddCmd.Flags().String("date", "", "day of the block (YYYY-MM-DD, default today)")
	blockListCmd.Flags().String("date", "", "day to list (YYYY-MM-DD, default today)")
	blockCmd.AddCommand(blockAddCmd)
	blockCmd.AddCommand(blockListCmd)
	rootCmd.AddCommand(blockCmd)
}
