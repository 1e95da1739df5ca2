package cli

import (
	"fmt"

	"github.com/clogboy/dagplan/internal/scheduler"
	"github.com/spf13/cobra"
)

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Show the free windows for a day",
	Long: `Compute and print the free windows for a day around its committed
blocks, without scheduling anything. Windows shorter than the configured
minimum block size are dropped.`,
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

		windows, err := scheduler.FreeWindows(day, committed, Config.Options)
		if err != nil {
			return fmt.Errorf("computing free windows: %w", err)
		}

		fmt.Printf("Free windows on %s (%d committed blocks):\n\n", day.Format("2006-01-02"), len(committed))
		if len(windows) == 0 {
			fmt.Println("  (none)")
			return nil
		}
		total := 0
		for _, w := range windows {
			fmt.Printf("  %s-%s  %4d min\n", w.Start.Format("15:04"), w.End.Format("15:04"), w.Minutes)
			total += w.Minutes
		}
		fmt.Printf("\n  %d windows, %d minutes free in total\n", len(windows), total)

		return nil
	},
}

func init() {
	slotsCmd.Flags().String("date", "", "day to inspect (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(slotsCmd)
}
