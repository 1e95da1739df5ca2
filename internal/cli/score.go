package cli

import (
	"fmt"
	"time"

	"github.com/clogboy/dagplan/internal/scheduler"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Show the priority ranking of pending activities",
	Long: `Score all pending activities with the multi-factor priority model and
print them ranked, highest first, with the factor breakdown and reasoning.

Factors: urgency (30%), importance (25%), effort (20%), context (15%),
collaboration (10%). Activities with equal totals keep their registry order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Activities == nil {
			return fmt.Errorf("activity store not initialized")
		}

		verbose, _ := cmd.Flags().GetBool("verbose")

		pending, err := Activities.Pending()
		if err != nil {
			return fmt.Errorf("loading pending activities: %w", err)
		}
		if len(pending) == 0 {
			fmt.Println("No pending activities.")
			return nil
		}

		ranked := scheduler.Rank(pending, time.Now())

		fmt.Printf("  %-4s %-10s %-35s %-6s %s\n", "#", "ID", "TITLE", "SCORE", "SLOT")
		for i, sa := range ranked {
			fmt.Printf("  %-4d %-10s %-35s %.2f   %s\n",
				i+1, sa.Activity.ID, truncateTitle(sa.Activity.Title, 35), sa.Score.Total, sa.Score.SuggestedSlot)
			if verbose {
				f := sa.Score.Factors
				fmt.Printf("       urgency %.2f | importance %.2f | effort %.2f | context %.2f | collaboration %.2f\n",
					f.Urgency, f.Importance, f.Effort, f.Context, f.Collaboration)
				fmt.Printf("       %s\n", sa.Score.Reasoning)
			}
		}

		return nil
	},
}

// truncateTitle shortens a title to maxLen characters for table display.
func truncateTitle(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func init() {
	scoreCmd.Flags().BoolP("verbose", "v", false, "show factor breakdown and reasoning")
	rootCmd.AddCommand(scoreCmd)
}
