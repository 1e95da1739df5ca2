package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/clogboy/dagplan/internal/flow"
	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in flow personality presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		presets := flow.Presets()

		fmt.Printf("  %-14s %-14s %-12s %-12s %-6s %s\n",
			"NAME", "PERSONALITY", "HOURS", "PEAK", "FOCUS", "PREFERRED")
		for _, p := range presets {
			fmt.Printf("  %-14s %-14s %-12s %-12s %4dm  %s\n",
				p.Name, p.Personality,
				p.WorkingHours.Start+"-"+p.WorkingHours.End,
				p.PeakHours.Start+"-"+p.PeakHours.End,
				p.FocusBlockMinutes,
				strings.Join(p.PreferredTaskTypes, ", "))
		}

		return nil
	},
}

// pickPreset shows an interactive list of presets and returns the selected
// name. Returns an error if the user cancels.
func pickPreset() (string, error) {
	presets := flow.Presets()

	fmt.Println("\nAvailable presets:")
	fmt.Println()
	for i, p := range presets {
		fmt.Printf("  %-4d %-14s %s (energy %.2f/%.2f/%.2f)\n",
			i+1, p.Name, p.Personality,
			p.Energy.Morning, p.Energy.Afternoon, p.Energy.Evening)
	}
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("Select preset [1-%d] (or 'q' to cancel): ", len(presets))
		input, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "q" || input == "Q" {
			return "", fmt.Errorf("cancelled")
		}

		num, err := strconv.Atoi(input)
		if err != nil || num < 1 || num > len(presets) {
			fmt.Printf("  Invalid selection. Enter a number between 1 and %d.\n", len(presets))
			continue
		}

		return presets[num-1].Name, nil
	}
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
