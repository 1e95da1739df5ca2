package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/clogboy/dagplan/internal/flow"
	"github.com/clogboy/dagplan/internal/observability"
	"github.com/clogboy/dagplan/pkg/models"
	"github.com/spf13/cobra"
)

var flowCmd = &cobra.Command{
	Use:   "flow",
	Short: "Show the current flow protection advice",
	Long: `Show the flow protection advice for the current moment: whether focus
mode should be active, which task categories fit right now, and whether
interruptions are currently acceptable.

The advice is derived from a personality preset. Use --preset to pick one,
--pick to choose interactively, or --low-stimulus to apply the low-stimulus
overrides (single task switch, short focus blocks, interruptions off).

Examples:
  dagplan flow
  dagplan flow --preset early-bird
  dagplan flow --preset deep-diver --at 09:30`,
	RunE: func(cmd *cobra.Command, args []string) error {
		presetFlag, _ := cmd.Flags().GetString("preset")
		atFlag, _ := cmd.Flags().GetString("at")
		lowStimulus, _ := cmd.Flags().GetBool("low-stimulus")
		pick, _ := cmd.Flags().GetBool("pick")

		name := presetFlag
		if name == "" && Config != nil {
			name = Config.DefaultPreset
		}
		if pick {
			picked, err := pickPreset()
			if err != nil {
				return err
			}
			name = picked
		}

		strategy, err := flow.PresetByName(name)
		if err != nil {
			return err
		}
		if lowStimulus {
			strategy = flow.LowStimulusPreset(strategy)
		}

		now := time.Now()
		if atFlag != "" {
			clock, err := time.Parse("15:04", atFlag)
			if err != nil {
				return fmt.Errorf("time %q is not in HH:MM form", atFlag)
			}
			now = time.Date(now.Year(), now.Month(), now.Day(), clock.Hour(), clock.Minute(), 0, 0, now.Location())
		}

		rec := flow.Recommend(strategy, now)
		printRecommendation(strategy, rec, now)

		if EventLog != nil {
			_ = EventLog.Write(observability.Event{
				Type:    observability.EventFlowChecked,
				Message: fmt.Sprintf("flow check for %s: %s", strategy.Name, rec.SlotType),
				Data: map[string]any{
					"preset":       strategy.Name,
					"slot_type":    string(rec.SlotType),
					"should_focus": rec.ShouldFocus,
				},
			})
		}

		return nil
	},
}

func printRecommendation(strategy models.FlowStrategy, rec models.FlowRecommendation, now time.Time) {
	focus := "off"
	if rec.ShouldFocus {
		focus = "ON"
	}
	interruptions := "blocked"
	if rec.AllowInterruptions {
		interruptions = "allowed"
	}

	fmt.Printf("Flow advice for %s (%s) at %s:\n\n", strategy.Name, strategy.Personality, now.Format("15:04"))
	fmt.Printf("  Slot type:      %s\n", rec.SlotType)
	fmt.Printf("  Energy level:   %.2f\n", rec.EnergyLevel)
	fmt.Printf("  Focus mode:     %s\n", focus)
	fmt.Printf("  Interruptions:  %s\n", interruptions)
	fmt.Printf("  Suggested work: %s\n", strings.Join(rec.SuggestedTaskTypes, ", "))
	fmt.Printf("\n  %s\n", rec.Recommendation)
}

func init() {
	flowCmd.Flags().String("preset", "", "flow preset to use (default from config)")
	flowCmd.Flags().String("at", "", "evaluate at a specific clock time (HH:MM)")
	flowCmd.Flags().Bool("low-stimulus", false, "apply the low-stimulus overrides")
	flowCmd.Flags().Bool("pick", false, "choose a preset interactively")
	rootCmd.AddCommand(flowCmd)
}
