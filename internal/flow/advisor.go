// Package flow implements the flow protection advisor: given a personality
// strategy and the current instant, it recommends whether focus mode should
// be active, which task categories fit right now, and whether interruptions
// are currently acceptable. Like the scheduler, everything here is pure
// computation over its inputs.
package flow

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/clogboy/dagplan/pkg/models"
)

// Recommend derives the flow policy for one instant from a strategy.
func Recommend(strategy models.FlowStrategy, now time.Time) models.FlowRecommendation {
	energy := energyAt(strategy.Energy, now.Hour())
	peak := inRange(now, strategy.PeakHours)
	quiet := inRange(now, strategy.Notifications.QuietHours)

	slotType := models.SlotTypeLowEnergy
	switch {
	case peak && energy > 0.8:
		slotType = models.SlotTypePeak
	case energy > 0.6:
		slotType = models.SlotTypeProductive
	}

	shouldFocus := peak || energy > 0.7
	allowInterruptions := !quiet && (strategy.Notifications.AllowInterruptions || !shouldFocus)

	// The strategy's own preferred list is only the fallback default; the
	// slot-type mapping takes precedence.
	suggested := append([]string(nil), strategy.PreferredTaskTypes...)
	recommendation := "Follow your configured task preferences."
	switch slotType {
	case models.SlotTypePeak:
		suggested = []string{"deep-work", "complex-analysis", "creative"}
		recommendation = "Peak hours: guard this time for demanding solo work."
	case models.SlotTypeProductive:
		suggested = []string{"meetings", "collaboration", "communication"}
		recommendation = "Good energy: a solid moment for collaboration and communication."
	case models.SlotTypeLowEnergy:
		suggested = []string{"admin", "email", "routine"}
		recommendation = "Energy is low: stick to light administrative work."
	}

	return models.FlowRecommendation{
		ShouldFocus:        shouldFocus,
		SuggestedTaskTypes: suggested,
		AllowInterruptions: allowInterruptions,
		EnergyLevel:        energy,
		SlotType:           slotType,
		Recommendation:     recommendation,
	}
}

// energyAt selects the energy level for the given hour from the three-bucket
// pattern: [6,12) morning, [12,18) afternoon, [18,22) evening. Outside those
// buckets the level is a fixed 0.5.
func energyAt(pattern models.EnergyPattern, hour int) float64 {
	switch {
	case hour >= 6 && hour < 12:
		return pattern.Morning
	case hour >= 12 && hour < 18:
		return pattern.Afternoon
	case hour >= 18 && hour < 22:
		return pattern.Evening
	default:
		return 0.5
	}
}

// inRange reports whether the instant's clock time falls inside the range.
// A range whose start is later than its end wraps around midnight: the
// instant matches when it is at or after the start, or at or before the end.
// Malformed or empty ranges never match.
func inRange(now time.Time, r models.TimeRange) bool {
	start, err := clockMinutes(r.Start)
	if err != nil {
		return false
	}
	end, err := clockMinutes(r.End)
	if err != nil {
		return false
	}
	cur := now.Hour()*60 + now.Minute()

	if start > end {
		return cur >= start || cur <= end
	}
	return cur >= start && cur <= end
}

// clockMinutes parses "HH:MM" into minutes since midnight.
func clockMinutes(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("clock time %q is not in HH:MM form", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("clock time %q has an invalid hour", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock time %q has invalid minutes", s)
	}
	return h*60 + m, nil
}

// LowStimulusPreset returns a copy of the strategy with the low-stimulus
// overrides applied: a single task switch, short focus blocks with short
// breaks, routine low-cognitive work, and interruptions suppressed for the
// whole working day. The bundle is static configuration, not a function of
// the current time.
func LowStimulusPreset(strategy models.FlowStrategy) models.FlowStrategy {
	out := strategy
	out.MaxTaskSwitches = 1
	out.FocusBlockMinutes = 45
	out.BreakMinutes = 10
	out.PreferredTaskTypes = []string{"routine", "low-cognitive"}
	out.Notifications = models.NotificationPolicy{
		AllowInterruptions: false,
		UrgentOnly:         true,
		QuietHours:         strategy.WorkingHours,
	}
	return out
}
