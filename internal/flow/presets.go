package flow

import (
	"fmt"
	"strings"

	"github.com/clogboy/dagplan/pkg/models"
)

// presetCatalog is the built-in table of personality strategies. It is
// static data: the advisor itself accepts any conforming strategy, so
// growing this catalog never touches advisor logic.
var presetCatalog = []models.FlowStrategy{
	{
		Name:               "early-bird",
		Personality:        "Early bird",
		WorkingHours:       models.TimeRange{Start: "07:00", End: "15:30"},
		PeakHours:          models.TimeRange{Start: "07:00", End: "11:00"},
		MaxTaskSwitches:    4,
		FocusBlockMinutes:  90,
		BreakMinutes:       15,
		PreferredTaskTypes: []string{"deep-work", "planning", "writing"},
		Energy:             models.EnergyPattern{Morning: 0.95, Afternoon: 0.6, Evening: 0.3},
		Notifications: models.NotificationPolicy{
			AllowInterruptions: false,
			UrgentOnly:         true,
			QuietHours:         models.TimeRange{Start: "07:00", End: "10:00"},
		},
	},
	{
		Name:               "night-owl",
		Personality:        "Night owl",
		WorkingHours:       models.TimeRange{Start: "11:00", End: "19:30"},
		PeakHours:          models.TimeRange{Start: "16:00", End: "21:00"},
		MaxTaskSwitches:    4,
		FocusBlockMinutes:  90,
		BreakMinutes:       15,
		PreferredTaskTypes: []string{"deep-work", "creative", "analysis"},
		Energy:             models.EnergyPattern{Morning: 0.35, Afternoon: 0.65, Evening: 0.9},
		Notifications: models.NotificationPolicy{
			AllowInterruptions: false,
			UrgentOnly:         true,
			QuietHours:         models.TimeRange{Start: "17:00", End: "20:00"},
		},
	},
	{
		Name:               "steady-pacer",
		Personality:        "Steady pacer",
		WorkingHours:       models.TimeRange{Start: "09:00", End: "17:00"},
		PeakHours:          models.TimeRange{Start: "09:30", End: "12:00"},
		MaxTaskSwitches:    6,
		FocusBlockMinutes:  60,
		BreakMinutes:       10,
		PreferredTaskTypes: []string{"planning", "meetings", "admin"},
		Energy:             models.EnergyPattern{Morning: 0.7, Afternoon: 0.7, Evening: 0.55},
		Notifications: models.NotificationPolicy{
			AllowInterruptions: true,
			UrgentOnly:         false,
			QuietHours:         models.TimeRange{Start: "09:30", End: "11:00"},
		},
	},
	{
		Name:               "sprinter",
		Personality:        "Sprinter",
		WorkingHours:       models.TimeRange{Start: "08:30", End: "18:00"},
		PeakHours:          models.TimeRange{Start: "10:00", End: "12:30"},
		MaxTaskSwitches:    8,
		FocusBlockMinutes:  45,
		BreakMinutes:       15,
		PreferredTaskTypes: []string{"quick-wins", "communication", "review"},
		Energy:             models.EnergyPattern{Morning: 0.85, Afternoon: 0.5, Evening: 0.65},
		Notifications: models.NotificationPolicy{
			AllowInterruptions: true,
			UrgentOnly:         false,
			QuietHours:         models.TimeRange{Start: "10:00", End: "11:30"},
		},
	},
	{
		Name:               "collaborator",
		Personality:        "Collaborator",
		WorkingHours:       models.TimeRange{Start: "09:00", End: "17:30"},
		PeakHours:          models.TimeRange{Start: "13:00", End: "16:00"},
		MaxTaskSwitches:    8,
		FocusBlockMinutes:  45,
		BreakMinutes:       10,
		PreferredTaskTypes: []string{"meetings", "collaboration", "communication"},
		Energy:             models.EnergyPattern{Morning: 0.6, Afternoon: 0.85, Evening: 0.5},
		Notifications: models.NotificationPolicy{
			AllowInterruptions: true,
			UrgentOnly:         false,
			QuietHours:         models.TimeRange{Start: "13:30", End: "14:30"},
		},
	},
	{
		Name:               "deep-diver",
		Personality:        "Deep diver",
		WorkingHours:       models.TimeRange{Start: "08:00", End: "16:30"},
		PeakHours:          models.TimeRange{Start: "08:00", End: "12:00"},
		MaxTaskSwitches:    2,
		FocusBlockMinutes:  120,
		BreakMinutes:       20,
		PreferredTaskTypes: []string{"deep-work", "complex-analysis", "writing"},
		Energy:             models.EnergyPattern{Morning: 0.9, Afternoon: 0.75, Evening: 0.4},
		Notifications: models.NotificationPolicy{
			AllowInterruptions: false,
			UrgentOnly:         true,
			QuietHours:         models.TimeRange{Start: "08:00", End: "12:00"},
		},
	},
}

// Presets returns the built-in strategy catalog. The returned slice is a
// copy; callers may reorder or modify it freely.
func Presets() []models.FlowStrategy {
	return append([]models.FlowStrategy(nil), presetCatalog...)
}

// PresetByName looks up a built-in strategy by its name (case-insensitive).
func PresetByName(name string) (models.FlowStrategy, error) {
	for _, p := range presetCatalog {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	names := make([]string, len(presetCatalog))
	for i, p := range presetCatalog {
		names[i] = p.Name
	}
	return models.FlowStrategy{}, fmt.Errorf("unknown preset %q, available: %s", name, strings.Join(names, ", "))
}
