package models

// EnergyPattern holds the expected energy level for the three parts of the
// working day, each in [0,1].
type EnergyPattern struct {
	Morning   float64 `yaml:"morning" mapstructure:"morning"`
	Afternoon float64 `yaml:"afternoon" mapstructure:"afternoon"`
	Evening   float64 `yaml:"evening" mapstructure:"evening"`
}

// TimeRange is a clock-time interval in "HH:MM" form. A range whose start is
// later than its end wraps around midnight.
type TimeRange struct {
	Start string `yaml:"start" mapstructure:"start"`
	End   string `yaml:"end" mapstructure:"end"`
}

// NotificationPolicy controls when interruptions reach the user.
type NotificationPolicy struct {
	AllowInterruptions bool      `yaml:"allow_interruptions" mapstructure:"allow_interruptions"`
	UrgentOnly         bool      `yaml:"urgent_only" mapstructure:"urgent_only"`
	QuietHours         TimeRange `yaml:"quiet_hours" mapstructure:"quiet_hours"`
}

// FlowStrategy is a named bundle of working-hour, energy-pattern, and
// interruption-policy parameters representing one working style. Strategies
// are static configuration; the advisor accepts any conforming value.
type FlowStrategy struct {
	Name               string             `yaml:"name" mapstructure:"name"`
	Personality        string             `yaml:"personality" mapstructure:"personality"`
	WorkingHours       TimeRange          `yaml:"working_hours" mapstructure:"working_hours"`
	PeakHours          TimeRange          `yaml:"peak_hours" mapstructure:"peak_hours"`
	MaxTaskSwitches    int                `yaml:"max_task_switches" mapstructure:"max_task_switches"`
	FocusBlockMinutes  int                `yaml:"focus_block_minutes" mapstructure:"focus_block_minutes"`
	BreakMinutes       int                `yaml:"break_minutes" mapstructure:"break_minutes"`
	PreferredTaskTypes []string           `yaml:"preferred_task_types" mapstructure:"preferred_task_types"`
	Energy             EnergyPattern      `yaml:"energy" mapstructure:"energy"`
	Notifications      NotificationPolicy `yaml:"notifications" mapstructure:"notifications"`
}

// TimeSlotType classifies the current moment by expected productivity.
type TimeSlotType string

const (
	SlotTypePeak       TimeSlotType = "peak"
	SlotTypeProductive TimeSlotType = "productive"
	SlotTypeLowEnergy  TimeSlotType = "low-energy"
)

// FlowRecommendation is the advisor's answer for one instant: whether focus
// mode should be active, which task categories fit right now, and whether
// interruptions are currently acceptable.
type FlowRecommendation struct {
	ShouldFocus        bool         `json:"should_focus"`
	SuggestedTaskTypes []string     `json:"suggested_task_types"`
	AllowInterruptions bool         `json:"allow_interruptions"`
	EnergyLevel        float64      `json:"energy_level"`
	SlotType           TimeSlotType `json:"time_slot_type"`
	Recommendation     string       `json:"recommendation"`
}
