package models

import "time"

// TimeWindow is a free interval within working hours. Windows are ephemeral:
// computed fresh per scheduling run, never persisted.
type TimeWindow struct {
	Start     time.Time
	End       time.Time
	Minutes   int
	Available bool
}

// CommittedBlock is a time interval already occupied on a given day, whether
// by an earlier scheduling run or an externally sourced calendar event.
type CommittedBlock struct {
	Start time.Time `yaml:"start"`
	End   time.Time `yaml:"end"`
}

// BlockKind distinguishes task blocks from recovery breaks.
type BlockKind string

const (
	BlockTask  BlockKind = "task"
	BlockBreak BlockKind = "break"
)

// Block colors by priority tier.
const (
	ColorRed   = "red"
	ColorBlue  = "blue"
	ColorGreen = "green"
	ColorGray  = "gray"
)

// ProducedBlock is the scheduler's output unit: a task block linked to an
// activity, or an unlinked break block.
type ProducedBlock struct {
	Kind       BlockKind `yaml:"kind"`
	ActivityID string    `yaml:"activity_id,omitempty"`
	Title      string    `yaml:"title"`
	Start      time.Time `yaml:"start"`
	End        time.Time `yaml:"end"`
	Minutes    int       `yaml:"minutes"`
	Tier       Tier      `yaml:"tier"`
	Color      string    `yaml:"color"`
}

// ScheduleOptions configures a single scheduling run. All fields are supplied
// per invocation and never mutated by the scheduler.
type ScheduleOptions struct {
	WorkdayStart    string `yaml:"workday_start" mapstructure:"workday_start"`       // "09:00"
	WorkdayEnd      string `yaml:"workday_end" mapstructure:"workday_end"`           // "17:00"
	BreakMinutes    int    `yaml:"break_minutes" mapstructure:"break_minutes"`       // recovery break after focus blocks
	MinBlockMinutes int    `yaml:"min_block_minutes" mapstructure:"min_block_minutes"` // smallest placeable window
	MaxTasksPerDay  int    `yaml:"max_tasks_per_day" mapstructure:"max_tasks_per_day"`
	BufferMinutes   int    `yaml:"buffer_minutes" mapstructure:"buffer_minutes"`
	PreferFocus     bool   `yaml:"prefer_focus" mapstructure:"prefer_focus"`
	DeadlineAware   bool   `yaml:"deadline_aware" mapstructure:"deadline_aware"`
	MinimizeSwitch  bool   `yaml:"minimize_switch" mapstructure:"minimize_switch"`
}

// ScheduleResult is the outcome of one scheduling run. Every input activity
// appears exactly once: either as a task block in Blocks or in Unscheduled.
type ScheduleResult struct {
	Blocks      []ProducedBlock `yaml:"blocks"`
	Unscheduled []Activity      `yaml:"unscheduled"`
	Conflicts   []string        `yaml:"conflicts,omitempty"`
	Suggestions []string        `yaml:"suggestions,omitempty"`
}
