// Package config loads and validates planner configuration from the
// .dagplanrc file using Viper, falling back to sensible defaults when the
// file is missing.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/clogboy/dagplan/pkg/models"
	"github.com/spf13/viper"
)

// PlannerConfig holds the user's scheduling preferences: the schedule
// options handed to every planning run plus the default flow preset.
type PlannerConfig struct {
	Options       models.ScheduleOptions `yaml:"options" mapstructure:"options"`
	DefaultPreset string                 `yaml:"default_preset" mapstructure:"default_preset"`
}

// Manager defines the interface for loading and validating planner
// configuration.
type Manager interface {
	Load() (*PlannerConfig, error)
	Validate(cfg *PlannerConfig) error
}

// viperManager implements Manager using Viper for reading the YAML
// configuration file.
type viperManager struct {
	// basePath is the directory where .dagplanrc resides.
	basePath string
}

// NewManager creates a Manager that reads configuration relative to
// basePath.
func NewManager(basePath string) Manager {
	return &viperManager{basePath: basePath}
}

// DefaultConfig returns a PlannerConfig populated with the standard
// nine-to-five defaults.
func DefaultConfig() *PlannerConfig {
	return &PlannerConfig{
		Options: models.ScheduleOptions{
			WorkdayStart:    "09:00",
			WorkdayEnd:      "17:00",
			BreakMinutes:    15,
			MinBlockMinutes: 30,
			MaxTasksPerDay:  6,
			BufferMinutes:   10,
			PreferFocus:     true,
			DeadlineAware:   true,
			MinimizeSwitch:  false,
		},
		DefaultPreset: "steady-pacer",
	}
}

// Load reads .dagplanrc from the base path. Missing keys fall back to the
// defaults; a missing file returns the defaults outright.
func (m *viperManager) Load() (*PlannerConfig, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName(".dagplanrc")
	v.SetConfigType("yaml")
	v.AddConfigPath(m.basePath)

	v.SetDefault("options.workday_start", cfg.Options.WorkdayStart)
	v.SetDefault("options.workday_end", cfg.Options.WorkdayEnd)
	v.SetDefault("options.break_minutes", cfg.Options.BreakMinutes)
	v.SetDefault("options.min_block_minutes", cfg.Options.MinBlockMinutes)
	v.SetDefault("options.max_tasks_per_day", cfg.Options.MaxTasksPerDay)
	v.SetDefault("options.buffer_minutes", cfg.Options.BufferMinutes)
	v.SetDefault("options.prefer_focus", cfg.Options.PreferFocus)
	v.SetDefault("options.deadline_aware", cfg.Options.DeadlineAware)
	v.SetDefault("options.minimize_switch", cfg.Options.MinimizeSwitch)
	v.SetDefault("default_preset", cfg.DefaultPreset)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading .dagplanrc: %w", err)
	}

	cfg.Options.WorkdayStart = v.GetString("options.workday_start")
	cfg.Options.WorkdayEnd = v.GetString("options.workday_end")
	cfg.Options.BreakMinutes = v.GetInt("options.break_minutes")
	cfg.Options.MinBlockMinutes = v.GetInt("options.min_block_minutes")
	cfg.Options.MaxTasksPerDay = v.GetInt("options.max_tasks_per_day")
	cfg.Options.BufferMinutes = v.GetInt("options.buffer_minutes")
	cfg.Options.PreferFocus = v.GetBool("options.prefer_focus")
	cfg.Options.DeadlineAware = v.GetBool("options.deadline_aware")
	cfg.Options.MinimizeSwitch = v.GetBool("options.minimize_switch")
	cfg.DefaultPreset = v.GetString("default_preset")

	return cfg, nil
}

// Validate checks a PlannerConfig for invalid values and returns a clear
// error identifying every problem found.
func (m *viperManager) Validate(cfg *PlannerConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	var errs []string

	start, err := time.Parse("15:04", cfg.Options.WorkdayStart)
	if err != nil {
		errs = append(errs, fmt.Sprintf("options.workday_start %q is not a valid HH:MM time", cfg.Options.WorkdayStart))
	}
	end, err := time.Parse("15:04", cfg.Options.WorkdayEnd)
	if err != nil {
		errs = append(errs, fmt.Sprintf("options.workday_end %q is not a valid HH:MM time", cfg.Options.WorkdayEnd))
	}
	if len(errs) == 0 && !start.Before(end) {
		errs = append(errs, fmt.Sprintf("options.workday_start %s must be before options.workday_end %s",
			cfg.Options.WorkdayStart, cfg.Options.WorkdayEnd))
	}

	if cfg.Options.BreakMinutes < 0 {
		errs = append(errs, fmt.Sprintf("options.break_minutes must not be negative, got %d", cfg.Options.BreakMinutes))
	}
	if cfg.Options.MinBlockMinutes <= 0 {
		errs = append(errs, fmt.Sprintf("options.min_block_minutes must be positive, got %d", cfg.Options.MinBlockMinutes))
	}
	if cfg.Options.MaxTasksPerDay <= 0 {
		errs = append(errs, fmt.Sprintf("options.max_tasks_per_day must be positive, got %d", cfg.Options.MaxTasksPerDay))
	}
	if cfg.Options.BufferMinutes < 0 {
		errs = append(errs, fmt.Sprintf("options.buffer_minutes must not be negative, got %d", cfg.Options.BufferMinutes))
	}
	if cfg.DefaultPreset == "" {
		errs = append(errs, "default_preset must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("planner config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
