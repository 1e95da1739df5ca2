// Package internal provides the App struct that wires all components of
// dagplan together and initializes the CLI layer.
package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/clogboy/dagplan/internal/cli"
	"github.com/clogboy/dagplan/internal/config"
	"github.com/clogboy/dagplan/internal/observability"
	"github.com/clogboy/dagplan/internal/scheduler"
	"github.com/clogboy/dagplan/internal/storage"
)

// App holds all service dependencies of the dagplan system.
type App struct {
	BasePath string

	// Configuration
	ConfigMgr config.Manager
	Config    *config.PlannerConfig

	// Storage layer
	Activities storage.ActivityStore
	Schedules  storage.ScheduleStore

	// Core services
	Planner scheduler.Planner

	// Observability
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
}

// NewApp creates and wires all components of the dagplan system. basePath is
// the directory where configuration and data files live (typically the
// directory containing .dagplanrc).
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	app.ConfigMgr = config.NewManager(basePath)
	cfg, err := app.ConfigMgr.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if err := app.ConfigMgr.Validate(cfg); err != nil {
		return nil, err
	}
	app.Config = cfg

	// --- Storage layer ---
	app.Activities = storage.NewActivityStore(basePath)
	if err := app.Activities.Load(); err != nil {
		return nil, fmt.Errorf("loading activity registry: %w", err)
	}
	app.Schedules = storage.NewScheduleStore(basePath)

	// --- Core services ---
	app.Planner = scheduler.NewPlanner()

	// --- Observability ---
	eventLogPath := filepath.Join(basePath, ".dagplan_events.jsonl")
	app.EventLog, err = observability.NewJSONLEventLog(eventLogPath)
	if err != nil {
		// Non-fatal: disable observability if the log can't be created.
		app.EventLog = nil
	}
	if app.EventLog != nil {
		app.MetricsCalc = observability.NewMetricsCalculator(app.EventLog)
	}

	// --- CLI wiring ---
	cli.BasePath = basePath
	cli.Config = cfg
	cli.Activities = app.Activities
	cli.Schedules = app.Schedules
	cli.Planner = app.Planner
	cli.EventLog = app.EventLog
	cli.MetricsCalc = app.MetricsCalc

	return app, nil
}

// ResolveBasePath determines where dagplan keeps its data: the DAGPLAN_HOME
// environment variable if set, otherwise the nearest ancestor directory
// containing a .dagplanrc, otherwise the working directory.
func ResolveBasePath() string {
	if home := os.Getenv("DAGPLAN_HOME"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	cwd := dir
	for {
		if _, err := os.Stat(filepath.Join(dir, ".dagplanrc")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return cwd
}
