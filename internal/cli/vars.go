package cli

import (
	"github.com/clogboy/dagplan/internal/config"
	"github.com/clogboy/dagplan/internal/observability"
	"github.com/clogboy/dagplan/internal/scheduler"
	"github.com/clogboy/dagplan/internal/storage"
)

// Service instances, set during app initialization in internal/app.go.
var (
	BasePath    string
	Config      *config.PlannerConfig
	Activities  storage.ActivityStore
	Schedules   storage.ScheduleStore
	Planner     scheduler.Planner
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
)
