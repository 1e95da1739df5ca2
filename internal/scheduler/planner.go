package scheduler

import (
	"fmt"
	"time"

	"github.com/clogboy/dagplan/pkg/models"
)

// Planner defines the interface for running the full time-blocking pipeline
// for a single day: score and rank the pending activities, compute the free
// windows, and greedily allocate.
type Planner interface {
	PlanDay(day time.Time, activities []models.Activity, committed []models.CommittedBlock, opts models.ScheduleOptions, now time.Time) (*models.ScheduleResult, error)
}

// planner implements Planner. It is stateless; each invocation is
// independent.
type planner struct{}

// NewPlanner creates a new Planner.
func NewPlanner() Planner {
	return &planner{}
}

// PlanDay validates its inputs at the boundary and then runs the pure
// pipeline. Validation failures are errors; unplaceable activities are not.
func (p *planner) PlanDay(day time.Time, activities []models.Activity, committed []models.CommittedBlock, opts models.ScheduleOptions, now time.Time) (*models.ScheduleResult, error) {
	if err := ValidateOptions(opts); err != nil {
		return nil, err
	}
	if err := ValidateCommitted(committed); err != nil {
		return nil, fmt.Errorf("validating committed blocks: %w", err)
	}
	if err := ValidateActivities(activities); err != nil {
		return nil, fmt.Errorf("validating activities: %w", err)
	}

	ranked := Rank(activities, now)
	windows, err := FreeWindows(day, committed, opts)
	if err != nil {
		return nil, fmt.Errorf("computing free windows: %w", err)
	}

	return Allocate(ranked, windows, opts), nil
}
