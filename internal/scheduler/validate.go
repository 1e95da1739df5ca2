package scheduler

import (
	"fmt"

	"github.com/clogboy/dagplan/pkg/models"
)

// ValidateCommitted rejects malformed committed blocks before they reach the
// slot generator. A block whose start lies after its end is caller error.
func ValidateCommitted(blocks []models.CommittedBlock) error {
	for i, b := range blocks {
		if b.Start.After(b.End) {
			return fmt.Errorf("committed block %d starts at %s after it ends at %s",
				i, b.Start.Format("15:04"), b.End.Format("15:04"))
		}
	}
	return nil
}

// ValidateActivities rejects malformed activities before scoring. Negative
// estimates and missing IDs indicate a broken caller, not a scheduling
// outcome.
func ValidateActivities(activities []models.Activity) error {
	for i, a := range activities {
		if a.ID == "" {
			return fmt.Errorf("activity %d has no ID", i)
		}
		if a.EstimatedMinutes < 0 {
			return fmt.Errorf("activity %s has a negative estimated duration (%d minutes)",
				a.ID, a.EstimatedMinutes)
		}
	}
	return nil
}

// ValidateOptions rejects option bundles that can never produce a schedule.
func ValidateOptions(opts models.ScheduleOptions) error {
	var errs []string
	if opts.WorkdayStart == "" {
		errs = append(errs, "workday_start must not be empty")
	}
	if opts.WorkdayEnd == "" {
		errs = append(errs, "workday_end must not be empty")
	}
	if opts.MinBlockMinutes <= 0 {
		errs = append(errs, fmt.Sprintf("min_block_minutes must be positive, got %d", opts.MinBlockMinutes))
	}
	if opts.MaxTasksPerDay <= 0 {
		errs = append(errs, fmt.Sprintf("max_tasks_per_day must be positive, got %d", opts.MaxTasksPerDay))
	}
	if opts.BreakMinutes < 0 {
		errs = append(errs, fmt.Sprintf("break_minutes must not be negative, got %d", opts.BreakMinutes))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid schedule options: %s", joinErrs(errs))
	}
	return nil
}

func joinErrs(errs []string) string {
	out := errs[0]
	for _, e := range errs[1:] {
		out += "; " + e
	}
	return out
}
