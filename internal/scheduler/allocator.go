package scheduler

import (
	"fmt"
	"time"

	"github.com/clogboy/dagplan/pkg/models"
)

// baseEstimateMinutes is the fallback task length for activities without an
// explicit estimate.
const baseEstimateMinutes = 60

// EstimateMinutes returns the planning duration for an activity. An explicit
// estimate always wins; otherwise the priority tier decides. Urgent work gets
// 1.5x the base, capped at 120 minutes.
func EstimateMinutes(a models.Activity) int {
	if a.EstimatedMinutes > 0 {
		return a.EstimatedMinutes
	}
	switch a.Tier {
	case models.TierUrgent:
		est := baseEstimateMinutes * 3 / 2
		if est > 120 {
			est = 120
		}
		return est
	case models.TierNormal:
		return baseEstimateMinutes
	case models.TierLow:
		return 30
	default:
		return baseEstimateMinutes
	}
}

// tierColor maps a priority tier to the calendar color tag of its block.
func tierColor(tier models.Tier) string {
	switch tier {
	case models.TierUrgent:
		return models.ColorRed
	case models.TierLow:
		return models.ColorGreen
	default:
		return models.ColorBlue
	}
}

// Allocate walks the ranked activities in order and assigns each to the
// first free window that fits, splitting windows and inserting recovery
// breaks as it goes. Failure to place an activity is a modeled outcome
// (Unscheduled plus Conflicts/Suggestions), never an error. The function is
// deterministic: identical inputs always yield an identical result.
//
// Every input activity ends up exactly once in either Blocks (as a task
// block) or Unscheduled, and no two produced blocks overlap in time.
func Allocate(ranked []ScoredActivity, windows []models.TimeWindow, opts models.ScheduleOptions) *models.ScheduleResult {
	result := &models.ScheduleResult{}

	live := append([]models.TimeWindow(nil), windows...)
	placed := 0

	for _, sa := range ranked {
		a := sa.Activity

		if placed >= opts.MaxTasksPerDay {
			result.Unscheduled = append(result.Unscheduled, a)
			result.Suggestions = append(result.Suggestions, fmt.Sprintf(
				"Daily task limit of %d reached: consider deferring %q to another day",
				opts.MaxTasksPerDay, a.Title))
			continue
		}

		duration := EstimateMinutes(a)
		required := duration
		if opts.PreferFocus {
			required += opts.BreakMinutes
		}

		idx := firstFit(live, required)
		if idx < 0 {
			result.Unscheduled = append(result.Unscheduled, a)
			if exceedsAllWindows(live, duration) {
				result.Conflicts = append(result.Conflicts, fmt.Sprintf(
					"%s (%q) needs %d minutes but no free window today is large enough",
					a.ID, a.Title, duration))
			}
			continue
		}

		w := live[idx]
		taskEnd := w.Start.Add(time.Duration(duration) * time.Minute)
		result.Blocks = append(result.Blocks, models.ProducedBlock{
			Kind:       models.BlockTask,
			ActivityID: a.ID,
			Title:      a.Title,
			Start:      w.Start,
			End:        taskEnd,
			Minutes:    duration,
			Tier:       a.Tier,
			Color:      tierColor(a.Tier),
		})
		placed++

		// Consume the window: remove it on an exact fit, otherwise shrink
		// it to the remainder.
		if w.Minutes == required {
			live = append(live[:idx], live[idx+1:]...)
		} else {
			newStart := w.Start.Add(time.Duration(required) * time.Minute)
			live[idx] = models.TimeWindow{
				Start:     newStart,
				End:       w.End,
				Minutes:   int(w.End.Sub(newStart).Minutes()),
				Available: true,
			}
		}

		if opts.PreferFocus && opts.BreakMinutes > 0 {
			breakEnd := taskEnd.Add(time.Duration(opts.BreakMinutes) * time.Minute)
			result.Blocks = append(result.Blocks, models.ProducedBlock{
				Kind:    models.BlockBreak,
				Title:   "Break",
				Start:   taskEnd,
				End:     breakEnd,
				Minutes: opts.BreakMinutes,
				Tier:    models.TierNormal,
				Color:   models.ColorGray,
			})
		}
	}

	result.Suggestions = append(result.Suggestions, fmt.Sprintf("Planned %d task blocks", placed))
	if len(result.Unscheduled) > 0 {
		result.Suggestions = append(result.Suggestions, fmt.Sprintf(
			"%d activities did not fit: extend the working day or defer them",
			len(result.Unscheduled)))
	}

	return result
}

// firstFit returns the index of the first available window with at least
// the required minutes, or -1.
func firstFit(windows []models.TimeWindow, required int) int {
	for i, w := range windows {
		if w.Available && w.Minutes >= required {
			return i
		}
	}
	return -1
}

// exceedsAllWindows reports whether the duration is larger than every
// remaining window, meaning the activity can never fit today.
func exceedsAllWindows(windows []models.TimeWindow, duration int) bool {
	for _, w := range windows {
		if w.Minutes >= duration {
			return false
		}
	}
	return true
}
