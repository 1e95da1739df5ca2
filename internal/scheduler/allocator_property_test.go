package scheduler

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/clogboy/dagplan/pkg/models"
	"pgregory.net/rapid"
)

func allocationFixture(rt *rapid.T) ([]ScoredActivity, []models.TimeWindow, models.ScheduleOptions) {
	n := rapid.IntRange(0, 12).Draw(rt, "n")
	activities := make([]models.Activity, n)
	for i := range activities {
		activities[i] = activityGen(rt, fmt.Sprintf("a%d", i))
		activities[i].ID = fmt.Sprintf("ACT-%05d", i+1)
	}
	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	ranked := Rank(activities, now)

	opts := models.ScheduleOptions{
		WorkdayStart:    "08:00",
		WorkdayEnd:      "18:00",
		BreakMinutes:    rapid.IntRange(0, 30).Draw(rt, "breakMinutes"),
		MinBlockMinutes: rapid.IntRange(15, 60).Draw(rt, "minBlock"),
		MaxTasksPerDay:  rapid.IntRange(1, 10).Draw(rt, "maxTasks"),
		PreferFocus:     rapid.Bool().Draw(rt, "preferFocus"),
	}

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	numCommitted := rapid.IntRange(0, 3).Draw(rt, "numCommitted")
	var committed []models.CommittedBlock
	for i := 0; i < numCommitted; i++ {
		startMin := rapid.IntRange(0, 9*60).Draw(rt, fmt.Sprintf("cStart%d", i))
		length := rapid.IntRange(15, 120).Draw(rt, fmt.Sprintf("cLen%d", i))
		start := day.Add(8*time.Hour + time.Duration(startMin)*time.Minute)
		committed = append(committed, models.CommittedBlock{
			Start: start,
			End:   start.Add(time.Duration(length) * time.Minute),
		})
	}

	windows, err := FreeWindows(day, committed, opts)
	if err != nil {
		rt.Fatalf("FreeWindows: %v", err)
	}

	return ranked, windows, opts
}

// Every input activity SHALL end up exactly once in either the task blocks
// or the unscheduled list, whatever the windows and options look like.
func TestAllocateConservesActivities(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ranked, windows, opts := allocationFixture(rt)

		result := Allocate(ranked, windows, opts)

		seen := make(map[string]int)
		tasks := 0
		for _, b := range result.Blocks {
			if b.Kind == models.BlockTask {
				tasks++
				seen[b.ActivityID]++
			}
		}
		for _, a := range result.Unscheduled {
			seen[a.ID]++
		}

		if tasks+len(result.Unscheduled) != len(ranked) {
			rt.Errorf("tasks (%d) + unscheduled (%d) != input (%d)",
				tasks, len(result.Unscheduled), len(ranked))
		}
		for id, count := range seen {
			if count != 1 {
				rt.Errorf("activity %s appears %d times", id, count)
			}
		}
	})
}

// Produced blocks SHALL never overlap each other and SHALL stay inside the
// free windows they were carved from (breaks included).
func TestAllocateBlocksDisjointAndWithinWindows(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ranked, windows, opts := allocationFixture(rt)

		result := Allocate(ranked, windows, opts)

		blocks := result.Blocks
		for i := 0; i < len(blocks); i++ {
			for j := i + 1; j < len(blocks); j++ {
				if blocks[i].Start.Before(blocks[j].End) && blocks[j].Start.Before(blocks[i].End) {
					rt.Errorf("blocks %d and %d overlap", i, j)
				}
			}
		}

		for i, b := range blocks {
			inside := false
			for _, w := range windows {
				if !b.Start.Before(w.Start) && !b.End.After(w.End) {
					inside = true
					break
				}
			}
			if !inside {
				rt.Errorf("block %d (%s-%s) lies outside every free window", i,
					b.Start.Format("15:04"), b.End.Format("15:04"))
			}
		}
	})
}

// The number of placed tasks SHALL never exceed the daily cap.
func TestAllocateHonorsTaskCap(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ranked, windows, opts := allocationFixture(rt)

		result := Allocate(ranked, windows, opts)

		tasks := 0
		for _, b := range result.Blocks {
			if b.Kind == models.BlockTask {
				tasks++
			}
		}
		if tasks > opts.MaxTasksPerDay {
			rt.Errorf("placed %d tasks, cap is %d", tasks, opts.MaxTasksPerDay)
		}
	})
}

// Allocation SHALL be deterministic: the same ranked list, windows, and
// options always produce the same result.
func TestAllocateIsDeterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ranked, windows, opts := allocationFixture(rt)

		first := Allocate(ranked, windows, opts)
		second := Allocate(ranked, windows, opts)

		if !reflect.DeepEqual(first, second) {
			rt.Error("identical inputs produced different results")
		}
	})
}
