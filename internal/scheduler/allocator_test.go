package scheduler

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/clogboy/dagplan/pkg/models"
)

func TestEstimateMinutes(t *testing.T) {
	tests := []struct {
		name     string
		activity models.Activity
		want     int
	}{
		{"explicit estimate wins", models.Activity{Tier: models.TierUrgent, EstimatedMinutes: 25}, 25},
		{"urgent default", models.Activity{Tier: models.TierUrgent}, 90},
		{"high default", models.Activity{Tier: models.TierHigh}, 60},
		{"normal default", models.Activity{Tier: models.TierNormal}, 60},
		{"low default", models.Activity{Tier: models.TierLow}, 30},
		{"unknown tier default", models.Activity{Tier: models.Tier("weird")}, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateMinutes(tt.activity); got != tt.want {
				t.Errorf("EstimateMinutes = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTierColor(t *testing.T) {
	tests := []struct {
		tier models.Tier
		want string
	}{
		{models.TierUrgent, models.ColorRed},
		{models.TierHigh, models.ColorBlue},
		{models.TierNormal, models.ColorBlue},
		{models.TierLow, models.ColorGreen},
	}

	for _, tt := range tests {
		if got := tierColor(tt.tier); got != tt.want {
			t.Errorf("tierColor(%s) = %s, want %s", tt.tier, got, tt.want)
		}
	}
}

func rankedFixture(now time.Time, activities ...models.Activity) []ScoredActivity {
	return Rank(activities, now)
}

func fullDayWindows(t *testing.T, opts models.ScheduleOptions) []models.TimeWindow {
	t.Helper()
	windows, err := FreeWindows(testDay, nil, opts)
	if err != nil {
		t.Fatalf("FreeWindows: %v", err)
	}
	return windows
}

func taskBlocks(result *models.ScheduleResult) []models.ProducedBlock {
	var tasks []models.ProducedBlock
	for _, b := range result.Blocks {
		if b.Kind == models.BlockTask {
			tasks = append(tasks, b)
		}
	}
	return tasks
}

func TestAllocatePlacesHighestPriorityFirst(t *testing.T) {
	now := at(9, 30)
	overdue := now.AddDate(0, 0, -1)
	ranked := rankedFixture(now,
		models.Activity{ID: "ACT-00001", Title: "Routine work", Tier: models.TierNormal, EstimatedMinutes: 60},
		models.Activity{ID: "ACT-00002", Title: "Fire drill", Tier: models.TierUrgent, DueDate: &overdue, EstimatedMinutes: 60},
	)
	opts := defaultOpts()

	result := Allocate(ranked, fullDayWindows(t, opts), opts)

	tasks := taskBlocks(result)
	if len(tasks) != 2 {
		t.Fatalf("expected 2 task blocks, got %d", len(tasks))
	}
	if tasks[0].ActivityID != "ACT-00002" {
		t.Errorf("first placed block is %s, want the urgent ACT-00002", tasks[0].ActivityID)
	}
	if !tasks[0].Start.Equal(at(9, 0)) {
		t.Errorf("first block starts at %s, want 09:00", tasks[0].Start.Format("15:04"))
	}
	// 60 min task + 15 min break before the next task begins.
	if !tasks[1].Start.Equal(at(10, 15)) {
		t.Errorf("second block starts at %s, want 10:15", tasks[1].Start.Format("15:04"))
	}
}

func TestAllocateInsertsBreaksAfterFocusBlocks(t *testing.T) {
	now := at(9, 30)
	ranked := rankedFixture(now,
		models.Activity{ID: "ACT-00001", Title: "Deep work", Tier: models.TierNormal, EstimatedMinutes: 90},
	)
	opts := defaultOpts()

	result := Allocate(ranked, fullDayWindows(t, opts), opts)

	if len(result.Blocks) != 2 {
		t.Fatalf("expected task + break, got %d blocks", len(result.Blocks))
	}
	br := result.Blocks[1]
	if br.Kind != models.BlockBreak {
		t.Fatalf("second block kind = %s, want break", br.Kind)
	}
	if br.Minutes != opts.BreakMinutes {
		t.Errorf("break length = %d, want %d", br.Minutes, opts.BreakMinutes)
	}
	if !br.Start.Equal(result.Blocks[0].End) {
		t.Errorf("break starts at %s, want %s", br.Start.Format("15:04"), result.Blocks[0].End.Format("15:04"))
	}
	if br.Color != models.ColorGray {
		t.Errorf("break color = %s, want gray", br.Color)
	}
}

func TestAllocateNoBreaksWithoutFocusMode(t *testing.T) {
	now := at(9, 30)
	ranked := rankedFixture(now,
		models.Activity{ID: "ACT-00001", Title: "Deep work", Tier: models.TierNormal, EstimatedMinutes: 90},
	)
	opts := defaultOpts()
	opts.PreferFocus = false

	result := Allocate(ranked, fullDayWindows(t, opts), opts)

	for _, b := range result.Blocks {
		if b.Kind == models.BlockBreak {
			t.Error("expected no break blocks with focus mode off")
		}
	}
}

func TestAllocateRespectsDailyTaskCap(t *testing.T) {
	now := at(9, 30)
	ranked := rankedFixture(now,
		models.Activity{ID: "ACT-00001", Title: "First", Tier: models.TierNormal, EstimatedMinutes: 60},
		models.Activity{ID: "ACT-00002", Title: "Second", Tier: models.TierNormal, EstimatedMinutes: 60},
	)
	opts := defaultOpts()
	opts.MaxTasksPerDay = 1

	result := Allocate(ranked, fullDayWindows(t, opts), opts)

	if got := len(taskBlocks(result)); got != 1 {
		t.Errorf("expected 1 task block, got %d", got)
	}
	if len(result.Unscheduled) != 1 {
		t.Fatalf("expected 1 unscheduled activity, got %d", len(result.Unscheduled))
	}

	found := false
	for _, s := range result.Suggestions {
		if strings.Contains(s, "Daily task limit") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a deferral suggestion, got %v", result.Suggestions)
	}
}

func TestAllocateReportsConflictForOversizedActivity(t *testing.T) {
	now := at(9, 30)
	ranked := rankedFixture(now,
		models.Activity{ID: "ACT-00001", Title: "Marathon", Tier: models.TierNormal, EstimatedMinutes: 500},
	)
	opts := defaultOpts()

	result := Allocate(ranked, fullDayWindows(t, opts), opts)

	if len(taskBlocks(result)) != 0 {
		t.Error("expected no task blocks for a 500-minute activity in an 8-hour day")
	}
	if len(result.Unscheduled) != 1 {
		t.Fatalf("expected 1 unscheduled activity, got %d", len(result.Unscheduled))
	}
	if len(result.Conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(result.Conflicts))
	}
	if !strings.Contains(result.Conflicts[0], "no free window today is large enough") {
		t.Errorf("unexpected conflict text: %s", result.Conflicts[0])
	}
}

func TestAllocateExactFitConsumesWindow(t *testing.T) {
	now := at(9, 30)
	ranked := rankedFixture(now,
		models.Activity{ID: "ACT-00001", Title: "Exact", Tier: models.TierNormal, EstimatedMinutes: 45},
		models.Activity{ID: "ACT-00002", Title: "Overflow", Tier: models.TierNormal, EstimatedMinutes: 45},
	)
	opts := defaultOpts()

	// One window of exactly task + break minutes.
	windows := []models.TimeWindow{{
		Start:     at(9, 0),
		End:       at(10, 0),
		Minutes:   60,
		Available: true,
	}}

	result := Allocate(ranked, windows, opts)

	if got := len(taskBlocks(result)); got != 1 {
		t.Errorf("expected 1 task block, got %d", got)
	}
	if len(result.Unscheduled) != 1 {
		t.Errorf("expected 1 unscheduled activity, got %d", len(result.Unscheduled))
	}
}

func TestAllocateConservation(t *testing.T) {
	now := at(9, 30)
	ranked := rankedFixture(now,
		models.Activity{ID: "ACT-00001", Title: "A", Tier: models.TierUrgent},
		models.Activity{ID: "ACT-00002", Title: "B", Tier: models.TierHigh, EstimatedMinutes: 240},
		models.Activity{ID: "ACT-00003", Title: "C", Tier: models.TierNormal, EstimatedMinutes: 500},
		models.Activity{ID: "ACT-00004", Title: "D", Tier: models.TierLow},
	)
	opts := defaultOpts()

	result := Allocate(ranked, fullDayWindows(t, opts), opts)

	if got := len(taskBlocks(result)) + len(result.Unscheduled); got != 4 {
		t.Errorf("scheduled + unscheduled = %d, want 4", got)
	}
}

func TestAllocateBlocksNeverOverlap(t *testing.T) {
	now := at(9, 30)
	ranked := rankedFixture(now,
		models.Activity{ID: "ACT-00001", Title: "A", Tier: models.TierNormal, EstimatedMinutes: 90},
		models.Activity{ID: "ACT-00002", Title: "B", Tier: models.TierNormal, EstimatedMinutes: 60},
		models.Activity{ID: "ACT-00003", Title: "C", Tier: models.TierLow, EstimatedMinutes: 30},
	)
	opts := defaultOpts()

	result := Allocate(ranked, fullDayWindows(t, opts), opts)

	blocks := result.Blocks
	for i := 0; i < len(blocks); i++ {
		for j := i + 1; j < len(blocks); j++ {
			if blocks[i].Start.Before(blocks[j].End) && blocks[j].Start.Before(blocks[i].End) {
				t.Errorf("blocks %d and %d overlap: %s-%s vs %s-%s", i, j,
					blocks[i].Start.Format("15:04"), blocks[i].End.Format("15:04"),
					blocks[j].Start.Format("15:04"), blocks[j].End.Format("15:04"))
			}
		}
	}
}

func TestAllocateDeterministic(t *testing.T) {
	now := at(9, 30)
	ranked := rankedFixture(now,
		models.Activity{ID: "ACT-00001", Title: "A", Tier: models.TierUrgent},
		models.Activity{ID: "ACT-00002", Title: "B", Tier: models.TierNormal, EstimatedMinutes: 45},
		models.Activity{ID: "ACT-00003", Title: "C", Tier: models.TierLow},
	)
	opts := defaultOpts()

	first := Allocate(ranked, fullDayWindows(t, opts), opts)
	second := Allocate(ranked, fullDayWindows(t, opts), opts)

	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different results")
	}
}
