package observability

import (
	"path/filepath"
	"testing"
	"time"
)

func TestMetricsCalculatorCalculate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("creating event log: %v", err)
	}
	defer log.Close()

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	events := []Event{
		{
			Time:    base,
			Type:    EventActivityCreated,
			Message: "activity created",
			Data:    map[string]any{"id": "ACT-00001", "tier": "high"},
		},
		{
			Time:    base.Add(time.Hour),
			Type:    EventPlanGenerated,
			Message: "planned 3 task blocks",
			Day:     "2026-03-02",
			Data:    map[string]any{"blocks": 3, "breaks": 2, "unscheduled": 1},
		},
		{
			Time:    base.Add(2 * time.Hour),
			Level:   "WARN",
			Type:    EventPlanConflict,
			Message: "activity does not fit",
			Day:     "2026-03-02",
		},
		{
			Time:    base.Add(3 * time.Hour),
			Type:    EventPlanGenerated,
			Message: "planned 2 task blocks",
			Day:     "2026-03-03",
			Data:    map[string]any{"blocks": 2, "breaks": 1, "unscheduled": 0},
		},
		{
			Time:    base.Add(4 * time.Hour),
			Type:    EventActivityCompleted,
			Message: "activity completed",
			Data:    map[string]any{"id": "ACT-00001"},
		},
		{
			Time:    base.Add(5 * time.Hour),
			Type:    EventFlowChecked,
			Message: "flow checked",
		},
	}
	for _, e := range events {
		if err := log.Write(e); err != nil {
			t.Fatalf("writing event: %v", err)
		}
	}

	calc := NewMetricsCalculator(log)
	m, err := calc.Calculate(base.Add(-time.Hour))
	if err != nil {
		t.Fatalf("calculating metrics: %v", err)
	}

	if m.PlansGenerated != 2 {
		t.Errorf("PlansGenerated = %d, want 2", m.PlansGenerated)
	}
	if m.BlocksPlaced != 5 {
		t.Errorf("BlocksPlaced = %d, want 5", m.BlocksPlaced)
	}
	if m.BreaksInserted != 3 {
		t.Errorf("BreaksInserted = %d, want 3", m.BreaksInserted)
	}
	if m.ActivitiesDeferred != 1 {
		t.Errorf("ActivitiesDeferred = %d, want 1", m.ActivitiesDeferred)
	}
	if m.ConflictsReported != 1 {
		t.Errorf("ConflictsReported = %d, want 1", m.ConflictsReported)
	}
	if m.ActivitiesCreated != 1 {
		t.Errorf("ActivitiesCreated = %d, want 1", m.ActivitiesCreated)
	}
	if m.ActivitiesCompleted != 1 {
		t.Errorf("ActivitiesCompleted = %d, want 1", m.ActivitiesCompleted)
	}
	if m.FlowChecks != 1 {
		t.Errorf("FlowChecks = %d, want 1", m.FlowChecks)
	}
	if m.EventCount != 6 {
		t.Errorf("EventCount = %d, want 6", m.EventCount)
	}
	if m.PlansByDay["2026-03-02"] != 1 || m.PlansByDay["2026-03-03"] != 1 {
		t.Errorf("PlansByDay = %v, want one plan each day", m.PlansByDay)
	}
	if m.OldestEvent == nil || !m.OldestEvent.Equal(base) {
		t.Errorf("OldestEvent = %v, want %v", m.OldestEvent, base)
	}
	if m.NewestEvent == nil || !m.NewestEvent.Equal(base.Add(5*time.Hour)) {
		t.Errorf("NewestEvent = %v, want %v", m.NewestEvent, base.Add(5*time.Hour))
	}
}

func TestMetricsCalculatorSinceCutoff(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("creating event log: %v", err)
	}
	defer log.Close()

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	old := Event{Time: base.AddDate(0, 0, -30), Type: EventPlanGenerated, Day: "2026-02-01"}
	recent := Event{Time: base, Type: EventPlanGenerated, Day: "2026-03-02"}
	for _, e := range []Event{old, recent} {
		if err := log.Write(e); err != nil {
			t.Fatalf("writing event: %v", err)
		}
	}

	calc := NewMetricsCalculator(log)
	m, err := calc.Calculate(base.AddDate(0, 0, -7))
	if err != nil {
		t.Fatalf("calculating metrics: %v", err)
	}

	if m.PlansGenerated != 1 {
		t.Errorf("PlansGenerated = %d, want 1 (the 30-day-old event is out of window)", m.PlansGenerated)
	}
	if m.EventCount != 1 {
		t.Errorf("EventCount = %d, want 1", m.EventCount)
	}
}

func TestMetricsCalculatorEmptyLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("creating event log: %v", err)
	}
	defer log.Close()

	calc := NewMetricsCalculator(log)
	m, err := calc.Calculate(time.Now().AddDate(0, 0, -7))
	if err != nil {
		t.Fatalf("calculating metrics: %v", err)
	}

	if m.EventCount != 0 || m.PlansGenerated != 0 {
		t.Errorf("expected zeroed metrics, got %+v", m)
	}
	if m.OldestEvent != nil || m.NewestEvent != nil {
		t.Error("expected nil oldest/newest for an empty log")
	}
}
