package observability

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestLog(t *testing.T) (EventLog, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.jsonl")
	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("creating event log: %v", err)
	}
	t.Cleanup(func() { _ = log.Close() })
	return log, path
}

func TestEventLogWriteAndRead(t *testing.T) {
	log, _ := newTestLog(t)

	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	events := []Event{
		{
			Time:    base,
			Level:   "INFO",
			Type:    EventPlanGenerated,
			Message: "planned 3 task blocks",
			Day:     "2026-03-02",
			Data:    map[string]any{"blocks": 3, "breaks": 2, "unscheduled": 1},
		},
		{
			Time:    base.Add(time.Minute),
			Level:   "WARN",
			Type:    EventPlanConflict,
			Message: "activity does not fit",
			Day:     "2026-03-02",
		},
		{
			Time:    base.Add(2 * time.Minute),
			Level:   "INFO",
			Type:    EventActivityCompleted,
			Message: "activity ACT-00001 completed",
		},
	}
	for _, e := range events {
		if err := log.Write(e); err != nil {
			t.Fatalf("writing event: %v", err)
		}
	}

	got, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("reading events: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	if got[0].Type != EventPlanGenerated || got[0].Day != "2026-03-02" {
		t.Errorf("first event differs: %+v", got[0])
	}
}

func TestEventLogWriteDefaults(t *testing.T) {
	log, _ := newTestLog(t)

	if err := log.Write(Event{Type: EventFlowChecked, Message: "checked"}); err != nil {
		t.Fatalf("writing event: %v", err)
	}

	got, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("reading events: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	if got[0].Level != "INFO" {
		t.Errorf("Level = %q, want the INFO default", got[0].Level)
	}
	if got[0].Time.IsZero() {
		t.Error("expected a non-zero default timestamp")
	}
}

func TestEventLogReadFilters(t *testing.T) {
	log, _ := newTestLog(t)

	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	days := []string{"2026-03-01", "2026-03-02", "2026-03-02"}
	types := []string{EventPlanGenerated, EventPlanGenerated, EventFlowChecked}
	for i := range days {
		if err := log.Write(Event{
			Time: base.Add(time.Duration(i) * time.Hour),
			Type: types[i],
			Day:  days[i],
		}); err != nil {
			t.Fatalf("writing event: %v", err)
		}
	}

	byDay, err := log.Read(EventFilter{Day: "2026-03-02"})
	if err != nil {
		t.Fatalf("reading events: %v", err)
	}
	if len(byDay) != 2 {
		t.Errorf("day filter returned %d events, want 2", len(byDay))
	}

	byType, err := log.Read(EventFilter{Type: EventFlowChecked})
	if err != nil {
		t.Fatalf("reading events: %v", err)
	}
	if len(byType) != 1 {
		t.Errorf("type filter returned %d events, want 1", len(byType))
	}

	since := base.Add(30 * time.Minute)
	until := base.Add(90 * time.Minute)
	byWindow, err := log.Read(EventFilter{Since: &since, Until: &until})
	if err != nil {
		t.Fatalf("reading events: %v", err)
	}
	if len(byWindow) != 1 {
		t.Errorf("time window returned %d events, want 1", len(byWindow))
	}
}

func TestEventLogSkipsMalformedLines(t *testing.T) {
	log, path := newTestLog(t)

	if err := log.Write(Event{Type: EventPlanGenerated}); err != nil {
		t.Fatalf("writing event: %v", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("opening log for corruption: %v", err)
	}
	if _, err := f.WriteString("{not json\n"); err != nil {
		t.Fatalf("appending garbage: %v", err)
	}
	_ = f.Close()

	if err := log.Write(Event{Type: EventFlowChecked}); err != nil {
		t.Fatalf("writing event: %v", err)
	}

	got, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("reading events: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected the 2 valid events, got %d", len(got))
	}
}

func TestEventLogReadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("creating event log: %v", err)
	}
	defer log.Close()

	if err := os.Remove(path); err != nil {
		t.Fatalf("removing log file: %v", err)
	}

	got, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("reading missing log: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no events, got %d", len(got))
	}
}
