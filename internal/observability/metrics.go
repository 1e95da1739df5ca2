package observability

import (
	"fmt"
	"time"
)

// Metrics holds scheduling metrics derived from the event log.
type Metrics struct {
	PlansGenerated      int            `json:"plans_generated"`
	BlocksPlaced        int            `json:"blocks_placed"`
	BreaksInserted      int            `json:"breaks_inserted"`
	ActivitiesDeferred  int            `json:"activities_deferred"`
	ConflictsReported   int            `json:"conflicts_reported"`
	ActivitiesCreated   int            `json:"activities_created"`
	ActivitiesCompleted int            `json:"activities_completed"`
	FlowChecks          int            `json:"flow_checks"`
	PlansByDay          map[string]int `json:"plans_by_day"`
	EventCount          int            `json:"event_count"`
	OldestEvent         *time.Time     `json:"oldest_event,omitempty"`
	NewestEvent         *time.Time     `json:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

// metricsCalculator implements MetricsCalculator by reading from an
// EventLog.
type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a MetricsCalculator that reads from the
// given EventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate reads all events since the given time and aggregates them.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{
		PlansByDay: make(map[string]int),
	}
	m.EventCount = len(events)

	for i, event := range events {
		if i == 0 {
			t := event.Time
			m.OldestEvent = &t
		}
		t := event.Time
		m.NewestEvent = &t

		switch event.Type {
		case EventPlanGenerated:
			m.PlansGenerated++
			if event.Day != "" {
				m.PlansByDay[event.Day]++
			}
			m.BlocksPlaced += intField(event, "blocks")
			m.BreaksInserted += intField(event, "breaks")
			m.ActivitiesDeferred += intField(event, "unscheduled")
		case EventPlanConflict:
			m.ConflictsReported++
		case EventActivityCreated:
			m.ActivitiesCreated++
		case EventActivityCompleted:
			m.ActivitiesCompleted++
		case EventFlowChecked:
			m.FlowChecks++
		}
	}

	return m, nil
}

// intField reads a numeric field from the event data. JSON decoding turns
// numbers into float64, so both forms are accepted.
func intField(event Event, key string) int {
	switch v := event.Data[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}
