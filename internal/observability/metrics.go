package observability

import (
	"fmt"
	"time"
)

// Metrics holds aggregates derived from the event log.
type Metrics struct {
	TasksCreated   int        `json:"tasks_created"`
	TasksUpdated   int        `json:"tasks_updated"`
	TasksCompleted int        `json:"tasks_completed"`
	TasksDeleted   int        `json:"tasks_deleted"`
	SyncsTriggered int        `json:"syncs_triggered"`
	SyncsConfirmed int        `json:"syncs_confirmed"`
	EventCount     int        `json:"event_count"`
	OldestEvent    *time.Time `json:"oldest_event,omitempty"`
	NewestEvent    *time.Time `json:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a MetricsCalculator reading from eventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate reads all events since the given time and aggregates them.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{EventCount: len(events)}

	for i, event := range events {
		if i == 0 {
			t := event.Time
			m.OldestEvent = &t
		}
		t := event.Time
		m.NewestEvent = &t

		switch event.Type {
		case "task.created":
			m.TasksCreated++
		case "task.updated":
			m.TasksUpdated++
		case "task.completed":
			m.TasksCompleted++
		case "task.deleted":
			m.TasksDeleted++
		case "sync.triggered":
			m.SyncsTriggered++
		case "sync.confirmed":
			m.SyncsConfirmed++
		}
	}

	return m, nil
}
