package sim

import (
	"context"
	"time"

	"github.com/waabox/pipelinedeck/internal/domain"
)

// EventKind names something observable that happened inside the engine.
type EventKind string

const (
	EventCountersChanged EventKind = "counters_changed"
	EventRunStarted      EventKind = "run_started"
	EventStepActivated   EventKind = "step_activated"
	EventStepPulseEnded  EventKind = "step_pulse_ended"
	EventRunCompleted    EventKind = "run_completed"
	EventNotification    EventKind = "notification"
)

// Event is delivered to listeners after the state change it describes has been applied.
type Event struct {
	Kind         EventKind
	At           time.Time
	Counter      domain.CounterName
	Counters     domain.Counters
	RunID        string
	StepIndex    int
	StepName     string
	Notification domain.Notification
}

// Listener receives engine events.
type Listener func(Event)

// CounterStore is the persistence the simulation components mutate.
type CounterStore interface {
	Load(ctx context.Context) domain.Counters
	Increment(ctx context.Context, name domain.CounterName) (int, error)
	Snapshot() domain.Counters
}
