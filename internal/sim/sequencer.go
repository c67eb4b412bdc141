package sim

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/waabox/pipelinedeck/internal/clock"
	"github.com/waabox/pipelinedeck/internal/domain"
)

const (
	// LabelIdle is the trigger label while no run is in progress.
	LabelIdle = "Simulate Pipeline Run"
	// LabelRunning is the trigger label while a run is in progress.
	LabelRunning = "Running Pipeline..."
	// CompletionMessage is shown when a run finishes.
	CompletionMessage = "Pipeline completed successfully!"
)

// Timings controls the choreography of a single run.
type Timings struct {
	StepInterval  time.Duration
	PulseDuration time.Duration
	RunDuration   time.Duration
}

// DefaultTimings activates a step every 500ms, pulses it for 200ms and completes after 3s.
func DefaultTimings() Timings {
	return Timings{
		StepInterval:  500 * time.Millisecond,
		PulseDuration: 200 * time.Millisecond,
		RunDuration:   3 * time.Second,
	}
}

// Notifier displays a completion message.
type Notifier interface {
	Show(message string) domain.Notification
}

// Sequencer drives one foreground run at a time from idle to running and back.
//
// The run always finishes RunDuration after it starts, whatever the step count. Timers are
// never cancelled: a step scheduled past RunDuration still lights up after the run has
// completed. Only a newer run makes the older run's activations stale. Steps stay active
// across runs; a new run re-activates them in order.
type Sequencer struct {
	sched    clock.Scheduler
	counters CounterStore
	notifier Notifier
	timings  Timings
	logger   *zap.Logger
	emit     Listener

	state          domain.RunState
	run            domain.PipelineRun
	steps          []domain.Step
	triggerEnabled bool
	generation     uint64
}

// NewSequencer creates an idle sequencer animating stepNames in order.
func NewSequencer(sched clock.Scheduler, counters CounterStore, notifier Notifier, stepNames []string, timings Timings, logger *zap.Logger) *Sequencer {
	if logger == nil {
		logger = zap.NewNop()
	}
	steps := make([]domain.Step, len(stepNames))
	for i, name := range stepNames {
		steps[i] = domain.Step{Name: name, State: domain.StepPending}
	}
	return &Sequencer{
		sched:          sched,
		counters:       counters,
		notifier:       notifier,
		timings:        timings,
		logger:         logger,
		emit:           func(Event) {},
		state:          domain.RunIdle,
		steps:          steps,
		triggerEnabled: true,
	}
}

// Trigger starts a run. While a run is in progress it does nothing and returns false.
func (s *Sequencer) Trigger() bool {
	if s.state == domain.RunRunning || !s.triggerEnabled {
		s.logger.Debug("trigger ignored: run in progress", zap.String("run", s.run.ID))
		return false
	}

	s.generation++
	gen := s.generation
	now := s.sched.Now()

	s.state = domain.RunRunning
	s.triggerEnabled = false
	s.run = domain.PipelineRun{
		ID:         uuid.NewString(),
		InProgress: true,
		StartedAt:  now,
	}
	s.logger.Info("pipeline run started", zap.String("run", s.run.ID), zap.Int("steps", len(s.steps)))
	s.emit(Event{Kind: EventRunStarted, At: now, RunID: s.run.ID, Counters: s.counters.Snapshot()})

	for i := range s.steps {
		s.sched.AfterFunc(time.Duration(i)*s.timings.StepInterval, func() { s.activate(gen, i) })
	}
	s.sched.AfterFunc(s.timings.RunDuration, func() { s.complete(gen) })
	return true
}

// OnEvent sets the listener for run and step events.
func (s *Sequencer) OnEvent(l Listener) {
	s.emit = l
}

// State returns idle or running.
func (s *Sequencer) State() domain.RunState {
	return s.state
}

// TriggerEnabled reports whether Trigger would start a run.
func (s *Sequencer) TriggerEnabled() bool {
	return s.triggerEnabled
}

// TriggerLabel is the text of the trigger control for the current state.
func (s *Sequencer) TriggerLabel() string {
	if s.state == domain.RunRunning {
		return LabelRunning
	}
	return LabelIdle
}

// Run returns the current (or most recent) run.
func (s *Sequencer) Run() domain.PipelineRun {
	return s.run
}

// Steps returns a copy of the step states.
func (s *Sequencer) Steps() []domain.Step {
	out := make([]domain.Step, len(s.steps))
	copy(out, s.steps)
	return out
}

func (s *Sequencer) current(gen uint64) bool {
	return gen == s.generation && s.run.InProgress
}

func (s *Sequencer) activate(gen uint64, i int) {
	if gen != s.generation {
		return
	}
	now := s.sched.Now()
	s.steps[i].State = domain.StepActive
	s.steps[i].Pulsing = true
	s.steps[i].ActivatedAt = now
	s.run.StepIndex = i
	s.emit(Event{Kind: EventStepActivated, At: now, RunID: s.run.ID, StepIndex: i, StepName: s.steps[i].Name})

	s.sched.AfterFunc(s.timings.PulseDuration, func() { s.endPulse(i, now) })
}

// endPulse reverts the pulse started at activatedAt. A later re-activation of the same
// step owns the pulse from then on.
func (s *Sequencer) endPulse(i int, activatedAt time.Time) {
	if !s.steps[i].Pulsing || !s.steps[i].ActivatedAt.Equal(activatedAt) {
		return
	}
	s.steps[i].Pulsing = false
	s.emit(Event{Kind: EventStepPulseEnded, At: s.sched.Now(), RunID: s.run.ID, StepIndex: i, StepName: s.steps[i].Name})
}

func (s *Sequencer) complete(gen uint64) {
	if !s.current(gen) {
		return
	}
	ctx := context.Background()
	for _, name := range domain.CounterNames {
		if _, err := s.counters.Increment(ctx, name); err != nil {
			s.logger.Warn("persisting run increment failed",
				zap.String("counter", string(name)), zap.Error(err))
		}
	}
	s.state = domain.RunIdle
	s.run.InProgress = false
	s.triggerEnabled = true

	counters := s.counters.Snapshot()
	s.logger.Info("pipeline run completed",
		zap.String("run", s.run.ID),
		zap.Int("builds", counters.Builds),
		zap.Int("scans", counters.Scans),
		zap.Int("deployments", counters.Deployments))
	s.emit(Event{Kind: EventRunCompleted, At: s.sched.Now(), RunID: s.run.ID, Counters: counters})

	if s.notifier != nil {
		s.notifier.Show(CompletionMessage)
	}
}
