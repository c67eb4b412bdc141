package sim

import (
	"context"

	"go.uber.org/zap"

	"github.com/waabox/pipelinedeck/internal/clock"
	"github.com/waabox/pipelinedeck/internal/domain"
	"github.com/waabox/pipelinedeck/internal/notify"
)

// DefaultSteps are the stages animated when no step list is configured.
var DefaultSteps = []string{"Checkout", "Build", "SonarQube Scan", "Docker Image", "Deploy"}

// Options configures every component owned by the Engine.
type Options struct {
	Steps        []string
	Activity     ActivityOptions
	Run          Timings
	Notification notify.Timings
	// Styles defaults to notify.SharedStyles.
	Styles *notify.Styles
}

// DefaultOptions returns the stock timings, thresholds and step list.
func DefaultOptions() Options {
	return Options{
		Steps: append([]string(nil), DefaultSteps...),
		Activity: ActivityOptions{
			Period:     DefaultActivityPeriod,
			Thresholds: DefaultThresholds(),
		},
		Run:          DefaultTimings(),
		Notification: notify.DefaultTimings(),
	}
}

// Snapshot is a consistent view of the simulation for rendering.
type Snapshot struct {
	Counters       domain.Counters
	RunState       domain.RunState
	TriggerEnabled bool
	TriggerLabel   string
	Run            domain.PipelineRun
	Steps          []domain.Step
	Notifications  []domain.Notification
}

// Engine owns the simulation state and every component that mutates it.
// All methods must be called from the scheduler's event loop.
type Engine struct {
	sched     clock.Scheduler
	counters  CounterStore
	logger    *zap.Logger
	activity  *ActivitySimulator
	sequencer *Sequencer
	presenter *notify.Presenter
	listeners []Listener
}

// NewEngine wires the activity simulator, run sequencer and presenter around counters.
func NewEngine(sched clock.Scheduler, counters CounterStore, opts Options, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{sched: sched, counters: counters, logger: logger}

	e.presenter = notify.NewPresenter(sched, opts.Styles, opts.Notification)
	e.presenter.OnChange(func(n domain.Notification) {
		e.publish(Event{Kind: EventNotification, At: sched.Now(), Notification: n})
	})

	e.activity = NewActivitySimulator(sched, counters, opts.Activity, logger.Named("activity"))
	e.activity.OnEvent(e.publish)

	e.sequencer = NewSequencer(sched, counters, e.presenter, opts.Steps, opts.Run, logger.Named("sequencer"))
	e.sequencer.OnEvent(e.publish)
	return e
}

// Start hydrates the counters from storage and starts background activity.
func (e *Engine) Start(ctx context.Context) domain.Counters {
	loaded := e.counters.Load(ctx)
	e.logger.Info("counters loaded",
		zap.Int("builds", loaded.Builds),
		zap.Int("scans", loaded.Scans),
		zap.Int("deployments", loaded.Deployments))
	e.activity.Start()
	return loaded
}

// Stop halts background activity. An in-flight run still completes if its timers fire.
func (e *Engine) Stop() {
	e.activity.Stop()
}

// Trigger starts a pipeline run unless one is already in progress.
func (e *Engine) Trigger() bool {
	return e.sequencer.Trigger()
}

// Subscribe registers l for every future event.
func (e *Engine) Subscribe(l Listener) {
	e.listeners = append(e.listeners, l)
}

// Snapshot returns the current simulation state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Counters:       e.counters.Snapshot(),
		RunState:       e.sequencer.State(),
		TriggerEnabled: e.sequencer.TriggerEnabled(),
		TriggerLabel:   e.sequencer.TriggerLabel(),
		Run:            e.sequencer.Run(),
		Steps:          e.sequencer.Steps(),
		Notifications:  e.presenter.Active(),
	}
}

// Activity returns the background simulator.
func (e *Engine) Activity() *ActivitySimulator { return e.activity }

// Sequencer returns the run sequencer.
func (e *Engine) Sequencer() *Sequencer { return e.sequencer }

// Presenter returns the notification presenter.
func (e *Engine) Presenter() *notify.Presenter { return e.presenter }

func (e *Engine) publish(ev Event) {
	e.logger.Debug("engine event",
		zap.String("kind", string(ev.Kind)),
		zap.String("run", ev.RunID),
		zap.String("counter", string(ev.Counter)),
		zap.Int("step", ev.StepIndex))
	for _, l := range e.listeners {
		l(ev)
	}
}
