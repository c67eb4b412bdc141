package sim

import (
	"context"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/waabox/pipelinedeck/internal/clock"
	"github.com/waabox/pipelinedeck/internal/domain"
)

// DefaultActivityPeriod is the interval between background activity ticks.
const DefaultActivityPeriod = 30 * time.Second

// Thresholds are the values a random draw must strictly exceed for a counter to increment.
type Thresholds struct {
	Builds      float64
	Scans       float64
	Deployments float64
}

// DefaultThresholds gives builds a 30%, scans a 20% and deployments a 10% chance per tick.
func DefaultThresholds() Thresholds {
	return Thresholds{Builds: 0.7, Scans: 0.8, Deployments: 0.9}
}

// For returns the threshold of the named counter.
func (t Thresholds) For(name domain.CounterName) float64 {
	switch name {
	case domain.CounterBuilds:
		return t.Builds
	case domain.CounterScans:
		return t.Scans
	default:
		return t.Deployments
	}
}

// ActivityOptions configures an ActivitySimulator.
type ActivityOptions struct {
	Period     time.Duration
	Thresholds Thresholds
	// Rand returns a uniform value in [0,1). Defaults to math/rand/v2.
	Rand func() float64
}

// ActivitySimulator bumps counters at random on a fixed period to imply live pipeline traffic.
type ActivitySimulator struct {
	sched      clock.Scheduler
	counters   CounterStore
	period     time.Duration
	thresholds Thresholds
	rand       func() float64
	logger     *zap.Logger
	emit       Listener

	timer   clock.Timer
	running bool
}

// NewActivitySimulator creates a stopped simulator. A non-positive period uses DefaultActivityPeriod.
func NewActivitySimulator(sched clock.Scheduler, counters CounterStore, opts ActivityOptions, logger *zap.Logger) *ActivitySimulator {
	if opts.Period <= 0 {
		opts.Period = DefaultActivityPeriod
	}
	if opts.Rand == nil {
		opts.Rand = rand.Float64
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivitySimulator{
		sched:      sched,
		counters:   counters,
		period:     opts.Period,
		thresholds: opts.Thresholds,
		rand:       opts.Rand,
		logger:     logger,
		emit:       func(Event) {},
	}
}

// OnEvent sets the listener for counter changes.
func (a *ActivitySimulator) OnEvent(l Listener) {
	a.emit = l
}

// Start schedules the repeating tick. Calling Start on a running simulator does nothing.
func (a *ActivitySimulator) Start() {
	if a.running {
		return
	}
	a.running = true
	a.schedule()
}

// Stop cancels the pending tick. No further ticks run until Start is called again.
func (a *ActivitySimulator) Stop() {
	a.running = false
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

// Running reports whether ticks are scheduled.
func (a *ActivitySimulator) Running() bool {
	return a.running
}

// Tick runs one independent trial per counter and returns the counters it incremented.
func (a *ActivitySimulator) Tick(ctx context.Context) []domain.CounterName {
	var bumped []domain.CounterName
	for _, name := range domain.CounterNames {
		if a.rand() <= a.thresholds.For(name) {
			continue
		}
		if _, err := a.counters.Increment(ctx, name); err != nil {
			a.logger.Warn("persisting background increment failed",
				zap.String("counter", string(name)), zap.Error(err))
		}
		bumped = append(bumped, name)
		a.emit(Event{
			Kind:     EventCountersChanged,
			At:       a.sched.Now(),
			Counter:  name,
			Counters: a.counters.Snapshot(),
		})
	}
	a.logger.Debug("activity tick", zap.Int("incremented", len(bumped)))
	return bumped
}

func (a *ActivitySimulator) schedule() {
	a.timer = a.sched.AfterFunc(a.period, func() {
		if !a.running {
			return
		}
		a.Tick(context.Background())
		if a.running {
			a.schedule()
		}
	})
}
