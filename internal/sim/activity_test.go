package sim_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/waabox/pipelinedeck/internal/clock"
	"github.com/waabox/pipelinedeck/internal/domain"
	"github.com/waabox/pipelinedeck/internal/sim"
)

func newActivity(t *testing.T, r func() float64) (*sim.ActivitySimulator, *clock.Manual, sim.CounterStore) {
	t.Helper()
	c := clock.NewManual(epoch)
	counters, _ := newCounters(t, domain.Counters{})
	a := sim.NewActivitySimulator(c, counters, sim.ActivityOptions{
		Period:     30 * time.Second,
		Thresholds: sim.DefaultThresholds(),
		Rand:       r,
	}, nil)
	return a, c, counters
}

func TestActivity_ThresholdIsStrict(t *testing.T) {
	a, _, counters := newActivity(t, sequenceRand(0.70, 0, 0))

	bumped := a.Tick(context.Background())

	assert.Empty(t, bumped)
	assert.Equal(t, 0, counters.Snapshot().Builds)
}

func TestActivity_AboveThresholdIncrements(t *testing.T) {
	a, _, counters := newActivity(t, sequenceRand(0.71, 0, 0))

	bumped := a.Tick(context.Background())

	assert.Equal(t, []domain.CounterName{domain.CounterBuilds}, bumped)
	assert.Equal(t, domain.Counters{Builds: 1}, counters.Snapshot())
}

func TestActivity_TrialsAreIndependent(t *testing.T) {
	tests := []struct {
		name  string
		draws []float64
		want  domain.Counters
	}{
		{name: "none", draws: []float64{0.1, 0.1, 0.1}, want: domain.Counters{}},
		{name: "scans only", draws: []float64{0.5, 0.81, 0.5}, want: domain.Counters{Scans: 1}},
		{name: "deployments boundary", draws: []float64{0, 0, 0.90}, want: domain.Counters{}},
		{name: "deployments only", draws: []float64{0, 0, 0.91}, want: domain.Counters{Deployments: 1}},
		{name: "all", draws: []float64{0.99, 0.99, 0.99}, want: domain.Counters{Builds: 1, Scans: 1, Deployments: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _, counters := newActivity(t, sequenceRand(tt.draws...))
			a.Tick(context.Background())
			assert.Equal(t, tt.want, counters.Snapshot())
		})
	}
}

func TestActivity_TicksOnPeriod(t *testing.T) {
	a, c, counters := newActivity(t, sequenceRand(0.99))
	a.Start()

	c.Advance(30*time.Second - time.Millisecond)
	assert.Equal(t, domain.Counters{}, counters.Snapshot())

	c.Advance(time.Millisecond)
	assert.Equal(t, domain.Counters{Builds: 1, Scans: 1, Deployments: 1}, counters.Snapshot())

	c.Advance(60 * time.Second)
	assert.Equal(t, domain.Counters{Builds: 3, Scans: 3, Deployments: 3}, counters.Snapshot())
}

func TestActivity_StopHaltsTicks(t *testing.T) {
	a, c, counters := newActivity(t, sequenceRand(0.99))
	a.Start()
	c.Advance(30 * time.Second)

	a.Stop()
	c.Advance(5 * time.Minute)

	assert.False(t, a.Running())
	assert.Equal(t, 1, counters.Snapshot().Builds)
	assert.Equal(t, 0, c.Pending())
}

func TestActivity_StartTwiceSchedulesOnce(t *testing.T) {
	a, c, _ := newActivity(t, never)
	a.Start()
	a.Start()

	assert.Equal(t, 1, c.Pending())
}
