package tui_test

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waabox/pipelinedeck/internal/domain"
	"github.com/waabox/pipelinedeck/internal/notify"
	"github.com/waabox/pipelinedeck/internal/sim"
	"github.com/waabox/pipelinedeck/internal/store"
	"github.com/waabox/pipelinedeck/internal/tui"
)

func newApp(t *testing.T, initial domain.Counters) (tui.AppModel, *sim.Engine, *tui.Scheduler) {
	t.Helper()
	ctx := context.Background()
	counters := store.NewCounterStore(store.NewMemoryKV(), nil)
	require.NoError(t, counters.Save(ctx, initial))

	sched := tui.NewScheduler()
	opts := sim.DefaultOptions()
	opts.Activity.Rand = func() float64 { return 0 }
	opts.Styles = notify.NewStyles()
	engine := sim.NewEngine(sched, counters, opts, nil)
	engine.Start(ctx)

	return tui.NewAppModel(engine, sched, "waabox/pipelinedeck"), engine, sched
}

func press(m tui.AppModel, key tea.KeyMsg) tui.AppModel {
	updated, _ := m.Update(key)
	return updated.(tui.AppModel)
}

var enterKey = tea.KeyMsg{Type: tea.KeyEnter}

// fireAll delivers every timer pending right now, in registration order.
func fireAll(m tui.AppModel, sched *tui.Scheduler) tui.AppModel {
	for _, id := range sched.Pending() {
		updated, _ := m.Update(tui.TimerFiredMsg{ID: id})
		m = updated.(tui.AppModel)
	}
	return m
}

func TestApp_ViewShowsCountersAndIdleTrigger(t *testing.T) {
	m, _, _ := newApp(t, domain.Counters{Builds: 12, Scans: 7, Deployments: 3})

	view := m.View()

	for _, want := range []string{"waabox/pipelinedeck", "Builds", "Scans", "Deployments", "12", "Checkout", "Deploy", sim.LabelIdle} {
		assert.Contains(t, view, want)
	}
}

func TestApp_EnterStartsRun(t *testing.T) {
	m, engine, _ := newApp(t, domain.Counters{})

	m = press(m, enterKey)

	assert.Contains(t, m.View(), sim.LabelRunning)
	assert.False(t, engine.Snapshot().TriggerEnabled)
}

func TestApp_SpaceAndRAlsoTrigger(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeySpace, Runes: []rune(" ")},
		{Type: tea.KeyRunes, Runes: []rune("r")},
	} {
		m, engine, _ := newApp(t, domain.Counters{})
		press(m, key)
		assert.Equal(t, domain.RunRunning, engine.Snapshot().RunState, "key %q", key.String())
	}
}

func TestApp_RunCompletesEndToEnd(t *testing.T) {
	m, engine, sched := newApp(t, domain.Counters{Builds: 5, Scans: 5, Deployments: 5})

	m = press(m, enterKey)
	m = fireAll(m, sched)

	snap := engine.Snapshot()
	assert.Equal(t, domain.Counters{Builds: 6, Scans: 6, Deployments: 6}, snap.Counters)
	assert.True(t, snap.TriggerEnabled)

	view := m.View()
	assert.Contains(t, view, sim.LabelIdle)
	assert.Contains(t, view, sim.CompletionMessage)
	assert.Contains(t, view, "6")
}

func TestApp_TriggerWhileRunningIsIgnored(t *testing.T) {
	m, engine, sched := newApp(t, domain.Counters{})

	m = press(m, enterKey)
	m = press(m, enterKey)
	fireAll(m, sched)

	assert.Equal(t, domain.Counters{Builds: 1, Scans: 1, Deployments: 1}, engine.Snapshot().Counters)
}

func TestApp_QuitStopsBackgroundActivity(t *testing.T) {
	m, engine, _ := newApp(t, domain.Counters{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, engine.Activity().Running())
}

func TestApp_InitFlushesStartupTimers(t *testing.T) {
	m, _, sched := newApp(t, domain.Counters{})

	assert.NotNil(t, m.Init())
	assert.Len(t, sched.Pending(), 1)
	assert.Nil(t, sched.Flush())
}

func TestApp_QuitTearsDownToastStyles(t *testing.T) {
	m, engine, sched := newApp(t, domain.Counters{})
	m = press(m, enterKey)
	m = fireAll(m, sched)
	require.True(t, engine.Presenter().Styles().Registered())

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	assert.False(t, engine.Presenter().Styles().Registered())
}
