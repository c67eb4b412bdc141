package tui

import (
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/waabox/pipelinedeck/internal/clock"
)

// TimerFiredMsg is sent when a callback registered with Scheduler is due.
// It is exported so that tests can inject it directly into AppModel.Update.
type TimerFiredMsg struct {
	ID uint64
}

// Scheduler turns engine timers into Bubbletea tick commands. Callbacks run inside
// AppModel.Update, which makes the Bubbletea update loop the engine's single event loop.
// It must only be used from that loop (or before the program starts).
type Scheduler struct {
	now     func() time.Time
	nextID  uint64
	timers  map[uint64]func()
	pending []tea.Cmd
}

var _ clock.Scheduler = (*Scheduler)(nil)

// NewScheduler creates a scheduler backed by the wall clock.
func NewScheduler() *Scheduler {
	return &Scheduler{now: time.Now, timers: make(map[uint64]func())}
}

// Now returns the wall-clock time.
func (s *Scheduler) Now() time.Time {
	return s.now()
}

// AfterFunc registers fn and queues a tick command for it. The command is handed to
// Bubbletea by the next Flush.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) clock.Timer {
	s.nextID++
	id := s.nextID
	s.timers[id] = fn
	s.pending = append(s.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return TimerFiredMsg{ID: id}
	}))
	return &teaTimer{sched: s, id: id}
}

// Flush returns every tick command queued since the last Flush, or nil if there are none.
func (s *Scheduler) Flush() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// Fire runs the callback for id. It reports false if the timer already fired or was stopped.
func (s *Scheduler) Fire(id uint64) bool {
	fn, ok := s.timers[id]
	if !ok {
		return false
	}
	delete(s.timers, id)
	fn()
	return true
}

// Pending returns the IDs of timers that have not fired, in registration order.
func (s *Scheduler) Pending() []uint64 {
	ids := make([]uint64, 0, len(s.timers))
	for id := range s.timers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type teaTimer struct {
	sched *Scheduler
	id    uint64
}

func (t *teaTimer) Stop() bool {
	if _, ok := t.sched.timers[t.id]; !ok {
		return false
	}
	delete(t.sched.timers, t.id)
	return true
}
