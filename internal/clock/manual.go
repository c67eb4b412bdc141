package clock

import (
	"container/heap"
	"sync"
	"time"
)

// Manual is a virtual clock. Time only moves when Advance or AdvanceTo is called.
// Due timers fire in deadline order; timers sharing a deadline fire in registration order.
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	seq   uint64
	queue timerQueue
}

var _ Scheduler = (*Manual)(nil)

// NewManual creates a virtual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current virtual time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc registers fn to run once the clock reaches Now()+d.
// Negative durations are treated as zero.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTimer{clock: m, deadline: m.now.Add(d), seq: m.seq, fn: fn, index: -1}
	heap.Push(&m.queue, t)
	return t
}

// Advance moves the clock forward by d, firing every timer that falls due.
// It returns the number of callbacks run.
func (m *Manual) Advance(d time.Duration) int {
	return m.AdvanceTo(m.Now().Add(d))
}

// AdvanceTo moves the clock to target, firing every timer with a deadline at or before it.
// The clock is set to each timer's deadline before its callback runs, so callbacks that
// schedule new timers see the correct time. Moving backwards is a no-op.
func (m *Manual) AdvanceTo(target time.Time) int {
	fired := 0
	for {
		m.mu.Lock()
		if len(m.queue) == 0 || m.queue[0].deadline.After(target) {
			if target.After(m.now) {
				m.now = target
			}
			m.mu.Unlock()
			return fired
		}
		t := heap.Pop(&m.queue).(*manualTimer)
		if t.deadline.After(m.now) {
			m.now = t.deadline
		}
		m.mu.Unlock()

		t.fn()
		fired++
	}
}

// Pending returns the number of timers that have not fired or been stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

type manualTimer struct {
	clock    *Manual
	deadline time.Time
	seq      uint64
	fn       func()
	index    int
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.index < 0 {
		return false
	}
	heap.Remove(&t.clock.queue, t.index)
	return true
}

// timerQueue is a min-heap ordered by deadline, then registration sequence.
type timerQueue []*manualTimer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].deadline.Equal(q[j].deadline) {
		return q[i].seq < q[j].seq
	}
	return q[i].deadline.Before(q[j].deadline)
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*manualTimer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
