package notify

import (
	"time"

	"github.com/google/uuid"

	"github.com/waabox/pipelinedeck/internal/clock"
	"github.com/waabox/pipelinedeck/internal/domain"
)

// Timings controls how long a notification stays on screen.
type Timings struct {
	Visible time.Duration
	Exit    time.Duration
}

// DefaultTimings keeps a toast visible for 3s and spends 300ms on its exit.
func DefaultTimings() Timings {
	return Timings{Visible: 3 * time.Second, Exit: 300 * time.Millisecond}
}

// Listener is called on every notification state change.
type Listener func(domain.Notification)

// Presenter shows transient notifications. Each one owns its timers; nothing is queued or
// de-duplicated. It must only be used from scheduler callbacks or the scheduler's owner.
type Presenter struct {
	sched    clock.Scheduler
	styles   *Styles
	timings  Timings
	listener Listener
	active   []*domain.Notification
}

// NewPresenter creates a presenter. A nil styles uses SharedStyles.
func NewPresenter(sched clock.Scheduler, styles *Styles, timings Timings) *Presenter {
	if styles == nil {
		styles = SharedStyles
	}
	return &Presenter{sched: sched, styles: styles, timings: timings}
}

// OnChange sets the listener for state transitions.
func (p *Presenter) OnChange(l Listener) {
	p.listener = l
}

// Styles returns the style set used to render toasts.
func (p *Presenter) Styles() *Styles {
	return p.styles
}

// Show displays message. The notification becomes visible at once, starts exiting after
// Timings.Visible and is removed Timings.Exit later.
func (p *Presenter) Show(message string) domain.Notification {
	p.styles.Register()

	n := &domain.Notification{
		ID:        uuid.NewString(),
		Message:   message,
		CreatedAt: p.sched.Now(),
		State:     domain.NotificationEntering,
	}
	p.active = append(p.active, n)
	p.emit(*n)
	p.transition(n, domain.NotificationVisible)

	p.sched.AfterFunc(p.timings.Visible, func() {
		p.transition(n, domain.NotificationExiting)
		p.sched.AfterFunc(p.timings.Exit, func() {
			p.transition(n, domain.NotificationRemoved)
			p.remove(n.ID)
		})
	})
	return *n
}

// Active returns every notification not yet removed, oldest first.
func (p *Presenter) Active() []domain.Notification {
	out := make([]domain.Notification, len(p.active))
	for i, n := range p.active {
		out[i] = *n
	}
	return out
}

func (p *Presenter) transition(n *domain.Notification, state domain.NotificationState) {
	n.State = state
	p.emit(*n)
}

func (p *Presenter) remove(id string) {
	for i, n := range p.active {
		if n.ID == id {
			p.active = append(p.active[:i], p.active[i+1:]...)
			return
		}
	}
}

func (p *Presenter) emit(n domain.Notification) {
	if p.listener != nil {
		p.listener(n)
	}
}
