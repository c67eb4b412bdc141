package notify

import (
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/waabox/pipelinedeck/internal/domain"
)

var (
	toastGreen = lipgloss.Color("#4CAF50")
	toastText  = lipgloss.Color("#FFFFFF")
)

// SharedStyles is the process-wide toast style definition used by default.
var SharedStyles = NewStyles()

// Styles holds the toast styles. They are built once by Register and reused until Teardown.
type Styles struct {
	mu            sync.Mutex
	registered    bool
	registrations int
	toast         lipgloss.Style
	entering      lipgloss.Style
	exiting       lipgloss.Style
}

// NewStyles returns an unregistered style set.
func NewStyles() *Styles {
	return &Styles{}
}

// Register builds the toast styles if they do not exist yet.
// It reports whether this call created them.
func (s *Styles) Register() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.registered {
		return false
	}
	s.toast = lipgloss.NewStyle().
		Foreground(toastText).
		Background(toastGreen).
		Bold(true).
		Padding(0, 2)
	// Terminal stand-ins for the slide in/out keyframes.
	s.entering = s.toast.Faint(true).MarginLeft(4)
	s.exiting = s.toast.Faint(true).MarginLeft(8)
	s.registered = true
	s.registrations++
	return true
}

// Registered reports whether the styles currently exist.
func (s *Styles) Registered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registered
}

// Registrations counts how many times the styles have been built.
func (s *Styles) Registrations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registrations
}

// Teardown drops the styles; the next Register builds them again.
func (s *Styles) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registered = false
	s.toast = lipgloss.Style{}
	s.entering = lipgloss.Style{}
	s.exiting = lipgloss.Style{}
}

// Render draws n as a toast. Removed notifications render as an empty string.
func (s *Styles) Render(n domain.Notification) string {
	s.Register()
	s.mu.Lock()
	defer s.mu.Unlock()
	switch n.State {
	case domain.NotificationEntering:
		return s.entering.Render("✓ " + n.Message)
	case domain.NotificationExiting:
		return s.exiting.Render("✓ " + n.Message)
	case domain.NotificationRemoved:
		return ""
	default:
		return s.toast.Render("✓ " + n.Message)
	}
}
