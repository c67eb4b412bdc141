package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/waabox/pipelinedeck/internal/notify"
	"github.com/waabox/pipelinedeck/internal/sim"
)

// AppModel is the root Bubbletea model for pipelinedeck.
type AppModel struct {
	engine  *sim.Engine
	sched   *Scheduler
	styles  *notify.Styles
	project string
	// Rendered state, refreshed after every message.
	snapshot sim.Snapshot
	steps    StepListModel
	width    int
	height   int
}

// NewAppModel creates the root application model. The engine must be driven by sched.
func NewAppModel(engine *sim.Engine, sched *Scheduler, project string) AppModel {
	m := AppModel{
		engine:  engine,
		sched:   sched,
		styles:  engine.Presenter().Styles(),
		project: project,
	}
	return m.refresh()
}

// Init hands Bubbletea the timers registered before the program started.
func (m AppModel) Init() tea.Cmd {
	return m.sched.Flush()
}

// Update handles all incoming messages and key events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case TimerFiredMsg:
		m.sched.Fire(msg.ID)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.engine.Stop()
			m.styles.Teardown()
			return m, tea.Quit
		case "enter", " ", "r":
			m.engine.Trigger()
		case "down":
			m.steps = m.steps.MoveDown()
		case "up":
			m.steps = m.steps.MoveUp()
		}
	}
	m = m.refresh()
	return m, m.sched.Flush()
}

func (m AppModel) refresh() AppModel {
	m.snapshot = m.engine.Snapshot()
	m.steps = m.steps.WithSteps(m.snapshot.Steps)
	return m
}

// View renders the full TUI.
func (m AppModel) View() string {
	header := " " + titleStyle.Render("pipelinedeck") + " | " + m.project + "\n"

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString(separator)
	sb.WriteString(renderCounters(m.snapshot.Counters))
	sb.WriteString(separator)
	sb.WriteString(" Pipeline\n")
	sb.WriteString(m.steps.View())
	sb.WriteString("\n")
	sb.WriteString(separator)
	sb.WriteString(" " + m.renderTrigger() + "\n")
	for _, n := range m.snapshot.Notifications {
		if toast := m.styles.Render(n); toast != "" {
			sb.WriteString("\n " + toast + "\n")
		}
	}
	sb.WriteString(separator)
	sb.WriteString(m.renderFooter())
	return sb.String()
}

func (m AppModel) renderTrigger() string {
	label := m.snapshot.TriggerLabel
	if !m.snapshot.TriggerEnabled {
		return disabledStyle.Render(label)
	}
	return buttonStyle.Render(label)
}

func (m AppModel) renderFooter() string {
	if !m.snapshot.TriggerEnabled {
		return fmt.Sprintf(" run %s in progress   ↑/↓: navigate   q: quit\n", shortID(m.snapshot.Run.ID))
	}
	return " enter/space/r: run pipeline   ↑/↓: navigate   q: quit\n"
}

// Run starts the Bubbletea program and blocks until the user quits.
func Run(engine *sim.Engine, sched *Scheduler, project string) error {
	p := tea.NewProgram(NewAppModel(engine, sched, project), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
