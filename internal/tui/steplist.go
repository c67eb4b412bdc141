package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/waabox/pipelinedeck/internal/domain"
)

// StepListModel is an immutable model for the pipeline steps panel.
type StepListModel struct {
	steps  []domain.Step
	cursor int
}

// NewStepListModel creates a step list model.
func NewStepListModel(steps []domain.Step) StepListModel {
	return StepListModel{steps: steps, cursor: 0}
}

// WithSteps returns a new model showing steps, keeping the cursor in range.
func (m StepListModel) WithSteps(steps []domain.Step) StepListModel {
	m.steps = steps
	if m.cursor > len(steps)-1 {
		m.cursor = len(steps) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m
}

// MoveDown returns a new model with the cursor moved down by one.
func (m StepListModel) MoveDown() StepListModel {
	if m.cursor < len(m.steps)-1 {
		m.cursor++
	}
	return m
}

// MoveUp returns a new model with the cursor moved up by one.
func (m StepListModel) MoveUp() StepListModel {
	if m.cursor > 0 {
		m.cursor--
	}
	return m
}

// Cursor returns the current cursor position.
func (m StepListModel) Cursor() int {
	return m.cursor
}

// Steps returns the full step slice.
func (m StepListModel) Steps() []domain.Step {
	return m.steps
}

// View renders the step list as a string with cursor indicators.
// Pulsing steps are emphasised; active steps stay highlighted after their pulse.
func (m StepListModel) View() string {
	if len(m.steps) == 0 {
		return "No steps configured."
	}
	var sb strings.Builder
	for i, s := range m.steps {
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}
		line := stepIcon(s) + " " + truncate(s.Name, 25)
		sb.WriteString(prefix + stepStyle(s).Render(line) + "\n")
	}
	return sb.String()
}

func stepIcon(s domain.Step) string {
	switch {
	case s.Pulsing:
		return "◉"
	case s.State == domain.StepActive:
		return "●"
	default:
		return "○"
	}
}

func stepStyle(s domain.Step) lipgloss.Style {
	switch {
	case s.Pulsing:
		return pulseStyle
	case s.State == domain.StepActive:
		return activeStyle
	default:
		return pendingStyle
	}
}
