package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("99")
	green  = lipgloss.Color("76")
	yellow = lipgloss.Color("214")
	dim    = lipgloss.Color("243")
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent)
	labelStyle    = lipgloss.NewStyle().Foreground(dim)
	valueStyle    = lipgloss.NewStyle().Bold(true)
	activeStyle   = lipgloss.NewStyle().Foreground(green)
	pulseStyle    = lipgloss.NewStyle().Foreground(yellow).Bold(true)
	pendingStyle  = lipgloss.NewStyle().Foreground(dim)
	buttonStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(yellow).Padding(0, 2)
	disabledStyle = lipgloss.NewStyle().Foreground(dim).Background(lipgloss.Color("236")).Padding(0, 2)
)

const separator = "────────────────────────────────────────────────────────────\n"
