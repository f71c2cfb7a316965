package viz

import "github.com/charmbracelet/lipgloss"

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true).
			MarginBottom(1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(14)

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	GraphStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("49")).
			Padding(1, 0)

	WarnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	StableStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	UnstableStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(2)

	ActiveGainStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)
