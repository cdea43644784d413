package ui

import "github.com/charmbracelet/lipgloss"

var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	CodeStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	StatusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	PausedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	SuccessStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	InfoBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)
