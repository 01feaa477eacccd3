package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	accentCyan   = lipgloss.Color("#00FFFF")
	accentYellow = lipgloss.Color("#FFFF00")
	accentGreen  = lipgloss.Color("#39FF14")
	accentRed    = lipgloss.Color("#FF4040")
	dimWhite     = lipgloss.Color("#B0B0B0")

	titleStyle = lipgloss.NewStyle().
			Foreground(accentCyan).
			Bold(true).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentCyan).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(accentYellow).
			Bold(true)

	itemStyle = lipgloss.NewStyle().
			Foreground(dimWhite)

	urlStyle = lipgloss.NewStyle().
			Foreground(accentCyan).
			Faint(true)

	attributionStyle = lipgloss.NewStyle().
				Foreground(dimWhite).
				Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(dimWhite).
			Faint(true)

	confirmStyle = lipgloss.NewStyle().
			Foreground(accentGreen).
			Bold(true)

	cancelStyle = lipgloss.NewStyle().
			Foreground(accentRed)
)
