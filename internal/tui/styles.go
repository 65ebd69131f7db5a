package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	doneStyle    = lipgloss.NewStyle().Foreground(colorSuccess)
	missingStyle = lipgloss.NewStyle().Foreground(colorMuted)
	userStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorWarning)
	aiStyle      = lipgloss.NewStyle().Foreground(colorAccent)
	helpStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	panelStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
)
