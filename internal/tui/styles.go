package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/marcosgabbardo/irpf-analyzer/internal/domain"
)

var (
	// Colors
	ColorPrimary = lipgloss.Color("#7D56F4")
	ColorMuted   = lipgloss.Color("#626262")
	ColorBorder  = lipgloss.Color("#444444")

	ColorLow      = lipgloss.Color("#04B575")
	ColorMedium   = lipgloss.Color("#FFCC00")
	ColorHigh     = lipgloss.Color("#FF8800")
	ColorCritical = lipgloss.Color("#FF4444")

	// Base styles
	AppStyle = lipgloss.NewStyle().Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Underline(true).
			Padding(0, 1)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCritical)

	ContentStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)
)

// RiskStyle returns the style used to render a risk level.
func RiskStyle(level domain.RiskLevel) lipgloss.Style {
	switch level {
	case domain.RiskCritical:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorCritical)
	case domain.RiskHigh:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorHigh)
	case domain.RiskMedium:
		return lipgloss.NewStyle().Foreground(ColorMedium)
	default:
		return lipgloss.NewStyle().Foreground(ColorLow)
	}
}
