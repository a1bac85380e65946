// Package tui provides shared terminal UI styles for the scribe CLI.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/progit1914/TranscriptionSaaS-App/internal/api"
)

// Color palette
var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#5A67D8", Dark: "#7C3AED"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#38A169", Dark: "#48BB78"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#D69E2E", Dark: "#F6E05E"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#E53E3E", Dark: "#FC8181"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#718096", Dark: "#A0AEC0"}
	ColorText    = lipgloss.AdaptiveColor{Light: "#1A202C", Dark: "#F7FAFC"}
	ColorBorder  = lipgloss.AdaptiveColor{Light: "#CBD5E0", Dark: "#4A5568"}
)

// Base styles
var (
	// TitleStyle for headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	// LabelStyle for key names in key-value pairs
	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorMuted)

	// ValueStyle for values
	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SpinnerStyle for in-progress text
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	// PanelStyle for bordered panels
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)
)

// StatusStyle returns the style used to render a job status.
func StatusStyle(s api.Status) lipgloss.Style {
	switch s {
	case api.StatusCompleted:
		return SuccessStyle
	case api.StatusFailed:
		return ErrorStyle
	case api.StatusProcessing:
		return WarningStyle
	default:
		return MutedStyle
	}
}

// StatusGlyph returns the indicator dot for a job status.
func StatusGlyph(s api.Status) string {
	switch s {
	case api.StatusCompleted:
		return SuccessStyle.Render("●")
	case api.StatusFailed:
		return ErrorStyle.Render("✗")
	case api.StatusProcessing:
		return WarningStyle.Render("●")
	default:
		return MutedStyle.Render("○")
	}
}

// IsTTY returns true if stdout is a terminal
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// FormatKeyValue formats a key-value pair
func FormatKeyValue(key, value string) string {
	return LabelStyle.Render(key+":") + " " + ValueStyle.Render(value)
}
