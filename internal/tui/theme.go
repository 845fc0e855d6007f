package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette.
var (
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#A78BFA") // Light purple
	colorSuccess   = lipgloss.Color("#10B981") // Green (installed)
	colorDanger    = lipgloss.Color("#EF4444") // Red (errors)
	colorMuted     = lipgloss.Color("#6B7280") // Gray
	colorWarning   = lipgloss.Color("#F59E0B") // Amber
)

// Shared styles used across TUI views.
var (
	// Header bar: "modrow  col1 · 1.20.4 · fabric"
	logoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorPrimary).
			Padding(0, 1)

	headerPathStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F3F4F6")).
			Padding(0, 1)

	// Muted text (skip reasons, secondary info).
	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Installed / success indicator.
	installedStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	// Replaced package indicator.
	replacedStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	// Error text.
	errorStyle = lipgloss.NewStyle().
			Foreground(colorDanger)

	// Help text at the bottom.
	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Spinner style.
	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)
)

// StatusLine renders a one-line, colored summary of a package outcome.
// Used by both the TUI and the plain CLI output.
func StatusLine(label, name, detail string, kind LineKind) string {
	var style lipgloss.Style
	switch kind {
	case LineInstalled:
		style = installedStyle
	case LineReplaced:
		style = replacedStyle
	case LineError:
		style = errorStyle
	default:
		style = mutedStyle
	}
	line := style.Render(label) + " " + name
	if detail != "" {
		line += " " + mutedStyle.Render(detail)
	}
	return line
}

// LineKind selects the color of a StatusLine.
type LineKind int

const (
	LineSkipped LineKind = iota
	LineInstalled
	LineReplaced
	LineError
)
