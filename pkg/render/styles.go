package render

import "github.com/charmbracelet/lipgloss"

var (
	colorTeal    = lipgloss.Color("#2CD7C7")
	colorTealDim = lipgloss.Color("#16858E")
	colorWarning = lipgloss.Color("#F4D03F")
	colorError   = lipgloss.Color("#E74C3C")
	colorMuted   = lipgloss.Color("#2C4A54")
)

// Styles controls how report sections are decorated.
type Styles struct {
	Title     lipgloss.Style
	Heading   lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
	Highlight lipgloss.Style
}

// DefaultStyles returns the colored terminal palette. lipgloss drops the
// colors on its own when stdout is not a terminal.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(colorTeal),
		Heading:   lipgloss.NewStyle().Bold(true).Foreground(colorTealDim),
		Success:   lipgloss.NewStyle().Foreground(colorTeal),
		Warning:   lipgloss.NewStyle().Foreground(colorWarning),
		Error:     lipgloss.NewStyle().Foreground(colorError),
		Muted:     lipgloss.NewStyle().Foreground(colorMuted),
		Highlight: lipgloss.NewStyle().Bold(true).Foreground(colorTeal),
	}
}

// PlainStyles leaves all text undecorated.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:     plain,
		Heading:   plain,
		Success:   plain,
		Warning:   plain,
		Error:     plain,
		Muted:     plain,
		Highlight: plain,
	}
}
