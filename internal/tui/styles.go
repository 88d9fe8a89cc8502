package tui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - titles
	ColorHighlight = "205" // Magenta - selected card, active sort
	ColorDanger    = "196" // Red - errors, delete confirmation
	ColorMuted     = "241" // Gray - hints
	ColorText      = "252" // Light gray - normal text
)

// Styles contains shared style definitions used across screens.
var Styles = struct {
	Title        lipgloss.Style
	TitleWarning lipgloss.Style

	Card         lipgloss.Style
	CardSelected lipgloss.Style
	Box          lipgloss.Style
	BoxDanger    lipgloss.Style

	SortActive lipgloss.Style
	SortIdle   lipgloss.Style

	Label  lipgloss.Style
	Normal lipgloss.Style
	Hint   lipgloss.Style
	Empty  lipgloss.Style
	Error  lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	TitleWarning: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorDanger)),
	Card: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)).
		Padding(0, 1),
	CardSelected: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(1, 2).
		Margin(1),
	BoxDanger: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorDanger)).
		Padding(1, 2).
		Margin(1),
	SortActive: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorHighlight)),
	SortIdle: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Label: lipgloss.NewStyle().
		Width(12).
		Foreground(lipgloss.Color(ColorMuted)),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)),
}
