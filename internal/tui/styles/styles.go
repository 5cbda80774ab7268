// ABOUTME: Shared lipgloss styles for consistent TUI appearance
// ABOUTME: Defines colors, borders, and text styles used across components

package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors - Core palette (matches the PhishGuard web theme)
	Primary   = lipgloss.Color("#F97316") // Orange
	Secondary = lipgloss.Color("#10B981") // Green
	Warning   = lipgloss.Color("#FBBF24") // Amber
	Danger    = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#71717A") // Gray
	Text      = lipgloss.Color("#FAFAFA") // Light
	BgDark    = lipgloss.Color("#0B0E14") // Near-black

	// Colors - Extended palette
	Accent  = lipgloss.Color("#FB923C") // Lighter orange for highlights
	Surface = lipgloss.Color("#1C212B") // Elevated surface background
	Info    = lipgloss.Color("#3B82F6") // Blue - informational

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			MarginBottom(1)

	// Status indicators
	StatusOK = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	StatusWarning = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	StatusCritical = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	// Panels
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(1, 2)

	ActivePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	// Help text
	Help = lipgloss.NewStyle().
		Foreground(Muted).
		MarginTop(1)

	// Key style for keyboard shortcuts
	KeyStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	// Value style for emphasized data
	ValueStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	// Error text inline in forms and panels
	ErrorStyle = lipgloss.NewStyle().
			Foreground(Danger)
)

// ProgressBar returns a styled progress bar string. Higher percentages
// shift the color toward danger, which matches risk-score semantics.
func ProgressBar(percent float64, width int) string {
	filled := int(percent / 100.0 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}

	color := Secondary
	if percent > 40 {
		color = Warning
	}
	if percent > 70 {
		color = Danger
	}

	return lipgloss.NewStyle().Foreground(color).Render(bar)
}
