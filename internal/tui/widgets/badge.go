// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Maps campaign states, difficulties, and risk scores to colored badges

package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

// Badge colors
var (
	BadgeOKBg      = lipgloss.Color("#10B981")
	BadgeOKFg      = lipgloss.Color("#FFFFFF")
	BadgeWarnBg    = lipgloss.Color("#FBBF24")
	BadgeWarnFg    = lipgloss.Color("#000000")
	BadgeCritBg    = lipgloss.Color("#EF4444")
	BadgeCritFg    = lipgloss.Color("#FFFFFF")
	BadgeInfoBg    = lipgloss.Color("#3B82F6")
	BadgeInfoFg    = lipgloss.Color("#FFFFFF")
	BadgeNeutralBg = lipgloss.Color("#71717A")
	BadgeNeutralFg = lipgloss.Color("#FFFFFF")
)

// Badge renders a colored status badge
func Badge(text string, level StatusLevel) string {
	var bg, fg lipgloss.Color

	switch level {
	case StatusOK:
		bg, fg = BadgeOKBg, BadgeOKFg
	case StatusWarning:
		bg, fg = BadgeWarnBg, BadgeWarnFg
	case StatusCritical:
		bg, fg = BadgeCritBg, BadgeCritFg
	case StatusInfo:
		bg, fg = BadgeInfoBg, BadgeInfoFg
	default:
		bg, fg = BadgeNeutralBg, BadgeNeutralFg
	}

	style := lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true)

	return style.Render(text)
}

// CampaignStatusBadge maps a campaign status string to a badge
func CampaignStatusBadge(status string) string {
	switch strings.ToLower(status) {
	case "active":
		return Badge("ACTIVE", StatusOK)
	case "scheduled":
		return Badge("SCHEDULED", StatusInfo)
	case "completed":
		return Badge("DONE", StatusNeutral)
	case "draft":
		return Badge("DRAFT", StatusWarning)
	default:
		return Badge(strings.ToUpper(status), StatusNeutral)
	}
}

// DifficultyBadge maps a template difficulty to a badge
func DifficultyBadge(difficulty string) string {
	switch strings.ToLower(difficulty) {
	case "easy":
		return Badge("EASY", StatusOK)
	case "medium":
		return Badge("MEDIUM", StatusWarning)
	case "hard":
		return Badge("HARD", StatusCritical)
	default:
		return Badge(strings.ToUpper(difficulty), StatusNeutral)
	}
}

// RiskLevel returns the label and level for a 0-100 risk score
func RiskLevel(score float64) (string, StatusLevel) {
	if score > 70 {
		return "High", StatusCritical
	}
	if score > 40 {
		return "Medium", StatusWarning
	}
	return "Low", StatusOK
}

// RiskBadge renders a risk badge for a 0-100 risk score
func RiskBadge(score float64) string {
	label, level := RiskLevel(score)
	return Badge(label, level)
}
