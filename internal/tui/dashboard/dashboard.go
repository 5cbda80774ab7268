// ABOUTME: Dashboard component displaying campaign analytics
// ABOUTME: Shows summary metrics, department risk, click trend, and recent campaigns

package dashboard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nickigann03/phishguard/internal/client"
	"github.com/nickigann03/phishguard/internal/tui/styles"
	"github.com/nickigann03/phishguard/internal/tui/widgets"
)

// Dashboard displays the analytics overview
type Dashboard struct {
	data   *client.DashboardData
	width  int
	height int
}

// New creates a new dashboard with analytics data
func New(data *client.DashboardData, width, height int) *Dashboard {
	return &Dashboard{
		data:   data,
		width:  width,
		height: height,
	}
}

// Update refreshes the dashboard with new analytics data
func (d *Dashboard) Update(data *client.DashboardData) {
	d.data = data
}

// SetSize updates the dashboard dimensions
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the dashboard
func (d *Dashboard) View() string {
	if d.data == nil {
		return styles.Panel.Width(d.width).Render("Loading analytics...")
	}

	var sb strings.Builder
	s := d.data.Summary

	sb.WriteString(styles.Title.Render("Overview"))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Campaigns: %s (%d active)\n",
		styles.ValueStyle.Render(fmt.Sprintf("%d", s.TotalCampaigns)), s.ActiveCampaigns))
	sb.WriteString(fmt.Sprintf("Emails sent: %s\n",
		styles.ValueStyle.Render(fmt.Sprintf("%d", s.TotalEmailsSent))))
	sb.WriteString(fmt.Sprintf("Users trained: %s\n",
		styles.ValueStyle.Render(fmt.Sprintf("%d", s.UsersTrained))))
	sb.WriteString("\n")

	// Click rate with trend sparkline
	sb.WriteString(fmt.Sprintf("Click rate: %s", styles.ValueStyle.Render(fmt.Sprintf("%.1f%%", s.OverallClickRate))))
	if spark := d.clickTrendSparkline(); spark != "" {
		sb.WriteString("  " + spark)
	}
	sb.WriteString("\n\n")

	// Risk score
	sb.WriteString(fmt.Sprintf("Risk score %s %.0f/100\n", widgets.RiskBadge(s.AvgRiskScore), s.AvgRiskScore))
	sb.WriteString(styles.ProgressBar(s.AvgRiskScore, 20))
	sb.WriteString("\n\n")

	// Department risk, worst first
	if len(d.data.RiskByDepartment) > 0 {
		sb.WriteString("Risk by department\n")
		for _, dept := range sortedDepartments(d.data.RiskByDepartment) {
			score := d.data.RiskByDepartment[dept]
			sb.WriteString(fmt.Sprintf("  %-13s %s %3.0f\n", truncate(dept, 13), styles.ProgressBar(score, 12), score))
		}
		sb.WriteString("\n")
	}

	if len(d.data.RecentCampaigns) > 0 {
		sb.WriteString("Recent campaigns\n")
		for _, c := range d.data.RecentCampaigns {
			sb.WriteString(fmt.Sprintf("  %s %s\n", widgets.CampaignStatusBadge(c.Status), truncate(c.Name, d.nameWidth())))
		}
	}

	return lipgloss.NewStyle().
		Width(d.width).
		Height(d.height).
		Render(sb.String())
}

// clickTrendSparkline renders the click trend as a compact sparkline
func (d *Dashboard) clickTrendSparkline() string {
	if len(d.data.ClickTrend) == 0 {
		return ""
	}
	values := make([]float64, len(d.data.ClickTrend))
	for i, p := range d.data.ClickTrend {
		values[i] = float64(p.Clicks)
	}
	width := len(values)
	if width > 16 {
		width = 16
	}
	return widgets.Sparkline(values, width, styles.Primary)
}

// nameWidth returns the room left for campaign names after the badge
func (d *Dashboard) nameWidth() int {
	w := d.width - 14
	if w < 10 {
		w = 10
	}
	return w
}

// sortedDepartments orders departments by descending risk
func sortedDepartments(risk map[string]float64) []string {
	depts := make([]string, 0, len(risk))
	for dept := range risk {
		depts = append(depts, dept)
	}
	sort.Slice(depts, func(i, j int) bool {
		if risk[depts[i]] != risk[depts[j]] {
			return risk[depts[i]] > risk[depts[j]]
		}
		return depts[i] < depts[j]
	})
	return depts
}

// truncate shortens a string to maxLen with ellipsis if needed
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
