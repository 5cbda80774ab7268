// ABOUTME: Dashboard command for the phishguard CLI
// ABOUTME: Shows campaign analytics from the backend in text or JSON

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nickigann03/phishguard/internal/client"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show campaign analytics",
	Long:  `Display the analytics dashboard: campaign totals, click rates, department risk, and recent campaigns.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runDashboard(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

// runDashboard fetches and prints the analytics dashboard
func runDashboard(ctx context.Context, w io.Writer) int {
	sess, apiClient := newSession()
	sess.Resume(ctx)

	if !sess.IsAuthenticated() {
		fmt.Fprintln(w, "Error: not signed in. Run `phishguard login` first.")
		return 2
	}

	data, err := apiClient.Dashboard(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatDashboardJSON(data))
	} else {
		fmt.Fprintln(w, formatDashboardHuman(data))
	}
	return 0
}

// formatDashboardHuman formats the dashboard for human readability
func formatDashboardHuman(data *client.DashboardData) string {
	var sb strings.Builder

	s := data.Summary
	fmt.Fprintf(&sb, "Campaigns:    %d total, %d active\n", s.TotalCampaigns, s.ActiveCampaigns)
	fmt.Fprintf(&sb, "Emails sent:  %d\n", s.TotalEmailsSent)
	fmt.Fprintf(&sb, "Clicks:       %d (%.1f%% click rate)\n", s.TotalClicks, s.OverallClickRate)
	fmt.Fprintf(&sb, "Trained:      %d users\n", s.UsersTrained)
	fmt.Fprintf(&sb, "Risk score:   %.0f/100\n", s.AvgRiskScore)

	if len(data.RiskByDepartment) > 0 {
		sb.WriteString("\nRisk by department:\n")
		depts := make([]string, 0, len(data.RiskByDepartment))
		for dept := range data.RiskByDepartment {
			depts = append(depts, dept)
		}
		sort.Strings(depts)
		for _, dept := range depts {
			fmt.Fprintf(&sb, "  %-14s %.0f\n", dept, data.RiskByDepartment[dept])
		}
	}

	if len(data.RecentCampaigns) > 0 {
		sb.WriteString("\nRecent campaigns:\n")
		for _, c := range data.RecentCampaigns {
			fmt.Fprintf(&sb, "  %-32s %-10s %4d targets  %.1f%% clicked\n",
				c.Name, c.Status, c.TargetsCount, c.ClickRate)
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// formatDashboardJSON formats the dashboard response as JSON
func formatDashboardJSON(data *client.DashboardData) string {
	out, _ := json.MarshalIndent(data, "", "  ")
	return string(out)
}
