// ABOUTME: Campaign commands for the phishguard CLI
// ABOUTME: Lists, inspects, creates, and launches simulated phishing campaigns

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nickigann03/phishguard/internal/client"
	"github.com/nickigann03/phishguard/internal/session"
)

var (
	campaignName       string
	campaignTemplateID string
	campaignTargetType string
	campaignDepartment string
	campaignTargetIDs  []string
)

var campaignsCmd = &cobra.Command{
	Use:   "campaigns",
	Short: "Manage phishing simulation campaigns",
}

var campaignsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List campaigns",
	Run: func(cmd *cobra.Command, args []string) {
		runProtected(runCampaignsList)
	},
}

var campaignsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one campaign",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runProtected(func(ctx context.Context, w io.Writer, apiClient *client.Client) int {
			return runCampaignShow(ctx, w, apiClient, args[0])
		})
	},
}

var campaignsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a campaign",
	Long: `Create a draft campaign from a template.

Example:
  phishguard campaigns create --name "Q1 Drill" --template TEMPLATE_ID --targets department --department Finance`,
	Run: func(cmd *cobra.Command, args []string) {
		runProtected(runCampaignCreate)
	},
}

var campaignsLaunchCmd = &cobra.Command{
	Use:   "launch <id>",
	Short: "Launch a campaign",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runProtected(func(ctx context.Context, w io.Writer, apiClient *client.Client) int {
			return runCampaignLaunch(ctx, w, apiClient, args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(campaignsCmd)
	campaignsCmd.AddCommand(campaignsListCmd)
	campaignsCmd.AddCommand(campaignsShowCmd)
	campaignsCmd.AddCommand(campaignsCreateCmd)
	campaignsCmd.AddCommand(campaignsLaunchCmd)

	campaignsCreateCmd.Flags().StringVar(&campaignName, "name", "", "Campaign name")
	campaignsCreateCmd.Flags().StringVar(&campaignTemplateID, "template", "", "Template ID")
	campaignsCreateCmd.Flags().StringVar(&campaignTargetType, "targets", "all", "Target type: all, department, or custom")
	campaignsCreateCmd.Flags().StringVar(&campaignDepartment, "department", "", "Department (for --targets department)")
	campaignsCreateCmd.Flags().StringSliceVar(&campaignTargetIDs, "target-ids", nil, "User IDs (for --targets custom)")
	campaignsCreateCmd.MarkFlagRequired("name")
	campaignsCreateCmd.MarkFlagRequired("template")
}

// runProtected resolves the session before invoking a protected command.
// Commands never run against an unresolved or signed-out session.
func runProtected(fn func(ctx context.Context, w io.Writer, apiClient *client.Client) int) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sess, apiClient := newSession()
	sess.Resume(ctx)

	if sess.State() != session.StateAuthenticated {
		fmt.Fprintln(os.Stdout, "Error: not signed in. Run `phishguard login` first.")
		os.Exit(2)
	}

	if exitCode := fn(ctx, os.Stdout, apiClient); exitCode != 0 {
		os.Exit(exitCode)
	}
}

// runCampaignsList prints all campaigns
func runCampaignsList(ctx context.Context, w io.Writer, apiClient *client.Client) int {
	campaigns, err := apiClient.Campaigns(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(campaigns, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(campaigns) == 0 {
		fmt.Fprintln(w, "No campaigns yet. Create one with `phishguard campaigns create`.")
		return 0
	}

	fmt.Fprintf(w, "%-36s %-28s %-10s %8s %8s\n", "ID", "NAME", "STATUS", "TARGETS", "CLICKS")
	for _, c := range campaigns {
		fmt.Fprintf(w, "%-36s %-28s %-10s %8d %8d\n",
			c.ID, truncateName(c.Name, 28), c.Status, c.TargetsCount, c.ClicksCount)
	}
	return 0
}

// runCampaignShow prints one campaign
func runCampaignShow(ctx context.Context, w io.Writer, apiClient *client.Client, id string) int {
	campaign, err := apiClient.Campaign(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(campaign, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, formatCampaignHuman(campaign))
	return 0
}

// runCampaignCreate creates a draft campaign from the create flags
func runCampaignCreate(ctx context.Context, w io.Writer, apiClient *client.Client) int {
	input := &client.CreateCampaignRequest{
		Name:       campaignName,
		TemplateID: campaignTemplateID,
		TargetType: campaignTargetType,
		Department: campaignDepartment,
		TargetIDs:  campaignTargetIDs,
	}
	if err := validateCampaignInput(input); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	campaign, err := apiClient.CreateCampaign(ctx, input)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Created campaign %s (%s)\n", campaign.Name, campaign.ID)
	fmt.Fprintf(w, "Launch it with `phishguard campaigns launch %s`\n", campaign.ID)
	return 0
}

// runCampaignLaunch launches a campaign by ID
func runCampaignLaunch(ctx context.Context, w io.Writer, apiClient *client.Client, id string) int {
	resp, err := apiClient.LaunchCampaign(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintln(w, resp.Message)
	return 0
}

// validateCampaignInput checks targeting consistency before the request
func validateCampaignInput(input *client.CreateCampaignRequest) error {
	switch input.TargetType {
	case "all":
		return nil
	case "department":
		if input.Department == "" {
			return fmt.Errorf("--targets department requires --department")
		}
		return nil
	case "custom":
		if len(input.TargetIDs) == 0 {
			return fmt.Errorf("--targets custom requires --target-ids")
		}
		return nil
	default:
		return fmt.Errorf("invalid --targets %q: must be all, department, or custom", input.TargetType)
	}
}

// formatCampaignHuman formats a campaign for human readability
func formatCampaignHuman(c *client.Campaign) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:     %s\n", c.Name)
	fmt.Fprintf(&sb, "ID:       %s\n", c.ID)
	fmt.Fprintf(&sb, "Status:   %s\n", c.Status)
	fmt.Fprintf(&sb, "Template: %s\n", c.TemplateID)
	fmt.Fprintf(&sb, "Targets:  %d\n", c.TargetsCount)
	fmt.Fprintf(&sb, "Clicks:   %d\n", c.ClicksCount)
	fmt.Fprintf(&sb, "Created:  %s", c.CreatedAt)
	if c.StartedAt != "" {
		fmt.Fprintf(&sb, "\nStarted:  %s", c.StartedAt)
	}
	if c.CompletedAt != "" {
		fmt.Fprintf(&sb, "\nCompleted: %s", c.CompletedAt)
	}
	return sb.String()
}

// truncateName shortens a name to fit a column
func truncateName(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
