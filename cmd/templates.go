// ABOUTME: Template commands for the phishguard CLI
// ABOUTME: Lists and inspects phishing email templates with optional filters

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nickigann03/phishguard/internal/client"
)

var (
	templateCountry  string
	templateCategory string
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Browse phishing email templates",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates",
	Long: `List available templates, optionally filtered by country or category.

Filters left unset are omitted from the request entirely.`,
	Run: func(cmd *cobra.Command, args []string) {
		runProtected(runTemplatesList)
	},
}

var templatesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one template",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runProtected(func(ctx context.Context, w io.Writer, apiClient *client.Client) int {
			return runTemplateShow(ctx, w, apiClient, args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesShowCmd)

	templatesListCmd.Flags().StringVar(&templateCountry, "country", "", "Filter by country code (e.g. MY, SG)")
	templatesListCmd.Flags().StringVar(&templateCategory, "category", "", "Filter by category (e.g. banking, corporate)")
}

// runTemplatesList prints templates matching the filters
func runTemplatesList(ctx context.Context, w io.Writer, apiClient *client.Client) int {
	templates, err := apiClient.Templates(ctx, client.TemplateFilters{
		Country:  templateCountry,
		Category: templateCategory,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(templates, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(templates) == 0 {
		fmt.Fprintln(w, "No templates match.")
		return 0
	}

	fmt.Fprintf(w, "%-36s %-28s %-4s %-12s %-8s\n", "ID", "NAME", "CC", "CATEGORY", "LEVEL")
	for _, t := range templates {
		fmt.Fprintf(w, "%-36s %-28s %-4s %-12s %-8s\n",
			t.ID, truncateName(t.Name, 28), t.CountryCode, t.Category, t.Difficulty)
	}
	return 0
}

// runTemplateShow prints one template including its text body
func runTemplateShow(ctx context.Context, w io.Writer, apiClient *client.Client, id string) int {
	tmpl, err := apiClient.Template(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(tmpl, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:       %s\n", tmpl.Name)
	fmt.Fprintf(&sb, "Subject:    %s\n", tmpl.Subject)
	fmt.Fprintf(&sb, "Country:    %s (%s)\n", tmpl.CountryCode, tmpl.Language)
	fmt.Fprintf(&sb, "Category:   %s\n", tmpl.Category)
	fmt.Fprintf(&sb, "Difficulty: %s\n", tmpl.Difficulty)
	if tmpl.BrandImpersonated != "" {
		fmt.Fprintf(&sb, "Brand:      %s\n", tmpl.BrandImpersonated)
	}
	if tmpl.BodyText != "" {
		fmt.Fprintf(&sb, "\n%s\n", tmpl.BodyText)
	}
	fmt.Fprint(w, sb.String())
	return 0
}
