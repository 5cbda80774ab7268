// ABOUTME: AI template generation command for the phishguard CLI
// ABOUTME: Sends a prompt to the backend generator and prints the result

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
	generatePrompt   string
	generateCountry  string
	generateLanguage string
	generateCategory string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a phishing template with AI",
	Long: `Ask the backend's AI generator for a new phishing email template.

Example:
  phishguard generate --prompt "IT helpdesk asking to verify credentials" --country MY --category corporate`,
	Run: func(cmd *cobra.Command, args []string) {
		runProtected(runGenerate)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVar(&generatePrompt, "prompt", "", "Scenario description for the generator")
	generateCmd.Flags().StringVar(&generateCountry, "country", "", "Country code for localization (e.g. MY)")
	generateCmd.Flags().StringVar(&generateLanguage, "language", "", "Language code (e.g. en)")
	generateCmd.Flags().StringVar(&generateCategory, "category", "", "Brand category (e.g. banking, corporate)")
	generateCmd.MarkFlagRequired("prompt")
}

// runGenerate calls the AI generator and prints the generated template
func runGenerate(ctx context.Context, w io.Writer, apiClient *client.Client) int {
	generated, err := apiClient.GenerateTemplate(ctx, &client.GenerateTemplateRequest{
		Prompt:        generatePrompt,
		CountryCode:   generateCountry,
		Language:      generateLanguage,
		BrandCategory: generateCategory,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(generated, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Subject:      %s\n", generated.Subject)
	fmt.Fprintf(&sb, "Difficulty:   %s\n", generated.Difficulty)
	fmt.Fprintf(&sb, "Est. success: %s\n", generated.EstimatedSuccessRate)
	if generated.BodyText != "" {
		fmt.Fprintf(&sb, "\n%s\n", generated.BodyText)
	}
	fmt.Fprint(w, sb.String())
	return 0
}
