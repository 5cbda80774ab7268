// ABOUTME: Root command for the phishguard CLI
// ABOUTME: Handles global flags, env configuration, and client wiring

package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nickigann03/phishguard/internal/client"
	"github.com/nickigann03/phishguard/internal/session"
	"github.com/nickigann03/phishguard/internal/token"
)

var (
	apiURL     string
	jsonOutput bool
)

const defaultAPIURL = "http://localhost:8000/api/v1"

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "phishguard",
	Short: "CLI for the PhishGuard security-awareness platform",
	Long: `phishguard is a command-line client for the PhishGuard phishing-simulation platform.

It manages simulated phishing campaigns, generates AI-written email templates,
and shows campaign analytics from the terminal.

Environment Variables:
  PHISHGUARD_API_URL  Backend API URL (default: http://localhost:8000/api/v1)`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// A .env in the working directory may carry PHISHGUARD_API_URL
	godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides PHISHGUARD_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("PHISHGUARD_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// newSession wires a token store, API client, and session manager for one
// command invocation. The store is the single owner of the credential;
// both the client and the manager share it.
func newSession() (*session.Manager, *client.Client) {
	store := token.NewFileStore(token.DefaultConfigDir())
	apiClient := client.New(GetAPIURL(), store)
	return session.New(apiClient, store), apiClient
}
