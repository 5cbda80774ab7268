// ABOUTME: TUI command for the phishguard CLI
// ABOUTME: Launches the interactive terminal dashboard

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nickigann03/phishguard/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive dashboard",
	Long:  `Launch the full-screen terminal dashboard with campaign analytics, campaign management, and the AI template generator.`,
	Run: func(cmd *cobra.Command, args []string) {
		sess, apiClient := newSession()
		if err := tui.Run(apiClient, sess); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
