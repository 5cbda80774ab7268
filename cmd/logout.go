// ABOUTME: Logout command for the phishguard CLI
// ABOUTME: Clears the stored bearer token locally

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and discard the stored token",
	Long:  `Remove the stored bearer token. Local-only; no backend call is made.`,
	Run: func(cmd *cobra.Command, args []string) {
		runLogout(os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears the session. It cannot fail.
func runLogout(w io.Writer) {
	sess, _ := newSession()
	sess.Logout()
	fmt.Fprintln(w, "Signed out.")
}
