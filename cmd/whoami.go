// ABOUTME: Whoami command for the phishguard CLI
// ABOUTME: Resolves the stored credential and prints the session identity

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/nickigann03/phishguard/internal/token"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session identity",
	Long: `Resolve the stored token against the backend and print the signed-in user.

Exit codes:
  0 - Signed in
  1 - Not signed in (no token, or the token was rejected and cleared)
  2 - Error`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWhoami(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami resolves the session and returns exit code
func runWhoami(ctx context.Context, w io.Writer) int {
	sess, _ := newSession()
	sess.Resume(ctx)

	if !sess.IsAuthenticated() {
		fmt.Fprintln(w, "Not signed in. Run `phishguard login` first.")
		return 1
	}

	user := sess.User()
	expiry, hasExpiry := tokenExpiry(token.NewFileStore(token.DefaultConfigDir()))

	if IsJSONOutput() {
		output := map[string]interface{}{
			"id":        user.ID,
			"email":     user.Email,
			"full_name": user.FullName,
			"role":      user.Role,
		}
		if hasExpiry {
			output["token_expires_at"] = expiry.Format(time.RFC3339)
		}
		data, _ := json.MarshalIndent(output, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "User:  %s\n", user.FullName)
	fmt.Fprintf(w, "Email: %s\n", user.Email)
	fmt.Fprintf(w, "Role:  %s\n", user.Role)
	if hasExpiry {
		fmt.Fprintf(w, "Token: expires %s\n", expiry.Local().Format("2006-01-02 15:04"))
	}
	return 0
}

// tokenExpiry decodes the stored bearer JWT without verifying it and
// returns its expiry claim. Verification belongs to the backend; this is
// display-only. Opaque non-JWT tokens simply report no expiry.
func tokenExpiry(store token.Store) (time.Time, bool) {
	tok, ok := store.Get()
	if !ok {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
