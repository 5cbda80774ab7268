// ABOUTME: Login command for the phishguard CLI
// ABOUTME: Authenticates against the backend and stores the bearer token

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the PhishGuard backend",
	Long: `Authenticate with the PhishGuard backend and store the issued token.

Missing credentials are prompted interactively. The token is kept in the
user config directory and reused by later commands until logout.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if err := promptCredentials(&loginEmail, &loginPassword); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}

		exitCode := runLogin(ctx, os.Stdout, loginEmail, loginPassword)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted if omitted)")
}

// promptCredentials asks for any credential fields not supplied via flags
func promptCredentials(email, password *string) error {
	var fields []huh.Field
	if *email == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(email))
	}
	if *password == "" {
		fields = append(fields, huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(password))
	}
	if len(fields) == 0 {
		return nil
	}

	form := huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeBase())
	return form.Run()
}

// runLogin executes the login flow and returns exit code
func runLogin(ctx context.Context, w io.Writer, email, password string) int {
	sess, _ := newSession()

	if err := sess.Login(ctx, email, password); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	user := sess.User()
	fmt.Fprintf(w, "Signed in as %s (%s)\n", user.FullName, user.Email)
	return 0
}
