// ABOUTME: Register command for the phishguard CLI
// ABOUTME: Creates a new account and organization on the backend

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

	"github.com/nickigann03/phishguard/internal/client"
)

var (
	registerEmail    string
	registerPassword string
	registerName     string
	registerOrg      string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new PhishGuard account",
	Long: `Register a new user and organization with the PhishGuard backend.

Missing fields are prompted interactively. Registration does not sign you
in; run "phishguard login" afterwards.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if err := promptRegistration(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}

		exitCode := runRegister(ctx, os.Stdout, &client.RegisterRequest{
			Email:            registerEmail,
			Password:         registerPassword,
			FullName:         registerName,
			OrganizationName: registerOrg,
		})
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Account password (prompted if omitted)")
	registerCmd.Flags().StringVar(&registerName, "name", "", "Full name")
	registerCmd.Flags().StringVar(&registerOrg, "org", "", "Organization name")
}

// promptRegistration asks for any registration fields not supplied via flags
func promptRegistration() error {
	var fields []huh.Field
	if registerEmail == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(&registerEmail))
	}
	if registerPassword == "" {
		fields = append(fields, huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&registerPassword))
	}
	if registerName == "" {
		fields = append(fields, huh.NewInput().Title("Full name").Value(&registerName))
	}
	if registerOrg == "" {
		fields = append(fields, huh.NewInput().Title("Organization").Value(&registerOrg))
	}
	if len(fields) == 0 {
		return nil
	}

	form := huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeBase())
	return form.Run()
}

// runRegister executes the registration and returns exit code
func runRegister(ctx context.Context, w io.Writer, input *client.RegisterRequest) int {
	_, apiClient := newSession()

	user, err := apiClient.Register(ctx, input)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Registered %s (%s). Run `phishguard login` to sign in.\n", user.FullName, user.Email)
	return 0
}
