package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/rollcall/internal/app"
	"github.com/five82/rollcall/internal/auth"
)

func newLoginCommand(flags *globalFlags) *cobra.Command {
	var creds auth.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in without starting the interactive view",
		Long: `Checks the credentials and records a session, exactly like the login
screen. Later runs of rollcall go straight to the user list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Open(flags.options())
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.Auth.Login(cmd.Context(), creds); err != nil {
				return fmt.Errorf("login: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", strings.TrimSpace(creds.Email))
			return nil
		},
	}

	cmd.Flags().StringVar(&creds.Email, "email", "", "account email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
