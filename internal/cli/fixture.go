package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/rollcall/internal/fixture"
)

const defaultFixtureAddr = "127.0.0.1:8089"

func newFixtureCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "fixture-api",
		Short: "Serve the bundled user collection over HTTP",
		Long: `Serves twelve sample users at /users (and /users/{id}) until interrupted.
Point users_url at it to run rollcall without network access.`,
		Example: `  rollcall fixture-api --addr 127.0.0.1:8089`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Serving %d users at http://%s%s\n", len(fixture.Users()), addr, fixture.UsersPath)
			return fixture.Serve(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultFixtureAddr, "listen address")

	return cmd
}
