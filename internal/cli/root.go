package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/five82/rollcall/internal/app"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	prefsPath  string
	version    string
}

func (g *globalFlags) options() app.Options {
	return app.Options{ConfigPath: g.configPath, PrefsPath: g.prefsPath, Version: g.version}
}

// NewRootCommand creates the root command. Without a subcommand it runs the
// interactive user directory.
func NewRootCommand(version, commit, date string) *cobra.Command {
	flags := &globalFlags{version: version}

	rootCmd := &cobra.Command{
		Use:   "rollcall",
		Short: "Terminal user directory",
		Long: `rollcall signs in against a local credential check and browses a remote
user collection with search, column sorting and pagination.

Run without arguments for the interactive view, or use the subcommands for
scripted access.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), flags.options())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "config file path (default ~/.config/rollcall/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flags.prefsPath, "prefs", "", "preferences file path (default ~/.config/rollcall/prefs.toml)")

	rootCmd.AddCommand(newLoginCommand(flags))
	rootCmd.AddCommand(newUsersCommand(flags))
	rootCmd.AddCommand(newLogsCommand(flags))
	rootCmd.AddCommand(newFixtureCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "rollcall %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
