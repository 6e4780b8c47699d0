package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/rollcall/internal/config"
	"github.com/five82/rollcall/internal/logtail"
)

const defaultLogLines = 50

func newLogsCommand(flags *globalFlags) *cobra.Command {
	var (
		lines   int
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the tail of the log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			tail, err := logtail.Read(cfg.LogFile, lines)
			if err != nil {
				return fmt.Errorf("read log: %w", err)
			}
			if len(tail) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No log entries in %s\n", cfg.LogFile)
				return nil
			}

			if !noColor {
				tail = logtail.DefaultPalette().ColorizeLines(tail)
			}
			for _, line := range tail {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", defaultLogLines, "number of lines to show (0 for all)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")

	return cmd
}
