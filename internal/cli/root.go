// Package cli implements the teamsheet command, an offline front end to the
// team balancer.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Execute runs the teamsheet root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "teamsheet",
		Short: "Pick two balanced 9-a-side teams",
		Long: `teamsheet drafts two balanced 9-a-side teams from a roster file or a
Pitchside database and prints both lineups.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.WarnLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(newBalanceCmd())
	root.AddCommand(newRosterCmd())
	root.AddCommand(newFormationsCmd())
	return root
}
