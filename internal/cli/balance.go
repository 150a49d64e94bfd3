package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/codr1/Pitchside/internal/balancer"
)

type balanceOptions struct {
	seed    uint64
	asJSON  bool
	hasSeed bool
}

func (o *balanceOptions) bind(cmd *cobra.Command) {
	cmd.Flags().Uint64Var(&o.seed, "seed", 0, "seed for a reproducible draft")
	cmd.Flags().BoolVar(&o.asJSON, "json", false, "print the result as JSON")
}

func (o *balanceOptions) resolve(cmd *cobra.Command) {
	o.hasSeed = cmd.Flags().Changed("seed")
}

func newBalanceCmd() *cobra.Command {
	var (
		rosterPath string
		opts       balanceOptions
	)

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Balance the players listed in a roster file",
		Long: `Reads a YAML or JSON roster and prints two balanced lineups.

A roster is a list of players, optionally under a top-level "players" key:

  - name: Sam Carter
    position: GK
    overall_rating: 78`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.resolve(cmd)
			players, err := loadRosterFile(rosterPath)
			if err != nil {
				return err
			}
			return runBalance(cmd.OutOrStdout(), players, opts)
		},
	}
	cmd.Flags().StringVarP(&rosterPath, "roster", "r", "", "path to a roster .yaml or .json file")
	_ = cmd.MarkFlagRequired("roster")
	opts.bind(cmd)
	return cmd
}

func runBalance(out io.Writer, players []balancer.Player, opts balanceOptions) error {
	var balancerOpts []balancer.Option
	var seed *uint64
	if opts.hasSeed {
		balancerOpts = append(balancerOpts, balancer.WithSeed(opts.seed))
		seed = &opts.seed
	}

	log.Debug().Int("players", len(players)).Bool("seeded", seed != nil).Msg("Balancing roster")

	result, err := balancer.New(balancerOpts...).Balance(players)
	if err != nil {
		return fmt.Errorf("balance %d players: %w", len(players), err)
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	_, err = io.WriteString(out, renderLineups(result, seed))
	return err
}
