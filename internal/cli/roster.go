package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/codr1/Pitchside/internal/balancer"
	"github.com/codr1/Pitchside/internal/db"
	"github.com/codr1/Pitchside/internal/models"
)

const rosterQueryTimeout = 5 * time.Second

func newRosterCmd() *cobra.Command {
	var (
		dbPath string
		opts   balanceOptions
	)

	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Balance every player stored in a Pitchside database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.resolve(cmd)

			ctx, cancel := context.WithTimeout(cmd.Context(), rosterQueryTimeout)
			defer cancel()

			players, err := loadDBRoster(ctx, dbPath)
			if err != nil {
				return err
			}
			return runBalance(cmd.OutOrStdout(), players, opts)
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "path to the SQLite database")
	_ = cmd.MarkFlagRequired("db")
	opts.bind(cmd)
	return cmd
}

// loadDBRoster reads an existing database; db.New would otherwise create and
// migrate an empty one at a mistyped path.
func loadDBRoster(ctx context.Context, path string) ([]balancer.Player, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("open database: %s is a directory", path)
	}

	database, err := db.New(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	rows, err := database.Queries.ListPlayersByRating(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	players := make([]balancer.Player, 0, len(rows))
	for _, p := range models.PlayersFromDB(rows) {
		players = append(players, p.ToBalancer())
	}
	return players, nil
}
