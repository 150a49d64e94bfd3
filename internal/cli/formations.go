package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/codr1/Pitchside/internal/balancer"
)

func newFormationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formations",
		Short: "List the formations the balancer searches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), renderFormations(balancer.Formations()))
			return err
		},
	}
}
