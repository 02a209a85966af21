package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	internalconfig "github.com/GainsNetwork/GNS-ethereum/internal/config"
)

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of gns",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gns version %s (commit %s, built %s)\n",
				internalconfig.Version, internalconfig.Commit, internalconfig.Date)
		},
	}
}
