package cli

import (
	"github.com/spf13/cobra"

	"github.com/GainsNetwork/GNS-ethereum/internal/cli/render"
	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List networks declared in gns.toml",
		Long: `List all networks configured in the [networks] section of gns.toml.

With --check, each endpoint is asked for its chain id and compared with the
configured network_id. Results are cached in .gns for ten minutes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get app from context
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{Check: check})
			if err != nil {
				return err
			}
			if ok, err := renderJSON(cmd, app, result); ok {
				return err
			}

			renderer := render.NewNetworksRenderer(cmd.OutOrStdout(), !app.Config.NonInteractive)
			return renderer.RenderNetworksList(result)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Query each endpoint for its chain id")

	return cmd
}
