package cli

import (
	"github.com/spf13/cobra"

	"github.com/GainsNetwork/GNS-ethereum/internal/cli/render"
	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var params usecase.DeployContractParams

	cmd := &cobra.Command{
		Use:   "deploy [contract] [constructor args...]",
		Short: "Deploy a compiled contract",
		Long: `Deploy a compiled contract to the selected network and record its address
in the artifact.

The transaction is simulated first unless the network sets skip_dry_run or
--skip-dry-run is passed. Gas price comes from gas_price in gns.toml, or
from the node when unset. Without a contract name an interactive picker
lists the deployable artifacts.

Constructor arguments are given in order; amounts may carry a unit
("1.5 ether") and arrays are written as JSON.`,
		Example: `  gns deploy GovFund 0xA5A6...e9f1 --network mainnet
  gns deploy GovFund 0xA5A6...e9f1 --dry-run
  gns deploy Token '"GNS"' 1000000ether --yes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if len(args) > 0 {
				params.Contract = args[0]
				params.Args = args[1:]
			}

			result, err := app.DeployContract.Run(cmd.Context(), params)
			if err != nil {
				return err
			}
			if ok, err := renderJSON(cmd, app, result); ok {
				return err
			}
			return render.NewDeployRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().StringVar(&params.Value, "value", "", "Ether sent with the deployment (e.g. \"0.1 ether\")")
	cmd.Flags().BoolVar(&params.DryRun, "dry-run", false, "Simulate only; do not send")
	cmd.Flags().BoolVar(&params.SkipDryRun, "skip-dry-run", false, "Send without simulating first")
	cmd.Flags().BoolVarP(&params.Yes, "yes", "y", false, "Do not ask for confirmation")
	cmd.MarkFlagsMutuallyExclusive("dry-run", "skip-dry-run")

	return cmd
}
