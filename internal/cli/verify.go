package cli

import (
	"github.com/spf13/cobra"

	"github.com/GainsNetwork/GNS-ethereum/internal/app"
	"github.com/GainsNetwork/GNS-ethereum/internal/cli/render"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/models"
	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

// NewVerifyCmd creates the verify command
func NewVerifyCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "verify [contracts...]",
		Short: "Verify deployed contracts on Etherscan",
		Long: `Verify deployed contracts on Etherscan (requires truffle-plugin-verify in
plugins and an Etherscan key in [api_keys]).

The compiler input is rebuilt from each artifact's metadata and checked
against the sources on disk; constructor arguments are read back from the
deployment transaction.

Without contract names, an interactive picker lists the contracts deployed
on the selected network. --all (or --non-interactive) verifies all of them.`,
		Example: `  gns verify GovFund --network mainnet
  gns verify --all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.VerifyContractParams{Contracts: args}
			if len(args) == 0 && !all && !app.Config.NonInteractive && !app.Config.JSON {
				if params.Contracts, err = pickDeployed(cmd, app); err != nil {
					return err
				}
			}

			result, runErr := app.VerifyContract.Run(cmd.Context(), params)
			if result == nil {
				return runErr
			}
			if app.Config.JSON {
				if err := render.JSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}
				return runErr
			}
			if err := render.NewVerifyRenderer(cmd.OutOrStdout()).Render(result); err != nil {
				return err
			}
			return runErr
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Verify every contract deployed on the network")

	return cmd
}

// pickDeployed offers the contracts deployed on the selected network. It
// returns nil (verify all) when the chain id is not pinned in gns.toml.
func pickDeployed(cmd *cobra.Command, a *app.App) ([]string, error) {
	if a.Config.Network == nil {
		return nil, nil
	}
	chainID, ok, err := a.Config.Network.ChainID()
	if err != nil || !ok {
		return nil, nil
	}

	artifacts, err := a.Artifacts.List(cmd.Context())
	if err != nil {
		return nil, err
	}
	var items []deployedItem
	for _, artifact := range artifacts {
		if d, ok := artifact.Deployment(chainID); ok {
			items = append(items, deployedItem{artifact: artifact, address: d.Address})
		}
	}
	if len(items) <= 1 {
		return nil, nil
	}

	indices, err := SelectContracts(items, "Select contracts to verify")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(indices))
	for _, i := range indices {
		names = append(names, items[i].artifact.ContractName)
	}
	return names, nil
}

// deployedItem is a contract with its address on the selected chain
type deployedItem struct {
	artifact *models.Artifact
	address  string
}
