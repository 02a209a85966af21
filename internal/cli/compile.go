package cli

import (
	"github.com/spf13/cobra"

	"github.com/GainsNetwork/GNS-ethereum/internal/cli/render"
)

// NewCompileCmd creates the compile command
func NewCompileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compile",
		Short: "Compile contracts with the pinned solc",
		Long: `Compile every Solidity file under the contracts directory, including
imports from node_modules, with the solc version and optimizer settings from
gns.toml. One artifact per contract is written to contracts_build_directory;
deployment records already in those files are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.CompileContracts.Run(cmd.Context())
			if err != nil {
				return err
			}
			if ok, err := renderJSON(cmd, app, result); ok {
				return err
			}
			return render.NewCompileRenderer(cmd.OutOrStdout()).Render(result)
		},
	}
}
