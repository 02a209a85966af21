package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/GainsNetwork/GNS-ethereum/internal/cli/render"
	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

// NewEnvCmd creates the env command
func NewEnvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env [network]",
		Short: "Check the environment variables networks need",
		Long: `Check that the deployer secret and RPC endpoint of a network are set and
well formed, without connecting anywhere. The deployer address derived from
the secret is shown.

Without an argument the selected network is checked, or every network when
none is selected.`,
		Example: `  gns env mainnet
  gns env --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.CheckEnvParams{}
			if len(args) == 1 {
				params.Network = args[0]
			}

			result, runErr := app.CheckEnv.Run(cmd.Context(), params)
			if result == nil {
				return runErr
			}
			if ok, err := renderJSON(cmd, app, result); ok {
				return errors.Join(err, runErr)
			}
			if err := render.NewEnvRenderer(cmd.OutOrStdout()).Render(result); err != nil {
				return err
			}
			return runErr
		},
	}

	return cmd
}
