package cli

import (
	"github.com/spf13/cobra"

	"github.com/GainsNetwork/GNS-ethereum/internal/cli/render"
	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

// NewUnitsCmd creates the units command. It works outside a project.
func NewUnitsCmd() *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "units <amount> [unit]",
		Short: "Convert between wei, gwei and ether",
		Example: `  gns units "120 gwei"
  gns units 1.5 ether --to wei
  gns units 120000000000 --to gwei`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := usecase.ConvertUnitsParams{Amount: args[0], To: to}
			if len(args) == 2 {
				params.Unit = args[1]
			}

			result, err := usecase.NewConvertUnits().Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
				return render.JSON(cmd.OutOrStdout(), result)
			}
			return render.NewUnitsRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Target unit (default: wei, gwei and ether)")

	return cmd
}
