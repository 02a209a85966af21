package cli

import (
	"github.com/spf13/cobra"

	"github.com/GainsNetwork/GNS-ethereum/internal/cli/render"
	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

// NewTestCmd creates the test command
func NewTestCmd() *cobra.Command {
	var grep string

	cmd := &cobra.Command{
		Use:   "test [files...]",
		Short: "Run the JavaScript test suite",
		Long: `Run the test runner from [test] in gns.toml (npx mocha by default) in the
project root. Timeouts follow enable_timeouts and timeout; output streams
through unchanged and the runner's exit status is returned.`,
		Example: `  gns test
  gns test test/GovFund.test.js --grep withdraw`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.RunTests.Run(cmd.Context(), usecase.RunTestsParams{Files: args, Grep: grep})
			if result == nil {
				return err
			}
			if !app.Config.JSON {
				_ = render.NewTestsRenderer(cmd.ErrOrStderr()).Render(result, err)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&grep, "grep", "g", "", "Only run tests matching this pattern")

	return cmd
}
