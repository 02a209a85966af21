package cli

import (
	"github.com/spf13/cobra"

	"github.com/GainsNetwork/GNS-ethereum/internal/cli/render"
)

// NewProjectCmd creates the project command
func NewProjectCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Show the resolved project configuration",
		Long: `Show gns.toml after defaults and ${VAR} expansion, together with the
environment variables each network reads. Secrets and API keys are redacted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ShowProject.Run(cmd.Context())
			if err != nil {
				return err
			}

			if app.Config.JSON {
				format = "json"
			}
			return render.NewProjectRenderer(cmd.OutOrStdout()).Render(result, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json or yaml")

	return cmd
}
