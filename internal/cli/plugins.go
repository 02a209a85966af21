package cli

import (
	"github.com/spf13/cobra"

	"github.com/GainsNetwork/GNS-ethereum/internal/cli/render"
)

// NewPluginsCmd creates the plugins command
func NewPluginsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plugins",
		Short: "List plugins enabled in gns.toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListPlugins.Run(cmd.Context())
			if err != nil {
				return err
			}
			if ok, err := renderJSON(cmd, app, result); ok {
				return err
			}
			return render.NewPluginsRenderer(cmd.OutOrStdout()).Render(result)
		},
	}
}
