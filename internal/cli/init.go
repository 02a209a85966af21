package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/GainsNetwork/GNS-ethereum/internal/adapters/fs"
	"github.com/GainsNetwork/GNS-ethereum/internal/adapters/progress"
	"github.com/GainsNetwork/GNS-ethereum/internal/cli/render"
	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create gns.toml in the current directory",
		Long: `Create gns.toml with the mainnet deployment settings, a .env.example
listing the variables it reads, and .gitignore entries for .env and .gns/.

An existing project file is left alone unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}

			initProject := usecase.NewInitProject(
				fs.NewFileWriterAdapter(),
				progress.NewLineProgress(cmd.ErrOrStderr()),
			)
			result, err := initProject.Run(cmd.Context(), usecase.InitProjectParams{Dir: dir, Force: force})
			if result != nil {
				// Still render partial results on error
				_ = render.NewInitRenderer(cmd.OutOrStdout()).Render(result)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing project file")

	return cmd
}
