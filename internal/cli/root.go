package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/GainsNetwork/GNS-ethereum/internal/app"
	"github.com/GainsNetwork/GNS-ethereum/internal/cli/render"
	"github.com/GainsNetwork/GNS-ethereum/internal/config"
	domainconfig "github.com/GainsNetwork/GNS-ethereum/internal/domain/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// standalone commands run without a project or an App
var standalone = map[string]bool{
	"version":    true,
	"help":       true,
	"completion": true,
	"init":       true,
	"units":      true,
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gns",
		Short: "Build, test, deploy and verify the GNS governance fund contracts",
		Long: `gns compiles the Solidity sources with a pinned solc, runs the JavaScript
test suite, deploys contracts to the networks declared in gns.toml and
verifies them on Etherscan.

Deployer keys and RPC endpoints are read from the environment (or .env),
never from the project file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if standalone[cmd.Name()] {
				return nil
			}

			// Find project root
			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return fmt.Errorf("%w (run 'gns init' to create one)", err)
			}

			// Set up viper
			v := config.SetupViper(projectRoot)

			// Bind global flags
			if err := config.BindFlags(v, cmd.Root().PersistentFlags()); err != nil {
				return err
			}

			// Initialize app with DI
			appInstance, cleanup, err := app.InitApp(v, cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			if shouldShowConfigWarnings(cmd.Name(), appInstance.Config) {
				for _, w := range appInstance.Config.Warnings {
					fmt.Fprintln(cmd.ErrOrStderr(), render.FormatWarning(w))
				}
			}

			// Store app in context
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			// Only an explicit --timeout or GNS_TIMEOUT sets a deadline;
			// test suites and WaitMined may legitimately run for a long time.
			cancel := func() {}
			if appInstance.Config.Timeout > 0 {
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
			}
			// Finalizers run even when the command fails
			cobra.OnFinalize(sync.OnceFunc(func() {
				cancel()
				cleanup()
			}))

			cmd.SetContext(ctx)

			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Bool("json", false, "Output results as JSON")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Abort after this long (no limit when unset)")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network from gns.toml (e.g. mainnet)")

	// Add command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	// Main commands
	for _, c := range []*cobra.Command{
		NewCompileCmd(),
		NewTestCmd(),
		NewDeployCmd(),
		NewVerifyCmd(),
	} {
		c.GroupID = "main"
		rootCmd.AddCommand(c)
	}

	// Management commands
	for _, c := range []*cobra.Command{
		NewInitCmd(),
		NewProjectCmd(),
		NewNetworksCmd(),
		NewEnvCmd(),
		NewPluginsCmd(),
		NewConfigCmd(),
		NewUnitsCmd(),
	} {
		c.GroupID = "management"
		rootCmd.AddCommand(c)
	}

	// Version command
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// shouldShowConfigWarnings reports whether project file warnings go to stderr.
// The project command prints them itself and JSON output stays clean.
func shouldShowConfigWarnings(cmdName string, cfg *domainconfig.RuntimeConfig) bool {
	if cfg == nil || len(cfg.Warnings) == 0 || cfg.JSON {
		return false
	}
	if standalone[cmdName] || cmdName == "project" {
		return false
	}
	return true
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

// renderJSON writes result as JSON when --json is set.
func renderJSON(cmd *cobra.Command, a *app.App, result any) (bool, error) {
	if !a.Config.JSON {
		return false, nil
	}
	return true, render.JSON(cmd.OutOrStdout(), result)
}
