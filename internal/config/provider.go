package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/GainsNetwork/GNS-ethereum/internal/domain"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/config"
)

// DataDirName is the per-project directory for local state and caches
const DataDirName = ".gns"

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	// Get project root from viper
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		// Try to find project root
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, DataDirName),
		NetworkName:    v.GetString("network"),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		Timeout:        v.GetDuration("timeout"),
	}

	loaded, err := LoadProjectConfig(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load project config: %w", err)
	}
	cfg.Project = loaded.Config
	cfg.ConfigFile = loaded.Path
	cfg.Warnings = loaded.Warnings

	// Resolve network if specified; unknown names are reported by the
	// operations that need a network so config commands keep working.
	if cfg.NetworkName != "" {
		if network, ok := cfg.Project.Networks[cfg.NetworkName]; ok {
			cfg.Network = &network
		}
	}

	return cfg, nil
}

// RequireNetwork returns the selected network or explains why there is none.
func RequireNetwork(cfg *config.RuntimeConfig) (string, *config.NetworkConfig, error) {
	if cfg.NetworkName == "" {
		return "", nil, fmt.Errorf("%w: use --network or 'gns config set network <name>'", domain.ErrNetworkNotSpecified)
	}
	if cfg.Network == nil {
		return "", nil, fmt.Errorf("%w: %q (available: %s)", domain.ErrNetworkNotConfigured,
			cfg.NetworkName, strings.Join(NetworkNames(cfg.Project), ", "))
	}
	return cfg.NetworkName, cfg.Network, nil
}

// NetworkNames returns the configured network names, sorted.
func NetworkNames(project *config.ProjectConfig) []string {
	if project == nil {
		return nil
	}
	return sortedMapKeys(project.Networks)
}

// FindProjectRoot walks up from current directory to find a project file
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, ok := FindProjectFile(dir); ok {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root without finding a project file
			return "", fmt.Errorf("not in a gns project (%s not found)", strings.Join(ProjectFiles, ", "))
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, DataDirName))

	// Set up environment variables
	v.SetEnvPrefix("GNS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("json", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	return v
}

// BindFlags binds flags to viper keys ("non-interactive" becomes
// "non_interactive"). Unchanged flags fall below env, local config and defaults.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var errs []error
	flags.VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil {
			errs = append(errs, err)
		}
	})
	return errors.Join(errs...)
}
