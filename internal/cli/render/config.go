package render

import (
	"fmt"
	"io"

	"github.com/GainsNetwork/GNS-ethereum/internal/domain/config"
	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

// ConfigRenderer renders config-related output
type ConfigRenderer struct {
	out io.Writer
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{
		out: out,
	}
}

// RenderConfig renders the configuration display
func (r *ConfigRenderer) RenderConfig(result *usecase.ShowConfigResult) error {
	if !result.Exists {
		fmt.Fprintf(r.out, "❌ No .gns/config.local.json file found\n")
		fmt.Fprintf(r.out, "⚠️  Without config, commands that need a network require --network\n")
	} else {
		fmt.Fprintln(r.out, "📋 Current config:")
		if result.Config.Network != "" {
			fmt.Fprintf(r.out, "Network: %s\n", result.Config.Network)
		} else {
			fmt.Fprintf(r.out, "Network: %s\n", "(not set)")
		}
	}

	// Flags and GNS_* variables win over the file
	if result.Exists && result.Network != result.Config.Network {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, "🔧 Effective (flags and GNS_* environment):")
		fmt.Fprintf(r.out, "Network: %s\n", orDash(result.Network))
	}

	fmt.Fprintf(r.out, "\n📦 Project file: %s\n", getRelativePath(result.ProjectFile))
	fmt.Fprintf(r.out, "📁 config file: %s\n", getRelativePath(result.ConfigPath))

	return nil
}

// RenderSet renders the result of setting a configuration value
func (r *ConfigRenderer) RenderSet(result *usecase.SetConfigResult) error {
	fmt.Fprintf(r.out, "✅ Set %s to: %s\n", result.Key, result.Value)
	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}

// RenderRemove renders the result of removing a configuration value
func (r *ConfigRenderer) RenderRemove(result *usecase.RemoveConfigResult) error {
	switch result.Key {
	case config.ConfigKeyNetwork:
		fmt.Fprintf(r.out, "✅ Removed network from config (will be required as flag)\n")
	}

	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}
