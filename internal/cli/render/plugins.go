package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

// PluginsRenderer renders configured plugins
type PluginsRenderer struct {
	out io.Writer
}

// NewPluginsRenderer creates a new plugins renderer
func NewPluginsRenderer(out io.Writer) *PluginsRenderer {
	return &PluginsRenderer{out: out}
}

// Render lists plugins and the commands they enable
func (r *PluginsRenderer) Render(result *usecase.ListPluginsResult) error {
	if len(result.Plugins) == 0 {
		fmt.Fprintln(r.out, "No plugins configured")
		return nil
	}
	for _, p := range result.Plugins {
		if !p.Known {
			fmt.Fprintf(r.out, "%s %s %s\n", warningStyle.Sprint("?"), p.Name, faintStyle.Sprint("(not supported, ignored)"))
			continue
		}
		fmt.Fprintf(r.out, "%s %s: %s\n", successStyle.Sprint("✓"), labelStyle.Sprint(p.Name), p.Description)
		fmt.Fprintf(r.out, "    commands: %s\n", strings.Join(p.Commands, ", "))
	}
	return nil
}
