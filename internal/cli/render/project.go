package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

// ProjectRenderer renders the resolved project configuration
type ProjectRenderer struct {
	out io.Writer
}

// NewProjectRenderer creates a new project renderer
func NewProjectRenderer(out io.Writer) *ProjectRenderer {
	return &ProjectRenderer{out: out}
}

// Render writes the project in format: table, json or yaml
func (r *ProjectRenderer) Render(result *usecase.ShowProjectResult, format string) error {
	switch format {
	case "json":
		return JSON(r.out, result)
	case "yaml":
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(result.Project); err != nil {
			return fmt.Errorf("failed to encode project: %w", err)
		}
		return enc.Close()
	case "", "table":
		return r.renderTable(result)
	default:
		return fmt.Errorf("unknown format %q (use table, json or yaml)", format)
	}
}

func (r *ProjectRenderer) renderTable(result *usecase.ShowProjectResult) error {
	p := result.Project

	headerStyle.Fprintf(r.out, "📦 %s\n", getRelativePath(result.Path))
	fmt.Fprintln(r.out)

	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("Build directory:"), p.BuildDirectory)
	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("Sources:        "), p.ContractsDirOrDefault())

	solc := p.Compilers.Solc
	optimizer := "disabled"
	if solc.Settings.Optimizer.Enabled {
		optimizer = fmt.Sprintf("enabled, %d runs", solc.Settings.Optimizer.Runs)
	}
	fmt.Fprintf(r.out, "%s solc %s (optimizer %s)\n", labelStyle.Sprint("Compiler:       "), orDash(solc.Version), optimizer)

	timeouts := "enabled"
	if !p.Test.TimeoutsEnabled() {
		timeouts = "disabled"
	} else if p.Test.Timeout > 0 {
		timeouts = fmt.Sprintf("%dms", p.Test.Timeout)
	}
	fmt.Fprintf(r.out, "%s %s (timeouts %s)\n", labelStyle.Sprint("Tests:          "), strings.Join(p.Test.Runner, " "), timeouts)
	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("Plugins:        "), orDash(strings.Join(p.Plugins, ", ")))

	if len(p.APIKeys) > 0 {
		services := make([]string, 0, len(p.APIKeys))
		for service, key := range p.APIKeys {
			services = append(services, service+"="+key)
		}
		fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("API keys:       "), strings.Join(services, ", "))
	}

	if len(result.Env) > 0 {
		fmt.Fprintln(r.out)
		t := table.NewWriter()
		t.SetOutputMirror(r.out)
		t.SetStyle(table.StyleLight)
		t.Style().Options.DrawBorder = false
		t.AppendHeader(table.Row{"NETWORK", "VARIABLE", "PURPOSE", "VALUE"})
		for _, ev := range result.Env {
			value := errorStyle.Sprint("not set")
			if ev.Set {
				value = ev.Display
			} else if ev.Optional {
				value = faintStyle.Sprint("not set (optional)")
			}
			t.AppendRow(table.Row{ev.Network, ev.Name, ev.Purpose, value})
		}
		t.Render()
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintln(r.out)
		for _, w := range result.Warnings {
			fmt.Fprintln(r.out, FormatWarning(w))
		}
	}
	return nil
}
