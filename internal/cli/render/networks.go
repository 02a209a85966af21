package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out   io.Writer
	color bool
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer, color bool) *NetworksRenderer {
	return &NetworksRenderer{
		out:   out,
		color: color,
	}
}

// RenderNetworksList renders the configured networks as a table
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in gns.toml [networks]")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	checked := len(result.Networks) > 0 && result.Networks[0].Checked

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateRows = false
	if !r.color {
		t.Style().Color = table.ColorOptions{}
	}

	header := table.Row{"", "NETWORK", "ID", "ENDPOINT", "SIGNER", "GAS PRICE", "DRY RUN"}
	if checked {
		header = append(header, "CHAIN")
	}
	t.AppendHeader(header)

	for _, n := range result.Networks {
		marker := ""
		if n.Name == result.Selected {
			marker = "*"
		}
		signer := "node"
		if n.Signed {
			signer = "local"
		}
		dryRun := "yes"
		if n.SkipDryRun {
			dryRun = "skip"
		}
		row := table.Row{marker, n.Name, n.NetworkID, n.Endpoint, signer, n.GasPrice, dryRun}
		if checked {
			row = append(row, r.chainCell(n))
		}
		t.AppendRow(row)
	}
	t.Render()

	for _, n := range result.Networks {
		if n.Error != nil {
			fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("%s: %v", n.Name, n.Error)))
		}
	}
	return nil
}

func (r *NetworksRenderer) chainCell(n usecase.NetworkStatus) string {
	switch {
	case n.Error != nil && !n.Mismatch:
		return errorStyle.Sprint("✗ unreachable")
	case n.Mismatch:
		return warningStyle.Sprintf("✗ %d", n.ChainID)
	case n.Cached:
		return successStyle.Sprint("✓ "+strconv.FormatUint(n.ChainID, 10)) + faintStyle.Sprint(" (cached)")
	default:
		return successStyle.Sprint("✓ " + strconv.FormatUint(n.ChainID, 10))
	}
}
