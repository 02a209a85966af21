package render

import (
	"fmt"
	"io"

	"github.com/GainsNetwork/GNS-ethereum/internal/domain"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/units"
	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

// DeployRenderer renders deployment results
type DeployRenderer struct {
	out io.Writer
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer) *DeployRenderer {
	return &DeployRenderer{out: out}
}

// Render prints the deployment summary
func (r *DeployRenderer) Render(result *usecase.DeployContractResult) error {
	if result.DryRun {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Dry run of %s on %s passed", result.Contract, result.Network)))
	} else {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%s deployed on %s", result.Contract, result.Network)))
	}
	fmt.Fprintln(r.out)

	r.field("Chain", fmt.Sprintf("%d", result.ChainID))
	r.field("From", addressStyle.Sprint(result.From.Hex()))
	r.field("Nonce", fmt.Sprintf("%d", result.Nonce))
	r.field("Gas limit", fmt.Sprintf("%d", result.Gas))
	r.field("Gas price", units.NewWei(result.GasPrice).In("gwei"))
	if result.Value != nil && result.Value.Sign() > 0 {
		r.field("Value", units.NewWei(result.Value).In("ether"))
	}
	if !result.Simulated && !result.DryRun {
		r.field("Dry run", faintStyle.Sprint("skipped"))
	}
	if result.DryRun {
		return nil
	}

	r.field("Address", addressStyle.Sprint(result.Address.Hex()))
	txLine := result.TxHash.Hex()
	if url := domain.ExplorerTxURL(result.ChainID, txLine); url != "" {
		txLine = url
	}
	r.field("Transaction", txLine)
	r.field("Block", fmt.Sprintf("%d", result.BlockNumber))
	r.field("Gas used", fmt.Sprintf("%d", result.GasUsed))
	if result.Cost != nil {
		r.field("Cost", units.NewWei(result.Cost).In("ether"))
	}
	if result.ExplorerURL != "" {
		r.field("Explorer", result.ExplorerURL)
	}
	return nil
}

func (r *DeployRenderer) field(label, value string) {
	fmt.Fprintf(r.out, "  %s %s\n", labelStyle.Sprintf("%-12s", label+":"), value)
}
