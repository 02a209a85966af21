package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

// InitRenderer renders init command results
type InitRenderer struct {
	out io.Writer
}

// NewInitRenderer creates a new init renderer
func NewInitRenderer(out io.Writer) *InitRenderer {
	return &InitRenderer{out: out}
}

// Render renders the init project result
func (r *InitRenderer) Render(result *usecase.InitProjectResult) error {
	for _, step := range result.Steps {
		if step.Success {
			if step.Message != "" {
				successStyle.Fprintf(r.out, "✅ %s: %s\n", step.Name, step.Message)
			} else {
				successStyle.Fprintf(r.out, "✅ %s\n", step.Name)
			}
		} else {
			errorStyle.Fprintf(r.out, "❌ %s\n", step.Name)
			if step.Error != nil {
				fmt.Fprintf(r.out, "   %s\n", step.Error.Error())
			}
		}
	}

	if len(result.Steps) == 3 {
		r.printSuccessMessage(result)
	}
	return nil
}

func (r *InitRenderer) printSuccessMessage(result *usecase.InitProjectResult) {
	fmt.Fprintln(r.out)
	if result.AlreadyInitialized {
		warningStyle.Fprintln(r.out, "⚠️  gns was already initialized in this project")
	} else {
		color.New(color.FgGreen, color.Bold).Fprintln(r.out, "🎉 gns initialized successfully!")
	}

	fmt.Fprintln(r.out)
	headerStyle.Fprintln(r.out, "📋 Next steps:")

	fmt.Fprintln(r.out, "1. Copy .env.example to .env and fill in your deployment keys:")
	fmt.Fprintln(r.out, "   • GOV_FUND_DEPLOYER: mnemonic or private key of the deployer")
	fmt.Fprintln(r.out, "   • INFURA_ENDPOINT_MAINNET: mainnet RPC URL")
	fmt.Fprintln(r.out)

	fmt.Fprintln(r.out, "2. Add an Etherscan key to [api_keys] in gns.toml to verify contracts")
	fmt.Fprintln(r.out)

	fmt.Fprintln(r.out, "3. Compile, check and deploy:")
	faintStyle.Fprintln(r.out, "   gns compile")
	faintStyle.Fprintln(r.out, "   gns env mainnet")
	faintStyle.Fprintln(r.out, "   gns deploy GovFund --network mainnet")
}
