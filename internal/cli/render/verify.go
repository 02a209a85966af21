package render

import (
	"fmt"
	"io"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

// VerifyRenderer handles rendering of verification results
type VerifyRenderer struct {
	out io.Writer
}

// NewVerifyRenderer creates a new verify renderer
func NewVerifyRenderer(out io.Writer) *VerifyRenderer {
	return &VerifyRenderer{out: out}
}

// Render prints one entry per contract
func (r *VerifyRenderer) Render(result *usecase.VerifyContractResult) error {
	headerStyle.Fprintf(r.out, "Verifying %d contract(s) on %s (chain %d):\n", len(result.Results), result.Network, result.ChainID)

	title := cases.Title(language.English)
	for _, v := range result.Results {
		fmt.Fprintf(r.out, "  %s %s %s\n", r.statusIcon(v.Status), labelStyle.Sprint(v.Contract), addressStyle.Sprint(v.Address.Hex()))

		switch v.Status {
		case usecase.VerifyStatusFailed:
			errorStyle.Fprintf(r.out, "    ✗ %s: %v\n", title.String(string(v.Status)), v.Error)
		default:
			successStyle.Fprintf(r.out, "    ✓ %s\n", title.String(string(v.Status)))
			if v.ExplorerURL != "" {
				fmt.Fprintf(r.out, "    %s#code\n", v.ExplorerURL)
			}
		}
		for _, arg := range v.Args {
			faintStyle.Fprintf(r.out, "    %s %s = %s\n", arg.Type, arg.Name, arg.Value)
		}
	}

	fmt.Fprintln(r.out)
	if failed := result.Failed(); failed > 0 {
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("%d of %d verifications failed", failed, len(result.Results))))
	} else {
		fmt.Fprintln(r.out, FormatSuccess("All contracts verified"))
	}
	return nil
}

func (r *VerifyRenderer) statusIcon(status usecase.VerifyStatus) string {
	switch status {
	case usecase.VerifyStatusVerified, usecase.VerifyStatusAlreadyVerified:
		return successStyle.Sprint("🟢")
	default:
		return errorStyle.Sprint("🔴")
	}
}
