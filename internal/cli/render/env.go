package render

import (
	"fmt"
	"io"

	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

// EnvRenderer renders environment checks
type EnvRenderer struct {
	out io.Writer
}

// NewEnvRenderer creates a new env renderer
func NewEnvRenderer(out io.Writer) *EnvRenderer {
	return &EnvRenderer{out: out}
}

// Render prints one block per network
func (r *EnvRenderer) Render(result *usecase.CheckEnvResult) error {
	for i, n := range result.Networks {
		if i > 0 {
			fmt.Fprintln(r.out)
		}
		icon := successStyle.Sprint("✅")
		if !n.OK {
			icon = errorStyle.Sprint("❌")
		}
		fmt.Fprintf(r.out, "%s %s\n", icon, labelStyle.Sprint(n.Network))

		if n.Host != "" {
			fmt.Fprintf(r.out, "   %s (no environment needed)\n", n.Host)
			continue
		}

		for _, v := range n.Vars {
			switch {
			case v.Problem != "":
				fmt.Fprintf(r.out, "   %s %-28s %s\n", errorStyle.Sprint("✗"), v.Name, errorStyle.Sprint(v.Problem))
			case !v.Set:
				fmt.Fprintf(r.out, "   %s %-28s %s\n", faintStyle.Sprint("-"), v.Name, faintStyle.Sprint("not set (optional)"))
			default:
				fmt.Fprintf(r.out, "   %s %-28s %s\n", successStyle.Sprint("✓"), v.Name, v.Display)
			}
		}
		if n.SecretKind != "" {
			fmt.Fprintf(r.out, "   deployer %s (%s)\n", addressStyle.Sprint(n.Deployer.Hex()), n.SecretKind)
		}
	}
	return nil
}
