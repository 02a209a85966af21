package render

import (
	"fmt"
	"io"

	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

// UnitsRenderer renders unit conversions
type UnitsRenderer struct {
	out io.Writer
}

// NewUnitsRenderer creates a new units renderer
func NewUnitsRenderer(out io.Writer) *UnitsRenderer {
	return &UnitsRenderer{out: out}
}

// Render prints one line per unit. A single conversion prints the bare value.
func (r *UnitsRenderer) Render(result *usecase.ConvertUnitsResult) error {
	if len(result.Conversions) == 1 {
		fmt.Fprintln(r.out, result.Conversions[0].Value)
		return nil
	}
	for _, c := range result.Conversions {
		fmt.Fprintf(r.out, "%24s %s\n", c.Value, c.Unit)
	}
	return nil
}
