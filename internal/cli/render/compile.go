package render

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

// CompileRenderer renders compilation results
type CompileRenderer struct {
	out io.Writer
}

// NewCompileRenderer creates a new compile renderer
func NewCompileRenderer(out io.Writer) *CompileRenderer {
	return &CompileRenderer{out: out}
}

// Render lists written artifacts and compiler warnings
func (r *CompileRenderer) Render(result *usecase.CompileContractsResult) error {
	for _, w := range result.Warnings {
		fmt.Fprintln(r.out, FormatWarning(w))
	}
	if len(result.Warnings) > 0 {
		fmt.Fprintln(r.out)
	}

	names := make([]string, 0, len(result.Artifacts))
	for _, a := range result.Artifacts {
		names = append(names, a.ContractName)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(r.out, "  %s %s\n", faintStyle.Sprint("•"), name)
	}

	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Compiled %d sources with solc %s in %s",
		result.Sources, result.Version, result.Duration.Round(time.Millisecond))))
	fmt.Fprintf(r.out, "📁 Artifacts written to %s\n", getRelativePath(result.BuildDir))
	return nil
}
