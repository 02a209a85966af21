package render

import (
	"fmt"
	"io"
	"time"

	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

// TestsRenderer renders the test runner summary
type TestsRenderer struct {
	out io.Writer
}

// NewTestsRenderer creates a new tests renderer
func NewTestsRenderer(out io.Writer) *TestsRenderer {
	return &TestsRenderer{out: out}
}

// Render prints how long the runner took
func (r *TestsRenderer) Render(result *usecase.RunTestsResult, err error) error {
	if err != nil {
		fmt.Fprintln(r.out, FormatError(fmt.Sprintf("tests failed after %s", result.Duration.Round(time.Millisecond))))
		return nil
	}
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Tests passed in %s", result.Duration.Round(time.Millisecond))))
	return nil
}
