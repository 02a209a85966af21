package progress

import (
	"context"
	"io"

	"github.com/GainsNetwork/GNS-ethereum/internal/domain/config"
	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

// NopSink is a no-op implementation of ProgressSink
type NopSink struct{}

// NewNopSink creates a new no-op progress sink
func NewNopSink() usecase.ProgressSink {
	return &NopSink{}
}

// OnProgress does nothing with progress events
func (n *NopSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {}

// Info does nothing with info messages
func (n *NopSink) Info(message string) {}

// Error does nothing with error messages
func (n *NopSink) Error(message string) {}

// NewSink picks the progress sink for the current output mode: nothing for
// JSON output, plain lines when non-interactive, a spinner otherwise.
func NewSink(cfg *config.RuntimeConfig, out io.Writer) usecase.ProgressSink {
	switch {
	case cfg.JSON:
		return NewNopSink()
	case cfg.NonInteractive:
		return NewLineProgress(out)
	default:
		return NewSpinnerProgressReporter(out)
	}
}

// Ensure NopSink implements ProgressSink
var _ usecase.ProgressSink = (*NopSink)(nil)
