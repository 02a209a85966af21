package progress

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

// LineProgress prints one line per progress event, for CI logs and pipes
type LineProgress struct {
	out       io.Writer
	startTime time.Time
	now       func() time.Time
}

// NewLineProgress creates a line-oriented progress reporter
func NewLineProgress(out io.Writer) *LineProgress {
	return &LineProgress{
		out:       out,
		startTime: time.Now(),
		now:       time.Now,
	}
}

// OnProgress handles progress events
func (p *LineProgress) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	switch usecase.ExecutionStage(event.Stage) {
	case usecase.StageCompleted:
		duration := p.now().Sub(p.startTime)
		msg := event.Message
		if msg == "" {
			msg = "Done"
		}
		color.New(color.FgGreen).Fprintf(p.out, "%s in %s\n", msg, duration.Round(time.Millisecond))
	default:
		if event.Message == "" {
			return
		}
		if event.Total > 0 {
			fmt.Fprintf(p.out, "[%d/%d] %s\n", event.Current, event.Total, event.Message)
			return
		}
		fmt.Fprintln(p.out, event.Message)
	}
}

// Info prints an info message
func (p *LineProgress) Info(message string) {
	color.New(color.FgCyan).Fprintln(p.out, message)
}

// Error prints an error message
func (p *LineProgress) Error(message string) {
	color.New(color.FgRed).Fprintln(p.out, message)
}

// Ensure it implements the interface
var _ usecase.ProgressSink = (*LineProgress)(nil)
