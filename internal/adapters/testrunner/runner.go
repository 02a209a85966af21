package testrunner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/creack/pty"

	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

// RunnerAdapter runs the JS test command, under a pty when possible so the
// runner keeps its colours and progress output.
type RunnerAdapter struct {
	log    *slog.Logger
	out    io.Writer
	usePTY bool
}

// NewRunnerAdapter creates a runner writing to stdout
func NewRunnerAdapter(log *slog.Logger) *RunnerAdapter {
	return &RunnerAdapter{
		log:    log.With("component", "testrunner"),
		out:    os.Stdout,
		usePTY: true,
	}
}

const waitDelay = 2 * time.Second

// Run executes argv in dir and fails on a non-zero exit
func (r *RunnerAdapter) Run(ctx context.Context, dir string, argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("test runner command is empty")
	}

	start := time.Now()
	r.log.Debug("running tests", "argv", argv, "dir", dir)

	err := r.start(ctx, dir, argv)
	r.log.Debug("tests finished", "duration", time.Since(start), "error", err)
	if err == nil {
		return nil
	}

	// A killed child only reports signal: killed
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("tests stopped after %s: %w", time.Since(start).Round(time.Millisecond), ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("tests failed: %s exited with code %d", argv[0], exitErr.ExitCode())
	}
	return fmt.Errorf("failed to run %s: %w", argv[0], err)
}

func (r *RunnerAdapter) start(ctx context.Context, dir string, argv []string) error {
	command := func() *exec.Cmd {
		cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
		cmd.Dir = dir
		// Grandchildren holding stdout open must not outlive a cancelled run
		cmd.WaitDelay = waitDelay
		cmd.Env = os.Environ()
		return cmd
	}

	if r.usePTY {
		cmd := command()
		ptyFile, err := pty.Start(cmd)
		if err == nil {
			defer func() {
				// Close PTY after command finishes to avoid read errors
				_ = ptyFile.Close()
			}()
			// EIO marks the end of output once the child exits
			_, _ = io.Copy(r.out, ptyFile)
			return cmd.Wait()
		}
		if errors.Is(err, exec.ErrNotFound) {
			return err
		}
		r.log.Debug("pty unavailable, falling back to pipes", "error", err)
	}

	cmd := command()
	cmd.Stdout = r.out
	cmd.Stderr = r.out
	return cmd.Run()
}

var _ usecase.TestRunner = (*RunnerAdapter)(nil)
