package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/GainsNetwork/GNS-ethereum/internal/domain/config"
)

// RunTestsParams contains parameters for a test run
type RunTestsParams struct {
	// Files overrides [test] files
	Files []string
	// Grep only runs tests matching the pattern
	Grep string
}

// RunTestsResult contains the outcome of a test run
type RunTestsResult struct {
	Argv     []string
	Duration time.Duration
}

// RunTests runs the project's JavaScript test command
type RunTests struct {
	cfg    *config.RuntimeConfig
	runner TestRunner
}

// NewRunTests creates a new RunTests use case
func NewRunTests(cfg *config.RuntimeConfig, runner TestRunner) *RunTests {
	return &RunTests{
		cfg:    cfg,
		runner: runner,
	}
}

// Run executes the use case
func (uc *RunTests) Run(ctx context.Context, params RunTestsParams) (*RunTestsResult, error) {
	argv := TestArgv(uc.cfg.Project.Test, params)
	if len(argv) == 0 {
		return nil, fmt.Errorf("no test runner configured ([test] runner)")
	}

	start := time.Now()
	err := uc.runner.Run(ctx, uc.cfg.ProjectRoot, argv)
	return &RunTestsResult{Argv: argv, Duration: time.Since(start)}, err
}

// TestArgv builds the runner command line from the [test] section.
func TestArgv(test config.TestConfig, params RunTestsParams) []string {
	argv := append([]string(nil), test.Runner...)
	if len(argv) == 0 {
		return nil
	}

	switch {
	case !test.TimeoutsEnabled():
		argv = append(argv, "--no-timeouts")
	case test.Timeout > 0:
		argv = append(argv, "--timeout", strconv.Itoa(test.Timeout))
	}
	if test.Reporter != "" {
		argv = append(argv, "--reporter", test.Reporter)
	}
	if params.Grep != "" {
		argv = append(argv, "--grep", params.Grep)
	}

	files := params.Files
	if len(files) == 0 {
		files = test.Files
	}
	return append(argv, files...)
}
