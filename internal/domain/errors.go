package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrNetworkNotConfigured is returned when a network name is not in the project config
	ErrNetworkNotConfigured = errors.New("network not configured")

	// ErrNetworkNotSpecified is returned when an operation needs a network and none was given
	ErrNetworkNotSpecified = errors.New("network not specified")

	// ErrMissingEnv is returned when a required environment variable is unset
	ErrMissingEnv = errors.New("missing environment variable")

	// ErrInvalidUnit is returned for unknown denominations or inexact amounts
	ErrInvalidUnit = errors.New("invalid unit")

	// ErrInvalidSecret is returned when deployer key material can't be parsed
	ErrInvalidSecret = errors.New("invalid deployer secret")

	// ErrChainIDMismatch is returned when the endpoint reports a different chain than network_id
	ErrChainIDMismatch = errors.New("chain ID mismatch")

	// ErrCompilerVersionMismatch is returned when the installed solc differs from the pinned version
	ErrCompilerVersionMismatch = errors.New("compiler version mismatch")

	// ErrCompilationFailed is returned when solc reports error diagnostics
	ErrCompilationFailed = errors.New("compilation failed")

	// ErrPluginNotEnabled is returned when a command requires a plugin missing from the plugin list
	ErrPluginNotEnabled = errors.New("plugin not enabled")

	// ErrDryRunFailed is returned when the pre-flight simulation rejects a transaction
	ErrDryRunFailed = errors.New("dry run failed")

	// ErrTransactionFailed is returned when a mined transaction has a failed status
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrMissingAPIKey is returned when a verification service has no credentials
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrVerificationFailed is returned when contract verification fails
	ErrVerificationFailed = errors.New("verification failed")

	// ErrContractNotFound is returned when an artifact can't be found
	ErrContractNotFound = errors.New("contract not found")

	// ErrNotDeployed is returned when an artifact has no address for the selected network
	ErrNotDeployed = errors.New("contract not deployed on network")

	// ErrCancelled is returned when the user declines a confirmation prompt
	ErrCancelled = errors.New("cancelled")
)

// MissingEnvError lists every required environment variable that is unset.
type MissingEnvError struct {
	Network string
	Vars    []string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("network %s: missing environment variables: %s (set them in .env)",
		e.Network, strings.Join(e.Vars, ", "))
}

func (e *MissingEnvError) Unwrap() error {
	return ErrMissingEnv
}

// ValidationError collects all problems found in a project config.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	problems := make([]string, len(e.Problems))
	copy(problems, e.Problems)
	sort.Strings(problems)

	var b strings.Builder
	b.WriteString("invalid project config:")
	for _, p := range problems {
		b.WriteString("\n  - ")
		b.WriteString(p)
	}
	return b.String()
}

// Add records a problem.
func (e *ValidationError) Add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

// OrNil returns nil when no problems were recorded.
func (e *ValidationError) OrNil() error {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}

// CompilerDiagnosticsError carries error-severity diagnostics returned by solc.
type CompilerDiagnosticsError struct {
	Messages []string
}

func (e *CompilerDiagnosticsError) Error() string {
	return fmt.Sprintf("%d compiler error(s):\n%s", len(e.Messages), strings.Join(e.Messages, "\n"))
}

func (e *CompilerDiagnosticsError) Unwrap() error {
	return ErrCompilationFailed
}
