package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GainsNetwork/GNS-ethereum/internal/domain"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

// isolate runs the test in a fresh directory with none of the tool's
// environment variables set.
func isolate(t *testing.T) string {
	t.Helper()
	for _, name := range []string{
		"GNS_NETWORK", "GNS_JSON", "GNS_NON_INTERACTIVE", "GNS_DEBUG", "GNS_TIMEOUT",
		"GOV_FUND_DEPLOYER", "INFURA_ENDPOINT_MAINNET",
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

// gns runs the root command in-process and returns stdout with colors removed.
func gns(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.ExecuteContext(context.Background())
	return ansiPattern.ReplaceAllString(stdout.String(), ""), err
}

func TestStandaloneCommands(t *testing.T) {
	isolate(t)

	t.Run("version", func(t *testing.T) {
		out, err := gns(t, "version")
		require.NoError(t, err)
		assert.Contains(t, out, "gns version dev")
	})

	t.Run("units", func(t *testing.T) {
		out, err := gns(t, "units", "120", "gwei", "--to", "wei")
		require.NoError(t, err)
		assert.Equal(t, "120000000000\n", out)
	})

	t.Run("units rejects unknown unit", func(t *testing.T) {
		_, err := gns(t, "units", "1", "gwie")
		assert.ErrorIs(t, err, domain.ErrInvalidUnit)
	})

	t.Run("project commands need a project file", func(t *testing.T) {
		_, err := gns(t, "networks")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "gns init")
	})
}

func TestInitializedProject(t *testing.T) {
	dir := isolate(t)

	out, err := gns(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "gns initialized successfully")
	assert.FileExists(t, filepath.Join(dir, "gns.toml"))
	assert.FileExists(t, filepath.Join(dir, ".env.example"))

	t.Run("init again leaves the project alone", func(t *testing.T) {
		out, err := gns(t, "init")
		require.NoError(t, err)
		assert.Contains(t, out, "already initialized")
	})

	t.Run("networks", func(t *testing.T) {
		out, err := gns(t, "networks")
		require.NoError(t, err)
		assert.Contains(t, out, "mainnet")
		assert.Contains(t, out, "INFURA_ENDPOINT_MAINNET")
	})

	t.Run("project as json", func(t *testing.T) {
		out, err := gns(t, "project", "--format", "json")
		require.NoError(t, err)
		assert.True(t, json.Valid([]byte(out)), out)
		assert.Contains(t, out, "./client/src/contracts_eth")
	})

	t.Run("plugins", func(t *testing.T) {
		out, err := gns(t, "plugins")
		require.NoError(t, err)
		assert.Contains(t, out, "truffle-plugin-verify")
		assert.Contains(t, out, "verify")
	})

	t.Run("env reports missing variables", func(t *testing.T) {
		_, err := gns(t, "env", "mainnet")
		var missing *domain.MissingEnvError
		require.ErrorAs(t, err, &missing)
		assert.ElementsMatch(t, []string{"GOV_FUND_DEPLOYER", "INFURA_ENDPOINT_MAINNET"}, missing.Vars)
	})

	t.Run("config set network", func(t *testing.T) {
		_, err := gns(t, "config", "set", "network", "mainnet")
		require.NoError(t, err)

		out, err := gns(t, "config")
		require.NoError(t, err)
		assert.Contains(t, out, "mainnet")

		_, err = gns(t, "config", "set", "network", "ropsten")
		assert.ErrorIs(t, err, domain.ErrNetworkNotConfigured)
	})
}

func TestCommandDeadline(t *testing.T) {
	isolate(t)
	_, err := gns(t, "init")
	require.NoError(t, err)

	// deadlineOf runs a throwaway subcommand through the root pre-run and
	// reports the deadline it was handed.
	deadlineOf := func(t *testing.T, args ...string) (time.Time, bool) {
		t.Helper()
		var deadline time.Time
		var hasDeadline bool
		root := NewRootCmd()
		root.AddCommand(&cobra.Command{
			Use: "deadline",
			RunE: func(cmd *cobra.Command, _ []string) error {
				deadline, hasDeadline = cmd.Context().Deadline()
				return nil
			},
		})
		root.SetArgs(append([]string{"deadline"}, args...))
		root.SetOut(&bytes.Buffer{})
		root.SetErr(&bytes.Buffer{})
		require.NoError(t, root.ExecuteContext(context.Background()))
		return deadline, hasDeadline
	}

	tests := []struct {
		name     string
		env      string
		args     []string
		expected time.Duration
	}{
		{name: "no deadline by default"},
		{name: "flag sets deadline", args: []string{"--timeout", "90s"}, expected: 90 * time.Second},
		{name: "env sets deadline", env: "45s", expected: 45 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.env != "" {
				t.Setenv("GNS_TIMEOUT", tt.env)
			}
			before := time.Now()
			deadline, ok := deadlineOf(t, tt.args...)
			if tt.expected == 0 {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.WithinDuration(t, before.Add(tt.expected), deadline, 5*time.Second)
		})
	}
}
