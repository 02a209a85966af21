package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GainsNetwork/GNS-ethereum/internal/domain/config"
)

func TestShouldShowConfigWarnings(t *testing.T) {
	warned := &config.RuntimeConfig{Warnings: []string{`unknown key "networks.dev.websockets" in gns.toml`}}

	tests := []struct {
		name     string
		cmdName  string
		cfg      *config.RuntimeConfig
		expected bool
	}{
		{
			name:     "shows warnings for regular commands",
			cmdName:  "deploy",
			cfg:      warned,
			expected: true,
		},
		{
			name:     "nothing to show",
			cmdName:  "deploy",
			cfg:      &config.RuntimeConfig{},
			expected: false,
		},
		{
			name:     "suppressed for project command",
			cmdName:  "project",
			cfg:      warned,
			expected: false,
		},
		{
			name:     "suppressed for version command",
			cmdName:  "version",
			cfg:      warned,
			expected: false,
		},
		{
			name:    "suppressed when json flag is set",
			cmdName: "networks",
			cfg: &config.RuntimeConfig{
				JSON:     true,
				Warnings: warned.Warnings,
			},
			expected: false,
		},
		{
			name:     "not shown when config is nil",
			cmdName:  "compile",
			cfg:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shouldShowConfigWarnings(tt.cmdName, tt.cfg))
		})
	}
}

func TestRootCommandTree(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"compile", "test", "deploy", "verify", "init", "project", "networks", "env", "plugins", "config", "units", "version"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	for _, flag := range []string{"network", "debug", "non-interactive", "json", "timeout"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
	assert.Equal(t, "n", root.PersistentFlags().Lookup("network").Shorthand)
	assert.Nil(t, root.PersistentFlags().Lookup("namespace"))
}
