package config

import (
	"net/url"
	"regexp"
	"sort"
	"strconv"

	"github.com/GainsNetwork/GNS-ethereum/internal/domain"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/config"
)

// solcVersionPattern accepts "0.7.5" and "0.7.5+commit.eb77ed08"
var solcVersionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(\+commit\.[0-9a-f]+)?$`)

// Validate checks a project config and reports every problem at once.
func Validate(cfg *config.ProjectConfig) error {
	verr := &domain.ValidationError{}

	if cfg.BuildDirectory == "" {
		verr.Add("contracts_build_directory must be set")
	}

	names := make([]string, 0, len(cfg.Networks))
	for name := range cfg.Networks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		validateNetwork(verr, name, cfg.Networks[name])
	}

	solc := cfg.Compilers.Solc
	if solc.Version != "" && !solcVersionPattern.MatchString(solc.Version) {
		verr.Add("compilers.solc.version %q is not a solc version (expected e.g. 0.7.5)", solc.Version)
	}
	if solc.Settings.Optimizer.Runs < 0 {
		verr.Add("compilers.solc.settings.optimizer.runs must not be negative")
	}
	if solc.Settings.Optimizer.Enabled && solc.Settings.Optimizer.Runs == 0 {
		verr.Add("compilers.solc.settings.optimizer.runs must be positive when the optimizer is enabled")
	}

	seen := make(map[string]bool, len(cfg.Plugins))
	for i, plugin := range cfg.Plugins {
		if plugin == "" {
			verr.Add("plugins[%d] is empty", i)
			continue
		}
		if seen[plugin] {
			verr.Add("plugin %q listed more than once", plugin)
		}
		seen[plugin] = true
	}

	if cfg.Test.Timeout < 0 {
		verr.Add("test.timeout must not be negative")
	}

	return verr.OrNil()
}

func validateNetwork(verr *domain.ValidationError, name string, n config.NetworkConfig) {
	prefix := "networks." + name

	if n.NetworkID == "" {
		verr.Add("%s.network_id must be set (use \"*\" to accept any chain)", prefix)
	} else if n.NetworkID != config.AnyNetworkID {
		if _, err := strconv.ParseUint(n.NetworkID, 10, 64); err != nil {
			verr.Add("%s.network_id %q must be numeric or \"*\"", prefix, n.NetworkID)
		}
	}

	switch {
	case n.Provider == nil && n.Host == "":
		verr.Add("%s needs either a provider or a host", prefix)
	case n.Provider != nil && n.Host != "":
		verr.Add("%s sets both provider and host", prefix)
	case n.Provider != nil:
		if !IsValidEnvName(n.Provider.SecretEnv) {
			verr.Add("%s.provider.secret_env %q is not an environment variable name", prefix, n.Provider.SecretEnv)
		}
		if !IsValidEnvName(n.Provider.EndpointEnv) {
			verr.Add("%s.provider.endpoint_env %q is not an environment variable name", prefix, n.Provider.EndpointEnv)
		}
		if n.Provider.PassphraseEnv != "" && !IsValidEnvName(n.Provider.PassphraseEnv) {
			verr.Add("%s.provider.passphrase_env %q is not an environment variable name", prefix, n.Provider.PassphraseEnv)
		}
	}

	if n.Port < 0 || n.Port > 65535 {
		verr.Add("%s.port %d is out of range", prefix, n.Port)
	}

	if n.ExplorerAPIURL != "" {
		if u, err := url.Parse(n.ExplorerAPIURL); err != nil || u.Scheme == "" || u.Host == "" {
			verr.Add("%s.explorer_api_url %q is not a URL", prefix, n.ExplorerAPIURL)
		}
	}
}
