package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"

	"github.com/GainsNetwork/GNS-ethereum/internal/domain/config"
)

// envVarPattern matches ${VAR_NAME} patterns in config values
var envVarPattern = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// envNamePattern matches a valid environment variable name
var envNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// EnvFiles lists dotenv files in load order. Earlier files win because
// godotenv never overrides variables that are already set.
var EnvFiles = []string{".env.local", ".env"}

// DetectEnvVar checks if a raw value is a simple ${VAR_NAME} reference.
// Returns the variable name and true if the value is a pure env var reference.
func DetectEnvVar(rawValue string) (string, bool) {
	matches := envVarPattern.FindStringSubmatch(rawValue)
	if len(matches) == 2 {
		return matches[1], true
	}
	return "", false
}

// IsValidEnvName reports whether name can be used as an environment variable.
func IsValidEnvName(name string) bool {
	return envNamePattern.MatchString(name)
}

// LoadEnvFiles loads .env.local and .env from the project root. The process
// environment always takes precedence. Returns warnings for unreadable files.
func LoadEnvFiles(projectRoot string) []string {
	var warnings []string
	for _, name := range EnvFiles {
		envFile := filepath.Join(projectRoot, name)
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			warnings = append(warnings, fmt.Sprintf("failed to load %s: %v", name, err))
		}
	}
	return warnings
}

// EnvPurpose describes what a required environment variable holds.
type EnvPurpose string

const (
	EnvPurposeSecret     EnvPurpose = "secret"
	EnvPurposeEndpoint   EnvPurpose = "endpoint"
	EnvPurposePassphrase EnvPurpose = "passphrase"
)

// EnvRequirement is one environment variable a network provider reads.
type EnvRequirement struct {
	Network  string
	Name     string
	Purpose  EnvPurpose
	Optional bool
}

// RequiredEnv lists the environment variables a network's provider reads.
// Host/port networks need none.
func RequiredEnv(networkName string, network config.NetworkConfig) []EnvRequirement {
	if network.Provider == nil {
		return nil
	}
	reqs := []EnvRequirement{
		{Network: networkName, Name: network.Provider.SecretEnv, Purpose: EnvPurposeSecret},
		{Network: networkName, Name: network.Provider.EndpointEnv, Purpose: EnvPurposeEndpoint},
	}
	if network.Provider.PassphraseEnv != "" {
		reqs = append(reqs, EnvRequirement{
			Network:  networkName,
			Name:     network.Provider.PassphraseEnv,
			Purpose:  EnvPurposePassphrase,
			Optional: true,
		})
	}
	return reqs
}

// MissingEnv returns the names of required variables that are unset or empty.
func MissingEnv(reqs []EnvRequirement) []string {
	var missing []string
	for _, r := range reqs {
		if r.Optional {
			continue
		}
		if strings.TrimSpace(os.Getenv(r.Name)) == "" {
			missing = append(missing, r.Name)
		}
	}
	return missing
}

// expandProjectEnv expands ${VAR} references in free-form string fields.
func expandProjectEnv(cfg *config.ProjectConfig) {
	cfg.BuildDirectory = os.ExpandEnv(cfg.BuildDirectory)
	cfg.ContractsDirectory = os.ExpandEnv(cfg.ContractsDirectory)
	cfg.Compilers.Solc.Path = os.ExpandEnv(cfg.Compilers.Solc.Path)

	for name, network := range cfg.Networks {
		network.Host = os.ExpandEnv(network.Host)
		network.From = os.ExpandEnv(network.From)
		network.ExplorerAPIURL = os.ExpandEnv(network.ExplorerAPIURL)
		cfg.Networks[name] = network
	}

	for service, key := range cfg.APIKeys {
		cfg.APIKeys[service] = os.ExpandEnv(key)
	}
}
