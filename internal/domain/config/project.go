package config

import (
	"fmt"
	"strconv"

	"github.com/GainsNetwork/GNS-ethereum/internal/domain/units"
)

const (
	// DefaultContractsDirectory is where Solidity sources live unless configured
	DefaultContractsDirectory = "./contracts"

	// DefaultDerivationPath is the BIP-44 base path for Ethereum accounts
	DefaultDerivationPath = "m/44'/60'/0'/0"

	// AnyNetworkID accepts whatever chain the endpoint reports
	AnyNetworkID = "*"
)

// ProjectConfig is the declarative project configuration read from gns.toml.
type ProjectConfig struct {
	// BuildDirectory receives compiled artifacts
	BuildDirectory string `toml:"contracts_build_directory" yaml:"contracts_build_directory" json:"contracts_build_directory"`

	// ContractsDirectory holds the Solidity sources
	ContractsDirectory string `toml:"contracts_directory,omitempty" yaml:"contracts_directory,omitempty" json:"contracts_directory,omitempty"`

	Networks  map[string]NetworkConfig `toml:"networks" yaml:"networks" json:"networks"`
	Test      TestConfig               `toml:"test" yaml:"test" json:"test"`
	Compilers CompilersConfig          `toml:"compilers" yaml:"compilers" json:"compilers"`
	Plugins   []string                 `toml:"plugins" yaml:"plugins" json:"plugins"`
	APIKeys   map[string]string        `toml:"api_keys" yaml:"api_keys" json:"api_keys"`
}

// NetworkConfig describes how to reach and transact on one network.
type NetworkConfig struct {
	// Provider builds a signing connection from environment values.
	// Networks without a provider connect to Host:Port unsigned.
	Provider *ProviderConfig `toml:"provider,omitempty" yaml:"provider,omitempty" json:"provider,omitempty"`
	Host     string          `toml:"host,omitempty" yaml:"host,omitempty" json:"host,omitempty"`
	Port     int             `toml:"port,omitzero" yaml:"port,omitempty" json:"port,omitempty"`

	NetworkID      string     `toml:"network_id" yaml:"network_id" json:"network_id"`
	GasPrice       *units.Wei `toml:"gas_price,omitempty" yaml:"gas_price,omitempty" json:"gas_price,omitempty"`
	Gas            uint64     `toml:"gas,omitzero" yaml:"gas,omitempty" json:"gas,omitempty"`
	SkipDryRun     bool       `toml:"skip_dry_run" yaml:"skip_dry_run" json:"skip_dry_run"`
	Confirmations  uint64     `toml:"confirmations,omitzero" yaml:"confirmations,omitempty" json:"confirmations,omitempty"`
	From           string     `toml:"from,omitempty" yaml:"from,omitempty" json:"from,omitempty"`
	ExplorerAPIURL string     `toml:"explorer_api_url,omitempty" yaml:"explorer_api_url,omitempty" json:"explorer_api_url,omitempty"`
}

// ProviderConfig names the environment variables holding deployer key
// material and the RPC endpoint. Values are never stored in the file.
type ProviderConfig struct {
	SecretEnv      string `toml:"secret_env" yaml:"secret_env" json:"secret_env"`
	EndpointEnv    string `toml:"endpoint_env" yaml:"endpoint_env" json:"endpoint_env"`
	PassphraseEnv  string `toml:"passphrase_env,omitempty" yaml:"passphrase_env,omitempty" json:"passphrase_env,omitempty"`
	DerivationPath string `toml:"derivation_path,omitempty" yaml:"derivation_path,omitempty" json:"derivation_path,omitempty"`
	AddressIndex   uint32 `toml:"address_index,omitzero" yaml:"address_index,omitempty" json:"address_index,omitempty"`
	NumAddresses   uint32 `toml:"num_addresses,omitzero" yaml:"num_addresses,omitempty" json:"num_addresses,omitempty"`
}

// TestConfig configures the external test runner.
type TestConfig struct {
	Runner []string `toml:"runner,omitempty" yaml:"runner,omitempty" json:"runner,omitempty"`
	// EnableTimeouts=false disables runner timeouts entirely; nil keeps the runner default.
	EnableTimeouts *bool    `toml:"enable_timeouts" yaml:"enable_timeouts,omitempty" json:"enable_timeouts,omitempty"`
	Timeout        int      `toml:"timeout,omitzero" yaml:"timeout,omitempty" json:"timeout,omitempty"` // milliseconds
	Reporter       string   `toml:"reporter,omitempty" yaml:"reporter,omitempty" json:"reporter,omitempty"`
	Files          []string `toml:"files,omitempty" yaml:"files,omitempty" json:"files,omitempty"`
}

// TimeoutsEnabled reports whether the runner should apply timeouts.
func (t TestConfig) TimeoutsEnabled() bool {
	return t.EnableTimeouts == nil || *t.EnableTimeouts
}

// CompilersConfig holds per-compiler settings.
type CompilersConfig struct {
	Solc SolcConfig `toml:"solc" yaml:"solc" json:"solc"`
}

// SolcConfig pins the solc version and its settings.
type SolcConfig struct {
	Version  string       `toml:"version" yaml:"version" json:"version"`
	Path     string       `toml:"path,omitempty" yaml:"path,omitempty" json:"path,omitempty"`
	Settings SolcSettings `toml:"settings" yaml:"settings" json:"settings"`
}

// SolcSettings maps onto the standard-json "settings" object.
type SolcSettings struct {
	Optimizer  OptimizerConfig `toml:"optimizer" yaml:"optimizer" json:"optimizer"`
	EvmVersion string          `toml:"evm_version,omitempty" yaml:"evm_version,omitempty" json:"evmVersion,omitempty"`
}

// OptimizerConfig mirrors solc optimizer parameters.
type OptimizerConfig struct {
	Enabled bool `toml:"enabled" yaml:"enabled" json:"enabled"`
	Runs    int  `toml:"runs" yaml:"runs" json:"runs"`
}

// ChainID parses NetworkID. ok is false for "*".
func (n NetworkConfig) ChainID() (id uint64, ok bool, err error) {
	if n.NetworkID == AnyNetworkID {
		return 0, false, nil
	}
	id, err = strconv.ParseUint(n.NetworkID, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid network_id %q: %w", n.NetworkID, err)
	}
	return id, true, nil
}

// HostURL returns the http endpoint for host/port networks.
func (n NetworkConfig) HostURL() string {
	if n.Host == "" {
		return ""
	}
	port := n.Port
	if port == 0 {
		port = 8545
	}
	return fmt.Sprintf("http://%s:%d", n.Host, port)
}

// DerivationPathOrDefault returns the configured path or m/44'/60'/0'/0.
func (p ProviderConfig) DerivationPathOrDefault() string {
	if p.DerivationPath == "" {
		return DefaultDerivationPath
	}
	return p.DerivationPath
}

// NumAddressesOrDefault returns the configured account count, at least one.
func (p ProviderConfig) NumAddressesOrDefault() uint32 {
	if p.NumAddresses == 0 {
		return 1
	}
	return p.NumAddresses
}

// HasPlugin reports whether name is in the plugin list.
func (c *ProjectConfig) HasPlugin(name string) bool {
	for _, p := range c.Plugins {
		if p == name {
			return true
		}
	}
	return false
}

// ContractsDirOrDefault returns the source directory.
func (c *ProjectConfig) ContractsDirOrDefault() string {
	if c.ContractsDirectory == "" {
		return DefaultContractsDirectory
	}
	return c.ContractsDirectory
}
