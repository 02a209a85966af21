package config

import (
	"github.com/GainsNetwork/GNS-ethereum/internal/domain"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/config"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/units"
)

const (
	// DeployerSecretEnv holds the mainnet deployer mnemonic or private key
	DeployerSecretEnv = "GOV_FUND_DEPLOYER"

	// MainnetEndpointEnv holds the mainnet RPC endpoint URL
	MainnetEndpointEnv = "INFURA_ENDPOINT_MAINNET"
)

// DefaultProjectConfig returns the project configuration the repository ships with.
func DefaultProjectConfig() *config.ProjectConfig {
	timeouts := false
	return &config.ProjectConfig{
		BuildDirectory: "./client/src/contracts_eth",
		Networks: map[string]config.NetworkConfig{
			"mainnet": {
				Provider: &config.ProviderConfig{
					SecretEnv:   DeployerSecretEnv,
					EndpointEnv: MainnetEndpointEnv,
				},
				NetworkID:  "1",
				GasPrice:   units.MustParseWei("120 gwei"),
				SkipDryRun: true,
			},
		},
		Test: config.TestConfig{
			EnableTimeouts: &timeouts,
		},
		Compilers: config.CompilersConfig{
			Solc: config.SolcConfig{
				Version: "0.7.5",
				Settings: config.SolcSettings{
					Optimizer: config.OptimizerConfig{
						Enabled: true,
						Runs:    1000,
					},
				},
			},
		},
		Plugins: []string{domain.PluginVerify},
		APIKeys: map[string]string{},
	}
}
