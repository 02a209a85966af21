package config

import "strings"

// LocalConfig represents the local, uncommitted gns configuration
type LocalConfig struct {
	Network string `json:"network"`
}

// ConfigKey represents a configuration key
type ConfigKey string

const (
	ConfigKeyNetwork ConfigKey = "network"
)

// DefaultLocalConfig returns the default local configuration
func DefaultLocalConfig() *LocalConfig {
	return &LocalConfig{}
}

// ValidConfigKeys returns all valid configuration keys
func ValidConfigKeys() []ConfigKey {
	return []ConfigKey{
		ConfigKeyNetwork,
	}
}

// IsValidConfigKey checks if a key is valid
func IsValidConfigKey(key string) bool {
	for _, validKey := range ValidConfigKeys() {
		if NormalizeConfigKey(key) == validKey {
			return true
		}
	}
	return false
}

// NormalizeConfigKey normalizes a config key
func NormalizeConfigKey(key string) ConfigKey {
	return ConfigKey(strings.ToLower(strings.TrimSpace(key)))
}
