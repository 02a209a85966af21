package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string
	ConfigFile  string // Absolute path of gns.toml / gns.yaml

	// Context settings
	NetworkName string         // empty if not specified
	Network     *NetworkConfig // nil if not specified

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool // Output in JSON format
	Timeout        time.Duration

	// Resolved configurations
	Project *ProjectConfig

	// Warnings collected while loading (unknown keys, env file problems)
	Warnings []string
}
