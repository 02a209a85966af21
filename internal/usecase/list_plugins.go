package usecase

import (
	"context"

	"github.com/GainsNetwork/GNS-ethereum/internal/domain"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/config"
)

// PluginStatus describes one configured plugin
type PluginStatus struct {
	Name        string
	Known       bool
	Description string
	Commands    []string
}

// ListPluginsResult contains the configured plugins in order
type ListPluginsResult struct {
	Plugins []PluginStatus
}

// ListPlugins lists configured plugins and the commands they enable
type ListPlugins struct {
	cfg *config.RuntimeConfig
}

// NewListPlugins creates a new ListPlugins use case
func NewListPlugins(cfg *config.RuntimeConfig) *ListPlugins {
	return &ListPlugins{cfg: cfg}
}

// Run executes the use case
func (uc *ListPlugins) Run(ctx context.Context) (*ListPluginsResult, error) {
	result := &ListPluginsResult{Plugins: make([]PluginStatus, 0, len(uc.cfg.Project.Plugins))}
	for _, name := range uc.cfg.Project.Plugins {
		status := PluginStatus{Name: name}
		if info, ok := domain.LookupPlugin(name); ok {
			status.Known = true
			status.Description = info.Description
			status.Commands = info.Commands
		}
		result.Plugins = append(result.Plugins, status)
	}
	return result, nil
}
