package usecase

import (
	"context"
	"fmt"

	internalconfig "github.com/GainsNetwork/GNS-ethereum/internal/config"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/config"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct {
	// Check asks each endpoint for its chain id
	Check bool
}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
	Selected string
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Name       string
	NetworkID  string
	Endpoint   string // $ENV_NAME for provider networks, the URL for host networks
	Signed     bool
	GasPrice   string
	SkipDryRun bool
	Explorer   string

	// Filled when checking
	Checked  bool
	ChainID  uint64
	Cached   bool
	Mismatch bool
	Error    error
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	cfg      *config.RuntimeConfig
	resolver ChainIDResolver
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(cfg *config.RuntimeConfig, resolver ChainIDResolver) *ListNetworks {
	return &ListNetworks{
		cfg:      cfg,
		resolver: resolver,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	project := uc.cfg.Project
	names := internalconfig.NetworkNames(project)

	var probes map[string]ChainProbe
	if params.Check && len(names) > 0 {
		probes = uc.resolver.Resolve(ctx, project.Networks)
	}

	networks := make([]NetworkStatus, 0, len(names))
	for _, name := range names {
		n := project.Networks[name]
		status := NetworkStatus{
			Name:       name,
			NetworkID:  n.NetworkID,
			Signed:     n.Provider != nil,
			SkipDryRun: n.SkipDryRun,
		}

		switch {
		case n.Provider != nil:
			status.Endpoint = "$" + n.Provider.EndpointEnv
		default:
			status.Endpoint = n.HostURL()
		}

		if n.GasPrice != nil {
			status.GasPrice = n.GasPrice.In("gwei")
		} else {
			status.GasPrice = "auto"
		}

		if id, ok, err := n.ChainID(); err == nil && ok {
			status.Explorer = domain.ExplorerURL(id)
		}

		if probe, ok := probes[name]; ok {
			status.Checked = true
			status.ChainID = probe.ChainID
			status.Cached = probe.Cached
			status.Error = probe.Err
			if probe.Err == nil {
				if id, ok, _ := n.ChainID(); ok && id != probe.ChainID {
					status.Mismatch = true
					status.Error = fmt.Errorf("%w: endpoint reports %d, network_id is %s",
						domain.ErrChainIDMismatch, probe.ChainID, n.NetworkID)
				}
				if status.Explorer == "" {
					status.Explorer = domain.ExplorerURL(probe.ChainID)
				}
			}
		}

		networks = append(networks, status)
	}

	return &ListNetworksResult{
		Networks: networks,
		Selected: uc.cfg.NetworkName,
	}, nil
}
