package usecase

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	internalconfig "github.com/GainsNetwork/GNS-ethereum/internal/config"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/config"
)

// CheckEnvParams selects which networks to check
type CheckEnvParams struct {
	// Network to check; empty means the selected network, or all of them
	Network string
}

// EnvCheck is the outcome for one environment variable
type EnvCheck struct {
	EnvValue
	Problem string
}

// NetworkEnvCheck is the outcome for one network
type NetworkEnvCheck struct {
	Network    string
	Host       string
	Vars       []EnvCheck
	SecretKind string
	Deployer   common.Address
	OK         bool
}

// CheckEnvResult contains every checked network
type CheckEnvResult struct {
	Networks []NetworkEnvCheck
}

// CheckEnv verifies that the environment a network provider reads is
// present and well formed, without connecting anywhere.
type CheckEnv struct {
	cfg       *config.RuntimeConfig
	inspector SecretInspector
	env       func(string) string
}

// NewCheckEnv creates a new CheckEnv use case
func NewCheckEnv(cfg *config.RuntimeConfig, inspector SecretInspector) *CheckEnv {
	return &CheckEnv{
		cfg:       cfg,
		inspector: inspector,
		env:       os.Getenv,
	}
}

// Run executes the use case. The result is returned alongside the error so
// callers can show which checks passed.
func (uc *CheckEnv) Run(ctx context.Context, params CheckEnvParams) (*CheckEnvResult, error) {
	names, err := uc.networks(params.Network)
	if err != nil {
		return nil, err
	}

	result := &CheckEnvResult{}
	var (
		missing      []string
		missingNets  []string
		invalidCount int
	)

	for _, name := range names {
		check := uc.checkNetwork(name, uc.cfg.Project.Networks[name])
		result.Networks = append(result.Networks, check)

		var netMissing bool
		for _, v := range check.Vars {
			if !v.Set && !v.Optional {
				missing = append(missing, v.Name)
				netMissing = true
			} else if v.Problem != "" {
				invalidCount++
			}
		}
		if netMissing {
			missingNets = append(missingNets, name)
		}
	}

	if len(missing) > 0 {
		return result, &domain.MissingEnvError{Network: strings.Join(missingNets, ", "), Vars: missing}
	}
	if invalidCount > 0 {
		return result, fmt.Errorf("%d environment variable(s) are set but invalid", invalidCount)
	}
	return result, nil
}

func (uc *CheckEnv) networks(requested string) ([]string, error) {
	if requested == "" {
		requested = uc.cfg.NetworkName
	}
	if requested == "" {
		return internalconfig.NetworkNames(uc.cfg.Project), nil
	}
	if _, ok := uc.cfg.Project.Networks[requested]; !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", domain.ErrNetworkNotConfigured, requested,
			strings.Join(internalconfig.NetworkNames(uc.cfg.Project), ", "))
	}
	return []string{requested}, nil
}

func (uc *CheckEnv) checkNetwork(name string, n config.NetworkConfig) NetworkEnvCheck {
	check := NetworkEnvCheck{Network: name, OK: true}
	if n.Provider == nil {
		check.Host = n.HostURL()
		return check
	}

	passphrase := strings.TrimSpace(uc.env(n.Provider.PassphraseEnv))
	for _, req := range internalconfig.RequiredEnv(name, n) {
		value := strings.TrimSpace(uc.env(req.Name))
		v := EnvCheck{EnvValue: EnvValue{
			Network:  name,
			Name:     req.Name,
			Purpose:  string(req.Purpose),
			Optional: req.Optional,
			Set:      value != "",
		}}

		switch {
		case !v.Set && !v.Optional:
			v.Problem = "not set"
		case !v.Set:
		case req.Purpose == internalconfig.EnvPurposeSecret:
			v.Display = uc.inspector.Redact(value)
			info, err := uc.inspector.Inspect(value, *n.Provider, passphrase)
			if err != nil {
				v.Problem = err.Error()
			} else {
				check.SecretKind = info.Kind
				check.Deployer = info.Address
			}
		case req.Purpose == internalconfig.EnvPurposeEndpoint:
			v.Display = RedactURL(value)
			if err := checkEndpoint(value); err != nil {
				v.Problem = err.Error()
			}
		default:
			v.Display = uc.inspector.Redact(value)
		}

		if v.Problem != "" {
			check.OK = false
		}
		check.Vars = append(check.Vars, v)
	}
	return check
}

// checkEndpoint accepts http(s) and ws(s) URLs with a host.
func checkEndpoint(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("not a URL")
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return fmt.Errorf("unsupported scheme %q (want http, https, ws or wss)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}
