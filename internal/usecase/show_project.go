package usecase

import (
	"context"
	"net/url"
	"os"
	"strings"

	internalconfig "github.com/GainsNetwork/GNS-ethereum/internal/config"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/config"
)

// EnvValue is an environment variable a network reads, shown redacted
type EnvValue struct {
	Network  string
	Name     string
	Purpose  string
	Optional bool
	Set      bool
	Display  string
}

// ShowProjectResult is the resolved project configuration, safe to print
type ShowProjectResult struct {
	Path     string
	Root     string
	Project  *config.ProjectConfig
	Env      []EnvValue
	Warnings []string
}

// ShowProject shows the resolved project configuration with secrets redacted
type ShowProject struct {
	cfg       *config.RuntimeConfig
	inspector SecretInspector
	env       func(string) string
}

// NewShowProject creates a new ShowProject use case
func NewShowProject(cfg *config.RuntimeConfig, inspector SecretInspector) *ShowProject {
	return &ShowProject{
		cfg:       cfg,
		inspector: inspector,
		env:       os.Getenv,
	}
}

// Run executes the use case
func (uc *ShowProject) Run(ctx context.Context) (*ShowProjectResult, error) {
	project := *uc.cfg.Project

	// API keys are credentials too
	project.APIKeys = make(map[string]string, len(uc.cfg.Project.APIKeys))
	for service, key := range uc.cfg.Project.APIKeys {
		project.APIKeys[service] = uc.inspector.Redact(key)
	}

	result := &ShowProjectResult{
		Path:     uc.cfg.ConfigFile,
		Root:     uc.cfg.ProjectRoot,
		Project:  &project,
		Warnings: uc.cfg.Warnings,
	}

	for _, name := range internalconfig.NetworkNames(&project) {
		for _, req := range internalconfig.RequiredEnv(name, project.Networks[name]) {
			value := strings.TrimSpace(uc.env(req.Name))
			ev := EnvValue{
				Network:  name,
				Name:     req.Name,
				Purpose:  string(req.Purpose),
				Optional: req.Optional,
				Set:      value != "",
			}
			if ev.Set {
				if req.Purpose == internalconfig.EnvPurposeEndpoint {
					ev.Display = RedactURL(value)
				} else {
					ev.Display = uc.inspector.Redact(value)
				}
			}
			result.Env = append(result.Env, ev)
		}
	}

	return result, nil
}

// RedactURL keeps the scheme and host of an endpoint and hides paths,
// query strings and credentials, where providers put project keys.
func RedactURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return "****"
	}
	out := u.Scheme + "://" + u.Host
	if (u.Path != "" && u.Path != "/") || u.RawQuery != "" {
		out += "/…"
	}
	return out
}
