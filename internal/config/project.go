package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/GainsNetwork/GNS-ethereum/internal/domain"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/config"
)

// ProjectFiles are the recognised project config file names, in lookup order.
var ProjectFiles = []string{"gns.toml", "gns.yaml", "gns.yml"}

// mochaSection accepts the test runner settings under their legacy name.
type mochaSection struct {
	EnableTimeouts *bool  `toml:"enableTimeouts" yaml:"enableTimeouts"`
	Timeout        int    `toml:"timeout" yaml:"timeout"`
	Reporter       string `toml:"reporter" yaml:"reporter"`
}

// projectFile is the on-disk shape: the config plus legacy aliases.
type projectFile struct {
	config.ProjectConfig `yaml:",inline"`
	Mocha                *mochaSection `toml:"mocha" yaml:"mocha"`
}

// LoadedProject is a decoded and validated project config.
type LoadedProject struct {
	Config   *config.ProjectConfig
	Path     string
	Warnings []string
}

// FindProjectFile returns the project config file in dir, if any.
func FindProjectFile(dir string) (string, bool) {
	for _, name := range ProjectFiles {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// LoadProjectConfig loads env files, decodes the project config from
// projectRoot, applies defaults and env expansion, and validates it.
func LoadProjectConfig(projectRoot string) (*LoadedProject, error) {
	warnings := LoadEnvFiles(projectRoot)

	path, ok := FindProjectFile(projectRoot)
	if !ok {
		return nil, fmt.Errorf("%w: no %s in %s", domain.ErrNotFound, strings.Join(ProjectFiles, "/"), projectRoot)
	}

	data, err := os.ReadFile(path) //nolint:gosec // project file path
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	cfg, decodeWarnings, err := DecodeProjectConfig(filepath.Base(path), data)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, decodeWarnings...)

	expandProjectEnv(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	return &LoadedProject{
		Config:   cfg,
		Path:     path,
		Warnings: warnings,
	}, nil
}

// DecodeProjectConfig decodes a TOML or YAML project file by file name and
// applies defaults. Unknown keys are reported as warnings.
func DecodeProjectConfig(name string, data []byte) (*config.ProjectConfig, []string, error) {
	var (
		raw      projectFile
		warnings []string
	)

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(false)
		if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
	default:
		md, err := toml.Decode(string(data), &raw)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		for _, key := range md.Undecoded() {
			warnings = append(warnings, fmt.Sprintf("unknown key %q in %s", key.String(), name))
		}
	}

	cfg := raw.ProjectConfig
	if raw.Mocha != nil {
		if cfg.Test.EnableTimeouts == nil {
			cfg.Test.EnableTimeouts = raw.Mocha.EnableTimeouts
		}
		if cfg.Test.Timeout == 0 {
			cfg.Test.Timeout = raw.Mocha.Timeout
		}
		if cfg.Test.Reporter == "" {
			cfg.Test.Reporter = raw.Mocha.Reporter
		}
	}

	applyDefaults(&cfg)
	sort.Strings(warnings)
	return &cfg, warnings, nil
}

func applyDefaults(cfg *config.ProjectConfig) {
	if cfg.Networks == nil {
		cfg.Networks = make(map[string]config.NetworkConfig)
	}
	if cfg.APIKeys == nil {
		cfg.APIKeys = make(map[string]string)
	}
	if len(cfg.Test.Runner) == 0 {
		cfg.Test.Runner = []string{"npx", "mocha"}
	}
}
