package solc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/GainsNetwork/GNS-ethereum/internal/domain"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/config"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/models"
	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

// versionPattern pulls "0.7.5+commit.eb77ed08" out of `solc --version`.
var versionPattern = regexp.MustCompile(`Version:\s*(\d+\.\d+\.\d+)(\+commit\.[0-9a-f]+)?`)

// CompilerAdapter runs a local solc binary
type CompilerAdapter struct {
	log         *slog.Logger
	projectRoot string
	solc        config.SolcConfig

	lookPath func(string) (string, error)

	once    sync.Once
	binary  string
	version string
	err     error
}

// NewCompilerAdapter creates a compiler for the project's solc settings
func NewCompilerAdapter(cfg *config.RuntimeConfig, log *slog.Logger) *CompilerAdapter {
	return &CompilerAdapter{
		log:         log.With("component", "solc"),
		projectRoot: cfg.ProjectRoot,
		solc:        cfg.Project.Compilers.Solc,
		lookPath:    exec.LookPath,
	}
}

// candidates lists binaries to try, most specific first.
func (c *CompilerAdapter) candidates() []string {
	if c.solc.Path != "" {
		p := c.solc.Path
		if !filepath.IsAbs(p) && strings.ContainsRune(p, filepath.Separator) {
			p = filepath.Join(c.projectRoot, p)
		}
		return []string{p}
	}
	var names []string
	if v := baseVersion(c.solc.Version); v != "" {
		names = append(names, "solc-"+v, "solc-v"+v)
	}
	return append(names, "solc")
}

func (c *CompilerAdapter) resolve(ctx context.Context) (string, string, error) {
	c.once.Do(func() {
		var tried []string
		for _, name := range c.candidates() {
			path, err := c.lookPath(name)
			if err != nil {
				tried = append(tried, name)
				continue
			}
			c.binary = path
			break
		}
		if c.binary == "" {
			c.err = fmt.Errorf("solc not found (tried %s); install solc %s or set compilers.solc.path",
				strings.Join(tried, ", "), c.solc.Version)
			return
		}

		out, err := exec.CommandContext(ctx, c.binary, "--version").Output()
		if err != nil {
			c.err = fmt.Errorf("failed to run %s --version: %w", c.binary, err)
			return
		}
		c.version, c.err = ParseVersion(string(out))
		c.log.Debug("resolved solc", "binary", c.binary, "version", c.version)
	})
	return c.binary, c.version, c.err
}

// Version returns the full version of the resolved binary
func (c *CompilerAdapter) Version(ctx context.Context) (string, error) {
	_, version, err := c.resolve(ctx)
	return version, err
}

// CheckVersion compares an installed version with the pinned one.
// A pin without a commit matches any build of that release.
func CheckVersion(pinned, installed string) error {
	if pinned == "" {
		return nil
	}
	if strings.Contains(pinned, "+commit.") {
		if pinned == installed {
			return nil
		}
	} else if baseVersion(installed) == pinned {
		return nil
	}
	return fmt.Errorf("%w: project pins %s, found %s", domain.ErrCompilerVersionMismatch, pinned, installed)
}

// StandardInput builds the standard JSON input from project settings
func (c *CompilerAdapter) StandardInput(sources map[string]string) *models.StandardJSONInput {
	input := &models.StandardJSONInput{
		Language: "Solidity",
		Sources:  make(map[string]models.StandardSource, len(sources)),
		Settings: models.StandardSettings{
			Optimizer: models.StandardOptimizer{
				Enabled: c.solc.Settings.Optimizer.Enabled,
				Runs:    c.solc.Settings.Optimizer.Runs,
			},
			EVMVersion: c.solc.Settings.EvmVersion,
		},
	}
	for name, content := range sources {
		input.Sources[name] = models.StandardSource{Content: content}
	}
	return input
}

// Compile runs solc --standard-json over the source set
func (c *CompilerAdapter) Compile(ctx context.Context, sources *usecase.SourceSet) (*usecase.CompileOutput, error) {
	binary, version, err := c.resolve(ctx)
	if err != nil {
		return nil, err
	}
	if err := CheckVersion(c.solc.Version, version); err != nil {
		return nil, err
	}

	input := c.StandardInput(sources.Sources)
	input.Settings.OutputSelection = map[string]map[string][]string{
		"*": {"*": {"abi", "metadata", "evm.bytecode.object", "evm.deployedBytecode.object"}},
	}
	payload, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to encode compiler input: %w", err)
	}

	start := time.Now()
	c.log.Debug("running solc", "binary", binary, "sources", len(sources.Sources))

	cmd := exec.CommandContext(ctx, binary, "--standard-json")
	cmd.Dir = c.projectRoot
	cmd.Stdin = bytes.NewReader(payload)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("solc interrupted: %w", ctxErr)
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) || stdout.Len() == 0 {
			return nil, fmt.Errorf("solc failed: %w\n%s", err, stderr.String())
		}
	}
	c.log.Debug("solc finished", "duration", time.Since(start))

	var output models.StandardJSONOutput
	if err := json.Unmarshal(stdout.Bytes(), &output); err != nil {
		return nil, fmt.Errorf("failed to parse solc output: %w", err)
	}

	return c.collect(&output, sources, version)
}

func (c *CompilerAdapter) collect(output *models.StandardJSONOutput, sources *usecase.SourceSet, version string) (*usecase.CompileOutput, error) {
	result := &usecase.CompileOutput{Version: version}

	var errs []string
	for _, d := range output.Errors {
		switch d.Severity {
		case "error":
			errs = append(errs, strings.TrimSpace(d.Text()))
		default:
			result.Warnings = append(result.Warnings, strings.TrimSpace(d.Text()))
		}
	}
	if len(errs) > 0 {
		return nil, &domain.CompilerDiagnosticsError{Messages: errs}
	}

	files := make([]string, 0, len(output.Contracts))
	for file := range output.Contracts {
		files = append(files, file)
	}
	sort.Strings(files)

	byName := make(map[string]*models.Artifact)
	for _, file := range files {
		for name, compiled := range output.Contracts[file] {
			if prev, dup := byName[name]; dup {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("contract %s defined in both %s and %s; keeping %s", name, prev.SourcePath, file, file))
			}
			byName[name] = &models.Artifact{
				ContractName:     name,
				ABI:              compiled.ABI,
				Metadata:         compiled.Metadata,
				Bytecode:         hexPrefix(compiled.EVM.Bytecode.Object),
				DeployedBytecode: hexPrefix(compiled.EVM.DeployedBytecode.Object),
				SourcePath:       c.sourcePath(file),
				Source:           sources.Sources[file],
				Compiler:         models.CompilerInfo{Name: "solc", Version: version},
			}
		}
	}

	for _, a := range byName {
		result.Artifacts = append(result.Artifacts, a)
	}
	sort.Slice(result.Artifacts, func(i, j int) bool {
		return result.Artifacts[i].ContractName < result.Artifacts[j].ContractName
	})
	return result, nil
}

func (c *CompilerAdapter) sourcePath(unit string) string {
	local := filepath.Join(c.projectRoot, filepath.FromSlash(unit))
	if _, err := os.Stat(local); err == nil {
		return local
	}
	return unit
}

// ParseVersion extracts the version from `solc --version` output.
func ParseVersion(out string) (string, error) {
	m := versionPattern.FindStringSubmatch(out)
	if m == nil {
		return "", fmt.Errorf("unrecognised solc --version output: %q", strings.TrimSpace(out))
	}
	return m[1] + m[2], nil
}

func baseVersion(v string) string {
	if i := strings.IndexByte(v, '+'); i != -1 {
		return v[:i]
	}
	return v
}

func hexPrefix(s string) string {
	if s == "" || strings.HasPrefix(s, "0x") {
		return s
	}
	return "0x" + s
}

var _ usecase.Compiler = (*CompilerAdapter)(nil)
