package fs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/GainsNetwork/GNS-ethereum/internal/domain/config"
	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

// importPattern matches the path of every Solidity import form.
var importPattern = regexp.MustCompile(`(?m)^\s*import\s+(?:[^;'"]*?\s+from\s+)?["']([^"']+)["']`)

// SourceCollectorAdapter reads Solidity sources and follows their imports
// into the project and node_modules.
type SourceCollectorAdapter struct {
	root string
}

// NewSourceCollectorAdapter creates a collector rooted at the project
func NewSourceCollectorAdapter(cfg *config.RuntimeConfig) *SourceCollectorAdapter {
	return &SourceCollectorAdapter{root: cfg.ProjectRoot}
}

// Collect reads every .sol file under dir plus their transitive imports.
// Source unit names are project-relative slash paths; packages keep their
// import path.
func (c *SourceCollectorAdapter) Collect(ctx context.Context, dir string) (*usecase.SourceSet, error) {
	abs := dir
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(c.root, dir)
	}

	set := &usecase.SourceSet{Sources: make(map[string]string)}
	err := filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".sol") {
			return nil
		}
		rel, err := filepath.Rel(c.root, p)
		if err != nil {
			return err
		}
		set.Roots = append(set.Roots, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	sort.Strings(set.Roots)

	queue := append([]string(nil), set.Roots...)
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		unit := queue[0]
		queue = queue[1:]
		if _, seen := set.Sources[unit]; seen {
			continue
		}

		content, err := c.read(unit)
		if err != nil {
			return nil, err
		}
		set.Sources[unit] = content

		for _, m := range importPattern.FindAllStringSubmatch(content, -1) {
			imported := resolveImport(unit, m[1])
			if _, seen := set.Sources[imported]; !seen {
				if _, err := c.locate(imported); err != nil {
					return nil, fmt.Errorf("%s: import %q not found", unit, m[1])
				}
				queue = append(queue, imported)
			}
		}
	}

	return set, nil
}

// ReadUnits reads the given source units
func (c *SourceCollectorAdapter) ReadUnits(ctx context.Context, units []string) (map[string]string, error) {
	out := make(map[string]string, len(units))
	for _, unit := range units {
		content, err := c.read(unit)
		if err != nil {
			return nil, err
		}
		out[unit] = content
	}
	return out, nil
}

func (c *SourceCollectorAdapter) read(unit string) (string, error) {
	p, err := c.locate(unit)
	if err != nil {
		return "", fmt.Errorf("source %s not found", unit)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", unit, err)
	}
	return string(data), nil
}

// locate finds the file for a source unit in the project, then node_modules.
func (c *SourceCollectorAdapter) locate(unit string) (string, error) {
	candidates := []string{
		filepath.Join(c.root, filepath.FromSlash(unit)),
		filepath.Join(c.root, "node_modules", filepath.FromSlash(unit)),
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fs.ErrNotExist
}

// resolveImport returns the source unit name of an import seen in from.
func resolveImport(from, imported string) string {
	if strings.HasPrefix(imported, "./") || strings.HasPrefix(imported, "../") {
		return path.Clean(path.Join(path.Dir(from), imported))
	}
	return path.Clean(imported)
}

var _ usecase.SourceCollector = (*SourceCollectorAdapter)(nil)
