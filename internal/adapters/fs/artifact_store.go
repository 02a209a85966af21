package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/renameio/v2"

	"github.com/GainsNetwork/GNS-ethereum/internal/domain"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/config"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/models"
	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

// ArtifactSchemaVersion is written into artifacts that don't carry one.
const ArtifactSchemaVersion = "3.4.16"

// ArtifactStoreAdapter stores one JSON artifact per contract in the build directory
type ArtifactStoreAdapter struct {
	dir string
	log *slog.Logger
	now func() time.Time
}

// NewArtifactStoreAdapter creates a store over contracts_build_directory
func NewArtifactStoreAdapter(cfg *config.RuntimeConfig, log *slog.Logger) *ArtifactStoreAdapter {
	dir := cfg.Project.BuildDirectory
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(cfg.ProjectRoot, dir)
	}
	return &ArtifactStoreAdapter{
		dir: dir,
		log: log.With("component", "artifacts"),
		now: time.Now,
	}
}

// Dir returns the absolute build directory
func (s *ArtifactStoreAdapter) Dir() string {
	return s.dir
}

// List returns every artifact in the build directory, sorted by contract name
func (s *ArtifactStoreAdapter) List(ctx context.Context) ([]*models.Artifact, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read build directory: %w", err)
	}

	var artifacts []*models.Artifact
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		artifact, err := s.read(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			s.log.Debug("skipping unreadable artifact", "file", entry.Name(), "error", err)
			continue
		}
		if artifact.ContractName == "" {
			continue
		}
		artifacts = append(artifacts, artifact)
	}

	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].ContractName < artifacts[j].ContractName
	})
	return artifacts, nil
}

// Load reads the artifact for a contract name
func (s *ArtifactStoreAdapter) Load(ctx context.Context, name string) (*models.Artifact, error) {
	artifact, err := s.read(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s (no %s.json in %s; run 'gns compile')", domain.ErrContractNotFound, name, name, s.dir)
	}
	return artifact, err
}

// Save writes an artifact atomically. Deployment records already on disk are
// kept unless the new artifact has an entry for the same chain.
func (s *ArtifactStoreAdapter) Save(ctx context.Context, artifact *models.Artifact) error {
	if artifact.ContractName == "" {
		return fmt.Errorf("artifact has no contract name")
	}

	path := s.path(artifact.ContractName)
	existing, err := s.read(path)
	switch {
	case err == nil:
		for chainID, d := range existing.Networks {
			if _, ok := artifact.Networks[chainID]; !ok {
				if artifact.Networks == nil {
					artifact.Networks = make(map[string]models.NetworkDeployed)
				}
				artifact.Networks[chainID] = d
			}
		}
	case !errors.Is(err, fs.ErrNotExist):
		s.log.Warn("replacing unreadable artifact", "file", path, "error", err)
	}

	if artifact.Networks == nil {
		artifact.Networks = make(map[string]models.NetworkDeployed)
	}
	if artifact.SchemaVersion == "" {
		artifact.SchemaVersion = ArtifactSchemaVersion
	}
	artifact.UpdatedAt = s.now().UTC()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create build directory: %w", err)
	}
	return writeJSONAtomic(path, artifact)
}

func (s *ArtifactStoreAdapter) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *ArtifactStoreAdapter) read(path string) (*models.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return &artifact, nil
}

func writeJSONAtomic(path string, v any) (err error) {
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0644))
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}
	defer func() {
		if cerr := pending.Cleanup(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	enc := json.NewEncoder(pending)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

var _ usecase.ArtifactStore = (*ArtifactStoreAdapter)(nil)
