package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/GainsNetwork/GNS-ethereum/internal/domain/config"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/models"
)

// CompileContractsResult contains the result of a compilation
type CompileContractsResult struct {
	Artifacts []*models.Artifact
	Warnings  []string
	Version   string
	Sources   int
	BuildDir  string
	Duration  time.Duration
}

// CompileContracts compiles the project sources and writes artifacts
type CompileContracts struct {
	cfg       *config.RuntimeConfig
	collector SourceCollector
	compiler  Compiler
	store     ArtifactStore
	progress  ProgressSink
}

// NewCompileContracts creates a new CompileContracts use case
func NewCompileContracts(
	cfg *config.RuntimeConfig,
	collector SourceCollector,
	compiler Compiler,
	store ArtifactStore,
	progress ProgressSink,
) *CompileContracts {
	return &CompileContracts{
		cfg:       cfg,
		collector: collector,
		compiler:  compiler,
		store:     store,
		progress:  progress,
	}
}

// Run executes the use case
func (uc *CompileContracts) Run(ctx context.Context) (*CompileContractsResult, error) {
	start := time.Now()
	dir := uc.cfg.Project.ContractsDirOrDefault()
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(uc.cfg.ProjectRoot, dir)
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageCollecting),
		Message: "Collecting sources",
		Spinner: true,
	})
	sources, err := uc.collector.Collect(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to collect sources: %w", err)
	}
	if len(sources.Roots) == 0 {
		return nil, fmt.Errorf("no Solidity sources found in %s", dir)
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageCompiling),
		Message: fmt.Sprintf("%d source files", len(sources.Sources)),
		Spinner: true,
	})
	output, err := uc.compiler.Compile(ctx, sources)
	if err != nil {
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: string(StageCompiling)})
		return nil, err
	}

	for _, artifact := range output.Artifacts {
		if err := uc.store.Save(ctx, artifact); err != nil {
			return nil, fmt.Errorf("failed to write artifact %s: %w", artifact.ContractName, err)
		}
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageCompleted),
		Message: fmt.Sprintf("Compiled %d contracts", len(output.Artifacts)),
	})

	return &CompileContractsResult{
		Artifacts: output.Artifacts,
		Warnings:  output.Warnings,
		Version:   output.Version,
		Sources:   len(sources.Sources),
		BuildDir:  uc.store.Dir(),
		Duration:  time.Since(start),
	}, nil
}
