package usecase

import (
	"context"
	"fmt"
	"path/filepath"

	internalconfig "github.com/GainsNetwork/GNS-ethereum/internal/config"
)

const envExample = `# Deployer secret for mainnet: a BIP-39 mnemonic or a 0x-prefixed private key
` + internalconfig.DeployerSecretEnv + `=

# Mainnet JSON-RPC endpoint, e.g. https://mainnet.infura.io/v3/<project id>
` + internalconfig.MainnetEndpointEnv + `=
`

// gitignoreLines keep secrets and local state out of version control
var gitignoreLines = []string{".env", ".env.local", internalconfig.DataDirName + "/"}

// InitProject handles project initialization
type InitProject struct {
	fileWriter FileWriter
	progress   ProgressSink
}

// NewInitProject creates a new init project use case
func NewInitProject(fileWriter FileWriter, progress ProgressSink) *InitProject {
	return &InitProject{
		fileWriter: fileWriter,
		progress:   progress,
	}
}

// InitProjectParams contains parameters for initialization
type InitProjectParams struct {
	Dir   string
	Force bool
}

// InitProjectResult contains the result of project initialization
type InitProjectResult struct {
	ConfigPath         string
	ConfigCreated      bool
	EnvExampleCreated  bool
	GitignoreUpdated   bool
	AlreadyInitialized bool
	Steps              []InitStep
}

// InitStep represents a step in the initialization process
type InitStep struct {
	Name    string
	Success bool
	Message string
	Error   error
}

// Run writes the default project files into params.Dir
func (i *InitProject) Run(ctx context.Context, params InitProjectParams) (*InitProjectResult, error) {
	result := &InitProjectResult{
		ConfigPath: filepath.Join(params.Dir, internalconfig.ProjectFiles[0]),
	}

	step := i.writeConfig(ctx, params, result)
	result.Steps = append(result.Steps, step)
	if step.Error != nil {
		return result, step.Error
	}

	step = i.writeEnvExample(ctx, params, result)
	result.Steps = append(result.Steps, step)
	if step.Error != nil {
		return result, step.Error
	}

	step = i.updateGitignore(ctx, params, result)
	result.Steps = append(result.Steps, step)
	if step.Error != nil {
		return result, step.Error
	}

	return result, nil
}

func (i *InitProject) writeConfig(ctx context.Context, params InitProjectParams, result *InitProjectResult) InitStep {
	step := InitStep{Name: "Create " + internalconfig.ProjectFiles[0]}

	if !params.Force {
		for _, name := range internalconfig.ProjectFiles {
			exists, err := i.fileWriter.FileExists(ctx, filepath.Join(params.Dir, name))
			if err != nil {
				step.Error = err
				return step
			}
			if exists {
				result.AlreadyInitialized = true
				step.Success = true
				step.Message = name + " already exists (use --force to overwrite)"
				return step
			}
		}
	}

	content, err := internalconfig.EncodeProjectConfig(internalconfig.DefaultProjectConfig())
	if err != nil {
		step.Error = err
		return step
	}
	if err := i.fileWriter.WriteFile(ctx, result.ConfigPath, content); err != nil {
		step.Error = fmt.Errorf("failed to write %s: %w", result.ConfigPath, err)
		return step
	}

	i.progress.Info("Created " + internalconfig.ProjectFiles[0])
	result.ConfigCreated = true
	step.Success = true
	step.Message = "Mainnet network, solc 0.7.5 and truffle-plugin-verify configured"
	return step
}

func (i *InitProject) writeEnvExample(ctx context.Context, params InitProjectParams, result *InitProjectResult) InitStep {
	step := InitStep{Name: "Create .env.example"}
	path := filepath.Join(params.Dir, ".env.example")

	exists, err := i.fileWriter.FileExists(ctx, path)
	if err != nil {
		step.Error = err
		return step
	}
	if exists && !params.Force {
		step.Success = true
		step.Message = ".env.example already exists"
		return step
	}

	if err := i.fileWriter.WriteFile(ctx, path, []byte(envExample)); err != nil {
		step.Error = fmt.Errorf("failed to write .env.example: %w", err)
		return step
	}
	result.EnvExampleCreated = true
	step.Success = true
	step.Message = "Copy to .env and fill in " + internalconfig.DeployerSecretEnv + " and " + internalconfig.MainnetEndpointEnv
	return step
}

func (i *InitProject) updateGitignore(ctx context.Context, params InitProjectParams, result *InitProjectResult) InitStep {
	step := InitStep{Name: "Update .gitignore"}
	path := filepath.Join(params.Dir, ".gitignore")

	var added []string
	for _, line := range gitignoreLines {
		wrote, err := i.fileWriter.EnsureLine(ctx, path, line)
		if err != nil {
			step.Error = fmt.Errorf("failed to update .gitignore: %w", err)
			return step
		}
		if wrote {
			added = append(added, line)
		}
	}

	result.GitignoreUpdated = len(added) > 0
	step.Success = true
	if len(added) == 0 {
		step.Message = "already ignores secrets and local state"
	} else {
		step.Message = fmt.Sprintf("added %v", added)
	}
	return step
}
