package fs

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GainsNetwork/GNS-ethereum/internal/domain"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/config"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/models"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
}

func runtimeConfig(root string) *config.RuntimeConfig {
	return &config.RuntimeConfig{
		ProjectRoot: root,
		DataDir:     filepath.Join(root, ".gns"),
		Project:     &config.ProjectConfig{BuildDirectory: "./client/src/contracts_eth"},
	}
}

func TestLocalConfigStore(t *testing.T) {
	ctx := context.Background()
	store := NewLocalConfigStoreAdapter(runtimeConfig(t.TempDir()))

	assert.False(t, store.Exists())
	cfg, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultLocalConfig(), cfg)

	cfg.Network = "mainnet"
	require.NoError(t, store.Save(ctx, cfg))
	assert.True(t, store.Exists())

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "mainnet", loaded.Network)

	// Keys from older files are ignored and dropped on the next save
	require.NoError(t, os.WriteFile(store.GetPath(), []byte(`{"namespace":"prod","network":"sepolia"}`), 0644))
	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sepolia", loaded.Network)

	require.NoError(t, store.Save(ctx, loaded))
	data, err := os.ReadFile(store.GetPath())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "namespace")
}

func TestArtifactStore(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store := NewArtifactStoreAdapter(runtimeConfig(root), slog.Default())
	store.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	assert.Equal(t, filepath.Join(root, "client", "src", "contracts_eth"), store.Dir())

	artifacts, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, artifacts)

	_, err = store.Load(ctx, "GovFund")
	assert.ErrorIs(t, err, domain.ErrContractNotFound)

	gov := &models.Artifact{
		ContractName: "GovFund",
		ABI:          []byte(`[]`),
		Bytecode:     "0x6080",
		Compiler:     models.CompilerInfo{Name: "solc", Version: "0.7.5+commit.eb77ed08"},
	}
	gov.RecordDeployment(1, models.NetworkDeployed{Address: "0x1111111111111111111111111111111111111111", TransactionHash: "0xaa"})
	require.NoError(t, store.Save(ctx, gov))

	// a recompiled artifact carries no deployments; the mainnet one survives
	recompiled := &models.Artifact{ContractName: "GovFund", ABI: []byte(`[]`), Bytecode: "0x6081"}
	require.NoError(t, store.Save(ctx, recompiled))

	loaded, err := store.Load(ctx, "GovFund")
	require.NoError(t, err)
	assert.Equal(t, "0x6081", loaded.Bytecode)
	d, ok := loaded.Deployment(1)
	require.True(t, ok)
	assert.Equal(t, "0x1111111111111111111111111111111111111111", d.Address)
	assert.Equal(t, ArtifactSchemaVersion, loaded.SchemaVersion)
	assert.Equal(t, store.now(), loaded.UpdatedAt)

	require.NoError(t, store.Save(ctx, &models.Artifact{ContractName: "Token", ABI: []byte(`[]`)}))
	writeFile(t, store.Dir(), "notes.txt", "ignored")
	writeFile(t, store.Dir(), "broken.json", "{")

	artifacts, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, artifacts, 2)
	assert.Equal(t, "GovFund", artifacts[0].ContractName)
	assert.Equal(t, "Token", artifacts[1].ContractName)

	info, err := os.Stat(filepath.Join(store.Dir(), "GovFund.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestFileWriter(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	w := NewFileWriterAdapter()
	gitignore := filepath.Join(dir, ".gitignore")

	exists, err := w.FileExists(ctx, gitignore)
	require.NoError(t, err)
	assert.False(t, exists)

	wrote, err := w.EnsureLine(ctx, gitignore, ".env")
	require.NoError(t, err)
	assert.True(t, wrote)

	require.NoError(t, os.WriteFile(gitignore, []byte("node_modules\n.env"), 0644))
	wrote, err = w.EnsureLine(ctx, gitignore, ".env")
	require.NoError(t, err)
	assert.False(t, wrote)

	wrote, err = w.EnsureLine(ctx, gitignore, ".gns/")
	require.NoError(t, err)
	assert.True(t, wrote)

	data, err := os.ReadFile(gitignore)
	require.NoError(t, err)
	assert.Equal(t, "node_modules\n.env\n.gns/\n", string(data))

	require.NoError(t, w.WriteFile(ctx, filepath.Join(dir, "sub", "gns.toml"), []byte("x")))
	exists, err = w.FileExists(ctx, filepath.Join(dir, "sub", "gns.toml"))
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSourceCollector(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	writeFile(t, root, "contracts/GovFund.sol", `// SPDX-License-Identifier: MIT
pragma solidity 0.7.5;

import "./lib/Math.sol";
import {ERC20} from "@openzeppelin/contracts/token/ERC20/ERC20.sol";
import * as Strings from './lib/Strings.sol';

contract GovFund {}
`)
	writeFile(t, root, "contracts/lib/Math.sol", "pragma solidity 0.7.5;\nlibrary Math {}\n")
	writeFile(t, root, "contracts/lib/Strings.sol", "pragma solidity 0.7.5;\nimport \"./Math.sol\";\nlibrary Strings {}\n")
	writeFile(t, root, "node_modules/@openzeppelin/contracts/token/ERC20/ERC20.sol",
		"pragma solidity ^0.7.0;\nimport \"../../utils/Context.sol\";\ncontract ERC20 {}\n")
	writeFile(t, root, "node_modules/@openzeppelin/contracts/utils/Context.sol", "pragma solidity ^0.7.0;\ncontract Context {}\n")
	writeFile(t, root, "contracts/README.md", "not solidity")

	c := NewSourceCollectorAdapter(runtimeConfig(root))
	set, err := c.Collect(ctx, "./contracts")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"contracts/GovFund.sol",
		"contracts/lib/Math.sol",
		"contracts/lib/Strings.sol",
	}, set.Roots)
	assert.Len(t, set.Sources, 5)
	assert.Contains(t, set.Sources, "@openzeppelin/contracts/token/ERC20/ERC20.sol")
	assert.Contains(t, set.Sources, "@openzeppelin/contracts/utils/Context.sol")

	t.Run("missing import", func(t *testing.T) {
		writeFile(t, root, "contracts/Broken.sol", "import \"./Nope.sol\";\n")
		_, err := c.Collect(ctx, "contracts")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `import "./Nope.sol" not found`)
	})
}

func TestResolveImport(t *testing.T) {
	assert.Equal(t, "contracts/lib/Math.sol", resolveImport("contracts/GovFund.sol", "./lib/Math.sol"))
	assert.Equal(t, "a/Math.sol", resolveImport("a/b/X.sol", "../Math.sol"))
	assert.Equal(t, "@oz/contracts/X.sol", resolveImport("contracts/A.sol", "@oz/contracts/X.sol"))
}

func TestReadUnits(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "contracts/A.sol", "contract A {}")
	writeFile(t, root, "node_modules/@oz/B.sol", "contract B {}")

	c := NewSourceCollectorAdapter(runtimeConfig(root))
	units, err := c.ReadUnits(context.Background(), []string{"contracts/A.sol", "@oz/B.sol"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"contracts/A.sol": "contract A {}",
		"@oz/B.sol":       "contract B {}",
	}, units)

	_, err = c.ReadUnits(context.Background(), []string{"contracts/Missing.sol"})
	assert.Error(t, err)
}
