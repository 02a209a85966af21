package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GainsNetwork/GNS-ethereum/internal/domain"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/config"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/models"
	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

const govFundSource = "pragma solidity 0.7.5;\ncontract GovFund { constructor(address owner) {} }\n"

func govFundMetadata(source string) string {
	return fmt.Sprintf(`{
  "compiler": {"version": "0.7.5+commit.eb77ed08"},
  "language": "Solidity",
  "settings": {
    "compilationTarget": {"contracts/GovFund.sol": "GovFund"},
    "evmVersion": "istanbul",
    "libraries": {},
    "optimizer": {"enabled": true, "runs": 1000},
    "remappings": []
  },
  "sources": {"contracts/GovFund.sol": {"keccak256": %q}}
}`, crypto.Keccak256Hash([]byte(source)).Hex())
}

type verifyFixture struct {
	cfg       *config.RuntimeConfig
	store     *MockArtifactStore
	collector *MockSourceCollector
	compiler  *MockCompiler
	coder     *MockABICoder
	chain     *MockChain
	connector *MockChainConnector
	verifier  *MockContractVerifier
	artifact  *models.Artifact
	tx        *types.Transaction
}

func newVerifyFixture() *verifyFixture {
	f := &verifyFixture{
		cfg:       mainnetRuntime(),
		store:     new(MockArtifactStore),
		collector: new(MockSourceCollector),
		compiler:  new(MockCompiler),
		coder:     new(MockABICoder),
		chain:     &MockChain{chainID: 1, from: deployer},
		connector: new(MockChainConnector),
		verifier:  new(MockContractVerifier),
		artifact: &models.Artifact{
			ContractName: "GovFund",
			Bytecode:     "0x6080",
			Metadata:     govFundMetadata(govFundSource),
		},
		tx: types.NewTx(&types.LegacyTx{Nonce: 7, Gas: 1, GasPrice: big.NewInt(1), Data: []byte{0x60, 0x80, 0x01}}),
	}
	f.cfg.Project.APIKeys["etherscan"] = "KEY"
	f.artifact.RecordDeployment(1, models.NetworkDeployed{
		Address:         deployedAddr.Hex(),
		TransactionHash: deployTx.Hex(),
	})
	f.connector.On("Connect", mock.Anything).Return(f.chain, nil)
	return f
}

func (f *verifyFixture) expectSources(source string) {
	f.collector.On("ReadUnits", mock.Anything, []string{"contracts/GovFund.sol"}).
		Return(map[string]string{"contracts/GovFund.sol": source}, nil)
}

func (f *verifyFixture) expectConstructor() {
	f.chain.On("TransactionByHash", mock.Anything, deployTx).Return(f.tx, nil)
	f.coder.On("ConstructorArgs", f.artifact, f.tx.Data()).Return([]byte{0x01}, []usecase.DecodedArg{
		{Name: "owner", Type: "address", Value: deployer.Hex()},
	}, nil)
}

func (f *verifyFixture) useCase() *usecase.VerifyContract {
	return usecase.NewVerifyContract(f.cfg, f.store, f.collector, f.compiler, f.coder, f.connector, f.verifier, &MockProgressSink{})
}

func TestVerifyContract(t *testing.T) {
	ctx := context.Background()

	t.Run("submits the reproduced input", func(t *testing.T) {
		f := newVerifyFixture()
		f.store.On("Load", mock.Anything, "GovFund").Return(f.artifact, nil)
		f.expectSources(govFundSource)
		f.expectConstructor()

		var submitted usecase.VerifyRequest
		f.verifier.On("Verify", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			submitted = args.Get(1).(usecase.VerifyRequest)
		}).Return(&usecase.VerifyResult{GUID: "guid-1", Message: "Pass - Verified"}, nil)

		result, err := f.useCase().Run(ctx, usecase.VerifyContractParams{Contracts: []string{"GovFund"}})
		require.NoError(t, err)

		require.Len(t, result.Results, 1)
		v := result.Results[0]
		assert.Equal(t, usecase.VerifyStatusVerified, v.Status)
		assert.Equal(t, "guid-1", v.GUID)
		assert.Equal(t, deployedAddr, v.Address)
		assert.Len(t, v.Args, 1)
		assert.Zero(t, result.Failed())

		assert.Equal(t, "KEY", submitted.APIKey)
		assert.Equal(t, uint64(1), submitted.ChainID)
		assert.Equal(t, "contracts/GovFund.sol:GovFund", submitted.ContractName)
		assert.Equal(t, "v0.7.5+commit.eb77ed08", submitted.CompilerVersion)
		assert.Equal(t, "01", submitted.ConstructorArgs)

		var input models.StandardJSONInput
		require.NoError(t, json.Unmarshal(submitted.StandardJSON, &input))
		assert.True(t, input.Settings.Optimizer.Enabled)
		assert.Equal(t, 1000, input.Settings.Optimizer.Runs)
		assert.Equal(t, "istanbul", input.Settings.EVMVersion)
		assert.Equal(t, govFundSource, input.Sources["contracts/GovFund.sol"].Content)
	})

	t.Run("network key wins over etherscan key", func(t *testing.T) {
		f := newVerifyFixture()
		f.cfg.Project.APIKeys["mainnet"] = "MAINNET"
		f.store.On("Load", mock.Anything, "GovFund").Return(f.artifact, nil)
		f.expectSources(govFundSource)
		f.expectConstructor()
		f.verifier.On("Verify", mock.Anything, mock.MatchedBy(func(req usecase.VerifyRequest) bool {
			return req.APIKey == "MAINNET"
		})).Return(&usecase.VerifyResult{AlreadyVerified: true}, nil)

		result, err := f.useCase().Run(ctx, usecase.VerifyContractParams{Contracts: []string{"GovFund"}})
		require.NoError(t, err)
		assert.Equal(t, usecase.VerifyStatusAlreadyVerified, result.Results[0].Status)
	})

	t.Run("plugin must be enabled", func(t *testing.T) {
		f := newVerifyFixture()
		f.cfg.Project.Plugins = nil

		_, err := f.useCase().Run(ctx, usecase.VerifyContractParams{})
		assert.ErrorIs(t, err, domain.ErrPluginNotEnabled)
		f.connector.AssertNotCalled(t, "Connect", mock.Anything)
	})

	t.Run("api key required", func(t *testing.T) {
		f := newVerifyFixture()
		delete(f.cfg.Project.APIKeys, "etherscan")

		_, err := f.useCase().Run(ctx, usecase.VerifyContractParams{})
		assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
	})

	t.Run("contract not deployed on chain", func(t *testing.T) {
		f := newVerifyFixture()
		f.artifact.Networks = nil
		f.store.On("Load", mock.Anything, "GovFund").Return(f.artifact, nil)

		_, err := f.useCase().Run(ctx, usecase.VerifyContractParams{Contracts: []string{"GovFund"}})
		assert.ErrorIs(t, err, domain.ErrNotDeployed)
	})

	t.Run("changed source fails that contract", func(t *testing.T) {
		f := newVerifyFixture()
		f.store.On("Load", mock.Anything, "GovFund").Return(f.artifact, nil)
		f.expectSources(govFundSource + "// edited\n")

		result, err := f.useCase().Run(ctx, usecase.VerifyContractParams{Contracts: []string{"GovFund"}})

		require.ErrorIs(t, err, domain.ErrVerificationFailed)
		require.Len(t, result.Results, 1)
		assert.Equal(t, usecase.VerifyStatusFailed, result.Results[0].Status)
		assert.Contains(t, result.Results[0].Error.Error(), "changed since GovFund was compiled")
		f.verifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
	})

	t.Run("verifies every deployed artifact", func(t *testing.T) {
		f := newVerifyFixture()
		undeployed := &models.Artifact{ContractName: "Helper", Bytecode: "0x6080"}
		f.store.On("List", mock.Anything).Return([]*models.Artifact{undeployed, f.artifact}, nil)
		f.expectSources(govFundSource)
		f.expectConstructor()
		f.verifier.On("Verify", mock.Anything, mock.Anything).Return(nil, errors.New("Fail - Unable to verify"))

		result, err := f.useCase().Run(ctx, usecase.VerifyContractParams{})

		require.ErrorIs(t, err, domain.ErrVerificationFailed)
		require.Len(t, result.Results, 1)
		assert.Equal(t, "GovFund", result.Results[0].Contract)
		assert.Equal(t, 1, result.Failed())
	})

	t.Run("local chains are skipped when verifying all", func(t *testing.T) {
		f := newVerifyFixture()
		f.chain.chainID = 1337

		_, err := f.useCase().Run(ctx, usecase.VerifyContractParams{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "local chain")
		f.store.AssertNotCalled(t, "List", mock.Anything)
	})

	t.Run("artifact without metadata", func(t *testing.T) {
		f := newVerifyFixture()
		f.artifact.Metadata = ""
		f.store.On("Load", mock.Anything, "GovFund").Return(f.artifact, nil)

		result, err := f.useCase().Run(ctx, usecase.VerifyContractParams{Contracts: []string{"GovFund"}})
		require.ErrorIs(t, err, domain.ErrVerificationFailed)
		assert.Contains(t, result.Results[0].Error.Error(), "no compiler metadata")
	})
}
