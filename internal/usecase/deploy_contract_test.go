package usecase_test

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GainsNetwork/GNS-ethereum/internal/domain"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/config"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/models"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/units"
	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

var (
	deployer     = common.HexToAddress("0x00000000000000000000000000000000000000d1")
	deployedAddr = common.HexToAddress("0x00000000000000000000000000000000000000c0")
	deployTx     = common.HexToHash("0xabc1")
	creationData = []byte{0x60, 0x80, 0x60, 0x40}
)

type deployFixture struct {
	cfg       *config.RuntimeConfig
	store     *MockArtifactStore
	coder     *MockABICoder
	chain     *MockChain
	connector *MockChainConnector
	prompter  *MockPrompter
	progress  *MockProgressSink
	artifact  *models.Artifact
}

func newDeployFixture() *deployFixture {
	f := &deployFixture{
		cfg:       mainnetRuntime(),
		store:     new(MockArtifactStore),
		coder:     new(MockABICoder),
		chain:     &MockChain{chainID: 1, from: deployer},
		connector: new(MockChainConnector),
		prompter:  new(MockPrompter),
		progress:  &MockProgressSink{},
		artifact:  &models.Artifact{ContractName: "GovFund", Bytecode: "0x60806040"},
	}
	f.cfg.Network.GasPrice = units.NewWei(big.NewInt(120_000_000_000))
	f.store.On("Load", mock.Anything, "GovFund").Return(f.artifact, nil)
	f.coder.On("CreationData", f.artifact, []string(nil)).Return(creationData, nil)
	f.connector.On("Connect", mock.Anything).Return(f.chain, nil)
	f.chain.On("PendingNonceAt", mock.Anything, deployer).Return(uint64(7), nil)
	f.chain.On("EstimateGas", mock.Anything, mock.Anything).Return(uint64(1_000_000), nil)
	return f
}

func (f *deployFixture) useCase() *usecase.DeployContract {
	return usecase.NewDeployContract(f.cfg, f.store, f.coder, f.connector, f.prompter, f.progress)
}

func (f *deployFixture) expectSimulation(balance *big.Int) {
	f.chain.On("CallContract", mock.Anything, mock.Anything, (*big.Int)(nil)).Return([]byte{}, nil)
	f.chain.On("BalanceAt", mock.Anything, deployer, (*big.Int)(nil)).Return(balance, nil)
}

func (f *deployFixture) expectBroadcast(status uint64) {
	f.chain.On("SendTransaction", mock.Anything, mock.MatchedBy(func(req usecase.TxRequest) bool {
		return req.Nonce == 7 && req.Gas == 1_200_000 && req.To == nil
	})).Return(deployTx, nil)
	f.chain.On("WaitMined", mock.Anything, deployTx, uint64(0)).Return(&types.Receipt{
		Status:            status,
		ContractAddress:   deployedAddr,
		GasUsed:           900_000,
		BlockNumber:       big.NewInt(11_500_000),
		EffectiveGasPrice: big.NewInt(100_000_000_000),
	}, nil)
}

func TestDeployContract(t *testing.T) {
	ctx := context.Background()

	t.Run("deploys and records the address", func(t *testing.T) {
		f := newDeployFixture()
		f.expectBroadcast(types.ReceiptStatusSuccessful)
		f.store.On("Save", mock.Anything, f.artifact).Return(nil)

		result, err := f.useCase().Run(ctx, usecase.DeployContractParams{Contract: "GovFund", Yes: true})

		require.NoError(t, err)
		assert.Equal(t, deployedAddr, result.Address)
		assert.Equal(t, uint64(1_200_000), result.Gas)
		assert.Equal(t, "120000000000", result.GasPrice.String())
		assert.False(t, result.Simulated, "mainnet skips the dry run")
		assert.Equal(t, "90000000000000000", result.Cost.String())
		assert.Equal(t, "https://etherscan.io/address/"+deployedAddr.Hex(), result.ExplorerURL)

		d, ok := f.artifact.Deployment(1)
		require.True(t, ok)
		assert.Equal(t, deployedAddr.Hex(), d.Address)
		assert.Equal(t, deployTx.Hex(), d.TransactionHash)

		f.chain.AssertNotCalled(t, "CallContract", mock.Anything, mock.Anything, mock.Anything)
		f.prompter.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything)
		assert.Equal(t, []string{"connecting", "broadcasting", "confirming", "completed"}, f.progress.stages())
	})

	t.Run("dry run stops before sending", func(t *testing.T) {
		f := newDeployFixture()
		f.expectSimulation(big.NewInt(1e18))

		result, err := f.useCase().Run(ctx, usecase.DeployContractParams{Contract: "GovFund", DryRun: true})

		require.NoError(t, err)
		assert.True(t, result.DryRun)
		assert.True(t, result.Simulated)
		f.chain.AssertNotCalled(t, "SendTransaction", mock.Anything, mock.Anything)
		f.store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("simulation runs when the network does not skip it", func(t *testing.T) {
		f := newDeployFixture()
		f.cfg.Network.SkipDryRun = false
		f.chain.On("CallContract", mock.Anything, mock.Anything, (*big.Int)(nil)).Return(nil, errors.New("execution reverted"))

		_, err := f.useCase().Run(ctx, usecase.DeployContractParams{Contract: "GovFund", Yes: true})

		require.ErrorIs(t, err, domain.ErrDryRunFailed)
		assert.Contains(t, err.Error(), "execution reverted")
		f.chain.AssertNotCalled(t, "SendTransaction", mock.Anything, mock.Anything)
	})

	t.Run("insufficient balance fails the dry run", func(t *testing.T) {
		f := newDeployFixture()
		f.expectSimulation(big.NewInt(1))

		_, err := f.useCase().Run(ctx, usecase.DeployContractParams{Contract: "GovFund", DryRun: true})

		require.ErrorIs(t, err, domain.ErrDryRunFailed)
		assert.Contains(t, err.Error(), "may cost up to")
	})

	t.Run("gas estimation failure", func(t *testing.T) {
		f := newDeployFixture()
		f.chain.ExpectedCalls = nil
		f.chain.On("PendingNonceAt", mock.Anything, deployer).Return(uint64(7), nil)
		f.chain.On("EstimateGas", mock.Anything, mock.Anything).Return(uint64(0), errors.New("out of gas"))

		_, err := f.useCase().Run(ctx, usecase.DeployContractParams{Contract: "GovFund", Yes: true})
		assert.ErrorIs(t, err, domain.ErrDryRunFailed)
	})

	t.Run("configured gas skips estimation", func(t *testing.T) {
		f := newDeployFixture()
		f.cfg.Network.Gas = 6_000_000
		f.chain.On("SendTransaction", mock.Anything, mock.MatchedBy(func(req usecase.TxRequest) bool {
			return req.Gas == 6_000_000
		})).Return(deployTx, nil)
		f.chain.On("WaitMined", mock.Anything, deployTx, uint64(0)).Return(&types.Receipt{
			Status: types.ReceiptStatusSuccessful, ContractAddress: deployedAddr, GasUsed: 1,
		}, nil)
		f.store.On("Save", mock.Anything, f.artifact).Return(nil)

		_, err := f.useCase().Run(ctx, usecase.DeployContractParams{Contract: "GovFund", Yes: true})

		require.NoError(t, err)
		f.chain.AssertNotCalled(t, "EstimateGas", mock.Anything, mock.Anything)
	})

	t.Run("declined confirmation", func(t *testing.T) {
		f := newDeployFixture()
		f.prompter.On("Confirm", mock.Anything, mock.MatchedBy(func(label string) bool {
			return strings.Contains(label, "Deploy GovFund to mainnet (chain 1)")
		})).Return(false, nil)

		_, err := f.useCase().Run(ctx, usecase.DeployContractParams{Contract: "GovFund"})

		require.ErrorIs(t, err, domain.ErrCancelled)
		f.chain.AssertNotCalled(t, "SendTransaction", mock.Anything, mock.Anything)
	})

	t.Run("reverted deployment is not recorded", func(t *testing.T) {
		f := newDeployFixture()
		f.expectBroadcast(types.ReceiptStatusFailed)

		result, err := f.useCase().Run(ctx, usecase.DeployContractParams{Contract: "GovFund", Yes: true})

		require.ErrorIs(t, err, domain.ErrTransactionFailed)
		assert.Equal(t, deployTx, result.TxHash)
		f.store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("no network selected", func(t *testing.T) {
		f := newDeployFixture()
		f.cfg.NetworkName = ""
		f.cfg.Network = nil

		_, err := f.useCase().Run(ctx, usecase.DeployContractParams{Contract: "GovFund"})
		assert.ErrorIs(t, err, domain.ErrNetworkNotSpecified)
	})

	t.Run("prompts for a contract when none given", func(t *testing.T) {
		f := newDeployFixture()
		iface := &models.Artifact{ContractName: "IERC20", Bytecode: "0x"}
		f.store.On("List", mock.Anything).Return([]*models.Artifact{iface, f.artifact}, nil)
		f.prompter.On("SelectArtifact", mock.Anything, []*models.Artifact{f.artifact}, mock.Anything).
			Return(f.artifact, nil)
		f.expectSimulation(big.NewInt(1e18))

		result, err := f.useCase().Run(ctx, usecase.DeployContractParams{DryRun: true})

		require.NoError(t, err)
		assert.Equal(t, "GovFund", result.Contract)
	})
}

// Simulation messages carry the deployer and gas so the node sees the real call.
func TestDeployContractSimulationCallMsg(t *testing.T) {
	f := newDeployFixture()
	f.chain.On("CallContract", mock.Anything, mock.MatchedBy(func(msg ethereum.CallMsg) bool {
		return msg.From == deployer && msg.Gas == 1_200_000 && msg.To == nil && string(msg.Data) == string(creationData)
	}), (*big.Int)(nil)).Return([]byte{}, nil)
	f.chain.On("BalanceAt", mock.Anything, deployer, (*big.Int)(nil)).Return(big.NewInt(1e18), nil)

	_, err := f.useCase().Run(context.Background(), usecase.DeployContractParams{Contract: "GovFund", DryRun: true})
	require.NoError(t, err)
	f.chain.AssertExpectations(t)
}
