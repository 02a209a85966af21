package usecase

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/samber/lo"

	internalconfig "github.com/GainsNetwork/GNS-ethereum/internal/config"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/config"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/models"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/units"
)

// gasHeadroomPercent is added on top of estimates
const gasHeadroomPercent = 20

// DeployContractParams contains parameters for a deployment
type DeployContractParams struct {
	Contract string
	Args     []string
	// Value sent with the creation transaction, e.g. "1 ether"
	Value string
	// DryRun simulates and stops before sending
	DryRun bool
	// SkipDryRun skips the simulation even when the network asks for it
	SkipDryRun bool
	// Yes skips the confirmation prompt
	Yes bool
}

// DeployContractResult contains the result of a deployment
type DeployContractResult struct {
	Contract  string
	Network   string
	ChainID   uint64
	From      common.Address
	Nonce     uint64
	Gas       uint64
	GasPrice  *big.Int
	Value     *big.Int
	Simulated bool
	DryRun    bool

	// Filled once mined
	Address     common.Address
	TxHash      common.Hash
	BlockNumber uint64
	GasUsed     uint64
	Cost        *big.Int
	ExplorerURL string
}

// DeployContract deploys one compiled contract to the selected network
type DeployContract struct {
	cfg       *config.RuntimeConfig
	store     ArtifactStore
	coder     ABICoder
	connector ChainConnector
	prompter  InteractivePrompter
	progress  ProgressSink
}

// NewDeployContract creates a new DeployContract use case
func NewDeployContract(
	cfg *config.RuntimeConfig,
	store ArtifactStore,
	coder ABICoder,
	connector ChainConnector,
	prompter InteractivePrompter,
	progress ProgressSink,
) *DeployContract {
	return &DeployContract{
		cfg:       cfg,
		store:     store,
		coder:     coder,
		connector: connector,
		prompter:  prompter,
		progress:  progress,
	}
}

// Run executes the use case
func (uc *DeployContract) Run(ctx context.Context, params DeployContractParams) (*DeployContractResult, error) {
	networkName, network, err := internalconfig.RequireNetwork(uc.cfg)
	if err != nil {
		return nil, err
	}

	artifact, err := uc.resolveArtifact(ctx, params.Contract)
	if err != nil {
		return nil, err
	}

	data, err := uc.coder.CreationData(artifact, params.Args)
	if err != nil {
		return nil, err
	}

	value := new(big.Int)
	if params.Value != "" {
		if value, err = units.ParseAmount(params.Value); err != nil {
			return nil, fmt.Errorf("invalid value: %w", err)
		}
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageConnecting),
		Message: networkName,
		Spinner: true,
	})
	chain, err := uc.connector.Connect(ctx)
	if err != nil {
		uc.stopSpinner(ctx)
		return nil, err
	}

	result := &DeployContractResult{
		Contract: artifact.ContractName,
		Network:  networkName,
		ChainID:  chain.ChainID(),
		From:     chain.From(),
		Value:    value,
	}

	if err := uc.prepare(ctx, chain, network, data, result); err != nil {
		uc.stopSpinner(ctx)
		return nil, err
	}

	simulate := params.DryRun || !(network.SkipDryRun || params.SkipDryRun)
	if simulate {
		if err := uc.simulate(ctx, chain, data, result); err != nil {
			uc.stopSpinner(ctx)
			return nil, err
		}
	}
	if params.DryRun {
		result.DryRun = true
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: string(StageCompleted), Message: "Dry run passed"})
		return result, nil
	}

	if !params.Yes {
		uc.stopSpinner(ctx)
		label := fmt.Sprintf("Deploy %s to %s (chain %d) from %s, gas %d at %s",
			result.Contract, networkName, result.ChainID, result.From.Hex(), result.Gas,
			units.NewWei(result.GasPrice).In("gwei"))
		ok, err := uc.prompter.Confirm(ctx, label)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrCancelled
		}
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageBroadcasting),
		Message: fmt.Sprintf("nonce %d", result.Nonce),
		Spinner: true,
	})
	hash, err := chain.SendTransaction(ctx, TxRequest{
		From:     result.From,
		Data:     data,
		Value:    value,
		Gas:      result.Gas,
		GasPrice: result.GasPrice,
		Nonce:    result.Nonce,
	})
	if err != nil {
		uc.stopSpinner(ctx)
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}
	result.TxHash = hash

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageConfirming),
		Message: hash.Hex(),
		Spinner: true,
	})
	receipt, err := chain.WaitMined(ctx, hash, network.Confirmations)
	if err != nil {
		uc.stopSpinner(ctx)
		return result, fmt.Errorf("transaction %s sent but not confirmed: %w", hash.Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		uc.stopSpinner(ctx)
		return result, fmt.Errorf("%w: %s reverted in block %d", domain.ErrTransactionFailed, hash.Hex(), receipt.BlockNumber)
	}

	result.Address = receipt.ContractAddress
	result.GasUsed = receipt.GasUsed
	if receipt.BlockNumber != nil {
		result.BlockNumber = receipt.BlockNumber.Uint64()
	}
	price := lo.Ternary(receipt.EffectiveGasPrice != nil, receipt.EffectiveGasPrice, result.GasPrice)
	result.Cost = new(big.Int).Mul(new(big.Int).SetUint64(receipt.GasUsed), price)
	result.ExplorerURL = domain.ExplorerAddressURL(result.ChainID, result.Address.Hex())

	artifact.RecordDeployment(result.ChainID, models.NetworkDeployed{
		Address:         result.Address.Hex(),
		TransactionHash: hash.Hex(),
	})
	if err := uc.store.Save(ctx, artifact); err != nil {
		uc.stopSpinner(ctx)
		return result, fmt.Errorf("deployed at %s but failed to record it: %w", result.Address.Hex(), err)
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageCompleted),
		Message: fmt.Sprintf("%s deployed at %s", result.Contract, result.Address.Hex()),
	})
	return result, nil
}

// resolveArtifact loads the named artifact or asks the user to pick one.
func (uc *DeployContract) resolveArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	if name != "" {
		return uc.store.Load(ctx, name)
	}

	all, err := uc.store.List(ctx)
	if err != nil {
		return nil, err
	}
	deployable := lo.Filter(all, func(a *models.Artifact, _ int) bool { return a.HasBytecode() })
	if len(deployable) == 0 {
		return nil, fmt.Errorf("%w: no deployable artifacts in %s (run 'gns compile')", domain.ErrContractNotFound, uc.store.Dir())
	}
	return uc.prompter.SelectArtifact(ctx, deployable, "Select a contract to deploy")
}

// prepare fills nonce, gas price and gas limit.
func (uc *DeployContract) prepare(ctx context.Context, chain Chain, network *config.NetworkConfig, data []byte, result *DeployContractResult) error {
	nonce, err := chain.PendingNonceAt(ctx, result.From)
	if err != nil {
		return fmt.Errorf("failed to get nonce: %w", err)
	}
	result.Nonce = nonce

	if network.GasPrice != nil {
		result.GasPrice = network.GasPrice.BigInt()
	} else if result.GasPrice, err = chain.SuggestGasPrice(ctx); err != nil {
		return fmt.Errorf("failed to get gas price: %w", err)
	}

	if network.Gas > 0 {
		result.Gas = network.Gas
		return nil
	}
	estimate, err := chain.EstimateGas(ctx, ethereum.CallMsg{
		From:     result.From,
		GasPrice: result.GasPrice,
		Value:    result.Value,
		Data:     data,
	})
	if err != nil {
		return fmt.Errorf("%w: gas estimation failed: %w", domain.ErrDryRunFailed, err)
	}
	result.Gas = estimate + estimate*gasHeadroomPercent/100
	return nil
}

// simulate runs the creation as a call and checks the sender can pay for it.
func (uc *DeployContract) simulate(ctx context.Context, chain Chain, data []byte, result *DeployContractResult) error {
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageSimulating),
		Message: fmt.Sprintf("gas %d", result.Gas),
		Spinner: true,
	})

	if _, err := chain.CallContract(ctx, ethereum.CallMsg{
		From:     result.From,
		Gas:      result.Gas,
		GasPrice: result.GasPrice,
		Value:    result.Value,
		Data:     data,
	}, nil); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDryRunFailed, err)
	}

	balance, err := chain.BalanceAt(ctx, result.From, nil)
	if err != nil {
		return fmt.Errorf("failed to get balance: %w", err)
	}
	need := new(big.Int).Mul(new(big.Int).SetUint64(result.Gas), result.GasPrice)
	need.Add(need, result.Value)
	if balance.Cmp(need) < 0 {
		return fmt.Errorf("%w: %s holds %s, deployment may cost up to %s", domain.ErrDryRunFailed,
			result.From.Hex(), units.NewWei(balance).In("ether"), units.NewWei(need).In("ether"))
	}

	result.Simulated = true
	return nil
}

func (uc *DeployContract) stopSpinner(ctx context.Context) {
	uc.progress.OnProgress(ctx, ProgressEvent{})
}
