package usecase

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	internalconfig "github.com/GainsNetwork/GNS-ethereum/internal/config"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/config"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/models"
)

// localChains have no explorer to verify on
var localChains = map[uint64]bool{1337: true, 31337: true}

// VerifyContractParams contains parameters for verification
type VerifyContractParams struct {
	// Contracts to verify; empty verifies every artifact deployed on the network
	Contracts []string
}

// VerifyStatus is the outcome for one contract
type VerifyStatus string

const (
	VerifyStatusVerified        VerifyStatus = "verified"
	VerifyStatusAlreadyVerified VerifyStatus = "already verified"
	VerifyStatusFailed          VerifyStatus = "failed"
)

// ContractVerification is the outcome for one contract
type ContractVerification struct {
	Contract    string
	Address     common.Address
	Status      VerifyStatus
	GUID        string
	Message     string
	ExplorerURL string
	Args        []DecodedArg
	Error       error
}

// VerifyContractResult contains every attempted verification
type VerifyContractResult struct {
	Network string
	ChainID uint64
	Results []ContractVerification
}

// Failed counts unsuccessful verifications
func (r *VerifyContractResult) Failed() int {
	n := 0
	for _, v := range r.Results {
		if v.Status == VerifyStatusFailed {
			n++
		}
	}
	return n
}

// VerifyContract submits deployed contracts' sources to an Etherscan-compatible explorer
type VerifyContract struct {
	cfg       *config.RuntimeConfig
	store     ArtifactStore
	collector SourceCollector
	compiler  Compiler
	coder     ABICoder
	connector ChainConnector
	verifier  ContractVerifier
	progress  ProgressSink
}

// NewVerifyContract creates a new VerifyContract use case
func NewVerifyContract(
	cfg *config.RuntimeConfig,
	store ArtifactStore,
	collector SourceCollector,
	compiler Compiler,
	coder ABICoder,
	connector ChainConnector,
	verifier ContractVerifier,
	progress ProgressSink,
) *VerifyContract {
	return &VerifyContract{
		cfg:       cfg,
		store:     store,
		collector: collector,
		compiler:  compiler,
		coder:     coder,
		connector: connector,
		verifier:  verifier,
		progress:  progress,
	}
}

// Run executes the use case. Partial results are returned with the error.
func (uc *VerifyContract) Run(ctx context.Context, params VerifyContractParams) (*VerifyContractResult, error) {
	if !uc.cfg.Project.HasPlugin(domain.PluginVerify) {
		return nil, fmt.Errorf("%w: add %q to plugins in %s", domain.ErrPluginNotEnabled, domain.PluginVerify, uc.configName())
	}

	networkName, network, err := internalconfig.RequireNetwork(uc.cfg)
	if err != nil {
		return nil, err
	}

	apiKey := uc.apiKey(networkName)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: set api_keys.etherscan (or api_keys.%s) in %s", domain.ErrMissingAPIKey, networkName, uc.configName())
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: string(StageConnecting), Message: networkName, Spinner: true})
	chain, err := uc.connector.Connect(ctx)
	if err != nil {
		uc.progress.OnProgress(ctx, ProgressEvent{})
		return nil, err
	}
	chainID := chain.ChainID()

	artifacts, err := uc.targets(ctx, chainID, networkName, params.Contracts)
	if err != nil {
		uc.progress.OnProgress(ctx, ProgressEvent{})
		return nil, err
	}

	result := &VerifyContractResult{Network: networkName, ChainID: chainID}
	for i, artifact := range artifacts {
		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:   string(StageVerifying),
			Current: i + 1,
			Total:   len(artifacts),
			Message: artifact.ContractName,
			Spinner: true,
		})
		result.Results = append(result.Results, uc.verifyOne(ctx, chain, network, apiKey, artifact))
	}

	failed := result.Failed()
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageCompleted),
		Message: fmt.Sprintf("Verified %d of %d contracts", len(artifacts)-failed, len(artifacts)),
	})
	if failed > 0 {
		return result, fmt.Errorf("%w: %d of %d contracts", domain.ErrVerificationFailed, failed, len(artifacts))
	}
	return result, nil
}

// apiKey prefers a network specific key over the shared etherscan key.
func (uc *VerifyContract) apiKey(networkName string) string {
	if key := strings.TrimSpace(uc.cfg.Project.APIKeys[networkName]); key != "" {
		return key
	}
	return strings.TrimSpace(uc.cfg.Project.APIKeys["etherscan"])
}

func (uc *VerifyContract) configName() string {
	if uc.cfg.ConfigFile == "" {
		return "gns.toml"
	}
	return uc.cfg.ConfigFile
}

func (uc *VerifyContract) targets(ctx context.Context, chainID uint64, networkName string, names []string) ([]*models.Artifact, error) {
	if len(names) > 0 {
		artifacts := make([]*models.Artifact, 0, len(names))
		for _, name := range names {
			a, err := uc.store.Load(ctx, name)
			if err != nil {
				return nil, err
			}
			if _, ok := a.Deployment(chainID); !ok {
				return nil, fmt.Errorf("%w: %s on %s (chain %d)", domain.ErrNotDeployed, name, networkName, chainID)
			}
			artifacts = append(artifacts, a)
		}
		return artifacts, nil
	}

	if localChains[chainID] {
		return nil, fmt.Errorf("chain %d is a local chain with no explorer", chainID)
	}
	all, err := uc.store.List(ctx)
	if err != nil {
		return nil, err
	}
	var artifacts []*models.Artifact
	for _, a := range all {
		if _, ok := a.Deployment(chainID); ok {
			artifacts = append(artifacts, a)
		}
	}
	if len(artifacts) == 0 {
		return nil, fmt.Errorf("%w: no artifacts have a deployment on %s (chain %d)", domain.ErrNotDeployed, networkName, chainID)
	}
	return artifacts, nil
}

func (uc *VerifyContract) verifyOne(ctx context.Context, chain Chain, network *config.NetworkConfig, apiKey string, artifact *models.Artifact) ContractVerification {
	deployment, _ := artifact.Deployment(chain.ChainID())
	out := ContractVerification{
		Contract:    artifact.ContractName,
		Address:     common.HexToAddress(deployment.Address),
		ExplorerURL: domain.ExplorerAddressURL(chain.ChainID(), deployment.Address),
		Status:      VerifyStatusFailed,
	}

	req, args, err := uc.buildRequest(ctx, chain, artifact, deployment)
	if err != nil {
		out.Error = err
		return out
	}
	out.Args = args
	req.APIURL = network.ExplorerAPIURL
	req.APIKey = apiKey

	res, err := uc.verifier.Verify(ctx, *req)
	if err != nil {
		out.Error = err
		return out
	}

	out.GUID = res.GUID
	out.Message = res.Message
	out.Status = VerifyStatusVerified
	if res.AlreadyVerified {
		out.Status = VerifyStatusAlreadyVerified
	}
	return out
}

// buildRequest reproduces the compiler input recorded in the artifact metadata
// and recovers the constructor arguments from the deployment transaction.
func (uc *VerifyContract) buildRequest(ctx context.Context, chain Chain, artifact *models.Artifact, deployment models.NetworkDeployed) (*VerifyRequest, []DecodedArg, error) {
	if artifact.Metadata == "" {
		return nil, nil, fmt.Errorf("artifact %s has no compiler metadata; recompile with 'gns compile'", artifact.ContractName)
	}
	md, err := artifact.ParseMetadata()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid metadata in %s: %w", artifact.ContractName, err)
	}

	target, err := compilationTarget(md, artifact.ContractName)
	if err != nil {
		return nil, nil, err
	}

	unitNames := make([]string, 0, len(md.Sources))
	for name := range md.Sources {
		unitNames = append(unitNames, name)
	}
	sort.Strings(unitNames)

	contents, err := uc.collector.ReadUnits(ctx, unitNames)
	if err != nil {
		return nil, nil, err
	}
	for _, name := range unitNames {
		want := md.Sources[name].Keccak256
		if want == "" {
			continue
		}
		if got := crypto.Keccak256Hash([]byte(contents[name])).Hex(); !strings.EqualFold(got, want) {
			return nil, nil, fmt.Errorf("%s changed since %s was compiled; restore it or recompile and redeploy", name, artifact.ContractName)
		}
	}

	input := uc.compiler.StandardInput(contents)
	input.Settings.Optimizer.Enabled = md.Settings.Optimizer.Enabled
	input.Settings.Optimizer.Runs = md.Settings.Optimizer.Runs
	input.Settings.EVMVersion = md.Settings.EvmVersion
	input.Settings.Remappings = md.Settings.Remappings
	input.Settings.Libraries = splitLibraries(md.Settings.Libraries)
	input.Settings.OutputSelection = nil

	standardJSON, err := json.Marshal(input)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode verification input: %w", err)
	}

	tx, err := chain.TransactionByHash(ctx, common.HexToHash(deployment.TransactionHash))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch deployment transaction %s: %w", deployment.TransactionHash, err)
	}
	raw, args, err := uc.coder.ConstructorArgs(artifact, tx.Data())
	if err != nil {
		return nil, nil, err
	}

	return &VerifyRequest{
		ChainID:         chain.ChainID(),
		Address:         common.HexToAddress(deployment.Address),
		ContractName:    target,
		CompilerVersion: "v" + md.Compiler.Version,
		StandardJSON:    standardJSON,
		ConstructorArgs: hex.EncodeToString(raw),
	}, args, nil
}

// compilationTarget returns "path/to/File.sol:Name".
func compilationTarget(md *models.SolcMetadata, contract string) (string, error) {
	for file, name := range md.Settings.CompilationTarget {
		if name == contract {
			return file + ":" + name, nil
		}
	}
	return "", fmt.Errorf("metadata of %s has no compilation target", contract)
}

// splitLibraries turns metadata "file:Lib" keys into the standard-json nesting.
func splitLibraries(libs map[string]string) map[string]map[string]string {
	if len(libs) == 0 {
		return nil
	}
	out := make(map[string]map[string]string)
	for key, addr := range libs {
		file, name, ok := strings.Cut(key, ":")
		if !ok {
			file, name = "", key
		}
		if out[file] == nil {
			out[file] = make(map[string]string)
		}
		out[file][name] = addr
	}
	return out
}
