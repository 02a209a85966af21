package usecase_test

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"

	"github.com/GainsNetwork/GNS-ethereum/internal/domain/config"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/models"
	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

// MockLocalConfigStore is a mock implementation of LocalConfigStore
type MockLocalConfigStore struct {
	mock.Mock
}

func (m *MockLocalConfigStore) Exists() bool {
	return m.Called().Bool(0)
}

func (m *MockLocalConfigStore) Load(ctx context.Context) (*config.LocalConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*config.LocalConfig), args.Error(1)
}

func (m *MockLocalConfigStore) Save(ctx context.Context, cfg *config.LocalConfig) error {
	return m.Called(ctx, cfg).Error(0)
}

func (m *MockLocalConfigStore) GetPath() string {
	return m.Called().String(0)
}

// MockArtifactStore is a mock implementation of ArtifactStore
type MockArtifactStore struct {
	mock.Mock
}

func (m *MockArtifactStore) List(ctx context.Context) ([]*models.Artifact, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Artifact), args.Error(1)
}

func (m *MockArtifactStore) Load(ctx context.Context, name string) (*models.Artifact, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artifact), args.Error(1)
}

func (m *MockArtifactStore) Save(ctx context.Context, artifact *models.Artifact) error {
	return m.Called(ctx, artifact).Error(0)
}

func (m *MockArtifactStore) Dir() string {
	return m.Called().String(0)
}

// MockSourceCollector is a mock implementation of SourceCollector
type MockSourceCollector struct {
	mock.Mock
}

func (m *MockSourceCollector) Collect(ctx context.Context, dir string) (*usecase.SourceSet, error) {
	args := m.Called(ctx, dir)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.SourceSet), args.Error(1)
}

func (m *MockSourceCollector) ReadUnits(ctx context.Context, units []string) (map[string]string, error) {
	args := m.Called(ctx, units)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

// MockCompiler is a mock implementation of Compiler
type MockCompiler struct {
	mock.Mock
}

func (m *MockCompiler) Version(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockCompiler) Compile(ctx context.Context, sources *usecase.SourceSet) (*usecase.CompileOutput, error) {
	args := m.Called(ctx, sources)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.CompileOutput), args.Error(1)
}

func (m *MockCompiler) StandardInput(sources map[string]string) *models.StandardJSONInput {
	input := &models.StandardJSONInput{Language: "Solidity", Sources: map[string]models.StandardSource{}}
	for name, content := range sources {
		input.Sources[name] = models.StandardSource{Content: content}
	}
	return input
}

// MockFileWriter is a mock implementation of FileWriter
type MockFileWriter struct {
	mock.Mock
}

func (m *MockFileWriter) FileExists(ctx context.Context, path string) (bool, error) {
	args := m.Called(ctx, path)
	return args.Bool(0), args.Error(1)
}

func (m *MockFileWriter) WriteFile(ctx context.Context, path string, content []byte) error {
	return m.Called(ctx, path, content).Error(0)
}

func (m *MockFileWriter) EnsureLine(ctx context.Context, path string, line string) (bool, error) {
	args := m.Called(ctx, path, line)
	return args.Bool(0), args.Error(1)
}

// MockChain is a mock implementation of Chain
type MockChain struct {
	mock.Mock
	chainID uint64
	from    common.Address
}

func (m *MockChain) ChainID() uint64      { return m.chainID }
func (m *MockChain) From() common.Address { return m.from }
func (m *MockChain) Signed() bool         { return true }
func (m *MockChain) Close()               {}

func (m *MockChain) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockChain) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockChain) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	args := m.Called(ctx, msg)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockChain) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	args := m.Called(ctx, msg, blockNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockChain) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	args := m.Called(ctx, account, blockNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockChain) SendTransaction(ctx context.Context, req usecase.TxRequest) (common.Hash, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(common.Hash), args.Error(1)
}

func (m *MockChain) WaitMined(ctx context.Context, hash common.Hash, confirmations uint64) (*types.Receipt, error) {
	args := m.Called(ctx, hash, confirmations)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Receipt), args.Error(1)
}

func (m *MockChain) TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Transaction), args.Error(1)
}

// MockChainConnector is a mock implementation of ChainConnector
type MockChainConnector struct {
	mock.Mock
}

func (m *MockChainConnector) Connect(ctx context.Context) (usecase.Chain, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(usecase.Chain), args.Error(1)
}

// MockChainIDResolver is a mock implementation of ChainIDResolver
type MockChainIDResolver struct {
	mock.Mock
}

func (m *MockChainIDResolver) Resolve(ctx context.Context, networks map[string]config.NetworkConfig) map[string]usecase.ChainProbe {
	return m.Called(ctx, networks).Get(0).(map[string]usecase.ChainProbe)
}

// MockContractVerifier is a mock implementation of ContractVerifier
type MockContractVerifier struct {
	mock.Mock
}

func (m *MockContractVerifier) Verify(ctx context.Context, req usecase.VerifyRequest) (*usecase.VerifyResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.VerifyResult), args.Error(1)
}

// MockTestRunner is a mock implementation of TestRunner
type MockTestRunner struct {
	mock.Mock
}

func (m *MockTestRunner) Run(ctx context.Context, dir string, argv []string) error {
	return m.Called(ctx, dir, argv).Error(0)
}

// MockPrompter is a mock implementation of InteractivePrompter
type MockPrompter struct {
	mock.Mock
}

func (m *MockPrompter) Confirm(ctx context.Context, label string) (bool, error) {
	args := m.Called(ctx, label)
	return args.Bool(0), args.Error(1)
}

func (m *MockPrompter) SelectArtifact(ctx context.Context, artifacts []*models.Artifact, prompt string) (*models.Artifact, error) {
	args := m.Called(ctx, artifacts, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artifact), args.Error(1)
}

// MockSecretInspector is a mock implementation of SecretInspector
type MockSecretInspector struct {
	mock.Mock
}

func (m *MockSecretInspector) Inspect(secret string, provider config.ProviderConfig, passphrase string) (*usecase.SecretInfo, error) {
	args := m.Called(secret, provider, passphrase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.SecretInfo), args.Error(1)
}

func (m *MockSecretInspector) Redact(secret string) string {
	return "<redacted>"
}

// MockABICoder is a mock implementation of ABICoder
type MockABICoder struct {
	mock.Mock
}

func (m *MockABICoder) CreationData(artifact *models.Artifact, args []string) ([]byte, error) {
	ret := m.Called(artifact, args)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).([]byte), ret.Error(1)
}

func (m *MockABICoder) ConstructorArgs(artifact *models.Artifact, input []byte) ([]byte, []usecase.DecodedArg, error) {
	ret := m.Called(artifact, input)
	var raw []byte
	if ret.Get(0) != nil {
		raw = ret.Get(0).([]byte)
	}
	var decoded []usecase.DecodedArg
	if ret.Get(1) != nil {
		decoded = ret.Get(1).([]usecase.DecodedArg)
	}
	return raw, decoded, ret.Error(2)
}

func (m *MockABICoder) ConstructorSignature(artifact *models.Artifact) (string, error) {
	ret := m.Called(artifact)
	return ret.String(0), ret.Error(1)
}

// MockProgressSink records progress events
type MockProgressSink struct {
	mu     sync.Mutex
	events []usecase.ProgressEvent
	infos  []string
}

func (m *MockProgressSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infos = append(m.infos, message)
}

func (m *MockProgressSink) Error(message string) {}

// stages returns the distinct stages seen, in order
func (m *MockProgressSink) stages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, e := range m.events {
		if e.Stage == "" || (len(out) > 0 && out[len(out)-1] == e.Stage) {
			continue
		}
		out = append(out, e.Stage)
	}
	return out
}
