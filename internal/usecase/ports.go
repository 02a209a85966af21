package usecase

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/GainsNetwork/GNS-ethereum/internal/domain/config"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/models"
)

// LocalConfigStore handles persistence of local CLI settings
type LocalConfigStore interface {
	Exists() bool
	Load(ctx context.Context) (*config.LocalConfig, error)
	Save(ctx context.Context, config *config.LocalConfig) error
	GetPath() string
}

// ArtifactStore reads and writes compiled contract artifacts
type ArtifactStore interface {
	List(ctx context.Context) ([]*models.Artifact, error)
	Load(ctx context.Context, name string) (*models.Artifact, error)
	// Save writes an artifact, keeping deployment records already on disk.
	Save(ctx context.Context, artifact *models.Artifact) error
	Dir() string
}

// SourceCollector gathers Solidity sources and everything they import
type SourceCollector interface {
	Collect(ctx context.Context, dir string) (*SourceSet, error)
	// ReadUnits reads named source units without following imports.
	ReadUnits(ctx context.Context, units []string) (map[string]string, error)
}

// SourceSet maps solc source unit names to file contents.
type SourceSet struct {
	Sources map[string]string
	// Roots are the units found under the contracts directory, the rest are imports.
	Roots []string
}

// Compiler compiles Solidity sources
type Compiler interface {
	Version(ctx context.Context) (string, error)
	Compile(ctx context.Context, sources *SourceSet) (*CompileOutput, error)
	// StandardInput builds the solc input document for a set of sources.
	StandardInput(sources map[string]string) *models.StandardJSONInput
}

// CompileOutput is the result of a successful compilation
type CompileOutput struct {
	Artifacts []*models.Artifact
	Warnings  []string
	Version   string
}

// DecodedArg is one decoded constructor argument
type DecodedArg struct {
	Name  string
	Type  string
	Value string
}

// ABICoder encodes and decodes contract creation data
type ABICoder interface {
	// CreationData returns the bytecode followed by the packed constructor arguments.
	CreationData(artifact *models.Artifact, args []string) ([]byte, error)
	// ConstructorArgs strips the bytecode from deployment input and decodes the rest.
	ConstructorArgs(artifact *models.Artifact, input []byte) ([]byte, []DecodedArg, error)
	// ConstructorSignature renders the constructor inputs, e.g. "(address owner, uint256 cap)".
	ConstructorSignature(artifact *models.Artifact) (string, error)
}

// FileWriter handles project scaffolding writes
type FileWriter interface {
	FileExists(ctx context.Context, path string) (bool, error)
	WriteFile(ctx context.Context, path string, content []byte) error
	// EnsureLine appends line to path unless already present. Reports whether it wrote.
	EnsureLine(ctx context.Context, path string, line string) (bool, error)
}

// TxRequest describes a transaction before nonce assignment and signing
type TxRequest struct {
	From     common.Address
	To       *common.Address
	Data     []byte
	Value    *big.Int
	Gas      uint64
	GasPrice *big.Int
	Nonce    uint64
}

// Chain is a connection to the selected network
type Chain interface {
	ChainID() uint64
	From() common.Address
	// Signed reports whether transactions are signed locally.
	Signed() bool

	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	SendTransaction(ctx context.Context, req TxRequest) (common.Hash, error)
	WaitMined(ctx context.Context, hash common.Hash, confirmations uint64) (*types.Receipt, error)
	TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, error)
	Close()
}

// ChainConnector opens connections to the selected network
type ChainConnector interface {
	Connect(ctx context.Context) (Chain, error)
}

// ChainProbe is the outcome of asking an endpoint for its chain id
type ChainProbe struct {
	ChainID uint64
	Cached  bool
	Err     error
}

// ChainIDResolver looks up live chain ids for configured networks
type ChainIDResolver interface {
	Resolve(ctx context.Context, networks map[string]config.NetworkConfig) map[string]ChainProbe
}

// VerifyRequest is a source verification submission
type VerifyRequest struct {
	APIURL          string
	APIKey          string
	ChainID         uint64
	Address         common.Address
	ContractName    string // "path/to/File.sol:Name"
	CompilerVersion string // "v0.7.5+commit.eb77ed08"
	StandardJSON    []byte
	ConstructorArgs string // hex without 0x
}

// VerifyResult reports the final verification status
type VerifyResult struct {
	GUID            string
	AlreadyVerified bool
	Message         string
}

// ContractVerifier handles contract verification
type ContractVerifier interface {
	Verify(ctx context.Context, req VerifyRequest) (*VerifyResult, error)
}

// SecretInfo describes deployer key material without exposing it
type SecretInfo struct {
	Kind     string
	Address  common.Address
	Redacted string
}

// SecretInspector checks deployer secrets
type SecretInspector interface {
	Inspect(secret string, provider config.ProviderConfig, passphrase string) (*SecretInfo, error)
	Redact(secret string) string
}

// TestRunner runs the JS test command
type TestRunner interface {
	Run(ctx context.Context, dir string, argv []string) error
}

// InteractivePrompter asks the user for confirmation and choices
type InteractivePrompter interface {
	Confirm(ctx context.Context, label string) (bool, error)
	SelectArtifact(ctx context.Context, artifacts []*models.Artifact, prompt string) (*models.Artifact, error)
}

// Progress tracking interfaces

// ExecutionStage names a step of a long-running operation
type ExecutionStage string

const (
	StageCollecting   ExecutionStage = "collecting"
	StageCompiling    ExecutionStage = "compiling"
	StageConnecting   ExecutionStage = "connecting"
	StageSimulating   ExecutionStage = "simulating"
	StageBroadcasting ExecutionStage = "broadcasting"
	StageConfirming   ExecutionStage = "confirming"
	StageVerifying    ExecutionStage = "verifying"
	StageCompleted    ExecutionStage = "completed"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}
