package adapters

import (
	"log/slog"

	"github.com/google/wire"

	"github.com/GainsNetwork/GNS-ethereum/internal/adapters/abi"
	"github.com/GainsNetwork/GNS-ethereum/internal/adapters/fs"
	"github.com/GainsNetwork/GNS-ethereum/internal/adapters/interactive"
	"github.com/GainsNetwork/GNS-ethereum/internal/adapters/network"
	"github.com/GainsNetwork/GNS-ethereum/internal/adapters/progress"
	"github.com/GainsNetwork/GNS-ethereum/internal/adapters/provider"
	"github.com/GainsNetwork/GNS-ethereum/internal/adapters/solc"
	"github.com/GainsNetwork/GNS-ethereum/internal/adapters/testrunner"
	"github.com/GainsNetwork/GNS-ethereum/internal/adapters/verification"
	"github.com/GainsNetwork/GNS-ethereum/internal/adapters/wallet"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/config"
	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

// ProvideChainFactory provides the lazy connection to the selected network.
// The cleanup closes the connection if a command opened one.
func ProvideChainFactory(cfg *config.RuntimeConfig, log *slog.Logger) (*provider.Factory, func()) {
	f := provider.NewFactory(cfg, log)
	return f, f.Close
}

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewLocalConfigStoreAdapter,
	wire.Bind(new(usecase.LocalConfigStore), new(*fs.LocalConfigStoreAdapter)),

	fs.NewArtifactStoreAdapter,
	wire.Bind(new(usecase.ArtifactStore), new(*fs.ArtifactStoreAdapter)),

	fs.NewSourceCollectorAdapter,
	wire.Bind(new(usecase.SourceCollector), new(*fs.SourceCollectorAdapter)),

	fs.NewFileWriterAdapter,
	wire.Bind(new(usecase.FileWriter), new(*fs.FileWriterAdapter)),
)

// SolcSet provides the compiler
var SolcSet = wire.NewSet(
	solc.NewCompilerAdapter,
	wire.Bind(new(usecase.Compiler), new(*solc.CompilerAdapter)),
)

// ABISet provides constructor encoding
var ABISet = wire.NewSet(
	abi.NewCoder,
	wire.Bind(new(usecase.ABICoder), new(*abi.Coder)),
)

// ChainSet provides chain connectivity
var ChainSet = wire.NewSet(
	ProvideChainFactory,
	wire.Bind(new(usecase.ChainConnector), new(*provider.Factory)),

	network.NewResolver,
	wire.Bind(new(usecase.ChainIDResolver), new(*network.Resolver)),

	wallet.NewInspector,
	wire.Bind(new(usecase.SecretInspector), new(*wallet.Inspector)),
)

// VerificationSet provides explorer verification
var VerificationSet = wire.NewSet(
	verification.NewEtherscanVerifier,
	wire.Bind(new(usecase.ContractVerifier), new(*verification.EtherscanVerifier)),
)

// TestRunnerSet provides the test command runner
var TestRunnerSet = wire.NewSet(
	testrunner.NewRunnerAdapter,
	wire.Bind(new(usecase.TestRunner), new(*testrunner.RunnerAdapter)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.InteractivePrompter), new(*interactive.SelectorAdapter)),
)

// ProgressSet picks the progress display for the output mode
var ProgressSet = wire.NewSet(
	progress.NewSink,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	SolcSet,
	ABISet,
	ChainSet,
	VerificationSet,
	TestRunnerSet,
	InteractiveSet,
	ProgressSet,
)
