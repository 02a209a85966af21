//go:build wireinject
// +build wireinject

package app

import (
	"io"

	"github.com/google/wire"
	"github.com/spf13/viper"

	"github.com/GainsNetwork/GNS-ethereum/internal/adapters"
	"github.com/GainsNetwork/GNS-ethereum/internal/config"
	"github.com/GainsNetwork/GNS-ethereum/internal/logging"
	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

// InitApp creates a fully wired App instance. Progress is written to out.
func InitApp(v *viper.Viper, out io.Writer) (*App, func(), error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewShowConfig,
		usecase.NewSetConfig,
		usecase.NewRemoveConfig,
		usecase.NewShowProject,
		usecase.NewListNetworks,
		usecase.NewCheckEnv,
		usecase.NewConvertUnits,
		usecase.NewCompileContracts,
		usecase.NewDeployContract,
		usecase.NewVerifyContract,
		usecase.NewRunTests,
		usecase.NewListPlugins,
		usecase.NewInitProject,

		// App
		NewApp,
	)
	return nil, nil, nil
}
