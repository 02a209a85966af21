package app

import (
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/config"
	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Shared dependencies
	Artifacts usecase.ArtifactStore

	// Use cases
	ShowConfig       *usecase.ShowConfig
	SetConfig        *usecase.SetConfig
	RemoveConfig     *usecase.RemoveConfig
	ShowProject      *usecase.ShowProject
	ListNetworks     *usecase.ListNetworks
	CheckEnv         *usecase.CheckEnv
	ConvertUnits     *usecase.ConvertUnits
	CompileContracts *usecase.CompileContracts
	DeployContract   *usecase.DeployContract
	VerifyContract   *usecase.VerifyContract
	RunTests         *usecase.RunTests
	ListPlugins      *usecase.ListPlugins
	InitProject      *usecase.InitProject
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	artifacts usecase.ArtifactStore,
	showConfig *usecase.ShowConfig,
	setConfig *usecase.SetConfig,
	removeConfig *usecase.RemoveConfig,
	showProject *usecase.ShowProject,
	listNetworks *usecase.ListNetworks,
	checkEnv *usecase.CheckEnv,
	convertUnits *usecase.ConvertUnits,
	compileContracts *usecase.CompileContracts,
	deployContract *usecase.DeployContract,
	verifyContract *usecase.VerifyContract,
	runTests *usecase.RunTests,
	listPlugins *usecase.ListPlugins,
	initProject *usecase.InitProject,
) (*App, error) {
	return &App{
		Config:           cfg,
		Artifacts:        artifacts,
		ShowConfig:       showConfig,
		SetConfig:        setConfig,
		RemoveConfig:     removeConfig,
		ShowProject:      showProject,
		ListNetworks:     listNetworks,
		CheckEnv:         checkEnv,
		ConvertUnits:     convertUnits,
		CompileContracts: compileContracts,
		DeployContract:   deployContract,
		VerifyContract:   verifyContract,
		RunTests:         runTests,
		ListPlugins:      listPlugins,
		InitProject:      initProject,
	}, nil
}
