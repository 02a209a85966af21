package models

import (
	"encoding/json"
	"strconv"
	"time"
)

// Artifact is a compiled contract in the truffle artifact layout, one JSON
// file per contract in the build directory.
type Artifact struct {
	ContractName     string                     `json:"contractName"`
	ABI              json.RawMessage            `json:"abi"`
	Metadata         string                     `json:"metadata,omitempty"`
	Bytecode         string                     `json:"bytecode"`
	DeployedBytecode string                     `json:"deployedBytecode,omitempty"`
	SourcePath       string                     `json:"sourcePath,omitempty"`
	Source           string                     `json:"source,omitempty"`
	Compiler         CompilerInfo               `json:"compiler"`
	Networks         map[string]NetworkDeployed `json:"networks"`
	SchemaVersion    string                     `json:"schemaVersion,omitempty"`
	UpdatedAt        time.Time                  `json:"updatedAt"`
}

// CompilerInfo records which compiler produced an artifact.
type CompilerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// NetworkDeployed records a deployment of an artifact on one chain.
type NetworkDeployed struct {
	Address         string `json:"address"`
	TransactionHash string `json:"transactionHash"`
}

// Deployment looks up the deployment on a chain.
func (a *Artifact) Deployment(chainID uint64) (NetworkDeployed, bool) {
	if a.Networks == nil {
		return NetworkDeployed{}, false
	}
	d, ok := a.Networks[strconv.FormatUint(chainID, 10)]
	return d, ok && d.Address != ""
}

// RecordDeployment stores a deployment for a chain.
func (a *Artifact) RecordDeployment(chainID uint64, d NetworkDeployed) {
	if a.Networks == nil {
		a.Networks = make(map[string]NetworkDeployed)
	}
	a.Networks[strconv.FormatUint(chainID, 10)] = d
}

// HasBytecode reports whether the artifact can be deployed (not abstract/interface).
func (a *Artifact) HasBytecode() bool {
	return a.Bytecode != "" && a.Bytecode != "0x"
}

// SolcMetadata is the subset of solc's metadata JSON needed to reproduce a build.
type SolcMetadata struct {
	Compiler struct {
		Version string `json:"version"`
	} `json:"compiler"`
	Language string `json:"language"`
	Settings struct {
		CompilationTarget map[string]string `json:"compilationTarget"`
		EvmVersion        string            `json:"evmVersion"`
		Libraries         map[string]string `json:"libraries"`
		Optimizer         struct {
			Enabled bool `json:"enabled"`
			Runs    int  `json:"runs"`
		} `json:"optimizer"`
		Remappings []string `json:"remappings"`
	} `json:"settings"`
	Sources map[string]struct {
		Keccak256 string `json:"keccak256"`
	} `json:"sources"`
}

// ParseMetadata decodes the artifact's embedded solc metadata.
func (a *Artifact) ParseMetadata() (*SolcMetadata, error) {
	var md SolcMetadata
	if err := json.Unmarshal([]byte(a.Metadata), &md); err != nil {
		return nil, err
	}
	return &md, nil
}
