package models

import "encoding/json"

// StandardJSONInput is solc's --standard-json input. The same document is
// submitted to explorers for verification.
type StandardJSONInput struct {
	Language string                    `json:"language"`
	Sources  map[string]StandardSource `json:"sources"`
	Settings StandardSettings          `json:"settings"`
}

// StandardSource is one source unit.
type StandardSource struct {
	Content string `json:"content"`
}

// StandardSettings holds compiler settings.
type StandardSettings struct {
	Optimizer       StandardOptimizer              `json:"optimizer"`
	EVMVersion      string                         `json:"evmVersion,omitempty"`
	Libraries       map[string]map[string]string   `json:"libraries,omitempty"`
	Remappings      []string                       `json:"remappings,omitempty"`
	OutputSelection map[string]map[string][]string `json:"outputSelection,omitempty"`
}

// StandardOptimizer mirrors the optimizer block.
type StandardOptimizer struct {
	Enabled bool `json:"enabled"`
	Runs    int  `json:"runs"`
}

// StandardJSONOutput is the subset of solc output the tool reads.
type StandardJSONOutput struct {
	Errors    []CompilerDiagnostic                   `json:"errors"`
	Contracts map[string]map[string]CompiledContract `json:"contracts"`
}

// CompilerDiagnostic is an error or warning reported by solc.
type CompilerDiagnostic struct {
	Severity         string `json:"severity"`
	Type             string `json:"type"`
	Message          string `json:"message"`
	FormattedMessage string `json:"formattedMessage"`
}

// Text returns the formatted message, falling back to the short one.
func (d CompilerDiagnostic) Text() string {
	if d.FormattedMessage != "" {
		return d.FormattedMessage
	}
	return d.Type + ": " + d.Message
}

// CompiledContract is one contract in solc output.
type CompiledContract struct {
	ABI      json.RawMessage `json:"abi"`
	Metadata string          `json:"metadata"`
	EVM      struct {
		Bytecode struct {
			Object string `json:"object"`
		} `json:"bytecode"`
		DeployedBytecode struct {
			Object string `json:"object"`
		} `json:"deployedBytecode"`
	} `json:"evm"`
}
