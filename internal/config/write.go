package config

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/config"
)

const projectFileHeader = `# gns project configuration.
#
# Secrets never live in this file: each network provider names the
# environment variables holding the deployer mnemonic (or private key) and
# the RPC endpoint. Put them in a git-ignored .env next to this file.
#
# gas_price accepts human readable amounts such as "120 gwei".

`

// EncodeProjectConfig renders a project config as TOML with a short header.
func EncodeProjectConfig(cfg *config.ProjectConfig) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(projectFileHeader)

	enc := toml.NewEncoder(&buf)
	enc.Indent = "  "
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode project config: %w", err)
	}
	return buf.Bytes(), nil
}
