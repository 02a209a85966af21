package domain

import "fmt"

// EtherscanV2API is the multichain Etherscan endpoint; chainid selects the network.
const EtherscanV2API = "https://api.etherscan.io/v2/api"

// explorers maps chain IDs to block explorer base URLs.
var explorers = map[uint64]string{
	1:        "https://etherscan.io",
	10:       "https://optimistic.etherscan.io",
	56:       "https://bscscan.com",
	137:      "https://polygonscan.com",
	250:      "https://ftmscan.com",
	324:      "https://explorer.zksync.io",
	1101:     "https://zkevm.polygonscan.com",
	8453:     "https://basescan.org",
	42161:    "https://arbiscan.io",
	42220:    "https://celoscan.io",
	43114:    "https://snowtrace.io",
	44787:    "https://alfajores.celoscan.io",
	11155111: "https://sepolia.etherscan.io",
}

// ExplorerURL returns the explorer base URL for a chain, or "".
func ExplorerURL(chainID uint64) string {
	return explorers[chainID]
}

// ExplorerAddressURL returns a link to an address page, or "".
func ExplorerAddressURL(chainID uint64, address string) string {
	base := ExplorerURL(chainID)
	if base == "" {
		return ""
	}
	return fmt.Sprintf("%s/address/%s", base, address)
}

// ExplorerTxURL returns a link to a transaction page, or "".
func ExplorerTxURL(chainID uint64, hash string) string {
	base := ExplorerURL(chainID)
	if base == "" {
		return ""
	}
	return fmt.Sprintf("%s/tx/%s", base, hash)
}
