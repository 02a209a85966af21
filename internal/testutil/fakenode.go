// Package testutil holds helpers shared by adapter tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

// FakeNode is a minimal JSON-RPC node. Every receipt poll and block number
// query advances the head by one block.
type FakeNode struct {
	mu sync.Mutex

	ChainID  uint64
	Accounts []common.Address
	Nonce    uint64
	GasPrice uint64
	Balance  *hexutil.Big
	Gas      uint64
	// CallError makes eth_call and eth_estimateGas fail with this message.
	CallError string

	Head    uint64
	Sent    []*types.Transaction
	RawSent []map[string]any
	calls   map[string]int
	mined   map[common.Hash]uint64
	Server  *httptest.Server
}

type rpcRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

// NewFakeNode starts a node reporting chainID. The server is closed on cleanup.
func NewFakeNode(t *testing.T, chainID uint64) *FakeNode {
	t.Helper()
	n := &FakeNode{
		ChainID:  chainID,
		GasPrice: 1_000_000_000,
		Gas:      100_000,
		Balance:  (*hexutil.Big)(hexutil.MustDecodeBig("0xde0b6b3a7640000")),
		calls:    make(map[string]int),
		mined:    make(map[common.Hash]uint64),
	}
	n.Server = httptest.NewServer(n)
	t.Cleanup(n.Server.Close)
	return n
}

// URL returns the endpoint URL.
func (n *FakeNode) URL() string { return n.Server.URL }

// Calls returns how many times method was called.
func (n *FakeNode) Calls(method string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls[method]
}

func (n *FakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n.mu.Lock()
	n.calls[req.Method]++
	result, errMsg := n.handle(req)
	n.mu.Unlock()

	resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
	if errMsg != "" {
		resp["error"] = map[string]any{"code": -32000, "message": errMsg}
	} else {
		resp["result"] = result
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (n *FakeNode) handle(req rpcRequest) (any, string) {
	switch req.Method {
	case "eth_chainId":
		return hexutil.Uint64(n.ChainID), ""
	case "eth_accounts":
		if n.Accounts == nil {
			return []common.Address{}, ""
		}
		return n.Accounts, ""
	case "eth_getTransactionCount":
		return hexutil.Uint64(n.Nonce), ""
	case "eth_gasPrice":
		return hexutil.Uint64(n.GasPrice), ""
	case "eth_getBalance":
		return n.Balance, ""
	case "eth_estimateGas":
		if n.CallError != "" {
			return nil, n.CallError
		}
		return hexutil.Uint64(n.Gas), ""
	case "eth_call":
		if n.CallError != "" {
			return nil, n.CallError
		}
		return hexutil.Bytes{}, ""
	case "eth_blockNumber":
		n.Head++
		return hexutil.Uint64(n.Head), ""
	case "eth_sendRawTransaction":
		var raw hexutil.Bytes
		if err := json.Unmarshal(req.Params[0], &raw); err != nil {
			return nil, err.Error()
		}
		tx := new(types.Transaction)
		if err := tx.UnmarshalBinary(raw); err != nil {
			return nil, err.Error()
		}
		n.Sent = append(n.Sent, tx)
		n.mined[tx.Hash()] = n.Head + 1
		n.Nonce++
		return tx.Hash(), ""
	case "eth_sendTransaction":
		var args map[string]any
		if err := json.Unmarshal(req.Params[0], &args); err != nil {
			return nil, err.Error()
		}
		n.RawSent = append(n.RawSent, args)
		hash := common.BytesToHash([]byte{byte(len(n.RawSent))})
		n.mined[hash] = n.Head + 1
		n.Nonce++
		return hash, ""
	case "eth_getTransactionReceipt":
		var hash common.Hash
		if err := json.Unmarshal(req.Params[0], &hash); err != nil {
			return nil, err.Error()
		}
		n.Head++
		block, ok := n.mined[hash]
		if !ok || n.Head < block {
			return nil, ""
		}
		return map[string]any{
			"transactionHash":   hash,
			"blockHash":         common.BytesToHash([]byte{0xb1}),
			"blockNumber":       hexutil.Uint64(block),
			"transactionIndex":  "0x0",
			"cumulativeGasUsed": "0x5208",
			"gasUsed":           "0x5208",
			"logsBloom":         "0x" + strings.Repeat("00", types.BloomByteLength),
			"logs":              []any{},
			"status":            "0x1",
			"type":              "0x0",
			"contractAddress":   common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"),
		}, ""
	case "eth_getTransactionByHash":
		var hash common.Hash
		if err := json.Unmarshal(req.Params[0], &hash); err != nil {
			return nil, err.Error()
		}
		for _, tx := range n.Sent {
			if tx.Hash() == hash {
				return rpcTx(tx), ""
			}
		}
		return nil, ""
	}
	return nil, "method not found: " + req.Method
}

// rpcTx renders a legacy transaction the way nodes return it.
func rpcTx(tx *types.Transaction) map[string]any {
	v, r, s := tx.RawSignatureValues()
	out := map[string]any{
		"type":     hexutil.Uint64(tx.Type()),
		"nonce":    hexutil.Uint64(tx.Nonce()),
		"gas":      hexutil.Uint64(tx.Gas()),
		"gasPrice": (*hexutil.Big)(tx.GasPrice()),
		"value":    (*hexutil.Big)(tx.Value()),
		"input":    hexutil.Bytes(tx.Data()),
		"v":        (*hexutil.Big)(v),
		"r":        (*hexutil.Big)(r),
		"s":        (*hexutil.Big)(s),
		"hash":     tx.Hash(),
	}
	if tx.To() != nil {
		out["to"] = tx.To()
	}
	return out
}
