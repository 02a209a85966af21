package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/GainsNetwork/GNS-ethereum/internal/adapters/wallet"
	internalconfig "github.com/GainsNetwork/GNS-ethereum/internal/config"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/config"
	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

// DefaultPollInterval is how often receipts and block numbers are polled.
const DefaultPollInterval = 2 * time.Second

// Factory builds the connection for one network on first use and
// hands out the same handle afterwards. A failed build is not retried.
type Factory struct {
	name    string
	network *config.NetworkConfig
	log     *slog.Logger

	PollInterval time.Duration

	once   sync.Once
	handle *Handle
	err    error
}

// NewFactory creates a factory for the selected network. The network may be
// unset; Connect then reports why.
func NewFactory(cfg *config.RuntimeConfig, log *slog.Logger) *Factory {
	return &Factory{
		name:         cfg.NetworkName,
		network:      cfg.Network,
		log:          log.With("component", "provider"),
		PollInterval: DefaultPollInterval,
	}
}

// NewNetworkFactory creates a factory for an explicit network.
func NewNetworkFactory(name string, network config.NetworkConfig, log *slog.Logger) *Factory {
	return &Factory{
		name:         name,
		network:      &network,
		log:          log.With("component", "provider", "network", name),
		PollInterval: DefaultPollInterval,
	}
}

// Connect implements usecase.ChainConnector.
func (f *Factory) Connect(ctx context.Context) (usecase.Chain, error) {
	h, err := f.Get(ctx)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// Get returns the handle, building it on the first call.
func (f *Factory) Get(ctx context.Context) (*Handle, error) {
	f.once.Do(func() {
		f.handle, f.err = f.build(ctx)
	})
	return f.handle, f.err
}

// Close releases the connection if one was made.
func (f *Factory) Close() {
	if f.handle != nil {
		f.handle.Close()
	}
}

func (f *Factory) build(ctx context.Context) (*Handle, error) {
	if f.name == "" {
		return nil, fmt.Errorf("%w: use --network or 'gns config set network <name>'", domain.ErrNetworkNotSpecified)
	}
	if f.network == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrNetworkNotConfigured, f.name)
	}
	n := f.network

	var (
		endpoint string
		w        *wallet.Wallet
	)

	if n.Provider != nil {
		if missing := internalconfig.MissingEnv(internalconfig.RequiredEnv(f.name, *n)); len(missing) > 0 {
			return nil, &domain.MissingEnvError{Network: f.name, Vars: missing}
		}

		var err error
		w, err = wallet.FromSecret(os.Getenv(n.Provider.SecretEnv), wallet.OptionsFor(*n.Provider, os.Getenv(n.Provider.PassphraseEnv)))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", n.Provider.SecretEnv, err)
		}
		endpoint = strings.TrimSpace(os.Getenv(n.Provider.EndpointEnv))
	} else {
		endpoint = n.HostURL()
	}

	f.log.Debug("dialing endpoint", "endpoint", redactEndpoint(endpoint))
	rpcClient, err := rpc.DialContext(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", f.name, err)
	}
	client := ethclient.NewClient(rpcClient)

	h := &Handle{
		network:      f.name,
		client:       client,
		rpc:          rpcClient,
		wallet:       w,
		pollInterval: f.PollInterval,
	}

	if err := h.init(ctx, *n); err != nil {
		client.Close()
		return nil, err
	}

	f.log.Debug("connected", "chainId", h.chainID, "from", h.from.Hex(), "signed", h.Signed())
	return h, nil
}

// Handle is a live connection to a network, optionally with local signing keys.
type Handle struct {
	network      string
	client       *ethclient.Client
	rpc          *rpc.Client
	wallet       *wallet.Wallet
	chainID      uint64
	from         common.Address
	pollInterval time.Duration
}

func (h *Handle) init(ctx context.Context, n config.NetworkConfig) error {
	chainID, err := h.client.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get chain ID from %s: %w", h.network, err)
	}
	h.chainID = chainID.Uint64()

	expected, ok, err := n.ChainID()
	if err != nil {
		return err
	}
	if ok && expected != h.chainID {
		return fmt.Errorf("%w: network %s expects %d, endpoint reports %d",
			domain.ErrChainIDMismatch, h.network, expected, h.chainID)
	}

	if n.From != "" {
		if !common.IsHexAddress(n.From) {
			return fmt.Errorf("network %s: from %q is not an address", h.network, n.From)
		}
		h.from = common.HexToAddress(n.From)
		if h.wallet != nil && !h.wallet.Contains(h.from) {
			return fmt.Errorf("network %s: from %s is not derived from the deployer secret", h.network, h.from.Hex())
		}
		return nil
	}

	if h.wallet != nil {
		h.from = h.wallet.Default()
		return nil
	}

	var accounts []common.Address
	if err := h.rpc.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return fmt.Errorf("failed to list accounts on %s: %w", h.network, err)
	}
	if len(accounts) == 0 {
		return fmt.Errorf("network %s: node has no unlocked accounts and no from is configured", h.network)
	}
	h.from = accounts[0]
	return nil
}

// ChainID returns the chain id reported by the endpoint.
func (h *Handle) ChainID() uint64 { return h.chainID }

// From returns the sending account.
func (h *Handle) From() common.Address { return h.from }

// Signed reports whether transactions are signed with local keys.
func (h *Handle) Signed() bool { return h.wallet != nil }

// Client exposes the underlying ethclient.
func (h *Handle) Client() *ethclient.Client { return h.client }

func (h *Handle) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return h.client.PendingNonceAt(ctx, account)
}

func (h *Handle) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return h.client.SuggestGasPrice(ctx)
}

func (h *Handle) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	return h.client.EstimateGas(ctx, msg)
}

func (h *Handle) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	return h.client.CallContract(ctx, msg, blockNumber)
}

func (h *Handle) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	return h.client.BalanceAt(ctx, account, blockNumber)
}

// SendTransaction signs locally when a wallet is present, otherwise asks
// the node to sign with eth_sendTransaction.
func (h *Handle) SendTransaction(ctx context.Context, req usecase.TxRequest) (common.Hash, error) {
	value := req.Value
	if value == nil {
		value = new(big.Int)
	}

	if h.wallet == nil {
		args := map[string]any{
			"from":  req.From,
			"gas":   hexutil.Uint64(req.Gas),
			"value": (*hexutil.Big)(value),
			"nonce": hexutil.Uint64(req.Nonce),
			"data":  hexutil.Bytes(req.Data),
		}
		if req.GasPrice != nil {
			args["gasPrice"] = (*hexutil.Big)(req.GasPrice)
		}
		if req.To != nil {
			args["to"] = req.To
		}
		var hash common.Hash
		if err := h.rpc.CallContext(ctx, &hash, "eth_sendTransaction", args); err != nil {
			return common.Hash{}, err
		}
		return hash, nil
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    req.Nonce,
		GasPrice: req.GasPrice,
		Gas:      req.Gas,
		To:       req.To,
		Value:    value,
		Data:     req.Data,
	})
	signed, err := h.wallet.SignTx(req.From, tx, new(big.Int).SetUint64(h.chainID))
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to sign transaction: %w", err)
	}
	if err := h.client.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, err
	}
	return signed.Hash(), nil
}

// WaitMined polls for the receipt, then for confirmations further blocks.
func (h *Handle) WaitMined(ctx context.Context, hash common.Hash, confirmations uint64) (*types.Receipt, error) {
	ticker := time.NewTicker(h.pollInterval)
	defer ticker.Stop()

	var receipt *types.Receipt
	for {
		if receipt == nil {
			r, err := h.client.TransactionReceipt(ctx, hash)
			switch {
			case err == nil:
				receipt = r
			case !errors.Is(err, ethereum.NotFound):
				return nil, fmt.Errorf("failed to get receipt for %s: %w", hash.Hex(), err)
			}
		}

		if receipt != nil {
			if confirmations == 0 {
				return receipt, nil
			}
			head, err := h.client.BlockNumber(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get block number: %w", err)
			}
			if head >= receipt.BlockNumber.Uint64()+confirmations {
				return receipt, nil
			}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// TransactionByHash returns a transaction, ErrNotFound if the node doesn't know it.
func (h *Handle) TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, error) {
	tx, _, err := h.client.TransactionByHash(ctx, hash)
	if errors.Is(err, ethereum.NotFound) {
		return nil, fmt.Errorf("%w: transaction %s", domain.ErrNotFound, hash.Hex())
	}
	return tx, err
}

// Close closes the RPC connection.
func (h *Handle) Close() {
	h.client.Close()
}

// redactEndpoint hides API keys that providers embed in the URL path.
func redactEndpoint(endpoint string) string {
	if i := strings.Index(endpoint, "/v3/"); i != -1 {
		return endpoint[:i+4] + "***"
	}
	if i := strings.Index(endpoint, "/v2/"); i != -1 {
		return endpoint[:i+4] + "***"
	}
	return endpoint
}

var (
	_ usecase.ChainConnector = (*Factory)(nil)
	_ usecase.Chain          = (*Handle)(nil)
)
