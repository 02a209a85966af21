package provider

import (
	"context"
	"log/slog"
	"math/big"
	"net/url"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/GainsNetwork/GNS-ethereum/internal/domain"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/config"
	"github.com/GainsNetwork/GNS-ethereum/internal/testutil"
	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

const testMnemonic = "test test test test test test test test test test test junk"

var (
	account0 = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	account1 = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func mainnetLike(networkID string) config.NetworkConfig {
	return config.NetworkConfig{
		Provider: &config.ProviderConfig{
			SecretEnv:   "GNS_TEST_DEPLOYER",
			EndpointEnv: "GNS_TEST_ENDPOINT",
		},
		NetworkID:  networkID,
		SkipDryRun: true,
	}
}

func newFactory(name string, n config.NetworkConfig) *Factory {
	f := NewNetworkFactory(name, n, discard())
	f.PollInterval = time.Millisecond
	return f
}

func TestFactoryGet(t *testing.T) {
	ctx := context.Background()

	t.Run("provider network", func(t *testing.T) {
		node := testutil.NewFakeNode(t, 1)
		t.Setenv("GNS_TEST_DEPLOYER", testMnemonic)
		t.Setenv("GNS_TEST_ENDPOINT", node.URL())

		f := newFactory("mainnet", mainnetLike("1"))
		defer f.Close()

		h, err := f.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), h.ChainID())
		assert.Equal(t, account0, h.From())
		assert.True(t, h.Signed())

		again, err := f.Get(ctx)
		require.NoError(t, err)
		assert.Same(t, h, again)
		assert.Equal(t, 1, node.Calls("eth_chainId"))
	})

	t.Run("from must belong to the wallet", func(t *testing.T) {
		node := testutil.NewFakeNode(t, 1)
		t.Setenv("GNS_TEST_DEPLOYER", testMnemonic)
		t.Setenv("GNS_TEST_ENDPOINT", node.URL())

		n := mainnetLike("1")
		n.Provider.NumAddresses = 2
		n.From = account1.Hex()
		f := newFactory("mainnet", n)
		defer f.Close()

		h, err := f.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, account1, h.From())

		n.From = "0x000000000000000000000000000000000000dEaD"
		_, err = newFactory("mainnet", n).Get(ctx)
		assert.ErrorContains(t, err, "not derived from the deployer secret")
	})

	t.Run("chain id mismatch", func(t *testing.T) {
		node := testutil.NewFakeNode(t, 5)
		t.Setenv("GNS_TEST_DEPLOYER", testMnemonic)
		t.Setenv("GNS_TEST_ENDPOINT", node.URL())

		f := newFactory("mainnet", mainnetLike("1"))
		_, err := f.Get(ctx)
		assert.ErrorIs(t, err, domain.ErrChainIDMismatch)

		// the failure sticks
		_, err = f.Get(ctx)
		assert.ErrorIs(t, err, domain.ErrChainIDMismatch)
		assert.Equal(t, 1, node.Calls("eth_chainId"))
	})

	t.Run("any network id", func(t *testing.T) {
		node := testutil.NewFakeNode(t, 31337)
		t.Setenv("GNS_TEST_DEPLOYER", testMnemonic)
		t.Setenv("GNS_TEST_ENDPOINT", node.URL())

		f := newFactory("dev", mainnetLike("*"))
		defer f.Close()
		h, err := f.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(31337), h.ChainID())
	})

	t.Run("missing env", func(t *testing.T) {
		t.Setenv("GNS_TEST_DEPLOYER", "")
		t.Setenv("GNS_TEST_ENDPOINT", "")

		_, err := newFactory("mainnet", mainnetLike("1")).Get(ctx)
		var missing *domain.MissingEnvError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{"GNS_TEST_DEPLOYER", "GNS_TEST_ENDPOINT"}, missing.Vars)
		assert.ErrorIs(t, err, domain.ErrMissingEnv)
	})

	t.Run("bad secret", func(t *testing.T) {
		t.Setenv("GNS_TEST_DEPLOYER", "not a mnemonic")
		t.Setenv("GNS_TEST_ENDPOINT", "http://127.0.0.1:1")

		_, err := newFactory("mainnet", mainnetLike("1")).Get(ctx)
		assert.ErrorIs(t, err, domain.ErrInvalidSecret)
		assert.NotContains(t, err.Error(), "not a mnemonic")
	})

	t.Run("host network uses node accounts", func(t *testing.T) {
		node := testutil.NewFakeNode(t, 1337)
		node.Accounts = []common.Address{account1}

		u, err := url.Parse(node.URL())
		require.NoError(t, err)
		port, err := strconv.Atoi(u.Port())
		require.NoError(t, err)

		f := newFactory("development", config.NetworkConfig{Host: u.Hostname(), Port: port, NetworkID: "*"})
		defer f.Close()

		h, err := f.Get(ctx)
		require.NoError(t, err)
		assert.False(t, h.Signed())
		assert.Equal(t, account1, h.From())

		_, err = h.SendTransaction(ctx, usecase.TxRequest{From: h.From(), Gas: 21000, Data: []byte{0x60}})
		require.NoError(t, err)
		require.Len(t, node.RawSent, 1)
		assert.Equal(t, "0x5208", node.RawSent[0]["gas"])
		assert.NotContains(t, node.RawSent[0], "gasPrice")
		assert.NotContains(t, node.RawSent[0], "to")
	})

	t.Run("network not selected", func(t *testing.T) {
		f := NewFactory(&config.RuntimeConfig{}, discard())
		_, err := f.Connect(ctx)
		assert.ErrorIs(t, err, domain.ErrNetworkNotSpecified)

		f = NewFactory(&config.RuntimeConfig{NetworkName: "goerli"}, discard())
		_, err = f.Connect(ctx)
		assert.ErrorIs(t, err, domain.ErrNetworkNotConfigured)
	})
}

func TestHandleTransactions(t *testing.T) {
	ctx := context.Background()
	node := testutil.NewFakeNode(t, 1)
	node.Nonce = 3
	t.Setenv("GNS_TEST_DEPLOYER", testMnemonic)
	t.Setenv("GNS_TEST_ENDPOINT", node.URL())

	f := newFactory("mainnet", mainnetLike("1"))
	defer f.Close()
	h, err := f.Get(ctx)
	require.NoError(t, err)

	nonce, err := h.PendingNonceAt(ctx, h.From())
	require.NoError(t, err)
	assert.Equal(t, uint64(3), nonce)

	hash, err := h.SendTransaction(ctx, usecase.TxRequest{
		From:     h.From(),
		Data:     common.FromHex("0x6080604052"),
		Gas:      90_000,
		GasPrice: big.NewInt(120_000_000_000),
		Nonce:    nonce,
	})
	require.NoError(t, err)
	require.Len(t, node.Sent, 1)

	sent := node.Sent[0]
	assert.Equal(t, hash, sent.Hash())
	assert.Nil(t, sent.To())
	assert.Equal(t, uint64(3), sent.Nonce())
	assert.Equal(t, big.NewInt(120_000_000_000), sent.GasPrice())
	sender, err := types.Sender(types.LatestSignerForChainID(big.NewInt(1)), sent)
	require.NoError(t, err)
	assert.Equal(t, account0, sender)

	receipt, err := h.WaitMined(ctx, hash, 2)
	require.NoError(t, err)
	assert.Equal(t, types.ReceiptStatusSuccessful, receipt.Status)
	assert.GreaterOrEqual(t, node.Head, receipt.BlockNumber.Uint64()+2)

	tx, err := h.TransactionByHash(ctx, hash)
	require.NoError(t, err)
	assert.Equal(t, sent.Data(), tx.Data())

	_, err = h.TransactionByHash(ctx, common.HexToHash("0x01"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWaitMinedHonoursContext(t *testing.T) {
	node := testutil.NewFakeNode(t, 1)
	t.Setenv("GNS_TEST_DEPLOYER", testMnemonic)
	t.Setenv("GNS_TEST_ENDPOINT", node.URL())

	f := newFactory("mainnet", mainnetLike("1"))
	defer f.Close()
	h, err := f.Get(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = h.WaitMined(ctx, common.HexToHash("0xabc"), 0)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRedactEndpoint(t *testing.T) {
	assert.Equal(t, "https://mainnet.infura.io/v3/***", redactEndpoint("https://mainnet.infura.io/v3/0123456789abcdef"))
	assert.Equal(t, "https://eth-mainnet.g.alchemy.com/v2/***", redactEndpoint("https://eth-mainnet.g.alchemy.com/v2/key"))
	assert.Equal(t, "http://127.0.0.1:8545", redactEndpoint("http://127.0.0.1:8545"))
}
