package wallet

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip39"

	"github.com/GainsNetwork/GNS-ethereum/internal/domain"
)

// SecretKind tells how a deployer secret was interpreted.
type SecretKind string

const (
	SecretMnemonic   SecretKind = "mnemonic"
	SecretPrivateKey SecretKind = "private-key"
)

// Wallet holds the signing keys derived from a deployer secret.
type Wallet struct {
	kind     SecretKind
	accounts []common.Address
	keys     map[common.Address]*ecdsa.PrivateKey
}

// Options controls HD derivation. Ignored for raw private keys.
type Options struct {
	DerivationPath string
	AddressIndex   uint32
	NumAddresses   uint32
	Passphrase     string
}

// FromSecret builds a wallet from a BIP-39 mnemonic or a hex private key.
func FromSecret(secret string, opts Options) (*Wallet, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, fmt.Errorf("%w: empty", domain.ErrInvalidSecret)
	}

	if key, ok := parsePrivateKey(secret); ok {
		w := &Wallet{kind: SecretPrivateKey, keys: make(map[common.Address]*ecdsa.PrivateKey, 1)}
		w.add(key)
		return w, nil
	}

	mnemonic := normalizeMnemonic(secret)
	if !bip39.IsMnemonicValid(mnemonic) {
		// Never echo the secret.
		return nil, fmt.Errorf("%w: neither a 32-byte hex private key nor a valid BIP-39 mnemonic (%d words)",
			domain.ErrInvalidSecret, len(strings.Fields(mnemonic)))
	}

	base, err := accounts.ParseDerivationPath(opts.DerivationPath)
	if err != nil {
		return nil, fmt.Errorf("invalid derivation path %q: %w", opts.DerivationPath, err)
	}

	seed := bip39.NewSeed(mnemonic, opts.Passphrase)
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}

	parent := master
	for _, index := range base {
		parent, err = parent.Derive(index)
		if err != nil {
			return nil, fmt.Errorf("failed to derive %s: %w", opts.DerivationPath, err)
		}
	}

	count := opts.NumAddresses
	if count == 0 {
		count = 1
	}

	w := &Wallet{kind: SecretMnemonic, keys: make(map[common.Address]*ecdsa.PrivateKey, count)}
	for i := uint32(0); i < count; i++ {
		child, err := parent.Derive(opts.AddressIndex + i)
		if err != nil {
			return nil, fmt.Errorf("failed to derive address %d: %w", opts.AddressIndex+i, err)
		}
		priv, err := child.ECPrivKey()
		if err != nil {
			return nil, fmt.Errorf("failed to get private key %d: %w", opts.AddressIndex+i, err)
		}
		key, err := crypto.ToECDSA(priv.Serialize())
		if err != nil {
			return nil, fmt.Errorf("failed to convert private key %d: %w", opts.AddressIndex+i, err)
		}
		w.add(key)
	}
	return w, nil
}

func (w *Wallet) add(key *ecdsa.PrivateKey) {
	addr := crypto.PubkeyToAddress(key.PublicKey)
	w.accounts = append(w.accounts, addr)
	w.keys[addr] = key
}

// Kind reports how the secret was interpreted.
func (w *Wallet) Kind() SecretKind { return w.kind }

// Accounts returns the derived addresses in derivation order.
func (w *Wallet) Accounts() []common.Address {
	out := make([]common.Address, len(w.accounts))
	copy(out, w.accounts)
	return out
}

// Default returns the first account.
func (w *Wallet) Default() common.Address {
	return w.accounts[0]
}

// Contains reports whether the wallet can sign for addr.
func (w *Wallet) Contains(addr common.Address) bool {
	_, ok := w.keys[addr]
	return ok
}

// PrivateKey returns the key for addr.
func (w *Wallet) PrivateKey(addr common.Address) (*ecdsa.PrivateKey, error) {
	key, ok := w.keys[addr]
	if !ok {
		return nil, fmt.Errorf("%w: no key for %s", domain.ErrNotFound, addr.Hex())
	}
	return key, nil
}

// SignTx signs tx as from using the latest signer for chainID.
func (w *Wallet) SignTx(from common.Address, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	key, err := w.PrivateKey(from)
	if err != nil {
		return nil, err
	}
	return types.SignTx(tx, types.LatestSignerForChainID(chainID), key)
}

// ClassifySecret reports what kind of secret s looks like without deriving keys.
func ClassifySecret(s string) (SecretKind, error) {
	s = strings.TrimSpace(s)
	if _, ok := parsePrivateKey(s); ok {
		return SecretPrivateKey, nil
	}
	if bip39.IsMnemonicValid(normalizeMnemonic(s)) {
		return SecretMnemonic, nil
	}
	return "", fmt.Errorf("%w: neither a 32-byte hex private key nor a valid BIP-39 mnemonic", domain.ErrInvalidSecret)
}

// Redact returns a display-safe hint of a secret: its kind and size, plus
// the last four hex digits of a private key so two keys can be told apart.
func Redact(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if words := strings.Fields(s); len(words) > 1 {
		return fmt.Sprintf("<mnemonic, %d words>", len(words))
	}
	if _, ok := parsePrivateKey(s); ok {
		return fmt.Sprintf("<private key …%s>", strings.ToLower(s[len(s)-4:]))
	}
	return fmt.Sprintf("<%d chars>", len(s))
}

func parsePrivateKey(s string) (*ecdsa.PrivateKey, bool) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != 64 {
		return nil, false
	}
	if _, err := hex.DecodeString(s); err != nil {
		return nil, false
	}
	key, err := crypto.HexToECDSA(s)
	if err != nil {
		return nil, false
	}
	return key, true
}

func normalizeMnemonic(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
