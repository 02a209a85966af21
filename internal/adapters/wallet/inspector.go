package wallet

import (
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/config"
	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

// Inspector checks deployer secrets for the env and project commands.
type Inspector struct{}

// NewInspector creates a secret inspector
func NewInspector() *Inspector {
	return &Inspector{}
}

// OptionsFor maps a network provider's derivation settings onto wallet options.
func OptionsFor(p config.ProviderConfig, passphrase string) Options {
	return Options{
		DerivationPath: p.DerivationPathOrDefault(),
		AddressIndex:   p.AddressIndex,
		NumAddresses:   p.NumAddressesOrDefault(),
		Passphrase:     passphrase,
	}
}

// Inspect derives the deployer address without keeping the key around.
func (i *Inspector) Inspect(secret string, p config.ProviderConfig, passphrase string) (*usecase.SecretInfo, error) {
	w, err := FromSecret(secret, OptionsFor(p, passphrase))
	if err != nil {
		return nil, err
	}
	return &usecase.SecretInfo{
		Kind:     string(w.Kind()),
		Address:  w.Default(),
		Redacted: Redact(secret),
	}, nil
}

// Redact implements usecase.SecretInspector.
func (i *Inspector) Redact(secret string) string {
	return Redact(secret)
}

var _ usecase.SecretInspector = (*Inspector)(nil)
