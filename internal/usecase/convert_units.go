package usecase

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/GainsNetwork/GNS-ethereum/internal/domain"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/units"
)

// displayUnits are shown when no target unit is requested
var displayUnits = []string{"wei", "gwei", "ether"}

// ConvertUnitsParams contains parameters for a conversion
type ConvertUnitsParams struct {
	// Amount may carry its unit ("120 gwei"); Unit then must be empty
	Amount string
	Unit   string
	To     string
}

// Conversion is an amount in one unit
type Conversion struct {
	Unit  string
	Value string
}

// ConvertUnitsResult contains the converted amount
type ConvertUnitsResult struct {
	Wei         *big.Int
	From        string
	Conversions []Conversion
}

// ConvertUnits converts amounts between ether denominations
type ConvertUnits struct{}

// NewConvertUnits creates a new ConvertUnits use case
func NewConvertUnits() *ConvertUnits {
	return &ConvertUnits{}
}

// Run executes the use case
func (uc *ConvertUnits) Run(ctx context.Context, params ConvertUnitsParams) (*ConvertUnitsResult, error) {
	amount := strings.TrimSpace(params.Amount)
	from := strings.ToLower(strings.TrimSpace(params.Unit))

	var (
		wei *big.Int
		err error
	)
	if from == "" {
		wei, err = units.ParseAmount(amount)
		// "120 gwei" and "120gwei" both name their unit
		from = strings.ToLower(strings.TrimSpace(strings.TrimLeft(amount, "0123456789._+")))
		if from == "" {
			from = "wei"
		}
	} else {
		if len(strings.Fields(amount)) != 1 {
			return nil, fmt.Errorf("%w: amount %q already has a unit", domain.ErrInvalidUnit, amount)
		}
		wei, err = units.ToWei(amount, from)
	}
	if err != nil {
		return nil, err
	}

	targets := displayUnits
	if to := strings.ToLower(strings.TrimSpace(params.To)); to != "" {
		targets = []string{to}
	}

	result := &ConvertUnitsResult{Wei: wei, From: from}
	for _, unit := range targets {
		value, err := units.FromWei(wei, unit)
		if err != nil {
			return nil, err
		}
		result.Conversions = append(result.Conversions, Conversion{Unit: unit, Value: value})
	}
	return result, nil
}
