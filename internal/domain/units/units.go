// Package units converts between ether denominations and integer wei amounts.
package units

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/params"

	"github.com/GainsNetwork/GNS-ethereum/internal/domain"
)

// decimals maps a denomination to its power of ten relative to wei.
var decimals = map[string]int{
	"noether":    -1,
	"wei":        0,
	"kwei":       3,
	"babbage":    3,
	"femtoether": 3,
	"mwei":       6,
	"lovelace":   6,
	"picoether":  6,
	"gwei":       9,
	"shannon":    9,
	"nanoether":  9,
	"nano":       9,
	"szabo":      12,
	"microether": 12,
	"micro":      12,
	"finney":     15,
	"milliether": 15,
	"milli":      15,
	"ether":      18,
	"kether":     21,
	"grand":      21,
	"mether":     24,
	"gether":     27,
	"tether":     30,
}

// Units returns every known denomination name, sorted.
func Units() []string {
	names := make([]string, 0, len(decimals))
	for name := range decimals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Decimals returns the power of ten of a denomination. noether reports -1.
func Decimals(unit string) (int, error) {
	d, ok := decimals[strings.ToLower(strings.TrimSpace(unit))]
	if !ok {
		return 0, fmt.Errorf("%w: unknown unit %q", domain.ErrInvalidUnit, unit)
	}
	return d, nil
}

// Multiplier returns the number of wei in one unit.
func Multiplier(unit string) (*big.Int, error) {
	d, err := Decimals(unit)
	if err != nil {
		return nil, err
	}
	switch d {
	case -1:
		return new(big.Int), nil
	case 0:
		return big.NewInt(params.Wei), nil
	case 9:
		return big.NewInt(params.GWei), nil
	case 18:
		return big.NewInt(params.Ether), nil
	}
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(d)), nil), nil
}

// ToWei converts a decimal amount expressed in unit to wei.
// The conversion is exact; amounts with more fractional digits than the
// unit can represent are rejected.
func ToWei(amount, unit string) (*big.Int, error) {
	d, err := Decimals(unit)
	if err != nil {
		return nil, err
	}

	amount = strings.ReplaceAll(strings.TrimSpace(amount), "_", "")
	if amount == "" {
		return nil, fmt.Errorf("%w: empty amount", domain.ErrInvalidUnit)
	}
	if strings.HasPrefix(amount, "-") {
		return nil, fmt.Errorf("%w: negative amount %q", domain.ErrInvalidUnit, amount)
	}
	amount = strings.TrimPrefix(amount, "+")

	if d < 0 {
		if _, ok := new(big.Rat).SetString(amount); !ok {
			return nil, fmt.Errorf("%w: invalid amount %q", domain.ErrInvalidUnit, amount)
		}
		return new(big.Int), nil
	}

	whole, frac, hasDot := strings.Cut(amount, ".")
	if hasDot && whole == "" && frac == "" {
		return nil, fmt.Errorf("%w: invalid amount %q", domain.ErrInvalidUnit, amount)
	}
	if !isDigits(whole) || !isDigits(frac) {
		return nil, fmt.Errorf("%w: invalid amount %q", domain.ErrInvalidUnit, amount)
	}

	frac = strings.TrimRight(frac, "0")
	if len(frac) > d {
		return nil, fmt.Errorf("%w: %s %s is not a whole number of wei", domain.ErrInvalidUnit, amount, unit)
	}

	digits := whole + frac + strings.Repeat("0", d-len(frac))
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return new(big.Int), nil
	}

	wei, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("%w: invalid amount %q", domain.ErrInvalidUnit, amount)
	}
	return wei, nil
}

// FromWei renders a wei amount in unit without losing precision.
func FromWei(wei *big.Int, unit string) (string, error) {
	d, err := Decimals(unit)
	if err != nil {
		return "", err
	}
	if wei == nil {
		return "0", nil
	}
	if d < 0 {
		return "0", nil
	}

	neg := wei.Sign() < 0
	digits := new(big.Int).Abs(wei).String()
	if d > 0 {
		if len(digits) <= d {
			digits = strings.Repeat("0", d-len(digits)+1) + digits
		}
		whole, frac := digits[:len(digits)-d], strings.TrimRight(digits[len(digits)-d:], "0")
		digits = whole
		if frac != "" {
			digits += "." + frac
		}
	}
	if neg {
		digits = "-" + digits
	}
	return digits, nil
}

// ParseAmount parses "<number> [unit]" (e.g. "120 gwei"). A bare number is wei.
func ParseAmount(s string) (*big.Int, error) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		// "120gwei" is accepted as well
		num, unit := splitSuffix(fields[0])
		if unit == "" {
			unit = "wei"
		}
		return ToWei(num, unit)
	case 2:
		return ToWei(fields[0], fields[1])
	default:
		return nil, fmt.Errorf("%w: cannot parse amount %q", domain.ErrInvalidUnit, s)
	}
}

func splitSuffix(s string) (string, string) {
	i := len(s)
	for i > 0 {
		c := s[i-1]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			i--
			continue
		}
		break
	}
	return s[:i], s[i:]
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
