package units

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/params"
	"gopkg.in/yaml.v3"
)

// Wei is an integer amount of wei that decodes from human readable
// amounts ("120 gwei") as well as from plain integers.
type Wei struct {
	big.Int
}

// NewWei wraps a big.Int.
func NewWei(v *big.Int) *Wei {
	w := &Wei{}
	if v != nil {
		w.Set(v)
	}
	return w
}

// MustParseWei is ParseAmount for constants; it panics on error.
func MustParseWei(s string) *Wei {
	v, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return NewWei(v)
}

// BigInt returns a copy of the amount.
func (w *Wei) BigInt() *big.Int {
	if w == nil {
		return nil
	}
	return new(big.Int).Set(&w.Int)
}

// In renders the amount in the given unit.
func (w *Wei) In(unit string) string {
	s, err := FromWei(w.BigInt(), unit)
	if err != nil {
		return w.String()
	}
	return s + " " + unit
}

// UnmarshalText accepts "120 gwei", "120gwei" and "120000000000".
func (w *Wei) UnmarshalText(text []byte) error {
	v, err := ParseAmount(string(text))
	if err != nil {
		return err
	}
	w.Set(v)
	return nil
}

// MarshalText emits the integer wei amount.
func (w Wei) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// Display renders whole gwei amounts as "120 gwei" and anything else as
// the integer wei amount. Both forms decode back to the same value.
func (w Wei) Display() string {
	gwei := big.NewInt(params.GWei)
	if w.Sign() > 0 && new(big.Int).Rem(&w.Int, gwei).Sign() == 0 {
		return new(big.Int).Quo(&w.Int, gwei).String() + " gwei"
	}
	return w.String()
}

// MarshalTOML writes the amount as a quoted string in its Display form.
func (w Wei) MarshalTOML() ([]byte, error) {
	return []byte(strconv.Quote(w.Display())), nil
}

// UnmarshalTOML handles both TOML strings and integers.
func (w *Wei) UnmarshalTOML(v any) error {
	switch val := v.(type) {
	case string:
		return w.UnmarshalText([]byte(val))
	case int64:
		if val < 0 {
			return fmt.Errorf("negative wei amount %d", val)
		}
		w.SetInt64(val)
		return nil
	default:
		return fmt.Errorf("unsupported wei value %v (%T)", v, v)
	}
}

// UnmarshalJSON handles both JSON strings and numbers.
func (w *Wei) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return w.UnmarshalText([]byte(s))
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("unsupported wei value %s", string(data))
	}
	return w.UnmarshalText([]byte(n.String()))
}

// MarshalJSON emits the amount as a decimal string to avoid float truncation.
func (w Wei) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(w.String())), nil
}

// UnmarshalYAML handles scalar strings and integers.
func (w *Wei) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: wei amount must be a scalar", node.Line)
	}
	return w.UnmarshalText([]byte(node.Value))
}

// MarshalYAML emits the amount in its Display form.
func (w Wei) MarshalYAML() (any, error) {
	return w.Display(), nil
}
