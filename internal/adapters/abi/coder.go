package abi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/GainsNetwork/GNS-ethereum/internal/domain/models"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/units"
	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

// Coder packs constructor arguments given as command line strings
type Coder struct{}

// NewCoder creates a new ABI coder
func NewCoder() *Coder {
	return &Coder{}
}

// Parse decodes an artifact's ABI
func Parse(artifact *models.Artifact) (*abi.ABI, error) {
	if len(artifact.ABI) == 0 {
		return nil, fmt.Errorf("artifact %s has no ABI", artifact.ContractName)
	}
	parsed, err := abi.JSON(bytes.NewReader(artifact.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI of %s: %w", artifact.ContractName, err)
	}
	return &parsed, nil
}

// CreationData implements usecase.ABICoder
func (c *Coder) CreationData(artifact *models.Artifact, args []string) ([]byte, error) {
	if !artifact.HasBytecode() {
		return nil, fmt.Errorf("%s has no bytecode (abstract contract or interface)", artifact.ContractName)
	}
	if strings.Contains(artifact.Bytecode, "__") {
		return nil, fmt.Errorf("%s needs library linking, which is not supported", artifact.ContractName)
	}
	code, err := hexutil.Decode(artifact.Bytecode)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode in %s: %w", artifact.ContractName, err)
	}

	parsed, err := Parse(artifact)
	if err != nil {
		return nil, err
	}

	inputs := parsed.Constructor.Inputs
	if len(args) != len(inputs) {
		sig, _ := c.ConstructorSignature(artifact)
		return nil, fmt.Errorf("%s constructor takes %d argument(s) %s, got %d",
			artifact.ContractName, len(inputs), sig, len(args))
	}
	if len(inputs) == 0 {
		return code, nil
	}

	values := make([]any, len(inputs))
	for i, input := range inputs {
		v, err := ParseValue(input.Type, args[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d (%s %s): %w", i+1, input.Type.String(), input.Name, err)
		}
		values[i] = v
	}

	packed, err := inputs.Pack(values...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode constructor arguments: %w", err)
	}
	return append(code, packed...), nil
}

// ConstructorArgs implements usecase.ABICoder
func (c *Coder) ConstructorArgs(artifact *models.Artifact, input []byte) ([]byte, []usecase.DecodedArg, error) {
	code, err := hexutil.Decode(artifact.Bytecode)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid bytecode in %s: %w", artifact.ContractName, err)
	}
	if len(input) < len(code) {
		return nil, nil, fmt.Errorf("deployment input is shorter than the %s bytecode; was it recompiled?", artifact.ContractName)
	}
	raw := input[len(code):]

	parsed, err := Parse(artifact)
	if err != nil {
		return raw, nil, err
	}
	inputs := parsed.Constructor.Inputs
	if len(inputs) == 0 {
		if len(raw) != 0 {
			return raw, nil, fmt.Errorf("%s has no constructor arguments but deployment input has %d extra bytes", artifact.ContractName, len(raw))
		}
		return raw, nil, nil
	}

	values, err := inputs.Unpack(raw)
	if err != nil {
		return raw, nil, fmt.Errorf("failed to decode constructor args: %w", err)
	}

	decoded := make([]usecase.DecodedArg, 0, len(inputs))
	for i, in := range inputs {
		if i >= len(values) {
			break
		}
		decoded = append(decoded, usecase.DecodedArg{
			Name:  in.Name,
			Type:  in.Type.String(),
			Value: FormatValue(values[i], in.Type.String()),
		})
	}
	return raw, decoded, nil
}

// ConstructorSignature implements usecase.ABICoder
func (c *Coder) ConstructorSignature(artifact *models.Artifact) (string, error) {
	parsed, err := Parse(artifact)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(parsed.Constructor.Inputs))
	for _, in := range parsed.Constructor.Inputs {
		if in.Name != "" {
			parts = append(parts, in.Type.String()+" "+in.Name)
		} else {
			parts = append(parts, in.Type.String())
		}
	}
	return "(" + strings.Join(parts, ", ") + ")", nil
}

// ParseValue converts a command line string into the Go value abi.Pack
// expects for t. Arrays are written as JSON, e.g. ["0x..", "0x.."].
// Integers accept unit suffixes such as "1.5 ether".
func ParseValue(t abi.Type, s string) (any, error) {
	s = strings.TrimSpace(s)
	switch t.T {
	case abi.AddressTy:
		if !common.IsHexAddress(s) {
			return nil, fmt.Errorf("%q is not an address", s)
		}
		return common.HexToAddress(s), nil

	case abi.BoolTy:
		return strconv.ParseBool(s)

	case abi.StringTy:
		return s, nil

	case abi.UintTy, abi.IntTy:
		return parseInteger(t, s)

	case abi.BytesTy:
		return hexutil.Decode(s)

	case abi.FixedBytesTy:
		b, err := hexutil.Decode(s)
		if err != nil {
			return nil, err
		}
		if len(b) > t.Size {
			return nil, fmt.Errorf("%d bytes do not fit in bytes%d", len(b), t.Size)
		}
		arr := reflect.New(t.GetType()).Elem()
		reflect.Copy(arr, reflect.ValueOf(b))
		return arr.Interface(), nil

	case abi.SliceTy, abi.ArrayTy:
		var items []json.RawMessage
		if err := json.Unmarshal([]byte(s), &items); err != nil {
			return nil, fmt.Errorf("expected a JSON array: %w", err)
		}
		if t.T == abi.ArrayTy && len(items) != t.Size {
			return nil, fmt.Errorf("expected %d elements, got %d", t.Size, len(items))
		}
		out := reflect.New(t.GetType()).Elem()
		if t.T == abi.SliceTy {
			out = reflect.MakeSlice(t.GetType(), len(items), len(items))
		}
		for i, item := range items {
			v, err := ParseValue(*t.Elem, jsonScalar(item))
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out.Index(i).Set(reflect.ValueOf(v))
		}
		return out.Interface(), nil
	}

	return nil, fmt.Errorf("type %s is not supported on the command line", t.String())
}

// jsonScalar unquotes JSON strings and keeps numbers, bools and nested arrays verbatim.
func jsonScalar(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func parseInteger(t abi.Type, s string) (any, error) {
	neg := strings.HasPrefix(s, "-")
	if neg && t.T == abi.UintTy {
		return nil, fmt.Errorf("%q is negative", s)
	}

	var v *big.Int
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "-0x"):
		var ok bool
		v, ok = new(big.Int).SetString(strings.Replace(s, "0x", "", 1), 16)
		if !ok {
			return nil, fmt.Errorf("%q is not a hex integer", s)
		}
	default:
		abs, err := units.ParseAmount(strings.TrimPrefix(s, "-"))
		if err != nil {
			return nil, err
		}
		v = abs
		if neg {
			v.Neg(v)
		}
	}

	if !fitsInteger(t, v) {
		return nil, fmt.Errorf("%s overflows %s", s, t.String())
	}

	// abi.Pack wants the exact Go type for sizes up to 64 bits
	if t.Size > 64 {
		return v, nil
	}
	if t.T == abi.UintTy {
		u := v.Uint64()
		switch t.Size {
		case 8:
			return uint8(u), nil
		case 16:
			return uint16(u), nil
		case 32:
			return uint32(u), nil
		case 64:
			return u, nil
		}
	} else {
		i := v.Int64()
		switch t.Size {
		case 8:
			return int8(i), nil
		case 16:
			return int16(i), nil
		case 32:
			return int32(i), nil
		case 64:
			return i, nil
		}
	}
	return v, nil
}

// fitsInteger reports whether v is in range for t: [0, 2^n) for uintN and
// [-2^(n-1), 2^(n-1)) for intN.
func fitsInteger(t abi.Type, v *big.Int) bool {
	if t.T == abi.UintTy {
		return v.Sign() >= 0 && v.BitLen() <= t.Size
	}
	if v.Sign() >= 0 {
		return v.BitLen() < t.Size
	}
	// |v|-1 fits in n-1 bits, so -2^(n-1) is the smallest value
	return new(big.Int).Add(v, big.NewInt(1)).BitLen() < t.Size
}

var _ usecase.ABICoder = (*Coder)(nil)
