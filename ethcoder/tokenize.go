package ethcoder

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// maxSafeFloatInteger is the largest integer a float64 holds exactly (2^53-1).
const maxSafeFloatInteger = 1<<53 - 1

// TokenizeArgs tokenizes an ordered list of untyped values against the
// declared types of a function's parameters. The number of values must match
// the number of types exactly.
func TokenizeArgs(types []ParamType, values []any) ([]Token, error) {
	if len(values) != len(types) {
		return nil, errorf(ErrArityMismatch, "expecting %d arguments, got %d", len(types), len(values))
	}
	tokens := make([]Token, len(types))
	for i, typ := range types {
		tok, err := Tokenize(typ, values[i])
		if err != nil {
			return nil, atPath(argPath(i), err)
		}
		tokens[i] = tok
	}
	return tokens, nil
}

// Tokenize converts an untyped value into a Token of type typ.
//
// Arrays and fixed arrays accept any ordered sequence ([]any or any Go slice
// or array); fixed arrays must have exactly the declared length. Tuples accept
// only an ordered sequence of their components, keyed shapes such as maps are
// rejected with ErrStructural.
func Tokenize(typ ParamType, value any) (Token, error) {
	if value == nil {
		return Token{}, errorf(ErrTypeMismatch, "encountered undefined argument for %s", typ)
	}

	switch typ.Kind {
	case ArrayKind, FixedArrayKind:
		values, ok := asSequence(value)
		if !ok {
			return Token{}, errorf(ErrTypeMismatch, "expecting array for %s, got %T", typ, value)
		}
		if typ.Kind == FixedArrayKind && len(values) != typ.Size {
			return Token{}, errorf(ErrArityMismatch, "%s expects %d elements, got %d", typ, typ.Size, len(values))
		}
		elems := make([]Token, len(values))
		for i, v := range values {
			tok, err := Tokenize(*typ.Elem, v)
			if err != nil {
				return Token{}, atPath(indexPath(i), err)
			}
			elems[i] = tok
		}
		return Token{Type: typ, Elems: elems}, nil

	case TupleKind:
		values, ok := asSequence(value)
		if !ok {
			return Token{}, errorf(ErrStructural, "unsupported value %T for %s, use an array of ordered values", value, typ)
		}
		if len(values) != len(typ.Components) {
			return Token{}, errorf(ErrArityMismatch, "%s expects %d components, got %d", typ, len(typ.Components), len(values))
		}
		elems := make([]Token, len(values))
		for i, v := range values {
			tok, err := Tokenize(typ.Components[i], v)
			if err != nil {
				return Token{}, atPath(componentPath(i), err)
			}
			elems[i] = tok
		}
		return Token{Type: typ, Elems: elems}, nil

	default:
		return tokenizeScalar(typ, value)
	}
}

func tokenizeScalar(typ ParamType, value any) (Token, error) {
	tok := Token{Type: typ}

	switch typ.Kind {
	case AddressKind:
		addr, err := coerceAddress(value)
		if err != nil {
			return Token{}, err
		}
		tok.Bytes = addr

	case BoolKind:
		v, ok := value.(bool)
		if !ok {
			return Token{}, errorf(ErrTypeMismatch, "expecting bool, got %T", value)
		}
		tok.Bool = v

	case StringKind:
		v, ok := value.(string)
		if !ok {
			return Token{}, errorf(ErrTypeMismatch, "expecting string, got %T", value)
		}
		tok.Text = v

	case BytesKind:
		b, err := coerceBytes(value)
		if err != nil {
			return Token{}, err
		}
		tok.Bytes = b

	case FixedBytesKind:
		b, err := coerceBytes(value)
		if err != nil {
			return Token{}, err
		}
		if len(b) != typ.Size {
			return Token{}, errorf(ErrRange, "%s expects %d bytes, got %d", typ, typ.Size, len(b))
		}
		tok.Bytes = b

	case UintKind, IntKind:
		n, err := coerceInteger(value, typ.Kind == IntKind)
		if err != nil {
			return Token{}, err
		}
		w, err := integerWord(typ, n)
		if err != nil {
			return Token{}, err
		}
		tok.Word = *w

	default:
		return Token{}, errorf(ErrTypeMismatch, "unsupported parameter type %s", typ)
	}

	return tok, nil
}

func coerceAddress(value any) ([]byte, error) {
	switch v := value.(type) {
	case string:
		s, err := StripHexPrefix(v)
		if err != nil {
			return nil, err
		}
		b, err := decodeRawHex(s)
		if err != nil {
			return nil, err
		}
		if len(b) != common.AddressLength {
			return nil, errorf(ErrRange, "address must be 40 hex characters, got %d", len(s))
		}
		return b, nil
	case common.Address:
		return v.Bytes(), nil
	case [20]byte:
		return append([]byte(nil), v[:]...), nil
	default:
		return nil, errorf(ErrTypeMismatch, "expecting address in hex, got %T", value)
	}
}

func coerceBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return HexDecode(v)
	case []byte:
		return append([]byte{}, v...), nil
	case common.Hash:
		return v.Bytes(), nil
	default:
		return nil, errorf(ErrTypeMismatch, "expecting bytes in hex, got %T", value)
	}
}

// coerceInteger parses numeric input into a big.Int. Text is read as a
// decimal number, or as hex when prefixed with 0x and unsigned.
func coerceInteger(value any, signed bool) (*big.Int, error) {
	switch v := value.(type) {
	case string:
		return parseIntegerText(v, signed)
	case json.Number:
		return parseIntegerText(string(v), signed)
	case *big.Int:
		if v == nil {
			return nil, errorf(ErrTypeMismatch, "encountered nil *big.Int")
		}
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case *uint256.Int:
		if v == nil {
			return nil, errorf(ErrTypeMismatch, "encountered nil *uint256.Int")
		}
		return v.ToBig(), nil
	case float64:
		return floatInteger(v)
	case float32:
		return floatInteger(float64(v))
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Int).SetUint64(rv.Uint()), nil
	}
	return nil, errorf(ErrTypeMismatch, "expecting number or decimal string, got %T", value)
}

func parseIntegerText(s string, signed bool) (*big.Int, error) {
	if s == "" {
		return nil, errorf(ErrMalformedInput, "empty number")
	}
	base := 10
	digits := s
	if !signed && (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
		base, digits = 16, s[2:]
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, errorf(ErrMalformedInput, "unable to parse number %q", abbrev(s))
	}
	return n, nil
}

func floatInteger(v float64) (*big.Int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return nil, errorf(ErrRange, "number %v is not an integer", v)
	}
	if math.Abs(v) > maxSafeFloatInteger {
		return nil, errorf(ErrRange, "number %v exceeds the exact integer range, pass it as a decimal string", v)
	}
	return big.NewInt(int64(v)), nil
}

// integerWord range checks n against typ and returns its 32-byte word,
// twos-complement sign extended for negative values.
func integerWord(typ ParamType, n *big.Int) (*uint256.Int, error) {
	bits := typ.Size
	if typ.Kind == UintKind {
		if n.Sign() < 0 {
			return nil, errorf(ErrRange, "negative value %s for %s", n, typ)
		}
		if n.BitLen() > bits {
			return nil, errorf(ErrRange, "value %s overflows %s", n, typ)
		}
		w, _ := uint256.FromBig(n)
		return w, nil
	}

	limit := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	if n.Cmp(limit) >= 0 || n.Cmp(new(big.Int).Neg(limit)) < 0 {
		return nil, errorf(ErrRange, "value %s overflows %s", n, typ)
	}
	if n.Sign() >= 0 {
		w, _ := uint256.FromBig(n)
		return w, nil
	}
	w, _ := uint256.FromBig(new(big.Int).Neg(n))
	return w.Neg(w), nil
}

// asSequence returns the elements of an ordered sequence value.
func asSequence(value any) ([]any, bool) {
	if v, ok := value.([]any); ok {
		return v, true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func argPath(i int) string {
	return fmt.Sprintf("arg %d", i)
}

func indexPath(i int) string {
	return fmt.Sprintf("[%d]", i)
}

func componentPath(i int) string {
	return fmt.Sprintf(".%d", i)
}
