package ethcoder

import (
	"github.com/holiman/uint256"
)

// Token is a typed value, the internal representation of one argument or
// return value. Its Type always mirrors the shape of the payload:
//
//   - Address, Bytes, FixedBytes: Bytes (20 bytes for an address)
//   - Bool: Bool
//   - String: Text
//   - Uint, Int: Word, a full 32-byte word (twos-complement for Int)
//   - Array, FixedArray, Tuple: Elems
type Token struct {
	Type  ParamType
	Bool  bool
	Text  string
	Bytes []byte
	Word  uint256.Int
	Elems []Token
}

func NewAddressToken(addr [20]byte) Token {
	return Token{Type: AddressType(), Bytes: addr[:]}
}

func NewBoolToken(v bool) Token {
	return Token{Type: BoolType(), Bool: v}
}

func NewStringToken(s string) Token {
	return Token{Type: StringType(), Text: s}
}

func NewBytesToken(b []byte) Token {
	return Token{Type: BytesType(), Bytes: b}
}

func NewFixedBytesToken(b []byte) Token {
	return Token{Type: FixedBytesType(len(b)), Bytes: b}
}

func NewUintToken(bits int, v *uint256.Int) Token {
	return Token{Type: UintType(bits), Word: *v}
}

// NewIntToken wraps a twos-complement word.
func NewIntToken(bits int, v *uint256.Int) Token {
	return Token{Type: IntType(bits), Word: *v}
}

func NewArrayToken(elem ParamType, elems ...Token) Token {
	return Token{Type: ArrayOf(elem), Elems: elems}
}

func NewFixedArrayToken(elem ParamType, elems ...Token) Token {
	return Token{Type: FixedArrayOf(elem, len(elems)), Elems: elems}
}

func NewTupleToken(elems ...Token) Token {
	components := make([]ParamType, len(elems))
	for i, e := range elems {
		components[i] = e.Type
	}
	return Token{Type: TupleOf(components...), Elems: elems}
}

// validate checks that the payload of t matches its declared type.
func (t Token) validate() error {
	switch t.Type.Kind {
	case AddressKind:
		if len(t.Bytes) != 20 {
			return errorf(ErrRange, "address must be 20 bytes, got %d", len(t.Bytes))
		}
	case FixedBytesKind:
		if len(t.Bytes) != t.Type.Size {
			return errorf(ErrRange, "bytes%d value has %d bytes", t.Type.Size, len(t.Bytes))
		}
	case UintKind:
		if t.Word.BitLen() > t.Type.Size {
			return errorf(ErrRange, "value does not fit in uint%d", t.Type.Size)
		}
	case IntKind:
		if !fitsSigned(&t.Word, t.Type.Size) {
			return errorf(ErrRange, "value does not fit in int%d", t.Type.Size)
		}
	case ArrayKind, FixedArrayKind:
		if t.Type.Kind == FixedArrayKind && len(t.Elems) != t.Type.Size {
			return errorf(ErrArityMismatch, "%s expects %d elements, got %d", t.Type, t.Type.Size, len(t.Elems))
		}
		for i, e := range t.Elems {
			if !e.Type.Equal(*t.Type.Elem) {
				return atPath(indexPath(i), errorf(ErrTypeMismatch, "expecting %s, got %s", t.Type.Elem, e.Type))
			}
			if err := e.validate(); err != nil {
				return atPath(indexPath(i), err)
			}
		}
	case TupleKind:
		if len(t.Elems) != len(t.Type.Components) {
			return errorf(ErrArityMismatch, "%s expects %d components, got %d", t.Type, len(t.Type.Components), len(t.Elems))
		}
		for i, e := range t.Elems {
			if !e.Type.Equal(t.Type.Components[i]) {
				return atPath(componentPath(i), errorf(ErrTypeMismatch, "expecting %s, got %s", t.Type.Components[i], e.Type))
			}
			if err := e.validate(); err != nil {
				return atPath(componentPath(i), err)
			}
		}
	}
	return nil
}

// fitsSigned reports whether the twos-complement word w is within the range
// of an int of the given bit width, ie. every bit from bits-1 upwards is a
// copy of the sign bit.
func fitsSigned(w *uint256.Int, bits int) bool {
	if bits >= 256 {
		return true
	}
	v := new(uint256.Int).Set(w)
	if v.Sign() < 0 {
		v.Not(v)
	}
	return v.BitLen() < bits
}
