package ethcoder

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies the variant of a ParamType.
type Kind uint8

const (
	AddressKind Kind = iota
	BoolKind
	StringKind
	BytesKind
	FixedBytesKind
	UintKind
	IntKind
	ArrayKind
	FixedArrayKind
	TupleKind
)

var kindNames = [...]string{
	AddressKind:    "address",
	BoolKind:       "bool",
	StringKind:     "string",
	BytesKind:      "bytes",
	FixedBytesKind: "fixedbytes",
	UintKind:       "uint",
	IntKind:        "int",
	ArrayKind:      "array",
	FixedArrayKind: "fixedarray",
	TupleKind:      "tuple",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// wordSize is the width of one head slot, the native word of the VM.
const wordSize = 32

// maxHeadSize bounds the inline size of any static type, fixed arrays and
// tuples included.
const maxHeadSize = math.MaxInt32

// ParamType describes the shape of one declared parameter.
//
// Size holds the bit width for Uint and Int, the byte width for FixedBytes and
// the element count for FixedArray. Elem is set for Array and FixedArray, and
// Components for Tuple.
type ParamType struct {
	Kind       Kind
	Size       int
	Elem       *ParamType
	Components []ParamType
}

func AddressType() ParamType { return ParamType{Kind: AddressKind} }

func BoolType() ParamType { return ParamType{Kind: BoolKind} }

func StringType() ParamType { return ParamType{Kind: StringKind} }

func BytesType() ParamType { return ParamType{Kind: BytesKind} }

func FixedBytesType(width int) ParamType { return ParamType{Kind: FixedBytesKind, Size: width} }

func UintType(bits int) ParamType { return ParamType{Kind: UintKind, Size: bits} }

func IntType(bits int) ParamType { return ParamType{Kind: IntKind, Size: bits} }

func ArrayOf(elem ParamType) ParamType {
	return ParamType{Kind: ArrayKind, Elem: &elem}
}

func FixedArrayOf(elem ParamType, length int) ParamType {
	return ParamType{Kind: FixedArrayKind, Size: length, Elem: &elem}
}

func TupleOf(components ...ParamType) ParamType {
	if components == nil {
		components = []ParamType{}
	}
	return ParamType{Kind: TupleKind, Components: components}
}

// String returns the canonical type text used in function signatures, ie.
// "uint256", "bytes32" or "(address,uint256)[2][]".
func (t ParamType) String() string {
	switch t.Kind {
	case AddressKind, BoolKind, StringKind, BytesKind:
		return t.Kind.String()
	case FixedBytesKind:
		return "bytes" + strconv.Itoa(t.Size)
	case UintKind, IntKind:
		return t.Kind.String() + strconv.Itoa(t.Size)
	case ArrayKind:
		if t.Elem == nil {
			return t.Kind.String()
		}
		return t.Elem.String() + "[]"
	case FixedArrayKind:
		if t.Elem == nil {
			return t.Kind.String()
		}
		return t.Elem.String() + "[" + strconv.Itoa(t.Size) + "]"
	case TupleKind:
		parts := make([]string, len(t.Components))
		for i, c := range t.Components {
			parts[i] = c.String()
		}
		return "(" + strings.Join(parts, ",") + ")"
	default:
		return t.Kind.String()
	}
}

// IsDynamic reports whether the encoded width of t depends on the value.
func (t ParamType) IsDynamic() bool {
	switch t.Kind {
	case StringKind, BytesKind, ArrayKind:
		return true
	case FixedArrayKind:
		return t.Elem.IsDynamic()
	case TupleKind:
		for _, c := range t.Components {
			if c.IsDynamic() {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// headSize is the number of bytes t occupies in the head region of its
// enclosing sequence: one word for dynamic types, the full inline encoding for
// static ones.
func (t ParamType) headSize() int {
	if t.IsDynamic() {
		return wordSize
	}
	switch t.Kind {
	case FixedArrayKind:
		return t.Size * t.Elem.headSize()
	case TupleKind:
		n := 0
		for _, c := range t.Components {
			n += c.headSize()
		}
		return n
	default:
		return wordSize
	}
}

func sequenceHeadSize(types []ParamType) int {
	n := 0
	for _, t := range types {
		n += t.headSize()
	}
	return n
}

// Equal reports whether t and o describe the same shape.
func (t ParamType) Equal(o ParamType) bool {
	if t.Kind != o.Kind || t.Size != o.Size {
		return false
	}
	switch t.Kind {
	case ArrayKind, FixedArrayKind:
		if t.Elem == nil || o.Elem == nil {
			return t.Elem == o.Elem
		}
		return t.Elem.Equal(*o.Elem)
	case TupleKind:
		if len(t.Components) != len(o.Components) {
			return false
		}
		for i := range t.Components {
			if !t.Components[i].Equal(o.Components[i]) {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy of t.
func (t ParamType) Clone() ParamType {
	if t.Elem != nil {
		elem := t.Elem.Clone()
		t.Elem = &elem
	}
	if t.Components != nil {
		components := make([]ParamType, len(t.Components))
		for i, c := range t.Components {
			components[i] = c.Clone()
		}
		t.Components = components
	}
	return t
}

// Validate checks the widths and element types of t.
func (t ParamType) Validate() error {
	switch t.Kind {
	case AddressKind, BoolKind, StringKind, BytesKind:
		return nil
	case FixedBytesKind:
		if t.Size < 1 || t.Size > 32 {
			return errorf(ErrSchemaParse, "invalid fixed bytes width %d", t.Size)
		}
	case UintKind, IntKind:
		if t.Size < 8 || t.Size > 256 || t.Size%8 != 0 {
			return errorf(ErrSchemaParse, "invalid %s bit width %d", t.Kind, t.Size)
		}
	case ArrayKind, FixedArrayKind:
		if t.Elem == nil {
			return errorf(ErrSchemaParse, "%s has no element type", t.Kind)
		}
		if t.Kind == FixedArrayKind && t.Size < 0 {
			return errorf(ErrSchemaParse, "invalid fixed array length %d", t.Size)
		}
		if err := t.Elem.Validate(); err != nil {
			return err
		}
		// zero sized elements are counted as one byte so the length stays bounded
		if t.Kind == FixedArrayKind && t.Size > maxHeadSize/max(t.Elem.headSize(), 1) {
			return errorf(ErrSchemaParse, "fixed array length %d of %s is too large", t.Size, t.Elem)
		}
	case TupleKind:
		size := 0
		for _, c := range t.Components {
			if err := c.Validate(); err != nil {
				return err
			}
			size += c.headSize()
			if size > maxHeadSize {
				return errorf(ErrSchemaParse, "tuple with %d components is too large", len(t.Components))
			}
		}
	default:
		return errorf(ErrSchemaParse, "unknown parameter kind %d", t.Kind)
	}
	return nil
}

// MustParseParamType is like ParseParamType but panics on error.
func MustParseParamType(text string) ParamType {
	t, err := ParseParamType(text)
	if err != nil {
		panic(err)
	}
	return t
}
