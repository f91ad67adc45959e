package ethcoder

import (
	"math"

	"github.com/holiman/uint256"
)

// Decode reads tokens of the given types from data laid out in the canonical
// head/tail format. Call input must have its selector stripped first. Bytes
// past the last value are ignored.
func Decode(types []ParamType, data []byte) ([]Token, error) {
	for i, typ := range types {
		if err := typ.Validate(); err != nil {
			return nil, atPath(argPath(i), err)
		}
	}
	tokens, err := decodeSequence(types, data, argPath)
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// decodeSequence decodes one head region, plus the tails it references, from
// data. Offsets in the head are relative to the start of data.
func decodeSequence(types []ParamType, data []byte, path func(int) string) ([]Token, error) {
	headLen := sequenceHeadSize(types)
	tokens := make([]Token, len(types))

	pos := 0
	for i, typ := range types {
		var (
			tok Token
			err error
		)
		if typ.IsDynamic() {
			var ptr int
			ptr, err = readOffset(data, pos, headLen)
			if err == nil {
				tok, err = decodeToken(typ, data[ptr:])
			}
		} else {
			end := pos + typ.headSize()
			if end > len(data) {
				err = errorf(ErrBufferTooShort, "%s needs %d bytes at offset %d, have %d", typ, typ.headSize(), pos, len(data))
			} else {
				tok, err = decodeToken(typ, data[pos:end])
			}
		}
		if err != nil {
			return nil, atPath(path(i), err)
		}
		tokens[i] = tok
		pos += typ.headSize()
	}
	return tokens, nil
}

// readOffset reads the tail pointer stored in the head slot at pos. The
// pointer must land past the head region and inside data.
func readOffset(data []byte, pos, headLen int) (int, error) {
	w, err := readWord(data, pos)
	if err != nil {
		return 0, err
	}
	if !w.IsUint64() || w.Uint64() > math.MaxInt32 {
		return 0, errorf(ErrMalformedOffset, "offset %s at %d is out of range", w.Dec(), pos)
	}
	ptr := int(w.Uint64())
	if ptr > len(data) {
		return 0, errorf(ErrMalformedOffset, "offset %d at %d points past the end of %d bytes", ptr, pos, len(data))
	}
	if ptr < headLen {
		return 0, errorf(ErrMalformedOffset, "offset %d at %d points into the head region of %d bytes", ptr, pos, headLen)
	}
	return ptr, nil
}

func readWord(data []byte, pos int) (*uint256.Int, error) {
	if pos+wordSize > len(data) {
		return nil, errorf(ErrBufferTooShort, "need a word at offset %d, have %d bytes", pos, len(data))
	}
	return new(uint256.Int).SetBytes32(data[pos : pos+wordSize]), nil
}

// readLength reads a length or count word at the start of data and checks
// that count items of itemSize bytes fit in what follows.
func readLength(data []byte, itemSize int) (int, error) {
	w, err := readWord(data, 0)
	if err != nil {
		return 0, err
	}
	remaining := uint64(len(data) - wordSize)
	if !w.IsUint64() {
		return 0, errorf(ErrLengthOverflow, "length %s exceeds the %d bytes remaining", w.Dec(), remaining)
	}
	n := w.Uint64()
	// zero sized items still count as one byte each
	if n > remaining/uint64(max(itemSize, 1)) {
		return 0, errorf(ErrLengthOverflow, "length %d exceeds the %d bytes remaining", n, remaining)
	}
	if n > math.MaxInt32 {
		return 0, errorf(ErrLengthOverflow, "length %d is too large", n)
	}
	return int(n), nil
}

func decodeToken(typ ParamType, data []byte) (Token, error) {
	tok := Token{Type: typ}

	switch typ.Kind {
	case AddressKind:
		w, err := readWord(data, 0)
		if err != nil {
			return Token{}, err
		}
		b := w.Bytes20()
		tok.Bytes = b[:]

	case BoolKind:
		w, err := readWord(data, 0)
		if err != nil {
			return Token{}, err
		}
		if !w.IsUint64() || w.Uint64() > 1 {
			return Token{}, errorf(ErrMalformedInput, "invalid bool word %s", w.Hex())
		}
		tok.Bool = w.Uint64() == 1

	case UintKind, IntKind:
		w, err := readWord(data, 0)
		if err != nil {
			return Token{}, err
		}
		tok.Word = *w

	case FixedBytesKind:
		if len(data) < wordSize {
			return Token{}, errorf(ErrBufferTooShort, "%s needs a word, have %d bytes", typ, len(data))
		}
		tok.Bytes = append([]byte{}, data[:typ.Size]...)

	case StringKind, BytesKind:
		n, err := readLength(data, 1)
		if err != nil {
			return Token{}, err
		}
		b := append([]byte{}, data[wordSize:wordSize+n]...)
		if typ.Kind == StringKind {
			tok.Text = string(b)
		} else {
			tok.Bytes = b
		}

	case ArrayKind:
		// every element needs at least its head slot
		n, err := readLength(data, typ.Elem.headSize())
		if err != nil {
			return Token{}, err
		}
		elems, err := decodeSequence(repeatType(*typ.Elem, n), data[wordSize:], indexPath)
		if err != nil {
			return Token{}, err
		}
		tok.Elems = elems

	case FixedArrayKind:
		// static arrays arrive sliced to their size, dynamic ones need a head
		// slot per element
		if typ.Elem.IsDynamic() && typ.Size > len(data)/wordSize {
			return Token{}, errorf(ErrBufferTooShort, "%s needs %d head slots, have %d bytes", typ, typ.Size, len(data))
		}
		elems, err := decodeSequence(repeatType(*typ.Elem, typ.Size), data, indexPath)
		if err != nil {
			return Token{}, err
		}
		tok.Elems = elems

	case TupleKind:
		elems, err := decodeSequence(typ.Components, data, componentPath)
		if err != nil {
			return Token{}, err
		}
		tok.Elems = elems

	default:
		return Token{}, errorf(ErrTypeMismatch, "unsupported parameter type %s", typ)
	}

	return tok, nil
}

func repeatType(typ ParamType, n int) []ParamType {
	types := make([]ParamType, n)
	for i := range types {
		types[i] = typ
	}
	return types
}
