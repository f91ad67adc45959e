package ethcoder

import (
	"github.com/holiman/uint256"
)

// Encode lays out tokens in the canonical head/tail format. Every token gets
// one slot in the head region: static values are written inline, dynamic
// values are written to the tail and referenced by a byte offset counted from
// the start of the encoding.
func Encode(tokens []Token) ([]byte, error) {
	for i, tok := range tokens {
		if err := tok.Type.Validate(); err != nil {
			return nil, atPath(argPath(i), errorf(ErrTypeMismatch, "invalid token type: %v", err))
		}
		if err := tok.validate(); err != nil {
			return nil, atPath(argPath(i), err)
		}
	}
	return encodeSequence(tokens), nil
}

// EncodeCall prefixes the encoding of tokens with a function selector.
func EncodeCall(selector [4]byte, tokens []Token) ([]byte, error) {
	data, err := Encode(tokens)
	if err != nil {
		return nil, err
	}
	return append(selector[:], data...), nil
}

func encodeSequence(tokens []Token) []byte {
	headLen := 0
	for _, tok := range tokens {
		headLen += tok.Type.headSize()
	}

	head := make([]byte, 0, headLen)
	var tail []byte
	for _, tok := range tokens {
		if tok.Type.IsDynamic() {
			head = append(head, encodeLength(headLen+len(tail))...)
			tail = append(tail, encodeToken(tok)...)
		} else {
			head = append(head, encodeToken(tok)...)
		}
	}
	return append(head, tail...)
}

func encodeToken(tok Token) []byte {
	switch tok.Type.Kind {
	case AddressKind:
		return leftPad(tok.Bytes)
	case BoolKind:
		if tok.Bool {
			return encodeLength(1)
		}
		return encodeLength(0)
	case UintKind, IntKind:
		w := tok.Word.Bytes32()
		return w[:]
	case FixedBytesKind:
		return rightPad(tok.Bytes)
	case StringKind:
		return encodeBytes([]byte(tok.Text))
	case BytesKind:
		return encodeBytes(tok.Bytes)
	case ArrayKind:
		return append(encodeLength(len(tok.Elems)), encodeSequence(tok.Elems)...)
	case FixedArrayKind, TupleKind:
		return encodeSequence(tok.Elems)
	default:
		return nil
	}
}

// encodeBytes packs b as [length word][b right padded to a word boundary].
func encodeBytes(b []byte) []byte {
	return append(encodeLength(len(b)), rightPad(b)...)
}

func encodeLength(n int) []byte {
	w := uint256.NewInt(uint64(n)).Bytes32()
	return w[:]
}

func leftPad(b []byte) []byte {
	out := make([]byte, wordSize)
	copy(out[wordSize-len(b):], b)
	return out
}

func rightPad(b []byte) []byte {
	n := (len(b) + wordSize - 1) / wordSize * wordSize
	out := make([]byte, n)
	copy(out, b)
	return out
}

