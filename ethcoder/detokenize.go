package ethcoder

import (
	"github.com/holiman/uint256"
)

// Detokenize converts a Token into an untyped output value:
//
//   - bool and string as native values
//   - address, bytes and fixed bytes as "0x" prefixed lowercase hex strings
//   - integers of any width as decimal strings, never native numbers
//   - arrays, fixed arrays and tuples as []any, recursively
func Detokenize(tok Token) any {
	switch tok.Type.Kind {
	case BoolKind:
		return tok.Bool
	case StringKind:
		return tok.Text
	case AddressKind, BytesKind, FixedBytesKind:
		return HexEncode(tok.Bytes)
	case UintKind:
		return tok.Word.Dec()
	case IntKind:
		return signedDecimal(&tok.Word)
	case ArrayKind, FixedArrayKind, TupleKind:
		return DetokenizeAll(tok.Elems)
	default:
		return nil
	}
}

// DetokenizeAll detokenizes an ordered list of tokens.
func DetokenizeAll(tokens []Token) []any {
	out := make([]any, len(tokens))
	for i, tok := range tokens {
		out[i] = Detokenize(tok)
	}
	return out
}

func signedDecimal(w *uint256.Int) string {
	if w.Sign() >= 0 {
		return w.Dec()
	}
	return "-" + new(uint256.Int).Neg(w).Dec()
}
