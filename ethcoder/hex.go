package ethcoder

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// StripHexPrefix removes a leading "0x" from text. Text shorter than two
// characters cannot carry a prefix check and is rejected.
func StripHexPrefix(text string) (string, error) {
	if len(text) < 2 {
		return "", errorf(ErrMalformedInput, "hex input %q is too short", text)
	}
	if text[0] == '0' && (text[1] == 'x' || text[1] == 'X') {
		return text[2:], nil
	}
	return text, nil
}

// StripSelector removes the optional "0x" prefix and the 4-byte function
// selector (8 hex characters) from call input data.
func StripSelector(text string) (string, error) {
	s, err := StripHexPrefix(text)
	if err != nil {
		return "", err
	}
	if len(s) < 8 {
		return "", errorf(ErrMalformedInput, "call data %q is shorter than a 4-byte selector", text)
	}
	return s[8:], nil
}

// SplitCallData decodes call input hex into its 4-byte selector and the
// encoded arguments that follow it.
func SplitCallData(text string) ([4]byte, []byte, error) {
	var selector [4]byte
	args, err := StripSelector(text)
	if err != nil {
		return selector, nil, err
	}
	s, _ := StripHexPrefix(text)
	b, err := decodeRawHex(s[:8])
	if err != nil {
		return selector, nil, err
	}
	copy(selector[:], b)
	data, err := decodeRawHex(args)
	if err != nil {
		return selector, nil, err
	}
	return selector, data, nil
}

// HexDecode decodes hex text with or without a "0x" prefix.
func HexDecode(text string) ([]byte, error) {
	s, err := StripHexPrefix(text)
	if err != nil {
		return nil, err
	}
	return decodeRawHex(s)
}

func MustHexDecode(text string) []byte {
	b, err := HexDecode(text)
	if err != nil {
		panic(err)
	}
	return b
}

// HexEncode returns the "0x" prefixed lowercase hex of b.
func HexEncode(b []byte) string {
	return hexutil.Encode(b)
}

// decodeRawHex decodes hex text that has already had its prefix removed.
func decodeRawHex(s string) ([]byte, error) {
	b, err := hexutil.Decode("0x" + s)
	if err != nil {
		return nil, errorf(ErrMalformedInput, "invalid hex %q: %v", abbrev(s), err)
	}
	return b, nil
}

func abbrev(s string) string {
	if len(s) > 24 {
		return s[:21] + "..."
	}
	return s
}
