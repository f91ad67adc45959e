// Package ethcoder implements the canonical EVM ABI calldata codec: parsing of
// parameter type text, coercion of untyped values into typed tokens, and the
// head/tail encoding of token lists to bytes and back.
package ethcoder

import (
	"fmt"
)

// ABIEncode encodes values against parameter type texts, ie.
// ABIEncode([]string{"address", "uint256"}, []any{"0x...", "1000"}).
func ABIEncode(typeTexts []string, values []any) ([]byte, error) {
	types, err := ParseParamTypes(typeTexts)
	if err != nil {
		return nil, err
	}
	tokens, err := TokenizeArgs(types, values)
	if err != nil {
		return nil, err
	}
	return Encode(tokens)
}

// ABIEncodeHex is like ABIEncode but returns "0x" prefixed hex.
func ABIEncodeHex(typeTexts []string, values []any) (string, error) {
	b, err := ABIEncode(typeTexts, values)
	if err != nil {
		return "", err
	}
	return HexEncode(b), nil
}

// ABIDecode decodes data against parameter type texts and returns the
// detokenized values.
func ABIDecode(typeTexts []string, data []byte) ([]any, error) {
	types, err := ParseParamTypes(typeTexts)
	if err != nil {
		return nil, err
	}
	tokens, err := Decode(types, data)
	if err != nil {
		return nil, err
	}
	return DetokenizeAll(tokens), nil
}

// ABIDecodeHex is like ABIDecode for hex text, with or without a "0x" prefix.
func ABIDecodeHex(typeTexts []string, data string) ([]any, error) {
	b, err := HexDecode(data)
	if err != nil {
		return nil, err
	}
	return ABIDecode(typeTexts, b)
}

// ParseParamTypes parses a list of parameter type texts.
func ParseParamTypes(typeTexts []string) ([]ParamType, error) {
	types := make([]ParamType, len(typeTexts))
	for i, s := range typeTexts {
		t, err := ParseParamType(s)
		if err != nil {
			return nil, fmt.Errorf("type %d: %w", i, err)
		}
		types[i] = t
	}
	return types, nil
}

func BytesToBytes32(slice []byte) [32]byte {
	var bytes32 [32]byte
	copy(bytes32[:], slice)
	return bytes32
}

func HexDecodeBytes32(h string) ([32]byte, error) {
	slice, err := HexDecode(h)
	if err != nil {
		return [32]byte{}, err
	}
	if len(slice) != 32 {
		return [32]byte{}, errorf(ErrRange, "hex input is not 32 bytes")
	}
	return BytesToBytes32(slice), nil
}
