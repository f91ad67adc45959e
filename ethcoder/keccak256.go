package ethcoder

import (
	"golang.org/x/crypto/sha3"
)

func Keccak256(input []byte) []byte {
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(input)
	return hasher.Sum(nil)
}

// Selector returns the 4-byte function selector of a canonical signature,
// ie. "balanceOf(address)" => 0x70a08231.
func Selector(signature string) [4]byte {
	var sel [4]byte
	copy(sel[:], Keccak256([]byte(signature)))
	return sel
}
