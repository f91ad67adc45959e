package ethcoder

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
)

func TestKeccak256(t *testing.T) {
	for _, in := range []string{"", "hello", "transfer(address,uint256)"} {
		assert.Equal(t, crypto.Keccak256([]byte(in)), Keccak256([]byte(in)), in)
	}
	assert.Equal(t, "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", HexEncode(Keccak256(nil)))
}

func TestSelector(t *testing.T) {
	cases := []struct {
		sig      string
		selector string
	}{
		{"balanceOf(address)", "0x70a08231"},
		{"transfer(address,uint256)", "0xa9059cbb"},
		{"balanceOf(address,uint256)", "0x00fdd58e"},
		{"getCurrencyReserves(uint256[])", "0x209b96c5"},
	}
	for _, c := range cases {
		sel := Selector(c.sig)
		assert.Equal(t, c.selector, HexEncode(sel[:]), c.sig)
	}
}
