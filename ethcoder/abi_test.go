package ethcoder

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestABIEncoding(t *testing.T) {
	cases := []struct {
		argTypes []string
		expected string
		input    []any
	}{
		{
			argTypes: []string{
				"uint256[]",
				"uint256[]",
			},
			expected: `0x000000000000000000000000000000000000000000000000000000000000004000000000000000000000000000000000000000000000000000000000000000800000000000000000000000000000000000000000000000000000000000000001000000000000000000000000000000000000000000000000000000000000002c00000000000000000000000000000000000000000000000000000000000000010000000000000000000000000000000000000000000000000000000000000016`,
			input: []any{
				[]*big.Int{big.NewInt(44)},
				[]*big.Int{big.NewInt(22)},
			},
		},
		{
			argTypes: []string{
				"uint256[]",
				"uint256[]",
			},
			expected: `0x000000000000000000000000000000000000000000000000000000000000004000000000000000000000000000000000000000000000000000000000000000800000000000000000000000000000000000000000000000000000000000000001000000000000000000000000000000000000000000000000000000000000002c00000000000000000000000000000000000000000000000000000000000000010000000000000000000000000000000000000000000000000000000000000016`,
			input: []any{
				[]any{"44"},
				[]any{44 / 2},
			},
		},
	}

	for _, i := range cases {
		packed, err := ABIEncode(i.argTypes, i.input)
		assert.NoError(t, err)

		// the expected value is the same
		assert.Equal(t, i.expected, HexEncode(packed))

		// decode the value
		output, err := ABIDecode(i.argTypes, packed)
		assert.NoError(t, err)
		assert.Equal(t, []any{[]any{"44"}, []any{"22"}}, output)
	}
}

func TestABIEncodeMethodCalldata(t *testing.T) {
	ownerAddress := common.HexToAddress("0x6615e4e985bf0d137196897dfa182dbd7127f54f")

	{
		fn := MustParseFunctionSignature("balanceOf(address,uint256)")
		tokens, err := TokenizeArgs(fn.Inputs, []any{ownerAddress, big.NewInt(2)})
		require.NoError(t, err)
		calldata, err := EncodeCall(fn.Selector(), tokens)
		assert.NoError(t, err)
		assert.Equal(t, "0x00fdd58e0000000000000000000000006615e4e985bf0d137196897dfa182dbd7127f54f0000000000000000000000000000000000000000000000000000000000000002", HexEncode(calldata))

		// arrays
		fn = MustParseFunctionSignature("getCurrencyReserves(uint256[])")
		tokens, err = TokenizeArgs(fn.Inputs, []any{[]*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3)}})
		require.NoError(t, err)
		calldata, err = EncodeCall(fn.Selector(), tokens)
		assert.NoError(t, err)
		assert.Equal(t, "0x209b96c500000000000000000000000000000000000000000000000000000000000000200000000000000000000000000000000000000000000000000000000000000003000000000000000000000000000000000000000000000000000000000000000100000000000000000000000000000000000000000000000000000000000000020000000000000000000000000000000000000000000000000000000000000003", HexEncode(calldata))
	}

	{
		fn := MustParseFunctionSignature("balanceOf(address,uint256)")
		tokens, err := TokenizeArgs(fn.Inputs, []any{"0x6615e4e985bf0d137196897dfa182dbd7127f54f", "2"})
		require.NoError(t, err)
		calldata, err := EncodeCall(fn.Selector(), tokens)
		assert.NoError(t, err)
		assert.Equal(t, "0x00fdd58e0000000000000000000000006615e4e985bf0d137196897dfa182dbd7127f54f0000000000000000000000000000000000000000000000000000000000000002", HexEncode(calldata)) // same as above

		// arrays
		fn = MustParseFunctionSignature("getCurrencyReserves(uint256[])")
		tokens, err = TokenizeArgs(fn.Inputs, []any{[]string{"1", "2", "3"}})
		require.NoError(t, err)
		calldata, err = EncodeCall(fn.Selector(), tokens)
		assert.NoError(t, err)
		assert.Equal(t, "0x209b96c500000000000000000000000000000000000000000000000000000000000000200000000000000000000000000000000000000000000000000000000000000003000000000000000000000000000000000000000000000000000000000000000100000000000000000000000000000000000000000000000000000000000000020000000000000000000000000000000000000000000000000000000000000003", HexEncode(calldata)) // same as above
	}
}

func TestABIDecodeAndStringify(t *testing.T) {
	{
		values, err := ABIDecodeHex([]string{"uint256"}, "0x000000000000000000000000000000000000000000007998f984c2040a5a9e01")
		assert.NoError(t, err)
		assert.Len(t, values, 1)
		assert.Equal(t, "574228229235365901934081", values[0])
	}

	{
		data, err := ABIEncode([]string{"uint256", "address"}, []any{big.NewInt(1337), common.HexToAddress("0x6615e4e985bf0d137196897dfa182dbd7127f54f")})
		assert.NoError(t, err)

		values, err := ABIDecode([]string{"(uint256,address)"}, data)
		assert.NoError(t, err)
		assert.Len(t, values, 1)
		assert.Equal(t, []any{"1337", "0x6615e4e985bf0d137196897dfa182dbd7127f54f"}, values[0])
	}

	{
		data, err := ABIEncode([]string{"bool", "bool"}, []any{true, false})
		assert.NoError(t, err)

		values, err := ABIDecode([]string{"bool", "bool"}, data)
		assert.NoError(t, err)
		assert.Equal(t, []any{true, false}, values)
	}

	{
		data, err := ABIEncode([]string{"bytes"}, []any{[]byte{1, 2, 3, 4}})
		assert.NoError(t, err)

		values, err := ABIDecode([]string{"bytes"}, data)
		assert.NoError(t, err)
		assert.Len(t, values, 1)
		assert.Equal(t, "0x01020304", values[0])
	}
}

// TestGethCompatibility checks the codec against the go-ethereum abi package
// for a mix of static and dynamic types.
func TestGethCompatibility(t *testing.T) {
	typeTexts := []string{"address", "uint256[]", "bytes", "string", "int64", "bytes32[2]", "bool"}

	var slots [2][32]byte
	slots[0][0], slots[1][31] = 0xaa, 0xbb

	gethArgs := abi.Arguments{}
	for _, s := range typeTexts {
		typ, err := abi.NewType(s, "", nil)
		require.NoError(t, err)
		gethArgs = append(gethArgs, abi.Argument{Type: typ})
	}

	addr := common.HexToAddress("0x1231f65f29f98e7D71A4655cCD7B2bc441211feb")
	expected, err := gethArgs.Pack(
		addr,
		[]*big.Int{big.NewInt(1), new(big.Int).Lsh(big.NewInt(1), 200)},
		[]byte("a byte string that needs more than a single word"),
		"peϣer",
		int64(-1337),
		slots,
		true,
	)
	require.NoError(t, err)

	data, err := ABIEncode(typeTexts, []any{
		addr.Hex(),
		[]any{"1", new(big.Int).Lsh(big.NewInt(1), 200).String()},
		HexEncode([]byte("a byte string that needs more than a single word")),
		"peϣer",
		"-1337",
		[]any{common.Hash(slots[0]), common.Hash(slots[1])},
		true,
	})
	require.NoError(t, err)
	assert.Equal(t, HexEncode(expected), HexEncode(data))

	values, err := ABIDecode(typeTexts, expected)
	require.NoError(t, err)
	assert.Equal(t, "0x1231f65f29f98e7d71a4655ccd7b2bc441211feb", values[0])
	assert.Equal(t, []any{"1", new(big.Int).Lsh(big.NewInt(1), 200).String()}, values[1])
	assert.Equal(t, HexEncode([]byte("a byte string that needs more than a single word")), values[2])
	assert.Equal(t, "peϣer", values[3])
	assert.Equal(t, "-1337", values[4])
	assert.Equal(t, []any{HexEncode(slots[0][:]), HexEncode(slots[1][:])}, values[5])
	assert.Equal(t, true, values[6])
}
