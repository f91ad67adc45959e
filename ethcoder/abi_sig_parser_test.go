package ethcoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParamList(t *testing.T) {
	cases := []struct {
		in       string
		sig      string
		argNames []string
	}{
		{
			"bytes32 num,   address[] indexed from, uint256 val,   (   address op,   (uint256 val, bytes32 data)) indexed yes,   address,  (int128 a, int64 b), uint256",
			"bytes32,address[],uint256,(address,(uint256,bytes32)),address,(int128,int64),uint256",
			[]string{"num", "from", "val", "yes", "", "", ""},
		},
		{
			"bytes indexed blah, uint256[2][] yes, ( address yo, uint256[2] no )[2][] indexed okay, address last",
			"bytes,uint256[2][],(address,uint256[2])[2][],address",
			[]string{"blah", "yes", "okay", "last"},
		},
		{
			"address from, (  uint256 num, address cool, (  address op, uint256 val )[2] hmm)[][] lol, uint256 val",
			"address,(uint256,address,(address,uint256)[2])[][],uint256",
			[]string{"from", "lol", "val"},
		},
		{
			"address indexed from, address indexed to, uint256 value",
			"address,address,uint256",
			[]string{"from", "to", "value"},
		},
		{
			"bytes32,address,address indexed yes,((uint32,uint32,uint32,address,address,bool,bytes,uint256,address,uint256,uint256,uint256,bytes32),address[],bytes[],address,bytes) indexed cool,address,uint256,address indexed last",
			"bytes32,address,address,((uint32,uint32,uint32,address,address,bool,bytes,uint256,address,uint256,uint256,uint256,bytes32),address[],bytes[],address,bytes),address,uint256,address",
			[]string{"", "", "yes", "cool", "", "", "last"},
		},
		{
			"(address,uint256,string,string) indexed okay",
			"(address,uint256,string,string)",
			[]string{"okay"},
		},
		{
			"tuple(address,uint) memory order, bytes calldata sig",
			"(address,uint256),bytes",
			[]string{"order", "sig"},
		},
		{
			"address,(uint256,uint256,uint256,uint256,uint256,uint256,uint256,uint256,uint256,uint256,uint256,address,uint40,uint40)",
			"address,(uint256,uint256,uint256,uint256,uint256,uint256,uint256,uint256,uint256,uint256,uint256,address,uint40,uint40)",
			[]string{"", ""},
		},
		{
			"bytes, uint256[2][], ( address yo, uint256[2] no )[2][] indexed, address",
			"bytes,uint256[2][],(address,uint256[2])[2][],address",
			[]string{"", "", "", ""},
		},
	}

	for _, c := range cases {
		types, names, err := parseParamList(c.in)
		require.NoError(t, err)
		require.Equal(t, c.sig, joinTypes(types))
		require.Equal(t, c.argNames, names)
	}
}

func TestParseParamType(t *testing.T) {
	typ, err := ParseParamType("uint256[][2]")
	require.NoError(t, err)
	assert.Equal(t, FixedArrayKind, typ.Kind)
	assert.Equal(t, 2, typ.Size)
	assert.Equal(t, ArrayKind, typ.Elem.Kind)
	assert.Equal(t, UintType(256), *typ.Elem.Elem)
	assert.True(t, typ.IsDynamic())

	typ, err = ParseParamType("(address,bool)[3]")
	require.NoError(t, err)
	assert.False(t, typ.IsDynamic())
	assert.Equal(t, 6*32, typ.headSize())

	typ, err = ParseParamType("int")
	require.NoError(t, err)
	assert.Equal(t, "int256", typ.String())

	for _, bad := range []string{"", "uint7", "uint264", "bytes0", "bytes33", "int0", "fixed128x18", "function", "uint256[", "uint256[x]", "(address", "address foo bar", "address)"} {
		_, err := ParseParamType(bad)
		assert.ErrorIs(t, err, ErrSchemaParse, bad)
	}
}

func TestParseFunctionSignature(t *testing.T) {
	fn, err := ParseFunctionSignature("function transfer(address to, uint256 amount) external returns (bool)")
	require.NoError(t, err)
	assert.Equal(t, "transfer", fn.Name)
	assert.Equal(t, "transfer(address,uint256)", fn.Signature())
	assert.Equal(t, []string{"to", "amount"}, fn.InputNames)
	assert.Equal(t, []ParamType{BoolType()}, fn.Outputs)
	assert.Equal(t, "transfer(address,uint256) returns (bool)", fn.String())

	fn, err = ParseFunctionSignature("balanceOf(address)")
	require.NoError(t, err)
	assert.Equal(t, [4]byte{0x70, 0xa0, 0x82, 0x31}, fn.Selector())
	assert.Empty(t, fn.Outputs)

	fn, err = ParseFunctionSignature("getPerson() view returns ((string name, uint256 age) person)")
	require.NoError(t, err)
	assert.Empty(t, fn.Inputs)
	require.Len(t, fn.Outputs, 1)
	assert.Equal(t, "(string,uint256)", fn.Outputs[0].String())
	assert.Equal(t, []string{"person"}, fn.OutputNames)

	fn, err = ParseFunctionSignature("totalSupply() returns uint256")
	require.NoError(t, err)
	assert.Equal(t, []ParamType{UintType(256)}, fn.Outputs)

	for _, bad := range []string{"transfer", "1transfer(address)", "transfer(address", "transfer(address) returns", "transfer(address) returns (bool) x", "transfer(adress)"} {
		_, err := ParseFunctionSignature(bad)
		assert.ErrorIs(t, err, ErrSchemaParse, bad)
	}
}
