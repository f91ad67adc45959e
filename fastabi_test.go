package fastabi_test

import (
	"testing"

	"github.com/0xsequence/fastabi"
	"github.com/0xsequence/fastabi/ethcoder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schema = `[{"type":"function","name":"simpleFunction","stateMutability":"nonpayable","inputs":[{"name":"a","type":"uint256"},{"name":"b","type":"address"},{"name":"c","type":"bool"}],"outputs":[]}]`

func TestNew(t *testing.T) {
	coder, err := fastabi.New(schema)
	require.NoError(t, err)

	types, err := coder.ArgumentTypes("simpleFunction")
	require.NoError(t, err)
	assert.Equal(t, []fastabi.ParamType{ethcoder.UintType(256), ethcoder.AddressType(), ethcoder.BoolType()}, types)

	calldata, err := coder.EncodeInput("simpleFunction", []any{123, "0x1234567890123456789012345678901234567890", true})
	require.NoError(t, err)
	assert.Equal(t, "5b4cd681"+
		"000000000000000000000000000000000000000000000000000000000000007b"+
		"0000000000000000000000001234567890123456789012345678901234567890"+
		"0000000000000000000000000000000000000000000000000000000000000001", calldata)

	values, err := coder.DecodeInput("simpleFunction", "0x"+calldata)
	require.NoError(t, err)
	assert.Equal(t, []any{"123", "0x1234567890123456789012345678901234567890", true}, values)

	_, err = fastabi.New("not json")
	assert.ErrorIs(t, err, ethcoder.ErrSchemaParse)
	assert.Panics(t, func() { fastabi.MustNew("[") })

	assert.Equal(t, 7, *fastabi.PtrTo(7))
}
