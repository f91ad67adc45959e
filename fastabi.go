// Package fastabi encodes and decodes EVM contract call data from a JSON
// interface document. See the ethcoder package for the codec itself and
// ethcontract for the schema-driven Coder.
package fastabi

import (
	"github.com/0xsequence/fastabi/ethcoder"
	"github.com/0xsequence/fastabi/ethcontract"
)

type Coder = ethcontract.Coder

type Function = ethcontract.Function

type Option = ethcontract.Option

type ParamType = ethcoder.ParamType

type Token = ethcoder.Token

// New builds a Coder from a JSON interface document.
func New(schemaJSON string, opts ...Option) (*Coder, error) {
	return ethcontract.NewCoder(schemaJSON, opts...)
}

func MustNew(schemaJSON string, opts ...Option) *Coder {
	c, err := New(schemaJSON, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

var WithLogger = ethcontract.WithLogger

func PtrTo[T any](v T) *T {
	return &v
}
