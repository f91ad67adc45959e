package ethcontract

import (
	"fmt"

	"github.com/0xsequence/fastabi/ethcoder"
	"github.com/0xsequence/fastabi/sonic"
	"github.com/goware/superr"
)

// ParseJSONValues reads a JSON array of argument values. Numbers are kept as
// json.Number so no precision is lost before tokenizing.
func ParseJSONValues(argsJSON []byte) ([]any, error) {
	var values []any
	if err := sonic.NumberConfig.Unmarshal(argsJSON, &values); err != nil {
		return nil, superr.New(ethcoder.ErrMalformedInput, fmt.Errorf("expecting a json array of values: %w", err))
	}
	if values == nil {
		values = []any{}
	}
	return values, nil
}

// EncodeInputJSON is like EncodeInput for a JSON array of values, ie.
// `["0x6615e4e985bf0d137196897dfa182dbd7127f54f", 1000]`.
func (c *Coder) EncodeInputJSON(name string, argsJSON []byte) (string, error) {
	values, err := ParseJSONValues(argsJSON)
	if err != nil {
		return "", err
	}
	return c.EncodeInput(name, values)
}

// DecodeInputJSON is like DecodeInput but returns the values as a JSON array.
func (c *Coder) DecodeInputJSON(name string, hexData string) ([]byte, error) {
	values, err := c.DecodeInput(name, hexData)
	if err != nil {
		return nil, err
	}
	return sonic.Config.Marshal(values)
}

// DecodeOutputJSON is like DecodeOutput but returns the values as a JSON array.
func (c *Coder) DecodeOutputJSON(name string, hexData string) ([]byte, error) {
	values, err := c.DecodeOutput(name, hexData)
	if err != nil {
		return nil, err
	}
	return sonic.Config.Marshal(values)
}
