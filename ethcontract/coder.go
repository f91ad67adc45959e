package ethcontract

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/0xsequence/fastabi/ethcoder"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/goware/superr"
)

// Function is one callable entry of a Coder's schema.
type Function struct {
	ethcoder.FunctionSignature

	// Key is the lookup key of the function, its name for the first declared
	// overload and name0, name1.. for the ones that follow.
	Key             string
	StateMutability string

	selector [4]byte
}

func newFunction(key string, sig ethcoder.FunctionSignature, stateMutability string) *Function {
	return &Function{
		FunctionSignature: sig,
		Key:               key,
		StateMutability:   stateMutability,
		selector:          sig.Selector(),
	}
}

func (f *Function) Selector() [4]byte {
	return f.selector
}

// Coder encodes and decodes call data for the functions of one schema. A Coder
// is immutable once built and safe for concurrent use.
type Coder struct {
	abi        *abi.ABI
	functions  []*Function
	byKey      map[string]*Function
	bySelector map[[4]byte]*Function
	log        *slog.Logger
}

// NewCoder builds a Coder from a JSON interface document. Functions using
// parameter types the codec cannot represent are skipped with a warning.
func NewCoder(schemaJSON string, opts ...Option) (*Coder, error) {
	parsed, err := ParseABI(schemaJSON)
	if err != nil {
		return nil, err
	}
	return NewCoderFromABI(parsed, opts...)
}

// NewCoderFromABI builds a Coder from an already parsed go-ethereum ABI.
func NewCoderFromABI(parsed abi.ABI, opts ...Option) (*Coder, error) {
	c := newCoder(opts...)
	c.abi = &parsed

	for key, method := range parsed.Methods {
		fn, err := functionOf(key, method)
		if err != nil {
			c.log.Warn("skipping function", "function", method.Sig, "err", err)
			continue
		}
		// go-ethereum accepts widths such as uint7 as written
		if err := fn.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", method.Sig, err)
		}
		c.add(fn)
	}
	c.index()

	c.log.Debug("coder ready", "functions", len(c.functions))
	return c, nil
}

// NewCoderFromSignatures builds a Coder from human-readable declarations, ie.
// "transfer(address to, uint256 amount) returns (bool)".
func NewCoderFromSignatures(signatures []string, opts ...Option) (*Coder, error) {
	c := newCoder(opts...)
	for _, s := range signatures {
		sig, err := ethcoder.ParseFunctionSignature(s)
		if err != nil {
			return nil, err
		}
		key := sig.Name
		for i := 0; c.byKey[key] != nil; i++ {
			key = fmt.Sprintf("%s%d", sig.Name, i)
		}
		c.add(newFunction(key, sig, ""))
	}
	c.index()
	return c, nil
}

func newCoder(opts ...Option) *Coder {
	c := &Coder{
		byKey:      map[string]*Function{},
		bySelector: map[[4]byte]*Function{},
		log:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Coder) add(fn *Function) {
	c.functions = append(c.functions, fn)
	c.byKey[fn.Key] = fn
}

// index registers signature and selector lookups once every function is
// known, so that a plain name always resolves to its own key first.
func (c *Coder) index() {
	sort.Slice(c.functions, func(i, j int) bool {
		return c.functions[i].Signature() < c.functions[j].Signature()
	})
	for _, fn := range c.functions {
		sig := fn.Signature()
		if _, ok := c.byKey[sig]; !ok {
			c.byKey[sig] = fn
		}
		if prev, ok := c.bySelector[fn.selector]; ok && prev.Signature() != sig {
			c.log.Warn("selector collision", "selector", ethcoder.HexEncode(fn.selector[:]), "function", sig, "other", prev.Signature())
			continue
		}
		c.bySelector[fn.selector] = fn
	}
}

// ABI returns the parsed schema, or nil when the Coder was built from
// signatures.
func (c *Coder) ABI() *abi.ABI {
	return c.abi
}

// Functions returns every function of the Coder ordered by signature.
func (c *Coder) Functions() []*Function {
	return append([]*Function{}, c.functions...)
}

// Function looks up a function by name, overload key (ie. transfer0) or full
// signature (ie. transfer(address,uint256)).
func (c *Coder) Function(name string) (*Function, error) {
	fn, ok := c.byKey[strings.TrimSpace(name)]
	if !ok {
		return nil, superr.New(ethcoder.ErrFunctionNotFound, fmt.Errorf("no function %q", name))
	}
	return fn, nil
}

// FunctionBySelector looks up a function by its 4-byte selector.
func (c *Coder) FunctionBySelector(selector [4]byte) (*Function, error) {
	fn, ok := c.bySelector[selector]
	if !ok {
		return nil, superr.New(ethcoder.ErrFunctionNotFound, fmt.Errorf("no function with selector %s", ethcoder.HexEncode(selector[:])))
	}
	return fn, nil
}

// ArgumentTypes returns a copy of the declared input types of a function.
func (c *Coder) ArgumentTypes(name string) ([]ethcoder.ParamType, error) {
	fn, err := c.Function(name)
	if err != nil {
		return nil, err
	}
	types := make([]ethcoder.ParamType, len(fn.Inputs))
	for i, t := range fn.Inputs {
		types[i] = t.Clone()
	}
	return types, nil
}

// EncodeInput encodes call data for a function: the selector followed by the
// encoded values, as lowercase hex without a "0x" prefix.
func (c *Coder) EncodeInput(name string, values []any) (string, error) {
	fn, err := c.Function(name)
	if err != nil {
		return "", err
	}
	tokens, err := ethcoder.TokenizeArgs(fn.Inputs, values)
	if err != nil {
		return "", fmt.Errorf("%s: %w", fn.Signature(), err)
	}
	data, err := ethcoder.EncodeCall(fn.selector, tokens)
	if err != nil {
		return "", fmt.Errorf("%s: %w", fn.Signature(), err)
	}
	return rawHex(data), nil
}

// DecodeInput decodes call data for a function. The hex may carry a "0x"
// prefix and must start with the 4-byte selector, which is not checked
// against the function.
func (c *Coder) DecodeInput(name string, hexData string) ([]any, error) {
	fn, err := c.Function(name)
	if err != nil {
		return nil, err
	}
	_, data, err := ethcoder.SplitCallData(hexData)
	if err != nil {
		return nil, err
	}
	return decodeValues(fn, fn.Inputs, data)
}

// EncodeOutput encodes return data for a function, useful to mock the
// response of a call.
func (c *Coder) EncodeOutput(name string, values []any) (string, error) {
	fn, err := c.Function(name)
	if err != nil {
		return "", err
	}
	tokens, err := ethcoder.TokenizeArgs(fn.Outputs, values)
	if err != nil {
		return "", fmt.Errorf("%s: %w", fn.Signature(), err)
	}
	data, err := ethcoder.Encode(tokens)
	if err != nil {
		return "", fmt.Errorf("%s: %w", fn.Signature(), err)
	}
	return rawHex(data), nil
}

// DecodeOutput decodes the return data of a function.
func (c *Coder) DecodeOutput(name string, hexData string) ([]any, error) {
	fn, err := c.Function(name)
	if err != nil {
		return nil, err
	}
	data, err := ethcoder.HexDecode(hexData)
	if err != nil {
		return nil, err
	}
	return decodeValues(fn, fn.Outputs, data)
}

// DecodeCall identifies the called function by the selector of the call data
// and decodes its arguments.
func (c *Coder) DecodeCall(hexData string) (*Function, []any, error) {
	selector, data, err := ethcoder.SplitCallData(hexData)
	if err != nil {
		return nil, nil, err
	}
	fn, err := c.FunctionBySelector(selector)
	if err != nil {
		return nil, nil, err
	}
	values, err := decodeValues(fn, fn.Inputs, data)
	if err != nil {
		return nil, nil, err
	}
	return fn, values, nil
}

// DecodeInputTokens is like DecodeInput but returns the typed tokens.
func (c *Coder) DecodeInputTokens(name string, hexData string) ([]ethcoder.Token, error) {
	fn, err := c.Function(name)
	if err != nil {
		return nil, err
	}
	_, data, err := ethcoder.SplitCallData(hexData)
	if err != nil {
		return nil, err
	}
	tokens, err := ethcoder.Decode(fn.Inputs, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn.Signature(), err)
	}
	return tokens, nil
}

// DecodeOutputTokens is like DecodeOutput but returns the typed tokens.
func (c *Coder) DecodeOutputTokens(name string, hexData string) ([]ethcoder.Token, error) {
	fn, err := c.Function(name)
	if err != nil {
		return nil, err
	}
	data, err := ethcoder.HexDecode(hexData)
	if err != nil {
		return nil, err
	}
	tokens, err := ethcoder.Decode(fn.Outputs, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn.Signature(), err)
	}
	return tokens, nil
}

func decodeValues(fn *Function, types []ethcoder.ParamType, data []byte) ([]any, error) {
	tokens, err := ethcoder.Decode(types, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn.Signature(), err)
	}
	return ethcoder.DetokenizeAll(tokens), nil
}

func rawHex(data []byte) string {
	return ethcoder.HexEncode(data)[2:]
}
