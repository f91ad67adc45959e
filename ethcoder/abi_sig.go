package ethcoder

import (
	"fmt"
	"strings"
)

// FunctionSignature is one function of an interface schema.
type FunctionSignature struct {
	Name        string      // the method name, ie. transfer
	Inputs      []ParamType // ordered input types, ie. [address, uint256]
	Outputs     []ParamType // ordered output types, ie. [bool]
	InputNames  []string    // the input arg names, ie. [to, amount] or ["",""]
	OutputNames []string
}

// Signature returns the canonical text signature, ie. transfer(address,uint256).
func (f FunctionSignature) Signature() string {
	return f.Name + "(" + joinTypes(f.Inputs) + ")"
}

// Selector returns the first 4 bytes of the keccak256 hash of the canonical
// signature.
func (f FunctionSignature) Selector() [4]byte {
	return Selector(f.Signature())
}

func (f FunctionSignature) String() string {
	if len(f.Outputs) == 0 {
		return f.Signature()
	}
	return fmt.Sprintf("%s returns (%s)", f.Signature(), joinTypes(f.Outputs))
}

// Validate checks every input and output type of f.
func (f FunctionSignature) Validate() error {
	if !isIdentifier(f.Name) {
		return errorf(ErrSchemaParse, "invalid function name %q", f.Name)
	}
	for _, t := range f.Inputs {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("%s: %w", f.Name, err)
		}
	}
	for _, t := range f.Outputs {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("%s: %w", f.Name, err)
		}
	}
	return nil
}

func joinTypes(types []ParamType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.String()
	}
	return strings.Join(parts, ",")
}
