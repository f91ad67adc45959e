package ethcontract

import (
	"fmt"
	"strings"

	"github.com/0xsequence/fastabi/ethcoder"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/goware/superr"
)

func ParseABI(abiJSON string) (abi.ABI, error) {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return abi.ABI{}, superr.New(ethcoder.ErrSchemaParse, fmt.Errorf("unable to parse abi json: %w", err))
	}
	return parsed, nil
}

func MustParseABI(abiJSON string) abi.ABI {
	parsed, err := ParseABI(abiJSON)
	if err != nil {
		panic(err)
	}
	return parsed
}

// paramTypeOf converts a go-ethereum abi type into the codec's ParamType.
// Function pointers and fixed point numbers have no codec representation.
func paramTypeOf(typ abi.Type) (ethcoder.ParamType, error) {
	switch typ.T {
	case abi.AddressTy:
		return ethcoder.AddressType(), nil
	case abi.BoolTy:
		return ethcoder.BoolType(), nil
	case abi.StringTy:
		return ethcoder.StringType(), nil
	case abi.BytesTy:
		return ethcoder.BytesType(), nil
	case abi.FixedBytesTy:
		return ethcoder.FixedBytesType(typ.Size), nil
	case abi.HashTy:
		return ethcoder.FixedBytesType(32), nil
	case abi.UintTy:
		return ethcoder.UintType(typ.Size), nil
	case abi.IntTy:
		return ethcoder.IntType(typ.Size), nil
	case abi.SliceTy, abi.ArrayTy:
		elem, err := paramTypeOf(*typ.Elem)
		if err != nil {
			return ethcoder.ParamType{}, err
		}
		if typ.T == abi.SliceTy {
			return ethcoder.ArrayOf(elem), nil
		}
		return ethcoder.FixedArrayOf(elem, typ.Size), nil
	case abi.TupleTy:
		components := make([]ethcoder.ParamType, len(typ.TupleElems))
		for i, e := range typ.TupleElems {
			c, err := paramTypeOf(*e)
			if err != nil {
				return ethcoder.ParamType{}, err
			}
			components[i] = c
		}
		return ethcoder.TupleOf(components...), nil
	default:
		return ethcoder.ParamType{}, superr.New(ethcoder.ErrSchemaParse, fmt.Errorf("unsupported parameter type %s", typ.String()))
	}
}

func argumentsOf(args abi.Arguments) ([]ethcoder.ParamType, []string, error) {
	types := make([]ethcoder.ParamType, len(args))
	names := make([]string, len(args))
	for i, arg := range args {
		typ, err := paramTypeOf(arg.Type)
		if err != nil {
			return nil, nil, fmt.Errorf("%q: %w", arg.Name, err)
		}
		types[i] = typ
		names[i] = arg.Name
	}
	return types, names, nil
}

// functionOf converts a parsed method, keeping the go-ethereum overload key.
func functionOf(key string, method abi.Method) (*Function, error) {
	inputs, inputNames, err := argumentsOf(method.Inputs)
	if err != nil {
		return nil, err
	}
	outputs, outputNames, err := argumentsOf(method.Outputs)
	if err != nil {
		return nil, err
	}
	return newFunction(key, ethcoder.FunctionSignature{
		Name:        method.RawName,
		Inputs:      inputs,
		Outputs:     outputs,
		InputNames:  inputNames,
		OutputNames: outputNames,
	}, string(method.StateMutability)), nil
}
