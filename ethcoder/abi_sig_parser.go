package ethcoder

import (
	"strconv"
	"strings"
)

// ParseParamType parses Solidity type text into a ParamType, ie. "uint256",
// "bytes32[]", "(address,(uint256,bytes)[2])[]" or "tuple(address,bool)".
// "uint" and "int" are aliases of "uint256" and "int256".
func ParseParamType(text string) (ParamType, error) {
	typ, name, err := parseParam(text)
	if err != nil {
		return ParamType{}, err
	}
	if name != "" {
		return ParamType{}, errorf(ErrSchemaParse, "unexpected identifier %q after type", name)
	}
	return typ, nil
}

// ParseFunctionSignature parses a human-readable function declaration, ie.
//
//	"transfer(address to, uint256 amount) returns (bool)"
//	"function balanceOf(address) view returns (uint256)"
//
// Argument names are optional, and so is the returns clause.
func ParseFunctionSignature(signature string) (FunctionSignature, error) {
	sig := strings.TrimSpace(signature)
	sig = strings.TrimPrefix(sig, "function ")

	a := strings.Index(sig, "(")
	if a < 0 {
		return FunctionSignature{}, errorf(ErrSchemaParse, "invalid signature %q, expecting method(arg1,arg2,..)", signature)
	}
	name := strings.TrimSpace(sig[:a])
	if !isIdentifier(name) {
		return FunctionSignature{}, errorf(ErrSchemaParse, "invalid function name %q", name)
	}

	z, err := findParensCloseIndex(sig[a:])
	if err != nil {
		return FunctionSignature{}, err
	}
	z += a

	fn := FunctionSignature{Name: name}
	fn.Inputs, fn.InputNames, err = parseParamList(sig[a+1 : z])
	if err != nil {
		return FunctionSignature{}, err
	}

	rest := strings.TrimSpace(sig[z+1:])
	if i := strings.Index(rest, "returns"); i >= 0 {
		r := strings.TrimSpace(rest[i+len("returns"):])
		if r == "" {
			return FunctionSignature{}, errorf(ErrSchemaParse, "missing return types in %q", signature)
		}
		if r[0] == '(' {
			y, err := findParensCloseIndex(r)
			if err != nil {
				return FunctionSignature{}, err
			}
			if strings.TrimSpace(r[y+1:]) != "" {
				return FunctionSignature{}, errorf(ErrSchemaParse, "unexpected text after return types in %q", signature)
			}
			r = r[1:y]
		}
		fn.Outputs, fn.OutputNames, err = parseParamList(r)
		if err != nil {
			return FunctionSignature{}, err
		}
	} else {
		fn.Outputs, fn.OutputNames = []ParamType{}, []string{}
	}

	return fn, nil
}

func MustParseFunctionSignature(signature string) FunctionSignature {
	fn, err := ParseFunctionSignature(signature)
	if err != nil {
		panic(err)
	}
	return fn
}

func parseParamList(list string) ([]ParamType, []string, error) {
	types, names := []ParamType{}, []string{}
	if strings.TrimSpace(list) == "" {
		return types, names, nil
	}
	parts, err := splitTopLevel(list)
	if err != nil {
		return nil, nil, err
	}
	for _, p := range parts {
		typ, name, err := parseParam(p)
		if err != nil {
			return nil, nil, err
		}
		types = append(types, typ)
		names = append(names, name)
	}
	return types, names, nil
}

// parseParam parses "type [modifiers] [name]".
func parseParam(text string) (ParamType, string, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return ParamType{}, "", errorf(ErrSchemaParse, "empty type")
	}

	var (
		typ  ParamType
		rest string
	)

	if strings.HasPrefix(s, "(") || strings.HasPrefix(s, "tuple(") {
		s = strings.TrimPrefix(s, "tuple")
		z, err := findParensCloseIndex(s)
		if err != nil {
			return ParamType{}, "", err
		}
		components, _, err := parseParamList(s[1:z])
		if err != nil {
			return ParamType{}, "", err
		}
		typ = TupleOf(components...)
		rest = s[z+1:]
	} else {
		end := strings.IndexAny(s, "[ \t")
		if end < 0 {
			end = len(s)
		}
		var err error
		typ, err = parseElementaryType(s[:end])
		if err != nil {
			return ParamType{}, "", err
		}
		rest = s[end:]
	}

	typ, rest, err := parseArraySuffix(typ, rest)
	if err != nil {
		return ParamType{}, "", err
	}

	name := ""
	for _, word := range strings.Fields(rest) {
		switch word {
		case "indexed", "memory", "calldata", "storage", "payable":
			continue
		}
		if name != "" || !isIdentifier(word) {
			return ParamType{}, "", errorf(ErrSchemaParse, "invalid parameter %q", strings.TrimSpace(text))
		}
		name = word
	}

	return typ, name, typ.Validate()
}

// parseArraySuffix applies "[]" and "[N]" suffixes left to right, so
// "uint256[2][]" is a dynamic array of uint256[2].
func parseArraySuffix(typ ParamType, s string) (ParamType, string, error) {
	for {
		s = strings.TrimLeft(s, " \t")
		if !strings.HasPrefix(s, "[") {
			return typ, s, nil
		}
		z := strings.Index(s, "]")
		if z < 0 {
			return ParamType{}, "", errorf(ErrSchemaParse, "unterminated array suffix %q", s)
		}
		size := strings.TrimSpace(s[1:z])
		if size == "" {
			typ = ArrayOf(typ)
		} else {
			n, err := strconv.Atoi(size)
			if err != nil || n < 0 {
				return ParamType{}, "", errorf(ErrSchemaParse, "invalid array length %q", size)
			}
			typ = FixedArrayOf(typ, n)
		}
		s = s[z+1:]
	}
}

func parseElementaryType(s string) (ParamType, error) {
	switch s {
	case "address":
		return AddressType(), nil
	case "bool":
		return BoolType(), nil
	case "string":
		return StringType(), nil
	case "bytes":
		return BytesType(), nil
	case "uint":
		return UintType(256), nil
	case "int":
		return IntType(256), nil
	}

	var (
		prefix string
		ctor   func(int) ParamType
	)
	switch {
	case strings.HasPrefix(s, "bytes"):
		prefix, ctor = "bytes", FixedBytesType
	case strings.HasPrefix(s, "uint"):
		prefix, ctor = "uint", UintType
	case strings.HasPrefix(s, "int"):
		prefix, ctor = "int", IntType
	default:
		return ParamType{}, errorf(ErrSchemaParse, "unsupported arg type: %s", s)
	}

	size, err := strconv.Atoi(s[len(prefix):])
	if err != nil {
		return ParamType{}, errorf(ErrSchemaParse, "unsupported arg type: %s", s)
	}
	typ := ctor(size)
	return typ, typ.Validate()
}

// splitTopLevel splits s on commas that are not nested in parens or brackets.
func splitTopLevel(s string) ([]string, error) {
	var parts []string
	depth, start := 0, 0
	for i, c := range s {
		switch c {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
			if depth < 0 {
				return nil, errorf(ErrSchemaParse, "unbalanced parenthesis in %q", s)
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, errorf(ErrSchemaParse, "unbalanced parenthesis in %q", s)
	}
	return append(parts, s[start:]), nil
}

func findParensCloseIndex(args string) (int, error) {
	n := 0
	for i, c := range args {
		if c == '(' {
			n++
		} else if c == ')' {
			n--
			if n == 0 {
				return i, nil
			}
		}
	}
	return -1, errorf(ErrSchemaParse, "invalid function args, no closing parenthesis found")
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_' || c == '$':
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}
