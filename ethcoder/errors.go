package ethcoder

import (
	"errors"
	"fmt"

	"github.com/goware/superr"
)

var (
	ErrSchemaParse      = errors.New("ethcoder: schema parse error")
	ErrFunctionNotFound = errors.New("ethcoder: function not found")
	ErrArityMismatch    = errors.New("ethcoder: arity mismatch")
	ErrTypeMismatch     = errors.New("ethcoder: type mismatch")
	ErrRange            = errors.New("ethcoder: value out of range")
	ErrMalformedInput   = errors.New("ethcoder: malformed input")
	ErrBufferTooShort   = errors.New("ethcoder: buffer too short")
	ErrMalformedOffset  = errors.New("ethcoder: malformed offset")
	ErrLengthOverflow   = errors.New("ethcoder: length overflow")

	// ErrStructural is returned when a tuple value is not an ordered sequence,
	// for example a map keyed by component name.
	ErrStructural = errors.New("ethcoder: structural error")
)

// errorf pairs a sentinel error with a formatted detail message, errors.Is
// still matches the sentinel.
func errorf(kind error, format string, args ...any) error {
	return superr.New(kind, fmt.Errorf(format, args...))
}

// pathError prefixes err with the position of the value that produced it,
// ie. "arg 1[2].0".
type pathError struct {
	path string
	err  error
}

func (e *pathError) Error() string {
	return fmt.Sprintf("%s: %v", e.path, e.err)
}

func (e *pathError) Unwrap() error {
	return e.err
}

func atPath(path string, err error) error {
	if err == nil || path == "" {
		return err
	}
	var pe *pathError
	if errors.As(err, &pe) {
		// paths are built bottom-up while unwinding the recursion
		return &pathError{path: path + pe.path, err: pe.err}
	}
	return &pathError{path: path, err: err}
}
