package errz

import (
	"errors"
	"fmt"
)

// Sentinels carried by the panics raised through Fatalf. They indicate a
// caller broke an invariant, so they are never returned as values.
var (
	ErrIndexOutOfRange      = errors.New("index out of range")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrDivisionByZero       = errors.New("division by zero")
)

// Fatalf panics with an error that wraps sentinel, so recovered values can
// still be classified with errors.Is.
func Fatalf(sentinel error, format string, args ...any) {
	panic(fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)))
}
