package errs

import (
	"errors"
	"fmt"
	"strings"
)

// CheckError reports a program shape the evaluator refuses to run: wrong
// arity, a mistyped argument, an unresolved name. Hitting one at runtime is
// still safe; it means the static pass that should have caught it did not
// run over this input.
type CheckError struct {
	Code    CheckCode
	Message string
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("check error %s: %s", e.Code.ID(), e.Message)
}

// NewCheckError builds a check error with a formatted message.
func NewCheckError(code CheckCode, format string, args ...any) *CheckError {
	return &CheckError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// IncorrectArgumentCount reports an exact-arity violation.
func IncorrectArgumentCount(expected, got int) *CheckError {
	return NewCheckError(CheckIncorrectArgumentCount,
		"expected %d arguments, got %d", expected, got)
}

// RequiresAtLeastArguments reports a minimum-arity violation.
func RequiresAtLeastArguments(expected, got int) *CheckError {
	return NewCheckError(CheckRequiresAtLeastArguments,
		"expected at least %d arguments, got %d", expected, got)
}

// TypeValue reports a single-type expectation violated by a value. Both
// sides arrive pre-rendered so this package stays below the type system.
func TypeValue(expected, got string) *CheckError {
	return NewCheckError(CheckTypeValueError,
		"expecting expression of type %s, found %s", expected, got)
}

// UnionTypeValue reports a value that satisfied none of the admissible
// types.
func UnionTypeValue(expected []string, got string) *CheckError {
	return NewCheckError(CheckUnionTypeValueError,
		"expecting expression of type (%s), found %s",
		strings.Join(expected, " | "), got)
}

// CheckArgumentCount returns an arity check error unless got == expected.
func CheckArgumentCount(expected, got int) error {
	if got != expected {
		return IncorrectArgumentCount(expected, got)
	}
	return nil
}

// CheckArgumentsAtLeast returns an arity check error unless got >= expected.
func CheckArgumentsAtLeast(expected, got int) error {
	if got < expected {
		return RequiresAtLeastArguments(expected, got)
	}
	return nil
}

// AsCheck unwraps err looking for a *CheckError.
func AsCheck(err error) (*CheckError, bool) {
	var ce *CheckError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
