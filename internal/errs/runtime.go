package errs

import (
	"errors"
	"fmt"
)

// RuntimeError reports a condition only the live execution could reveal:
// an exhausted cost budget, arithmetic overflow, a block hash the chain
// does not know. The program shape is fine; this particular run cannot
// proceed.
type RuntimeError struct {
	Code    RuntimeCode
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error %s: %s", e.Code.ID(), e.Message)
}

// NewRuntimeError builds a runtime error with a formatted message.
func NewRuntimeError(code RuntimeCode, format string, args ...any) *RuntimeError {
	return &RuntimeError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// BadNameValue reports an identifier literal that failed guarded
// construction.
func BadNameValue(label, value string) *RuntimeError {
	return NewRuntimeError(RuntimeBadNameValue, "%q is not a legal %s", value, label)
}

// AsRuntime unwraps err looking for a *RuntimeError.
func AsRuntime(err error) (*RuntimeError, bool) {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
