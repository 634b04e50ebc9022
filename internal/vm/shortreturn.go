package vm

import (
	"errors"
	"fmt"

	"sigil/internal/types"
)

// ShortReturnKind distinguishes the forms that can cut evaluation short.
type ShortReturnKind uint8

const (
	// ShortAssertionFailed is raised by asserts! with the else value.
	ShortAssertionFailed ShortReturnKind = iota + 1
	// ShortExpectedValue is raised by unwrap!, unwrap-err! and try! with
	// the thrown value.
	ShortExpectedValue
)

func (k ShortReturnKind) String() string {
	switch k {
	case ShortAssertionFailed:
		return "assertion failed"
	case ShortExpectedValue:
		return "expected value"
	default:
		return fmt.Sprintf("short-return(%d)", uint8(k))
	}
}

// ShortReturn is a typed early exit carrying its payload. It travels the
// error path but is not a failure: the nearest enclosing function boundary
// converts it into an ordinary result. Only check and runtime errors
// propagate past a boundary.
type ShortReturn struct {
	Kind  ShortReturnKind
	Value types.Value
}

func (s *ShortReturn) Error() string {
	return fmt.Sprintf("short return (%s): %s", s.Kind, s.Value)
}

// NewShortReturn builds a short return of the given kind.
func NewShortReturn(kind ShortReturnKind, v types.Value) *ShortReturn {
	return &ShortReturn{Kind: kind, Value: v}
}

// AsShortReturn unwraps err as a short return if it is one.
func AsShortReturn(err error) (*ShortReturn, bool) {
	var sr *ShortReturn
	if errors.As(err, &sr) {
		return sr, true
	}
	return nil, false
}
