// Package source carries the position information threaded through parsed
// expressions for diagnostics.
package source

import "fmt"

// Span marks the region of program text an expression was read from, in
// one-based line/column coordinates. The zero Span means "no position".
type Span struct {
	StartLine uint32
	StartCol  uint32
	EndLine   uint32
	EndCol    uint32
}

func (s Span) Empty() bool {
	return s == Span{}
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.StartLine, s.StartCol, s.EndLine, s.EndCol)
}

// Cover widens s to the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	if other.Empty() {
		return s
	}
	if s.Empty() {
		return other
	}
	if other.StartLine < s.StartLine ||
		(other.StartLine == s.StartLine && other.StartCol < s.StartCol) {
		s.StartLine, s.StartCol = other.StartLine, other.StartCol
	}
	if other.EndLine > s.EndLine ||
		(other.EndLine == s.EndLine && other.EndCol > s.EndCol) {
		s.EndLine, s.EndCol = other.EndLine, other.EndCol
	}
	return s
}
