package trace

import (
	"sync/atomic"
	"time"
)

// Kind represents the type of trace event.
type Kind uint8

const (
	// KindBegin marks the start of a logical operation.
	KindBegin Kind = iota + 1
	// KindEnd marks the end of a logical operation.
	KindEnd
	// KindPoint represents an instant event.
	KindPoint
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindBegin:
		return "begin"
	case KindEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity of the event. Lower numeric values
// represent coarser events.
type Scope uint8

const (
	// ScopeBoundary covers transaction execution and contract
	// initialization milestones.
	ScopeBoundary Scope = iota + 1
	// ScopeDispatch covers individual operator dispatches.
	ScopeDispatch
	// ScopeDetail covers value-level output such as print.
	ScopeDetail
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	switch s {
	case ScopeBoundary:
		return "boundary"
	case ScopeDispatch:
		return "dispatch"
	case ScopeDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time   time.Time         // wall-clock timestamp
	Seq    uint64            // global sequence number (monotonic)
	Kind   Kind              // event kind
	Scope  Scope             // granularity level
	Depth  int               // call depth at emission, for indentation
	Name   string            // e.g. "special:let", "native:sha256", "transaction"
	Detail string            // optional detail message
	Extra  map[string]string // extensible key-value pairs
}

var globalSeq atomic.Uint64

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 {
	return globalSeq.Add(1)
}

// stamp fills Seq and a zero Time just before emission.
func stamp(ev *Event) {
	ev.Seq = NextSeq()
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
}
