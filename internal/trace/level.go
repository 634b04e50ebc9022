package trace

import "fmt"

// Level controls tracing verbosity.
type Level uint8

const (
	// LevelOff disables tracing.
	LevelOff Level = iota
	// LevelBoundary emits transaction and initialization milestones.
	LevelBoundary
	// LevelDispatch adds one event pair per operator dispatch.
	LevelDispatch
	// LevelDebug emits everything including value-level detail.
	LevelDebug
)

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelBoundary:
		return "boundary"
	case LevelDispatch:
		return "dispatch"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "off", "OFF":
		return LevelOff, nil
	case "boundary", "BOUNDARY":
		return LevelBoundary, nil
	case "dispatch", "DISPATCH":
		return LevelDispatch, nil
	case "debug", "DEBUG":
		return LevelDebug, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|boundary|dispatch|debug)", s)
	}
}

// ShouldEmit returns true if the given scope should emit at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelBoundary:
		return scope <= ScopeBoundary
	case LevelDispatch:
		return scope <= ScopeDispatch
	case LevelDebug:
		return true
	default:
		return false
	}
}
