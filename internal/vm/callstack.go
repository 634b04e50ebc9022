package vm

import (
	"fmt"

	"sigil/internal/errs"
	"sigil/internal/ident"
	"sigil/internal/types"
)

// MaxCallDepth caps how many function applications may be in flight.
const MaxCallDepth = 64

// FunctionIdentifier names one function application on the call stack.
type FunctionIdentifier struct {
	identifier string
}

func newFunctionIdentifier(contract types.QualifiedContractIdentifier, name ident.Name) FunctionIdentifier {
	return FunctionIdentifier{identifier: contract.String() + ":" + name.String()}
}

func (f FunctionIdentifier) String() string {
	return f.identifier
}

// CallStack tracks in-flight function applications. It serves two checks:
// the depth cap, and re-entry detection (applying a function already on
// the stack is a circular reference).
type CallStack struct {
	stack []FunctionIdentifier
	set   map[FunctionIdentifier]int
}

// NewCallStack returns an empty stack.
func NewCallStack() *CallStack {
	return &CallStack{set: make(map[FunctionIdentifier]int)}
}

// Depth reports how many applications are in flight.
func (s *CallStack) Depth() int {
	return len(s.stack)
}

// Contains reports whether id is already executing.
func (s *CallStack) Contains(id FunctionIdentifier) bool {
	return s.set[id] > 0
}

// Push records a new application, failing at the depth cap.
func (s *CallStack) Push(id FunctionIdentifier) error {
	if len(s.stack) >= MaxCallDepth {
		return errs.NewRuntimeError(errs.RuntimeMaxStackDepthReached,
			"call stack depth limit of %d reached", MaxCallDepth)
	}
	s.stack = append(s.stack, id)
	s.set[id]++
	return nil
}

// Pop removes the most recent application, which must be id. A mismatch
// means the evaluator itself is broken, not the evaluated program.
func (s *CallStack) Pop(id FunctionIdentifier) {
	if len(s.stack) == 0 {
		panic("vm: pop of empty call stack")
	}
	top := s.stack[len(s.stack)-1]
	if top != id {
		panic(fmt.Sprintf("vm: call stack corruption: expected %s, found %s", id, top))
	}
	s.stack = s.stack[:len(s.stack)-1]
	if s.set[id] <= 1 {
		delete(s.set, id)
	} else {
		s.set[id]--
	}
}
