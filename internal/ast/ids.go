package ast

// AssignIDs numbers every node of the tree depth-first, left to right,
// starting from start. It returns the next unused id. Ids are set once;
// reading a tree never renumbers it.
func AssignIDs(root *Expr, start uint64) uint64 {
	next := start
	stack := []*Expr{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node.ID = next
		next++
		for i := len(node.List) - 1; i >= 0; i-- {
			stack = append(stack, &node.List[i])
		}
	}
	return next
}

// AssignPreIDs is AssignIDs for the pre-resolution family.
func AssignPreIDs(root *PreExpr, start uint64) uint64 {
	next := start
	stack := []*PreExpr{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node.ID = next
		next++
		for i := len(node.List) - 1; i >= 0; i-- {
			stack = append(stack, &node.List[i])
		}
	}
	return next
}

// DepthTraverse visits every node depth-first with an explicit stack, so
// arbitrarily deep trees cannot exhaust the goroutine stack. The walk
// stops early when visit returns false.
func DepthTraverse(root *Expr, visit func(*Expr) bool) {
	stack := []*Expr{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visit(node) {
			return
		}
		for i := len(node.List) - 1; i >= 0; i-- {
			stack = append(stack, &node.List[i])
		}
	}
}

// SideTable associates values with expression ids without touching the
// nodes themselves. Nodes hold no side data; the id is the only key.
type SideTable[T any] struct {
	entries map[uint64]T
}

// NewSideTable creates an empty side table.
func NewSideTable[T any]() *SideTable[T] {
	return &SideTable[T]{entries: make(map[uint64]T)}
}

// Put records a value for an expression id, replacing any earlier entry.
func (t *SideTable[T]) Put(id uint64, value T) {
	t.entries[id] = value
}

// Get looks up the value recorded for an expression id.
func (t *SideTable[T]) Get(id uint64) (T, bool) {
	v, ok := t.entries[id]
	return v, ok
}

// Len returns the number of recorded entries.
func (t *SideTable[T]) Len() int {
	return len(t.entries)
}
