// Package testkit carries invariant checks shared by tests across packages.
package testkit

import (
	"fmt"

	"sigil/internal/ast"
)

// CheckExprInvariants runs the structural invariants every resolved tree
// must satisfy:
// 1) every node has a known kind
// 2) node ids are unique within the tree
// 3) where spans are tracked, each parent span covers its children
func CheckExprInvariants(root *ast.Expr) error {
	if root == nil {
		return fmt.Errorf("nil expression")
	}
	seen := make(map[uint64]int)
	var fail error
	ast.DepthTraverse(root, func(e *ast.Expr) bool {
		// 1) kind sanity
		if e.Kind < ast.ExprAtomValue || e.Kind > ast.ExprTraitRef {
			fail = fmt.Errorf("unknown kind %d on node %d", e.Kind, e.ID)
			return false
		}
		// 2) id uniqueness
		seen[e.ID]++
		if seen[e.ID] > 1 {
			fail = fmt.Errorf("duplicate id %d (%s node)", e.ID, e.Kind)
			return false
		}
		// 3) parent covers children
		if e.Span != nil {
			for i := range e.List {
				child := e.List[i].Span
				if child == nil {
					continue
				}
				if e.Span.Cover(*child) != *e.Span {
					fail = fmt.Errorf("node %d span %v does not cover child span %v", e.ID, *e.Span, *child)
					return false
				}
			}
		}
		return true
	})
	return fail
}

// CheckPreExprInvariants is CheckExprInvariants for the pre-resolution
// family.
func CheckPreExprInvariants(root *ast.PreExpr) error {
	if root == nil {
		return fmt.Errorf("nil expression")
	}
	seen := make(map[uint64]int)
	stack := []*ast.PreExpr{root}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if e.Kind < ast.PreAtomValue || e.Kind > ast.PreTraitReference {
			return fmt.Errorf("unknown kind %d on node %d", e.Kind, e.ID)
		}
		seen[e.ID]++
		if seen[e.ID] > 1 {
			return fmt.Errorf("duplicate id %d (%s node)", e.ID, e.Kind)
		}
		if e.Span != nil {
			for i := range e.List {
				child := e.List[i].Span
				if child == nil {
					continue
				}
				if e.Span.Cover(*child) != *e.Span {
					return fmt.Errorf("node %d span %v does not cover child span %v", e.ID, *e.Span, *child)
				}
			}
		}
		for i := len(e.List) - 1; i >= 0; i-- {
			stack = append(stack, &e.List[i])
		}
	}
	return nil
}
