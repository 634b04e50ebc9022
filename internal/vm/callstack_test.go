package vm

import (
	"fmt"
	"testing"

	"sigil/internal/ast"
	"sigil/internal/errs"
	"sigil/internal/ident"
	"sigil/internal/types"
)

func TestCallStackBookkeeping(t *testing.T) {
	s := NewCallStack()
	id := newFunctionIdentifier(testContractID("c"), "f")

	if s.Depth() != 0 || s.Contains(id) {
		t.Fatal("fresh stack not empty")
	}
	if err := s.Push(id); err != nil {
		t.Fatal(err)
	}
	if s.Depth() != 1 || !s.Contains(id) {
		t.Fatal("push not recorded")
	}
	s.Pop(id)
	if s.Depth() != 0 || s.Contains(id) {
		t.Fatal("pop not recorded")
	}
}

func TestCallStackDepthCap(t *testing.T) {
	s := NewCallStack()
	for i := 0; i < MaxCallDepth; i++ {
		id := newFunctionIdentifier(testContractID("c"), ident.Name(fmt.Sprintf("f%d", i)))
		if err := s.Push(id); err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
	}
	err := s.Push(newFunctionIdentifier(testContractID("c"), "overboard"))
	wantRuntimeCode(t, err, errs.RuntimeMaxStackDepthReached)
}

// chainContract defines n functions where each calls the next and the
// last returns its argument, so applying f0 puts n frames in flight.
func chainContract(n int) []ast.Expr {
	exprs := make([]ast.Expr, 0, n)
	for i := 0; i < n-1; i++ {
		exprs = append(exprs, call("define-private",
			signature(fmt.Sprintf("f%d", i), pair("n", atom("int"))),
			call(fmt.Sprintf("f%d", i+1), atom("n"))))
	}
	exprs = append(exprs, call("define-private",
		signature(fmt.Sprintf("f%d", n-1), pair("n", atom("int"))),
		atom("n")))
	return exprs
}

func TestCallDepthThroughEvaluation(t *testing.T) {
	env := deployTestContract(t, chainContract(MaxCallDepth)...)
	v, err := evalIn(env, call("f0", intLit(7)))
	if err != nil {
		t.Fatal(err)
	}
	wantValue(t, v, types.MakeIntFromInt64(7))

	env = deployTestContract(t, chainContract(MaxCallDepth+1)...)
	_, err = evalIn(env, call("f0", intLit(7)))
	wantRuntimeCode(t, err, errs.RuntimeMaxStackDepthReached)
}
