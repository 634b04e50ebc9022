package testkit

import (
	"strings"
	"testing"

	"sigil/internal/ast"
	"sigil/internal/source"
	"sigil/internal/types"
)

func sampleTree() ast.Expr {
	e := ast.List(
		ast.Atom("+"),
		ast.AtomValue(types.MakeIntFromInt64(1)),
		ast.List(
			ast.Atom("+"),
			ast.AtomValue(types.MakeIntFromInt64(2)),
			ast.AtomValue(types.MakeIntFromInt64(3)),
		),
	)
	ast.AssignIDs(&e, 1)
	return e
}

func TestExprInvariantsPass(t *testing.T) {
	e := sampleTree()
	if err := CheckExprInvariants(&e); err != nil {
		t.Fatal(err)
	}
}

func TestExprInvariantsCatchDuplicateID(t *testing.T) {
	e := sampleTree()
	e.List[1].ID = e.ID
	err := CheckExprInvariants(&e)
	if err == nil || !strings.Contains(err.Error(), "duplicate id") {
		t.Fatalf("want duplicate id error, got %v", err)
	}
}

func TestExprInvariantsCatchUnknownKind(t *testing.T) {
	e := sampleTree()
	e.List[0].Kind = ast.ExprKind(99)
	err := CheckExprInvariants(&e)
	if err == nil || !strings.Contains(err.Error(), "unknown kind") {
		t.Fatalf("want unknown kind error, got %v", err)
	}
}

func TestExprInvariantsCatchSpanEscape(t *testing.T) {
	e := sampleTree()
	e.Span = &source.Span{StartLine: 1, StartCol: 1, EndLine: 1, EndCol: 10}
	e.List[1].Span = &source.Span{StartLine: 2, StartCol: 1, EndLine: 2, EndCol: 4}
	err := CheckExprInvariants(&e)
	if err == nil || !strings.Contains(err.Error(), "cover") {
		t.Fatalf("want span coverage error, got %v", err)
	}
}

func TestPreExprInvariants(t *testing.T) {
	p := ast.PreListOf(
		ast.PreAtomOf("if"),
		ast.PreAtomValueOf(types.MakeBool(true)),
		ast.PreAtomValueOf(types.MakeIntFromInt64(1)),
		ast.PreAtomValueOf(types.MakeIntFromInt64(2)),
	)
	ast.AssignPreIDs(&p, 1)
	if err := CheckPreExprInvariants(&p); err != nil {
		t.Fatal(err)
	}

	p.List[2].ID = p.ID
	err := CheckPreExprInvariants(&p)
	if err == nil || !strings.Contains(err.Error(), "duplicate id") {
		t.Fatalf("want duplicate id error, got %v", err)
	}
}

func TestNilTreesRejected(t *testing.T) {
	if err := CheckExprInvariants(nil); err == nil {
		t.Error("nil resolved tree accepted")
	}
	if err := CheckPreExprInvariants(nil); err == nil {
		t.Error("nil pre tree accepted")
	}
}
