package ast

import (
	"testing"

	"sigil/internal/ident"
	"sigil/internal/source"
	"sigil/internal/types"
)

func sampleTree() Expr {
	return List(
		Atom(ident.MustName("begin")),
		List(
			Atom(ident.MustName("is-eq")),
			AtomValue(types.MakeIntFromInt64(1)),
			AtomValue(types.MakeIntFromInt64(1)),
		),
		AtomValue(types.MakeUIntFromUint64(2)),
	)
}

func TestAssignIDsPreOrder(t *testing.T) {
	tree := sampleTree()
	next := AssignIDs(&tree, 1)

	if next != 8 {
		t.Fatalf("next id = %d, want 8", next)
	}
	// Root first, then children left to right, depth first.
	wantOrder := []uint64{1, 2, 3, 4, 5, 6, 7}
	var got []uint64
	DepthTraverse(&tree, func(e *Expr) bool {
		got = append(got, e.ID)
		return true
	})
	if len(got) != len(wantOrder) {
		t.Fatalf("visited %d nodes, want %d", len(got), len(wantOrder))
	}
	for i := range wantOrder {
		if got[i] != wantOrder[i] {
			t.Fatalf("visit order %v, want %v", got, wantOrder)
		}
	}

	seen := make(map[uint64]bool)
	DepthTraverse(&tree, func(e *Expr) bool {
		if seen[e.ID] {
			t.Errorf("duplicate id %d", e.ID)
		}
		seen[e.ID] = true
		return true
	})
}

func TestAssignIDsStartsAnywhere(t *testing.T) {
	tree := Atom(ident.MustName("x"))
	next := AssignIDs(&tree, 40)
	if tree.ID != 40 || next != 41 {
		t.Errorf("id = %d next = %d, want 40 and 41", tree.ID, next)
	}
}

func TestDepthTraverseEarlyStop(t *testing.T) {
	tree := sampleTree()
	AssignIDs(&tree, 1)
	count := 0
	DepthTraverse(&tree, func(e *Expr) bool {
		count++
		return count < 3
	})
	if count != 3 {
		t.Errorf("visited %d nodes, want 3", count)
	}
}

func TestMatchAccessors(t *testing.T) {
	atom := Atom(ident.MustName("foo"))
	if name, ok := atom.MatchAtom(); !ok || name != ident.MustName("foo") {
		t.Errorf("MatchAtom = %q, %v", name, ok)
	}
	if _, ok := atom.MatchList(); ok {
		t.Error("atom should not match as list")
	}
	if _, ok := atom.MatchAtomValue(); ok {
		t.Error("atom should not match as atom-value")
	}

	written := AtomValue(types.MakeBool(true))
	substituted := LiteralValue(types.MakeBool(true))
	if _, ok := written.MatchLiteralValue(); ok {
		t.Error("written literal should not match as substituted literal")
	}
	if v, ok := substituted.MatchLiteralValue(); !ok || !v.Equal(types.MakeBool(true)) {
		t.Error("substituted literal should match")
	}

	list := List(atom)
	children, ok := list.MatchList()
	if !ok || len(children) != 1 {
		t.Fatalf("MatchList = %v, %v", children, ok)
	}
}

func TestSetSpanFollowsTrackingMode(t *testing.T) {
	e := Atom(ident.MustName("x"))
	e.SetSpan(source.Span{StartLine: 1, StartCol: 2, EndLine: 1, EndCol: 3})
	if source.Tracking {
		if e.Span == nil {
			t.Fatal("span should be recorded in tracking builds")
		}
		if e.Span.StartCol != 2 {
			t.Errorf("span = %v", e.Span)
		}
	} else if e.Span != nil {
		t.Fatalf("span should be absent when tracking is off, got %v", e.Span)
	}
}

func TestSideTable(t *testing.T) {
	tree := sampleTree()
	AssignIDs(&tree, 1)

	costs := NewSideTable[uint64]()
	DepthTraverse(&tree, func(e *Expr) bool {
		costs.Put(e.ID, e.ID*10)
		return true
	})
	if costs.Len() != 7 {
		t.Fatalf("table len = %d, want 7", costs.Len())
	}
	if v, ok := costs.Get(3); !ok || v != 30 {
		t.Errorf("Get(3) = %d, %v", v, ok)
	}
	if _, ok := costs.Get(99); ok {
		t.Error("missing id should not resolve")
	}
}

func TestExprString(t *testing.T) {
	tree := sampleTree()
	want := "(begin (is-eq 1 1) u2)"
	if got := tree.String(); got != want {
		t.Errorf("String = %q, want %q", got, want)
	}
}

func TestPreExprFamily(t *testing.T) {
	pre := PreListOf(
		PreAtomOf(ident.MustName("let")),
		PreSugaredContract(ident.MustContractName("tokens")),
		PreSugaredField(ident.MustContractName("tokens"), ident.MustName("transfer")),
		PreTraitRef(ident.MustName("token-trait")),
	)
	next := AssignPreIDs(&pre, 1)
	if next != 6 {
		t.Fatalf("next id = %d, want 6", next)
	}
	if pre.List[1].Kind != PreSugaredContractIdentifier {
		t.Errorf("kind = %v", pre.List[1].Kind)
	}
	if name, ok := pre.List[0].MatchAtom(); !ok || name != ident.MustName("let") {
		t.Errorf("MatchAtom = %q, %v", name, ok)
	}
	if _, ok := pre.List[1].MatchAtom(); ok {
		t.Error("sugared contract reference should not match as atom")
	}
}
