package vm

import (
	"testing"

	"sigil/internal/ast"
	"sigil/internal/costs"
	"sigil/internal/datastore"
	"sigil/internal/errs"
	"sigil/internal/ident"
	"sigil/internal/types"
)

// Tests build programs directly as resolved trees, the same shape the
// engine receives from the resolution pass.

func testContractID(name string) types.QualifiedContractIdentifier {
	return types.QualifiedContractIdentifier{
		Issuer: types.StandardPrincipal{Version: 26, Hash: [20]byte{1, 2, 3}},
		Name:   ident.MustContractName(name),
	}
}

func testSender() types.PrincipalData {
	return types.StandardPrincipalData(types.StandardPrincipal{Version: 26, Hash: [20]byte{9}})
}

func newTestEnv() *Environment {
	env := NewEnvironment(datastore.NewMemoryStore(), nil, nil,
		NewContractContext(testContractID("scratch")))
	env.SetSender(testSender())
	return env
}

func evalIn(env *Environment, expr ast.Expr) (types.Value, error) {
	return Eval(&expr, env, NewLocalContext())
}

func call(name string, args ...ast.Expr) ast.Expr {
	children := make([]ast.Expr, 0, len(args)+1)
	children = append(children, ast.Atom(ident.Name(name)))
	children = append(children, args...)
	return ast.List(children...)
}

func intLit(n int64) ast.Expr {
	return ast.AtomValue(types.MakeIntFromInt64(n))
}

func uintLit(n uint64) ast.Expr {
	return ast.AtomValue(types.MakeUIntFromUint64(n))
}

func boolLit(b bool) ast.Expr {
	return ast.AtomValue(types.MakeBool(b))
}

func bufLit(data ...byte) ast.Expr {
	return ast.AtomValue(types.MustBuffer(data))
}

func wantValue(t *testing.T, got, want types.Value) {
	t.Helper()
	if !got.Equal(want) {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func wantCheckCode(t *testing.T, err error, code errs.CheckCode) {
	t.Helper()
	ce, ok := errs.AsCheck(err)
	if !ok {
		t.Fatalf("want check error %s, got %v", code.ID(), err)
	}
	if ce.Code != code {
		t.Fatalf("check code = %s (%s), want %s", ce.Code.ID(), ce.Message, code.ID())
	}
}

func wantRuntimeCode(t *testing.T, err error, code errs.RuntimeCode) {
	t.Helper()
	re, ok := errs.AsRuntime(err)
	if !ok {
		t.Fatalf("want runtime error %s, got %v", code.ID(), err)
	}
	if re.Code != code {
		t.Fatalf("runtime code = %s (%s), want %s", re.Code.ID(), re.Message, code.ID())
	}
}

// recordingTracker captures every charge in order so tests can assert
// on charge sequencing relative to evaluation.
type recordingTracker struct {
	ids   []costs.CostID
	sizes []uint64
}

func (t *recordingTracker) Charge(id costs.CostID, size uint64) error {
	t.ids = append(t.ids, id)
	t.sizes = append(t.sizes, size)
	return nil
}

func (t *recordingTracker) Consumed() uint64 { return 0 }
func (t *recordingTracker) Limit() uint64    { return 0 }
