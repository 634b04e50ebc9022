package fuzztests

import (
	"sigil/internal/ast"
	"sigil/internal/ident"
	"sigil/internal/types"
)

const (
	maxFuzzInput = 1 << 16 // 64 KiB
	maxFuzzNodes = 512
	maxExprDepth = 12
)

// operatorNames mixes registry entries, reserved variables, define keywords
// and unknown names, so generated applications exercise every dispatch path:
// native, special, define rejection and lookup miss.
var operatorNames = []ident.Name{
	"+", "-", "*", "/", "mod", "pow", "xor", "<", "<=", ">", ">=",
	"to-int", "to-uint", "is-eq", "not", "and", "or",
	"if", "let", "begin", "asserts!", "as-contract",
	"some", "ok", "err", "is-none", "is-some", "is-ok", "is-err",
	"default-to", "unwrap!", "unwrap-err!", "unwrap-panic",
	"unwrap-err-panic", "try!", "match",
	"list", "len", "append", "concat", "map", "filter", "fold",
	"tuple", "get",
	"var-get", "var-set", "map-get?", "map-set", "map-insert", "map-delete",
	"at-block", "hash160", "sha256", "sha512", "sha512/256", "keccak256",
	"print", "true", "false", "none", "block-height", "tx-sender",
	"contract-caller", "define-constant", "define-private", "frobnicate",
}

// bindNames fill positions where a form expects a bare name. The reserved
// entries make collision rejections reachable.
var bindNames = []ident.Name{"a", "b", "x", "n", "acc", "frob", "tx-sender", "let"}

// typeNames seed atomic type descriptions, valid and not.
var typeNames = []ident.Name{"int", "uint", "bool", "principal", "frob"}

// treeBuilder consumes fuzz bytes and emits bounded expression trees. An
// exhausted input yields zero bytes, so every tree is finite and the same
// input always decodes to the same tree.
type treeBuilder struct {
	data  []byte
	pos   int
	nodes int
}

func (b *treeBuilder) next() byte {
	if b.pos >= len(b.data) {
		return 0
	}
	v := b.data[b.pos]
	b.pos++
	return v
}

func (b *treeBuilder) pick(table []ident.Name) ident.Name {
	return table[int(b.next())%len(table)]
}

func (b *treeBuilder) expr(depth int) ast.Expr {
	b.nodes++
	if b.nodes > maxFuzzNodes || depth <= 0 {
		return ast.AtomValue(types.MakeIntFromInt64(int64(b.next())))
	}
	switch b.next() % 8 {
	case 0:
		return ast.AtomValue(types.MakeIntFromInt64(int64(b.next()) - 128))
	case 1:
		return ast.AtomValue(types.MakeUIntFromUint64(uint64(b.next())))
	case 2:
		return ast.AtomValue(types.MakeBool(b.next()%2 == 0))
	case 3:
		data := make([]byte, int(b.next()%9))
		for i := range data {
			data[i] = b.next()
		}
		v, err := types.MakeBuffer(data)
		if err != nil {
			return ast.AtomValue(types.MakeIntFromInt64(0))
		}
		return ast.AtomValue(v)
	case 4:
		p := types.StandardPrincipal{Version: b.next(), Hash: [20]byte{b.next()}}
		return ast.AtomValue(types.MakePrincipal(types.StandardPrincipalData(p)))
	case 5:
		return ast.Atom(b.pick(operatorNames))
	default:
		n := int(b.next() % 5)
		children := make([]ast.Expr, 0, n+1)
		children = append(children, ast.Atom(b.pick(operatorNames)))
		for i := 0; i < n; i++ {
			children = append(children, b.expr(depth-1))
		}
		return ast.List(children...)
	}
}

func (b *treeBuilder) typeExpr(depth int) ast.Expr {
	b.nodes++
	if b.nodes > maxFuzzNodes || depth <= 0 {
		return ast.Atom(b.pick(typeNames))
	}
	switch b.next() % 6 {
	case 0:
		return ast.List(ast.Atom("optional"), b.typeExpr(depth-1))
	case 1:
		return ast.List(ast.Atom("buff"),
			ast.AtomValue(types.MakeIntFromInt64(int64(b.next()))))
	case 2:
		return ast.List(ast.Atom("list"),
			ast.AtomValue(types.MakeIntFromInt64(int64(b.next()%16))),
			b.typeExpr(depth-1))
	case 3:
		return ast.List(ast.Atom("response"), b.typeExpr(depth-1), b.typeExpr(depth-1))
	case 4:
		return ast.List(ast.Atom("tuple"),
			ast.List(ast.Atom(b.pick(bindNames)), b.typeExpr(depth-1)))
	default:
		return ast.Atom(b.pick(typeNames))
	}
}

// topLevel emits one contract-level form: a definition or a plain
// expression, shapes valid and broken alike.
func (b *treeBuilder) topLevel() ast.Expr {
	switch b.next() % 8 {
	case 0:
		return ast.List(ast.Atom("define-constant"),
			ast.Atom(b.pick(bindNames)), b.expr(4))
	case 1:
		return ast.List(ast.Atom("define-data-var"),
			ast.Atom(b.pick(bindNames)), b.typeExpr(2), b.expr(3))
	case 2:
		return ast.List(ast.Atom("define-map"),
			ast.Atom(b.pick(bindNames)), b.typeExpr(2), b.typeExpr(2))
	case 3, 4:
		kw := []ident.Name{"define-private", "define-public", "define-read-only"}
		sig := []ast.Expr{ast.Atom(b.pick(bindNames))}
		for i := 0; i < int(b.next()%3); i++ {
			sig = append(sig, ast.List(ast.Atom(b.pick(bindNames)), b.typeExpr(1)))
		}
		return ast.List(ast.Atom(kw[int(b.next())%len(kw)]),
			ast.List(sig...), b.expr(4))
	default:
		return b.expr(4)
	}
}
