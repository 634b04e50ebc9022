package demo

import (
	"strings"

	"sigil/internal/ast"
	"sigil/internal/ident"
	"sigil/internal/types"
)

// Sample is a built-in program: deployment forms plus the transactions to
// run against them. Deploy builds fresh trees on every call so concurrent
// runs never share nodes.
type Sample struct {
	Name         string
	Description  string
	Deploy       func() []ast.Expr
	Transactions []Transaction
}

// Render returns the deployment forms in source syntax, one per line.
func (s Sample) Render() string {
	exprs := s.Deploy()
	lines := make([]string, len(exprs))
	for i := range exprs {
		lines[i] = exprs[i].String()
	}
	return strings.Join(lines, "\n")
}

func sym(name ident.Name) ast.Expr { return ast.Atom(name) }

func form(name ident.Name, args ...ast.Expr) ast.Expr {
	children := make([]ast.Expr, 0, len(args)+1)
	children = append(children, ast.Atom(name))
	return ast.List(append(children, args...)...)
}

func inum(n int64) ast.Expr  { return ast.AtomValue(types.MakeIntFromInt64(n)) }
func unum(n uint64) ast.Expr { return ast.AtomValue(types.MakeUIntFromUint64(n)) }

func mustList(vs ...types.Value) types.Value {
	v, err := types.MakeList(vs)
	if err != nil {
		panic(err)
	}
	return v
}

// Deterministic principals used by sample transactions.
var (
	alice = types.StandardPrincipalData(types.StandardPrincipal{Version: 26, Hash: [20]byte{0xA1}})
	bob   = types.StandardPrincipalData(types.StandardPrincipal{Version: 26, Hash: [20]byte{0xB0}})
)

// Catalog returns every built-in sample in display order.
func Catalog() []Sample {
	return []Sample{
		counterSample(),
		vaultSample(),
		ledgerSample(),
		checkedMathSample(),
		digestsSample(),
		reportSample(),
	}
}

// Find returns the sample with the given name.
func Find(name string) (Sample, bool) {
	for _, s := range Catalog() {
		if s.Name == name {
			return s, true
		}
	}
	return Sample{}, false
}

// Names returns the catalog's sample names in display order.
func Names() []string {
	catalog := Catalog()
	names := make([]string, len(catalog))
	for i := range catalog {
		names[i] = catalog[i].Name
	}
	return names
}

func counterSample() Sample {
	return Sample{
		Name:        "counter",
		Description: "a data variable bumped across committed transactions",
		Deploy: func() []ast.Expr {
			return []ast.Expr{
				form("define-data-var", sym("count"), sym("int"), inum(0)),
				form("define-public", ast.List(sym("bump")),
					form("begin",
						form("var-set", sym("count"),
							form("+", form("var-get", sym("count")), inum(1))),
						form("ok", form("var-get", sym("count"))))),
				form("define-read-only", ast.List(sym("peek")),
					form("var-get", sym("count"))),
			}
		},
		Transactions: []Transaction{
			{Function: "bump"},
			{Function: "bump"},
			{Function: "peek"},
		},
	}
}

func vaultSample() Sample {
	return Sample{
		Name:        "vault",
		Description: "asserts! guarding withdrawals, failures rolled back",
		Deploy: func() []ast.Expr {
			return []ast.Expr{
				form("define-data-var", sym("locked"), sym("uint"), unum(100)),
				form("define-public",
					ast.List(sym("release"), ast.List(sym("amount"), sym("uint"))),
					form("begin",
						form("asserts!",
							form("<=", sym("amount"), form("var-get", sym("locked"))),
							form("err", unum(1))),
						form("var-set", sym("locked"),
							form("-", form("var-get", sym("locked")), sym("amount"))),
						form("ok", form("var-get", sym("locked"))))),
			}
		},
		Transactions: []Transaction{
			{Function: "release", Args: []types.Value{types.MakeUIntFromUint64(30)}},
			{Function: "release", Args: []types.Value{types.MakeUIntFromUint64(200)}},
			{Function: "release", Args: []types.Value{types.MakeUIntFromUint64(70)}},
		},
	}
}

func ledgerSample() Sample {
	key := func() ast.Expr {
		return form("tuple", ast.List(sym("who"), sym("who")))
	}
	return Sample{
		Name:        "ledger",
		Description: "a balances map keyed by principal",
		Deploy: func() []ast.Expr {
			return []ast.Expr{
				form("define-map", sym("balances"),
					form("tuple", ast.List(sym("who"), sym("principal"))),
					sym("uint")),
				form("define-public",
					ast.List(sym("credit"),
						ast.List(sym("who"), sym("principal")),
						ast.List(sym("amount"), sym("uint"))),
					form("begin",
						form("map-set", sym("balances"), key(),
							form("+",
								form("default-to", unum(0),
									form("map-get?", sym("balances"), key())),
								sym("amount"))),
						form("ok", sym("amount")))),
				form("define-read-only",
					ast.List(sym("balance-of"), ast.List(sym("who"), sym("principal"))),
					form("default-to", unum(0),
						form("map-get?", sym("balances"), key()))),
			}
		},
		Transactions: []Transaction{
			{Function: "credit", Args: []types.Value{types.MakePrincipal(alice), types.MakeUIntFromUint64(100)}},
			{Function: "credit", Args: []types.Value{types.MakePrincipal(alice), types.MakeUIntFromUint64(40)}},
			{Function: "balance-of", Args: []types.Value{types.MakePrincipal(alice)}},
			{Function: "balance-of", Args: []types.Value{types.MakePrincipal(bob)}},
		},
	}
}

func checkedMathSample() Sample {
	return Sample{
		Name:        "checked-math",
		Description: "division guarded against zero, errors as response values",
		Deploy: func() []ast.Expr {
			return []ast.Expr{
				form("define-public",
					ast.List(sym("safe-div"),
						ast.List(sym("a"), sym("int")),
						ast.List(sym("b"), sym("int"))),
					form("if", form("is-eq", sym("b"), inum(0)),
						form("err", unum(100)),
						form("ok", form("/", sym("a"), sym("b"))))),
			}
		},
		Transactions: []Transaction{
			{Function: "safe-div", Args: []types.Value{types.MakeIntFromInt64(10), types.MakeIntFromInt64(3)}},
			{Function: "safe-div", Args: []types.Value{types.MakeIntFromInt64(1), types.MakeIntFromInt64(0)}},
			{Function: "safe-div", Args: []types.Value{types.MakeIntFromInt64(-9), types.MakeIntFromInt64(2)}},
		},
	}
}

func digestsSample() Sample {
	return Sample{
		Name:        "digests",
		Description: "hash natives over a caller-supplied buffer",
		Deploy: func() []ast.Expr {
			return []ast.Expr{
				form("define-read-only",
					ast.List(sym("fingerprint"),
						ast.List(sym("input"), form("buff", inum(64)))),
					form("tuple",
						ast.List(sym("sha"), form("sha256", sym("input"))),
						ast.List(sym("keccak"), form("keccak256", sym("input"))))),
			}
		},
		Transactions: []Transaction{
			{Function: "fingerprint", Args: []types.Value{types.MustBuffer([]byte{0xDE, 0xAD, 0xBE, 0xEF})}},
		},
	}
}

func reportSample() Sample {
	return Sample{
		Name:        "report",
		Description: "fold and filter over list arguments",
		Deploy: func() []ast.Expr {
			return []ast.Expr{
				form("define-private",
					ast.List(sym("positive"), ast.List(sym("n"), sym("int"))),
					form(">", sym("n"), inum(0))),
				form("define-read-only",
					ast.List(sym("total"), ast.List(sym("xs"), form("list", inum(10), sym("int")))),
					form("fold", sym("+"), sym("xs"), inum(0))),
				form("define-read-only",
					ast.List(sym("count-positive"), ast.List(sym("xs"), form("list", inum(10), sym("int")))),
					form("len", form("filter", sym("positive"), sym("xs")))),
			}
		},
		Transactions: []Transaction{
			{Function: "total", Args: []types.Value{mustList(
				types.MakeIntFromInt64(1), types.MakeIntFromInt64(2),
				types.MakeIntFromInt64(3), types.MakeIntFromInt64(4),
				types.MakeIntFromInt64(5))}},
			{Function: "count-positive", Args: []types.Value{mustList(
				types.MakeIntFromInt64(3), types.MakeIntFromInt64(-1),
				types.MakeIntFromInt64(7), types.MakeIntFromInt64(0))}},
		},
	}
}
