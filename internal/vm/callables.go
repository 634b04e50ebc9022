package vm

import (
	"sigil/internal/ast"
	"sigil/internal/costs"
	"sigil/internal/errs"
	"sigil/internal/types"
)

// The three native handle shapes. Natives receive already-evaluated
// values and cannot affect evaluation order, scope, or short-returns of
// sibling expressions. The one- and two-argument shapes avoid slice
// allocation on the hot path.
type (
	SingleArgFn func(env *Environment, arg types.Value) (types.Value, error)
	DoubleArgFn func(env *Environment, a, b types.Value) (types.Value, error)
	VarArgsFn   func(env *Environment, args []types.Value) (types.Value, error)
)

// SpecialFn receives the raw, unevaluated argument expressions plus the
// environment and lexical context. A special form decides which
// sub-expressions to evaluate, in what order, and under what context.
type SpecialFn func(args []ast.Expr, env *Environment, ctx *LocalContext) (types.Value, error)

// CallableKind selects the dispatch protocol of a registry entry.
type CallableKind uint8

const (
	CallableNative CallableKind = iota + 1
	CallableSpecial
)

// Callable is one immutable registry entry. For natives exactly one of
// Single, Double or VarArgs is set; Cost is charged before arguments are
// evaluated. Specials charge their own costs.
type Callable struct {
	Kind    CallableKind
	Name    string // diagnostic name, e.g. "native_eq"
	Cost    costs.CostID
	Single  SingleArgFn
	Double  DoubleArgFn
	VarArgs VarArgsFn
	Special SpecialFn
}

func singleArg(name string, cost costs.CostID, fn SingleArgFn) Callable {
	return Callable{Kind: CallableNative, Name: name, Cost: cost, Single: fn}
}

func doubleArg(name string, cost costs.CostID, fn DoubleArgFn) Callable {
	return Callable{Kind: CallableNative, Name: name, Cost: cost, Double: fn}
}

func varArgs(name string, cost costs.CostID, fn VarArgsFn) Callable {
	return Callable{Kind: CallableNative, Name: name, Cost: cost, VarArgs: fn}
}

func special(name string, fn SpecialFn) Callable {
	return Callable{Kind: CallableSpecial, Name: name, Special: fn}
}

// applyNative hands evaluated arguments to the arity-matched handle. The
// declared arity is re-checked here: dispatch does not assume an earlier
// validation pass ran.
func (c *Callable) applyNative(env *Environment, args []types.Value) (types.Value, error) {
	switch {
	case c.Single != nil:
		if err := errs.CheckArgumentCount(1, len(args)); err != nil {
			return types.Value{}, err
		}
		return c.Single(env, args[0])
	case c.Double != nil:
		if err := errs.CheckArgumentCount(2, len(args)); err != nil {
			return types.Value{}, err
		}
		return c.Double(env, args[0], args[1])
	case c.VarArgs != nil:
		return c.VarArgs(env, args)
	default:
		return types.Value{}, errs.NewCheckError(errs.CheckBadFunctionName,
			"registry entry %s has no native handle", c.Name)
	}
}
