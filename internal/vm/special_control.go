package vm

import (
	"sigil/internal/ast"
	"sigil/internal/costs"
	"sigil/internal/errs"
	"sigil/internal/ident"
	"sigil/internal/types"
)

// specialIf evaluates the condition, then exactly one branch. The
// untaken branch is never evaluated and never charged.
func specialIf(args []ast.Expr, env *Environment, ctx *LocalContext) (types.Value, error) {
	if err := errs.CheckArgumentCount(3, len(args)); err != nil {
		return types.Value{}, err
	}
	if err := env.charge(costs.CostIf, 0); err != nil {
		return types.Value{}, err
	}
	cond, err := Eval(&args[0], env, ctx)
	if err != nil {
		return types.Value{}, err
	}
	b, ok := cond.AsBool()
	if !ok {
		return types.Value{}, errs.TypeValue("bool", cond.String())
	}
	if b {
		return Eval(&args[1], env, ctx)
	}
	return Eval(&args[2], env, ctx)
}

// specialAsserts returns true when the condition holds. When it fails,
// the second argument is evaluated and its value rides a short-return
// out to the nearest function boundary.
func specialAsserts(args []ast.Expr, env *Environment, ctx *LocalContext) (types.Value, error) {
	if err := errs.CheckArgumentCount(2, len(args)); err != nil {
		return types.Value{}, err
	}
	if err := env.charge(costs.CostAsserts, 0); err != nil {
		return types.Value{}, err
	}
	cond, err := Eval(&args[0], env, ctx)
	if err != nil {
		return types.Value{}, err
	}
	b, ok := cond.AsBool()
	if !ok {
		return types.Value{}, errs.TypeValue("bool", cond.String())
	}
	if b {
		return types.MakeBool(true), nil
	}
	thrown, err := Eval(&args[1], env, ctx)
	if err != nil {
		return types.Value{}, err
	}
	return types.Value{}, NewShortReturn(ShortAssertionFailed, thrown)
}

// specialLet binds names in a child context and evaluates its body
// expressions in order, returning the last value. Binding expressions
// evaluate against the outer context, so the bindings of one let never
// see each other.
func specialLet(args []ast.Expr, env *Environment, ctx *LocalContext) (types.Value, error) {
	if err := errs.CheckArgumentsAtLeast(2, len(args)); err != nil {
		return types.Value{}, err
	}
	bindings, ok := args[0].MatchList()
	if !ok {
		return types.Value{}, errs.NewCheckError(errs.CheckBadSyntaxBinding,
			"let expects a list of (name expression) pairs")
	}
	inner, err := ctx.Extend()
	if err != nil {
		return types.Value{}, err
	}
	if err := env.charge(costs.CostLet, uint64(len(bindings))); err != nil {
		return types.Value{}, err
	}
	err = handleBindingList(bindings, func(name ident.Name, expr *ast.Expr) error {
		if err := checkBindable(name, env, inner); err != nil {
			return err
		}
		v, err := Eval(expr, env, ctx)
		if err != nil {
			return err
		}
		inner.bind(name, v)
		return nil
	})
	if err != nil {
		return types.Value{}, err
	}
	var last types.Value
	for i := 1; i < len(args); i++ {
		last, err = Eval(&args[i], env, inner)
		if err != nil {
			return types.Value{}, err
		}
	}
	return last, nil
}

// specialAsContract evaluates its body with the contract's own principal
// as both sender and caller. The swap lives only in the child
// environment, so every exit path, including errors and short-returns,
// restores the original identity for the caller's remaining work.
func specialAsContract(args []ast.Expr, env *Environment, ctx *LocalContext) (types.Value, error) {
	if err := errs.CheckArgumentCount(1, len(args)); err != nil {
		return types.Value{}, err
	}
	if env.contract == nil {
		return types.Value{}, errs.NewRuntimeError(errs.RuntimeNoSenderInContext,
			"as-contract outside a contract")
	}
	if err := env.charge(costs.CostAsContract, 0); err != nil {
		return types.Value{}, err
	}
	self := types.ContractPrincipalData(env.contract.ID())
	nested := env.nestAsPrincipal(self)
	return Eval(&args[0], nested, ctx)
}

// handleBindingList walks (name expression) pairs, calling fn for each.
// Anything not shaped as a two-element list headed by an atom is a bad
// syntax binding.
func handleBindingList(bindings []ast.Expr, fn func(name ident.Name, expr *ast.Expr) error) error {
	for i := range bindings {
		pair, ok := bindings[i].MatchList()
		if !ok || len(pair) != 2 {
			return errBadBinding()
		}
		name, ok := pair[0].MatchAtom()
		if !ok {
			return errBadBinding()
		}
		if err := fn(name, &pair[1]); err != nil {
			return err
		}
	}
	return nil
}

func errBadBinding() error {
	return errs.NewCheckError(errs.CheckBadSyntaxBinding,
		"binding entries must be (name expression) pairs")
}

// checkBindable rejects names a binding form may not claim: reserved
// words, contract functions, and names already bound in the same frame.
// Outer-scope names stay bindable; inner frames shadow them.
func checkBindable(name ident.Name, env *Environment, frame *LocalContext) error {
	if IsReserved(name) {
		return errs.NewCheckError(errs.CheckNameAlreadyUsed,
			"%s is a reserved word", name)
	}
	if env.contract != nil {
		if _, ok := env.contract.LookupFunction(name); ok {
			return errs.NewCheckError(errs.CheckNameAlreadyUsed,
				"%s names a function of this contract", name)
		}
	}
	if frame.lookupLocal(name) {
		return errs.NewCheckError(errs.CheckNameAlreadyUsed,
			"%s is already bound in this scope", name)
	}
	return nil
}
