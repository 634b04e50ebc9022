package vm

import (
	"strconv"

	"sigil/internal/ast"
	"sigil/internal/costs"
	"sigil/internal/errs"
	"sigil/internal/ident"
	"sigil/internal/trace"
	"sigil/internal/types"
)

// Eval evaluates one resolved expression in ctx. Literal nodes yield
// their payload, atoms resolve through the variable lookup chain, and
// lists dispatch on their head atom. Trait nodes never reach value
// position in a resolved tree; hitting one is a check error.
func Eval(expr *ast.Expr, env *Environment, ctx *LocalContext) (types.Value, error) {
	switch expr.Kind {
	case ast.ExprAtomValue, ast.ExprLiteralValue:
		return expr.Value, nil
	case ast.ExprAtom:
		return lookupVariable(expr.Name, env, ctx)
	case ast.ExprList:
		return evalList(expr.List, env, ctx)
	default:
		return types.Value{}, errs.NewCheckError(errs.CheckUnevaluableExpression,
			"cannot evaluate a %s expression", expr.Kind)
	}
}

// lookupVariable resolves a bare name. Resolution order is local
// bindings, then reserved variables, then contract constants. The
// lookup cost scales with the local context depth because each parent
// frame is a separate probe.
func lookupVariable(name ident.Name, env *Environment, ctx *LocalContext) (types.Value, error) {
	if err := env.charge(costs.CostLookupVariable, uint64(ctx.Depth())); err != nil {
		return types.Value{}, err
	}
	if v, ok := ctx.Lookup(name); ok {
		return v, nil
	}
	v, reserved, err := lookupReservedVariable(name, env)
	if err != nil {
		return types.Value{}, err
	}
	if reserved {
		return v, nil
	}
	if env.contract != nil {
		if c, ok := env.contract.LookupConstant(name); ok {
			return c, nil
		}
	}
	return types.Value{}, errs.NewCheckError(errs.CheckUndefinedVariable,
		"use of unresolved variable %q", name)
}

func evalList(children []ast.Expr, env *Environment, ctx *LocalContext) (types.Value, error) {
	if len(children) == 0 {
		return types.Value{}, errs.NewCheckError(errs.CheckNonFunctionApplication,
			"cannot apply an empty expression")
	}
	name, ok := children[0].MatchAtom()
	if !ok {
		return types.Value{}, errs.NewCheckError(errs.CheckBadFunctionName,
			"expression in operator position is not a name")
	}
	return apply(name, children[1:], env, ctx)
}

// apply dispatches one operator. Reserved operators win over contract
// functions unconditionally, so a contract can never redefine them.
func apply(name ident.Name, args []ast.Expr, env *Environment, ctx *LocalContext) (types.Value, error) {
	if err := env.charge(costs.CostLookupFunction, 0); err != nil {
		return types.Value{}, err
	}
	callable, ok := LookupReserved(name)
	if !ok {
		if isDefineKeyword(name) {
			return types.Value{}, errs.NewCheckError(errs.CheckDefineNotAtTopLevel,
				"%s is allowed only at the top level of a contract", name)
		}
		return applyDefined(name, args, env, ctx)
	}

	depth := env.traceDepth(ctx)
	emitDispatchBegin(env, depth, callable.Name, len(args))
	var (
		result types.Value
		err    error
	)
	if callable.Kind == CallableSpecial {
		result, err = callable.Special(args, env, ctx)
	} else {
		result, err = applyNativeForm(&callable, args, env, ctx)
	}
	emitDispatchEnd(env, depth, callable.Name, err)
	return result, err
}

// applyNativeForm charges the operator cost up front, sized by the
// syntactic argument count, then evaluates arguments left to right and
// hands the values to the native handler. Charging precedes argument
// evaluation so an exhausted budget stops before any work runs.
func applyNativeForm(c *Callable, args []ast.Expr, env *Environment, ctx *LocalContext) (types.Value, error) {
	if err := env.charge(c.Cost, uint64(len(args))); err != nil {
		return types.Value{}, err
	}
	evaluated := make([]types.Value, len(args))
	for i := range args {
		v, err := Eval(&args[i], env, ctx)
		if err != nil {
			return types.Value{}, err
		}
		evaluated[i] = v
	}
	return c.applyNative(env, evaluated)
}

func applyDefined(name ident.Name, args []ast.Expr, env *Environment, ctx *LocalContext) (types.Value, error) {
	var fn *DefinedFunction
	if env.contract != nil {
		fn, _ = env.contract.LookupFunction(name)
	}
	if fn == nil {
		return types.Value{}, errs.NewCheckError(errs.CheckUndefinedFunction,
			"use of unresolved function %q", name)
	}
	if err := env.charge(costs.CostUserFunctionApplication, uint64(len(args))); err != nil {
		return types.Value{}, err
	}
	evaluated := make([]types.Value, len(args))
	for i := range args {
		v, err := Eval(&args[i], env, ctx)
		if err != nil {
			return types.Value{}, err
		}
		evaluated[i] = v
	}

	depth := env.traceDepth(ctx)
	emitDispatchBegin(env, depth, "defined:"+string(name), len(args))
	result, err := fn.Apply(evaluated, env)
	emitDispatchEnd(env, depth, "defined:"+string(name), err)
	return result, err
}

func emitDispatchBegin(env *Environment, depth int, name string, argc int) {
	if !env.tracer.Level().ShouldEmit(trace.ScopeDispatch) {
		return
	}
	env.tracer.Emit(trace.Event{
		Kind:   trace.KindBegin,
		Scope:  trace.ScopeDispatch,
		Depth:  depth,
		Name:   name,
		Detail: strconv.Itoa(argc) + " args",
	})
}

func emitDispatchEnd(env *Environment, depth int, name string, err error) {
	if !env.tracer.Level().ShouldEmit(trace.ScopeDispatch) {
		return
	}
	env.tracer.Emit(trace.Event{
		Kind:   trace.KindEnd,
		Scope:  trace.ScopeDispatch,
		Depth:  depth,
		Name:   name,
		Detail: outcomeLabel(err),
		Extra: map[string]string{
			"consumed": strconv.FormatUint(env.cost.Consumed(), 10),
		},
	})
}

// outcomeLabel classifies an evaluation result for trace consumers.
func outcomeLabel(err error) string {
	if err == nil {
		return "value"
	}
	if _, ok := AsShortReturn(err); ok {
		return "short-return"
	}
	if _, ok := errs.AsCheck(err); ok {
		return "check-error"
	}
	if _, ok := errs.AsRuntime(err); ok {
		return "runtime-error"
	}
	return "error"
}
