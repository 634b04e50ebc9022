package vm

import (
	"sigil/internal/ast"
	"sigil/internal/costs"
	"sigil/internal/errs"
	"sigil/internal/ident"
	"sigil/internal/types"
)

// specialListCons builds a list from its evaluated arguments. The
// element type is the least supertype of every element in order;
// elements with no common type are a check error.
func specialListCons(args []ast.Expr, env *Environment, ctx *LocalContext) (types.Value, error) {
	if err := env.charge(costs.CostListCons, uint64(len(args))); err != nil {
		return types.Value{}, err
	}
	values := make([]types.Value, len(args))
	for i := range args {
		v, err := Eval(&args[i], env, ctx)
		if err != nil {
			return types.Value{}, err
		}
		values[i] = v
	}
	return types.MakeList(values)
}

// specialAppend adds one element to the end of a list, re-unioning the
// element type so the result admits both the old elements and the new.
func specialAppend(args []ast.Expr, env *Environment, ctx *LocalContext) (types.Value, error) {
	if err := errs.CheckArgumentCount(2, len(args)); err != nil {
		return types.Value{}, err
	}
	list, err := Eval(&args[0], env, ctx)
	if err != nil {
		return types.Value{}, err
	}
	if list.Kind != types.VKList {
		return types.Value{}, errs.TypeValue("list", list.String())
	}
	if err := env.charge(costs.CostAppend, uint64(len(list.List))+1); err != nil {
		return types.Value{}, err
	}
	elem, err := Eval(&args[1], env, ctx)
	if err != nil {
		return types.Value{}, err
	}
	combined := make([]types.Value, 0, len(list.List)+1)
	combined = append(combined, list.List...)
	combined = append(combined, elem)
	return types.MakeList(combined)
}

// specialConcat joins two sequences of the same family: list with list,
// buffer with buffer.
func specialConcat(args []ast.Expr, env *Environment, ctx *LocalContext) (types.Value, error) {
	if err := errs.CheckArgumentCount(2, len(args)); err != nil {
		return types.Value{}, err
	}
	a, err := Eval(&args[0], env, ctx)
	if err != nil {
		return types.Value{}, err
	}
	b, err := Eval(&args[1], env, ctx)
	if err != nil {
		return types.Value{}, err
	}
	switch a.Kind {
	case types.VKList:
		if b.Kind != types.VKList {
			return types.Value{}, errs.TypeValue("list", b.String())
		}
		if err := env.charge(costs.CostConcat, uint64(len(a.List)+len(b.List))); err != nil {
			return types.Value{}, err
		}
		combined := make([]types.Value, 0, len(a.List)+len(b.List))
		combined = append(combined, a.List...)
		combined = append(combined, b.List...)
		return types.MakeList(combined)
	case types.VKBuffer:
		if b.Kind != types.VKBuffer {
			return types.Value{}, errs.TypeValue("buff", b.String())
		}
		if err := env.charge(costs.CostConcat, uint64(len(a.Buffer)+len(b.Buffer))); err != nil {
			return types.Value{}, err
		}
		combined := make([]byte, 0, len(a.Buffer)+len(b.Buffer))
		combined = append(combined, a.Buffer...)
		combined = append(combined, b.Buffer...)
		return types.MakeBuffer(combined)
	default:
		return types.Value{}, errs.UnionTypeValue([]string{"list", "buff"}, a.String())
	}
}

// specialMap applies a named one-argument function to every element and
// collects the results into a new list.
func specialMap(args []ast.Expr, env *Environment, ctx *LocalContext) (types.Value, error) {
	fnName, list, err := seqFunctionArgs(args, env, ctx)
	if err != nil {
		return types.Value{}, err
	}
	if err := env.charge(costs.CostMap, uint64(len(list.List))); err != nil {
		return types.Value{}, err
	}
	out := make([]types.Value, len(list.List))
	for i, elem := range list.List {
		v, err := applyByName(fnName, []types.Value{elem}, env)
		if err != nil {
			return types.Value{}, err
		}
		out[i] = v
	}
	return types.MakeList(out)
}

// specialFilter keeps the elements the named predicate accepts. The
// result reuses the input's element type: dropping elements never
// widens it.
func specialFilter(args []ast.Expr, env *Environment, ctx *LocalContext) (types.Value, error) {
	fnName, list, err := seqFunctionArgs(args, env, ctx)
	if err != nil {
		return types.Value{}, err
	}
	if err := env.charge(costs.CostFilter, uint64(len(list.List))); err != nil {
		return types.Value{}, err
	}
	kept := make([]types.Value, 0, len(list.List))
	for _, elem := range list.List {
		v, err := applyByName(fnName, []types.Value{elem}, env)
		if err != nil {
			return types.Value{}, err
		}
		keep, ok := v.AsBool()
		if !ok {
			return types.Value{}, errs.TypeValue("bool", v.String())
		}
		if keep {
			kept = append(kept, elem)
		}
	}
	return types.Value{Kind: types.VKList, List: kept, ListElem: list.ListElem}, nil
}

// specialFold threads an accumulator through a named two-argument
// function, element first, accumulator second.
func specialFold(args []ast.Expr, env *Environment, ctx *LocalContext) (types.Value, error) {
	if err := errs.CheckArgumentCount(3, len(args)); err != nil {
		return types.Value{}, err
	}
	fnName, ok := args[0].MatchAtom()
	if !ok {
		return types.Value{}, errs.NewCheckError(errs.CheckExpectedName,
			"fold names its function directly")
	}
	list, err := Eval(&args[1], env, ctx)
	if err != nil {
		return types.Value{}, err
	}
	if list.Kind != types.VKList {
		return types.Value{}, errs.TypeValue("list", list.String())
	}
	acc, err := Eval(&args[2], env, ctx)
	if err != nil {
		return types.Value{}, err
	}
	if err := env.charge(costs.CostFold, uint64(len(list.List))); err != nil {
		return types.Value{}, err
	}
	for _, elem := range list.List {
		acc, err = applyByName(fnName, []types.Value{elem, acc}, env)
		if err != nil {
			return types.Value{}, err
		}
	}
	return acc, nil
}

// seqFunctionArgs validates the shared (function-name list) shape of map
// and filter.
func seqFunctionArgs(args []ast.Expr, env *Environment, ctx *LocalContext) (ident.Name, types.Value, error) {
	if err := errs.CheckArgumentCount(2, len(args)); err != nil {
		return "", types.Value{}, err
	}
	fnName, ok := args[0].MatchAtom()
	if !ok {
		return "", types.Value{}, errs.NewCheckError(errs.CheckExpectedName,
			"sequence operators name their function directly")
	}
	list, err := Eval(&args[1], env, ctx)
	if err != nil {
		return "", types.Value{}, err
	}
	if list.Kind != types.VKList {
		return "", types.Value{}, errs.TypeValue("list", list.String())
	}
	return fnName, list, nil
}

// applyByName invokes a function referenced by bare name with values
// that are already evaluated. Reserved natives apply directly; special
// forms cannot be passed by name because they consume raw expressions,
// not values.
func applyByName(name ident.Name, args []types.Value, env *Environment) (types.Value, error) {
	if callable, ok := LookupReserved(name); ok {
		if callable.Kind == CallableSpecial {
			return types.Value{}, errs.NewCheckError(errs.CheckBadFunctionName,
				"%s is a special form and cannot be passed by name", name)
		}
		if err := env.charge(callable.Cost, uint64(len(args))); err != nil {
			return types.Value{}, err
		}
		return callable.applyNative(env, args)
	}
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
	return fn.Apply(args, env)
}
