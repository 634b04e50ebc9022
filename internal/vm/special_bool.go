package vm

import (
	"sigil/internal/ast"
	"sigil/internal/costs"
	"sigil/internal/errs"
	"sigil/internal/types"
)

// and and or are special forms, not natives: they stop evaluating at the
// first deciding operand. The full syntactic operand count is still
// charged up front so laziness never changes the bill.

func specialAnd(args []ast.Expr, env *Environment, ctx *LocalContext) (types.Value, error) {
	if err := errs.CheckArgumentsAtLeast(1, len(args)); err != nil {
		return types.Value{}, err
	}
	if err := env.charge(costs.CostAnd, uint64(len(args))); err != nil {
		return types.Value{}, err
	}
	for i := range args {
		v, err := Eval(&args[i], env, ctx)
		if err != nil {
			return types.Value{}, err
		}
		b, ok := v.AsBool()
		if !ok {
			return types.Value{}, errs.TypeValue("bool", v.String())
		}
		if !b {
			return types.MakeBool(false), nil
		}
	}
	return types.MakeBool(true), nil
}

func specialOr(args []ast.Expr, env *Environment, ctx *LocalContext) (types.Value, error) {
	if err := errs.CheckArgumentsAtLeast(1, len(args)); err != nil {
		return types.Value{}, err
	}
	if err := env.charge(costs.CostOr, uint64(len(args))); err != nil {
		return types.Value{}, err
	}
	for i := range args {
		v, err := Eval(&args[i], env, ctx)
		if err != nil {
			return types.Value{}, err
		}
		b, ok := v.AsBool()
		if !ok {
			return types.Value{}, errs.TypeValue("bool", v.String())
		}
		if b {
			return types.MakeBool(true), nil
		}
	}
	return types.MakeBool(false), nil
}
