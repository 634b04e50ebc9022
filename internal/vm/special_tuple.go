package vm

import (
	"sigil/internal/ast"
	"sigil/internal/costs"
	"sigil/internal/errs"
	"sigil/internal/ident"
	"sigil/internal/types"
)

// specialTupleCons builds a tuple from (name expression) pairs. Field
// names are labels, not bindings, so reserved words are fine here; only
// duplicates are rejected. Values evaluate against the outer context.
func specialTupleCons(args []ast.Expr, env *Environment, ctx *LocalContext) (types.Value, error) {
	if err := errs.CheckArgumentsAtLeast(1, len(args)); err != nil {
		return types.Value{}, err
	}
	if err := env.charge(costs.CostTupleCons, uint64(len(args))); err != nil {
		return types.Value{}, err
	}
	entries := make([]types.TupleEntry, 0, len(args))
	err := handleBindingList(args, func(name ident.Name, expr *ast.Expr) error {
		v, err := Eval(expr, env, ctx)
		if err != nil {
			return err
		}
		entries = append(entries, types.TupleEntry{Name: name, Value: v})
		return nil
	})
	if err != nil {
		return types.Value{}, err
	}
	return types.MakeTuple(entries)
}

// specialTupleGet projects one field out of a tuple. Applied to an
// optional tuple it stays inside the optional: none passes through and
// (some tuple) yields (some field), which lets lookups compose with
// map-get? without unwrapping first.
func specialTupleGet(args []ast.Expr, env *Environment, ctx *LocalContext) (types.Value, error) {
	if err := errs.CheckArgumentCount(2, len(args)); err != nil {
		return types.Value{}, err
	}
	field, ok := args[0].MatchAtom()
	if !ok {
		return types.Value{}, errs.NewCheckError(errs.CheckExpectedName,
			"get names its field directly")
	}
	value, err := Eval(&args[1], env, ctx)
	if err != nil {
		return types.Value{}, err
	}
	switch value.Kind {
	case types.VKTuple:
		v, err := tupleField(value, field, env)
		if err != nil {
			return types.Value{}, err
		}
		return v, nil
	case types.VKOptional:
		if value.Optional == nil {
			return types.MakeNone(), nil
		}
		inner := *value.Optional
		if inner.Kind != types.VKTuple {
			return types.Value{}, errs.TypeValue("tuple", inner.String())
		}
		v, err := tupleField(inner, field, env)
		if err != nil {
			return types.Value{}, err
		}
		return types.MakeSome(v), nil
	default:
		return types.Value{}, errs.TypeValue("tuple", value.String())
	}
}

func tupleField(tuple types.Value, field ident.Name, env *Environment) (types.Value, error) {
	if err := env.charge(costs.CostTupleGet, uint64(tuple.Tuple.Len())); err != nil {
		return types.Value{}, err
	}
	v, ok := tuple.Tuple.Get(field)
	if !ok {
		return types.Value{}, errs.NewCheckError(errs.CheckNoSuchTupleField,
			"tuple has no field %q", field)
	}
	return v, nil
}
