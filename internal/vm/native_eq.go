package vm

import (
	"sigil/internal/errs"
	"sigil/internal/types"
)

// nativeEq compares every argument to the first. Zero or one argument
// is trivially true. The arguments must share a least supertype,
// folded across all of them in order; the fold always runs to
// completion, so a type mismatch anywhere is a check error even when
// an earlier value comparison already settled the answer.
func nativeEq(env *Environment, args []types.Value) (types.Value, error) {
	if len(args) < 2 {
		return types.MakeBool(true), nil
	}
	union := types.NoType()
	for _, v := range args {
		next, ok := types.LeastSupertype(union, types.TypeOf(v))
		if !ok {
			return types.Value{}, errs.NewCheckError(errs.CheckUnionTypeValueError,
				"arguments have no common type: %s does not admit %s",
				union, types.TypeOf(v))
		}
		union = next
	}
	first := args[0]
	for _, v := range args[1:] {
		if !first.Equal(v) {
			return types.MakeBool(false), nil
		}
	}
	return types.MakeBool(true), nil
}
