package vm

import (
	"sigil/internal/errs"
	"sigil/internal/trace"
	"sigil/internal/types"
)

func nativeNot(env *Environment, arg types.Value) (types.Value, error) {
	b, ok := arg.AsBool()
	if !ok {
		return types.Value{}, errs.TypeValue("bool", arg.String())
	}
	return types.MakeBool(!b), nil
}

// nativeBegin yields its last argument. The arguments before it were
// already evaluated for effect by the dispatch path.
func nativeBegin(env *Environment, args []types.Value) (types.Value, error) {
	if err := errs.CheckArgumentsAtLeast(1, len(args)); err != nil {
		return types.Value{}, err
	}
	return args[len(args)-1], nil
}

// nativePrint is the identity function. Its output is a trace event,
// not program output, so evaluation results never depend on whether
// anyone is watching.
func nativePrint(env *Environment, arg types.Value) (types.Value, error) {
	if env.tracer.Level().ShouldEmit(trace.ScopeDetail) {
		env.tracer.Emit(trace.Event{
			Kind:   trace.KindPoint,
			Scope:  trace.ScopeDetail,
			Name:   "print",
			Detail: arg.String(),
		})
	}
	return arg, nil
}

func nativeLen(env *Environment, arg types.Value) (types.Value, error) {
	switch arg.Kind {
	case types.VKList:
		return types.MakeUIntFromUint64(uint64(len(arg.List))), nil
	case types.VKBuffer:
		return types.MakeUIntFromUint64(uint64(len(arg.Buffer))), nil
	default:
		return types.Value{}, errs.UnionTypeValue([]string{"list", "buff"}, arg.String())
	}
}
