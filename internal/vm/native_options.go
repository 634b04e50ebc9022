package vm

import (
	"sigil/internal/errs"
	"sigil/internal/types"
)

// Optionals and responses share the unwrap surface. The ...! variants
// short-return their failure value to the nearest function boundary,
// the -panic variants raise a runtime error, and try! forwards the
// failure side unchanged so callers see the same none or (err v).

var unwrappableUnion = []string{"optional", "response"}

func errExpectedOptional(v types.Value) error {
	return errs.NewCheckError(errs.CheckExpectedOptionalValue,
		"expecting an optional value, found %s", v)
}

func errExpectedResponse(v types.Value) error {
	return errs.NewCheckError(errs.CheckExpectedResponseValue,
		"expecting a response value, found %s", v)
}

func nativeSome(env *Environment, arg types.Value) (types.Value, error) {
	return types.MakeSome(arg), nil
}

func nativeOk(env *Environment, arg types.Value) (types.Value, error) {
	return types.MakeOk(arg), nil
}

func nativeErr(env *Environment, arg types.Value) (types.Value, error) {
	return types.MakeErr(arg), nil
}

// nativeDefaultTo substitutes the default for none and unwraps some.
func nativeDefaultTo(env *Environment, def, input types.Value) (types.Value, error) {
	if input.Kind != types.VKOptional {
		return types.Value{}, errExpectedOptional(input)
	}
	if input.Optional == nil {
		return def, nil
	}
	return *input.Optional, nil
}

// nativeUnwrapRet yields the payload of (some v) or (ok v); on none or
// (err v) it short-returns the second argument from the enclosing
// function.
func nativeUnwrapRet(env *Environment, input, thrown types.Value) (types.Value, error) {
	switch input.Kind {
	case types.VKOptional:
		if input.Optional == nil {
			return types.Value{}, NewShortReturn(ShortExpectedValue, thrown)
		}
		return *input.Optional, nil
	case types.VKResponse:
		if !input.Response.Committed {
			return types.Value{}, NewShortReturn(ShortExpectedValue, thrown)
		}
		return input.Response.Value, nil
	default:
		return types.Value{}, errs.UnionTypeValue(unwrappableUnion, input.String())
	}
}

// nativeUnwrapErrRet is the mirror: it yields the payload of (err v)
// and short-returns on (ok v).
func nativeUnwrapErrRet(env *Environment, input, thrown types.Value) (types.Value, error) {
	if input.Kind != types.VKResponse {
		return types.Value{}, errExpectedResponse(input)
	}
	if input.Response.Committed {
		return types.Value{}, NewShortReturn(ShortExpectedValue, thrown)
	}
	return input.Response.Value, nil
}

func nativeUnwrapPanic(env *Environment, input types.Value) (types.Value, error) {
	switch input.Kind {
	case types.VKOptional:
		if input.Optional == nil {
			return types.Value{}, errs.NewRuntimeError(errs.RuntimeUnwrapFailure,
				"attempted to unwrap none")
		}
		return *input.Optional, nil
	case types.VKResponse:
		if !input.Response.Committed {
			return types.Value{}, errs.NewRuntimeError(errs.RuntimeUnwrapFailure,
				"attempted to unwrap an err response")
		}
		return input.Response.Value, nil
	default:
		return types.Value{}, errs.UnionTypeValue(unwrappableUnion, input.String())
	}
}

func nativeUnwrapErrPanic(env *Environment, input types.Value) (types.Value, error) {
	if input.Kind != types.VKResponse {
		return types.Value{}, errExpectedResponse(input)
	}
	if input.Response.Committed {
		return types.Value{}, errs.NewRuntimeError(errs.RuntimeUnwrapFailure,
			"attempted to unwrap-err an ok response")
	}
	return input.Response.Value, nil
}

// nativeTryRet unwraps the success side. The failure side is forwarded
// as-is via short-return, none as none and (err v) whole, so the caller
// of the enclosing function can keep matching on it.
func nativeTryRet(env *Environment, input types.Value) (types.Value, error) {
	switch input.Kind {
	case types.VKOptional:
		if input.Optional == nil {
			return types.Value{}, NewShortReturn(ShortExpectedValue, types.MakeNone())
		}
		return *input.Optional, nil
	case types.VKResponse:
		if !input.Response.Committed {
			return types.Value{}, NewShortReturn(ShortExpectedValue, input)
		}
		return input.Response.Value, nil
	default:
		return types.Value{}, errs.UnionTypeValue(unwrappableUnion, input.String())
	}
}

func nativeIsOk(env *Environment, input types.Value) (types.Value, error) {
	if input.Kind != types.VKResponse {
		return types.Value{}, errExpectedResponse(input)
	}
	return types.MakeBool(input.Response.Committed), nil
}

func nativeIsErr(env *Environment, input types.Value) (types.Value, error) {
	if input.Kind != types.VKResponse {
		return types.Value{}, errExpectedResponse(input)
	}
	return types.MakeBool(!input.Response.Committed), nil
}

func nativeIsSome(env *Environment, input types.Value) (types.Value, error) {
	if input.Kind != types.VKOptional {
		return types.Value{}, errExpectedOptional(input)
	}
	return types.MakeBool(input.Optional != nil), nil
}

func nativeIsNone(env *Environment, input types.Value) (types.Value, error) {
	if input.Kind != types.VKOptional {
		return types.Value{}, errExpectedOptional(input)
	}
	return types.MakeBool(input.Optional == nil), nil
}
