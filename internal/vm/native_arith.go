package vm

import (
	"math"

	"sigil/internal/errs"
	"sigil/internal/types"
	"sigil/internal/wide"
)

// The integer natives work on one family at a time: every argument is
// int or every argument is uint, decided by the first. Overflow,
// underflow and division by zero are runtime errors, not values.

var intUnion = []string{"int", "uint"}

func errOverflow() error {
	return errs.NewRuntimeError(errs.RuntimeArithmeticOverflow,
		"arithmetic operation overflowed")
}

func errUnderflow() error {
	return errs.NewRuntimeError(errs.RuntimeArithmeticUnderflow,
		"arithmetic operation underflowed")
}

func errDivZero() error {
	return errs.NewRuntimeError(errs.RuntimeDivisionByZero, "division by zero")
}

type intOp func(a, b wide.Int128) (wide.Int128, error)

type uintOp func(a, b wide.Uint128) (wide.Uint128, error)

// foldArith folds args pairwise from the left, seeded with the first
// argument.
func foldArith(args []types.Value, fi intOp, fu uintOp) (types.Value, error) {
	if err := errs.CheckArgumentsAtLeast(1, len(args)); err != nil {
		return types.Value{}, err
	}
	switch args[0].Kind {
	case types.VKInt:
		acc := args[0].Int
		for _, v := range args[1:] {
			if v.Kind != types.VKInt {
				return types.Value{}, errs.TypeValue("int", v.String())
			}
			next, err := fi(acc, v.Int)
			if err != nil {
				return types.Value{}, err
			}
			acc = next
		}
		return types.MakeInt(acc), nil
	case types.VKUInt:
		acc := args[0].UInt
		for _, v := range args[1:] {
			if v.Kind != types.VKUInt {
				return types.Value{}, errs.TypeValue("uint", v.String())
			}
			next, err := fu(acc, v.UInt)
			if err != nil {
				return types.Value{}, err
			}
			acc = next
		}
		return types.MakeUInt(acc), nil
	default:
		return types.Value{}, errs.UnionTypeValue(intUnion, args[0].String())
	}
}

func nativeAdd(env *Environment, args []types.Value) (types.Value, error) {
	return foldArith(args,
		func(a, b wide.Int128) (wide.Int128, error) {
			v, ok := wide.IntAdd(a, b)
			if !ok {
				return wide.Int128{}, errOverflow()
			}
			return v, nil
		},
		func(a, b wide.Uint128) (wide.Uint128, error) {
			v, ok := wide.UintAdd(a, b)
			if !ok {
				return wide.Uint128{}, errOverflow()
			}
			return v, nil
		})
}

// nativeSub folds subtraction; with a single argument it negates.
func nativeSub(env *Environment, args []types.Value) (types.Value, error) {
	if err := errs.CheckArgumentsAtLeast(1, len(args)); err != nil {
		return types.Value{}, err
	}
	if len(args) == 1 {
		switch args[0].Kind {
		case types.VKInt:
			v, ok := wide.IntNeg(args[0].Int)
			if !ok {
				return types.Value{}, errOverflow()
			}
			return types.MakeInt(v), nil
		case types.VKUInt:
			if !args[0].UInt.IsZero() {
				return types.Value{}, errUnderflow()
			}
			return args[0], nil
		default:
			return types.Value{}, errs.UnionTypeValue(intUnion, args[0].String())
		}
	}
	return foldArith(args,
		func(a, b wide.Int128) (wide.Int128, error) {
			v, ok := wide.IntSub(a, b)
			if !ok {
				return wide.Int128{}, errOverflow()
			}
			return v, nil
		},
		func(a, b wide.Uint128) (wide.Uint128, error) {
			v, ok := wide.UintSub(a, b)
			if !ok {
				return wide.Uint128{}, errUnderflow()
			}
			return v, nil
		})
}

func nativeMul(env *Environment, args []types.Value) (types.Value, error) {
	return foldArith(args,
		func(a, b wide.Int128) (wide.Int128, error) {
			v, ok := wide.IntMul(a, b)
			if !ok {
				return wide.Int128{}, errOverflow()
			}
			return v, nil
		},
		func(a, b wide.Uint128) (wide.Uint128, error) {
			v, ok := wide.UintMul(a, b)
			if !ok {
				return wide.Uint128{}, errOverflow()
			}
			return v, nil
		})
}

func nativeDiv(env *Environment, args []types.Value) (types.Value, error) {
	return foldArith(args,
		func(a, b wide.Int128) (wide.Int128, error) {
			if b.IsZero() {
				return wide.Int128{}, errDivZero()
			}
			q, _, ok := wide.IntDivMod(a, b)
			if !ok {
				return wide.Int128{}, errOverflow()
			}
			return q, nil
		},
		func(a, b wide.Uint128) (wide.Uint128, error) {
			if b.IsZero() {
				return wide.Uint128{}, errDivZero()
			}
			q, _, _ := wide.UintDivMod(a, b)
			return q, nil
		})
}

func nativeMod(env *Environment, a, b types.Value) (types.Value, error) {
	switch a.Kind {
	case types.VKInt:
		if b.Kind != types.VKInt {
			return types.Value{}, errs.TypeValue("int", b.String())
		}
		if b.Int.IsZero() {
			return types.Value{}, errDivZero()
		}
		_, r, ok := wide.IntDivMod(a.Int, b.Int)
		if !ok {
			return types.Value{}, errOverflow()
		}
		return types.MakeInt(r), nil
	case types.VKUInt:
		if b.Kind != types.VKUInt {
			return types.Value{}, errs.TypeValue("uint", b.String())
		}
		if b.UInt.IsZero() {
			return types.Value{}, errDivZero()
		}
		_, r, _ := wide.UintDivMod(a.UInt, b.UInt)
		return types.MakeUInt(r), nil
	default:
		return types.Value{}, errs.UnionTypeValue(intUnion, a.String())
	}
}

func nativePow(env *Environment, a, b types.Value) (types.Value, error) {
	switch a.Kind {
	case types.VKInt:
		if b.Kind != types.VKInt {
			return types.Value{}, errs.TypeValue("int", b.String())
		}
		exp, err := powExponent(b)
		if err != nil {
			return types.Value{}, err
		}
		v, ok := wide.IntPow(a.Int, exp)
		if !ok {
			return types.Value{}, errOverflow()
		}
		return types.MakeInt(v), nil
	case types.VKUInt:
		if b.Kind != types.VKUInt {
			return types.Value{}, errs.TypeValue("uint", b.String())
		}
		exp, err := powExponent(b)
		if err != nil {
			return types.Value{}, err
		}
		v, ok := wide.UintPow(a.UInt, exp)
		if !ok {
			return types.Value{}, errOverflow()
		}
		return types.MakeUInt(v), nil
	default:
		return types.Value{}, errs.UnionTypeValue(intUnion, a.String())
	}
}

// powExponent narrows an exponent value to the uint32 range pow
// supports. Negative or oversized exponents are runtime errors.
func powExponent(v types.Value) (uint32, error) {
	errExp := errs.NewRuntimeError(errs.RuntimeArithmetic,
		"pow exponent must be a non-negative integer below 2^32")
	switch v.Kind {
	case types.VKInt:
		if v.Int.IsNegative() {
			return 0, errExp
		}
		n, ok := v.Int.Abs().Uint64()
		if !ok || n > math.MaxUint32 {
			return 0, errExp
		}
		return uint32(n), nil
	case types.VKUInt:
		n, ok := v.UInt.Uint64()
		if !ok || n > math.MaxUint32 {
			return 0, errExp
		}
		return uint32(n), nil
	default:
		return 0, errs.UnionTypeValue(intUnion, v.String())
	}
}

func nativeXor(env *Environment, a, b types.Value) (types.Value, error) {
	switch a.Kind {
	case types.VKInt:
		if b.Kind != types.VKInt {
			return types.Value{}, errs.TypeValue("int", b.String())
		}
		return types.MakeInt(wide.IntXor(a.Int, b.Int)), nil
	case types.VKUInt:
		if b.Kind != types.VKUInt {
			return types.Value{}, errs.TypeValue("uint", b.String())
		}
		return types.MakeUInt(wide.UintXor(a.UInt, b.UInt)), nil
	default:
		return types.Value{}, errs.UnionTypeValue(intUnion, a.String())
	}
}

// compareValues orders two integers of the same family.
func compareValues(a, b types.Value) (int, error) {
	switch a.Kind {
	case types.VKInt:
		if b.Kind != types.VKInt {
			return 0, errs.TypeValue("int", b.String())
		}
		return a.Int.Cmp(b.Int), nil
	case types.VKUInt:
		if b.Kind != types.VKUInt {
			return 0, errs.TypeValue("uint", b.String())
		}
		return a.UInt.Cmp(b.UInt), nil
	default:
		return 0, errs.UnionTypeValue(intUnion, a.String())
	}
}

func nativeGeq(env *Environment, a, b types.Value) (types.Value, error) {
	c, err := compareValues(a, b)
	if err != nil {
		return types.Value{}, err
	}
	return types.MakeBool(c >= 0), nil
}

func nativeLeq(env *Environment, a, b types.Value) (types.Value, error) {
	c, err := compareValues(a, b)
	if err != nil {
		return types.Value{}, err
	}
	return types.MakeBool(c <= 0), nil
}

func nativeGt(env *Environment, a, b types.Value) (types.Value, error) {
	c, err := compareValues(a, b)
	if err != nil {
		return types.Value{}, err
	}
	return types.MakeBool(c > 0), nil
}

func nativeLt(env *Environment, a, b types.Value) (types.Value, error) {
	c, err := compareValues(a, b)
	if err != nil {
		return types.Value{}, err
	}
	return types.MakeBool(c < 0), nil
}

// nativeToInt reinterprets a uint as an int, failing above the signed
// maximum.
func nativeToInt(env *Environment, arg types.Value) (types.Value, error) {
	if arg.Kind != types.VKUInt {
		return types.Value{}, errs.TypeValue("uint", arg.String())
	}
	v, ok := arg.UInt.ToInt128()
	if !ok {
		return types.Value{}, errOverflow()
	}
	return types.MakeInt(v), nil
}

// nativeToUInt reinterprets an int as a uint, failing below zero.
func nativeToUInt(env *Environment, arg types.Value) (types.Value, error) {
	if arg.Kind != types.VKInt {
		return types.Value{}, errs.TypeValue("int", arg.String())
	}
	v, ok := arg.Int.ToUint128()
	if !ok {
		return types.Value{}, errUnderflow()
	}
	return types.MakeUInt(v), nil
}
