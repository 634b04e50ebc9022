package vm

import (
	"testing"

	"sigil/internal/ast"
	"sigil/internal/errs"
	"sigil/internal/types"
)

func TestEquality(t *testing.T) {
	cases := []struct {
		name string
		form ast.Expr
		want bool
	}{
		{"no arguments", call("is-eq"), true},
		{"one argument", call("is-eq", intLit(1)), true},
		{"equal ints", call("is-eq", intLit(1), intLit(1), intLit(1)), true},
		{"unequal ints", call("is-eq", intLit(1), intLit(2)), false},
		{"equal uints", call("is-eq", uintLit(3), uintLit(3)), true},
		{"bools", call("is-eq", boolLit(true), boolLit(true)), true},
		{"buffers", call("is-eq", bufLit(1, 2), bufLit(1, 2)), true},
		{"buffer lengths differ", call("is-eq", bufLit(1, 2), bufLit(1)), false},
		{"none against some", call("is-eq", atom("none"), someLit(1)), false},
		{"ok against err", call("is-eq", okLit(1), errLit(2)), false},
		{"equal somes", call("is-eq", someLit(4), someLit(4)), true},
		{"equal lists", call("is-eq",
			call("list", intLit(1), intLit(2)),
			call("list", intLit(1), intLit(2))), true},
		{"list contents differ", call("is-eq",
			call("list", intLit(1), intLit(2)),
			call("list", intLit(2), intLit(1))), false},
	}
	env := newTestEnv()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := evalIn(env, tc.form)
			if err != nil {
				t.Fatal(err)
			}
			wantValue(t, v, types.MakeBool(tc.want))
		})
	}
}

func TestEqualityTypeUnion(t *testing.T) {
	env := newTestEnv()

	_, err := evalIn(env, call("is-eq", intLit(1), uintLit(1)))
	wantCheckCode(t, err, errs.CheckUnionTypeValueError)

	// The union folds across every argument before values are compared,
	// so a late mismatch wins over an early settled inequality.
	_, err = evalIn(env, call("is-eq", intLit(1), intLit(2), uintLit(3)))
	wantCheckCode(t, err, errs.CheckUnionTypeValueError)

	_, err = evalIn(env, call("is-eq", boolLit(true), intLit(0)))
	wantCheckCode(t, err, errs.CheckUnionTypeValueError)
}
