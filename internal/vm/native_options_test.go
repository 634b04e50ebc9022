package vm

import (
	"testing"

	"sigil/internal/ast"
	"sigil/internal/errs"
	"sigil/internal/types"
)

func someLit(n int64) ast.Expr { return call("some", intLit(n)) }
func okLit(n int64) ast.Expr   { return call("ok", intLit(n)) }
func errLit(n int64) ast.Expr  { return call("err", intLit(n)) }

func TestOptionConstructors(t *testing.T) {
	env := newTestEnv()

	v, err := evalIn(env, someLit(1))
	if err != nil {
		t.Fatal(err)
	}
	wantValue(t, v, types.MakeSome(types.MakeIntFromInt64(1)))

	v, err = evalIn(env, okLit(2))
	if err != nil {
		t.Fatal(err)
	}
	wantValue(t, v, types.MakeOk(types.MakeIntFromInt64(2)))

	v, err = evalIn(env, errLit(3))
	if err != nil {
		t.Fatal(err)
	}
	wantValue(t, v, types.MakeErr(types.MakeIntFromInt64(3)))
}

func TestOptionPredicates(t *testing.T) {
	cases := []struct {
		name string
		form ast.Expr
		want bool
	}{
		{"is-ok on ok", call("is-ok", okLit(1)), true},
		{"is-ok on err", call("is-ok", errLit(1)), false},
		{"is-err on err", call("is-err", errLit(1)), true},
		{"is-err on ok", call("is-err", okLit(1)), false},
		{"is-some on some", call("is-some", someLit(1)), true},
		{"is-some on none", call("is-some", atom("none")), false},
		{"is-none on none", call("is-none", atom("none")), true},
		{"is-none on some", call("is-none", someLit(1)), false},
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

	_, err := evalIn(env, call("is-ok", intLit(1)))
	wantCheckCode(t, err, errs.CheckExpectedResponseValue)

	_, err = evalIn(env, call("is-some", okLit(1)))
	wantCheckCode(t, err, errs.CheckExpectedOptionalValue)
}

func TestDefaultTo(t *testing.T) {
	env := newTestEnv()

	v, err := evalIn(env, call("default-to", intLit(0), someLit(7)))
	if err != nil {
		t.Fatal(err)
	}
	wantValue(t, v, types.MakeIntFromInt64(7))

	v, err = evalIn(env, call("default-to", intLit(0), atom("none")))
	if err != nil {
		t.Fatal(err)
	}
	wantValue(t, v, types.MakeIntFromInt64(0))

	_, err = evalIn(env, call("default-to", intLit(0), okLit(1)))
	wantCheckCode(t, err, errs.CheckExpectedOptionalValue)
}

func TestUnwrapFamily(t *testing.T) {
	env := newTestEnv()
	throw := errLit(99)

	t.Run("unwrap! succeeds", func(t *testing.T) {
		for _, form := range []ast.Expr{
			call("unwrap!", someLit(5), throw),
			call("unwrap!", okLit(5), throw),
		} {
			v, err := evalIn(env, form)
			if err != nil {
				t.Fatal(err)
			}
			wantValue(t, v, types.MakeIntFromInt64(5))
		}
	})

	t.Run("unwrap! short-returns the thrown value", func(t *testing.T) {
		for _, form := range []ast.Expr{
			call("unwrap!", atom("none"), throw),
			call("unwrap!", errLit(1), throw),
		} {
			_, err := evalIn(env, form)
			sr, ok := AsShortReturn(err)
			if !ok {
				t.Fatalf("want short return, got %v", err)
			}
			if sr.Kind != ShortExpectedValue {
				t.Fatalf("short return kind = %s", sr.Kind)
			}
			wantValue(t, sr.Value, types.MakeErr(types.MakeIntFromInt64(99)))
		}
	})

	t.Run("unwrap-err! mirrors", func(t *testing.T) {
		v, err := evalIn(env, call("unwrap-err!", errLit(4), throw))
		if err != nil {
			t.Fatal(err)
		}
		wantValue(t, v, types.MakeIntFromInt64(4))

		_, err = evalIn(env, call("unwrap-err!", okLit(4), throw))
		if _, ok := AsShortReturn(err); !ok {
			t.Fatalf("want short return, got %v", err)
		}

		_, err = evalIn(env, call("unwrap-err!", someLit(4), throw))
		wantCheckCode(t, err, errs.CheckExpectedResponseValue)
	})

	t.Run("panic variants raise runtime errors", func(t *testing.T) {
		v, err := evalIn(env, call("unwrap-panic", someLit(6)))
		if err != nil {
			t.Fatal(err)
		}
		wantValue(t, v, types.MakeIntFromInt64(6))

		_, err = evalIn(env, call("unwrap-panic", atom("none")))
		wantRuntimeCode(t, err, errs.RuntimeUnwrapFailure)

		_, err = evalIn(env, call("unwrap-err-panic", okLit(1)))
		wantRuntimeCode(t, err, errs.RuntimeUnwrapFailure)
	})

	t.Run("non-unwrappable input", func(t *testing.T) {
		_, err := evalIn(env, call("unwrap!", intLit(1), throw))
		wantCheckCode(t, err, errs.CheckUnionTypeValueError)

		_, err = evalIn(env, call("unwrap-panic", boolLit(true)))
		wantCheckCode(t, err, errs.CheckUnionTypeValueError)
	})
}

func TestTryForwardsFailures(t *testing.T) {
	env := newTestEnv()

	v, err := evalIn(env, call("try!", someLit(3)))
	if err != nil {
		t.Fatal(err)
	}
	wantValue(t, v, types.MakeIntFromInt64(3))

	v, err = evalIn(env, call("try!", okLit(3)))
	if err != nil {
		t.Fatal(err)
	}
	wantValue(t, v, types.MakeIntFromInt64(3))

	// none forwards as none.
	_, err = evalIn(env, call("try!", atom("none")))
	sr, ok := AsShortReturn(err)
	if !ok {
		t.Fatalf("want short return, got %v", err)
	}
	wantValue(t, sr.Value, types.MakeNone())

	// (err v) forwards whole, not just the payload.
	_, err = evalIn(env, call("try!", errLit(8)))
	sr, ok = AsShortReturn(err)
	if !ok {
		t.Fatalf("want short return, got %v", err)
	}
	wantValue(t, sr.Value, types.MakeErr(types.MakeIntFromInt64(8)))

	_, err = evalIn(env, call("try!", intLit(1)))
	wantCheckCode(t, err, errs.CheckUnionTypeValueError)
}

func TestMatchOptional(t *testing.T) {
	env := newTestEnv()
	divByZero := call("/", intLit(1), intLit(0))

	// The untaken branch would divide by zero.
	v, err := evalIn(env, call("match", someLit(5),
		atom("v"), call("+", atom("v"), intLit(1)),
		divByZero))
	if err != nil {
		t.Fatal(err)
	}
	wantValue(t, v, types.MakeIntFromInt64(6))

	v, err = evalIn(env, call("match", atom("none"),
		atom("v"), divByZero,
		intLit(0)))
	if err != nil {
		t.Fatal(err)
	}
	wantValue(t, v, types.MakeIntFromInt64(0))
}

func TestMatchResponse(t *testing.T) {
	env := newTestEnv()

	v, err := evalIn(env, call("match", okLit(5),
		atom("v"), call("+", atom("v"), intLit(1)),
		atom("e"), atom("e")))
	if err != nil {
		t.Fatal(err)
	}
	wantValue(t, v, types.MakeIntFromInt64(6))

	v, err = evalIn(env, call("match", errLit(7),
		atom("v"), atom("v"),
		atom("e"), call("-", atom("e"))))
	if err != nil {
		t.Fatal(err)
	}
	wantValue(t, v, types.MakeIntFromInt64(-7))
}

func TestMatchShapeErrors(t *testing.T) {
	cases := []struct {
		name string
		form ast.Expr
	}{
		{"input not matchable", call("match", intLit(1), atom("v"), intLit(1), intLit(2))},
		{"optional arm count", call("match", someLit(1), atom("v"), intLit(1))},
		{"response arm count", call("match", okLit(1), atom("v"), intLit(1), intLit(2))},
		{"bind name not atom", call("match", someLit(1), intLit(9), intLit(1), intLit(2))},
	}
	env := newTestEnv()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := evalIn(env, tc.form)
			wantCheckCode(t, err, errs.CheckBadMatchSyntax)
		})
	}

	t.Run("bind name collisions follow let rules", func(t *testing.T) {
		_, err := evalIn(env, call("match", someLit(1),
			atom("block-height"), intLit(1),
			intLit(2)))
		wantCheckCode(t, err, errs.CheckNameAlreadyUsed)
	})
}
