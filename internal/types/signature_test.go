package types

import (
	"testing"

	"sigil/internal/ident"
)

func TestLeastSupertype(t *testing.T) {
	tests := []struct {
		name string
		a, b TypeSignature
		want TypeSignature
		ok   bool
	}{
		{"int int", IntType(), IntType(), IntType(), true},
		{"int uint", IntType(), UIntType(), TypeSignature{}, false},
		{"bool principal", BoolType(), PrincipalType(), TypeSignature{}, false},
		{"notype left", NoType(), UIntType(), UIntType(), true},
		{"notype right", BufferType(4), NoType(), BufferType(4), true},
		{"buffers widen", BufferType(3), BufferType(5), BufferType(5), true},
		{
			"optionals unify inner",
			OptionalType(NoType()),
			OptionalType(IntType()),
			OptionalType(IntType()),
			true,
		},
		{
			"responses unify both sides",
			ResponseType(IntType(), NoType()),
			ResponseType(NoType(), UIntType()),
			ResponseType(IntType(), UIntType()),
			true,
		},
		{
			"responses conflict",
			ResponseType(IntType(), NoType()),
			ResponseType(UIntType(), NoType()),
			TypeSignature{},
			false,
		},
		{
			"lists widen and unify",
			ListType(BufferType(1), 2),
			ListType(BufferType(9), 1),
			ListType(BufferType(9), 2),
			true,
		},
		{
			"tuples by field",
			TupleType([]TupleFieldType{{Name: ident.MustName("a"), Type: BufferType(1)}}),
			TupleType([]TupleFieldType{{Name: ident.MustName("a"), Type: BufferType(2)}}),
			TupleType([]TupleFieldType{{Name: ident.MustName("a"), Type: BufferType(2)}}),
			true,
		},
		{
			"tuples with different fields",
			TupleType([]TupleFieldType{{Name: ident.MustName("a"), Type: IntType()}}),
			TupleType([]TupleFieldType{{Name: ident.MustName("b"), Type: IntType()}}),
			TypeSignature{},
			false,
		},
	}
	for _, tt := range tests {
		got, ok := LeastSupertype(tt.a, tt.b)
		if ok != tt.ok {
			t.Errorf("%s: ok = %v, want %v", tt.name, ok, tt.ok)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("%s: got %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestTypeOf(t *testing.T) {
	tup, err := MakeTuple([]TupleEntry{
		{Name: ident.MustName("id"), Value: MakeUIntFromUint64(4)},
		{Name: ident.MustName("active"), Value: MakeBool(true)},
	})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		v    Value
		want string
	}{
		{MakeIntFromInt64(1), "int"},
		{MakeUIntFromUint64(1), "uint"},
		{MustBuffer([]byte{1, 2, 3}), "(buff 3)"},
		{MakeNone(), "(optional UnknownType)"},
		{MakeSome(MakeBool(true)), "(optional bool)"},
		{MakeOk(MakeUIntFromUint64(1)), "(response uint UnknownType)"},
		{MakeErr(MakeBool(false)), "(response UnknownType bool)"},
		{tup, "(tuple (active bool) (id uint))"},
	}
	for _, tt := range tests {
		if got := TypeOf(tt.v).String(); got != tt.want {
			t.Errorf("TypeOf(%s) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
