package types

import (
	"strings"
	"testing"

	"sigil/internal/errs"
	"sigil/internal/ident"
	"sigil/internal/wide"
)

func TestValueEqual(t *testing.T) {
	someOne := MakeSome(MakeIntFromInt64(1))
	listA, err := MakeList([]Value{MakeIntFromInt64(1), MakeIntFromInt64(2)})
	if err != nil {
		t.Fatal(err)
	}
	listB, err := MakeList([]Value{MakeIntFromInt64(1), MakeIntFromInt64(2)})
	if err != nil {
		t.Fatal(err)
	}
	listShort, err := MakeList([]Value{MakeIntFromInt64(1)})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"ints equal", MakeIntFromInt64(-7), MakeIntFromInt64(-7), true},
		{"int vs uint", MakeIntFromInt64(1), MakeUIntFromUint64(1), false},
		{"bools", MakeBool(true), MakeBool(true), true},
		{"buffers", MustBuffer([]byte{1, 2}), MustBuffer([]byte{1, 2}), true},
		{"buffer lengths", MustBuffer([]byte{1}), MustBuffer([]byte{1, 0}), false},
		{"none vs none", MakeNone(), MakeNone(), true},
		{"none vs some", MakeNone(), someOne, false},
		{"some vs some", MakeSome(MakeIntFromInt64(1)), someOne, true},
		{"ok vs err", MakeOk(MakeBool(true)), MakeErr(MakeBool(true)), false},
		{"ok vs ok", MakeOk(MakeBool(true)), MakeOk(MakeBool(true)), true},
		{"lists equal", listA, listB, true},
		{"list lengths", listA, listShort, false},
	}
	for _, tt := range tests {
		if got := tt.a.Equal(tt.b); got != tt.want {
			t.Errorf("%s: Equal = %v, want %v", tt.name, got, tt.want)
		}
		if got := tt.b.Equal(tt.a); got != tt.want {
			t.Errorf("%s (flipped): Equal = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestTupleOrderInsensitive(t *testing.T) {
	ab, err := MakeTuple([]TupleEntry{
		{Name: ident.MustName("alpha"), Value: MakeIntFromInt64(1)},
		{Name: ident.MustName("beta"), Value: MakeUIntFromUint64(2)},
	})
	if err != nil {
		t.Fatal(err)
	}
	ba, err := MakeTuple([]TupleEntry{
		{Name: ident.MustName("beta"), Value: MakeUIntFromUint64(2)},
		{Name: ident.MustName("alpha"), Value: MakeIntFromInt64(1)},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !ab.Equal(ba) {
		t.Error("tuples with the same fields should be equal regardless of entry order")
	}
	if got, want := ab.String(), "(tuple (alpha 1) (beta u2))"; got != want {
		t.Errorf("String = %q, want %q", got, want)
	}
	if ba.String() != ab.String() {
		t.Error("rendering should not depend on entry order")
	}
}

func TestTupleDuplicateField(t *testing.T) {
	_, err := MakeTuple([]TupleEntry{
		{Name: ident.MustName("a"), Value: MakeIntFromInt64(1)},
		{Name: ident.MustName("a"), Value: MakeIntFromInt64(2)},
	})
	ce, ok := errs.AsCheck(err)
	if !ok || ce.Code != errs.CheckNameAlreadyUsed {
		t.Fatalf("expected name-already-used check error, got %v", err)
	}
}

func TestValueString(t *testing.T) {
	list, err := MakeList([]Value{MakeIntFromInt64(1), MakeIntFromInt64(2)})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		v    Value
		want string
	}{
		{MakeIntFromInt64(-3), "-3"},
		{MakeUInt(wide.UintFromUint64(7)), "u7"},
		{MakeBool(false), "false"},
		{MustBuffer(nil), "0x"},
		{MustBuffer([]byte{0xde, 0xad}), "0xdead"},
		{MakeNone(), "none"},
		{MakeSome(MakeUIntFromUint64(1)), "(some u1)"},
		{MakeOk(MakeBool(true)), "(ok true)"},
		{MakeErr(MakeIntFromInt64(0)), "(err 0)"},
		{list, "(list 1 2)"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String = %q, want %q", got, tt.want)
		}
	}
}

func TestPrincipalString(t *testing.T) {
	std := StandardPrincipal{Version: 0x1a}
	p := MakePrincipal(StandardPrincipalData(std))
	got := p.String()
	if !strings.HasPrefix(got, "'S1A") {
		t.Errorf("standard principal rendering = %q", got)
	}

	contract := MakePrincipal(ContractPrincipalData(QualifiedContractIdentifier{
		Issuer: std,
		Name:   ident.MustContractName("tokens"),
	}))
	if !strings.HasSuffix(contract.String(), ".tokens") {
		t.Errorf("contract principal rendering = %q", contract.String())
	}
	if contract.Equal(p) {
		t.Error("contract principal should differ from its issuer")
	}
}

func TestMakeBufferTooLarge(t *testing.T) {
	_, err := MakeBuffer(make([]byte, MaxValueSize+1))
	ce, ok := errs.AsCheck(err)
	if !ok || ce.Code != errs.CheckValueTooLarge {
		t.Fatalf("expected value-too-large check error, got %v", err)
	}
	if _, err := MakeBuffer(make([]byte, MaxValueSize)); err != nil {
		t.Errorf("buffer at the ceiling should construct: %v", err)
	}
}

func TestMakeListElementTyping(t *testing.T) {
	if _, err := MakeList([]Value{MakeIntFromInt64(1), MakeUIntFromUint64(1)}); err == nil {
		t.Error("mixed int/uint list should fail")
	}

	mixed, err := MakeList([]Value{MakeSome(MakeIntFromInt64(1)), MakeNone()})
	if err != nil {
		t.Fatalf("some and none should unify: %v", err)
	}
	want := ListType(OptionalType(IntType()), 2)
	if !TypeOf(mixed).Equal(want) {
		t.Errorf("list type = %s, want %s", TypeOf(mixed), want)
	}

	empty, err := MakeList(nil)
	if err != nil {
		t.Fatalf("empty list should construct: %v", err)
	}
	if got := TypeOf(empty); !got.Equal(ListType(NoType(), 0)) {
		t.Errorf("empty list type = %s", got)
	}
}
