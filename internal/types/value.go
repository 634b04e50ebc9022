// Package types defines the runtime values and type signatures of the
// language.
package types

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"sigil/internal/errs"
	"sigil/internal/ident"
	"sigil/internal/wide"
)

// MaxValueSize is the byte ceiling for a single buffer value.
const MaxValueSize = 1024 * 1024

// ValueKind identifies the runtime type of a Value.
type ValueKind uint8

const (
	// VKInvalid represents the zero Value.
	VKInvalid ValueKind = iota
	// VKInt is a signed 128-bit integer.
	VKInt
	// VKUInt is an unsigned 128-bit integer.
	VKUInt
	// VKBool is a boolean.
	VKBool
	// VKBuffer is an immutable byte string.
	VKBuffer
	// VKPrincipal is an account or contract identity.
	VKPrincipal
	// VKOptional is none or (some v).
	VKOptional
	// VKResponse is (ok v) or (err v).
	VKResponse
	// VKList is a homogeneous sequence.
	VKList
	// VKTuple is a named-field record.
	VKTuple
)

// String returns a human-readable name for the value kind.
func (k ValueKind) String() string {
	switch k {
	case VKInt:
		return "int"
	case VKUInt:
		return "uint"
	case VKBool:
		return "bool"
	case VKBuffer:
		return "buff"
	case VKPrincipal:
		return "principal"
	case VKOptional:
		return "optional"
	case VKResponse:
		return "response"
	case VKList:
		return "list"
	case VKTuple:
		return "tuple"
	default:
		return fmt.Sprintf("ValueKind(%d)", k)
	}
}

// ResponseData is the payload of a VKResponse value.
type ResponseData struct {
	Committed bool // true for ok, false for err
	Value     Value
}

// Value is a runtime value. The Kind selects which payload field is live;
// values are immutable after construction.
type Value struct {
	Kind      ValueKind
	Int       wide.Int128    // VKInt
	UInt      wide.Uint128   // VKUInt
	Bool      bool           // VKBool
	Buffer    []byte         // VKBuffer
	Principal PrincipalData  // VKPrincipal
	Optional  *Value         // VKOptional; nil means none
	Response  *ResponseData  // VKResponse
	List      []Value        // VKList
	ListElem  *TypeSignature // VKList element type, fixed at construction
	Tuple     *TupleData     // VKTuple
}

// IsZero reports whether this is the zero/invalid value.
func (v Value) IsZero() bool {
	return v.Kind == VKInvalid
}

// MakeInt creates a signed integer value.
func MakeInt(n wide.Int128) Value {
	return Value{Kind: VKInt, Int: n}
}

// MakeIntFromInt64 creates a signed integer value from a native int64.
func MakeIntFromInt64(n int64) Value {
	return MakeInt(wide.IntFromInt64(n))
}

// MakeUInt creates an unsigned integer value.
func MakeUInt(n wide.Uint128) Value {
	return Value{Kind: VKUInt, UInt: n}
}

// MakeUIntFromUint64 creates an unsigned integer value from a native uint64.
func MakeUIntFromUint64(n uint64) Value {
	return MakeUInt(wide.UintFromUint64(n))
}

// MakeBool creates a boolean value.
func MakeBool(b bool) Value {
	return Value{Kind: VKBool, Bool: b}
}

// MakeBuffer creates a buffer value, copying data. Buffers above
// MaxValueSize are rejected.
func MakeBuffer(data []byte) (Value, error) {
	if len(data) > MaxValueSize {
		return Value{}, errs.NewCheckError(errs.CheckValueTooLarge,
			"buffer of %d bytes exceeds the %d byte ceiling", len(data), MaxValueSize)
	}
	owned := make([]byte, len(data))
	copy(owned, data)
	return Value{Kind: VKBuffer, Buffer: owned}, nil
}

// MustBuffer is MakeBuffer for literals known to fit; it panics otherwise.
func MustBuffer(data []byte) Value {
	v, err := MakeBuffer(data)
	if err != nil {
		panic(err)
	}
	return v
}

// MakePrincipal creates a principal value.
func MakePrincipal(p PrincipalData) Value {
	return Value{Kind: VKPrincipal, Principal: p}
}

// MakeNone creates the empty optional.
func MakeNone() Value {
	return Value{Kind: VKOptional}
}

// MakeSome wraps v in an optional.
func MakeSome(v Value) Value {
	inner := v
	return Value{Kind: VKOptional, Optional: &inner}
}

// MakeOk wraps v in a committed response.
func MakeOk(v Value) Value {
	return Value{Kind: VKResponse, Response: &ResponseData{Committed: true, Value: v}}
}

// MakeErr wraps v in a rolled-back response.
func MakeErr(v Value) Value {
	return Value{Kind: VKResponse, Response: &ResponseData{Committed: false, Value: v}}
}

// MakeList builds a list value. The element type is the least supertype
// of every element in order; incompatible elements are a check error.
func MakeList(values []Value) (Value, error) {
	elem := NoType()
	for _, v := range values {
		next, ok := LeastSupertype(elem, TypeOf(v))
		if !ok {
			return Value{}, errs.NewCheckError(errs.CheckCouldNotDetermineType,
				"list elements have no common type")
		}
		elem = next
	}
	owned := make([]Value, len(values))
	copy(owned, values)
	return Value{Kind: VKList, List: owned, ListElem: &elem}, nil
}

// MakeTuple builds a tuple value from name/value pairs. Duplicate names
// are a check error.
func MakeTuple(pairs []TupleEntry) (Value, error) {
	td, err := NewTupleData(pairs)
	if err != nil {
		return Value{}, err
	}
	return Value{Kind: VKTuple, Tuple: td}, nil
}

// AsBool unpacks a boolean value.
func (v Value) AsBool() (bool, bool) {
	if v.Kind != VKBool {
		return false, false
	}
	return v.Bool, true
}

// Equal reports deep structural equality.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case VKInt:
		return v.Int == o.Int
	case VKUInt:
		return v.UInt == o.UInt
	case VKBool:
		return v.Bool == o.Bool
	case VKBuffer:
		return bytes.Equal(v.Buffer, o.Buffer)
	case VKPrincipal:
		return v.Principal == o.Principal
	case VKOptional:
		if v.Optional == nil || o.Optional == nil {
			return v.Optional == nil && o.Optional == nil
		}
		return v.Optional.Equal(*o.Optional)
	case VKResponse:
		return v.Response.Committed == o.Response.Committed &&
			v.Response.Value.Equal(o.Response.Value)
	case VKList:
		if len(v.List) != len(o.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equal(o.List[i]) {
				return false
			}
		}
		return true
	case VKTuple:
		return v.Tuple.Equal(o.Tuple)
	default:
		return true
	}
}

// String renders the value in source syntax.
func (v Value) String() string {
	switch v.Kind {
	case VKInvalid:
		return "<invalid>"
	case VKInt:
		return v.Int.String()
	case VKUInt:
		return "u" + v.UInt.String()
	case VKBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case VKBuffer:
		return fmt.Sprintf("0x%x", v.Buffer)
	case VKPrincipal:
		return v.Principal.String()
	case VKOptional:
		if v.Optional == nil {
			return "none"
		}
		return fmt.Sprintf("(some %s)", v.Optional)
	case VKResponse:
		if v.Response.Committed {
			return fmt.Sprintf("(ok %s)", v.Response.Value)
		}
		return fmt.Sprintf("(err %s)", v.Response.Value)
	case VKList:
		var sb strings.Builder
		sb.WriteString("(list")
		for _, e := range v.List {
			sb.WriteByte(' ')
			sb.WriteString(e.String())
		}
		sb.WriteByte(')')
		return sb.String()
	case VKTuple:
		return v.Tuple.String()
	default:
		return fmt.Sprintf("<unknown:%d>", v.Kind)
	}
}

// TupleEntry is one named field in tuple construction order.
type TupleEntry struct {
	Name  ident.Name
	Value Value
}

// TupleData is the payload of a VKTuple value. Fields are kept in sorted
// name order so rendering and iteration are deterministic.
type TupleData struct {
	labels []ident.Name
	fields map[ident.Name]Value
}

// NewTupleData builds tuple data from entries, rejecting duplicates.
func NewTupleData(pairs []TupleEntry) (*TupleData, error) {
	fields := make(map[ident.Name]Value, len(pairs))
	labels := make([]ident.Name, 0, len(pairs))
	for _, p := range pairs {
		if _, dup := fields[p.Name]; dup {
			return nil, errs.NewCheckError(errs.CheckNameAlreadyUsed,
				"tuple field %q is supplied twice", p.Name)
		}
		fields[p.Name] = p.Value
		labels = append(labels, p.Name)
	}
	slices.Sort(labels)
	return &TupleData{labels: labels, fields: fields}, nil
}

// Get looks up a field by name.
func (t *TupleData) Get(name ident.Name) (Value, bool) {
	v, ok := t.fields[name]
	return v, ok
}

// Labels returns the field names in sorted order. The slice is shared;
// callers must not mutate it.
func (t *TupleData) Labels() []ident.Name {
	return t.labels
}

// Len returns the field count.
func (t *TupleData) Len() int {
	return len(t.labels)
}

// Equal reports structural equality of two tuples.
func (t *TupleData) Equal(o *TupleData) bool {
	if len(t.labels) != len(o.labels) {
		return false
	}
	for i, name := range t.labels {
		if o.labels[i] != name {
			return false
		}
		if !t.fields[name].Equal(o.fields[name]) {
			return false
		}
	}
	return true
}

func (t *TupleData) String() string {
	var sb strings.Builder
	sb.WriteString("(tuple")
	for _, name := range t.labels {
		fmt.Fprintf(&sb, " (%s %s)", name, t.fields[name])
	}
	sb.WriteByte(')')
	return sb.String()
}
