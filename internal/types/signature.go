package types

import (
	"fmt"
	"strings"

	"sigil/internal/ident"
)

// TypeKind identifies a type signature shape.
type TypeKind uint8

const (
	// TKNoType is the bottom type: it has no values and unifies with
	// anything. The empty list's element type and the absent side of a
	// response carry it.
	TKNoType TypeKind = iota
	TKInt
	TKUInt
	TKBool
	TKBuffer
	TKPrincipal
	TKOptional
	TKResponse
	TKList
	TKTuple
)

// TupleFieldType is one named field of a tuple signature.
type TupleFieldType struct {
	Name ident.Name
	Type TypeSignature
}

// TypeSignature describes the admissible values of one expression slot.
// The Kind selects which of the remaining fields are live.
type TypeSignature struct {
	Kind    TypeKind
	MaxLen  uint32           // TKBuffer, TKList
	Elem    *TypeSignature   // TKOptional inner, TKList element
	OkType  *TypeSignature   // TKResponse
	ErrType *TypeSignature   // TKResponse
	Fields  []TupleFieldType // TKTuple, sorted by name
}

func NoType() TypeSignature        { return TypeSignature{Kind: TKNoType} }
func IntType() TypeSignature       { return TypeSignature{Kind: TKInt} }
func UIntType() TypeSignature      { return TypeSignature{Kind: TKUInt} }
func BoolType() TypeSignature      { return TypeSignature{Kind: TKBool} }
func PrincipalType() TypeSignature { return TypeSignature{Kind: TKPrincipal} }

func BufferType(maxLen uint32) TypeSignature {
	return TypeSignature{Kind: TKBuffer, MaxLen: maxLen}
}

func OptionalType(inner TypeSignature) TypeSignature {
	return TypeSignature{Kind: TKOptional, Elem: &inner}
}

func ResponseType(okType, errType TypeSignature) TypeSignature {
	return TypeSignature{Kind: TKResponse, OkType: &okType, ErrType: &errType}
}

func ListType(elem TypeSignature, maxLen uint32) TypeSignature {
	return TypeSignature{Kind: TKList, Elem: &elem, MaxLen: maxLen}
}

func TupleType(fields []TupleFieldType) TypeSignature {
	return TypeSignature{Kind: TKTuple, Fields: fields}
}

// TypeOf computes the concrete signature of a value.
func TypeOf(v Value) TypeSignature {
	switch v.Kind {
	case VKInt:
		return IntType()
	case VKUInt:
		return UIntType()
	case VKBool:
		return BoolType()
	case VKBuffer:
		return BufferType(uint32(len(v.Buffer)))
	case VKPrincipal:
		return PrincipalType()
	case VKOptional:
		if v.Optional == nil {
			return OptionalType(NoType())
		}
		return OptionalType(TypeOf(*v.Optional))
	case VKResponse:
		if v.Response.Committed {
			return ResponseType(TypeOf(v.Response.Value), NoType())
		}
		return ResponseType(NoType(), TypeOf(v.Response.Value))
	case VKList:
		elem := NoType()
		if v.ListElem != nil {
			elem = *v.ListElem
		}
		return ListType(elem, uint32(len(v.List)))
	case VKTuple:
		fields := make([]TupleFieldType, 0, v.Tuple.Len())
		for _, name := range v.Tuple.Labels() {
			fv, _ := v.Tuple.Get(name)
			fields = append(fields, TupleFieldType{Name: name, Type: TypeOf(fv)})
		}
		return TupleType(fields)
	default:
		return NoType()
	}
}

// Equal reports deep signature equality.
func (t TypeSignature) Equal(o TypeSignature) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case TKBuffer:
		return t.MaxLen == o.MaxLen
	case TKOptional:
		return t.Elem.Equal(*o.Elem)
	case TKResponse:
		return t.OkType.Equal(*o.OkType) && t.ErrType.Equal(*o.ErrType)
	case TKList:
		return t.MaxLen == o.MaxLen && t.Elem.Equal(*o.Elem)
	case TKTuple:
		if len(t.Fields) != len(o.Fields) {
			return false
		}
		for i := range t.Fields {
			if t.Fields[i].Name != o.Fields[i].Name ||
				!t.Fields[i].Type.Equal(o.Fields[i].Type) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// LeastSupertype unifies two signatures into the narrowest signature
// admitting both, or reports that none exists. NoType unifies with
// anything; sized shapes widen to the larger bound.
func LeastSupertype(a, b TypeSignature) (TypeSignature, bool) {
	if a.Kind == TKNoType {
		return b, true
	}
	if b.Kind == TKNoType {
		return a, true
	}
	if a.Kind != b.Kind {
		return TypeSignature{}, false
	}
	switch a.Kind {
	case TKInt, TKUInt, TKBool, TKPrincipal:
		return a, true
	case TKBuffer:
		return BufferType(max(a.MaxLen, b.MaxLen)), true
	case TKOptional:
		inner, ok := LeastSupertype(*a.Elem, *b.Elem)
		if !ok {
			return TypeSignature{}, false
		}
		return OptionalType(inner), true
	case TKResponse:
		okType, ok := LeastSupertype(*a.OkType, *b.OkType)
		if !ok {
			return TypeSignature{}, false
		}
		errType, ok := LeastSupertype(*a.ErrType, *b.ErrType)
		if !ok {
			return TypeSignature{}, false
		}
		return ResponseType(okType, errType), true
	case TKList:
		elem, ok := LeastSupertype(*a.Elem, *b.Elem)
		if !ok {
			return TypeSignature{}, false
		}
		return ListType(elem, max(a.MaxLen, b.MaxLen)), true
	case TKTuple:
		if len(a.Fields) != len(b.Fields) {
			return TypeSignature{}, false
		}
		fields := make([]TupleFieldType, len(a.Fields))
		for i := range a.Fields {
			if a.Fields[i].Name != b.Fields[i].Name {
				return TypeSignature{}, false
			}
			ft, ok := LeastSupertype(a.Fields[i].Type, b.Fields[i].Type)
			if !ok {
				return TypeSignature{}, false
			}
			fields[i] = TupleFieldType{Name: a.Fields[i].Name, Type: ft}
		}
		return TupleType(fields), true
	default:
		return TypeSignature{}, false
	}
}

// String renders the signature in source syntax.
func (t TypeSignature) String() string {
	switch t.Kind {
	case TKNoType:
		return "UnknownType"
	case TKInt:
		return "int"
	case TKUInt:
		return "uint"
	case TKBool:
		return "bool"
	case TKBuffer:
		return fmt.Sprintf("(buff %d)", t.MaxLen)
	case TKPrincipal:
		return "principal"
	case TKOptional:
		return fmt.Sprintf("(optional %s)", t.Elem)
	case TKResponse:
		return fmt.Sprintf("(response %s %s)", t.OkType, t.ErrType)
	case TKList:
		return fmt.Sprintf("(list %d %s)", t.MaxLen, t.Elem)
	case TKTuple:
		var sb strings.Builder
		sb.WriteString("(tuple")
		for _, f := range t.Fields {
			fmt.Fprintf(&sb, " (%s %s)", f.Name, f.Type)
		}
		sb.WriteByte(')')
		return sb.String()
	default:
		return fmt.Sprintf("TypeKind(%d)", t.Kind)
	}
}
