// Package ast defines the two expression families of the language: PreExpr
// for freshly read programs and Expr for resolved ones.
//
// Nodes own their children exclusively, trees are acyclic and immutable
// after construction, and every node carries an id that is unique within
// its tree and used only as a key into side tables.
package ast

import (
	"fmt"
	"strings"

	"sigil/internal/ident"
	"sigil/internal/source"
	"sigil/internal/types"
)

// ExprKind identifies a resolved expression variant.
type ExprKind uint8

const (
	// ExprAtomValue is a literal value as written in the program.
	ExprAtomValue ExprKind = iota + 1
	// ExprLiteralValue is a literal substituted during resolution,
	// tracked apart from written literals.
	ExprLiteralValue
	// ExprAtom is a bare name.
	ExprAtom
	// ExprList is an application or grouping of child expressions.
	ExprList
	// ExprField is a fully resolved trait field reference.
	ExprField
	// ExprTraitRef is a trait reference tagged with its provenance.
	ExprTraitRef
)

// String returns a human-readable name for the expression kind.
func (k ExprKind) String() string {
	switch k {
	case ExprAtomValue:
		return "atom-value"
	case ExprLiteralValue:
		return "literal-value"
	case ExprAtom:
		return "atom"
	case ExprList:
		return "list"
	case ExprField:
		return "field"
	case ExprTraitRef:
		return "trait-reference"
	default:
		return fmt.Sprintf("ExprKind(%d)", k)
	}
}

// TraitProvenance distinguishes how a trait reference entered the tree.
type TraitProvenance uint8

const (
	// TraitDefined references a trait declared by the same contract.
	TraitDefined TraitProvenance = iota + 1
	// TraitImported references a trait brought in from elsewhere.
	TraitImported
)

// Expr is a resolved expression node. The Kind selects which payload
// fields are live.
type Expr struct {
	Kind ExprKind
	ID   uint64
	// Span is present only in span-tracking builds; nil otherwise.
	Span *source.Span

	Value      types.Value           // ExprAtomValue, ExprLiteralValue
	Name       ident.Name            // ExprAtom, ExprTraitRef
	List       []Expr                // ExprList
	Field      types.TraitIdentifier // ExprField, ExprTraitRef
	Provenance TraitProvenance       // ExprTraitRef
}

// Atom builds a bare name node.
func Atom(name ident.Name) Expr {
	return Expr{Kind: ExprAtom, Name: name}
}

// AtomValue builds a written literal node.
func AtomValue(v types.Value) Expr {
	return Expr{Kind: ExprAtomValue, Value: v}
}

// LiteralValue builds a resolution-substituted literal node.
func LiteralValue(v types.Value) Expr {
	return Expr{Kind: ExprLiteralValue, Value: v}
}

// List builds an application node owning its children.
func List(children ...Expr) Expr {
	return Expr{Kind: ExprList, List: children}
}

// Field builds a resolved trait field reference.
func Field(t types.TraitIdentifier) Expr {
	return Expr{Kind: ExprField, Field: t}
}

// TraitRef builds a trait reference node.
func TraitRef(name ident.Name, prov TraitProvenance, t types.TraitIdentifier) Expr {
	return Expr{Kind: ExprTraitRef, Name: name, Provenance: prov, Field: t}
}

// SetSpan records the source region when span tracking is on; otherwise
// it is a no-op and the node keeps no position.
func (e *Expr) SetSpan(sp source.Span) {
	if !source.Tracking {
		return
	}
	e.Span = &sp
}

// MatchAtom unpacks a bare name node.
func (e *Expr) MatchAtom() (ident.Name, bool) {
	if e.Kind != ExprAtom {
		return "", false
	}
	return e.Name, true
}

// MatchAtomValue unpacks a written literal node.
func (e *Expr) MatchAtomValue() (types.Value, bool) {
	if e.Kind != ExprAtomValue {
		return types.Value{}, false
	}
	return e.Value, true
}

// MatchLiteralValue unpacks a substituted literal node.
func (e *Expr) MatchLiteralValue() (types.Value, bool) {
	if e.Kind != ExprLiteralValue {
		return types.Value{}, false
	}
	return e.Value, true
}

// MatchList unpacks an application node.
func (e *Expr) MatchList() ([]Expr, bool) {
	if e.Kind != ExprList {
		return nil, false
	}
	return e.List, true
}

// MatchField unpacks a resolved field reference.
func (e *Expr) MatchField() (types.TraitIdentifier, bool) {
	if e.Kind != ExprField {
		return types.TraitIdentifier{}, false
	}
	return e.Field, true
}

// MatchTraitRef unpacks a trait reference.
func (e *Expr) MatchTraitRef() (ident.Name, TraitProvenance, bool) {
	if e.Kind != ExprTraitRef {
		return "", 0, false
	}
	return e.Name, e.Provenance, true
}

// String renders the expression in source syntax.
func (e *Expr) String() string {
	switch e.Kind {
	case ExprAtomValue, ExprLiteralValue:
		return e.Value.String()
	case ExprAtom:
		return e.Name.String()
	case ExprList:
		var sb strings.Builder
		sb.WriteByte('(')
		for i := range e.List {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(e.List[i].String())
		}
		sb.WriteByte(')')
		return sb.String()
	case ExprField:
		return e.Field.String()
	case ExprTraitRef:
		return "<" + e.Name.String() + ">"
	default:
		return fmt.Sprintf("<%s>", e.Kind)
	}
}
