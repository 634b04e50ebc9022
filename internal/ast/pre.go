package ast

import (
	"fmt"

	"sigil/internal/ident"
	"sigil/internal/source"
	"sigil/internal/types"
)

// PreExprKind identifies a pre-resolution expression variant.
type PreExprKind uint8

const (
	// PreAtomValue is a literal value.
	PreAtomValue PreExprKind = iota + 1
	// PreAtom is a bare name.
	PreAtom
	// PreList is a grouping of child expressions.
	PreList
	// PreSugaredContractIdentifier is a shorthand contract reference
	// (.name) awaiting issuer resolution.
	PreSugaredContractIdentifier
	// PreSugaredFieldIdentifier is a shorthand field reference
	// (.contract.field) awaiting issuer resolution.
	PreSugaredFieldIdentifier
	// PreFieldIdentifier is a fully qualified field reference.
	PreFieldIdentifier
	// PreTraitReference is a trait name placeholder awaiting binding.
	PreTraitReference
)

// String returns a human-readable name for the pre-expression kind.
func (k PreExprKind) String() string {
	switch k {
	case PreAtomValue:
		return "atom-value"
	case PreAtom:
		return "atom"
	case PreList:
		return "list"
	case PreSugaredContractIdentifier:
		return "sugared-contract-identifier"
	case PreSugaredFieldIdentifier:
		return "sugared-field-identifier"
	case PreFieldIdentifier:
		return "field-identifier"
	case PreTraitReference:
		return "trait-reference"
	default:
		return fmt.Sprintf("PreExprKind(%d)", k)
	}
}

// PreExpr is a pre-resolution expression node. The Kind selects which
// payload fields are live.
type PreExpr struct {
	Kind PreExprKind
	ID   uint64
	// Span is present only in span-tracking builds; nil otherwise.
	Span *source.Span

	Value     types.Value           // PreAtomValue
	Name      ident.Name            // PreAtom, PreTraitReference
	List      []PreExpr             // PreList
	Contract  ident.ContractName    // PreSugaredContractIdentifier, PreSugaredFieldIdentifier
	FieldName ident.Name            // PreSugaredFieldIdentifier
	Field     types.TraitIdentifier // PreFieldIdentifier
}

// PreAtomOf builds a bare name node.
func PreAtomOf(name ident.Name) PreExpr {
	return PreExpr{Kind: PreAtom, Name: name}
}

// PreAtomValueOf builds a literal node.
func PreAtomValueOf(v types.Value) PreExpr {
	return PreExpr{Kind: PreAtomValue, Value: v}
}

// PreListOf builds a grouping node owning its children.
func PreListOf(children ...PreExpr) PreExpr {
	return PreExpr{Kind: PreList, List: children}
}

// PreSugaredContract builds a shorthand contract reference.
func PreSugaredContract(contract ident.ContractName) PreExpr {
	return PreExpr{Kind: PreSugaredContractIdentifier, Contract: contract}
}

// PreSugaredField builds a shorthand field reference.
func PreSugaredField(contract ident.ContractName, field ident.Name) PreExpr {
	return PreExpr{Kind: PreSugaredFieldIdentifier, Contract: contract, FieldName: field}
}

// PreField builds a fully qualified field reference.
func PreField(t types.TraitIdentifier) PreExpr {
	return PreExpr{Kind: PreFieldIdentifier, Field: t}
}

// PreTraitRef builds a trait name placeholder.
func PreTraitRef(name ident.Name) PreExpr {
	return PreExpr{Kind: PreTraitReference, Name: name}
}

// SetSpan records the source region when span tracking is on; otherwise
// it is a no-op.
func (e *PreExpr) SetSpan(sp source.Span) {
	if !source.Tracking {
		return
	}
	e.Span = &sp
}

// MatchAtom unpacks a bare name node.
func (e *PreExpr) MatchAtom() (ident.Name, bool) {
	if e.Kind != PreAtom {
		return "", false
	}
	return e.Name, true
}

// MatchAtomValue unpacks a literal node.
func (e *PreExpr) MatchAtomValue() (types.Value, bool) {
	if e.Kind != PreAtomValue {
		return types.Value{}, false
	}
	return e.Value, true
}

// MatchList unpacks a grouping node.
func (e *PreExpr) MatchList() ([]PreExpr, bool) {
	if e.Kind != PreList {
		return nil, false
	}
	return e.List, true
}
