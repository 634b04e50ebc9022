// Package costs meters evaluation. Every dispatch charges a deterministic
// amount against a fixed budget before any work happens, so identical
// programs consume identical budgets on every node.
package costs

import (
	"fmt"
	"slices"
)

// CostID identifies the schedule row charged for one operation family.
type CostID uint16

// Stable cost ids - do not change values.
const (
	CostUnknown CostID = 0

	// Evaluator fabric.
	CostLookupVariable          CostID = 1
	CostLookupFunction          CostID = 2
	CostUserFunctionApplication CostID = 3
	CostBindName                CostID = 4

	// Control and scoping forms.
	CostIf         CostID = 10
	CostLet        CostID = 11
	CostAsserts    CostID = 12
	CostAsContract CostID = 13
	CostBegin      CostID = 14
	CostAnd        CostID = 15
	CostOr         CostID = 16
	CostMatch      CostID = 17
	CostAtBlock    CostID = 18

	// Option and response handling.
	CostOptionCons  CostID = 30
	CostOptionCheck CostID = 31
	CostUnwrap      CostID = 32
	CostDefaultTo   CostID = 33
	CostTryRet      CostID = 34

	// Arithmetic and comparison.
	CostArithmetic CostID = 50
	CostMod        CostID = 51
	CostPow        CostID = 52
	CostXor        CostID = 53
	CostCmp        CostID = 54
	CostIntCast    CostID = 55
	CostNot        CostID = 56
	CostEq         CostID = 57

	// Hashing.
	CostHash160    CostID = 70
	CostSha256     CostID = 71
	CostSha512     CostID = 72
	CostSha512t256 CostID = 73
	CostKeccak256  CostID = 74

	// Sequences and tuples.
	CostListCons  CostID = 90
	CostLen       CostID = 91
	CostAppend    CostID = 92
	CostConcat    CostID = 93
	CostMap       CostID = 94
	CostFilter    CostID = 95
	CostFold      CostID = 96
	CostTupleCons CostID = 97
	CostTupleGet  CostID = 98

	// Persisted state.
	CostFetchVar   CostID = 110
	CostSetVar     CostID = 111
	CostFetchEntry CostID = 112
	CostSetEntry   CostID = 113

	// Output.
	CostPrint CostID = 130
)

var costNames = map[CostID]string{
	CostLookupVariable:          "lookup_variable",
	CostLookupFunction:          "lookup_function",
	CostUserFunctionApplication: "user_function_application",
	CostBindName:                "bind_name",
	CostIf:                      "if",
	CostLet:                     "let",
	CostAsserts:                 "asserts",
	CostAsContract:              "as_contract",
	CostBegin:                   "begin",
	CostAnd:                     "and",
	CostOr:                      "or",
	CostMatch:                   "match",
	CostAtBlock:                 "at_block",
	CostOptionCons:              "option_cons",
	CostOptionCheck:             "option_check",
	CostUnwrap:                  "unwrap",
	CostDefaultTo:               "default_to",
	CostTryRet:                  "try_ret",
	CostArithmetic:              "arithmetic",
	CostMod:                     "mod",
	CostPow:                     "pow",
	CostXor:                     "xor",
	CostCmp:                     "cmp",
	CostIntCast:                 "int_cast",
	CostNot:                     "not",
	CostEq:                      "eq",
	CostHash160:                 "hash160",
	CostSha256:                  "sha256",
	CostSha512:                  "sha512",
	CostSha512t256:              "sha512t256",
	CostKeccak256:               "keccak256",
	CostListCons:                "list_cons",
	CostLen:                     "len",
	CostAppend:                  "append",
	CostConcat:                  "concat",
	CostMap:                     "map",
	CostFilter:                  "filter",
	CostFold:                    "fold",
	CostTupleCons:               "tuple_cons",
	CostTupleGet:                "tuple_get",
	CostFetchVar:                "fetch_var",
	CostSetVar:                  "set_var",
	CostFetchEntry:              "fetch_entry",
	CostSetEntry:                "set_entry",
	CostPrint:                   "print",
}

var costIDs = func() map[string]CostID {
	m := make(map[string]CostID, len(costNames))
	for id, name := range costNames {
		m[name] = id
	}
	return m
}()

// String returns the schedule key of the cost id.
func (c CostID) String() string {
	if name, ok := costNames[c]; ok {
		return name
	}
	return fmt.Sprintf("cost(%d)", uint16(c))
}

// ByName resolves a schedule key back to its cost id.
func ByName(name string) (CostID, bool) {
	id, ok := costIDs[name]
	return id, ok
}

// IDs returns every known cost id in ascending order.
func IDs() []CostID {
	out := make([]CostID, 0, len(costNames))
	for id := range costNames {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
