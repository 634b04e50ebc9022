package vm

import (
	"sigil/internal/costs"
	"sigil/internal/ident"
)

// reservedFunctions is the static operator table: built once, never
// mutated at runtime. Lookup misses mean the name is not a reserved
// operator and the caller falls back to contract-defined functions.
// Assigned in init rather than a var initializer because some entries
// (e.g. specialListCons) refer back to the registry through Eval.
var reservedFunctions map[ident.Name]Callable

func init() {
	reservedFunctions = map[ident.Name]Callable{
		// Arithmetic and comparison.
		"+":       varArgs("native_add", costs.CostArithmetic, nativeAdd),
		"-":       varArgs("native_sub", costs.CostArithmetic, nativeSub),
		"*":       varArgs("native_mul", costs.CostArithmetic, nativeMul),
		"/":       varArgs("native_div", costs.CostArithmetic, nativeDiv),
		">=":      doubleArg("native_geq", costs.CostCmp, nativeGeq),
		"<=":      doubleArg("native_leq", costs.CostCmp, nativeLeq),
		"<":       doubleArg("native_lt", costs.CostCmp, nativeLt),
		">":       doubleArg("native_gt", costs.CostCmp, nativeGt),
		"to-int":  singleArg("native_to_int", costs.CostIntCast, nativeToInt),
		"to-uint": singleArg("native_to_uint", costs.CostIntCast, nativeToUInt),
		"mod":     doubleArg("native_mod", costs.CostMod, nativeMod),
		"pow":     doubleArg("native_pow", costs.CostPow, nativePow),
		"xor":     doubleArg("native_xor", costs.CostXor, nativeXor),

		// Booleans.
		"and": special("special_and", specialAnd),
		"or":  special("special_or", specialOr),
		"not": singleArg("native_not", costs.CostNot, nativeNot),

		// Equality.
		"is-eq": varArgs("native_eq", costs.CostEq, nativeEq),

		// Control flow and scoping.
		"if":          special("special_if", specialIf),
		"let":         special("special_let", specialLet),
		"asserts!":    special("special_asserts", specialAsserts),
		"as-contract": special("special_as_contract", specialAsContract),
		"begin":       varArgs("native_begin", costs.CostBegin, nativeBegin),

		// Optionals and responses.
		"some":             singleArg("native_some", costs.CostOptionCons, nativeSome),
		"ok":               singleArg("native_ok", costs.CostOptionCons, nativeOk),
		"err":              singleArg("native_err", costs.CostOptionCons, nativeErr),
		"default-to":       doubleArg("native_default_to", costs.CostDefaultTo, nativeDefaultTo),
		"unwrap!":          doubleArg("native_unwrap_ret", costs.CostUnwrap, nativeUnwrapRet),
		"unwrap-err!":      doubleArg("native_unwrap_err_ret", costs.CostUnwrap, nativeUnwrapErrRet),
		"unwrap-panic":     singleArg("native_unwrap", costs.CostUnwrap, nativeUnwrapPanic),
		"unwrap-err-panic": singleArg("native_unwrap_err", costs.CostUnwrap, nativeUnwrapErrPanic),
		"try!":             singleArg("native_try_ret", costs.CostTryRet, nativeTryRet),
		"is-ok":            singleArg("native_is_ok", costs.CostOptionCheck, nativeIsOk),
		"is-err":           singleArg("native_is_err", costs.CostOptionCheck, nativeIsErr),
		"is-some":          singleArg("native_is_some", costs.CostOptionCheck, nativeIsSome),
		"is-none":          singleArg("native_is_none", costs.CostOptionCheck, nativeIsNone),
		"match":            special("special_match", specialMatch),

		// Sequences.
		"list":   special("special_list_cons", specialListCons),
		"len":    singleArg("native_len", costs.CostLen, nativeLen),
		"append": special("special_append", specialAppend),
		"concat": special("special_concat", specialConcat),
		"map":    special("special_map", specialMap),
		"filter": special("special_filter", specialFilter),
		"fold":   special("special_fold", specialFold),

		// Tuples.
		"tuple": special("special_tuple", specialTupleCons),
		"get":   special("special_get", specialTupleGet),

		// Persisted state.
		"var-get":    special("special_var_get", specialFetchVariable),
		"var-set":    special("special_var_set", specialSetVariable),
		"map-get?":   special("special_map_get", specialFetchEntry),
		"map-set":    special("special_map_set", specialSetEntry),
		"map-insert": special("special_map_insert", specialInsertEntry),
		"map-delete": special("special_map_delete", specialDeleteEntry),
		"at-block":   special("special_at_block", specialAtBlock),

		// Hashes.
		"hash160":    singleArg("native_hash160", costs.CostHash160, nativeHash160),
		"sha256":     singleArg("native_sha256", costs.CostSha256, nativeSha256),
		"sha512":     singleArg("native_sha512", costs.CostSha512, nativeSha512),
		"sha512/256": singleArg("native_sha512trunc256", costs.CostSha512t256, nativeSha512Trunc256),
		"keccak256":  singleArg("native_keccak256", costs.CostKeccak256, nativeKeccak256),

		// Output.
		"print": singleArg("native_print", costs.CostPrint, nativePrint),
	}
}

// LookupReserved resolves an operator name against the static registry.
func LookupReserved(name ident.Name) (Callable, bool) {
	c, ok := reservedFunctions[name]
	return c, ok
}

// ReservedNames returns every reserved operator name. The slice is fresh
// on each call; callers may sort or mutate it.
func ReservedNames() []ident.Name {
	out := make([]ident.Name, 0, len(reservedFunctions))
	for name := range reservedFunctions {
		out = append(out, name)
	}
	return out
}

// IsReserved reports whether name may never be rebound: reserved
// operators, reserved variables, and definition keywords all qualify.
func IsReserved(name ident.Name) bool {
	if _, ok := LookupReserved(name); ok {
		return true
	}
	if isReservedVariable(name) {
		return true
	}
	return isDefineKeyword(name)
}
