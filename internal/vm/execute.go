package vm

import (
	"strconv"

	"sigil/internal/datastore"
	"sigil/internal/errs"
	"sigil/internal/ident"
	"sigil/internal/trace"
	"sigil/internal/types"
)

// ExecuteTransaction runs one externally callable function of an
// initialized contract. It is both resolution boundaries at once: a
// short-return that unwound this far becomes the ordinary result, and
// the store write set commits only for a public function that returned
// (ok v). Everything else, error outcomes included, leaves the store
// exactly as it was.
func ExecuteTransaction(env *Environment, function ident.Name, args []types.Value) (types.Value, error) {
	fn, ok := env.contract.LookupFunction(function)
	if !ok {
		return types.Value{}, errs.NewCheckError(errs.CheckUndefinedFunction,
			"contract has no function %q", function)
	}
	if fn.DefineType() == DefinePrivate {
		return types.Value{}, errs.NewCheckError(errs.CheckUndefinedFunction,
			"contract has no public function %q", function)
	}

	emitBoundary(env, trace.KindBegin, "transaction",
		newFunctionIdentifier(env.contract.ID(), function).String())

	if fn.DefineType() == DefineReadOnly {
		inner := env.nestWithStore(datastore.ReadOnly(env.store))
		result, err := applyBoundary(fn, args, inner)
		emitTransactionEnd(env, err)
		return result, err
	}

	rollback := datastore.NewRollback(env.store)
	inner := env.nestWithStore(rollback)
	result, err := applyBoundary(fn, args, inner)
	if err != nil {
		rollback.Discard()
		emitTransactionEnd(env, err)
		return types.Value{}, err
	}
	if result.Kind != types.VKResponse {
		rollback.Discard()
		err := errs.NewCheckError(errs.CheckPublicFunctionMustReturnResponse,
			"public function %s returned %s, not a response", function, result)
		emitTransactionEnd(env, err)
		return types.Value{}, err
	}
	if result.Response.Committed {
		if err := rollback.Commit(); err != nil {
			emitTransactionEnd(env, err)
			return types.Value{}, err
		}
	} else {
		rollback.Discard()
	}
	emitTransactionEnd(env, nil)
	return result, nil
}

// applyBoundary applies fn and resolves any short-return that escaped
// it. Apply already resolves short-returns raised inside the body; this
// second net exists so the transaction boundary can never leak one to
// its caller.
func applyBoundary(fn *DefinedFunction, args []types.Value, env *Environment) (types.Value, error) {
	result, err := fn.Apply(args, env)
	if err != nil {
		if sr, ok := AsShortReturn(err); ok {
			return sr.Value, nil
		}
		return types.Value{}, err
	}
	return result, nil
}

func emitBoundary(env *Environment, kind trace.Kind, name, detail string) {
	if !env.tracer.Level().ShouldEmit(trace.ScopeBoundary) {
		return
	}
	env.tracer.Emit(trace.Event{
		Kind:   kind,
		Scope:  trace.ScopeBoundary,
		Name:   name,
		Detail: detail,
	})
}

func emitTransactionEnd(env *Environment, err error) {
	if !env.tracer.Level().ShouldEmit(trace.ScopeBoundary) {
		return
	}
	env.tracer.Emit(trace.Event{
		Kind:   trace.KindEnd,
		Scope:  trace.ScopeBoundary,
		Name:   "transaction",
		Detail: outcomeLabel(err),
		Extra: map[string]string{
			"consumed": strconv.FormatUint(env.cost.Consumed(), 10),
		},
	})
}
