package vm

import (
	"sigil/internal/ast"
	"sigil/internal/costs"
	"sigil/internal/datastore"
	"sigil/internal/errs"
	"sigil/internal/ident"
	"sigil/internal/types"
)

// The persisted-state forms name their variable or map directly and
// admission-check every key and value against the declared signature
// before touching the store, so a store never holds a value its
// declaration does not admit.

func specialFetchVariable(args []ast.Expr, env *Environment, ctx *LocalContext) (types.Value, error) {
	if err := errs.CheckArgumentCount(1, len(args)); err != nil {
		return types.Value{}, err
	}
	name, ok := args[0].MatchAtom()
	if !ok {
		return types.Value{}, errs.NewCheckError(errs.CheckExpectedName,
			"var-get names its variable directly")
	}
	if _, err := declaredVariable(env, name); err != nil {
		return types.Value{}, err
	}
	if err := env.charge(costs.CostFetchVar, 0); err != nil {
		return types.Value{}, err
	}
	return env.store.GetVariable(env.contract.ID(), name)
}

func specialSetVariable(args []ast.Expr, env *Environment, ctx *LocalContext) (types.Value, error) {
	if err := errs.CheckArgumentCount(2, len(args)); err != nil {
		return types.Value{}, err
	}
	name, ok := args[0].MatchAtom()
	if !ok {
		return types.Value{}, errs.NewCheckError(errs.CheckExpectedName,
			"var-set names its variable directly")
	}
	decl, err := declaredVariable(env, name)
	if err != nil {
		return types.Value{}, err
	}
	v, err := Eval(&args[1], env, ctx)
	if err != nil {
		return types.Value{}, err
	}
	if !typeAdmits(decl, v) {
		return types.Value{}, errs.TypeValue(decl.String(), v.String())
	}
	if err := env.charge(costs.CostSetVar, 0); err != nil {
		return types.Value{}, err
	}
	if err := env.store.SetVariable(env.contract.ID(), name, v); err != nil {
		return types.Value{}, err
	}
	return types.MakeBool(true), nil
}

func specialFetchEntry(args []ast.Expr, env *Environment, ctx *LocalContext) (types.Value, error) {
	name, _, key, err := mapKeyArgs("map-get?", 2, args, env, ctx)
	if err != nil {
		return types.Value{}, err
	}
	if err := env.charge(costs.CostFetchEntry, 0); err != nil {
		return types.Value{}, err
	}
	v, found, err := env.store.GetEntry(env.contract.ID(), name, key)
	if err != nil {
		return types.Value{}, err
	}
	if !found {
		return types.MakeNone(), nil
	}
	return types.MakeSome(v), nil
}

func specialSetEntry(args []ast.Expr, env *Environment, ctx *LocalContext) (types.Value, error) {
	name, key, value, err := mapKeyValueArgs("map-set", args, env, ctx)
	if err != nil {
		return types.Value{}, err
	}
	if err := env.charge(costs.CostSetEntry, 0); err != nil {
		return types.Value{}, err
	}
	if err := env.store.SetEntry(env.contract.ID(), name, key, value); err != nil {
		return types.Value{}, err
	}
	return types.MakeBool(true), nil
}

func specialInsertEntry(args []ast.Expr, env *Environment, ctx *LocalContext) (types.Value, error) {
	name, key, value, err := mapKeyValueArgs("map-insert", args, env, ctx)
	if err != nil {
		return types.Value{}, err
	}
	if err := env.charge(costs.CostSetEntry, 0); err != nil {
		return types.Value{}, err
	}
	inserted, err := env.store.InsertEntry(env.contract.ID(), name, key, value)
	if err != nil {
		return types.Value{}, err
	}
	return types.MakeBool(inserted), nil
}

func specialDeleteEntry(args []ast.Expr, env *Environment, ctx *LocalContext) (types.Value, error) {
	name, _, key, err := mapKeyArgs("map-delete", 2, args, env, ctx)
	if err != nil {
		return types.Value{}, err
	}
	if err := env.charge(costs.CostSetEntry, 0); err != nil {
		return types.Value{}, err
	}
	deleted, err := env.store.DeleteEntry(env.contract.ID(), name, key)
	if err != nil {
		return types.Value{}, err
	}
	return types.MakeBool(deleted), nil
}

// specialAtBlock evaluates its body against the sealed store view named
// by a 32-byte block hash. The view lives only in the child environment,
// so the present-day store is restored on every exit path, exactly as
// as-contract restores identity.
func specialAtBlock(args []ast.Expr, env *Environment, ctx *LocalContext) (types.Value, error) {
	if err := errs.CheckArgumentCount(2, len(args)); err != nil {
		return types.Value{}, err
	}
	if err := env.charge(costs.CostAtBlock, 0); err != nil {
		return types.Value{}, err
	}
	hashValue, err := Eval(&args[0], env, ctx)
	if err != nil {
		return types.Value{}, err
	}
	if hashValue.Kind != types.VKBuffer || len(hashValue.Buffer) != len(datastore.BlockHash{}) {
		return types.Value{}, errs.TypeValue("(buff 32)", hashValue.String())
	}
	var hash datastore.BlockHash
	copy(hash[:], hashValue.Buffer)
	view, err := env.store.AtBlock(hash)
	if err != nil {
		return types.Value{}, err
	}
	nested := env.nestWithStore(view)
	return Eval(&args[1], nested, ctx)
}

func declaredVariable(env *Environment, name ident.Name) (types.TypeSignature, error) {
	if env.contract != nil {
		if t, ok := env.contract.variableType(name); ok {
			return t, nil
		}
	}
	return types.TypeSignature{}, errs.NewCheckError(errs.CheckNoSuchDataVariable,
		"no data variable %q in this contract", name)
}

func declaredMap(env *Environment, name ident.Name) (mapSignature, error) {
	if env.contract != nil {
		if m, ok := env.contract.mapType(name); ok {
			return m, nil
		}
	}
	return mapSignature{}, errs.NewCheckError(errs.CheckNoSuchMap,
		"no data map %q in this contract", name)
}

// mapKeyArgs validates the (map-name key) shape shared by map-get? and
// map-delete and admission-checks the evaluated key.
func mapKeyArgs(form string, arity int, args []ast.Expr, env *Environment, ctx *LocalContext) (ident.Name, mapSignature, types.Value, error) {
	if err := errs.CheckArgumentCount(arity, len(args)); err != nil {
		return "", mapSignature{}, types.Value{}, err
	}
	name, ok := args[0].MatchAtom()
	if !ok {
		return "", mapSignature{}, types.Value{}, errs.NewCheckError(errs.CheckExpectedName,
			"%s names its map directly", form)
	}
	sig, err := declaredMap(env, name)
	if err != nil {
		return "", mapSignature{}, types.Value{}, err
	}
	key, err := Eval(&args[1], env, ctx)
	if err != nil {
		return "", mapSignature{}, types.Value{}, err
	}
	if !typeAdmits(sig.Key, key) {
		return "", mapSignature{}, types.Value{}, errs.TypeValue(sig.Key.String(), key.String())
	}
	return name, sig, key, nil
}

// mapKeyValueArgs validates the (map-name key value) shape of map-set
// and map-insert.
func mapKeyValueArgs(form string, args []ast.Expr, env *Environment, ctx *LocalContext) (ident.Name, types.Value, types.Value, error) {
	name, sig, key, err := mapKeyArgs(form, 3, args, env, ctx)
	if err != nil {
		return "", types.Value{}, types.Value{}, err
	}
	value, err := Eval(&args[2], env, ctx)
	if err != nil {
		return "", types.Value{}, types.Value{}, err
	}
	if !typeAdmits(sig.Value, value) {
		return "", types.Value{}, types.Value{}, errs.TypeValue(sig.Value.String(), value.String())
	}
	return name, key, value, nil
}
