package datastore

import (
	"slices"

	"sigil/internal/errs"
	"sigil/internal/ident"
	"sigil/internal/types"
)

// Rollback buffers writes against a base store so a failed transaction
// can be discarded without touching committed state. Reads see pending
// writes first, then fall through to the base.
//
// Not safe for concurrent use; each transaction gets its own wrapper.
type Rollback struct {
	base        Store
	createdVars map[string]bool
	createdMaps map[string]pendingMap
	vars        map[string]pendingVar
	entries     map[string]pendingEntry
}

type pendingVar struct {
	contract types.QualifiedContractIdentifier
	name     ident.Name
	value    types.Value
}

type pendingMap struct {
	contract types.QualifiedContractIdentifier
	name     ident.Name
}

type pendingEntry struct {
	contract types.QualifiedContractIdentifier
	name     ident.Name
	key      types.Value
	value    types.Value
	deleted  bool
}

// NewRollback wraps base. Writes stay pending until Commit.
func NewRollback(base Store) *Rollback {
	r := &Rollback{base: base}
	r.Discard()
	return r
}

// probeKey is any well-formed value; it only ever feeds GetEntry to learn
// whether the base store knows a map.
var probeKey = types.MakeBool(true)

func (r *Rollback) CreateVariable(contract types.QualifiedContractIdentifier, name ident.Name, value types.Value) error {
	k, err := variableKey(contract, name)
	if err != nil {
		return err
	}
	if r.createdVars[k] {
		return errs.NewCheckError(errs.CheckNameAlreadyUsed, "data variable %q already declared in %s", name, contract)
	}
	if _, err := r.base.GetVariable(contract, name); err == nil {
		return errs.NewCheckError(errs.CheckNameAlreadyUsed, "data variable %q already declared in %s", name, contract)
	} else if ce, ok := errs.AsCheck(err); !ok || ce.Code != errs.CheckNoSuchDataVariable {
		return err
	}
	r.createdVars[k] = true
	r.vars[k] = pendingVar{contract: contract, name: name, value: value}
	return nil
}

func (r *Rollback) GetVariable(contract types.QualifiedContractIdentifier, name ident.Name) (types.Value, error) {
	k, err := variableKey(contract, name)
	if err != nil {
		return types.Value{}, err
	}
	if pv, ok := r.vars[k]; ok {
		return pv.value, nil
	}
	return r.base.GetVariable(contract, name)
}

func (r *Rollback) SetVariable(contract types.QualifiedContractIdentifier, name ident.Name, value types.Value) error {
	k, err := variableKey(contract, name)
	if err != nil {
		return err
	}
	if _, pending := r.vars[k]; !pending {
		// Probe the base so writes to undeclared variables still fail.
		if _, err := r.base.GetVariable(contract, name); err != nil {
			return err
		}
	}
	r.vars[k] = pendingVar{contract: contract, name: name, value: value}
	return nil
}

func (r *Rollback) CreateMap(contract types.QualifiedContractIdentifier, name ident.Name) error {
	k, err := mapKey(contract, name)
	if err != nil {
		return err
	}
	if _, ok := r.createdMaps[k]; ok {
		return errs.NewCheckError(errs.CheckNameAlreadyUsed, "data map %q already declared in %s", name, contract)
	}
	if _, _, err := r.base.GetEntry(contract, name, probeKey); err == nil {
		return errs.NewCheckError(errs.CheckNameAlreadyUsed, "data map %q already declared in %s", name, contract)
	} else if ce, ok := errs.AsCheck(err); !ok || ce.Code != errs.CheckNoSuchMap {
		return err
	}
	r.createdMaps[k] = pendingMap{contract: contract, name: name}
	return nil
}

// requireMap returns nil when the map is declared, either pending here or
// committed in the base; otherwise the base's check error.
func (r *Rollback) requireMap(contract types.QualifiedContractIdentifier, name ident.Name) error {
	k, err := mapKey(contract, name)
	if err != nil {
		return err
	}
	if _, ok := r.createdMaps[k]; ok {
		return nil
	}
	_, _, err = r.base.GetEntry(contract, name, probeKey)
	return err
}

func (r *Rollback) GetEntry(contract types.QualifiedContractIdentifier, name ident.Name, key types.Value) (types.Value, bool, error) {
	if err := r.requireMap(contract, name); err != nil {
		return types.Value{}, false, err
	}
	mk, err := mapKey(contract, name)
	if err != nil {
		return types.Value{}, false, err
	}
	ek, err := entryKey(contract, name, key)
	if err != nil {
		return types.Value{}, false, err
	}
	if pe, ok := r.entries[ek]; ok {
		if pe.deleted {
			return types.Value{}, false, nil
		}
		return pe.value, true, nil
	}
	if _, ok := r.createdMaps[mk]; ok {
		return types.Value{}, false, nil
	}
	return r.base.GetEntry(contract, name, key)
}

func (r *Rollback) SetEntry(contract types.QualifiedContractIdentifier, name ident.Name, key, value types.Value) error {
	if err := r.requireMap(contract, name); err != nil {
		return err
	}
	ek, err := entryKey(contract, name, key)
	if err != nil {
		return err
	}
	r.entries[ek] = pendingEntry{contract: contract, name: name, key: key, value: value}
	return nil
}

func (r *Rollback) InsertEntry(contract types.QualifiedContractIdentifier, name ident.Name, key, value types.Value) (bool, error) {
	_, present, err := r.GetEntry(contract, name, key)
	if err != nil {
		return false, err
	}
	if present {
		return false, nil
	}
	ek, err := entryKey(contract, name, key)
	if err != nil {
		return false, err
	}
	r.entries[ek] = pendingEntry{contract: contract, name: name, key: key, value: value}
	return true, nil
}

func (r *Rollback) DeleteEntry(contract types.QualifiedContractIdentifier, name ident.Name, key types.Value) (bool, error) {
	_, present, err := r.GetEntry(contract, name, key)
	if err != nil {
		return false, err
	}
	if !present {
		return false, nil
	}
	ek, err := entryKey(contract, name, key)
	if err != nil {
		return false, err
	}
	r.entries[ek] = pendingEntry{contract: contract, name: name, key: key, deleted: true}
	return true, nil
}

// AtBlock resolves through the base: sealed history never includes
// pending writes.
func (r *Rollback) AtBlock(hash BlockHash) (Store, error) {
	return r.base.AtBlock(hash)
}

func (r *Rollback) Height() uint64 {
	return r.base.Height()
}

// Commit applies every pending write to the base store and resets the
// wrapper. Writes go out in sorted key order so commits are deterministic:
// variable declarations, variable writes, map declarations, then entries.
func (r *Rollback) Commit() error {
	for _, k := range sortedKeys(r.createdVars) {
		pv := r.vars[k]
		if err := r.base.CreateVariable(pv.contract, pv.name, pv.value); err != nil {
			return err
		}
	}
	for _, k := range sortedKeys(r.vars) {
		if r.createdVars[k] {
			continue
		}
		pv := r.vars[k]
		if err := r.base.SetVariable(pv.contract, pv.name, pv.value); err != nil {
			return err
		}
	}
	for _, k := range sortedKeys(r.createdMaps) {
		pm := r.createdMaps[k]
		if err := r.base.CreateMap(pm.contract, pm.name); err != nil {
			return err
		}
	}
	for _, k := range sortedKeys(r.entries) {
		pe := r.entries[k]
		if pe.deleted {
			if _, err := r.base.DeleteEntry(pe.contract, pe.name, pe.key); err != nil {
				return err
			}
			continue
		}
		if err := r.base.SetEntry(pe.contract, pe.name, pe.key, pe.value); err != nil {
			return err
		}
	}
	r.Discard()
	return nil
}

// Discard drops every pending write.
func (r *Rollback) Discard() {
	r.createdVars = make(map[string]bool)
	r.createdMaps = make(map[string]pendingMap)
	r.vars = make(map[string]pendingVar)
	r.entries = make(map[string]pendingEntry)
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
