package datastore

import (
	"sync"

	"sigil/internal/errs"
	"sigil/internal/ident"
	"sigil/internal/types"
)

// MemoryStore is the in-process Store used by tests and the demo driver.
// Thread-safe for concurrent access.
type MemoryStore struct {
	mu        sync.RWMutex
	vars      map[string]types.Value
	maps      map[string]bool
	entries   map[string]types.Value
	snapshots map[BlockHash]*snapshotStore
	height    uint64
}

// NewMemoryStore returns an empty store at height zero.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		vars:      make(map[string]types.Value),
		maps:      make(map[string]bool),
		entries:   make(map[string]types.Value),
		snapshots: make(map[BlockHash]*snapshotStore),
	}
}

func (s *MemoryStore) CreateVariable(contract types.QualifiedContractIdentifier, name ident.Name, value types.Value) error {
	k, err := variableKey(contract, name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vars[k]; ok {
		return errs.NewCheckError(errs.CheckNameAlreadyUsed, "data variable %q already declared in %s", name, contract)
	}
	s.vars[k] = value
	return nil
}

func (s *MemoryStore) GetVariable(contract types.QualifiedContractIdentifier, name ident.Name) (types.Value, error) {
	k, err := variableKey(contract, name)
	if err != nil {
		return types.Value{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vars[k]
	if !ok {
		return types.Value{}, errs.NewCheckError(errs.CheckNoSuchDataVariable, "no data variable %q in %s", name, contract)
	}
	return v, nil
}

func (s *MemoryStore) SetVariable(contract types.QualifiedContractIdentifier, name ident.Name, value types.Value) error {
	k, err := variableKey(contract, name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vars[k]; !ok {
		return errs.NewCheckError(errs.CheckNoSuchDataVariable, "no data variable %q in %s", name, contract)
	}
	s.vars[k] = value
	return nil
}

func (s *MemoryStore) CreateMap(contract types.QualifiedContractIdentifier, name ident.Name) error {
	k, err := mapKey(contract, name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.maps[k] {
		return errs.NewCheckError(errs.CheckNameAlreadyUsed, "data map %q already declared in %s", name, contract)
	}
	s.maps[k] = true
	return nil
}

func (s *MemoryStore) GetEntry(contract types.QualifiedContractIdentifier, name ident.Name, key types.Value) (types.Value, bool, error) {
	mk, err := mapKey(contract, name)
	if err != nil {
		return types.Value{}, false, err
	}
	ek, err := entryKey(contract, name, key)
	if err != nil {
		return types.Value{}, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.maps[mk] {
		return types.Value{}, false, errs.NewCheckError(errs.CheckNoSuchMap, "no data map %q in %s", name, contract)
	}
	v, ok := s.entries[ek]
	return v, ok, nil
}

func (s *MemoryStore) SetEntry(contract types.QualifiedContractIdentifier, name ident.Name, key, value types.Value) error {
	mk, err := mapKey(contract, name)
	if err != nil {
		return err
	}
	ek, err := entryKey(contract, name, key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.maps[mk] {
		return errs.NewCheckError(errs.CheckNoSuchMap, "no data map %q in %s", name, contract)
	}
	s.entries[ek] = value
	return nil
}

func (s *MemoryStore) InsertEntry(contract types.QualifiedContractIdentifier, name ident.Name, key, value types.Value) (bool, error) {
	mk, err := mapKey(contract, name)
	if err != nil {
		return false, err
	}
	ek, err := entryKey(contract, name, key)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.maps[mk] {
		return false, errs.NewCheckError(errs.CheckNoSuchMap, "no data map %q in %s", name, contract)
	}
	if _, ok := s.entries[ek]; ok {
		return false, nil
	}
	s.entries[ek] = value
	return true, nil
}

func (s *MemoryStore) DeleteEntry(contract types.QualifiedContractIdentifier, name ident.Name, key types.Value) (bool, error) {
	mk, err := mapKey(contract, name)
	if err != nil {
		return false, err
	}
	ek, err := entryKey(contract, name, key)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.maps[mk] {
		return false, errs.NewCheckError(errs.CheckNoSuchMap, "no data map %q in %s", name, contract)
	}
	if _, ok := s.entries[ek]; !ok {
		return false, nil
	}
	delete(s.entries, ek)
	return true, nil
}

// SealBlock registers the current state as the snapshot for hash and
// advances the height by one, like a block being mined. A later seal
// under the same hash replaces the earlier snapshot.
func (s *MemoryStore) SealBlock(hash BlockHash) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := &snapshotStore{
		parent:  s,
		vars:    make(map[string]types.Value, len(s.vars)),
		maps:    make(map[string]bool, len(s.maps)),
		entries: make(map[string]types.Value, len(s.entries)),
		height:  s.height,
	}
	for k, v := range s.vars {
		snap.vars[k] = v
	}
	for k := range s.maps {
		snap.maps[k] = true
	}
	for k, v := range s.entries {
		snap.entries[k] = v
	}
	s.snapshots[hash] = snap
	s.height++
}

func (s *MemoryStore) AtBlock(hash BlockHash) (Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[hash]
	if !ok {
		return nil, errs.NewRuntimeError(errs.RuntimeUnknownBlockHeaderHash, "no sealed block with header hash 0x%x", hash[:])
	}
	return snap, nil
}

func (s *MemoryStore) Height() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.height
}

// snapshotStore is the frozen view of one sealed block. Its maps never
// change after construction, so reads need no locking; writes are refused.
type snapshotStore struct {
	parent  *MemoryStore
	vars    map[string]types.Value
	maps    map[string]bool
	entries map[string]types.Value
	height  uint64
}

func errSealedWrite() error {
	return errs.NewCheckError(errs.CheckWriteAttemptedInReadOnly, "cannot write to a sealed block view")
}

func (s *snapshotStore) CreateVariable(types.QualifiedContractIdentifier, ident.Name, types.Value) error {
	return errSealedWrite()
}

func (s *snapshotStore) GetVariable(contract types.QualifiedContractIdentifier, name ident.Name) (types.Value, error) {
	k, err := variableKey(contract, name)
	if err != nil {
		return types.Value{}, err
	}
	v, ok := s.vars[k]
	if !ok {
		return types.Value{}, errs.NewCheckError(errs.CheckNoSuchDataVariable, "no data variable %q in %s", name, contract)
	}
	return v, nil
}

func (s *snapshotStore) SetVariable(types.QualifiedContractIdentifier, ident.Name, types.Value) error {
	return errSealedWrite()
}

func (s *snapshotStore) CreateMap(types.QualifiedContractIdentifier, ident.Name) error {
	return errSealedWrite()
}

func (s *snapshotStore) GetEntry(contract types.QualifiedContractIdentifier, name ident.Name, key types.Value) (types.Value, bool, error) {
	mk, err := mapKey(contract, name)
	if err != nil {
		return types.Value{}, false, err
	}
	ek, err := entryKey(contract, name, key)
	if err != nil {
		return types.Value{}, false, err
	}
	if !s.maps[mk] {
		return types.Value{}, false, errs.NewCheckError(errs.CheckNoSuchMap, "no data map %q in %s", name, contract)
	}
	v, ok := s.entries[ek]
	return v, ok, nil
}

func (s *snapshotStore) SetEntry(types.QualifiedContractIdentifier, ident.Name, types.Value, types.Value) error {
	return errSealedWrite()
}

func (s *snapshotStore) InsertEntry(types.QualifiedContractIdentifier, ident.Name, types.Value, types.Value) (bool, error) {
	return false, errSealedWrite()
}

func (s *snapshotStore) DeleteEntry(types.QualifiedContractIdentifier, ident.Name, types.Value) (bool, error) {
	return false, errSealedWrite()
}

// AtBlock hops to another sealed block through the parent registry, so
// nested views work from inside a snapshot.
func (s *snapshotStore) AtBlock(hash BlockHash) (Store, error) {
	return s.parent.AtBlock(hash)
}

func (s *snapshotStore) Height() uint64 {
	return s.height
}
