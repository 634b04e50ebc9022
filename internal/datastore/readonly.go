package datastore

import (
	"sigil/internal/errs"
	"sigil/internal/ident"
	"sigil/internal/types"
)

// ReadOnly wraps base so that every mutating operation fails with a
// check error while reads pass through untouched. Views obtained via
// AtBlock inherit the restriction.
func ReadOnly(base Store) Store {
	return &readOnlyStore{base: base}
}

type readOnlyStore struct {
	base Store
}

func errReadOnlyWrite() error {
	return errs.NewCheckError(errs.CheckWriteAttemptedInReadOnly,
		"cannot modify state in a read-only context")
}

func (s *readOnlyStore) CreateVariable(contract types.QualifiedContractIdentifier, name ident.Name, value types.Value) error {
	return errReadOnlyWrite()
}

func (s *readOnlyStore) GetVariable(contract types.QualifiedContractIdentifier, name ident.Name) (types.Value, error) {
	return s.base.GetVariable(contract, name)
}

func (s *readOnlyStore) SetVariable(contract types.QualifiedContractIdentifier, name ident.Name, value types.Value) error {
	return errReadOnlyWrite()
}

func (s *readOnlyStore) CreateMap(contract types.QualifiedContractIdentifier, name ident.Name) error {
	return errReadOnlyWrite()
}

func (s *readOnlyStore) GetEntry(contract types.QualifiedContractIdentifier, name ident.Name, key types.Value) (types.Value, bool, error) {
	return s.base.GetEntry(contract, name, key)
}

func (s *readOnlyStore) SetEntry(contract types.QualifiedContractIdentifier, name ident.Name, key, value types.Value) error {
	return errReadOnlyWrite()
}

func (s *readOnlyStore) InsertEntry(contract types.QualifiedContractIdentifier, name ident.Name, key, value types.Value) (bool, error) {
	return false, errReadOnlyWrite()
}

func (s *readOnlyStore) DeleteEntry(contract types.QualifiedContractIdentifier, name ident.Name, key types.Value) (bool, error) {
	return false, errReadOnlyWrite()
}

func (s *readOnlyStore) AtBlock(hash BlockHash) (Store, error) {
	view, err := s.base.AtBlock(hash)
	if err != nil {
		return nil, err
	}
	return &readOnlyStore{base: view}, nil
}

func (s *readOnlyStore) Height() uint64 {
	return s.base.Height()
}
