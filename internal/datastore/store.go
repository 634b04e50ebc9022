// Package datastore persists contract data between evaluations.
//
// A Store keeps the data variables and maps declared by contracts, keyed
// by the owning contract identifier. Stored values travel by reference:
// implementations never copy or mutate them, and callers must treat every
// value read from a store as immutable.
package datastore

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"sigil/internal/ident"
	"sigil/internal/types"
)

// BlockHash identifies a sealed block snapshot.
type BlockHash [32]byte

// Store is the persistence collaborator of the evaluator.
//
// Variables and maps must be declared (Create*) before any other access;
// reads and writes against undeclared names fail with a check error.
// Declaration happens once, during contract initialization.
type Store interface {
	// CreateVariable declares a data variable and sets its initial value.
	CreateVariable(contract types.QualifiedContractIdentifier, name ident.Name, value types.Value) error
	GetVariable(contract types.QualifiedContractIdentifier, name ident.Name) (types.Value, error)
	SetVariable(contract types.QualifiedContractIdentifier, name ident.Name, value types.Value) error

	// CreateMap declares a data map with no entries.
	CreateMap(contract types.QualifiedContractIdentifier, name ident.Name) error
	// GetEntry reports the value under key and whether the entry exists.
	GetEntry(contract types.QualifiedContractIdentifier, name ident.Name, key types.Value) (types.Value, bool, error)
	// SetEntry writes the entry unconditionally.
	SetEntry(contract types.QualifiedContractIdentifier, name ident.Name, key, value types.Value) error
	// InsertEntry writes the entry only when absent; false means it existed.
	InsertEntry(contract types.QualifiedContractIdentifier, name ident.Name, key, value types.Value) (bool, error)
	// DeleteEntry removes the entry; false means it was already absent.
	DeleteEntry(contract types.QualifiedContractIdentifier, name ident.Name, key types.Value) (bool, error)

	// AtBlock returns a read-only view of the state sealed under hash.
	AtBlock(hash BlockHash) (Store, error)

	// Height reports the block height of this view.
	Height() uint64
}

// Key spaces - do not change values, encoded keys outlive the process.
const (
	spaceVariable uint8 = 1
	spaceMap      uint8 = 2
)

// storeKey is the composite key for one stored datum. Entry holds the
// canonical rendering of the map key value and stays empty for variables
// and map declarations.
type storeKey struct {
	Contract string `msgpack:"c"`
	Space    uint8  `msgpack:"s"`
	Name     string `msgpack:"n"`
	Entry    string `msgpack:"e"`
}

func encodeKey(k storeKey) (string, error) {
	raw, err := msgpack.Marshal(&k)
	if err != nil {
		return "", fmt.Errorf("encode store key: %w", err)
	}
	return string(raw), nil
}

func variableKey(contract types.QualifiedContractIdentifier, name ident.Name) (string, error) {
	return encodeKey(storeKey{Contract: contract.String(), Space: spaceVariable, Name: name.String()})
}

func mapKey(contract types.QualifiedContractIdentifier, name ident.Name) (string, error) {
	return encodeKey(storeKey{Contract: contract.String(), Space: spaceMap, Name: name.String()})
}

func entryKey(contract types.QualifiedContractIdentifier, name ident.Name, key types.Value) (string, error) {
	return encodeKey(storeKey{
		Contract: contract.String(),
		Space:    spaceMap,
		Name:     name.String(),
		Entry:    key.String(),
	})
}
