package datastore

import (
	"testing"

	"sigil/internal/errs"
	"sigil/internal/ident"
	"sigil/internal/types"
)

func testContract(name string) types.QualifiedContractIdentifier {
	return types.QualifiedContractIdentifier{
		Issuer: types.StandardPrincipal{Version: 26, Hash: [20]byte{1, 2, 3}},
		Name:   ident.MustContractName(name),
	}
}

func wantCheckCode(t *testing.T, err error, code errs.CheckCode) {
	t.Helper()
	ce, ok := errs.AsCheck(err)
	if !ok {
		t.Fatalf("error = %v, want check error %s", err, code.ID())
	}
	if ce.Code != code {
		t.Fatalf("check code = %s, want %s", ce.Code.ID(), code.ID())
	}
}

func TestMemoryStoreVariables(t *testing.T) {
	s := NewMemoryStore()
	contract := testContract("tokens")
	name := ident.MustName("counter")

	if _, err := s.GetVariable(contract, name); err == nil {
		t.Fatal("reading an undeclared variable should fail")
	} else {
		wantCheckCode(t, err, errs.CheckNoSuchDataVariable)
	}
	if err := s.SetVariable(contract, name, types.MakeIntFromInt64(1)); err == nil {
		t.Fatal("writing an undeclared variable should fail")
	}

	if err := s.CreateVariable(contract, name, types.MakeIntFromInt64(1)); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateVariable(contract, name, types.MakeIntFromInt64(2)); err == nil {
		t.Fatal("redeclaring a variable should fail")
	} else {
		wantCheckCode(t, err, errs.CheckNameAlreadyUsed)
	}

	if err := s.SetVariable(contract, name, types.MakeIntFromInt64(7)); err != nil {
		t.Fatal(err)
	}
	v, err := s.GetVariable(contract, name)
	if err != nil {
		t.Fatal(err)
	}
	if !v.Equal(types.MakeIntFromInt64(7)) {
		t.Errorf("value = %s, want 7", v)
	}

	// The same name under another contract is a different variable.
	other := testContract("registry")
	if err := s.CreateVariable(other, name, types.MakeIntFromInt64(100)); err != nil {
		t.Fatal(err)
	}
	v, err = s.GetVariable(contract, name)
	if err != nil {
		t.Fatal(err)
	}
	if !v.Equal(types.MakeIntFromInt64(7)) {
		t.Errorf("value bled across contracts: %s", v)
	}
}

func TestMemoryStoreEntries(t *testing.T) {
	s := NewMemoryStore()
	contract := testContract("tokens")
	name := ident.MustName("balances")
	alice := types.MakeUIntFromUint64(1)
	bob := types.MakeUIntFromUint64(2)

	if _, _, err := s.GetEntry(contract, name, alice); err == nil {
		t.Fatal("reading an undeclared map should fail")
	} else {
		wantCheckCode(t, err, errs.CheckNoSuchMap)
	}

	if err := s.CreateMap(contract, name); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateMap(contract, name); err == nil {
		t.Fatal("redeclaring a map should fail")
	} else {
		wantCheckCode(t, err, errs.CheckNameAlreadyUsed)
	}

	if _, ok, err := s.GetEntry(contract, name, alice); err != nil || ok {
		t.Fatalf("empty map lookup = %v, %v", ok, err)
	}

	inserted, err := s.InsertEntry(contract, name, alice, types.MakeUIntFromUint64(10))
	if err != nil || !inserted {
		t.Fatalf("first insert = %v, %v", inserted, err)
	}
	inserted, err = s.InsertEntry(contract, name, alice, types.MakeUIntFromUint64(11))
	if err != nil || inserted {
		t.Fatalf("second insert = %v, %v, want refusal", inserted, err)
	}
	v, ok, err := s.GetEntry(contract, name, alice)
	if err != nil || !ok || !v.Equal(types.MakeUIntFromUint64(10)) {
		t.Fatalf("entry after refused insert = %s, %v, %v", v, ok, err)
	}

	if err := s.SetEntry(contract, name, alice, types.MakeUIntFromUint64(20)); err != nil {
		t.Fatal(err)
	}
	v, _, _ = s.GetEntry(contract, name, alice)
	if !v.Equal(types.MakeUIntFromUint64(20)) {
		t.Errorf("entry after set = %s, want u20", v)
	}

	if _, ok, _ := s.GetEntry(contract, name, bob); ok {
		t.Error("distinct keys should not collide")
	}

	deleted, err := s.DeleteEntry(contract, name, alice)
	if err != nil || !deleted {
		t.Fatalf("delete = %v, %v", deleted, err)
	}
	deleted, err = s.DeleteEntry(contract, name, alice)
	if err != nil || deleted {
		t.Fatalf("repeat delete = %v, %v, want absence", deleted, err)
	}
}

func TestMemoryStoreKeySpaces(t *testing.T) {
	// A variable and a map may share a name without colliding.
	s := NewMemoryStore()
	contract := testContract("tokens")
	name := ident.MustName("total")

	if err := s.CreateVariable(contract, name, types.MakeIntFromInt64(1)); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateMap(contract, name); err != nil {
		t.Fatal(err)
	}
	if err := s.SetEntry(contract, name, types.MakeBool(true), types.MakeIntFromInt64(2)); err != nil {
		t.Fatal(err)
	}
	v, err := s.GetVariable(contract, name)
	if err != nil || !v.Equal(types.MakeIntFromInt64(1)) {
		t.Fatalf("variable = %s, %v", v, err)
	}
}

func TestSealBlockSnapshots(t *testing.T) {
	s := NewMemoryStore()
	contract := testContract("tokens")
	name := ident.MustName("counter")
	h1 := BlockHash{1}
	h2 := BlockHash{2}

	if err := s.CreateVariable(contract, name, types.MakeIntFromInt64(1)); err != nil {
		t.Fatal(err)
	}
	s.SealBlock(h1)
	if err := s.SetVariable(contract, name, types.MakeIntFromInt64(2)); err != nil {
		t.Fatal(err)
	}
	s.SealBlock(h2)
	if err := s.SetVariable(contract, name, types.MakeIntFromInt64(3)); err != nil {
		t.Fatal(err)
	}

	if s.Height() != 2 {
		t.Errorf("height = %d, want 2", s.Height())
	}

	snap1, err := s.AtBlock(h1)
	if err != nil {
		t.Fatal(err)
	}
	v, err := snap1.GetVariable(contract, name)
	if err != nil || !v.Equal(types.MakeIntFromInt64(1)) {
		t.Fatalf("snapshot value = %s, %v, want 1", v, err)
	}
	if snap1.Height() != 0 {
		t.Errorf("snapshot height = %d, want 0", snap1.Height())
	}

	// Snapshots refuse writes.
	if err := snap1.SetVariable(contract, name, types.MakeIntFromInt64(9)); err == nil {
		t.Fatal("snapshot write should fail")
	} else {
		wantCheckCode(t, err, errs.CheckWriteAttemptedInReadOnly)
	}

	// Hopping between sealed blocks from inside a snapshot.
	snap2, err := snap1.AtBlock(h2)
	if err != nil {
		t.Fatal(err)
	}
	v, _ = snap2.GetVariable(contract, name)
	if !v.Equal(types.MakeIntFromInt64(2)) {
		t.Errorf("second snapshot value = %s, want 2", v)
	}

	if _, err := s.AtBlock(BlockHash{9, 9}); err == nil {
		t.Fatal("unknown hash should fail")
	} else if re, ok := errs.AsRuntime(err); !ok || re.Code != errs.RuntimeUnknownBlockHeaderHash {
		t.Fatalf("error = %v, want %s", err, errs.RuntimeUnknownBlockHeaderHash.ID())
	}

	// Live state is unaffected by snapshot reads.
	v, _ = s.GetVariable(contract, name)
	if !v.Equal(types.MakeIntFromInt64(3)) {
		t.Errorf("live value = %s, want 3", v)
	}
}

func TestRollbackDiscard(t *testing.T) {
	base := NewMemoryStore()
	contract := testContract("tokens")
	counter := ident.MustName("counter")
	balances := ident.MustName("balances")
	alice := types.MakeUIntFromUint64(1)

	if err := base.CreateVariable(contract, counter, types.MakeIntFromInt64(1)); err != nil {
		t.Fatal(err)
	}
	if err := base.CreateMap(contract, balances); err != nil {
		t.Fatal(err)
	}
	if err := base.SetEntry(contract, balances, alice, types.MakeUIntFromUint64(10)); err != nil {
		t.Fatal(err)
	}

	r := NewRollback(base)
	if err := r.SetVariable(contract, counter, types.MakeIntFromInt64(2)); err != nil {
		t.Fatal(err)
	}
	if _, err := r.DeleteEntry(contract, balances, alice); err != nil {
		t.Fatal(err)
	}

	// Pending writes are visible through the wrapper.
	v, err := r.GetVariable(contract, counter)
	if err != nil || !v.Equal(types.MakeIntFromInt64(2)) {
		t.Fatalf("pending read = %s, %v", v, err)
	}
	if _, ok, _ := r.GetEntry(contract, balances, alice); ok {
		t.Error("tombstone should mask the base entry")
	}

	r.Discard()

	v, _ = base.GetVariable(contract, counter)
	if !v.Equal(types.MakeIntFromInt64(1)) {
		t.Errorf("base variable after discard = %s, want 1", v)
	}
	if _, ok, _ := base.GetEntry(contract, balances, alice); !ok {
		t.Error("base entry should survive a discard")
	}
}

func TestRollbackCommit(t *testing.T) {
	base := NewMemoryStore()
	contract := testContract("tokens")
	counter := ident.MustName("counter")
	balances := ident.MustName("balances")
	alice := types.MakeUIntFromUint64(1)
	bob := types.MakeUIntFromUint64(2)

	if err := base.CreateMap(contract, balances); err != nil {
		t.Fatal(err)
	}
	if err := base.SetEntry(contract, balances, bob, types.MakeUIntFromUint64(5)); err != nil {
		t.Fatal(err)
	}

	r := NewRollback(base)
	if err := r.CreateVariable(contract, counter, types.MakeIntFromInt64(1)); err != nil {
		t.Fatal(err)
	}
	if err := r.SetVariable(contract, counter, types.MakeIntFromInt64(2)); err != nil {
		t.Fatal(err)
	}
	if inserted, err := r.InsertEntry(contract, balances, alice, types.MakeUIntFromUint64(10)); err != nil || !inserted {
		t.Fatalf("insert = %v, %v", inserted, err)
	}
	if inserted, _ := r.InsertEntry(contract, balances, bob, types.MakeUIntFromUint64(6)); inserted {
		t.Error("insert should see base entries")
	}
	if _, err := r.DeleteEntry(contract, balances, bob); err != nil {
		t.Fatal(err)
	}
	// A tombstoned entry can be inserted again.
	if inserted, err := r.InsertEntry(contract, balances, bob, types.MakeUIntFromUint64(7)); err != nil || !inserted {
		t.Fatalf("insert over tombstone = %v, %v", inserted, err)
	}

	if err := r.Commit(); err != nil {
		t.Fatal(err)
	}

	v, err := base.GetVariable(contract, counter)
	if err != nil || !v.Equal(types.MakeIntFromInt64(2)) {
		t.Fatalf("committed variable = %s, %v, want 2", v, err)
	}
	v, ok, _ := base.GetEntry(contract, balances, alice)
	if !ok || !v.Equal(types.MakeUIntFromUint64(10)) {
		t.Errorf("committed entry = %s, %v", v, ok)
	}
	v, ok, _ = base.GetEntry(contract, balances, bob)
	if !ok || !v.Equal(types.MakeUIntFromUint64(7)) {
		t.Errorf("reinserted entry = %s, %v", v, ok)
	}
}

func TestRollbackDeclarations(t *testing.T) {
	base := NewMemoryStore()
	contract := testContract("tokens")
	counter := ident.MustName("counter")
	if err := base.CreateVariable(contract, counter, types.MakeIntFromInt64(1)); err != nil {
		t.Fatal(err)
	}

	r := NewRollback(base)

	// Redeclaring a base name fails before commit.
	if err := r.CreateVariable(contract, counter, types.MakeIntFromInt64(0)); err == nil {
		t.Fatal("redeclaring a committed variable should fail")
	} else {
		wantCheckCode(t, err, errs.CheckNameAlreadyUsed)
	}

	// Writes to names nobody declared fail through the wrapper too.
	if err := r.SetVariable(contract, ident.MustName("ghost"), types.MakeIntFromInt64(0)); err == nil {
		t.Fatal("writing an undeclared variable should fail")
	}
	if err := r.SetEntry(contract, ident.MustName("ghosts"), probeKey, types.MakeIntFromInt64(0)); err == nil {
		t.Fatal("writing an undeclared map should fail")
	} else {
		wantCheckCode(t, err, errs.CheckNoSuchMap)
	}

	// A map declared in the overlay works before commit and lands on commit.
	fresh := ident.MustName("allowances")
	if err := r.CreateMap(contract, fresh); err != nil {
		t.Fatal(err)
	}
	if err := r.CreateMap(contract, fresh); err == nil {
		t.Fatal("redeclaring a pending map should fail")
	}
	if _, ok, err := r.GetEntry(contract, fresh, probeKey); err != nil || ok {
		t.Fatalf("fresh map lookup = %v, %v", ok, err)
	}
	if err := r.Commit(); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := base.GetEntry(contract, fresh, probeKey); err != nil || ok {
		t.Fatalf("map declaration did not commit: %v, %v", ok, err)
	}
}
