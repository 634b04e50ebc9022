package vm

import (
	"sigil/internal/costs"
	"sigil/internal/datastore"
	"sigil/internal/errs"
	"sigil/internal/ident"
	"sigil/internal/trace"
	"sigil/internal/types"
)

// mapSignature records the declared key and value types of a data map.
type mapSignature struct {
	Key   types.TypeSignature
	Value types.TypeSignature
}

// ContractContext holds everything one deployed contract defines: its
// functions, its constants, and the declared types of its data variables
// and maps. It is populated by InitializeContract and read-only afterwards.
type ContractContext struct {
	id        types.QualifiedContractIdentifier
	functions map[ident.Name]*DefinedFunction
	constants map[ident.Name]types.Value
	varTypes  map[ident.Name]types.TypeSignature
	mapTypes  map[ident.Name]mapSignature
}

// NewContractContext returns an empty context for the given contract.
func NewContractContext(id types.QualifiedContractIdentifier) *ContractContext {
	return &ContractContext{
		id:        id,
		functions: make(map[ident.Name]*DefinedFunction),
		constants: make(map[ident.Name]types.Value),
		varTypes:  make(map[ident.Name]types.TypeSignature),
		mapTypes:  make(map[ident.Name]mapSignature),
	}
}

// ID returns the contract's qualified identifier.
func (c *ContractContext) ID() types.QualifiedContractIdentifier {
	return c.id
}

// LookupFunction resolves a function defined by this contract.
func (c *ContractContext) LookupFunction(name ident.Name) (*DefinedFunction, bool) {
	fn, ok := c.functions[name]
	return fn, ok
}

// LookupConstant resolves a constant defined by this contract.
func (c *ContractContext) LookupConstant(name ident.Name) (types.Value, bool) {
	v, ok := c.constants[name]
	return v, ok
}

func (c *ContractContext) variableType(name ident.Name) (types.TypeSignature, bool) {
	t, ok := c.varTypes[name]
	return t, ok
}

func (c *ContractContext) mapType(name ident.Name) (mapSignature, bool) {
	m, ok := c.mapTypes[name]
	return m, ok
}

// nameUsed reports whether any definition in the contract claims name.
func (c *ContractContext) nameUsed(name ident.Name) bool {
	if _, ok := c.functions[name]; ok {
		return true
	}
	if _, ok := c.constants[name]; ok {
		return true
	}
	if _, ok := c.varTypes[name]; ok {
		return true
	}
	_, ok := c.mapTypes[name]
	return ok
}

// Environment is the mutable execution state owned by one in-flight
// evaluation. No two evaluations ever share an Environment, so the budget
// needs no synchronization: check-then-charge is atomic under
// single-threaded execution.
type Environment struct {
	store    datastore.Store
	cost     costs.Tracker
	tracer   trace.Tracer
	contract *ContractContext
	stack    *CallStack
	sender   *types.PrincipalData
	caller   *types.PrincipalData
}

// NewEnvironment assembles an environment around a contract. A nil cost
// tracker runs unmetered; a nil tracer stays silent.
func NewEnvironment(store datastore.Store, cost costs.Tracker, tracer trace.Tracer, contract *ContractContext) *Environment {
	if cost == nil {
		cost = costs.NewFree()
	}
	if tracer == nil {
		tracer = trace.Nop
	}
	return &Environment{
		store:    store,
		cost:     cost,
		tracer:   tracer,
		contract: contract,
		stack:    NewCallStack(),
	}
}

// SetSender makes p the transaction origin: both tx-sender and
// contract-caller resolve to it until as-contract switches identities.
func (e *Environment) SetSender(p types.PrincipalData) {
	principal := p
	e.sender = &principal
	e.caller = &principal
}

// Sender reports the acting principal, failing when none was set.
func (e *Environment) Sender() (types.PrincipalData, error) {
	if e.sender == nil {
		return types.PrincipalData{}, errs.NewRuntimeError(errs.RuntimeNoSenderInContext,
			"no sender in this context")
	}
	return *e.sender, nil
}

// Caller reports the direct calling principal, failing when none was set.
func (e *Environment) Caller() (types.PrincipalData, error) {
	if e.caller == nil {
		return types.PrincipalData{}, errs.NewRuntimeError(errs.RuntimeNoSenderInContext,
			"no caller in this context")
	}
	return *e.caller, nil
}

// Store returns the store this evaluation reads and writes.
func (e *Environment) Store() datastore.Store {
	return e.store
}

// Contract returns the contract this evaluation runs inside.
func (e *Environment) Contract() *ContractContext {
	return e.contract
}

// Cost returns the budget tracker, for callers that report consumption.
func (e *Environment) Cost() costs.Tracker {
	return e.cost
}

func (e *Environment) charge(id costs.CostID, size uint64) error {
	return e.cost.Charge(id, size)
}

// nestAsPrincipal returns a child environment acting as p. Budget, call
// stack, store and contract are shared; only the identity changes, and
// only for the child.
func (e *Environment) nestAsPrincipal(p types.PrincipalData) *Environment {
	child := *e
	principal := p
	child.sender = &principal
	child.caller = &principal
	return &child
}

// nestWithStore returns a child environment reading from store.
func (e *Environment) nestWithStore(store datastore.Store) *Environment {
	child := *e
	child.store = store
	return &child
}

func (e *Environment) traceDepth(ctx *LocalContext) int {
	return e.stack.Depth() + ctx.Depth()
}
