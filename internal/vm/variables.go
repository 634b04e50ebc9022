package vm

import (
	"sigil/internal/ident"
	"sigil/internal/types"
)

// Reserved variable names. These resolve after local bindings, so a let
// binding can never shadow them (the binder rejects the collision), but
// resolution order still matters for lookup cost accounting.
const (
	varTxSender       ident.Name = "tx-sender"
	varContractCaller ident.Name = "contract-caller"
	varBlockHeight    ident.Name = "block-height"
	varNone           ident.Name = "none"
	varTrue           ident.Name = "true"
	varFalse          ident.Name = "false"
)

func isReservedVariable(name ident.Name) bool {
	switch name {
	case varTxSender, varContractCaller, varBlockHeight, varNone, varTrue, varFalse:
		return true
	default:
		return false
	}
}

// lookupReservedVariable resolves the ambient variables the language
// defines. The bool reports whether name is reserved at all; a reserved
// name can still fail when the environment cannot supply its value,
// such as tx-sender outside a transaction.
func lookupReservedVariable(name ident.Name, env *Environment) (types.Value, bool, error) {
	switch name {
	case varTxSender:
		sender, err := env.Sender()
		if err != nil {
			return types.Value{}, true, err
		}
		return types.MakePrincipal(sender), true, nil
	case varContractCaller:
		caller, err := env.Caller()
		if err != nil {
			return types.Value{}, true, err
		}
		return types.MakePrincipal(caller), true, nil
	case varBlockHeight:
		return types.MakeUIntFromUint64(env.store.Height()), true, nil
	case varNone:
		return types.MakeNone(), true, nil
	case varTrue:
		return types.MakeBool(true), true, nil
	case varFalse:
		return types.MakeBool(false), true, nil
	default:
		return types.Value{}, false, nil
	}
}
