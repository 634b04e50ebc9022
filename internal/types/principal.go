package types

import (
	"encoding/hex"
	"strings"

	"sigil/internal/ident"
)

// StandardPrincipal identifies an account: a version byte plus the 20-byte
// hash of its public key.
type StandardPrincipal struct {
	Version uint8
	Hash    [20]byte
}

func (p StandardPrincipal) String() string {
	raw := make([]byte, 0, 21)
	raw = append(raw, p.Version)
	raw = append(raw, p.Hash[:]...)
	return "S" + strings.ToUpper(hex.EncodeToString(raw))
}

// QualifiedContractIdentifier names a deployed contract by issuer and
// contract name.
type QualifiedContractIdentifier struct {
	Issuer StandardPrincipal
	Name   ident.ContractName
}

// TransientContract is the identifier for code evaluated outside any
// deployed contract, such as a free-standing expression.
func TransientContract() QualifiedContractIdentifier {
	return QualifiedContractIdentifier{
		Issuer: StandardPrincipal{Version: 1},
		Name:   ident.ContractName("__transient"),
	}
}

func (q QualifiedContractIdentifier) String() string {
	return q.Issuer.String() + "." + q.Name.String()
}

// PrincipalData is either a standard account or a contract identity.
type PrincipalData struct {
	Issuer     StandardPrincipal
	Contract   ident.ContractName // set only when IsContract
	IsContract bool
}

// StandardPrincipalData wraps an account identity.
func StandardPrincipalData(p StandardPrincipal) PrincipalData {
	return PrincipalData{Issuer: p}
}

// ContractPrincipalData wraps a contract identity.
func ContractPrincipalData(id QualifiedContractIdentifier) PrincipalData {
	return PrincipalData{Issuer: id.Issuer, Contract: id.Name, IsContract: true}
}

// ContractID rebuilds the qualified identifier of a contract principal.
func (p PrincipalData) ContractID() (QualifiedContractIdentifier, bool) {
	if !p.IsContract {
		return QualifiedContractIdentifier{}, false
	}
	return QualifiedContractIdentifier{Issuer: p.Issuer, Name: p.Contract}, true
}

func (p PrincipalData) String() string {
	if p.IsContract {
		return "'" + p.Issuer.String() + "." + p.Contract.String()
	}
	return "'" + p.Issuer.String()
}

// TraitIdentifier names a trait declared by a contract.
type TraitIdentifier struct {
	Name       ident.Name
	ContractID QualifiedContractIdentifier
}

func (t TraitIdentifier) String() string {
	return t.ContractID.String() + "." + t.Name.String()
}
