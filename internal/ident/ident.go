// Package ident defines the guarded identifier strings of the language.
//
// Each type wraps text validated once at construction: a value that exists
// is legal, and nothing downstream re-validates. All three types share the
// 128-byte length ceiling; the grammars differ.
package ident

import (
	"regexp"

	"fortio.org/safecast"

	"sigil/internal/errs"
)

// MaxStringLen is the byte-length ceiling for every guarded identifier.
const MaxStringLen uint8 = 128

var (
	nameRe     = regexp.MustCompile(`^[a-zA-Z]([a-zA-Z0-9]|[-_!?+<>=/*])*$|^[-+=/*]$|^[<>]=?$`)
	contractRe = regexp.MustCompile(`^[a-zA-Z]([a-zA-Z0-9]|[-_])*$|^__transient$`)
	urlRe      = regexp.MustCompile(`^[a-zA-Z0-9._~:/?#\[\]@!$&'()*+,;%=-]*$`)
)

// Name is a legal variable, function, or keyword name.
type Name string

// ContractName is a legal contract name. The pseudo-name __transient
// stands in for code evaluated outside any deployed contract.
type ContractName string

// URLString is a legal URL fragment used by imported trait references.
type URLString string

// NewName validates value against the name grammar.
func NewName(value string) (Name, error) {
	if !legalLength(value) || !nameRe.MatchString(value) {
		return "", errs.BadNameValue("name", value)
	}
	return Name(value), nil
}

// NewContractName validates value against the contract name grammar.
func NewContractName(value string) (ContractName, error) {
	if !legalLength(value) || !contractRe.MatchString(value) {
		return "", errs.BadNameValue("contract name", value)
	}
	return ContractName(value), nil
}

// NewURLString validates value against the URL grammar.
func NewURLString(value string) (URLString, error) {
	if !legalLength(value) || !urlRe.MatchString(value) {
		return "", errs.BadNameValue("url string", value)
	}
	return URLString(value), nil
}

// MustName builds a Name from a literal known to be legal; it panics on
// illegal input. Registry tables and tests use it.
func MustName(value string) Name {
	n, err := NewName(value)
	if err != nil {
		panic(err)
	}
	return n
}

// MustContractName is MustName for contract names.
func MustContractName(value string) ContractName {
	n, err := NewContractName(value)
	if err != nil {
		panic(err)
	}
	return n
}

// MustURLString is MustName for URL strings.
func MustURLString(value string) URLString {
	n, err := NewURLString(value)
	if err != nil {
		panic(err)
	}
	return n
}

func (n Name) String() string         { return string(n) }
func (n ContractName) String() string { return string(n) }
func (n URLString) String() string    { return string(n) }

// legalLength rejects text longer than MaxStringLen bytes.
func legalLength(s string) bool {
	n, err := safecast.Conv[uint8](len(s))
	return err == nil && n <= MaxStringLen
}
