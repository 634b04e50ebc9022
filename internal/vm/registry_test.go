package vm

import (
	"testing"

	"sigil/internal/costs"
	"sigil/internal/ident"
)

func TestLookupReserved(t *testing.T) {
	natives := []ident.Name{"+", "is-eq", "sha256", "begin", "not", "len", "print"}
	for _, name := range natives {
		c, ok := LookupReserved(name)
		if !ok {
			t.Fatalf("%s not registered", name)
		}
		if c.Kind != CallableNative {
			t.Errorf("%s kind = %v, want native", name, c.Kind)
		}
	}

	specials := []ident.Name{"if", "let", "match", "map", "fold", "var-get", "at-block", "tuple"}
	for _, name := range specials {
		c, ok := LookupReserved(name)
		if !ok {
			t.Fatalf("%s not registered", name)
		}
		if c.Kind != CallableSpecial {
			t.Errorf("%s kind = %v, want special", name, c.Kind)
		}
	}

	if _, ok := LookupReserved("frobnicate"); ok {
		t.Error("unknown name resolved")
	}
	if _, ok := LookupReserved("define-public"); ok {
		t.Error("definition keywords are not callable operators")
	}
}

func TestIsReserved(t *testing.T) {
	reserved := []ident.Name{
		"+", "let", "is-eq", "map-get?",
		"tx-sender", "contract-caller", "block-height", "none", "true", "false",
		"define-public", "define-map",
	}
	for _, name := range reserved {
		if !IsReserved(name) {
			t.Errorf("IsReserved(%q) = false", name)
		}
	}

	for _, name := range []ident.Name{"my-fn", "count", "x"} {
		if IsReserved(name) {
			t.Errorf("IsReserved(%q) = true", name)
		}
	}
}

func TestReservedNames(t *testing.T) {
	names := ReservedNames()
	if len(names) == 0 {
		t.Fatal("no reserved names")
	}
	seen := make(map[ident.Name]bool, len(names))
	for _, name := range names {
		if seen[name] {
			t.Fatalf("%s listed twice", name)
		}
		seen[name] = true
		if _, ok := LookupReserved(name); !ok {
			t.Fatalf("%s listed but not resolvable", name)
		}
	}
	if !seen["is-eq"] {
		t.Error("is-eq missing")
	}
}

// Every registry entry must carry exactly the handles its kind promises;
// a malformed entry would otherwise surface only when first dispatched.
func TestRegistryEntriesWellFormed(t *testing.T) {
	for _, name := range ReservedNames() {
		c, _ := LookupReserved(name)
		if c.Name == "" {
			t.Errorf("%s has no internal name", name)
		}
		handles := 0
		if c.Single != nil {
			handles++
		}
		if c.Double != nil {
			handles++
		}
		if c.VarArgs != nil {
			handles++
		}
		switch c.Kind {
		case CallableNative:
			if handles != 1 || c.Special != nil {
				t.Errorf("%s: native with %d handles", name, handles)
			}
			if c.Cost == costs.CostUnknown {
				t.Errorf("%s: native without a cost id", name)
			}
		case CallableSpecial:
			if handles != 0 || c.Special == nil {
				t.Errorf("%s: special with %d native handles", name, handles)
			}
		default:
			t.Errorf("%s: unknown kind %v", name, c.Kind)
		}
	}
}
