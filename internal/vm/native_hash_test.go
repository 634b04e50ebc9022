package vm

import (
	"encoding/hex"
	"os"
	"testing"

	"gopkg.in/yaml.v3"

	"sigil/internal/ast"
	"sigil/internal/errs"
	"sigil/internal/types"
)

func TestHashKnownAnswers(t *testing.T) {
	data, err := os.ReadFile("testdata/hash_vectors.yaml")
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Vectors []struct {
			Name   string `yaml:"name"`
			Fn     string `yaml:"fn"`
			Input  string `yaml:"input"`
			Digest string `yaml:"digest"`
		} `yaml:"vectors"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Vectors) == 0 {
		t.Fatal("no vectors loaded")
	}

	env := newTestEnv()
	for _, vec := range doc.Vectors {
		t.Run(vec.Name, func(t *testing.T) {
			input, err := hex.DecodeString(vec.Input)
			if err != nil {
				t.Fatal(err)
			}
			v, err := evalIn(env, call(vec.Fn, bufLit(input...)))
			if err != nil {
				t.Fatal(err)
			}
			if v.Kind != types.VKBuffer {
				t.Fatalf("digest kind = %s, want buffer", v.Kind)
			}
			if got := hex.EncodeToString(v.Buffer); got != vec.Digest {
				t.Fatalf("digest = %s, want %s", got, vec.Digest)
			}
		})
	}
}

func TestHashDigestLengths(t *testing.T) {
	lengths := map[string]int{
		"hash160":    20,
		"sha256":     32,
		"sha512":     64,
		"sha512/256": 32,
		"keccak256":  32,
	}
	env := newTestEnv()
	for fn, want := range lengths {
		t.Run(fn, func(t *testing.T) {
			v, err := evalIn(env, call(fn, bufLit(1, 2, 3)))
			if err != nil {
				t.Fatal(err)
			}
			if len(v.Buffer) != want {
				t.Fatalf("digest length = %d, want %d", len(v.Buffer), want)
			}
		})
	}
}

func TestHashIntegerInputs(t *testing.T) {
	// Integers hash as their 16 little-endian bytes, so int 0, uint 0
	// and the 16-byte zero buffer all share a digest.
	zeroBuf := bufLit(make([]byte, 16)...)
	env := newTestEnv()
	for _, fn := range []string{"hash160", "sha256", "sha512", "sha512/256", "keccak256"} {
		t.Run(fn, func(t *testing.T) {
			fromBuf, err := evalIn(env, call(fn, zeroBuf))
			if err != nil {
				t.Fatal(err)
			}
			fromInt, err := evalIn(env, call(fn, intLit(0)))
			if err != nil {
				t.Fatal(err)
			}
			fromUint, err := evalIn(env, call(fn, uintLit(0)))
			if err != nil {
				t.Fatal(err)
			}
			wantValue(t, fromInt, fromBuf)
			wantValue(t, fromUint, fromBuf)
		})
	}
}

func TestHashRejectsOtherKinds(t *testing.T) {
	env := newTestEnv()
	for _, form := range []ast.Expr{
		call("sha256", boolLit(true)),
		call("hash160", call("list", intLit(1))),
		call("keccak256", someLit(1)),
	} {
		_, err := evalIn(env, form)
		wantCheckCode(t, err, errs.CheckUnionTypeValueError)
	}
}
