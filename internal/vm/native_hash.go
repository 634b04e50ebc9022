package vm

import (
	"crypto/sha256"
	"crypto/sha512"

	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"

	"sigil/internal/errs"
	"sigil/internal/types"
)

var hashableUnion = []string{"int", "uint", "(buff 1048576)"}

// hashInput flattens a hashable value to bytes. Integers hash their
// 16-byte little-endian encoding, signed and unsigned alike; buffers
// hash their raw contents. Anything else is a union type error, so the
// 16 zero bytes and the integer 0 hash identically while true never
// hashes at all.
func hashInput(v types.Value) ([]byte, error) {
	switch v.Kind {
	case types.VKInt:
		b := v.Int.LEBytes()
		return b[:], nil
	case types.VKUInt:
		b := v.UInt.LEBytes()
		return b[:], nil
	case types.VKBuffer:
		return v.Buffer, nil
	default:
		return nil, errs.UnionTypeValue(hashableUnion, v.String())
	}
}

// nativeHash160 is RIPEMD-160 over SHA-256, the 20-byte address digest.
func nativeHash160(env *Environment, arg types.Value) (types.Value, error) {
	data, err := hashInput(arg)
	if err != nil {
		return types.Value{}, err
	}
	sum := sha256.Sum256(data)
	r := ripemd160.New()
	r.Write(sum[:])
	return types.MustBuffer(r.Sum(nil)), nil
}

func nativeSha256(env *Environment, arg types.Value) (types.Value, error) {
	data, err := hashInput(arg)
	if err != nil {
		return types.Value{}, err
	}
	sum := sha256.Sum256(data)
	return types.MustBuffer(sum[:]), nil
}

func nativeSha512(env *Environment, arg types.Value) (types.Value, error) {
	data, err := hashInput(arg)
	if err != nil {
		return types.Value{}, err
	}
	sum := sha512.Sum512(data)
	return types.MustBuffer(sum[:]), nil
}

func nativeSha512Trunc256(env *Environment, arg types.Value) (types.Value, error) {
	data, err := hashInput(arg)
	if err != nil {
		return types.Value{}, err
	}
	sum := sha512.Sum512_256(data)
	return types.MustBuffer(sum[:]), nil
}

// nativeKeccak256 uses the legacy Keccak padding, not the standardized
// SHA-3 variant.
func nativeKeccak256(env *Environment, arg types.Value) (types.Value, error) {
	data, err := hashInput(arg)
	if err != nil {
		return types.Value{}, err
	}
	k := sha3.NewLegacyKeccak256()
	k.Write(data)
	return types.MustBuffer(k.Sum(nil)), nil
}
