// Package wide implements the 128-bit integers the language computes with.
// Values are two uint64 limbs; arithmetic reports overflow explicitly
// instead of wrapping.
package wide

import (
	"encoding/binary"
	"math/bits"
	"strconv"
)

// Uint128 is an unsigned 128-bit integer.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// MaxUint128 is 2^128 - 1.
var MaxUint128 = Uint128{Hi: ^uint64(0), Lo: ^uint64(0)}

// UintFromUint64 widens v to 128 bits.
func UintFromUint64(v uint64) Uint128 {
	return Uint128{Lo: v}
}

// IsZero reports whether the unsigned integer is zero.
func (u Uint128) IsZero() bool {
	return u.Hi == 0 && u.Lo == 0
}

// Cmp compares two Uint128 values.
func (u Uint128) Cmp(v Uint128) int {
	switch {
	case u.Hi < v.Hi:
		return -1
	case u.Hi > v.Hi:
		return 1
	case u.Lo < v.Lo:
		return -1
	case u.Lo > v.Lo:
		return 1
	}
	return 0
}

// Uint64 narrows to uint64 if the value fits.
func (u Uint128) Uint64() (uint64, bool) {
	if u.Hi != 0 {
		return 0, false
	}
	return u.Lo, true
}

// BitLen returns the number of bits required to represent u.
func (u Uint128) BitLen() int {
	if u.Hi != 0 {
		return 64 + bits.Len64(u.Hi)
	}
	return bits.Len64(u.Lo)
}

// LEBytes returns the 16-byte little-endian encoding.
func (u Uint128) LEBytes() [16]byte {
	var out [16]byte
	binary.LittleEndian.PutUint64(out[:8], u.Lo)
	binary.LittleEndian.PutUint64(out[8:], u.Hi)
	return out
}

// UintFromLEBytes reads a 16-byte little-endian encoding.
func UintFromLEBytes(b [16]byte) Uint128 {
	return Uint128{
		Lo: binary.LittleEndian.Uint64(b[:8]),
		Hi: binary.LittleEndian.Uint64(b[8:]),
	}
}

// ToInt128 reinterprets u as a signed value when it fits the signed range.
func (u Uint128) ToInt128() (Int128, bool) {
	if u.Hi >= 1<<63 {
		return Int128{}, false
	}
	return Int128{Hi: u.Hi, Lo: u.Lo}, true
}

// UintAdd adds with overflow detection.
func UintAdd(a, b Uint128) (Uint128, bool) {
	lo, carry := bits.Add64(a.Lo, b.Lo, 0)
	hi, carry := bits.Add64(a.Hi, b.Hi, carry)
	if carry != 0 {
		return Uint128{}, false
	}
	return Uint128{Hi: hi, Lo: lo}, true
}

// UintSub subtracts with underflow detection.
func UintSub(a, b Uint128) (Uint128, bool) {
	lo, borrow := bits.Sub64(a.Lo, b.Lo, 0)
	hi, borrow := bits.Sub64(a.Hi, b.Hi, borrow)
	if borrow != 0 {
		return Uint128{}, false
	}
	return Uint128{Hi: hi, Lo: lo}, true
}

// UintMul multiplies with overflow detection.
func UintMul(a, b Uint128) (Uint128, bool) {
	if a.Hi != 0 && b.Hi != 0 {
		return Uint128{}, false
	}
	hi, lo := bits.Mul64(a.Lo, b.Lo)
	crossHiA, crossLoA := bits.Mul64(a.Hi, b.Lo)
	crossHiB, crossLoB := bits.Mul64(a.Lo, b.Hi)
	if crossHiA != 0 || crossHiB != 0 {
		return Uint128{}, false
	}
	hi, carry := bits.Add64(hi, crossLoA, 0)
	if carry != 0 {
		return Uint128{}, false
	}
	hi, carry = bits.Add64(hi, crossLoB, 0)
	if carry != 0 {
		return Uint128{}, false
	}
	return Uint128{Hi: hi, Lo: lo}, true
}

// UintDivMod performs division with remainder; ok is false when b is zero.
// Quotients are exact, remainders satisfy a = q*b + r with r < b.
func UintDivMod(a, b Uint128) (q, r Uint128, ok bool) {
	if b.IsZero() {
		return Uint128{}, Uint128{}, false
	}
	if a.Cmp(b) < 0 {
		return Uint128{}, a, true
	}
	if b.Hi == 0 {
		qHi := a.Hi / b.Lo
		rem := a.Hi % b.Lo
		qLo, rem2 := bits.Div64(rem, a.Lo, b.Lo)
		return Uint128{Hi: qHi, Lo: qLo}, Uint128{Lo: rem2}, true
	}

	// Shift-subtract over the bit-length gap; at most 64 rounds since
	// b occupies the high limb.
	shift := a.BitLen() - b.BitLen()
	den := uintShl(b, uint(shift))
	for i := shift; i >= 0; i-- {
		if a.Cmp(den) >= 0 {
			a, _ = UintSub(a, den)
			q = uintSetBit(q, uint(i))
		}
		den = uintShr1(den)
	}
	return q, a, true
}

// UintPow raises base to exp with overflow detection. 0^0 is 1.
func UintPow(base Uint128, exp uint32) (Uint128, bool) {
	result := UintFromUint64(1)
	for exp > 0 {
		if exp&1 == 1 {
			var ok bool
			result, ok = UintMul(result, base)
			if !ok {
				return Uint128{}, false
			}
		}
		exp >>= 1
		if exp == 0 {
			break
		}
		var ok bool
		base, ok = UintMul(base, base)
		if !ok {
			return Uint128{}, false
		}
	}
	return result, true
}

// UintXor is the bitwise exclusive or.
func UintXor(a, b Uint128) Uint128 {
	return Uint128{Hi: a.Hi ^ b.Hi, Lo: a.Lo ^ b.Lo}
}

func (u Uint128) String() string {
	if u.Hi == 0 {
		return strconv.FormatUint(u.Lo, 10)
	}
	buf := make([]byte, 0, 40)
	for !u.IsZero() {
		var rem uint64
		u, rem = uintDivMod10(u)
		buf = append(buf, byte('0'+rem))
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// ParseUint128 reads a decimal literal.
func ParseUint128(s string) (Uint128, bool) {
	if s == "" {
		return Uint128{}, false
	}
	var u Uint128
	ten := UintFromUint64(10)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return Uint128{}, false
		}
		shifted, ok := UintMul(u, ten)
		if !ok {
			return Uint128{}, false
		}
		u, ok = UintAdd(shifted, UintFromUint64(uint64(c-'0')))
		if !ok {
			return Uint128{}, false
		}
	}
	return u, true
}

func uintDivMod10(u Uint128) (Uint128, uint64) {
	qHi := u.Hi / 10
	rem := u.Hi % 10
	qLo, rem2 := bits.Div64(rem, u.Lo, 10)
	return Uint128{Hi: qHi, Lo: qLo}, rem2
}

func uintShl(u Uint128, n uint) Uint128 {
	switch {
	case n == 0:
		return u
	case n >= 128:
		return Uint128{}
	case n >= 64:
		return Uint128{Hi: u.Lo << (n - 64)}
	default:
		return Uint128{Hi: u.Hi<<n | u.Lo>>(64-n), Lo: u.Lo << n}
	}
}

func uintShr1(u Uint128) Uint128 {
	return Uint128{Hi: u.Hi >> 1, Lo: u.Lo>>1 | u.Hi<<63}
}

func uintSetBit(u Uint128, n uint) Uint128 {
	if n >= 64 {
		u.Hi |= 1 << (n - 64)
	} else {
		u.Lo |= 1 << n
	}
	return u
}
