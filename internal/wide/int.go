package wide

import "math/bits"

// Int128 is a signed 128-bit integer in two's complement; the top bit of
// Hi carries the sign.
type Int128 struct {
	Hi uint64
	Lo uint64
}

var (
	// MinInt128 is -2^127.
	MinInt128 = Int128{Hi: 1 << 63}
	// MaxInt128 is 2^127 - 1.
	MaxInt128 = Int128{Hi: 1<<63 - 1, Lo: ^uint64(0)}

	// magnitude of MinInt128 as an unsigned value
	signBound = Uint128{Hi: 1 << 63}
)

// IntFromInt64 sign-extends v to 128 bits.
func IntFromInt64(v int64) Int128 {
	return Int128{Hi: uint64(v >> 63), Lo: uint64(v)}
}

// IsZero reports whether the signed integer is zero.
func (i Int128) IsZero() bool {
	return i.Hi == 0 && i.Lo == 0
}

// IsNegative reports whether the sign bit is set.
func (i Int128) IsNegative() bool {
	return i.Hi>>63 == 1
}

// Cmp compares two Int128 values as signed quantities.
func (i Int128) Cmp(v Int128) int {
	aHi := i.Hi ^ 1<<63
	bHi := v.Hi ^ 1<<63
	switch {
	case aHi < bHi:
		return -1
	case aHi > bHi:
		return 1
	case i.Lo < v.Lo:
		return -1
	case i.Lo > v.Lo:
		return 1
	}
	return 0
}

// Abs returns the magnitude as an unsigned value. Always representable,
// including MinInt128.
func (i Int128) Abs() Uint128 {
	if !i.IsNegative() {
		return Uint128{Hi: i.Hi, Lo: i.Lo}
	}
	lo, carry := bits.Add64(^i.Lo, 1, 0)
	return Uint128{Hi: ^i.Hi + carry, Lo: lo}
}

// LEBytes returns the 16-byte little-endian two's complement encoding.
func (i Int128) LEBytes() [16]byte {
	return Uint128{Hi: i.Hi, Lo: i.Lo}.LEBytes()
}

// ToUint128 reinterprets i as unsigned when it is not negative.
func (i Int128) ToUint128() (Uint128, bool) {
	if i.IsNegative() {
		return Uint128{}, false
	}
	return Uint128{Hi: i.Hi, Lo: i.Lo}, true
}

// IntNeg negates with overflow detection; negating MinInt128 fails.
func IntNeg(a Int128) (Int128, bool) {
	if a == MinInt128 {
		return Int128{}, false
	}
	lo, carry := bits.Add64(^a.Lo, 1, 0)
	return Int128{Hi: ^a.Hi + carry, Lo: lo}, true
}

// IntAdd adds with signed overflow detection.
func IntAdd(a, b Int128) (Int128, bool) {
	lo, carry := bits.Add64(a.Lo, b.Lo, 0)
	hi, _ := bits.Add64(a.Hi, b.Hi, carry)
	sum := Int128{Hi: hi, Lo: lo}
	if a.IsNegative() == b.IsNegative() && sum.IsNegative() != a.IsNegative() {
		return Int128{}, false
	}
	return sum, true
}

// IntSub subtracts with signed overflow detection.
func IntSub(a, b Int128) (Int128, bool) {
	lo, borrow := bits.Sub64(a.Lo, b.Lo, 0)
	hi, _ := bits.Sub64(a.Hi, b.Hi, borrow)
	diff := Int128{Hi: hi, Lo: lo}
	if a.IsNegative() != b.IsNegative() && diff.IsNegative() != a.IsNegative() {
		return Int128{}, false
	}
	return diff, true
}

// IntMul multiplies with signed overflow detection.
func IntMul(a, b Int128) (Int128, bool) {
	neg := a.IsNegative() != b.IsNegative()
	mag, ok := UintMul(a.Abs(), b.Abs())
	if !ok {
		return Int128{}, false
	}
	return intFromMagnitude(mag, neg)
}

// IntDivMod divides truncating toward zero; the remainder takes the sign
// of the dividend. ok is false for division by zero and MinInt128 / -1.
func IntDivMod(a, b Int128) (q, r Int128, ok bool) {
	if b.IsZero() {
		return Int128{}, Int128{}, false
	}
	if a == MinInt128 && b == IntFromInt64(-1) {
		return Int128{}, Int128{}, false
	}
	uq, ur, _ := UintDivMod(a.Abs(), b.Abs())
	q, ok = intFromMagnitude(uq, a.IsNegative() != b.IsNegative())
	if !ok {
		return Int128{}, Int128{}, false
	}
	r, ok = intFromMagnitude(ur, a.IsNegative())
	if !ok {
		return Int128{}, Int128{}, false
	}
	return q, r, true
}

// IntPow raises base to exp with overflow detection. 0^0 is 1.
func IntPow(base Int128, exp uint32) (Int128, bool) {
	result := IntFromInt64(1)
	for exp > 0 {
		if exp&1 == 1 {
			var ok bool
			result, ok = IntMul(result, base)
			if !ok {
				return Int128{}, false
			}
		}
		exp >>= 1
		if exp == 0 {
			break
		}
		var ok bool
		base, ok = IntMul(base, base)
		if !ok {
			return Int128{}, false
		}
	}
	return result, true
}

// IntXor is the bitwise exclusive or on the two's complement encoding.
func IntXor(a, b Int128) Int128 {
	return Int128{Hi: a.Hi ^ b.Hi, Lo: a.Lo ^ b.Lo}
}

func (i Int128) String() string {
	if !i.IsNegative() {
		return Uint128{Hi: i.Hi, Lo: i.Lo}.String()
	}
	return "-" + i.Abs().String()
}

// ParseInt128 reads a decimal literal with an optional sign.
func ParseInt128(s string) (Int128, bool) {
	neg := false
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	mag, ok := ParseUint128(s)
	if !ok {
		return Int128{}, false
	}
	return intFromMagnitude(mag, neg)
}

// intFromMagnitude folds an unsigned magnitude back into the signed range.
// The negative range admits one more value than the positive one.
func intFromMagnitude(mag Uint128, neg bool) (Int128, bool) {
	if neg {
		if mag.Cmp(signBound) > 0 {
			return Int128{}, false
		}
		lo, carry := bits.Add64(^mag.Lo, 1, 0)
		return Int128{Hi: ^mag.Hi + carry, Lo: lo}, true
	}
	if mag.Cmp(signBound) >= 0 {
		return Int128{}, false
	}
	return Int128{Hi: mag.Hi, Lo: mag.Lo}, true
}
