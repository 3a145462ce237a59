// Package bitops holds the numeric and bit-level primitives used by the
// memory view and the typed containers layered on it. Every function is
// pure and allocation free.
package bitops

import (
	"math/bits"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// DefaultAlignment is the natural pointer alignment of the platform.
const DefaultAlignment = int(unsafe.Alignof(uintptr(0)))

// BitsIn returns the width of T in bits.
func BitsIn[T constraints.Integer]() uint {
	var z T
	return uint(unsafe.Sizeof(z)) * 8
}

// AlignDown rounds n down to a multiple of grain.
// grain does not need to be a power of two. A zero grain panics.
func AlignDown[T constraints.Integer](n, grain T) T {
	return n - n%grain
}

// Align rounds n up to a multiple of grain.
// Values within grain-1 of the type's maximum wrap.
func Align[T constraints.Integer](n, grain T) T {
	return AlignDown(n+grain-1, grain)
}

// AlignPtr rounds n up to DefaultAlignment.
func AlignPtr[T constraints.Integer](n T) T {
	return Align(n, T(DefaultAlignment))
}

// IsNegative reports v < 0; always false for unsigned types.
func IsNegative[T constraints.Integer](v T) bool {
	return v < 0
}

// Absv returns the absolute value of v. The minimum value of a signed
// type is returned unchanged.
func Absv[T constraints.Integer](v T) T {
	if IsNegative(v) {
		return -v
	}
	return v
}

// Sign returns -1 for negative values, 1 for positive and 0 for 0.
func Sign[T constraints.Integer](v T) T {
	switch {
	case v > 0:
		return 1
	case IsNegative(v):
		return ^T(0) // -1
	default:
		return 0
	}
}

// Gcd returns the greatest common divisor. Gcd(a, 0) == Absv(a).
func Gcd[T constraints.Integer](a, b T) T {
	if b == 0 {
		return Absv(a)
	}
	return Gcd(b, a%b)
}

// Lcm returns the least common multiple; Lcm(0, 0) is 0.
func Lcm[T constraints.Integer](a, b T) T {
	g := Gcd(a, b)
	if g == 0 {
		return 0
	}
	return a / g * b
}

// DivRU divides n1 by n2 rounding away from zero.
func DivRU[T constraints.Integer](n1, n2 T) T {
	adj := n2 - 1
	if IsNegative(n1) {
		adj = -adj
	}
	return (n1 + adj) / n2
}

// FirstBit returns the index of the most significant set bit of v,
// counting bit 0 as the least significant, or fallback when v is 0.
func FirstBit[T constraints.Unsigned](v T, fallback uint) uint {
	if v == 0 {
		return fallback
	}
	return uint(bits.Len64(uint64(v))) - 1
}

// NextPow2 returns the smallest power of two >= v.
// Zero and values above 1<<31 wrap around to 1.
func NextPow2(v uint32) uint32 {
	r := v - 1
	if r >= 1<<31 {
		return 1
	}
	return 1 << bits.Len32(r)
}

// IsPow2 reports whether v is a non-zero power of two.
func IsPow2[T constraints.Integer](v T) bool {
	return v > 0 && v&(v-1) == 0
}

// BitMask returns a T with the lowest n bits set.
func BitMask[T constraints.Unsigned](n uint) T {
	w := BitsIn[T]()
	if n >= w {
		return ^T(0)
	}
	return ^T(0) >> (w - n)
}

// Rol rotates v left by n bits.
func Rol[T constraints.Unsigned](v T, n uint) T {
	w := BitsIn[T]()
	n %= w
	return v<<n | v>>(w-n)
}

// Ror rotates v right by n bits.
func Ror[T constraints.Unsigned](v T, n uint) T {
	w := BitsIn[T]()
	n %= w
	return v>>n | v<<(w-n)
}

// PackType replicates s across every lane of a B, e.g. 0xAB packed into
// a uint32 is 0xABABABAB.
func PackType[S, B constraints.Unsigned](s S) B {
	b := B(s)
	for h := BitsIn[S](); h < BitsIn[B](); h *= 2 {
		b = b<<h | b
	}
	return b
}
