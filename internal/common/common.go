package common

import "math"

// MaxVarintLen64 is the longest encoding WriteVarUintTo produces.
const MaxVarintLen64 = 10

// WriteVarUintTo appends varint-encoded x to dst using a small stack scratch.
func WriteVarUintTo(dst []byte, x uint64) []byte {
	var scratch [MaxVarintLen64]byte
	i := 0
	for x >= 0x80 {
		scratch[i] = byte(x) | 0x80
		x >>= 7
		i++
	}
	scratch[i] = byte(x)
	i++
	return append(dst, scratch[:i]...)
}

// ReadVarUint decodes a varint from b returning value and bytes consumed.
// It returns (0, 0) when b ends mid-varint or the value overflows 64 bits.
func ReadVarUint(b []byte) (uint64, int) {
	var x uint64
	var s uint
	for i, c := range b {
		if i == MaxVarintLen64 {
			return 0, 0
		}
		x |= uint64(c&0x7F) << s
		if c&0x80 == 0 {
			return x, i + 1
		}
		s += 7
	}
	return 0, 0
}

// InRange reports whether [start, start+n) lies inside [0, size) without
// overflowing int.
func InRange(start, n, size int) bool {
	return start >= 0 && n >= 0 && start <= size && n <= size-start
}

// MulFits multiplies two non-negative ints, reporting false on overflow.
func MulFits(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a != 0 && b > math.MaxInt/a {
		return 0, false
	}
	return a * b, true
}
