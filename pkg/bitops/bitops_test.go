package bitops

import (
	"math"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlign(t *testing.T) {
	require.Equal(t, 16, Align(9, 8))
	require.Equal(t, 8, Align(8, 8))
	require.Equal(t, 0, Align(0, 8))
	require.Equal(t, 8, AlignDown(15, 8))
	require.Equal(t, uint32(12), Align(uint32(10), 3))
	require.Equal(t, uint32(9), AlignDown(uint32(10), 3))
	require.Equal(t, Align(13, DefaultAlignment), AlignPtr(13))
}

func TestAlignBounds(t *testing.T) {
	condition := func(n uint32, g uint16) bool {
		grain := uint64(g%1024) + 1
		v := uint64(n)
		lo, hi := AlignDown(v, grain), Align(v, grain)
		return lo <= v && v <= hi &&
			v-lo < grain && hi-v < grain &&
			lo%grain == 0 && hi%grain == 0 &&
			AlignDown(lo, grain) == lo && Align(hi, grain) == hi
	}
	require.NoError(t, quick.Check(condition, nil))
}

func TestAbsSign(t *testing.T) {
	assert.Equal(t, 5, Absv(-5))
	assert.Equal(t, 5, Absv(5))
	assert.Equal(t, uint8(200), Absv(uint8(200)))
	assert.Equal(t, int8(math.MinInt8), Absv(int8(math.MinInt8)))

	assert.Equal(t, -1, Sign(-42))
	assert.Equal(t, 1, Sign(42))
	assert.Equal(t, 0, Sign(0))
	assert.Equal(t, uint16(1), Sign(uint16(7)))
	assert.Equal(t, uint16(0), Sign(uint16(0)))

	assert.True(t, IsNegative(int64(-1)))
	assert.False(t, IsNegative(uint64(math.MaxUint64)))
}

func TestGcdLcm(t *testing.T) {
	assert.Equal(t, 6, Gcd(54, 24))
	assert.Equal(t, 7, Gcd(-7, 0))
	assert.Equal(t, 7, Gcd(0, 7))
	assert.Equal(t, 2, Gcd(-4, 6))
	assert.Equal(t, 0, Gcd(0, 0))
	assert.Equal(t, 12, Lcm(4, 6))
	assert.Equal(t, 0, Lcm(0, 0))
	assert.Equal(t, uint64(1)<<40, Lcm(uint64(1)<<40, 1<<20))

	condition := func(a, b uint16) bool {
		g := Gcd(uint32(a), uint32(b))
		if g == 0 {
			return a == 0 && b == 0
		}
		return uint32(a)%g == 0 && uint32(b)%g == 0
	}
	require.NoError(t, quick.Check(condition, nil))
}

func TestDivRU(t *testing.T) {
	assert.Equal(t, 3, DivRU(7, 3))
	assert.Equal(t, 2, DivRU(6, 3))
	assert.Equal(t, -3, DivRU(-7, 3))
	assert.Equal(t, 0, DivRU(0, 3))
	assert.Equal(t, uint(1), DivRU(uint(1), 4096))
}

func TestFirstBit(t *testing.T) {
	assert.Equal(t, uint(99), FirstBit(uint32(0), 99))
	assert.Equal(t, uint(0), FirstBit(uint32(1), 99))
	assert.Equal(t, uint(31), FirstBit(uint32(math.MaxUint32), 99))
	assert.Equal(t, uint(63), FirstBit(uint64(1)<<63, 99))
	assert.Equal(t, uint(7), FirstBit(uint8(0x80), 0))
	for i := uint(0); i < 64; i++ {
		v := uint64(1) << i
		require.Equal(t, i, FirstBit(v, 64), "bit %d", i)
		require.Equal(t, i, FirstBit(v|(v>>1), 64), "bit %d with neighbour", i)
	}
}

func TestNextPow2(t *testing.T) {
	assert.Equal(t, uint32(1), NextPow2(1))
	assert.Equal(t, uint32(2), NextPow2(2))
	assert.Equal(t, uint32(4), NextPow2(3))
	assert.Equal(t, uint32(1024), NextPow2(1000))
	assert.Equal(t, uint32(1)<<31, NextPow2(1<<31))
	assert.Equal(t, uint32(1)<<31, NextPow2(1<<30+1))

	// wraparound
	assert.Equal(t, uint32(1), NextPow2(0))
	assert.Equal(t, uint32(1), NextPow2(1<<31+1))
	assert.Equal(t, uint32(1), NextPow2(math.MaxUint32))

	condition := func(v uint32) bool {
		v = v>>1 + 1 // [1, 2^31]
		p := NextPow2(v)
		return IsPow2(p) && p >= v && (p == 1 || p>>1 < v)
	}
	require.NoError(t, quick.Check(condition, nil))
}

func TestBitMask(t *testing.T) {
	assert.Equal(t, uint8(0), BitMask[uint8](0))
	assert.Equal(t, uint8(0x0F), BitMask[uint8](4))
	assert.Equal(t, uint8(0xFF), BitMask[uint8](8))
	assert.Equal(t, uint8(0xFF), BitMask[uint8](12))
	assert.Equal(t, uint64(math.MaxUint64), BitMask[uint64](64))
	assert.Equal(t, uint(32), BitsIn[int32]())
}

func TestRotateBits(t *testing.T) {
	assert.Equal(t, uint8(0x0F), Rol(uint8(0xF0), 4))
	assert.Equal(t, uint16(0x0003), Rol(uint16(0x8001), 1))
	assert.Equal(t, uint16(0x0801), Ror(uint16(0x1002), 1))
	assert.Equal(t, uint32(0xDEADBEEF), Rol(uint32(0xDEADBEEF), 0))
	assert.Equal(t, uint32(0xDEADBEEF), Ror(uint32(0xDEADBEEF), 32))

	condition := func(v uint64, n uint8) bool {
		return Ror(Rol(v, uint(n)), uint(n)) == v
	}
	require.NoError(t, quick.Check(condition, nil))
}

func TestPackType(t *testing.T) {
	assert.Equal(t, uint32(0xABABABAB), PackType[uint8, uint32](0xAB))
	assert.Equal(t, uint64(0x1234123412341234), PackType[uint16, uint64](0x1234))
	assert.Equal(t, uint8(0x7F), PackType[uint8, uint8](0x7F))
}
