package byteorder

import (
	"encoding/binary"
	"math"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/require"
)

func TestBswap(t *testing.T) {
	require.Equal(t, uint8(0x12), Bswap(uint8(0x12)))
	require.Equal(t, uint16(0x3412), Bswap(uint16(0x1234)))
	require.Equal(t, uint32(0x78563412), Bswap(uint32(0x12345678)))
	require.Equal(t, uint64(0xEFCDAB8967452301), Bswap(uint64(0x0123456789ABCDEF)))
	require.Equal(t, int16(-2), Bswap(int16(-257))) // 0xFEFF -> 0xFFFE
	require.Equal(t, int32(-1), Bswap(int32(-1)))
}

func TestConversionsMatchEncodingBinary(t *testing.T) {
	buf := make([]byte, 8)
	v := uint64(0x0102030405060708)

	binary.LittleEndian.PutUint64(buf, v)
	require.Equal(t, v, LeToNative(binary.NativeEndian.Uint64(buf)))

	binary.BigEndian.PutUint64(buf, v)
	require.Equal(t, v, BeToNative(binary.NativeEndian.Uint64(buf)))

	binary.NativeEndian.PutUint32(buf, NativeToBe(uint32(0xCAFEBABE)))
	require.Equal(t, []byte{0xCA, 0xFE, 0xBA, 0xBE}, buf[:4])

	binary.NativeEndian.PutUint16(buf, NativeToLe(uint16(0xBEEF)))
	require.Equal(t, []byte{0xEF, 0xBE}, buf[:2])
}

func TestRoundTripAllWidths(t *testing.T) {
	for _, v := range []uint64{0, math.MaxUint64, 1, 0x8000000000000000} {
		require.Equal(t, uint8(v), NativeToLe(LeToNative(uint8(v))))
		require.Equal(t, uint8(v), NativeToBe(BeToNative(uint8(v))))
		require.Equal(t, uint16(v), NativeToLe(LeToNative(uint16(v))))
		require.Equal(t, uint16(v), NativeToBe(BeToNative(uint16(v))))
		require.Equal(t, uint32(v), NativeToLe(LeToNative(uint32(v))))
		require.Equal(t, uint32(v), NativeToBe(BeToNative(uint32(v))))
		require.Equal(t, v, NativeToLe(LeToNative(v)))
		require.Equal(t, v, NativeToBe(BeToNative(v)))
	}
	condition := func(a int8, b int16, c int32, d int64) bool {
		return NativeToBe(BeToNative(a)) == a &&
			NativeToBe(BeToNative(b)) == b &&
			NativeToLe(LeToNative(c)) == c &&
			NativeToBe(BeToNative(d)) == d &&
			FromNative(Big, ToNative(Big, d)) == d
	}
	require.NoError(t, quick.Check(condition, nil))
}

func TestOrder(t *testing.T) {
	require.True(t, Native.IsNative())
	require.NotEqual(t, Little.IsNative(), Big.IsNative())
	require.Equal(t, NativeOrder(), Native.Resolve())
	require.Equal(t, binary.BigEndian, Big.ByteOrder())
	require.Equal(t, binary.LittleEndian, Little.ByteOrder())
	require.Equal(t, "native", Native.String())
	require.Equal(t, "Order(9)", Order(9).String())

	require.True(t, Little.Valid())
	require.True(t, Big.Valid())
	require.True(t, Native.Valid())
	require.False(t, Order(0).Valid())
	require.False(t, (Native + 1).Valid())

	for in, want := range map[string]Order{"LE": Little, "big": Big, " be ": Big, "native": Native, "": Native} {
		got, err := ParseOrder(in)
		require.NoError(t, err)
		require.Equal(t, want, got, in)
	}
	_, err := ParseOrder("middle")
	require.ErrorIs(t, err, ErrUnknownOrder)

	var o Order
	require.NoError(t, o.UnmarshalText([]byte("little")))
	require.Equal(t, Little, o)
	txt, err := Big.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "big", string(txt))
}

func TestToNative(t *testing.T) {
	v := uint32(0x11223344)
	require.Equal(t, v, ToNative(Native, v))
	if NativeOrder() == Little {
		require.Equal(t, v, ToNative(Little, v))
		require.Equal(t, uint32(0x44332211), ToNative(Big, v))
	} else {
		require.Equal(t, v, ToNative(Big, v))
		require.Equal(t, uint32(0x44332211), ToNative(Little, v))
	}
}
