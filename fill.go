package memlink

import (
	"encoding/binary"

	"github.com/rawbytedev/memlink/pkg/bitops"
)

// fillPattern tiles seg with pattern; len(seg) is a multiple of
// len(pattern). Short patterns are widened to a 64-bit seed first so the
// doubling copy starts from a full word.
func fillPattern(seg, pattern []byte) {
	if len(seg) == 0 {
		return
	}
	var n int
	switch {
	case len(seg) < 8:
		n = copy(seg, pattern)
	case len(pattern) == 1:
		binary.NativeEndian.PutUint64(seg, bitops.PackType[uint8, uint64](pattern[0]))
		n = 8
	case len(pattern) == 2:
		binary.NativeEndian.PutUint64(seg, bitops.PackType[uint16, uint64](binary.NativeEndian.Uint16(pattern)))
		n = 8
	case len(pattern) == 4:
		binary.NativeEndian.PutUint64(seg, bitops.PackType[uint32, uint64](binary.NativeEndian.Uint32(pattern)))
		n = 8
	default:
		n = copy(seg, pattern)
	}
	for n < len(seg) {
		n += copy(seg[n:], seg[:n])
	}
}
