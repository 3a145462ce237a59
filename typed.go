package memlink

import (
	"encoding/binary"
	"fmt"

	"github.com/rawbytedev/memlink/internal/common"
	"github.com/rawbytedev/memlink/pkg/byteorder"
)

func (m *MemLink) window(op string, off, n int) ([]byte, error) {
	if err := m.live(); err != nil {
		return nil, err
	}
	if !common.InRange(off, n, len(m.data)) {
		return nil, &RangeError{Op: op, Start: off, N: n, Size: len(m.data)}
	}
	return m.data[off : off+n], nil
}

// orderedWindow is window for multi-byte access in byte order o.
func (m *MemLink) orderedWindow(op string, off, n int, o byteorder.Order) ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("memlink: %s at %d: %w: %v", op, off, byteorder.ErrUnknownOrder, o)
	}
	return m.window(op, off, n)
}

// PutUint8 stores v at off.
func (m *MemLink) PutUint8(off int, v uint8) error {
	b, err := m.window("put", off, 1)
	if err != nil {
		return err
	}
	b[0] = v
	return nil
}

// Uint8 loads the byte at off.
func (m *MemLink) Uint8(off int) (uint8, error) {
	b, err := m.window("get", off, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// PutUint16 stores v at off in byte order o. An order other than Little,
// Big or Native is rejected with byteorder.ErrUnknownOrder.
func (m *MemLink) PutUint16(off int, v uint16, o byteorder.Order) error {
	b, err := m.orderedWindow("put", off, 2, o)
	if err != nil {
		return err
	}
	binary.NativeEndian.PutUint16(b, byteorder.FromNative(o, v))
	return nil
}

// Uint16 loads a value stored at off in byte order o.
func (m *MemLink) Uint16(off int, o byteorder.Order) (uint16, error) {
	b, err := m.orderedWindow("get", off, 2, o)
	if err != nil {
		return 0, err
	}
	return byteorder.ToNative(o, binary.NativeEndian.Uint16(b)), nil
}

// PutUint32 stores v at off in byte order o.
func (m *MemLink) PutUint32(off int, v uint32, o byteorder.Order) error {
	b, err := m.orderedWindow("put", off, 4, o)
	if err != nil {
		return err
	}
	binary.NativeEndian.PutUint32(b, byteorder.FromNative(o, v))
	return nil
}

// Uint32 loads a value stored at off in byte order o.
func (m *MemLink) Uint32(off int, o byteorder.Order) (uint32, error) {
	b, err := m.orderedWindow("get", off, 4, o)
	if err != nil {
		return 0, err
	}
	return byteorder.ToNative(o, binary.NativeEndian.Uint32(b)), nil
}

// PutUint64 stores v at off in byte order o.
func (m *MemLink) PutUint64(off int, v uint64, o byteorder.Order) error {
	b, err := m.orderedWindow("put", off, 8, o)
	if err != nil {
		return err
	}
	binary.NativeEndian.PutUint64(b, byteorder.FromNative(o, v))
	return nil
}

// Uint64 loads a value stored at off in byte order o.
func (m *MemLink) Uint64(off int, o byteorder.Order) (uint64, error) {
	b, err := m.orderedWindow("get", off, 8, o)
	if err != nil {
		return 0, err
	}
	return byteorder.ToNative(o, binary.NativeEndian.Uint64(b)), nil
}
