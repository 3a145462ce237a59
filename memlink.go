// Package memlink provides MemLink, a non-owning view of a contiguous byte
// range, and the bounded in-place operations built on it.
//
// A MemLink never allocates, grows or shrinks. Insert and Erase only
// rearrange the bytes inside the linked window by rotation; the bytes they
// uncover keep whatever was there before and are handed back to the caller
// so nobody assumes they are zeroed.
//
//	buf := make([]byte, 46721)
//	var a, b memlink.MemLink
//	a.Link(buf)
//	b = a
//	_ = a.Fill(673, []byte{42}, 67)
//	_, _ = b.Erase(87, 12)
//
// Every checked operation validates its arguments and returns a typed
// error instead of panicking. The *Unchecked variants skip validation for
// callers that already proved their ranges; in those paths Go's own bounds
// checks still apply, and building with -tags memlinkdebug adds explicit
// assertions.
package memlink

import (
	"bytes"
	"unsafe"

	"github.com/rawbytedev/memlink/internal/assert"
	"github.com/rawbytedev/memlink/internal/common"
	"github.com/rawbytedev/memlink/pkg/rotate"
)

// ConstView is the read-only view contract: a size and the bytes.
type ConstView interface {
	Size() int
	Data() []byte
}

// MemLink is a mutable view of memory owned by someone else. The zero
// value is an empty, unlinked view. The referenced memory must outlive
// the view; views obtained from a Block detect that they outlived it.
//
// A MemLink is not safe for concurrent mutation.
type MemLink struct {
	data  []byte
	owner *Block
	gen   uint64
}

var _ ConstView = (*MemLink)(nil)

// New returns a view linked to b.
func New(b []byte) MemLink {
	return MemLink{data: b}
}

// FromView adapts any read-only view into a mutable one over the same bytes.
func FromView(v ConstView) MemLink {
	if m, ok := v.(*MemLink); ok {
		return *m
	}
	return MemLink{data: v.Data()[:v.Size()]}
}

// FromPointer links a view to n bytes at p.
func FromPointer(p unsafe.Pointer, n int) (MemLink, error) {
	var m MemLink
	err := m.LinkPointer(p, n)
	return m, err
}

// Link rebinds the view to b. Nothing is carried over from the previous
// range, including any Block ownership.
func (m *MemLink) Link(b []byte) {
	*m = MemLink{data: b}
}

// LinkPointer rebinds the view to n bytes starting at p.
func (m *MemLink) LinkPointer(p unsafe.Pointer, n int) error {
	switch {
	case n < 0:
		return ErrNegativeSize
	case p == nil && n > 0:
		return ErrNilBuffer
	case p == nil:
		*m = MemLink{}
		return nil
	}
	*m = MemLink{data: unsafe.Slice((*byte)(p), n)}
	return nil
}

// Relink rebinds the view to b but keeps the Block generation check, so b
// should come from the same Block the view was linked from.
func (m *MemLink) Relink(b []byte) {
	m.data = b
}

// Unlink resets the view to empty.
func (m *MemLink) Unlink() {
	*m = MemLink{}
}

// Swap exchanges the linked ranges and block ownership of m and o.
func (m *MemLink) Swap(o *MemLink) {
	*m, *o = *o, *m
}

func (m *MemLink) live() error {
	if m.owner != nil && m.owner.gen.Load() != m.gen {
		return ErrStale
	}
	return nil
}

// Stale reports whether the Block behind the view was released or reset.
func (m *MemLink) Stale() bool {
	return m.live() != nil
}

// Size returns the view length; a stale view has size 0.
func (m *MemLink) Size() int {
	if m.live() != nil {
		return 0
	}
	return len(m.data)
}

// Data returns the linked bytes, or nil for an empty or stale view.
func (m *MemLink) Data() []byte {
	if m.live() != nil {
		return nil
	}
	return m.data
}

// Empty reports whether the view has no bytes, which includes stale views.
func (m *MemLink) Empty() bool { return m.Size() == 0 }

// Begin is the offset of the first byte, always 0.
func (m *MemLink) Begin() int { return 0 }

// End is the offset one past the last byte.
func (m *MemLink) End() int { return m.Size() }

// Iat returns the tail of the view starting at offset i. i may equal
// Size(), which yields an empty tail.
func (m *MemLink) Iat(i int) ([]byte, error) {
	if err := m.live(); err != nil {
		return nil, err
	}
	if i < 0 || i > len(m.data) {
		return nil, &RangeError{Op: "iat", Start: i, Size: len(m.data)}
	}
	return m.data[i:], nil
}

// Sub returns a view of n bytes at start that shares this view's memory
// and Block generation.
func (m *MemLink) Sub(start, n int) (MemLink, error) {
	if err := m.live(); err != nil {
		return MemLink{}, err
	}
	if !common.InRange(start, n, len(m.data)) {
		return MemLink{}, &RangeError{Op: "sub", Start: start, N: n, Size: len(m.data)}
	}
	s := *m
	s.data = m.data[start : start+n : start+n]
	return s, nil
}

// Equal reports whether v holds the same bytes.
func (m *MemLink) Equal(v ConstView) bool {
	return bytes.Equal(m.Data(), v.Data()[:v.Size()])
}

// Fill writes count repetitions of pattern starting at start.
func (m *MemLink) Fill(start int, pattern []byte, count int) error {
	if err := m.live(); err != nil {
		return err
	}
	total, ok := common.MulFits(len(pattern), count)
	if !ok || !common.InRange(start, total, len(m.data)) {
		return &RangeError{Op: "fill", Start: start, N: total, Size: len(m.data)}
	}
	m.FillUnchecked(start, pattern, count)
	return nil
}

// FillUnchecked is Fill without validation.
func (m *MemLink) FillUnchecked(start int, pattern []byte, count int) {
	assert.That(count >= 0 && common.InRange(start, len(pattern)*count, len(m.data)),
		"fill %d x %d bytes at %d in %d", count, len(pattern), start, len(m.data))
	fillPattern(m.data[start:start+len(pattern)*count], pattern)
}

// Insert opens an n-byte gap at start by rotating the last n bytes of the
// view into it; [start, Size()-n) moves up by n. The returned gap has
// unspecified content.
func (m *MemLink) Insert(start, n int) ([]byte, error) {
	if err := m.live(); err != nil {
		return nil, err
	}
	if !common.InRange(start, n, len(m.data)) {
		return nil, &RangeError{Op: "insert", Start: start, N: n, Size: len(m.data)}
	}
	return m.InsertUnchecked(start, n), nil
}

// InsertUnchecked is Insert without validation.
func (m *MemLink) InsertUnchecked(start, n int) []byte {
	end := len(m.data)
	assert.That(common.InRange(start, n, end), "insert %d at %d in %d", n, start, end)
	rotate.Rotate(m.data, start, end-n, end)
	return m.data[start : start+n : start+n]
}

// Erase removes n bytes at start by rotating them to the end of the view;
// [start+n, Size()) moves down by n. The returned tail, the last n bytes,
// has unspecified content.
func (m *MemLink) Erase(start, n int) ([]byte, error) {
	if err := m.live(); err != nil {
		return nil, err
	}
	if !common.InRange(start, n, len(m.data)) {
		return nil, &RangeError{Op: "erase", Start: start, N: n, Size: len(m.data)}
	}
	return m.EraseUnchecked(start, n), nil
}

// EraseUnchecked is Erase without validation.
func (m *MemLink) EraseUnchecked(start, n int) []byte {
	end := len(m.data)
	assert.That(common.InRange(start, n, end), "erase %d at %d in %d", n, start, end)
	rotate.Rotate(m.data, start, start+n, end)
	return m.data[end-n : end : end]
}
