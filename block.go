package memlink

import "sync/atomic"

// Block owns a buffer and hands out views tied to its current generation.
// Release and Reset advance the generation; views linked before that
// report ErrStale from every checked operation instead of touching memory
// the block no longer vouches for.
//
// Linking, releasing and resetting are not synchronized with each other;
// only the generation read by views is atomic.
type Block struct {
	buf []byte
	gen atomic.Uint64
}

// NewBlock allocates an n-byte block.
func NewBlock(n int) (*Block, error) {
	if n < 0 {
		return nil, ErrNegativeSize
	}
	return &Block{buf: make([]byte, n)}, nil
}

// WrapBlock takes ownership of buf.
func WrapBlock(buf []byte) *Block {
	return &Block{buf: buf}
}

// Link returns a view of the whole block at the current generation.
func (b *Block) Link() MemLink {
	return MemLink{data: b.buf, owner: b, gen: b.gen.Load()}
}

// Release invalidates every outstanding view and drops the buffer.
func (b *Block) Release() {
	b.gen.Add(1)
	b.buf = nil
}

// Reset invalidates every outstanding view and adopts buf.
func (b *Block) Reset(buf []byte) {
	b.gen.Add(1)
	b.buf = buf
}

// Size returns the length of the current buffer; 0 after Release.
func (b *Block) Size() int { return len(b.buf) }

// Generation returns the counter views are checked against. It starts at
// 0 and grows by one on every Release or Reset.
func (b *Block) Generation() uint64 { return b.gen.Load() }
