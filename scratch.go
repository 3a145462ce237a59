package memlink

import "sync"

// scratchInline is the largest scratch served from the fixed array of a
// pooled scratch instead of its growable buffer.
const scratchInline = 256

var scratchPool = sync.Pool{
	New: func() any { return &scratch{blk: WrapBlock(nil)} },
}

// scratch keeps everything WithScratch hands out inside one pooled object
// so a call in steady state does not allocate.
type scratch struct {
	blk    *Block
	view   MemLink
	inline [scratchInline]byte
	buf    []byte
}

// WithScratch links a view to n bytes of transient scratch memory and
// passes it to fn. The content starts unspecified. Once fn returns the
// scratch is recycled and any copy of the view fn kept is stale.
func WithScratch(n int, fn func(m *MemLink) error) error {
	if n < 0 {
		return ErrNegativeSize
	}
	s := scratchPool.Get().(*scratch)
	defer scratchPool.Put(s)

	var buf []byte
	if n <= scratchInline {
		buf = s.inline[:n:n]
	} else {
		if cap(s.buf) < n {
			s.buf = make([]byte, n)
		}
		buf = s.buf[:n:n]
	}
	s.blk.Reset(buf)
	defer func() {
		s.blk.Release()
		s.view = MemLink{}
	}()

	s.view = s.blk.Link()
	return fn(&s.view)
}
