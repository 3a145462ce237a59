package memlink

import (
	"errors"
	"fmt"
	"io"
)

// ReadFull fills the whole view from r and returns the number of bytes
// transferred. Sizing the view is the caller's job.
//
// io.EOF means r had no data at all, io.ErrUnexpectedEOF means it ended
// early; in both cases n tells how much of the view was written. Any other
// error from r is wrapped and returned.
func (m *MemLink) ReadFull(r io.Reader) (int, error) {
	if err := m.live(); err != nil {
		return 0, err
	}
	n, err := io.ReadFull(r, m.data)
	switch {
	case err == nil:
		return n, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return n, err
	default:
		return n, fmt.Errorf("memlink: read %d of %d bytes: %w", n, len(m.data), err)
	}
}

// WriteTo writes the viewed bytes to w.
func (m *MemLink) WriteTo(w io.Writer) (int64, error) {
	if err := m.live(); err != nil {
		return 0, err
	}
	n, err := w.Write(m.data)
	if err == nil && n < len(m.data) {
		err = io.ErrShortWrite
	}
	return int64(n), err
}
