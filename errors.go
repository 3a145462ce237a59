package memlink

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfRange   = errors.New("memlink: range out of bounds")
	ErrNilBuffer    = errors.New("memlink: nil buffer with non-zero size")
	ErrNegativeSize = errors.New("memlink: negative size")
	ErrStale        = errors.New("memlink: view outlived its block")
)

// RangeError describes a rejected [Start, Start+N) request against a view
// of Size bytes. It matches ErrOutOfRange with errors.Is.
type RangeError struct {
	Op    string
	Start int
	N     int
	Size  int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("memlink: %s at %d of %d bytes outside view of %d bytes", e.Op, e.Start, e.N, e.Size)
}

// Is matches ErrOutOfRange.
func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}
