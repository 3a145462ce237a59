package cli

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/memlink"
	"github.com/rawbytedev/memlink/pkg/byteorder"
)

var (
	ErrUnknownOp  = errors.New("unknown script op")
	ErrBadPattern = errors.New("fill step needs exactly one of pattern or hex")
	ErrBadWidth   = errors.New("put width must be 8, 16, 32 or 64")
)

// Script is a sequence of in-place edits applied to one buffer.
type Script struct {
	Order byteorder.Order `yaml:"order"`
	Steps []Step          `yaml:"steps"`
}

// Step is one script operation. Unused fields are ignored by the op.
//
//	erase:  start, n
//	insert: start, n, write (copied into the opened gap)
//	fill:   start, pattern | hex, count
//	put:    start, width, value, order (falls back to Script.Order)
type Step struct {
	Op      string           `yaml:"op"`
	Start   int              `yaml:"start"`
	N       int              `yaml:"n"`
	Write   string           `yaml:"write"`
	Pattern string           `yaml:"pattern"`
	Hex     string           `yaml:"hex"`
	Count   int              `yaml:"count"`
	Width   int              `yaml:"width"`
	Value   uint64           `yaml:"value"`
	Order   *byteorder.Order `yaml:"order"`
}

// ParseScript decodes a YAML script. Unknown fields are errors and an
// empty document is an empty script in native order.
func ParseScript(r io.Reader) (*Script, error) {
	s := &Script{Order: byteorder.Native}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil {
		if errors.Is(err, io.EOF) {
			return s, nil
		}
		return nil, fmt.Errorf("decode script: %w", err)
	}
	return s, nil
}

// Apply runs every step against m, stopping at the first failure.
func (s *Script) Apply(m *memlink.MemLink) error {
	for i := range s.Steps {
		if err := s.apply(m, &s.Steps[i]); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, s.Steps[i].Op, err)
		}
	}
	return nil
}

func (s *Script) apply(m *memlink.MemLink, st *Step) error {
	switch st.Op {
	case "erase":
		_, err := m.Erase(st.Start, st.N)
		return err
	case "insert":
		gap, err := m.Insert(st.Start, st.N)
		if err != nil {
			return err
		}
		copy(gap, st.Write)
		return nil
	case "fill":
		pattern, err := st.pattern()
		if err != nil {
			return err
		}
		return m.Fill(st.Start, pattern, st.Count)
	case "put":
		order := s.Order
		if st.Order != nil {
			order = *st.Order
		}
		switch st.Width {
		case 8:
			return m.PutUint8(st.Start, uint8(st.Value))
		case 16:
			return m.PutUint16(st.Start, uint16(st.Value), order)
		case 32:
			return m.PutUint32(st.Start, uint32(st.Value), order)
		case 64:
			return m.PutUint64(st.Start, st.Value, order)
		}
		return fmt.Errorf("%w: %d", ErrBadWidth, st.Width)
	}
	return fmt.Errorf("%w %q", ErrUnknownOp, st.Op)
}

func (st *Step) pattern() ([]byte, error) {
	switch {
	case st.Pattern != "" && st.Hex == "":
		return []byte(st.Pattern), nil
	case st.Hex != "" && st.Pattern == "":
		return hex.DecodeString(st.Hex)
	}
	return nil, ErrBadPattern
}
