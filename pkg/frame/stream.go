package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Reader reads consecutive frames from an underlying reader and exposes
// their decoded payloads as one byte stream.
//
// io.EOF is returned only at a frame boundary. A stream that ends inside
// a frame yields io.ErrUnexpectedEOF; corruption yields ErrCRC,
// ErrBadMagic or ErrLength; an error frame yields *PeerError. Errors are
// sticky.
type Reader struct {
	r       io.Reader
	hdr     [HeaderSize]byte
	frame   []byte
	payload []byte
	err     error
}

// NewReader returns a Reader decoding the frames read from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Read copies decoded payload bytes into p, fetching frames as needed.
func (fr *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for len(fr.payload) == 0 {
		if fr.err != nil {
			return 0, fr.err
		}
		fr.err = fr.next()
	}
	n := copy(p, fr.payload)
	fr.payload = fr.payload[n:]
	return n, nil
}

func (fr *Reader) next() error {
	if _, err := io.ReadFull(fr.r, fr.hdr[:]); err != nil {
		return err
	}
	if fr.hdr[0] != Magic0 || fr.hdr[1] != Magic1 {
		return ErrBadMagic
	}
	length := binary.LittleEndian.Uint32(fr.hdr[3:])
	if length < HeaderSize+crcSize {
		return fmt.Errorf("%w: %d", ErrLength, length)
	}
	if length > MaxFrameSize {
		return ErrTooLarge
	}
	if cap(fr.frame) < int(length) {
		fr.frame = make([]byte, length)
	}
	fr.frame = fr.frame[:length]
	copy(fr.frame, fr.hdr[:])
	if _, err := io.ReadFull(fr.r, fr.frame[HeaderSize:]); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return err
	}
	payload, _, err := Decode(fr.frame)
	if err != nil {
		return err
	}
	fr.payload = payload
	return nil
}

// Writer emits one data frame per Write call.
type Writer struct {
	w     io.Writer
	flags byte
	buf   []byte
}

// NewWriter returns a Writer framing every Write to w with flags.
func NewWriter(w io.Writer, flags byte) *Writer {
	return &Writer{w: w, flags: flags}
}

// Write emits p as one data frame. It reports len(p) on success even
// though the frame written is longer.
func (fw *Writer) Write(p []byte) (int, error) {
	var err error
	fw.buf, err = AppendData(fw.buf[:0], p, fw.flags)
	if err != nil {
		return 0, err
	}
	if _, err := fw.w.Write(fw.buf); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteError emits an error frame; readers surface it as *PeerError.
func (fw *Writer) WriteError(code byte, data []byte) error {
	var err error
	fw.buf, err = AppendError(fw.buf[:0], code, data)
	if err != nil {
		return err
	}
	_, err = fw.w.Write(fw.buf)
	return err
}
