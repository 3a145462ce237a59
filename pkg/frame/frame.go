// Package frame implements a small framed byte stream: every frame carries
// its own length and a CRC32, and data frames may be zstd-compressed. A
// Reader turns a sequence of frames back into a plain io.Reader while
// reporting corruption and peer errors distinctly from end of data.
//
// Frame layout (integers little endian):
//
//	magic "ML" | type(1) | length(4) | flags(1) | [rawLen varint] | payload | crc32(4)
//
// length covers the whole frame including magic and CRC. The CRC covers
// everything after the magic up to the end of the payload. rawLen is only
// present when FlagZstd is set and is the decompressed payload size.
package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/rawbytedev/memlink/internal/common"
)

const (
	Magic0 = 'M'
	Magic1 = 'L'

	TypeData  byte = 0x01
	TypeError byte = 0x02

	// FlagZstd marks a zstd-compressed data payload.
	FlagZstd byte = 0x01

	HeaderSize = 8
	crcSize    = 4

	// MaxFrameSize bounds length and rawLen so a corrupt header cannot
	// make the reader allocate without limit.
	MaxFrameSize = 64 << 20

	// MaxPayloadSize is the largest payload AppendData accepts under any
	// flags. It leaves room for the header, the CRC, the rawLen varint and
	// zstd's worst-case expansion of incompressible input.
	MaxPayloadSize = MaxFrameSize - HeaderSize - crcSize - common.MaxVarintLen64 - zstdSlack

	// zstdSlack bounds how much larger than its input a zstd payload can get.
	zstdSlack = MaxFrameSize >> 7
)

var (
	ErrBadMagic     = errors.New("frame: bad magic")
	ErrNotDataFrame = errors.New("frame: not a data frame")
	ErrLength       = errors.New("frame: length mismatch")
	ErrTooLarge     = errors.New("frame: frame too large")
	ErrCRC          = errors.New("frame: crc mismatch")
)

// PeerError is reported when the stream carries an error frame instead of
// data.
type PeerError struct {
	Code byte
	Data []byte
}

func (e *PeerError) Error() string {
	return fmt.Sprintf("frame: peer error %d: %q", e.Code, e.Data)
}

var (
	encOnce sync.Once
	encoder *zstd.Encoder
	encErr  error

	decOnce sync.Once
	decoder *zstd.Decoder
	decErr  error
)

// EncodeAll and DecodeAll are safe for concurrent use, so one shared
// encoder/decoder pair serves every frame.
func zstdEncoder() (*zstd.Encoder, error) {
	encOnce.Do(func() {
		encoder, encErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	})
	return encoder, encErr
}

func zstdDecoder() (*zstd.Decoder, error) {
	decOnce.Do(func() {
		decoder, decErr = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxFrameSize))
	})
	return decoder, decErr
}

// AppendData appends a data frame carrying payload to dst.
func AppendData(dst, payload []byte, flags byte) ([]byte, error) {
	body := payload
	var rawLen []byte
	if flags&FlagZstd != 0 {
		enc, err := zstdEncoder()
		if err != nil {
			return nil, err
		}
		body = enc.EncodeAll(payload, nil)
		rawLen = common.WriteVarUintTo(nil, uint64(len(payload)))
	}
	return appendFrame(dst, TypeData, flags, rawLen, body)
}

// AppendError appends an error frame with the given code and detail.
func AppendError(dst []byte, code byte, data []byte) ([]byte, error) {
	return appendFrame(dst, TypeError, code, nil, data)
}

func appendFrame(dst []byte, typ, flags byte, prefix, body []byte) ([]byte, error) {
	total := HeaderSize + len(prefix) + len(body) + crcSize
	if total > MaxFrameSize {
		return nil, ErrTooLarge
	}
	start := len(dst)
	dst = append(dst, Magic0, Magic1, typ, 0, 0, 0, 0, flags)
	binary.LittleEndian.PutUint32(dst[start+3:], uint32(total))
	dst = append(dst, prefix...)
	dst = append(dst, body...)
	crc := crc32.ChecksumIEEE(dst[start+2:])
	return binary.LittleEndian.AppendUint32(dst, crc), nil
}

// Decode parses exactly one data frame and returns its decoded payload
// and flags. Error frames are returned as *PeerError.
func Decode(data []byte) ([]byte, byte, error) {
	if len(data) < HeaderSize+crcSize {
		return nil, 0, fmt.Errorf("%w: %d bytes", ErrLength, len(data))
	}
	if data[0] != Magic0 || data[1] != Magic1 {
		return nil, 0, ErrBadMagic
	}
	length := binary.LittleEndian.Uint32(data[3:])
	if int(length) != len(data) {
		return nil, 0, fmt.Errorf("%w: header says %d, have %d", ErrLength, length, len(data))
	}
	payloadEnd := len(data) - crcSize
	want := binary.LittleEndian.Uint32(data[payloadEnd:])
	if crc32.ChecksumIEEE(data[2:payloadEnd]) != want {
		return nil, 0, ErrCRC
	}

	typ, flags := data[2], data[7]
	body := data[HeaderSize:payloadEnd]
	switch typ {
	case TypeData:
	case TypeError:
		return nil, 0, &PeerError{Code: flags, Data: body}
	default:
		return nil, 0, fmt.Errorf("%w: type %#x", ErrNotDataFrame, typ)
	}
	if flags&FlagZstd == 0 {
		return body, flags, nil
	}

	rawLen, n := common.ReadVarUint(body)
	if n == 0 || rawLen > MaxFrameSize {
		return nil, 0, fmt.Errorf("%w: bad decompressed length", ErrLength)
	}
	dec, err := zstdDecoder()
	if err != nil {
		return nil, 0, err
	}
	raw, err := dec.DecodeAll(body[n:], make([]byte, 0, rawLen))
	if err != nil {
		return nil, 0, fmt.Errorf("frame: decompress: %w", err)
	}
	if uint64(len(raw)) != rawLen {
		return nil, 0, fmt.Errorf("%w: decompressed %d, want %d", ErrLength, len(raw), rawLen)
	}
	return raw, flags, nil
}
