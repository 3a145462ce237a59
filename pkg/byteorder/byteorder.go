// Package byteorder converts integers between the host byte order and an
// explicit little or big endian order.
//
// The host order is fixed per GOARCH, so the matching direction of every
// conversion compiles down to the identity.
package byteorder

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"
	"strings"
	"unsafe"

	"golang.org/x/exp/constraints"
	"golang.org/x/sys/cpu"
)

// Order selects a conversion direction. It is never stored in data.
type Order uint8

const (
	Little Order = iota + 1
	Big
	Native
)

var ErrUnknownOrder = errors.New("unknown byte order")

// NativeOrder is Native resolved for the running GOARCH.
func NativeOrder() Order {
	if cpu.IsBigEndian {
		return Big
	}
	return Little
}

// Valid reports whether o is Little, Big or Native. The zero Order is
// not valid.
func (o Order) Valid() bool {
	return o >= Little && o <= Native
}

// Resolve maps Native to Little or Big; other values are returned as is.
func (o Order) Resolve() Order {
	if o == Native {
		return NativeOrder()
	}
	return o
}

// IsNative reports whether o resolves to the host order.
func (o Order) IsNative() bool {
	return o.Resolve() == NativeOrder()
}

func (o Order) String() string {
	switch o {
	case Little:
		return "little"
	case Big:
		return "big"
	case Native:
		return "native"
	default:
		return fmt.Sprintf("Order(%d)", uint8(o))
	}
}

// ByteOrder returns the encoding/binary order o resolves to.
func (o Order) ByteOrder() binary.ByteOrder {
	if o.Resolve() == Big {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// ParseOrder accepts "little"/"le", "big"/"be" and "native" in any case.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "little", "le":
		return Little, nil
	case "big", "be":
		return Big, nil
	case "native", "":
		return Native, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOrder, s)
}

// UnmarshalText accepts the spellings ParseOrder does.
func (o *Order) UnmarshalText(text []byte) error {
	v, err := ParseOrder(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

func (o Order) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Bswap reverses the bytes of v. 8-bit values are returned unchanged.
func Bswap[T constraints.Integer](v T) T {
	switch unsafe.Sizeof(v) {
	case 1:
		return v
	case 2:
		return T(bits.ReverseBytes16(uint16(v)))
	case 4:
		return T(bits.ReverseBytes32(uint32(v)))
	default:
		return T(bits.ReverseBytes64(uint64(v)))
	}
}

// LeToNative converts a little endian value to host order.
func LeToNative[T constraints.Integer](v T) T {
	if cpu.IsBigEndian {
		return Bswap(v)
	}
	return v
}

// BeToNative converts a big endian value to host order.
func BeToNative[T constraints.Integer](v T) T {
	if cpu.IsBigEndian {
		return v
	}
	return Bswap(v)
}

// NativeToLe converts a host order value to little endian.
func NativeToLe[T constraints.Integer](v T) T {
	if cpu.IsBigEndian {
		return Bswap(v)
	}
	return v
}

// NativeToBe converts a host order value to big endian.
func NativeToBe[T constraints.Integer](v T) T {
	if cpu.IsBigEndian {
		return v
	}
	return Bswap(v)
}

// ToNative converts v stored in order o to host order. Callers validate o;
// anything that does not resolve to the host order is swapped.
func ToNative[T constraints.Integer](o Order, v T) T {
	if o.IsNative() {
		return v
	}
	return Bswap(v)
}

// FromNative converts host-order v to order o.
func FromNative[T constraints.Integer](o Order, v T) T {
	return ToNative(o, v)
}
