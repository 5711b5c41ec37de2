// Package pack converts scalar payload values into raw bytes.
//
// A Context pairs a pointer width with a byte order and packs Go values the
// way the target architecture lays them out. The zero cost path is the
// preset contexts:
//
//	data, err := pack.AMD64.Pack(0xdeadbeef)   // 8 bytes, little-endian
//	data, err := pack.I386.Pack(0x35363738)    // 4 bytes, little-endian
//
// Byte strings pass through unchanged, integers are packed at their natural
// width (bare int/uint at the context's pointer width), and anything else
// fails with errs.ErrPack.
//
// All contexts are immutable and safe for concurrent use.
package pack

import (
	"fmt"
	"math"

	"encoding/binary"

	"github.com/arloliu/payloadbuf/errs"
)

// Engine combines the ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single interface for byte order operations.
//
// binary.LittleEndian and binary.BigEndian both satisfy it.
type Engine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Context describes the packing rules of a target architecture: the pointer
// width in bits and the byte order.
type Context struct {
	// Bits is the pointer width, 32 or 64. Bare int and uint values pack at
	// this width.
	Bits int

	// Order is the byte order used for all multi-byte integers.
	Order Engine
}

// Preset contexts for common targets. Default is what Buffer uses when no
// packer is injected.
var (
	AMD64 = &Context{Bits: 64, Order: binary.LittleEndian}
	I386  = &Context{Bits: 32, Order: binary.LittleEndian}
	ARM64 = &Context{Bits: 64, Order: binary.LittleEndian}
	ARM   = &Context{Bits: 32, Order: binary.LittleEndian}
	MIPS  = &Context{Bits: 32, Order: binary.BigEndian}

	Default = AMD64
)

// Pack converts value into raw bytes according to the context.
//
// Supported values:
//   - []byte: copied as-is
//   - string: raw bytes of the string
//   - int, uint: packed at the context's pointer width
//   - int8/16/32/64, uint8/16/32/64: packed at their natural width
//
// Returns an error wrapping errs.ErrPack for unsupported types and for bare
// int/uint values that do not fit the pointer width.
func (c *Context) Pack(value any) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		out := make([]byte, len(v))
		copy(out, v)

		return out, nil
	case string:
		return []byte(v), nil
	case int:
		return c.packInt(int64(v))
	case uint:
		return c.packUint(uint64(v))
	case int8:
		return []byte{byte(v)}, nil
	case uint8:
		return []byte{v}, nil
	case int16:
		return c.Order.AppendUint16(nil, uint16(v)), nil
	case uint16:
		return c.Order.AppendUint16(nil, v), nil
	case int32:
		return c.Order.AppendUint32(nil, uint32(v)), nil
	case uint32:
		return c.Order.AppendUint32(nil, v), nil
	case int64:
		return c.Order.AppendUint64(nil, uint64(v)), nil
	case uint64:
		return c.Order.AppendUint64(nil, v), nil
	case nil:
		return nil, fmt.Errorf("%w: nil value", errs.ErrPack)
	default:
		return nil, fmt.Errorf("%w: unsupported type %T", errs.ErrPack, value)
	}
}

// packInt packs a signed value at the context's pointer width, rejecting
// values that do not fit.
func (c *Context) packInt(v int64) ([]byte, error) {
	if c.Bits == 32 {
		if v > math.MaxInt32 || v < math.MinInt32 {
			return nil, fmt.Errorf("%w: %d does not fit in 32 bits", errs.ErrPack, v)
		}

		return c.Order.AppendUint32(nil, uint32(v)), nil
	}

	return c.Order.AppendUint64(nil, uint64(v)), nil
}

// packUint packs an unsigned value at the context's pointer width, rejecting
// values that do not fit.
func (c *Context) packUint(v uint64) ([]byte, error) {
	if c.Bits == 32 {
		if v > math.MaxUint32 {
			return nil, fmt.Errorf("%w: %d does not fit in 32 bits", errs.ErrPack, v)
		}

		return c.Order.AppendUint32(nil, uint32(v)), nil
	}

	return c.Order.AppendUint64(nil, v), nil
}

// P8 packs a single byte.
func (c *Context) P8(v uint8) []byte { return []byte{v} }

// P16 packs a 16-bit value in the context's byte order.
func (c *Context) P16(v uint16) []byte { return c.Order.AppendUint16(nil, v) }

// P32 packs a 32-bit value in the context's byte order.
func (c *Context) P32(v uint32) []byte { return c.Order.AppendUint32(nil, v) }

// P64 packs a 64-bit value in the context's byte order.
func (c *Context) P64(v uint64) []byte { return c.Order.AppendUint64(nil, v) }

// Ptr packs a pointer-width value, rejecting values that do not fit the
// context's pointer width.
func (c *Context) Ptr(v uint64) ([]byte, error) {
	return c.packUint(v)
}

// Unpack interprets data as a single unsigned integer in the context's byte
// order. Data must be 1, 2, 4 or 8 bytes long.
func (c *Context) Unpack(data []byte) (uint64, error) {
	switch len(data) {
	case 1:
		return uint64(data[0]), nil
	case 2:
		return uint64(c.Order.Uint16(data)), nil
	case 4:
		return uint64(c.Order.Uint32(data)), nil
	case 8:
		return c.Order.Uint64(data), nil
	default:
		return 0, fmt.Errorf("%w: cannot unpack %d bytes", errs.ErrPack, len(data))
	}
}

// PtrSize returns the pointer width in bytes.
func (c *Context) PtrSize() int {
	return c.Bits / 8
}
