// Package endian provides the byte order used for fixed-width integers in column bodies.
//
// Column bodies put fixed-width integers (UInt64 values, block checksums) on the
// wire in little-endian order. EndianEngine combines binary.ByteOrder and
// binary.AppendByteOrder so encoders can either fill a pre-sized slice or append
// to a growing one with the same value:
//
//	engine := endian.WireEngine()
//	buf = engine.AppendUint64(buf, value)
//	value = engine.Uint64(buf[off:])
//
// When the host is little-endian as well, UInt64 bodies can be read and written
// in bulk without per-value conversion; IsNativeWireOrder reports whether that
// fast path applies.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use. The returned
// engines are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// hostOrder determines the host's byte order.
func hostOrder() binary.ByteOrder {
	// 0x0100 stores 0x00 first on little-endian hosts and 0x01 first on big-endian hosts.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeWireOrder reports whether the host byte order equals the wire byte order,
// in which case a []uint64 can be copied to and from the wire as raw memory.
func IsNativeWireOrder() bool {
	return WireEngine() == hostOrder()
}

// WireEngine returns the engine for the column wire format (little-endian).
func WireEngine() EndianEngine {
	return binary.LittleEndian
}
