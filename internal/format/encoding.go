package format

import "encoding/binary"

// Binary encoding utilities for little-endian integers.
//
// Implementation: encoding/binary.LittleEndian. The standard library calls
// inline and optimize well; unsafe-pointer variants buy nothing here.

// PutU32 writes a uint32 value to the buffer at the specified offset in
// little-endian byte order.
func PutU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// ReadU32 reads a uint32 value from the buffer at the specified offset in
// little-endian byte order.
func ReadU32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}
