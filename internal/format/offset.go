package format

// Offset is a pool-relative byte offset to a block header. Offsets are used
// instead of native pointers so the header layout stays identical across
// 32-bit and 64-bit builds and "no block" is an explicit sentinel value
// rather than a language nil.
type Offset uint32

// NilOffset is the "no block" sentinel. Offset 0 is a valid block offset
// (the first block in a pool starts there), so the sentinel is all-ones.
const NilOffset Offset = 0xFFFFFFFF

// IsNil reports whether o is the "no block" sentinel.
func (o Offset) IsNil() bool { return o == NilOffset }

// Aligned reports whether o sits on an Alignment boundary.
func (o Offset) Aligned() bool { return o&AlignmentMask == 0 }

// BlockEnd returns the offset one past the end of a block: its header offset
// plus the header plus the declared payload size. Two blocks are physically
// adjacent exactly when one's BlockEnd equals the other's offset.
func BlockEnd(off Offset, size uint32) Offset {
	return off + HeaderSize + Offset(size)
}
