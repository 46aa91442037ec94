package format

import "fmt"

// Block is the decoded header of a single pool block (free or allocated).
//
// Header layout (little-endian, HeaderSize bytes):
//
//	Offset  Size  Description
//	0x00    4     Magic tag (0x504F4F4C). Corruption sentinel.
//	0x04    4     Payload size in bytes. Excludes the header itself.
//	0x08    4     Offset of the next free block, or NilOffset. Only
//	              meaningful while the free flag is set.
//	0x0C    4     Flag bits. Bit 0 set => block is free.
type Block struct {
	Magic uint32
	Size  uint32
	Next  Offset
	Free  bool
}

// Header field offsets within a block.
const (
	blockMagicOff = 0x00
	blockSizeOff  = 0x04
	blockNextOff  = 0x08
	blockFlagsOff = 0x0C
)

// DecodeBlock reads the header at off within buf without judging its
// contents. Returns ErrTruncated when the header itself does not fit.
func DecodeBlock(buf []byte, off Offset) (Block, error) {
	if off.IsNil() || uint64(off)+HeaderSize > uint64(len(buf)) {
		return Block{}, fmt.Errorf("block %#x: %w", uint32(off), ErrTruncated)
	}
	b := buf[off:]
	return Block{
		Magic: ReadU32(b, blockMagicOff),
		Size:  ReadU32(b, blockSizeOff),
		Next:  Offset(ReadU32(b, blockNextOff)),
		Free:  ReadU32(b, blockFlagsOff)&FlagFree != 0,
	}, nil
}

// EncodeBlock writes blk's header at off within buf. The caller must have
// established that off+HeaderSize is in bounds (DecodeBlock or CheckBlock on
// the same offset does that).
func EncodeBlock(buf []byte, off Offset, blk Block) {
	b := buf[off:]
	PutU32(b, blockMagicOff, blk.Magic)
	PutU32(b, blockSizeOff, blk.Size)
	PutU32(b, blockNextOff, uint32(blk.Next))
	var flags uint32
	if blk.Free {
		flags |= FlagFree
	}
	PutU32(b, blockFlagsOff, flags)
}

// CheckBlock decodes the header at off and runs the full sanity predicate
// used by every pool traversal: magic tag, offset alignment, minimum size,
// block end within the region, and (when present) an aligned, in-bounds
// next-free offset. A header that fails any of these must be treated as
// corrupt and never written through.
func CheckBlock(buf []byte, off Offset) (Block, error) {
	blk, err := DecodeBlock(buf, off)
	if err != nil {
		return Block{}, err
	}
	if blk.Magic != Magic {
		return Block{}, fmt.Errorf("block %#x: %w", uint32(off), ErrBadMagic)
	}
	if !off.Aligned() {
		return Block{}, fmt.Errorf("block %#x: %w", uint32(off), ErrMisaligned)
	}
	if blk.Size < MinAllocSize {
		return Block{}, fmt.Errorf("block %#x: size %d: %w", uint32(off), blk.Size, ErrBadSize)
	}
	end := uint64(off) + HeaderSize + uint64(blk.Size)
	if end > uint64(len(buf)) {
		return Block{}, fmt.Errorf("block %#x: end %d: %w", uint32(off), end, ErrTruncated)
	}
	if !blk.Next.IsNil() {
		if !blk.Next.Aligned() || uint64(blk.Next)+HeaderSize > uint64(len(buf)) {
			return Block{}, fmt.Errorf("block %#x: next %#x: %w", uint32(off), uint32(blk.Next), ErrBadNext)
		}
	}
	return blk, nil
}
