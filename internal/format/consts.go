// Package format houses the low-level binary layout of pool block headers.
// The goal is to keep the encoding focused, allocation-free, and independent
// from the public API so the pool package can orchestrate the data in a more
// ergonomic form.
package format

const (
	// Magic is the corruption sentinel stored at the start of every block
	// header. The value spells "POOL" when its bytes are read big-endian.
	Magic = 0x504F4F4C

	// Alignment is the required alignment of block offsets and payload
	// pointers within a pool.
	Alignment = 8

	// AlignmentMask is the bitmask used for aligning to Alignment boundaries.
	AlignmentMask = Alignment - 1

	// HeaderSize is the number of bytes used by the header preceding every
	// block (free or allocated). It is a multiple of Alignment so the payload
	// that follows a header is itself aligned.
	HeaderSize = 16

	// MinAllocSize is the smallest payload a block may carry. Allocation
	// requests below it are rounded up, and splits that would leave a
	// remainder below it are not performed.
	MinAllocSize = 16

	// MaxPoolSize is the largest usable pool region. Block offsets are
	// uint32, so offset + header + size sums must stay within int32 range.
	MaxPoolSize = 0x7FFFFFFF

	// FlagFree is the header flag bit marking a block as free.
	FlagFree = 0x1
)
