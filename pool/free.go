package pool

import (
	"github.com/joshuapare/poolkit/internal/format"
)

// Free returns the block whose payload starts at ptr to the pool.
//
// Free never fails and never panics: out-of-bounds, misaligned, interior,
// stale, and already-freed pointers are ignored without any state change,
// matching the conventional free() contract. A valid pointer's block is
// re-linked into the address-ordered free list and merged with physically
// adjacent free neighbors in both directions; each absorbed neighbor's
// header bytes are credited back to the free space.
func (p *Pool) Free(ptr Ptr) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.arena == nil {
		return
	}
	p.metrics.FreeCalls++

	// Validation ladder. Every rung fails silently.
	off := uint64(ptr)
	if off < format.HeaderSize || off >= uint64(len(p.arena)) {
		p.metrics.InvalidFrees++
		return
	}
	if off&format.AlignmentMask != 0 {
		p.metrics.InvalidFrees++
		return
	}
	hdrOff := format.Offset(off - format.HeaderSize)
	blk, err := format.CheckBlock(p.arena, hdrOff)
	if err != nil {
		p.metrics.InvalidFrees++
		return
	}
	if blk.Free {
		// Double free; ignore.
		p.metrics.DoubleFrees++
		return
	}

	blk.Free = true
	format.EncodeBlock(p.arena, hdrOff, blk)
	p.allocated -= uint64(blk.Size)
	p.freeSpace += uint64(blk.Size)

	// Find the insertion point that keeps the list in ascending address
	// order, re-validating every node on the way.
	prevOff := format.NilOffset
	var prev format.Block
	curOff := p.freeHead
	for !curOff.IsNil() && curOff < hdrOff {
		cur, err := format.CheckBlock(p.arena, curOff)
		if err != nil {
			// Corrupted list: the block stays flagged free but unlinked
			// rather than risk writing through a bad offset.
			p.metrics.CorruptionAborts++
			return
		}
		prevOff, prev = curOff, cur
		curOff = cur.Next
	}

	// Splice between predecessor and successor.
	blk.Next = curOff
	format.EncodeBlock(p.arena, hdrOff, blk)
	if prevOff.IsNil() {
		p.freeHead = hdrOff
	} else {
		prev.Next = hdrOff
		format.EncodeBlock(p.arena, prevOff, prev)
	}

	// Coalesce with the next neighbor first, then the previous one, then
	// forward again from the merged block to catch a bridged triple.
	p.coalesceForward(hdrOff)

	if prevOff.IsNil() {
		return
	}
	pb, err := format.CheckBlock(p.arena, prevOff)
	if err != nil || !pb.Free || format.BlockEnd(prevOff, pb.Size) != hdrOff {
		return
	}
	cur, err := format.CheckBlock(p.arena, hdrOff)
	if err != nil {
		return
	}
	pb.Size += format.HeaderSize + cur.Size
	pb.Next = cur.Next
	format.EncodeBlock(p.arena, prevOff, pb)
	p.freeSpace += format.HeaderSize
	p.metrics.BackwardCoalesces++
	p.coalesceForward(prevOff)
}

// coalesceForward absorbs the free block's physically adjacent free
// successors, one header reclaimed per absorbed block. Stops at the first
// gap, allocated neighbor, or header that fails validation. Called with the
// pool lock held.
func (p *Pool) coalesceForward(off format.Offset) {
	blk, err := format.CheckBlock(p.arena, off)
	if err != nil || !blk.Free {
		return
	}
	for !blk.Next.IsNil() {
		next, err := format.CheckBlock(p.arena, blk.Next)
		if err != nil || !next.Free {
			return
		}
		if format.BlockEnd(off, blk.Size) != blk.Next {
			return
		}
		blk.Size += format.HeaderSize + next.Size
		blk.Next = next.Next
		format.EncodeBlock(p.arena, off, blk)
		p.freeSpace += format.HeaderSize
		p.metrics.ForwardCoalesces++
	}
}
