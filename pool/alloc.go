package pool

import (
	"fmt"
	"math"
	"os"

	"github.com/joshuapare/poolkit/internal/format"
)

// Allocation trace logging, controlled by the POOLKIT_LOG_ALLOC env var.
var logAlloc = os.Getenv("POOLKIT_LOG_ALLOC") != ""

// Alloc returns a reference to, and the bytes of, a payload region of at
// least n bytes. The payload is 8-byte aligned relative to the buffer start.
//
// The request is rounded up to the 16-byte minimum allocation size and then
// to the 8-byte alignment; Stats().Used grows by the rounded size, not by n.
// The search is first-fit over the address-ordered free list.
//
// Errors: ErrBadRequest for n <= 0, ErrNoSpace when no free block fits,
// ErrCorrupt when a header fails validation mid-scan (nothing is mutated),
// ErrClosed after Close. On error the returned Ptr is NilPtr.
func (p *Pool) Alloc(n int) (Ptr, []byte, error) {
	if n <= 0 {
		return NilPtr, nil, ErrBadRequest
	}
	request := uint64(n)
	if request < format.MinAllocSize {
		request = format.MinAllocSize
	}
	request = (request + format.AlignmentMask) &^ format.AlignmentMask
	if request > math.MaxUint32 {
		return NilPtr, nil, ErrNoSpace
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.arena == nil {
		return NilPtr, nil, ErrClosed
	}
	p.metrics.AllocCalls++

	prevOff := format.NilOffset
	var prev format.Block
	curOff := p.freeHead
	for !curOff.IsNil() {
		cur, err := format.CheckBlock(p.arena, curOff)
		if err != nil {
			// Corrupted list; fail safe before writing anything.
			p.metrics.CorruptionAborts++
			return NilPtr, nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		if cur.Free && uint64(cur.Size) >= request {
			return p.allocFrom(curOff, cur, prevOff, prev, uint32(request))
		}
		prevOff, prev = curOff, cur
		curOff = cur.Next
	}

	if logAlloc {
		fmt.Fprintf(os.Stderr, "[ALLOC] no fit for %d bytes (free=%d in %d blocks)\n",
			request, p.freeSpace, p.freeCount())
	}
	return NilPtr, nil, ErrNoSpace
}

// allocFrom carves request bytes out of the free block at curOff and unlinks
// it from the free list. Called with the pool lock held; curOff and prevOff
// have been validated by the caller's scan.
func (p *Pool) allocFrom(
	curOff format.Offset,
	cur format.Block,
	prevOff format.Offset,
	prev format.Block,
	request uint32,
) (Ptr, []byte, error) {
	replacement := cur.Next

	// Split only when the remainder can still hold a header plus a minimum
	// block. An unsplittable remainder is granted to the caller in full.
	if uint64(cur.Size) >= uint64(request)+format.HeaderSize+format.MinAllocSize {
		remOff := format.BlockEnd(curOff, request)
		format.EncodeBlock(p.arena, remOff, format.Block{
			Magic: format.Magic,
			Size:  cur.Size - request - format.HeaderSize,
			Next:  cur.Next,
			Free:  true,
		})
		replacement = remOff
		cur.Size = request

		// The carved-out payload and the remainder's new header both leave
		// the free pool.
		p.freeSpace -= uint64(request) + format.HeaderSize
		p.metrics.Splits++
		if logAlloc {
			fmt.Fprintf(os.Stderr, "[ALLOC] split block %#x: take %d, remainder %d at %#x\n",
				uint32(curOff), request, cur.Size, uint32(remOff))
		}
	} else {
		p.freeSpace -= uint64(cur.Size)
	}

	cur.Free = false
	cur.Next = format.NilOffset
	format.EncodeBlock(p.arena, curOff, cur)

	// Unlink: the predecessor (or the list head) now points at the
	// remainder, or at the matched block's old successor.
	if prevOff.IsNil() {
		p.freeHead = replacement
	} else {
		prev.Next = replacement
		format.EncodeBlock(p.arena, prevOff, prev)
	}

	p.allocated += uint64(cur.Size)

	payload := curOff + format.HeaderSize
	return Ptr(payload), p.arena[payload : uint32(payload)+cur.Size], nil
}
