package pool

import (
	"fmt"
	"io"

	"github.com/joshuapare/poolkit/internal/format"
)

// walkBound is the maximum number of nodes a well-formed free list can hold:
// every block costs at least a header plus a minimum payload. A walk that
// exceeds it is following a cycle or corrupt links.
func (p *Pool) walkBound() int {
	return len(p.arena)/(format.HeaderSize+format.MinAllocSize) + 1
}

// walkFree visits every node reachable from the free-list head whose header
// passes validation and whose free flag is set. The walk stops at the first
// corrupt header or when it exceeds the node bound; it reports whether it
// terminated cleanly. Called with the pool lock held.
func (p *Pool) walkFree(visit func(off format.Offset, blk format.Block)) bool {
	bound := p.walkBound()
	cur := p.freeHead
	for steps := 0; !cur.IsNil(); steps++ {
		if steps >= bound {
			return false
		}
		blk, err := format.CheckBlock(p.arena, cur)
		if err != nil {
			return false
		}
		if blk.Free {
			visit(cur, blk)
		}
		cur = blk.Next
	}
	return true
}

// freeCount counts reachable free nodes. Lock must be held.
func (p *Pool) freeCount() int {
	n := 0
	p.walkFree(func(format.Offset, format.Block) { n++ })
	return n
}

// FreeBlockCount returns the number of blocks reachable from the free-list
// head whose free flag is set.
func (p *Pool) FreeBlockCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.arena == nil {
		return 0
	}
	return p.freeCount()
}

// TotalFreeBytes returns the payload byte sum of reachable free blocks. On
// an uncorrupted pool this always equals Stats().Free.
func (p *Pool) TotalFreeBytes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.arena == nil {
		return 0
	}
	total := 0
	p.walkFree(func(_ format.Offset, blk format.Block) { total += int(blk.Size) })
	return total
}

// LargestFreeBytes returns the payload size of the largest reachable free
// block. Together with TotalFreeBytes it measures fragmentation: a largest
// block well below the total means free capacity is scattered.
func (p *Pool) LargestFreeBytes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.arena == nil {
		return 0
	}
	largest := 0
	p.walkFree(func(_ format.Offset, blk format.Block) {
		if int(blk.Size) > largest {
			largest = int(blk.Size)
		}
	})
	return largest
}

// DumpFreeList writes a human-readable listing of every node reachable from
// the free-list head to w: offset, address, payload size, free flag, and
// next offset. A corrupt header or a walk that fails to terminate within
// the node bound is reported inline and ends the listing.
func (p *Pool) DumpFreeList(w io.Writer) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.arena == nil {
		_, err := fmt.Fprintln(w, "pool: closed")
		return err
	}
	_, err := fmt.Fprintf(w, "free list: pool=%d free=%d head=%s\n",
		len(p.arena), p.freeSpace, fmtOffset(p.freeHead))
	if err != nil {
		return err
	}

	bound := p.walkBound()
	cur := p.freeHead
	for steps := 0; !cur.IsNil(); steps++ {
		if steps >= bound {
			_, err = fmt.Fprintf(w, "  !! walk exceeded %d nodes: free list is cyclic or corrupt\n", bound)
			return err
		}
		blk, err := format.CheckBlock(p.arena, cur)
		if err != nil {
			_, werr := fmt.Fprintf(w, "  !! corrupt header at %s: %v\n", fmtOffset(cur), err)
			return werr
		}
		_, err = fmt.Fprintf(w, "  block %s addr=%p size=%-8d free=%-5v next=%s\n",
			fmtOffset(cur), &p.arena[cur], blk.Size, blk.Free, fmtOffset(blk.Next))
		if err != nil {
			return err
		}
		cur = blk.Next
	}
	return nil
}

func fmtOffset(off format.Offset) string {
	if off.IsNil() {
		return "nil"
	}
	return fmt.Sprintf("%#010x", uint32(off))
}
