package pool

import (
	"sync"
	"unsafe"

	"github.com/joshuapare/poolkit/internal/format"
)

// Ptr is a pool-relative payload offset returned by Alloc. It is an opaque
// reference, not a native pointer: the pool resolves and validates it on
// every use. The zero value is the null sentinel - no payload can start
// before the first header ends.
type Ptr uint32

// NilPtr is the failed-allocation sentinel.
const NilPtr Ptr = 0

// Pool serves allocation and free requests out of one borrowed, fixed-size
// byte buffer. The pool never grows the buffer, never returns memory to the
// runtime, and never outlives its bookkeeping: blocks are only ever carved
// and recombined in place.
type Pool struct {
	mu       sync.Mutex
	arena    []byte        // usable, alignment-rounded prefix of the caller's buffer
	freeHead format.Offset // head of the address-ordered free list

	allocated uint64 // payload bytes currently handed out
	freeSpace uint64 // payload bytes reachable from the free list

	metrics Metrics
}

// Stats is a point-in-time snapshot of the pool's byte accounting.
type Stats struct {
	Total int // usable pool size in bytes
	Used  int // payload bytes currently allocated
	Free  int // payload bytes currently reclaimable
}

// Metrics counts allocator operations since Init. The counters are
// instrumentation for tests and diagnostics, not part of the allocation
// contract.
type Metrics struct {
	AllocCalls        int64 // Alloc invocations
	FreeCalls         int64 // Free invocations
	Splits            int64 // blocks split during allocation
	ForwardCoalesces  int64 // next-neighbor merges
	BackwardCoalesces int64 // previous-neighbor merges
	DoubleFrees       int64 // frees of an already-free block, ignored
	InvalidFrees      int64 // frees of pointers the pool never issued, ignored
	CorruptionAborts  int64 // operations aborted by a failed header check
}

// Init formats buf as a pool holding a single spanning free block.
//
// The buffer must start on an 8-byte boundary; its length is rounded down to
// the alignment and must then hold at least one header plus one minimum
// block. Init fails without writing to the buffer otherwise. The pool
// borrows the buffer for its lifetime - the caller must not free or reuse it
// until after Close.
func Init(buf []byte) (*Pool, error) {
	if len(buf) == 0 {
		return nil, ErrTooSmall
	}
	// Offsets cannot see where the runtime placed the buffer; the raw
	// address is needed for the alignment check.
	if uintptr(unsafe.Pointer(&buf[0]))&format.AlignmentMask != 0 {
		return nil, ErrMisaligned
	}
	usable := format.AlignDown(len(buf))
	if usable < format.HeaderSize+format.MinAllocSize {
		return nil, ErrTooSmall
	}
	if usable > format.MaxPoolSize {
		return nil, ErrTooLarge
	}

	arena := buf[:usable]
	first := format.Block{
		Magic: format.Magic,
		Size:  uint32(usable - format.HeaderSize),
		Next:  format.NilOffset,
		Free:  true,
	}
	format.EncodeBlock(arena, 0, first)

	return &Pool{
		arena:     arena,
		freeHead:  0,
		freeSpace: uint64(first.Size),
	}, nil
}

// Close resets the pool to an empty state. The caller's buffer is left
// untouched; the pool never owned it. After Close, Alloc fails with
// ErrClosed and Free and the diagnostics are no-ops.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.arena = nil
	p.freeHead = format.NilOffset
	p.allocated = 0
	p.freeSpace = 0
}

// Stats returns the pool's byte counters under the pool lock. Pure read.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{
		Total: len(p.arena),
		Used:  int(p.allocated),
		Free:  int(p.freeSpace),
	}
}

// Metrics returns a snapshot of the operation counters.
func (p *Pool) Metrics() Metrics {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.metrics
}
