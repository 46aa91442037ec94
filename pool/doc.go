// Package pool implements a fixed-region memory-pool allocator over a
// caller-supplied byte buffer.
//
// # Overview
//
// A Pool carves one contiguous buffer into variable-sized blocks and serves
// allocation and free requests against it without ever touching the runtime
// allocator. Every block, free or allocated, is prefixed by a fixed 16-byte
// header (see internal/format); free blocks are threaded into a singly
// linked, address-ordered free list through their header's next-offset
// field. The free list is not a separate data structure - it is a traversal
// path through in-place headers.
//
// # Operations
//
//   - Init(buf): format the buffer as one spanning free block
//   - Alloc(n): first-fit search, request rounding, split-on-allocate
//   - Free(ptr): pointer validation, sorted re-insertion, coalescing
//   - Stats(): total/used/free byte counters
//   - Close(): reset bookkeeping; the buffer is returned untouched
//
// # Allocation policy
//
// Alloc rounds requests up to the 16-byte minimum and the 8-byte alignment,
// then takes the first free block large enough (first-fit). The block is
// split only when the remainder could still hold a header plus a minimum
// block; otherwise the whole block is granted. This keeps the free list free
// of unusable fragments at the cost of some over-allocation, and the exact
// byte accounting of both paths is part of the package contract.
//
// # Coalescing
//
// Free re-inserts blocks in ascending address order and merges them with
// physically adjacent free neighbors in both directions, reclaiming one
// header per absorbed block. A split-and-free cycle therefore restores the
// pool to its exact prior free-space count; no header bytes are permanently
// lost to fragmentation.
//
// # Corruption handling
//
// Every traversal re-validates each header it visits (magic tag, alignment,
// bounds) before trusting it. A header that fails validation aborts the
// operation without mutating state: Alloc reports ErrCorrupt, Free returns
// silently, and the diagnostics stop their walk. The pool never writes
// through an offset it has not just validated.
//
// # Misuse handling
//
// Free silently ignores pointers it cannot prove it issued: out-of-bounds,
// misaligned, interior, stale, and double-freed pointers all leave the pool
// untouched. A free-standing allocator cannot tell a caller bug from a
// pointer it never issued, so this path absorbs rather than panics.
//
// # Thread safety
//
// All operations, including the read-only diagnostics, serialize on one
// pool-wide mutex. Lock hold times are bounded: list length is capped by
// pool size divided by the minimum block footprint.
//
// # Diagnostics
//
//   - FreeBlockCount: reachable free nodes
//   - TotalFreeBytes: their payload sum (equals Stats().Free when intact)
//   - LargestFreeBytes: largest single free payload, for fragmentation
//   - DumpFreeList: textual listing with corruption warnings
//
// # Related packages
//
//   - github.com/joshuapare/poolkit/internal/format: header binary layout
//   - github.com/joshuapare/poolkit/internal/mmfile: page-aligned backings
package pool
