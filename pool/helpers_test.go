package pool

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/poolkit/internal/format"
)

// ============================================================================
// Test Helpers
// ============================================================================

// alignedBuf returns an n-byte buffer starting on the pool alignment
// boundary. The Go heap aligns allocations of these sizes, but the tests
// assert it rather than assume it.
func alignedBuf(t testing.TB, n int) []byte {
	t.Helper()
	buf := make([]byte, n)
	require.Zero(t, uintptr(unsafe.Pointer(&buf[0]))&format.AlignmentMask,
		"test buffer not aligned, cannot exercise the pool")
	return buf
}

// newPool initializes a pool over a fresh aligned buffer of n bytes.
func newPool(t testing.TB, n int) *Pool {
	t.Helper()
	p, err := Init(alignedBuf(t, n))
	require.NoError(t, err)
	return p
}

// assertInvariants checks the standing accounting invariants that must hold
// after every operation on an uncorrupted pool.
func assertInvariants(t testing.TB, p *Pool) {
	t.Helper()
	st := p.Stats()
	require.Equal(t, st.Free, p.TotalFreeBytes(),
		"free-list byte total must equal the free-space counter")
	require.LessOrEqual(t, st.Used+st.Free, st.Total,
		"payload bytes cannot exceed the pool size")
	require.GreaterOrEqual(t, st.Used, 0)
	require.GreaterOrEqual(t, st.Free, 0)
}

// aligned8 reports whether a payload reference sits on the pool alignment.
func aligned8(p Ptr) bool {
	return uint32(p)&format.AlignmentMask == 0
}
