package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/poolkit/internal/format"
)

func TestInitRejectsMisalignedBuffer(t *testing.T) {
	buf := alignedBuf(t, 129)

	_, err := Init(buf[1:])
	require.ErrorIs(t, err, ErrMisaligned)
}

func TestInitRejectsUndersizedBuffer(t *testing.T) {
	_, err := Init(nil)
	require.ErrorIs(t, err, ErrTooSmall)

	// One byte short of header + minimum block.
	_, err = Init(alignedBuf(t, format.HeaderSize+format.MinAllocSize-1))
	require.ErrorIs(t, err, ErrTooSmall)

	// Exactly header + minimum block is enough.
	p, err := Init(alignedBuf(t, format.HeaderSize+format.MinAllocSize))
	require.NoError(t, err)
	assert.Equal(t, format.MinAllocSize, p.Stats().Free)
}

func TestInitLeavesBufferUntouchedOnFailure(t *testing.T) {
	buf := alignedBuf(t, 24)
	for i := range buf {
		buf[i] = 0xA5
	}
	_, err := Init(buf)
	require.ErrorIs(t, err, ErrTooSmall)
	for i, b := range buf {
		require.Equal(t, byte(0xA5), b, "byte %d clobbered by failed Init", i)
	}
}

func TestInitFormatsSingleSpanningBlock(t *testing.T) {
	p := newPool(t, 128)

	st := p.Stats()
	assert.Equal(t, 128, st.Total)
	assert.Equal(t, 0, st.Used)
	assert.Equal(t, 128-format.HeaderSize, st.Free)
	assert.Equal(t, 1, p.FreeBlockCount())
	assert.Equal(t, st.Free, p.LargestFreeBytes())
	assertInvariants(t, p)
}

func TestInitRoundsSizeDownToAlignment(t *testing.T) {
	p := newPool(t, 61) // usable = 56

	st := p.Stats()
	assert.Equal(t, 56, st.Total)
	assert.Equal(t, 56-format.HeaderSize, st.Free)
}

func TestCloseResetsBookkeeping(t *testing.T) {
	p := newPool(t, 256)
	ptr, _, err := p.Alloc(32)
	require.NoError(t, err)

	p.Close()

	_, _, err = p.Alloc(16)
	assert.ErrorIs(t, err, ErrClosed)

	// Free and diagnostics become no-ops, not panics.
	p.Free(ptr)
	assert.Equal(t, Stats{}, p.Stats())
	assert.Equal(t, 0, p.FreeBlockCount())
	assert.Equal(t, 0, p.TotalFreeBytes())

	var out bytes.Buffer
	require.NoError(t, p.DumpFreeList(&out))
	assert.Contains(t, out.String(), "pool: closed")
}

func TestCloseLeavesBufferAlone(t *testing.T) {
	buf := alignedBuf(t, 128)
	p, err := Init(buf)
	require.NoError(t, err)

	_, payload, err := p.Alloc(16)
	require.NoError(t, err)
	for i := range payload {
		payload[i] = 0x42
	}

	p.Close()

	// The payload bytes written through the pool are still there.
	for i := range payload {
		require.Equal(t, byte(0x42), payload[i])
	}
}

func TestStatsIsPureRead(t *testing.T) {
	p := newPool(t, 256)
	before := p.Stats()
	for i := 0; i < 10; i++ {
		assert.Equal(t, before, p.Stats())
	}
	assert.Equal(t, int64(0), p.Metrics().AllocCalls)
}
