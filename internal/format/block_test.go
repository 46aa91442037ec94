package format

import (
	"errors"
	"testing"
)

// The header layout is an implementation contract: fixed size, and that size
// must be a multiple of the pool alignment so payloads stay aligned.
func TestHeaderLayoutContract(t *testing.T) {
	if HeaderSize != 16 {
		t.Fatalf("HeaderSize = %d, want 16", HeaderSize)
	}
	if HeaderSize%Alignment != 0 {
		t.Fatalf("HeaderSize %d not a multiple of Alignment %d", HeaderSize, Alignment)
	}
	if blockFlagsOff+4 != HeaderSize {
		t.Fatalf("field layout does not fill the header: last field ends at %d", blockFlagsOff+4)
	}
}

func TestEncodeDecodeBlock(t *testing.T) {
	buf := make([]byte, 64)
	want := Block{Magic: Magic, Size: 40, Next: NilOffset, Free: true}
	EncodeBlock(buf, 0, want)

	got, err := DecodeBlock(buf, 0)
	if err != nil {
		t.Fatalf("DecodeBlock: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
	}

	// Wire bytes are little-endian: magic tag first.
	if ReadU32(buf, 0) != Magic {
		t.Fatalf("magic bytes mismatch: %#x", ReadU32(buf, 0))
	}
}

func TestDecodeBlockTruncated(t *testing.T) {
	buf := make([]byte, HeaderSize-1)
	if _, err := DecodeBlock(buf, 0); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	if _, err := DecodeBlock(buf, NilOffset); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated for nil offset, got %v", err)
	}
}

func TestCheckBlockRejectsCorruption(t *testing.T) {
	mk := func(blk Block) []byte {
		buf := make([]byte, 128)
		EncodeBlock(buf, 0, blk)
		return buf
	}

	cases := []struct {
		name string
		buf  []byte
		off  Offset
		want error
	}{
		{
			name: "bad magic",
			buf:  mk(Block{Magic: 0xDEADBEEF, Size: 32, Next: NilOffset, Free: true}),
			want: ErrBadMagic,
		},
		{
			name: "size below minimum",
			buf:  mk(Block{Magic: Magic, Size: MinAllocSize - 1, Next: NilOffset, Free: true}),
			want: ErrBadSize,
		},
		{
			name: "declared size past region end",
			buf:  mk(Block{Magic: Magic, Size: 4096, Next: NilOffset, Free: true}),
			want: ErrTruncated,
		},
		{
			name: "misaligned next",
			buf:  mk(Block{Magic: Magic, Size: 32, Next: 12, Free: true}),
			want: ErrBadNext,
		},
		{
			name: "next past region end",
			buf:  mk(Block{Magic: Magic, Size: 32, Next: 1024, Free: true}),
			want: ErrBadNext,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := CheckBlock(tc.buf, tc.off); !errors.Is(err, tc.want) {
				t.Fatalf("CheckBlock: got %v, want %v", err, tc.want)
			}
		})
	}

	// Misaligned block offset: encode a valid header at an odd offset.
	buf := make([]byte, 128)
	EncodeBlock(buf, 4, Block{Magic: Magic, Size: 32, Next: NilOffset, Free: true})
	if _, err := CheckBlock(buf, 4); !errors.Is(err, ErrMisaligned) {
		t.Fatalf("CheckBlock misaligned: got %v", err)
	}
}

func TestCheckBlockAcceptsValidHeader(t *testing.T) {
	buf := make([]byte, 128)
	EncodeBlock(buf, 0, Block{Magic: Magic, Size: 48, Next: 64, Free: true})
	EncodeBlock(buf, 64, Block{Magic: Magic, Size: 48, Next: NilOffset, Free: true})

	blk, err := CheckBlock(buf, 0)
	if err != nil {
		t.Fatalf("CheckBlock: %v", err)
	}
	if blk.Size != 48 || blk.Next != 64 || !blk.Free {
		t.Fatalf("unexpected block: %+v", blk)
	}
}

func TestBlockEnd(t *testing.T) {
	if got := BlockEnd(0, 40); got != 56 {
		t.Fatalf("BlockEnd(0, 40) = %d, want 56", got)
	}
	if got := BlockEnd(56, MinAllocSize); got != 56+HeaderSize+MinAllocSize {
		t.Fatalf("BlockEnd(56, min) = %d", got)
	}
}
