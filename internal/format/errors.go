package format

import "errors"

var (
	// ErrTruncated indicates a header or its declared payload extends past
	// the end of the pool region.
	ErrTruncated = errors.New("format: block extends past region end")

	// ErrBadMagic indicates the header magic tag does not match Magic.
	ErrBadMagic = errors.New("format: bad magic tag")

	// ErrMisaligned indicates a block offset is not on an Alignment boundary.
	ErrMisaligned = errors.New("format: misaligned block offset")

	// ErrBadSize indicates a declared payload size below MinAllocSize.
	ErrBadSize = errors.New("format: declared size below minimum")

	// ErrBadNext indicates a next-free offset that is misaligned or out of
	// bounds for the region.
	ErrBadNext = errors.New("format: bad next-free offset")
)
