package pool

import "errors"

var (
	// ErrMisaligned indicates the backing buffer does not start on the pool
	// alignment boundary.
	ErrMisaligned = errors.New("pool: buffer start not 8-byte aligned")

	// ErrTooSmall indicates the usable buffer cannot hold even one header
	// plus a minimum-size block.
	ErrTooSmall = errors.New("pool: buffer too small for one minimum block")

	// ErrTooLarge indicates the buffer exceeds the uint32 offset range the
	// header format can address.
	ErrTooLarge = errors.New("pool: buffer exceeds maximum pool size")

	// ErrBadRequest indicates a zero or negative allocation size.
	ErrBadRequest = errors.New("pool: allocation size must be positive")

	// ErrNoSpace indicates no free block large enough was found.
	ErrNoSpace = errors.New("pool: no free block large enough")

	// ErrCorrupt indicates a block header failed validation during a scan.
	// The operation that found it made no state changes.
	ErrCorrupt = errors.New("pool: corrupt block header")

	// ErrClosed indicates the pool has been closed.
	ErrClosed = errors.New("pool: closed")
)
