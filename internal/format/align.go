package format

// Alignment utilities for the pool block layout. Block headers, payloads,
// and the usable pool size itself are all kept on Alignment boundaries.

// AlignUp returns n aligned up to the next Alignment boundary.
//
// Example:
//
//	AlignUp(1)  = 8
//	AlignUp(8)  = 8
//	AlignUp(17) = 24
func AlignUp(n int) int {
	return (n + AlignmentMask) & ^AlignmentMask
}

// AlignDown returns n aligned down to the previous Alignment boundary.
// Used to round a caller's buffer size down to the usable pool size.
func AlignDown(n int) int {
	return n & ^AlignmentMask
}

// IsAligned reports whether n sits on an Alignment boundary.
func IsAligned(n int) bool {
	return n&AlignmentMask == 0
}
