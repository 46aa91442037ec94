//go:build !unix

// Package mmfile provides platform-specific helpers for mapping pool backing
// regions into memory.
package mmfile

import (
	"fmt"
	"os"
)

// Map loads the file at path into a heap buffer when mmap is not available.
// The cleanup function writes the buffer back.
func Map(path string, size int64) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("mmfile: invalid region size %d", size)
	}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, nil, err
	}
	if int64(len(data)) < size {
		grown := make([]byte, size)
		copy(grown, data)
		data = grown
	} else {
		data = data[:size]
	}
	cleanup := func() error {
		return os.WriteFile(path, data, 0o644)
	}
	return data, cleanup, nil
}

// Anonymous returns a heap-backed region when mmap is not available.
func Anonymous(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("mmfile: invalid region size %d", size)
	}
	return make([]byte, size), func() error { return nil }, nil
}

// Sync is a no-op for heap-backed regions.
func Sync([]byte) error { return nil }
