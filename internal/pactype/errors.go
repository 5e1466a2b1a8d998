package pactype

import "errors"

// Sentinel errors.
var (
	// ErrTruncatedHeader is returned when fewer bytes than the archive header
	// size are available at offset 0.
	ErrTruncatedHeader = errors.New("truncated archive header")

	// ErrNotFound is returned when no entry matches a requested identifier.
	ErrNotFound = errors.New("partition not found")

	// ErrShortRead is returned when a partition payload ends before its
	// declared size.
	ErrShortRead = errors.New("short read")

	// ErrSizeOverflow is returned when an offset or size cannot be represented.
	ErrSizeOverflow = errors.New("size overflow")
)
