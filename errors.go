package pac

import "github.com/meigma/pac/internal/pactype"

// Errors re-exported from pactype.
var (
	// ErrTruncatedHeader is returned when the file is shorter than the archive header.
	ErrTruncatedHeader = pactype.ErrTruncatedHeader

	// ErrNotFound is returned when no partition matches an identifier.
	ErrNotFound = pactype.ErrNotFound

	// ErrShortRead is returned when a partition payload ends before its declared size.
	ErrShortRead = pactype.ErrShortRead

	// ErrSizeOverflow is returned when an offset or size is not representable.
	ErrSizeOverflow = pactype.ErrSizeOverflow
)
