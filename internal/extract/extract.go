// Package extract copies partition payloads out of a PAC container.
package extract

import (
	"context"
	"fmt"
	"io"

	"github.com/opencontainers/go-digest"

	"github.com/meigma/pac/internal/pactype"
	"github.com/meigma/pac/internal/sizing"
)

// DefaultBufferSize is the copy buffer size used for large partitions.
const DefaultBufferSize = 1 << 20

// Result describes a completed or partial extraction.
type Result struct {
	// Written is the number of payload bytes written to the sink.
	Written uint64

	// Digest is the sha256 digest of the bytes written.
	Digest digest.Digest
}

// Extract copies exactly entry.Size() bytes starting at entry.Offset() from
// src to dst.
//
// Reads use absolute offsets; src is never seeked. If src ends before the
// declared size, the available bytes are still written and the returned
// error wraps pactype.ErrShortRead. Closing dst is the caller's job.
func Extract(ctx context.Context, src io.ReaderAt, entry *pactype.Entry, dst io.Writer) (Result, error) {
	name := entry.Identifier()
	off, err := sizing.ToInt64(entry.Offset(), pactype.ErrSizeOverflow)
	if err != nil {
		return Result{}, fmt.Errorf("extract %s: offset %d: %w", name, entry.Offset(), err)
	}
	size, err := sizing.ToInt64(entry.Size(), pactype.ErrSizeOverflow)
	if err != nil {
		return Result{}, fmt.Errorf("extract %s: size %d: %w", name, entry.Size(), err)
	}

	digester := digest.Canonical.Digester()
	w := io.MultiWriter(dst, digester.Hash())

	var written uint64
	if size > 0 {
		section := io.NewSectionReader(src, off, size)
		buf := make([]byte, min(size, DefaultBufferSize))
		written, err = copyWithContext(ctx, w, section, buf)
	}
	res := Result{Written: written, Digest: digester.Digest()}
	if err != nil {
		return res, fmt.Errorf("extract %s: %w", name, err)
	}
	if written < entry.Size() {
		return res, fmt.Errorf("extract %s: %w: got %d of %d bytes", name, pactype.ErrShortRead, written, entry.Size())
	}
	return res, nil
}
