// Package pacwriter serializes PAC containers.
package pacwriter

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/meigma/pac/internal/entry"
	"github.com/meigma/pac/internal/format"
	"github.com/meigma/pac/internal/header"
	"github.com/meigma/pac/internal/pactype"
	"github.com/meigma/pac/internal/sizing"
)

// ErrTooManyPartitions is returned when the entry count does not fit the header.
var ErrTooManyPartitions = errors.New("too many partitions")

// Partition is one payload to store.
type Partition struct {
	// Entry carries the metadata to record. Its size and offset halves are
	// overwritten; Index is ignored.
	Entry pactype.Entry

	// Data supplies exactly Size bytes.
	Data io.Reader
	Size uint64
}

// Write encodes hdr, one entry record per partition and the payloads, in
// that order, and returns the number of bytes written.
//
// The entry table is placed at format.EntryTableOffset and payloads follow it
// back to back in partition order. EntryCount, DeclaredTableOffset and the
// archive size in hdr are filled in; CRC fields are written as given.
func Write(w io.Writer, hdr pactype.Header, parts []Partition) (uint64, error) {
	if uint64(len(parts)) > math.MaxUint32 {
		return 0, ErrTooManyPartitions
	}

	cw := &countingWriter{w: w}
	tableEnd := uint64(format.EntryTableOffset) + uint64(len(parts))*uint64(format.EntryRecordSize) //nolint:gosec // constants are positive
	offset := tableEnd
	records := make([][]byte, len(parts))
	for i := range parts {
		e := parts[i].Entry
		e.SetOffset(offset)
		e.SetSize(parts[i].Size)
		if e.DeclaredSize == 0 {
			e.DeclaredSize = uint32(format.EntryRecordSize) //nolint:gosec // constant
		}
		raw, err := entry.Encode(&e)
		if err != nil {
			return 0, err
		}
		records[i] = raw

		next, ok := sizing.AddUint64(offset, parts[i].Size)
		if !ok {
			return 0, fmt.Errorf("partition %d: %w", i, pactype.ErrSizeOverflow)
		}
		offset = next
	}

	hdr.EntryCount = uint32(len(parts)) //nolint:gosec // checked above
	hdr.DeclaredTableOffset = uint32(format.EntryTableOffset)
	hdr.SizeHi, hdr.SizeLo = uint32(offset>>32), uint32(offset) //nolint:gosec // intentional split
	raw, err := header.Encode(&hdr)
	if err != nil {
		return 0, err
	}
	if _, err := cw.Write(raw); err != nil {
		return cw.n, fmt.Errorf("write archive header: %w", err)
	}
	if gap := format.EntryTableOffset - int64(len(raw)); gap > 0 {
		if _, err := cw.Write(make([]byte, gap)); err != nil {
			return cw.n, fmt.Errorf("write header padding: %w", err)
		}
	}

	for i, rec := range records {
		if _, err := cw.Write(rec); err != nil {
			return cw.n, fmt.Errorf("write entry %d: %w", i, err)
		}
	}

	for i, p := range parts {
		if p.Size == 0 {
			continue
		}
		size, err := sizing.ToInt64(p.Size, pactype.ErrSizeOverflow)
		if err != nil {
			return cw.n, fmt.Errorf("partition %d: %w", i, err)
		}
		if _, err := io.CopyN(cw, p.Data, size); err != nil {
			return cw.n, fmt.Errorf("write partition %d (%s): %w", i, p.Entry.Identifier(), err)
		}
	}
	return cw.n, nil
}

// countingWriter wraps a writer and counts bytes written.
type countingWriter struct {
	w io.Writer
	n uint64
}

// Write implements io.Writer.
func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += uint64(n) //nolint:gosec // n is non-negative by io.Writer contract
	return n, err
}
