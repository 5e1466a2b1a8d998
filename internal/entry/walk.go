package entry

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/meigma/pac/internal/format"
	"github.com/meigma/pac/internal/pactype"
)

// Walk returns the entry table starting at tableOffset as a lazy sequence.
//
// Record i is read at the absolute offset tableOffset + i*EntryRecordSize, so
// no read cursor is shared with other readers of r. count is an upper bound:
// the sequence ends silently at the first record that does not fit before
// end of file. Any other read error is yielded once and ends the sequence.
func Walk(r io.ReaderAt, tableOffset int64, count uint32) iter.Seq2[*pactype.Entry, error] {
	return func(yield func(*pactype.Entry, error) bool) {
		buf := make([]byte, format.EntryRecordSize)
		for i := range int64(count) {
			off := tableOffset + i*int64(format.EntryRecordSize)
			n, err := r.ReadAt(buf, off)
			if n < len(buf) {
				if err == nil || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
					return
				}
				yield(nil, fmt.Errorf("read entry %d at offset %d: %w", i, off, err))
				return
			}
			e, err := Decode(buf, int(i))
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(e, nil) {
				return
			}
		}
	}
}

// Find returns the first entry whose FileID or FileName equals id.
// Matching is exact and case-sensitive.
func Find(entries iter.Seq2[*pactype.Entry, error], id string) (*pactype.Entry, error) {
	for e, err := range entries {
		if err != nil {
			return nil, err
		}
		if e.Matches(id) {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", pactype.ErrNotFound, id)
}

// Collect drains a sequence into a slice, stopping at the first error.
// The entries read before the error are returned with it.
func Collect(entries iter.Seq2[*pactype.Entry, error]) ([]*pactype.Entry, error) {
	var out []*pactype.Entry
	for e, err := range entries {
		if err != nil {
			return out, err
		}
		out = append(out, e)
	}
	return out, nil
}
