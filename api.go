package pac

import (
	"context"
	"io"
	"iter"

	"github.com/meigma/pac/internal/entry"
	"github.com/meigma/pac/internal/extract"
	"github.com/meigma/pac/internal/header"
	"github.com/meigma/pac/internal/pacwriter"
)

// DecodeHeader decodes an archive header from the leading bytes of a
// container. It returns ErrTruncatedHeader if b is shorter than HeaderSize.
func DecodeHeader(b []byte) (*Header, error) {
	return header.Decode(b)
}

// ReadHeader reads and decodes the archive header at offset 0 of r.
func ReadHeader(r io.ReaderAt) (*Header, error) {
	return header.Read(r)
}

// WalkEntries returns up to count entry records starting at tableOffset.
//
// The sequence ends without error at the first record that does not fit
// before end of file. Other read errors are yielded once.
func WalkEntries(r io.ReaderAt, tableOffset int64, count uint32) iter.Seq2[*Entry, error] {
	return entry.Walk(r, tableOffset, count)
}

// FindEntry returns the first entry whose FileID or FileName equals id, or
// an error wrapping ErrNotFound.
func FindEntry(entries iter.Seq2[*Entry, error], id string) (*Entry, error) {
	return entry.Find(entries, id)
}

// Extract copies the payload of e from r to w and returns the bytes written
// and their digest. A payload cut short by end of file is still written and
// reported with ErrShortRead.
func Extract(r io.ReaderAt, e *Entry, w io.Writer) (ExtractResult, error) {
	return extract.Extract(context.Background(), r, e, w)
}

// Create writes a PAC container holding parts to w and returns the number of
// bytes written. Entry offsets, sizes and the entry count are computed.
func Create(w io.Writer, hdr Header, parts []Partition) (uint64, error) {
	return pacwriter.Write(w, hdr, parts)
}

// ExtractResult describes the bytes copied for one partition.
type ExtractResult = extract.Result
