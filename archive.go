package pac

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"

	"github.com/meigma/pac/internal/entry"
	"github.com/meigma/pac/internal/extract"
	"github.com/meigma/pac/internal/format"
	"github.com/meigma/pac/internal/header"
)

// Archive is an open PAC container.
//
// The header is decoded once by Open or New. Entries are decoded lazily on
// every walk and hold no reference to the file.
type Archive struct {
	src         *io.SectionReader
	closer      io.Closer
	header      *Header
	tableOffset int64
	logger      *slog.Logger
}

// log returns the logger, falling back to a discard logger if nil.
func (a *Archive) log() *slog.Logger {
	if a.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.logger
}

// Open opens the container at path. The file stays open until Close.
func Open(path string, opts ...Option) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close() //nolint:errcheck // best-effort cleanup
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	a, err := New(f, info.Size(), opts...)
	if err != nil {
		_ = f.Close() //nolint:errcheck // best-effort cleanup
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	a.closer = f
	return a, nil
}

// New decodes the archive header from src, which holds size bytes.
//
// Reads never go past size. The caller keeps ownership of src; Close does
// not close it.
func New(src io.ReaderAt, size int64, opts ...Option) (*Archive, error) {
	a := &Archive{
		src:         io.NewSectionReader(src, 0, size),
		tableOffset: format.EntryTableOffset,
	}
	for _, opt := range opts {
		opt(a)
	}

	h, err := header.Read(a.src)
	if err != nil {
		return nil, err
	}
	a.header = h

	a.log().Debug("archive header decoded",
		"product", h.ProductName,
		"version", h.ProductVersion,
		"entries", h.EntryCount,
		"size", size)
	if int64(h.DeclaredTableOffset) != a.tableOffset {
		a.log().Debug("declared table offset differs from layout",
			"declared", h.DeclaredTableOffset,
			"using", a.tableOffset)
	}
	return a, nil
}

// Header returns the decoded archive header.
func (a *Archive) Header() *Header {
	return a.header
}

// Size returns the container size in bytes.
func (a *Archive) Size() int64 {
	return a.src.Size()
}

// TableOffset returns the entry table offset in use.
func (a *Archive) TableOffset() int64 {
	return a.tableOffset
}

// Entries returns the entry table as a lazy sequence in table order.
//
// At most Header().EntryCount entries are produced; a table cut short by end
// of file ends the sequence without error.
func (a *Archive) Entries() iter.Seq2[*Entry, error] {
	return entry.Walk(a.src, a.tableOffset, a.header.EntryCount)
}

// EntryList reads the whole entry table.
func (a *Archive) EntryList() ([]*Entry, error) {
	entries, err := entry.Collect(a.Entries())
	if err != nil {
		return entries, err
	}
	if n := len(entries); uint32(n) < a.header.EntryCount { //nolint:gosec // n <= EntryCount
		a.log().Warn("entry table truncated", "declared", a.header.EntryCount, "read", n)
	}
	return entries, nil
}

// Find returns the first entry whose FileID or FileName equals id.
// It returns an error wrapping ErrNotFound if there is none.
func (a *Archive) Find(id string) (*Entry, error) {
	return entry.Find(a.Entries(), id)
}

// Extract copies the payload of e to w.
//
// A payload that runs past end of file is written up to the last available
// byte and reported with ErrShortRead.
func (a *Archive) Extract(ctx context.Context, e *Entry, w io.Writer) (ExtractResult, error) {
	res, err := extract.Extract(ctx, a.src, e, w)
	if err != nil {
		a.log().Debug("extract failed", "partition", e.Identifier(), "written", res.Written, "error", err)
		return res, err
	}
	a.log().Debug("partition extracted", "partition", e.Identifier(), "bytes", res.Written, "digest", res.Digest)
	return res, nil
}

// Close releases the file opened by Open. It is a no-op for archives
// created with New.
func (a *Archive) Close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}
