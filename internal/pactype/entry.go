package pactype

import "github.com/meigma/pac/internal/format"

// Entry is one decoded partition entry record.
//
// Entries are plain values decoded from a single table read; they hold no
// reference to the underlying file.
type Entry struct {
	// Index is the zero-based position of the record in the entry table.
	Index int

	// DeclaredSize is the record's own size field, as stored.
	DeclaredSize uint32

	// FileID and FileName each identify the partition. Neither is required
	// to be unique.
	FileID   string
	FileName string

	FileVersion string

	// The 64-bit payload size and offset are stored as 32-bit halves.
	SizeHi   uint32
	SizeLo   uint32
	OffsetHi uint32
	OffsetLo uint32

	Flags       uint32
	CheckFlag   uint32
	CanOmitFlag uint32
	AddrCount   uint32
	Addrs       [format.EntryAddrWords]uint32
	Reserved    [format.EntryReservedWords]uint32
}

// Size returns the payload size in bytes.
func (e *Entry) Size() uint64 {
	return uint64(e.SizeHi)<<32 | uint64(e.SizeLo)
}

// Offset returns the absolute payload offset in the archive.
func (e *Entry) Offset() uint64 {
	return uint64(e.OffsetHi)<<32 | uint64(e.OffsetLo)
}

// Matches reports whether id equals the entry's FileID or FileName exactly.
// An empty id never matches.
func (e *Entry) Matches(id string) bool {
	if id == "" {
		return false
	}
	return e.FileID == id || e.FileName == id
}

// Identifier returns FileID, or FileName when FileID is empty.
func (e *Entry) Identifier() string {
	if e.FileID != "" {
		return e.FileID
	}
	return e.FileName
}

// SetSize stores a 64-bit size as its two halves.
func (e *Entry) SetSize(n uint64) {
	e.SizeHi, e.SizeLo = uint32(n>>32), uint32(n) //nolint:gosec // intentional split
}

// SetOffset stores a 64-bit offset as its two halves.
func (e *Entry) SetOffset(off uint64) {
	e.OffsetHi, e.OffsetLo = uint32(off>>32), uint32(off) //nolint:gosec // intentional split
}
