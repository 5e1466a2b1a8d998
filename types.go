package pac

import (
	"github.com/meigma/pac/internal/format"
	"github.com/meigma/pac/internal/pactype"
	"github.com/meigma/pac/internal/pacwriter"
)

// Header is the decoded archive header.
type Header = pactype.Header

// Entry is one decoded partition entry record.
type Entry = pactype.Entry

// Compression identifies how extracted partitions are written.
type Compression = pactype.Compression

// Partition is one payload passed to Create.
type Partition = pacwriter.Partition

// Compression constants.
const (
	CompressionNone = pactype.CompressionNone
	CompressionZstd = pactype.CompressionZstd
)

// EntryTableOffset is the absolute offset of the first entry record.
const EntryTableOffset = format.EntryTableOffset

var (
	// HeaderSize is the encoded size of the archive header.
	HeaderSize = format.HeaderSize

	// EntryRecordSize is the encoded size of one entry record.
	EntryRecordSize = format.EntryRecordSize
)
