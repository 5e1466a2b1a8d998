// Package pactype holds the decoded PAC data model shared by the decoder,
// extractor and public API.
package pactype

import "github.com/meigma/pac/internal/format"

// Header is the decoded archive header. It is immutable after decoding.
type Header struct {
	// Version is the container format version string (e.g. "BP_R1.0.0").
	Version string

	// SizeHi and SizeLo are the halves of the declared archive size.
	SizeHi uint32
	SizeLo uint32

	// ProductName and ProductVersion identify the firmware build.
	ProductName    string
	ProductVersion string

	// EntryCount is the declared number of entry records. It is producer
	// supplied and bounds, but does not guarantee, the number of entries.
	EntryCount uint32

	// DeclaredTableOffset is the table offset stored in the header. The
	// decoder does not use it; see EntryTableOffset.
	DeclaredTableOffset uint32

	Mode             uint32
	FlashType        uint32
	NandStrategy     uint32
	IsNvBackup       uint32
	NandPageType     uint32
	ProductAlias     uint32
	OmaDMProductFlag string
	IsOmaDM          uint32
	IsPreload        uint32
	Reserved         [format.HeaderReservedWords]uint32

	// Magic, CRC1 and CRC2 are exposed as read; they are never verified.
	Magic uint32
	CRC1  uint16
	CRC2  uint16
}

// Size returns the declared archive size.
func (h *Header) Size() uint64 {
	return uint64(h.SizeHi)<<32 | uint64(h.SizeLo)
}

// EntryTableOffset returns the absolute offset of the first entry record.
func (h *Header) EntryTableOffset() int64 {
	return format.EntryTableOffset
}
