// Package format declares the field tables of the PAC container.
//
// All multi-byte values are little-endian. Record sizes are derived from the
// tables; only EntryTableOffset is an independent constant.
package format

import "github.com/meigma/pac/internal/layout"

// Archive header field names.
const (
	HdrVersion          = "Version"
	HdrSizeHi           = "SizeHi"
	HdrSizeLo           = "SizeLo"
	HdrProductName      = "ProductName"
	HdrProductVersion   = "ProductVersion"
	HdrEntryCount       = "EntryCount"
	HdrTableOffset      = "TableOffset"
	HdrMode             = "Mode"
	HdrFlashType        = "FlashType"
	HdrNandStrategy     = "NandStrategy"
	HdrIsNvBackup       = "IsNvBackup"
	HdrNandPageType     = "NandPageType"
	HdrProductAlias     = "ProductAlias"
	HdrOmaDMProductFlag = "OmaDMProductFlag"
	HdrIsOmaDM          = "IsOmaDM"
	HdrIsPreload        = "IsPreload"
	HdrReserved         = "Reserved"
	HdrMagic            = "Magic"
	HdrCRC1             = "CRC1"
	HdrCRC2             = "CRC2"
)

// Entry record field names.
const (
	EntDeclaredSize = "DeclaredSize"
	EntFileID       = "FileID"
	EntFileName     = "FileName"
	EntFileVersion  = "FileVersion"
	EntSizeHi       = "SizeHi"
	EntOffsetHi     = "OffsetHi"
	EntSizeLo       = "SizeLo"
	EntFlags        = "Flags"
	EntCheckFlag    = "CheckFlag"
	EntOffsetLo     = "OffsetLo"
	EntCanOmitFlag  = "CanOmitFlag"
	EntAddrCount    = "AddrCount"
	EntAddrs        = "Addrs"
	EntReserved     = "Reserved"
)

// Array and text widths.
const (
	HeaderReservedWords = 200
	EntryAddrWords      = 5
	EntryReservedWords  = 249

	headerVersionUnits   = 22
	headerNameUnits      = 256
	headerOmaDMFlagBytes = 200
	entryIDUnits         = 256
	entryVersionBytes    = 504
)

// HeaderTable is the layout of the archive header at offset 0.
var HeaderTable = layout.NewTable("archive header",
	layout.Text16(HdrVersion, headerVersionUnits),
	layout.U32(HdrSizeHi),
	layout.U32(HdrSizeLo),
	layout.Text16(HdrProductName, headerNameUnits),
	layout.Text16(HdrProductVersion, headerNameUnits),
	layout.U32(HdrEntryCount),
	layout.U32(HdrTableOffset),
	layout.U32(HdrMode),
	layout.U32(HdrFlashType),
	layout.U32(HdrNandStrategy),
	layout.U32(HdrIsNvBackup),
	layout.U32(HdrNandPageType),
	layout.U32(HdrProductAlias),
	layout.Text8(HdrOmaDMProductFlag, headerOmaDMFlagBytes),
	layout.U32(HdrIsOmaDM),
	layout.U32(HdrIsPreload),
	layout.U32s(HdrReserved, HeaderReservedWords),
	layout.U32(HdrMagic),
	layout.U16(HdrCRC1),
	layout.U16(HdrCRC2),
)

// EntryTable is the layout of one partition entry record.
var EntryTable = layout.NewTable("entry record",
	layout.U32(EntDeclaredSize),
	layout.Text16(EntFileID, entryIDUnits),
	layout.Text16(EntFileName, entryIDUnits),
	layout.Text8(EntFileVersion, entryVersionBytes),
	layout.U32(EntSizeHi),
	layout.U32(EntOffsetHi),
	layout.U32(EntSizeLo),
	layout.U32(EntFlags),
	layout.U32(EntCheckFlag),
	layout.U32(EntOffsetLo),
	layout.U32(EntCanOmitFlag),
	layout.U32(EntAddrCount),
	layout.U32s(EntAddrs, EntryAddrWords),
	layout.U32s(EntReserved, EntryReservedWords),
)

var (
	// HeaderSize is the encoded size of the archive header.
	HeaderSize = HeaderTable.Size()

	// EntryRecordSize is the encoded size of one entry record.
	EntryRecordSize = EntryTable.Size()
)

// EntryTableOffset is the absolute offset of the first entry record in the
// layout variant this package targets. It is not read from the header.
const EntryTableOffset int64 = 2124
