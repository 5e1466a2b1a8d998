// Package header decodes and encodes the PAC archive header.
package header

import (
	"errors"
	"fmt"
	"io"

	"github.com/meigma/pac/internal/format"
	"github.com/meigma/pac/internal/layout"
	"github.com/meigma/pac/internal/pactype"
)

// Decode parses the archive header from the leading bytes of a container.
//
// Only the first format.HeaderSize bytes are read. No field is validated:
// magic and CRC values are returned as found.
func Decode(b []byte) (*pactype.Header, error) {
	rec, err := format.HeaderTable.Record(b)
	if err != nil {
		return nil, fmt.Errorf("%w: have %d of %d bytes", pactype.ErrTruncatedHeader, len(b), format.HeaderSize)
	}

	h := &pactype.Header{
		Version:             rec.UTF16(format.HdrVersion),
		SizeHi:              rec.Uint32(format.HdrSizeHi),
		SizeLo:              rec.Uint32(format.HdrSizeLo),
		ProductName:         rec.UTF16(format.HdrProductName),
		ProductVersion:      rec.UTF16(format.HdrProductVersion),
		EntryCount:          rec.Uint32(format.HdrEntryCount),
		DeclaredTableOffset: rec.Uint32(format.HdrTableOffset),
		Mode:                rec.Uint32(format.HdrMode),
		FlashType:           rec.Uint32(format.HdrFlashType),
		NandStrategy:        rec.Uint32(format.HdrNandStrategy),
		IsNvBackup:          rec.Uint32(format.HdrIsNvBackup),
		NandPageType:        rec.Uint32(format.HdrNandPageType),
		ProductAlias:        rec.Uint32(format.HdrProductAlias),
		OmaDMProductFlag:    rec.ASCII(format.HdrOmaDMProductFlag),
		IsOmaDM:             rec.Uint32(format.HdrIsOmaDM),
		IsPreload:           rec.Uint32(format.HdrIsPreload),
		Magic:               rec.Uint32(format.HdrMagic),
		CRC1:                rec.Uint16(format.HdrCRC1),
		CRC2:                rec.Uint16(format.HdrCRC2),
	}
	rec.Uint32s(format.HdrReserved, h.Reserved[:])
	return h, nil
}

// Read reads and decodes the header at offset 0 of r.
func Read(r io.ReaderAt) (*pactype.Header, error) {
	buf := make([]byte, format.HeaderSize)
	n, err := r.ReadAt(buf, 0)
	if n < len(buf) {
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("read archive header: %w", err)
		}
		return Decode(buf[:n])
	}
	return Decode(buf)
}

// Encode serializes h using the same field table as Decode.
func Encode(h *pactype.Header) ([]byte, error) {
	b := format.HeaderTable.NewBuilder().
		PutUTF16(format.HdrVersion, h.Version).
		PutUint32(format.HdrSizeHi, h.SizeHi).
		PutUint32(format.HdrSizeLo, h.SizeLo).
		PutUTF16(format.HdrProductName, h.ProductName).
		PutUTF16(format.HdrProductVersion, h.ProductVersion).
		PutUint32(format.HdrEntryCount, h.EntryCount).
		PutUint32(format.HdrTableOffset, h.DeclaredTableOffset).
		PutUint32(format.HdrMode, h.Mode).
		PutUint32(format.HdrFlashType, h.FlashType).
		PutUint32(format.HdrNandStrategy, h.NandStrategy).
		PutUint32(format.HdrIsNvBackup, h.IsNvBackup).
		PutUint32(format.HdrNandPageType, h.NandPageType).
		PutUint32(format.HdrProductAlias, h.ProductAlias).
		PutASCII(format.HdrOmaDMProductFlag, h.OmaDMProductFlag).
		PutUint32(format.HdrIsOmaDM, h.IsOmaDM).
		PutUint32(format.HdrIsPreload, h.IsPreload).
		PutUint32s(format.HdrReserved, h.Reserved[:]).
		PutUint32(format.HdrMagic, h.Magic).
		PutUint16(format.HdrCRC1, h.CRC1).
		PutUint16(format.HdrCRC2, h.CRC2)
	return encoded(b)
}

func encoded(b *layout.Builder) ([]byte, error) {
	raw, err := b.Bytes()
	if err != nil {
		return nil, fmt.Errorf("encode archive header: %w", err)
	}
	return raw, nil
}
