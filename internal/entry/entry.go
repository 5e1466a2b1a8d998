// Package entry decodes PAC entry records and walks the entry table.
package entry

import (
	"fmt"

	"github.com/meigma/pac/internal/format"
	"github.com/meigma/pac/internal/pactype"
)

// Decode parses one entry record. index is the record's table position.
func Decode(b []byte, index int) (*pactype.Entry, error) {
	rec, err := format.EntryTable.Record(b)
	if err != nil {
		return nil, fmt.Errorf("decode entry %d: %w", index, err)
	}

	e := &pactype.Entry{
		Index:        index,
		DeclaredSize: rec.Uint32(format.EntDeclaredSize),
		FileID:       rec.UTF16(format.EntFileID),
		FileName:     rec.UTF16(format.EntFileName),
		FileVersion:  rec.ASCII(format.EntFileVersion),
		SizeHi:       rec.Uint32(format.EntSizeHi),
		SizeLo:       rec.Uint32(format.EntSizeLo),
		OffsetHi:     rec.Uint32(format.EntOffsetHi),
		OffsetLo:     rec.Uint32(format.EntOffsetLo),
		Flags:        rec.Uint32(format.EntFlags),
		CheckFlag:    rec.Uint32(format.EntCheckFlag),
		CanOmitFlag:  rec.Uint32(format.EntCanOmitFlag),
		AddrCount:    rec.Uint32(format.EntAddrCount),
	}
	rec.Uint32s(format.EntAddrs, e.Addrs[:])
	rec.Uint32s(format.EntReserved, e.Reserved[:])
	return e, nil
}

// Encode serializes e using the same field table as Decode.
// Index is not part of the record and is ignored.
func Encode(e *pactype.Entry) ([]byte, error) {
	raw, err := format.EntryTable.NewBuilder().
		PutUint32(format.EntDeclaredSize, e.DeclaredSize).
		PutUTF16(format.EntFileID, e.FileID).
		PutUTF16(format.EntFileName, e.FileName).
		PutASCII(format.EntFileVersion, e.FileVersion).
		PutUint32(format.EntSizeHi, e.SizeHi).
		PutUint32(format.EntOffsetHi, e.OffsetHi).
		PutUint32(format.EntSizeLo, e.SizeLo).
		PutUint32(format.EntFlags, e.Flags).
		PutUint32(format.EntCheckFlag, e.CheckFlag).
		PutUint32(format.EntOffsetLo, e.OffsetLo).
		PutUint32(format.EntCanOmitFlag, e.CanOmitFlag).
		PutUint32(format.EntAddrCount, e.AddrCount).
		PutUint32s(format.EntAddrs, e.Addrs[:]).
		PutUint32s(format.EntReserved, e.Reserved[:]).
		Bytes()
	if err != nil {
		return nil, fmt.Errorf("encode entry %q: %w", e.Identifier(), err)
	}
	return raw, nil
}
