package layout

import "encoding/binary"

// Record is a read-only view of one encoded record.
//
// Accessors panic if the field name is unknown or has a different kind.
type Record struct {
	t *Table
	b []byte
}

func (r Record) field(name string, kind Kind) []byte {
	s := r.t.lookup(name, kind)
	return r.b[s.offset : s.offset+s.field.Width()]
}

// Uint16 returns a Uint16 field.
func (r Record) Uint16(name string) uint16 {
	return binary.LittleEndian.Uint16(r.field(name, Uint16))
}

// Uint32 returns a Uint32 field.
func (r Record) Uint32(name string) uint32 {
	return binary.LittleEndian.Uint32(r.field(name, Uint32))
}

// Uint32s copies a Uint32Array field into dst and returns the number of
// elements copied.
func (r Record) Uint32s(name string, dst []uint32) int {
	b := r.field(name, Uint32Array)
	n := min(len(dst), len(b)/4)
	for i := range n {
		dst[i] = binary.LittleEndian.Uint32(b[4*i:])
	}
	return n
}

// UTF16 returns a UTF16 field with trailing NUL padding removed.
func (r Record) UTF16(name string) string {
	return DecodeUTF16(r.field(name, UTF16))
}

// ASCII returns an ASCII field with trailing NUL padding removed.
func (r Record) ASCII(name string) string {
	return DecodeASCII(r.field(name, ASCII))
}

// Raw returns the undecoded bytes of any field. The slice aliases the record.
func (r Record) Raw(name string) []byte {
	return r.field(name, 0)
}
