package layout

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrFieldOverflow is returned when a value does not fit its field.
var ErrFieldOverflow = errors.New("value does not fit field")

// Builder encodes one record. The first error is kept and reported by Bytes;
// later Put calls become no-ops.
type Builder struct {
	t   *Table
	b   []byte
	err error
}

func (b *Builder) field(name string, kind Kind) []byte {
	s := b.t.lookup(name, kind)
	return b.b[s.offset : s.offset+s.field.Width()]
}

// PutUint16 sets a Uint16 field.
func (b *Builder) PutUint16(name string, v uint16) *Builder {
	if b.err == nil {
		binary.LittleEndian.PutUint16(b.field(name, Uint16), v)
	}
	return b
}

// PutUint32 sets a Uint32 field.
func (b *Builder) PutUint32(name string, v uint32) *Builder {
	if b.err == nil {
		binary.LittleEndian.PutUint32(b.field(name, Uint32), v)
	}
	return b
}

// PutUint32s sets the leading elements of a Uint32Array field.
func (b *Builder) PutUint32s(name string, v []uint32) *Builder {
	if b.err != nil {
		return b
	}
	dst := b.field(name, Uint32Array)
	if len(v)*4 > len(dst) {
		b.err = fmt.Errorf("%w: %s.%s holds %d elements, got %d", ErrFieldOverflow, b.t.name, name, len(dst)/4, len(v))
		return b
	}
	for i, x := range v {
		binary.LittleEndian.PutUint32(dst[4*i:], x)
	}
	return b
}

// PutUTF16 sets a UTF16 field. The remainder of the field is NUL padded.
func (b *Builder) PutUTF16(name, s string) *Builder {
	if b.err != nil {
		return b
	}
	dst := b.field(name, UTF16)
	enc, err := EncodeUTF16(s)
	if err != nil {
		b.err = fmt.Errorf("%s.%s: %w", b.t.name, name, err)
		return b
	}
	if len(enc) > len(dst) {
		b.err = fmt.Errorf("%w: %s.%s is %d bytes, got %d", ErrFieldOverflow, b.t.name, name, len(dst), len(enc))
		return b
	}
	clear(dst[copy(dst, enc):])
	return b
}

// PutASCII sets an ASCII field. The remainder of the field is NUL padded.
func (b *Builder) PutASCII(name, s string) *Builder {
	if b.err != nil {
		return b
	}
	dst := b.field(name, ASCII)
	if len(s) > len(dst) {
		b.err = fmt.Errorf("%w: %s.%s is %d bytes, got %d", ErrFieldOverflow, b.t.name, name, len(dst), len(s))
		return b
	}
	clear(dst[copy(dst, s):])
	return b
}

// Bytes returns the encoded record or the first error recorded.
func (b *Builder) Bytes() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.b, nil
}
