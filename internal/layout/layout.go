// Package layout describes packed little-endian records as ordered tables of
// fixed-width fields.
//
// A Table is the single source of truth for a record: its size, the offset of
// every field, and both the decode (Record) and encode (Builder) paths are
// derived from the same field list.
package layout

import (
	"errors"
	"fmt"
)

// ErrShortRecord is returned when a buffer is smaller than the table size.
var ErrShortRecord = errors.New("short record")

// Kind identifies how a field's bytes are interpreted.
type Kind uint8

const (
	// Uint16 is a little-endian 16-bit unsigned integer.
	Uint16 Kind = iota + 1
	// Uint32 is a little-endian 32-bit unsigned integer.
	Uint32
	// Uint32Array is Count consecutive little-endian 32-bit integers.
	Uint32Array
	// UTF16 is Count little-endian UTF-16 code units, NUL padded.
	UTF16
	// ASCII is Count bytes of 7-bit text, NUL padded.
	ASCII
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint32Array:
		return "uint32[]"
	case UTF16:
		return "utf16"
	case ASCII:
		return "ascii"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Field is one entry of a Table.
type Field struct {
	Name string
	Kind Kind
	// Count is the number of elements for Uint32Array, code units for UTF16
	// and bytes for ASCII. It is ignored for scalar kinds.
	Count int
}

// U16 returns a Uint16 field.
func U16(name string) Field { return Field{Name: name, Kind: Uint16} }

// U32 returns a Uint32 field.
func U32(name string) Field { return Field{Name: name, Kind: Uint32} }

// U32s returns a Uint32Array field of n elements.
func U32s(name string, n int) Field { return Field{Name: name, Kind: Uint32Array, Count: n} }

// Text16 returns a UTF16 field of n code units (2n bytes).
func Text16(name string, n int) Field { return Field{Name: name, Kind: UTF16, Count: n} }

// Text8 returns an ASCII field of n bytes.
func Text8(name string, n int) Field { return Field{Name: name, Kind: ASCII, Count: n} }

// Width returns the encoded width of the field in bytes.
func (f Field) Width() int {
	switch f.Kind {
	case Uint16:
		return 2
	case Uint32:
		return 4
	case Uint32Array:
		return 4 * f.Count
	case UTF16:
		return 2 * f.Count
	case ASCII:
		return f.Count
	default:
		return 0
	}
}

type slot struct {
	field  Field
	offset int
}

// Table is an ordered, gap-free list of fields.
type Table struct {
	name   string
	fields []Field
	slots  map[string]slot
	size   int
}

// NewTable builds a table from fields laid out back to back.
// It panics on duplicate names or zero-width fields; tables are
// package-level declarations and such mistakes are programming errors.
func NewTable(name string, fields ...Field) *Table {
	t := &Table{
		name:   name,
		fields: append([]Field(nil), fields...),
		slots:  make(map[string]slot, len(fields)),
	}
	for _, f := range fields {
		w := f.Width()
		if w <= 0 {
			panic(fmt.Sprintf("layout %s: field %q has no width", name, f.Name))
		}
		if _, dup := t.slots[f.Name]; dup {
			panic(fmt.Sprintf("layout %s: duplicate field %q", name, f.Name))
		}
		t.slots[f.Name] = slot{field: f, offset: t.size}
		t.size += w
	}
	return t
}

// Name returns the table name used in error messages.
func (t *Table) Name() string { return t.name }

// Size returns the total record size in bytes.
func (t *Table) Size() int { return t.size }

// Fields returns a copy of the field list in layout order.
func (t *Table) Fields() []Field { return append([]Field(nil), t.fields...) }

// Offset returns the byte offset of the named field.
func (t *Table) Offset(name string) int {
	return t.lookup(name, 0).offset
}

// lookup resolves a field and checks its kind. want == 0 accepts any kind.
func (t *Table) lookup(name string, want Kind) slot {
	s, ok := t.slots[name]
	if !ok {
		panic(fmt.Sprintf("layout %s: unknown field %q", t.name, name))
	}
	if want != 0 && s.field.Kind != want {
		panic(fmt.Sprintf("layout %s: field %q is %s, not %s", t.name, name, s.field.Kind, want))
	}
	return s
}

// Record returns a decoding view over b. Only the first Size bytes are used.
func (t *Table) Record(b []byte) (Record, error) {
	if len(b) < t.size {
		return Record{}, fmt.Errorf("%w: %s needs %d bytes, have %d", ErrShortRecord, t.name, t.size, len(b))
	}
	return Record{t: t, b: b[:t.size]}, nil
}

// NewBuilder returns a zero-filled record ready for encoding.
func (t *Table) NewBuilder() *Builder {
	return &Builder{t: t, b: make([]byte, t.size)}
}
