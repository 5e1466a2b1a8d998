package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTable = NewTable("test",
	U32("magic"),
	Text16("name", 4),
	Text8("tag", 6),
	U32s("words", 3),
	U16("crc"),
)

func TestTableSizeAndOffsets(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 4+8+6+12+2, testTable.Size())
	assert.Equal(t, 0, testTable.Offset("magic"))
	assert.Equal(t, 4, testTable.Offset("name"))
	assert.Equal(t, 12, testTable.Offset("tag"))
	assert.Equal(t, 18, testTable.Offset("words"))
	assert.Equal(t, 30, testTable.Offset("crc"))
}

func TestNewTablePanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewTable("dup", U32("a"), U16("a")) })
	assert.Panics(t, func() { NewTable("empty", Text8("a", 0)) })
	assert.Panics(t, func() { testTable.Offset("missing") })
}

func TestBuilderRecordRoundTrip(t *testing.T) {
	t.Parallel()

	raw, err := testTable.NewBuilder().
		PutUint32("magic", 0xfffafffa).
		PutUTF16("name", "né").
		PutASCII("tag", "v1").
		PutUint32s("words", []uint32{1, 2}).
		PutUint16("crc", 0xbeef).
		Bytes()
	require.NoError(t, err)
	require.Len(t, raw, testTable.Size())

	rec, err := testTable.Record(raw)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xfffafffa), rec.Uint32("magic"))
	assert.Equal(t, "né", rec.UTF16("name"))
	assert.Equal(t, "v1", rec.ASCII("tag"))
	assert.Equal(t, uint16(0xbeef), rec.Uint16("crc"))

	words := make([]uint32, 3)
	assert.Equal(t, 3, rec.Uint32s("words", words))
	assert.Equal(t, []uint32{1, 2, 0}, words)

	// Little-endian on the wire.
	assert.Equal(t, []byte{0xfa, 0xff, 0xfa, 0xff}, raw[0:4])
	assert.Equal(t, []byte{'n', 0, 0xe9, 0}, raw[4:8])
}

func TestRecordShort(t *testing.T) {
	t.Parallel()

	_, err := testTable.Record(make([]byte, testTable.Size()-1))
	require.ErrorIs(t, err, ErrShortRecord)
}

func TestRecordKindMismatchPanics(t *testing.T) {
	t.Parallel()

	rec, err := testTable.Record(make([]byte, testTable.Size()))
	require.NoError(t, err)
	assert.Panics(t, func() { rec.Uint16("magic") })
}

func TestBuilderOverflow(t *testing.T) {
	t.Parallel()

	_, err := testTable.NewBuilder().PutUTF16("name", "too long").Bytes()
	require.ErrorIs(t, err, ErrFieldOverflow)

	_, err = testTable.NewBuilder().PutASCII("tag", "1234567").Bytes()
	require.ErrorIs(t, err, ErrFieldOverflow)

	_, err = testTable.NewBuilder().PutUint32s("words", []uint32{1, 2, 3, 4}).Bytes()
	require.ErrorIs(t, err, ErrFieldOverflow)
}

func TestDecodeUTF16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"empty", nil, ""},
		{"all padding", []byte{0, 0, 0, 0}, ""},
		{"trailing padding", []byte{'F', 0, 'D', 0, 'L', 0, 0, 0, 0, 0}, "FDL"},
		{"odd trailing byte ignored", []byte{'A', 0, 'B'}, "A"},
		{"unpaired surrogate is lossy", []byte{0x00, 0xd8, 'x', 0}, "�x"},
		{"surrogate pair", []byte{0x3d, 0xd8, 0x00, 0xde}, "\U0001f600"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, DecodeUTF16(tt.in))
		})
	}
}

func TestDecodeASCII(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", DecodeASCII(make([]byte, 8)))
	assert.Equal(t, "ab", DecodeASCII([]byte{'a', 0xff, 'b', 0, 0}))
}
