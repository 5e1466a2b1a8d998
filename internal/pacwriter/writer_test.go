package pacwriter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/pac/internal/entry"
	"github.com/meigma/pac/internal/format"
	"github.com/meigma/pac/internal/header"
	"github.com/meigma/pac/internal/pactype"
)

func TestWrite(t *testing.T) {
	t.Parallel()

	parts := []Partition{
		{Entry: pactype.Entry{FileID: "FDL", FileName: "fdl1.bin"}, Data: strings.NewReader("fdl!"), Size: 4},
		{Entry: pactype.Entry{FileID: "Empty"}, Size: 0},
		{Entry: pactype.Entry{FileID: "NV", FileName: "nv.bin", Flags: 1}, Data: strings.NewReader("nvdata"), Size: 6},
	}
	var buf bytes.Buffer
	n, err := Write(&buf, pactype.Header{ProductName: "demo", Magic: 0xfffafffa}, parts)
	require.NoError(t, err)
	assert.Equal(t, uint64(buf.Len()), n)

	dataStart := uint64(format.EntryTableOffset) + 3*uint64(format.EntryRecordSize)
	assert.Equal(t, dataStart+10, n)

	src := bytes.NewReader(buf.Bytes())
	h, err := header.Read(src)
	require.NoError(t, err)
	assert.Equal(t, "demo", h.ProductName)
	assert.Equal(t, uint32(3), h.EntryCount)
	assert.Equal(t, uint32(format.EntryTableOffset), h.DeclaredTableOffset)
	assert.Equal(t, n, h.Size())
	assert.Equal(t, uint32(0xfffafffa), h.Magic)

	got, err := entry.Collect(entry.Walk(src, h.EntryTableOffset(), h.EntryCount))
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, dataStart, got[0].Offset())
	assert.Equal(t, uint64(4), got[0].Size())
	assert.Equal(t, dataStart+4, got[1].Offset())
	assert.Zero(t, got[1].Size())
	assert.Equal(t, dataStart+4, got[2].Offset())
	assert.Equal(t, uint32(1), got[2].Flags)
	assert.Equal(t, uint32(format.EntryRecordSize), got[2].DeclaredSize)

	assert.Equal(t, "fdl!", string(buf.Bytes()[got[0].Offset():got[0].Offset()+4]))
	assert.Equal(t, "nvdata", string(buf.Bytes()[got[2].Offset():]))
}

func TestWriteShortData(t *testing.T) {
	t.Parallel()

	parts := []Partition{
		{Entry: pactype.Entry{FileID: "X"}, Data: strings.NewReader("ab"), Size: 5},
	}
	_, err := Write(&bytes.Buffer{}, pactype.Header{}, parts)
	require.Error(t, err)
}

func TestWriteFieldOverflow(t *testing.T) {
	t.Parallel()

	parts := []Partition{
		{Entry: pactype.Entry{FileID: strings.Repeat("x", 300)}, Data: strings.NewReader(""), Size: 0},
	}
	_, err := Write(&bytes.Buffer{}, pactype.Header{}, parts)
	require.Error(t, err)
}
