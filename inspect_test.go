package pac

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/pac/internal/testutil"
)

func TestManifest(t *testing.T) {
	t.Parallel()

	img := testutil.Build(t, "UMS512", sampleParts()...)
	testutil.PatchEntry(t, img, 2, func(e *Entry) { e.SetSize(e.Size() + 4) })

	a := openBytes(t, img)
	m, err := a.Manifest()
	require.NoError(t, err)

	assert.Equal(t, "UMS512", m.ProductName)
	assert.Equal(t, uint32(3), m.EntryCount)
	assert.Equal(t, int64(len(img)), m.FileSize)
	assert.Equal(t, EntryTableOffset, m.TableOffset)
	require.Len(t, m.Partitions, 3)

	assert.Equal(t, "FDL", m.Partitions[0].FileID)
	assert.False(t, m.Partitions[0].Truncated())
	assert.Equal(t, uint64(4100), m.Partitions[2].Size)
	assert.Equal(t, uint64(4096), m.Partitions[2].Available)
	assert.True(t, m.Partitions[2].Truncated())
}

func TestManifestJSON(t *testing.T) {
	t.Parallel()

	a := openBytes(t, testutil.Build(t, "demo", sampleParts()...))
	m, err := a.Manifest()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, m.WriteJSON(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), "{\n  \"version\""))

	var back Manifest
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, *m, back)
}

func TestManifestEmptyTable(t *testing.T) {
	t.Parallel()

	a := openBytes(t, testutil.Build(t, "demo"))
	m, err := a.Manifest()
	require.NoError(t, err)
	assert.NotNil(t, m.Partitions)
	assert.Empty(t, m.Partitions)
}

func TestCreateFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "new.pac")
	parts := []Partition{
		{Entry: Entry{FileID: "BOOT", FileName: "boot.img"}, Data: strings.NewReader("kernel"), Size: 6},
	}
	n, err := CreateFile(path, Header{ProductName: "custom"}, parts)
	require.NoError(t, err)
	assert.Equal(t, uint64(HeaderSize+EntryRecordSize+6), n)

	a, err := Open(path)
	require.NoError(t, err)
	defer a.Close()

	var out bytes.Buffer
	e, err := a.Find("boot.img")
	require.NoError(t, err)
	_, err = a.Extract(t.Context(), e, &out)
	require.NoError(t, err)
	assert.Equal(t, "kernel", out.String())
}
