// Package testutil builds PAC container images for tests.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meigma/pac/internal/entry"
	"github.com/meigma/pac/internal/format"
	"github.com/meigma/pac/internal/pactype"
	"github.com/meigma/pac/internal/pacwriter"
)

// Part describes one partition of a test image.
type Part struct {
	ID   string
	Name string
	Data []byte
}

// Build returns a PAC image with the given partitions in table order.
func Build(tb testing.TB, product string, parts ...Part) []byte {
	tb.Helper()
	in := make([]pacwriter.Partition, len(parts))
	for i, p := range parts {
		in[i] = pacwriter.Partition{
			Entry: pactype.Entry{FileID: p.ID, FileName: p.Name, FileVersion: "1.0"},
			Data:  bytes.NewReader(p.Data),
			Size:  uint64(len(p.Data)),
		}
	}
	hdr := pactype.Header{
		Version:        "BP_R1.0.0",
		ProductName:    product,
		ProductVersion: product + " test build",
		Magic:          0xfffafffa,
	}
	var buf bytes.Buffer
	_, err := pacwriter.Write(&buf, hdr, in)
	require.NoError(tb, err)
	return buf.Bytes()
}

// EntryOffset returns the absolute offset of entry record i.
func EntryOffset(i int) int64 {
	return format.EntryTableOffset + int64(i)*int64(format.EntryRecordSize)
}

// PatchEntry decodes entry record i of img, applies fn and re-encodes it in place.
func PatchEntry(tb testing.TB, img []byte, i int, fn func(*pactype.Entry)) {
	tb.Helper()
	off := EntryOffset(i)
	e, err := entry.Decode(img[off:], i)
	require.NoError(tb, err)
	fn(e)
	raw, err := entry.Encode(e)
	require.NoError(tb, err)
	copy(img[off:], raw)
}

// WriteFile stores img in a temporary directory and returns its path.
func WriteFile(tb testing.TB, img []byte) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), "firmware.pac")
	require.NoError(tb, os.WriteFile(path, img, 0o600))
	return path
}

// ReadDir returns the contents of every regular file in dir keyed by name.
func ReadDir(tb testing.TB, dir string) map[string][]byte {
	tb.Helper()
	des, err := os.ReadDir(dir)
	require.NoError(tb, err)
	out := make(map[string][]byte, len(des))
	for _, de := range des {
		if !de.Type().IsRegular() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, de.Name()))
		require.NoError(tb, err)
		out[de.Name()] = data
	}
	return out
}
