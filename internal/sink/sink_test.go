package sink

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/pac/internal/pactype"
)

func TestFileSinkCreate(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out", "nested")
	s := NewFileSink(dir)

	w, err := s.Create("modem.bin")
	require.NoError(t, err)
	_, err = w.Write([]byte("payload"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "second close is a no-op")

	assert.Equal(t, filepath.Join(dir, "modem.bin"), w.Path())
	got, err := os.ReadFile(w.Path())
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))
}

func TestFileSinkEmptyFile(t *testing.T) {
	t.Parallel()

	s := NewFileSink(t.TempDir())
	w, err := s.Create("empty")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	info, err := os.Stat(w.Path())
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestFileSinkOverwrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "boot"), []byte("old contents"), 0o600))

	s := NewFileSink(dir)
	assert.True(t, s.ShouldWrite("boot"))
	w, err := s.Create("boot")
	require.NoError(t, err)
	_, err = w.Write([]byte("new"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	got, err := os.ReadFile(filepath.Join(dir, "boot"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))

	keep := NewFileSink(dir, WithOverwrite(false))
	assert.False(t, keep.ShouldWrite("boot"))
	assert.True(t, keep.ShouldWrite("other"))
	_, err = keep.Create("boot")
	require.ErrorIs(t, err, fs.ErrExist)
}

func TestFileSinkRejectsUnsafeNames(t *testing.T) {
	t.Parallel()

	s := NewFileSink(t.TempDir())
	for _, name := range []string{"", ".", "..", "../escape", "a/b", "/abs"} {
		_, err := s.Create(name)
		require.ErrorIs(t, err, fs.ErrInvalid, "name %q", name)
	}
}

func TestFileSinkZstd(t *testing.T) {
	t.Parallel()

	s := NewFileSink(t.TempDir(), WithCompression(pactype.CompressionZstd), WithEncoderLevel(zstd.SpeedFastest))
	assert.Equal(t, "system.img.zst", s.FileName("system.img"))

	payload := bytes.Repeat([]byte("firmware"), 1024)
	w, err := s.Create("system.img")
	require.NoError(t, err)
	_, err = w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	f, err := os.Open(w.Path())
	require.NoError(t, err)
	defer f.Close()
	dec, err := zstd.NewReader(f)
	require.NoError(t, err)
	defer dec.Close()
	got, err := io.ReadAll(dec)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestNamer(t *testing.T) {
	t.Parallel()

	n := NewNamer()
	tests := []struct {
		entry pactype.Entry
		want  string
	}{
		{pactype.Entry{Index: 0, FileID: "FDL", FileName: "fdl1.bin"}, "FDL"},
		{pactype.Entry{Index: 1, FileName: "boot.img"}, "boot.img"},
		{pactype.Entry{Index: 2}, "partition_002"},
		{pactype.Entry{Index: 3, FileID: "FDL"}, "FDL_3"},
		{pactype.Entry{Index: 4, FileID: "  "}, "partition_004"},
		{pactype.Entry{Index: 5, FileID: "../../etc/passwd"}, ".._.._etc_passwd"},
		{pactype.Entry{Index: 6, FileID: ".."}, "partition_006"},
		{pactype.Entry{Index: 7, FileID: "FDL_3"}, "FDL_3_7"},
		{pactype.Entry{Index: 2, FileName: "partition_002"}, "partition_002_2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, n.Name(&tt.entry))
	}
}

func TestNamerDeterministic(t *testing.T) {
	t.Parallel()

	entries := []pactype.Entry{{Index: 0}, {Index: 1, FileID: "A"}, {Index: 2, FileID: "A"}, {Index: 3}}
	run := func() []string {
		n := NewNamer()
		var out []string
		for i := range entries {
			out = append(out, n.Name(&entries[i]))
		}
		return out
	}
	first := run()
	assert.Equal(t, first, run())
	assert.Equal(t, []string{"partition_000", "A", "A_2", "partition_003"}, first)
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a_b_c", Sanitize(`a/b\c`))
	assert.Equal(t, "x_y", Sanitize("x\x00y"))
	assert.Equal(t, "C__", Sanitize("C:*"))
	assert.Empty(t, Sanitize(" . "))
	assert.Equal(t, "ok.bin", Sanitize("ok.bin"))
}
