// Package sink writes extracted partitions to the filesystem.
package sink

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/meigma/pac/internal/pactype"
)

// FileSink creates one output file per partition under a destination
// directory.
//
// Files are written directly to their final path. A failed extraction leaves
// whatever was written in place; the caller decides what to do with it.
type FileSink struct {
	destDir     string
	overwrite   bool
	compression pactype.Compression
	level       zstd.EncoderLevel
	logger      *slog.Logger
}

// Option configures a FileSink.
type Option func(*FileSink)

// WithOverwrite allows replacing existing files (default: true).
func WithOverwrite(overwrite bool) Option {
	return func(s *FileSink) {
		s.overwrite = overwrite
	}
}

// WithCompression selects how output files are encoded (default: none).
func WithCompression(c pactype.Compression) Option {
	return func(s *FileSink) {
		s.compression = c
	}
}

// WithEncoderLevel sets the zstd level used with CompressionZstd.
func WithEncoderLevel(level zstd.EncoderLevel) Option {
	return func(s *FileSink) {
		s.level = level
	}
}

// WithLogger sets the logger for sink events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *FileSink) {
		s.logger = logger
	}
}

// NewFileSink creates a FileSink that writes to destDir.
// destDir is created on first use if it does not exist.
func NewFileSink(destDir string, opts ...Option) *FileSink {
	s := &FileSink{
		destDir:   destDir,
		overwrite: true,
		level:     zstd.SpeedDefault,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FileSink) log() *slog.Logger {
	if s.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.logger
}

// Dir returns the destination directory.
func (s *FileSink) Dir() string {
	return s.destDir
}

// FileName returns the on-disk file name for a partition name.
func (s *FileSink) FileName(name string) string {
	return name + s.compression.Ext()
}

// Path returns the destination path for a partition name.
func (s *FileSink) Path(name string) string {
	return filepath.Join(s.destDir, s.FileName(name))
}

// ShouldWrite returns false if the destination exists and overwrite is disabled.
func (s *FileSink) ShouldWrite(name string) bool {
	if s.overwrite {
		return true
	}
	_, err := os.Stat(s.Path(name))
	return errors.Is(err, fs.ErrNotExist)
}

// Create opens the destination for name. name must be a single path element.
func (s *FileSink) Create(name string) (*Writer, error) {
	if !validName(name) {
		return nil, &fs.PathError{Op: "create", Path: name, Err: fs.ErrInvalid}
	}
	if err := os.MkdirAll(s.destDir, 0o750); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", s.destDir, err)
	}
	root, err := os.OpenRoot(s.destDir)
	if err != nil {
		return nil, fmt.Errorf("open destination root %s: %w", s.destDir, err)
	}

	rel := s.FileName(name)
	flags := os.O_CREATE | os.O_TRUNC | os.O_WRONLY
	if !s.overwrite {
		flags |= os.O_EXCL
	}
	file, err := root.OpenFile(rel, flags, 0o644)
	if err != nil {
		_ = root.Close() //nolint:errcheck // best-effort cleanup
		return nil, fmt.Errorf("create file %s: %w", s.Path(name), err)
	}

	w := &Writer{file: file, root: root, path: s.Path(name)}
	if s.compression == pactype.CompressionZstd {
		enc, err := zstd.NewWriter(file, zstd.WithEncoderLevel(s.level))
		if err != nil {
			_ = file.Close() //nolint:errcheck // best-effort cleanup
			_ = root.Close() //nolint:errcheck // best-effort cleanup
			return nil, fmt.Errorf("create zstd encoder: %w", err)
		}
		w.enc = enc
	}
	s.log().Debug("sink opened", "path", w.path, "compression", s.compression.String())
	return w, nil
}

// Writer is an open output file. Close must be called on every path.
type Writer struct {
	file   *os.File
	enc    *zstd.Encoder
	root   *os.Root
	path   string
	closed bool
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	if w.enc != nil {
		return w.enc.Write(p)
	}
	return w.file.Write(p)
}

// Path returns the file path being written.
func (w *Writer) Path() string {
	return w.path
}

// Close flushes the encoder, if any, and releases the file. It is safe to
// call more than once; later calls return nil.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	var errs []error
	if w.enc != nil {
		if err := w.enc.Close(); err != nil {
			errs = append(errs, fmt.Errorf("flush zstd stream: %w", err))
		}
	}
	if err := w.file.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close file %s: %w", w.path, err))
	}
	if err := w.root.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." && filepath.Base(name) == name && fs.ValidPath(name)
}
