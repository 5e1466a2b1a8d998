package pac

import (
	"context"
	"errors"
	"fmt"

	"github.com/opencontainers/go-digest"

	"github.com/meigma/pac/internal/extract"
	"github.com/meigma/pac/internal/sink"
)

// PartitionResult is the outcome of writing one partition to disk.
type PartitionResult struct {
	// Entry is the partition's entry record.
	Entry *Entry

	// Name is the destination name (without compression suffix).
	Name string

	// Path is the file written, or that would have been written if skipped.
	Path string

	// Written is the number of payload bytes copied.
	Written uint64

	// Digest is the sha256 digest of the payload bytes copied.
	Digest digest.Digest

	// Skipped is true if the destination existed and overwrite was disabled.
	Skipped bool

	// Err is the extraction error, if any. A short payload leaves the partial
	// file at Path and sets Err to an error wrapping ErrShortRead.
	Err error
}

// ExportReport lists per-partition outcomes of ExportAll in table order.
type ExportReport struct {
	Partitions []PartitionResult
}

// Failed returns the partitions that did not extract cleanly.
func (r *ExportReport) Failed() []PartitionResult {
	var out []PartitionResult
	for _, p := range r.Partitions {
		if p.Err != nil {
			out = append(out, p)
		}
	}
	return out
}

// Written returns the total payload bytes written.
func (r *ExportReport) Written() uint64 {
	var n uint64
	for _, p := range r.Partitions {
		n += p.Written
	}
	return n
}

// Err joins the per-partition errors, or returns nil if every partition
// extracted cleanly.
func (r *ExportReport) Err() error {
	var errs []error
	for _, p := range r.Failed() {
		errs = append(errs, p.Err)
	}
	return errors.Join(errs...)
}

// ExtractTo writes the first partition matching id into dir.
//
// The file is named after the identifier that matched: FileID if it equals
// id, FileName otherwise. A missing partition returns ErrNotFound and writes
// nothing. A short payload leaves the partial file in place and returns an
// error wrapping ErrShortRead along with the result.
func (a *Archive) ExtractTo(ctx context.Context, id, dir string, opts ...ExtractOption) (*PartitionResult, error) {
	e, err := a.Find(id)
	if err != nil {
		return nil, err
	}
	matched := e.FileName
	if e.FileID == id {
		matched = e.FileID
	}

	cfg := newExtractConfig(opts)
	name := sink.NewNamer().Claim(matched, e.Index)
	res := a.writePartition(ctx, a.newSink(dir, cfg), e, name)
	return &res, res.Err
}

// ExportAll writes every partition into dir in table order.
//
// Each partition is named by FileID, then FileName, then a placeholder built
// from its table index; repeated names get an index suffix. Per-partition
// failures are recorded in the report and do not stop the export. The
// returned error is reserved for failures that end the run: an unreadable
// entry table or a canceled context.
func (a *Archive) ExportAll(ctx context.Context, dir string, opts ...ExtractOption) (*ExportReport, error) {
	cfg := newExtractConfig(opts)
	s := a.newSink(dir, cfg)
	namer := sink.NewNamer()
	report := &ExportReport{}

	for e, err := range a.Entries() {
		if err != nil {
			return report, fmt.Errorf("export: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}
		res := a.writePartition(ctx, s, e, namer.Name(e))
		report.Partitions = append(report.Partitions, res)
	}

	a.log().Info("export complete",
		"dir", dir,
		"partitions", len(report.Partitions),
		"failed", len(report.Failed()),
		"bytes", report.Written())
	return report, nil
}

func (a *Archive) newSink(dir string, cfg extractConfig) *sink.FileSink {
	return sink.NewFileSink(dir,
		sink.WithOverwrite(cfg.overwrite),
		sink.WithCompression(cfg.compression),
		sink.WithLogger(a.logger),
	)
}

// writePartition extracts e into its own sink file. The file is closed on
// every path and partial output is kept.
func (a *Archive) writePartition(ctx context.Context, s *sink.FileSink, e *Entry, name string) PartitionResult {
	res := PartitionResult{Entry: e, Name: name, Path: s.Path(name)}
	if !s.ShouldWrite(name) {
		res.Skipped = true
		a.log().Info("partition skipped", "partition", name, "path", res.Path)
		return res
	}

	w, err := s.Create(name)
	if err != nil {
		res.Err = err
		a.log().Warn("partition not written", "partition", name, "error", err)
		return res
	}
	out, err := extract.Extract(ctx, a.src, e, w)
	closeErr := w.Close()
	res.Written, res.Digest = out.Written, out.Digest
	res.Err = errors.Join(err, closeErr)

	if res.Err != nil {
		a.log().Warn("partition extraction incomplete",
			"partition", name,
			"path", res.Path,
			"written", res.Written,
			"declared", e.Size(),
			"error", res.Err)
		return res
	}
	a.log().Info("partition extracted", "partition", name, "path", res.Path, "bytes", res.Written)
	return res
}
