package pac

import (
	"log/slog"

	"github.com/meigma/pac/internal/pactype"
)

// Option configures an Archive.
type Option func(*Archive)

// WithLogger sets the logger for archive events.
// By default, nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Archive) {
		a.logger = logger
	}
}

// WithEntryTableOffset overrides EntryTableOffset for layout variants that
// place the entry table elsewhere. Negative values are ignored.
func WithEntryTableOffset(offset int64) Option {
	return func(a *Archive) {
		if offset >= 0 {
			a.tableOffset = offset
		}
	}
}

// ExtractOption configures ExtractTo and ExportAll.
type ExtractOption func(*extractConfig)

type extractConfig struct {
	overwrite   bool
	compression pactype.Compression
}

func newExtractConfig(opts []ExtractOption) extractConfig {
	cfg := extractConfig{overwrite: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// ExtractWithOverwrite controls whether existing files are replaced.
// By default, they are. Skipped partitions are reported, not extracted.
func ExtractWithOverwrite(overwrite bool) ExtractOption {
	return func(c *extractConfig) {
		c.overwrite = overwrite
	}
}

// ExtractWithCompression writes each partition compressed with c.
// Compressed outputs get the algorithm's suffix (".zst").
func ExtractWithCompression(c Compression) ExtractOption {
	return func(cfg *extractConfig) {
		cfg.compression = c
	}
}
