// Command pactool inspects and unpacks PAC firmware containers.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/meigma/pac"
)

type config struct {
	path        string
	header      bool
	print       bool
	verbose     bool
	extract     string
	export      bool
	outputDir   string
	jsonOut     bool
	zstd        bool
	noOverwrite bool
	logLevel    string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("pactool", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&cfg.header, "t", false, "print the archive header")
	fs.BoolVar(&cfg.print, "p", false, "list partitions")
	fs.BoolVar(&cfg.verbose, "v", false, "list partitions with every entry field")
	fs.StringVar(&cfg.extract, "e", "", "extract the partition whose file ID or file name is `IDENTIFIER`")
	fs.BoolVar(&cfg.export, "x", false, "export all partitions")
	fs.StringVar(&cfg.outputDir, "o", "output", "output `DIR` for extracted partitions")
	fs.BoolVar(&cfg.jsonOut, "json", false, "print a JSON manifest of header and partitions")
	fs.BoolVar(&cfg.zstd, "zstd", false, "write extracted partitions zstd-compressed")
	fs.BoolVar(&cfg.noOverwrite, "no-overwrite", false, "skip partitions whose output file exists")
	fs.StringVar(&cfg.logLevel, "log-level", "warn", "log `LEVEL` (debug, info, warn, error)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: pactool [flags] FILE.pac\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return cfg, errors.New("expected exactly one PAC file")
	}
	cfg.path = fs.Arg(0)
	if !cfg.header && !cfg.print && !cfg.verbose && cfg.extract == "" && !cfg.export && !cfg.jsonOut {
		fs.Usage()
		return cfg, errors.New("no action requested")
	}
	return cfg, nil
}

func newLogger(level string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

//nolint:gocognit,gocyclo // flag dispatch mirrors the tool's independent actions
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, "pactool:", err)
		return 2
	}
	logger, err := newLogger(cfg.logLevel, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "pactool:", err)
		return 2
	}

	a, err := pac.Open(cfg.path, pac.WithLogger(logger))
	if err != nil {
		logger.Error("cannot read archive", "path", cfg.path, "error", err)
		return 1
	}
	defer a.Close()

	if cfg.jsonOut {
		m, err := a.Manifest()
		if err != nil {
			logger.Error("cannot read entry table", "error", err)
			return 1
		}
		if err := m.WriteJSON(stdout); err != nil {
			logger.Error("write manifest", "error", err)
			return 1
		}
	}

	if cfg.header {
		fmt.Fprintln(stdout, "PAC header")
		printHeader(stdout, a.Header())
	}

	if cfg.print || cfg.verbose {
		entries, err := a.EntryList()
		if err != nil {
			logger.Error("cannot read entry table", "error", err)
			return 1
		}
		if n := len(entries); uint64(n) < uint64(a.Header().EntryCount) {
			fmt.Fprintf(stdout, "Entry table ends after %d of %d entries.\n", n, a.Header().EntryCount)
		}
		for _, e := range entries {
			fmt.Fprintf(stdout, "\nEntry %d:\n", e.Index+1)
			printEntry(stdout, e, cfg.verbose)
		}
	}

	opts := []pac.ExtractOption{pac.ExtractWithOverwrite(!cfg.noOverwrite)}
	if cfg.zstd {
		opts = append(opts, pac.ExtractWithCompression(pac.CompressionZstd))
	}

	status := 0
	if cfg.extract != "" {
		res, err := a.ExtractTo(ctx, cfg.extract, cfg.outputDir, opts...)
		switch {
		case errors.Is(err, pac.ErrNotFound):
			fmt.Fprintf(stdout, "Partition %s not found.\n", cfg.extract)
			status = 1
		case err != nil && res == nil:
			logger.Error("extract failed", "partition", cfg.extract, "error", err)
			status = 1
		default:
			reportPartition(stdout, "Extracted", res)
			if res.Err != nil {
				status = 1
			}
		}
	}

	if cfg.export {
		report, err := a.ExportAll(ctx, cfg.outputDir, opts...)
		if report != nil {
			for i := range report.Partitions {
				reportPartition(stdout, "Exported", &report.Partitions[i])
			}
		}
		if err != nil {
			logger.Error("export aborted", "error", err)
			return 1
		}
		if len(report.Failed()) > 0 {
			status = 1
		}
	}
	return status
}

func reportPartition(w io.Writer, verb string, res *pac.PartitionResult) {
	switch {
	case res.Skipped:
		fmt.Fprintf(w, "Skipped %s: %s exists\n", res.Name, res.Path)
	case res.Err != nil:
		fmt.Fprintf(w, "Failed %s to %s after %d bytes: %v\n", res.Name, res.Path, res.Written, res.Err)
	default:
		fmt.Fprintf(w, "%s %s to %s (%d bytes, %s)\n", verb, res.Name, res.Path, res.Written, res.Digest)
	}
}

func printHeader(w io.Writer, h *pac.Header) {
	fmt.Fprintf(w, "    Version: %s\n", h.Version)
	fmt.Fprintf(w, "    SizeHi: %d\n", h.SizeHi)
	fmt.Fprintf(w, "    SizeLo: %d\n", h.SizeLo)
	fmt.Fprintf(w, "    ProductName: %s\n", h.ProductName)
	fmt.Fprintf(w, "    ProductVersion: %s\n", h.ProductVersion)
	fmt.Fprintf(w, "    EntryCount: %d\n", h.EntryCount)
	fmt.Fprintf(w, "    TableOffset: %d\n", h.DeclaredTableOffset)
	fmt.Fprintf(w, "    Mode: %d\n", h.Mode)
	fmt.Fprintf(w, "    FlashType: %d\n", h.FlashType)
	fmt.Fprintf(w, "    NandStrategy: %d\n", h.NandStrategy)
	fmt.Fprintf(w, "    IsNvBackup: %d\n", h.IsNvBackup)
	fmt.Fprintf(w, "    NandPageType: %d\n", h.NandPageType)
	fmt.Fprintf(w, "    ProductAlias: %d\n", h.ProductAlias)
	fmt.Fprintf(w, "    OmaDMProductFlag: %s\n", h.OmaDMProductFlag)
	fmt.Fprintf(w, "    IsOmaDM: %d\n", h.IsOmaDM)
	fmt.Fprintf(w, "    IsPreload: %d\n", h.IsPreload)
	fmt.Fprintf(w, "    Magic: %#x\n", h.Magic)
	fmt.Fprintf(w, "    CRC1: %#04x\n", h.CRC1)
	fmt.Fprintf(w, "    CRC2: %#04x\n", h.CRC2)
}

func printEntry(w io.Writer, e *pac.Entry, verbose bool) {
	if !verbose {
		fmt.Fprintf(w, "  FileID: %s\n", e.FileID)
		fmt.Fprintf(w, "  FileName: %s\n", e.FileName)
		return
	}
	fmt.Fprintf(w, "  DeclaredSize: %d\n", e.DeclaredSize)
	fmt.Fprintf(w, "  FileID: %s\n", e.FileID)
	fmt.Fprintf(w, "  FileName: %s\n", e.FileName)
	fmt.Fprintf(w, "  FileVersion: %s\n", e.FileVersion)
	fmt.Fprintf(w, "  SizeHi: %d\n", e.SizeHi)
	fmt.Fprintf(w, "  OffsetHi: %d\n", e.OffsetHi)
	fmt.Fprintf(w, "  SizeLo: %d\n", e.SizeLo)
	fmt.Fprintf(w, "  Flags: %d\n", e.Flags)
	fmt.Fprintf(w, "  CheckFlag: %d\n", e.CheckFlag)
	fmt.Fprintf(w, "  OffsetLo: %d\n", e.OffsetLo)
	fmt.Fprintf(w, "  CanOmitFlag: %d\n", e.CanOmitFlag)
	fmt.Fprintf(w, "  AddrCount: %d\n", e.AddrCount)
	fmt.Fprintf(w, "  Size: %d\n", e.Size())
	fmt.Fprintf(w, "  Offset: %d\n", e.Offset())
}
