// Package pac reads Unisoc/Spreadtrum PAC firmware containers.
//
// A PAC file bundles flashable partitions (boot loaders, modem images,
// filesystem images) behind a fixed-size archive header and a table of
// fixed-size entry records:
//   - Archive header at offset 0: product strings, entry count, flags, magic and CRCs
//   - Entry table at [EntryTableOffset]: one record per partition with its
//     identifiers and the 64-bit payload offset and size, each split into
//     32-bit halves
//   - Payloads at the absolute offsets the entries name
//
// All reads use absolute offsets ([io.ReaderAt]); no operation depends on a
// shared file position.
//
// # Quick Start
//
// List partitions and extract one:
//
//	a, err := pac.Open("firmware.pac")
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//
//	for e, err := range a.Entries() {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(e.FileID, e.Size())
//	}
//	res, err := a.ExtractTo(ctx, "Modem", "out")
//
// Export every partition:
//
//	report, err := a.ExportAll(ctx, "out", pac.ExtractWithCompression(pac.CompressionZstd))
//
// CRC and magic fields are decoded and exposed but never verified.
package pac
