package pactype

// Compression identifies how extracted partitions are written.
type Compression uint8

const (
	// CompressionNone writes raw payload bytes.
	CompressionNone Compression = iota
	// CompressionZstd writes a zstd stream.
	CompressionZstd
)

// String returns the algorithm name.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	default:
		return "unknown"
	}
}

// Ext returns the file name suffix for output written with c.
func (c Compression) Ext() string {
	if c == CompressionZstd {
		return ".zst"
	}
	return ""
}
