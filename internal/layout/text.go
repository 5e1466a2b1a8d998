package layout

import (
	"encoding/binary"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding/unicode"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// DecodeUTF16 decodes a NUL-padded little-endian UTF-16 block.
//
// Malformed sequences never fail: they decode to U+FFFD.
func DecodeUTF16(b []byte) string {
	b = b[:len(b)&^1]
	out, err := utf16le.NewDecoder().Bytes(b)
	if err != nil {
		return strings.TrimRight(lossyUTF16(b), "\x00")
	}
	return strings.TrimRight(string(out), "\x00")
}

func lossyUTF16(b []byte) string {
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(b[2*i:])
	}
	return string(utf16.Decode(units))
}

// EncodeUTF16 encodes s as little-endian UTF-16 without a byte order mark.
func EncodeUTF16(s string) ([]byte, error) {
	return utf16le.NewEncoder().Bytes([]byte(s))
}

// DecodeASCII decodes a NUL-padded 7-bit text block. Bytes outside the ASCII
// range are dropped.
func DecodeASCII(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		if c < 0x80 {
			sb.WriteByte(c)
		}
	}
	return strings.TrimRight(sb.String(), "\x00")
}
