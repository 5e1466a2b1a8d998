package pac

import (
	"encoding/json"
	"io"

	"github.com/meigma/pac/internal/sizing"
)

// Manifest is a serializable summary of a container's header and entry table.
type Manifest struct {
	Version        string          `json:"version"`
	ProductName    string          `json:"productName"`
	ProductVersion string          `json:"productVersion"`
	DeclaredSize   uint64          `json:"declaredSize"`
	FileSize       int64           `json:"fileSize"`
	EntryCount     uint32          `json:"entryCount"`
	TableOffset    int64           `json:"tableOffset"`
	Magic          uint32          `json:"magic"`
	CRC1           uint16          `json:"crc1"`
	CRC2           uint16          `json:"crc2"`
	Partitions     []ManifestEntry `json:"partitions"`
}

// ManifestEntry summarizes one entry record.
type ManifestEntry struct {
	Index       int    `json:"index"`
	FileID      string `json:"fileId"`
	FileName    string `json:"fileName"`
	FileVersion string `json:"fileVersion,omitempty"`
	Offset      uint64 `json:"offset"`
	Size        uint64 `json:"size"`
	Flags       uint32 `json:"flags"`
	CheckFlag   uint32 `json:"checkFlag"`
	CanOmitFlag uint32 `json:"canOmitFlag"`

	// Available is how many payload bytes lie before end of file. It is less
	// than Size for payloads that would extract short.
	Available uint64 `json:"available"`
}

// Truncated reports whether the payload extends past end of file.
func (m ManifestEntry) Truncated() bool {
	return m.Available < m.Size
}

// Manifest walks the entry table and summarizes the container.
func (a *Archive) Manifest() (*Manifest, error) {
	h := a.header
	m := &Manifest{
		Version:        h.Version,
		ProductName:    h.ProductName,
		ProductVersion: h.ProductVersion,
		DeclaredSize:   h.Size(),
		FileSize:       a.Size(),
		EntryCount:     h.EntryCount,
		TableOffset:    a.tableOffset,
		Magic:          h.Magic,
		CRC1:           h.CRC1,
		CRC2:           h.CRC2,
		Partitions:     []ManifestEntry{},
	}
	entries, err := a.EntryList()
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		m.Partitions = append(m.Partitions, ManifestEntry{
			Index:       e.Index,
			FileID:      e.FileID,
			FileName:    e.FileName,
			FileVersion: e.FileVersion,
			Offset:      e.Offset(),
			Size:        e.Size(),
			Flags:       e.Flags,
			CheckFlag:   e.CheckFlag,
			CanOmitFlag: e.CanOmitFlag,
			Available:   sizing.Remaining(e.Offset(), e.Size(), a.Size()),
		})
	}
	return m, nil
}

// WriteJSON writes m as indented JSON.
func (m *Manifest) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}
