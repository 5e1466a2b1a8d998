package pac

import (
	"fmt"
	"os"
)

// CreateFile writes a PAC container holding parts to path, replacing any
// existing file.
func CreateFile(path string, hdr Header, parts []Partition) (uint64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	n, err := Create(f, hdr, parts)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close %s: %w", path, cerr)
	}
	return n, err
}
