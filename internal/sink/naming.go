package sink

import (
	"fmt"
	"strings"

	"github.com/meigma/pac/internal/pactype"
)

// Namer assigns destination names to partitions during one export run.
//
// Names are deterministic for a given table: the entry identifier if it is
// usable, a placeholder built from the table index otherwise, and an index
// suffix when a name was already handed out.
type Namer struct {
	used map[string]struct{}
}

// NewNamer returns a Namer with no names taken.
func NewNamer() *Namer {
	return &Namer{used: make(map[string]struct{})}
}

// Name returns a unique, filesystem-safe name for e based on its identifier.
func (n *Namer) Name(e *pactype.Entry) string {
	return n.Claim(e.Identifier(), e.Index)
}

// Claim reserves a unique name derived from id. index disambiguates
// collisions and names placeholders for unusable identifiers.
func (n *Namer) Claim(id string, index int) string {
	base := Sanitize(id)
	if base == "" {
		base = fmt.Sprintf("partition_%03d", index)
	}
	name := base
	if n.taken(name) {
		name = fmt.Sprintf("%s_%d", base, index)
	}
	for k := 1; n.taken(name); k++ {
		name = fmt.Sprintf("%s_%d_%d", base, index, k)
	}
	n.used[name] = struct{}{}
	return name
}

func (n *Namer) taken(name string) bool {
	_, ok := n.used[name]
	return ok
}

// Sanitize turns an identifier into a single path element. Separators,
// control characters and characters reserved on Windows become '_'.
// It returns "" if nothing usable remains.
func Sanitize(id string) string {
	s := strings.Map(func(r rune) rune {
		switch {
		case r < 0x20 || r == 0x7f:
			return '_'
		case strings.ContainsRune(`/\:*?"<>|`, r):
			return '_'
		default:
			return r
		}
	}, strings.TrimSpace(id))
	if s == "." || s == ".." {
		return ""
	}
	return s
}
