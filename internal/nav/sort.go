package nav

import (
	"fmt"
	"slices"
	"strings"

	"github.com/atomicstack/hiview/internal/tree"
)

// SortMode selects the ordering applied to sibling keys.
type SortMode int

const (
	SortByDescendants SortMode = iota
	SortByName
	SortByLastWrite
)

// sortModes is the cycling order used by Next.
var sortModes = []SortMode{SortByDescendants, SortByName, SortByLastWrite}

// SortModes returns every mode in cycling order.
func SortModes() []SortMode {
	return append([]SortMode(nil), sortModes...)
}

// Next returns the mode following m, wrapping after the last one.
func (m SortMode) Next() SortMode {
	return sortModes[(m.position()+1)%len(sortModes)]
}

func (m SortMode) position() int {
	for i, mode := range sortModes {
		if mode == m {
			return i
		}
	}
	return 0
}

func (m SortMode) String() string {
	switch m {
	case SortByName:
		return "name"
	case SortByLastWrite:
		return "lastwrite"
	default:
		return "descendants"
	}
}

// ParseSortMode maps a mode name back to its SortMode.
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "descendants", "count", "subkeys":
		return SortByDescendants, nil
	case "name":
		return SortByName, nil
	case "lastwrite", "last-write", "time", "modified":
		return SortByLastWrite, nil
	}
	return SortByDescendants, fmt.Errorf("unknown sort mode %q (want descendants, name or lastwrite)", s)
}

// Apply stably sorts nodes in place in ascending order for the mode. Nodes
// that compare equal keep their relative order.
func (m SortMode) Apply(nodes []tree.Node) {
	slices.SortStableFunc(nodes, m.compare)
}

func (m SortMode) compare(a, b tree.Node) int {
	switch m {
	case SortByName:
		return strings.Compare(a.Name, b.Name)
	case SortByLastWrite:
		return a.LastWrite.Compare(b.LastWrite)
	default:
		switch {
		case a.Descendants < b.Descendants:
			return -1
		case a.Descendants > b.Descendants:
			return 1
		}
		return 0
	}
}
