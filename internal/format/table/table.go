package table

import (
	"strconv"
	"strings"

	"github.com/atomicstack/hiview/internal/tree"
	"github.com/charmbracelet/lipgloss"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Column indexes of the key table.
const (
	ColDescendants = iota
	ColName
	ColLastWrite
)

// TimeLayout renders last-write stamps in UTC.
const TimeLayout = "2006-01-02 15:04:05"

// KeyAlignments matches the columns produced by KeyRows.
var KeyAlignments = []Alignment{AlignRight, AlignLeft, AlignLeft}

// KeyHeader returns the header row of the key table.
func KeyHeader() []string {
	return []string{"#", "Name", "Last Write (UTC)"}
}

// KeyRows returns one row per node: subkey count, name, last write.
func KeyRows(nodes []tree.Node) [][]string {
	rows := make([][]string, len(nodes))
	for i, n := range nodes {
		stamp := "-"
		if !n.LastWrite.IsZero() {
			stamp = n.LastWrite.UTC().Format(TimeLayout)
		}
		rows[i] = []string{strconv.Itoa(n.Descendants), n.Name, stamp}
	}
	return rows
}

// Pad returns the cells of rows padded according to the widest entry in each
// column.
func Pad(rows [][]string, alignments []Alignment) [][]string {
	if len(rows) == 0 {
		return nil
	}
	colCount := len(rows[0])
	widths := make([]int, colCount)
	for _, row := range rows {
		for c, cell := range row {
			if w := cellWidth(cell); c < colCount && w > widths[c] {
				widths[c] = w
			}
		}
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		padded := make([]string, len(row))
		for c, cell := range row {
			width := 0
			if c < colCount {
				width = widths[c] - cellWidth(cell)
			}
			gap := strings.Repeat(" ", max(width, 0))
			if c < len(alignments) && alignments[c] == AlignRight {
				padded[c] = gap + cell
			} else {
				padded[c] = cell + gap
			}
		}
		out[i] = padded
	}
	return out
}

// Format returns the rows padded and joined into lines.
func Format(rows [][]string, alignments []Alignment) []string {
	padded := Pad(rows, alignments)
	if padded == nil {
		return nil
	}
	out := make([]string, len(padded))
	for i, row := range padded {
		out[i] = strings.Join(row, "  ")
	}
	return out
}

func cellWidth(text string) int {
	return lipgloss.Width(text)
}
