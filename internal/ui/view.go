package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/hiview/internal/format/table"
	"github.com/atomicstack/hiview/internal/format/value"
	"github.com/atomicstack/hiview/internal/nav"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24
	minPaneHeight  = 3
	sortMarker     = " ▾"
)

// layout holds the outer dimensions of every pane, borders included.
type layout struct {
	width           int
	height          int
	keysWidth       int
	rightWidth      int
	bodyHeight      int
	valuesHeight    int
	inspectorHeight int
}

func (m *Model) layout() layout {
	w, h := m.width, m.height
	if w <= 0 {
		w = fallbackWidth
	}
	if h <= 0 {
		h = fallbackHeight
	}
	used := 2 // header + status
	if m.showFooter {
		used++
	}
	body := max(h-used, 2*minPaneHeight)
	keysWidth := w / 2
	valuesHeight := body / 2
	return layout{
		width:           w,
		height:          h,
		keysWidth:       keysWidth,
		rightWidth:      w - keysWidth,
		bodyHeight:      body,
		valuesHeight:    valuesHeight,
		inspectorHeight: body - valuesHeight,
	}
}

// keyRows is the number of subkey rows visible below the column header.
func (l layout) keyRows() int {
	return max(l.bodyHeight-3, 1)
}

func (l layout) valueRows() int {
	return max(l.valuesHeight-2, 1)
}

// View implements tea.Model.
func (m *Model) View() string {
	l := m.layout()
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.renderPane(PaneValues, m.valueLines(l), l.rightWidth, l.valuesHeight),
		m.renderPane(PaneInspector, m.inspectorLines(), l.rightWidth, l.inspectorHeight),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderPane(PaneKeys, m.keyLines(l), l.keysWidth, l.bodyHeight),
		right,
	)
	sections := []string{m.headerLine(l.width), body, m.statusLine(l.width)}
	if m.showFooter {
		sections = append(sections, m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return strings.Join(sections, "\n")
}

func (m *Model) renderPane(p Pane, lines []string, width, height int) string {
	style := styles.Pane
	if m.focus == p {
		style = styles.FocusedPane
	}
	innerWidth := max(width-2, 1)
	innerHeight := max(height-2, 1)
	lines = fitLines(lines, innerWidth, innerHeight)
	return style.Width(innerWidth).Height(innerHeight).Render(strings.Join(lines, "\n"))
}

func (m *Model) headerLine(width int) string {
	path := strings.Join(m.nav.Breadcrumb(), nav.PathSeparator)
	mode := "sort: " + m.nav.SortMode().String()
	room := width - lipgloss.Width(mode) - 2
	path = truncateText(path, room)
	gap := max(width-lipgloss.Width(path)-lipgloss.Width(mode), 1)
	return styles.Header.Render(path) + strings.Repeat(" ", gap) + styles.Info.Render(mode)
}

func (m *Model) statusLine(width int) string {
	switch {
	case m.finding:
		return truncateStyled(m.find.View(), width)
	case m.errMsg != "":
		return styles.Error.Render(truncateText("Error: "+m.errMsg, width))
	}
	if info := m.currentInfo(); info != "" {
		return styles.Info.Render(truncateText(info, width))
	}
	summary := fmt.Sprintf("%d subkeys  %d values  [%s]", len(m.nav.Children()), len(m.nav.Values()), m.focus)
	return styles.Info.Render(truncateText(summary, width))
}

func (m *Model) keyLines(l layout) []string {
	children := m.nav.Children()
	if len(children) == 0 {
		return []string{styles.Info.Render("(no subkeys)")}
	}
	header := table.KeyHeader()
	sortCol := sortColumn(m.nav.SortMode())
	header[sortCol] += sortMarker
	rows := append([][]string{header}, table.KeyRows(children)...)
	padded := table.Pad(rows, table.KeyAlignments)

	lines := []string{columnHeader(padded[0], sortCol)}
	state := m.nav.KeyState()
	selected := state.Selected.Or(-1)
	end := min(state.Offset+l.keyRows(), len(children))
	for i := state.Offset; i < end; i++ {
		lines = append(lines, itemLine(strings.Join(padded[i+1], "  "), i == selected, l.keysWidth-2))
	}
	return lines
}

func (m *Model) valueLines(l layout) []string {
	if _, ok := m.nav.SelectedChildNode(); !ok {
		return []string{styles.Info.Render("(no subkey selected)")}
	}
	values := m.nav.Values()
	if len(values) == 0 {
		return []string{styles.Info.Render("(no values)")}
	}
	rows := make([][]string, len(values))
	for i, v := range values {
		rows[i] = []string{value.Name(v), value.Preview(v)}
	}
	formatted := table.Format(rows, nil)
	state := m.nav.ValueState()
	selected := state.Selected.Or(-1)
	end := min(state.Offset+l.valueRows(), len(values))
	lines := make([]string, 0, end-state.Offset)
	for i := state.Offset; i < end; i++ {
		lines = append(lines, itemLine(formatted[i], i == selected, l.rightWidth-2))
	}
	return lines
}

func (m *Model) inspectorLines() []string {
	if !m.inspected.ok {
		return []string{styles.Info.Render("(no value selected)")}
	}
	return strings.Split(styles.InspectorBody.Render(m.inspector.View()), "\n")
}

func sortColumn(mode nav.SortMode) int {
	switch mode {
	case nav.SortByName:
		return table.ColName
	case nav.SortByLastWrite:
		return table.ColLastWrite
	default:
		return table.ColDescendants
	}
}

func columnHeader(cells []string, sortCol int) string {
	styled := make([]string, len(cells))
	for i, cell := range cells {
		style := styles.ColumnHeader
		if i == sortCol {
			style = styles.SortColumn
		}
		styled[i] = style.Render(cell)
	}
	return "  " + strings.Join(styled, "  ")
}

// itemLine renders a list row with the selection indicator, padded so the
// selected row's background spans the pane.
func itemLine(text string, selected bool, width int) string {
	indicatorStyle := styles.ItemIndicator
	lineStyle := styles.Item
	if selected {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	body := truncateText(" "+text, width-1)
	if pad := width - 1 - lipgloss.Width(body); pad > 0 {
		body += strings.Repeat(" ", pad)
	}
	return indicatorStyle.Render("▌") + lineStyle.Render(body)
}

func fitLines(lines []string, width, height int) []string {
	if len(lines) > height {
		lines = lines[:height]
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = truncateStyled(line, width)
	}
	return out
}

// truncateStyled shortens text that may carry ANSI escapes.
func truncateStyled(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return text
	}
	return truncate.StringWithTail(text, uint(width), "…")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
