package nav

import (
	"slices"
	"strings"

	"github.com/atomicstack/hiview/internal/tree"
)

// PathSeparator joins breadcrumb segments in Path.
const PathSeparator = `\`

// Current returns the entered key.
func (n *Navigator) Current() tree.Node {
	return n.cur.current
}

// Children returns the entered key's subkeys in display order. Callers must
// not modify the slice.
func (n *Navigator) Children() []tree.Node {
	return n.cur.children
}

// SelectedChild returns the subkey cursor.
func (n *Navigator) SelectedChild() Index {
	return n.cur.keys.Selected
}

// SelectedChildNode returns the selected subkey, if any.
func (n *Navigator) SelectedChildNode() (tree.Node, bool) {
	return n.cur.selectedChild()
}

// KeyState returns the subkey list's cursor and scroll offset.
func (n *Navigator) KeyState() SelectionState {
	return n.cur.keys
}

// Values returns the selected subkey's values. Callers must not modify the
// slice.
func (n *Navigator) Values() []tree.Value {
	return n.cur.values
}

// SelectedValue returns the value cursor.
func (n *Navigator) SelectedValue() Index {
	return n.cur.valueSel.Selected
}

// SelectedValueItem returns the value under the cursor, if any.
func (n *Navigator) SelectedValueItem() (tree.Value, bool) {
	return n.cur.selectedValue()
}

// ValueState returns the value list's cursor and scroll offset.
func (n *Navigator) ValueState() SelectionState {
	return n.cur.valueSel
}

// SortMode returns the active sibling ordering.
func (n *Navigator) SortMode() SortMode {
	return n.cur.sortMode
}

// Breadcrumb returns key names from the root down to the entered key,
// derived by walking the parent chain.
func (n *Navigator) Breadcrumb() []string {
	if !n.cur.entered {
		return nil
	}
	names := []string{n.cur.current.Name}
	node := n.cur.current
	for depth := 0; depth < maxDepth; depth++ {
		parent, ok := n.provider.Parent(node)
		if !ok {
			break
		}
		names = append(names, parent.Name)
		node = parent
	}
	slices.Reverse(names)
	return names
}

// Path renders the breadcrumb of the selected subkey, or of the entered key
// when nothing is selected.
func (n *Navigator) Path() string {
	segments := n.Breadcrumb()
	if child, ok := n.cur.selectedChild(); ok {
		segments = append(segments, child.Name)
	}
	return strings.Join(segments, PathSeparator)
}
