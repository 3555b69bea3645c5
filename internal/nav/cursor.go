package nav

import "github.com/atomicstack/hiview/internal/tree"

// Cursor is the navigation position: the entered key, its sorted subkeys,
// and the values of whichever subkey is selected.
type Cursor struct {
	entered  bool
	current  tree.Node
	children []tree.Node
	keys     SelectionState

	// owner is the subkey whose values are loaded; hasOwner is false when
	// no subkey is selected.
	owner    tree.Node
	hasOwner bool
	values   []tree.Value
	valueSel SelectionState
	sortMode SortMode
}

// indexOf finds the child with the given identity.
func (c *Cursor) indexOf(id int64) Index {
	for i, child := range c.children {
		if child.ID == id {
			return At(i)
		}
	}
	return Index{}
}

func (c *Cursor) selectedChild() (tree.Node, bool) {
	i, ok := c.keys.Selected.Get()
	if !ok || i >= len(c.children) {
		return tree.Node{}, false
	}
	return c.children[i], true
}

func (c *Cursor) selectedValue() (tree.Value, bool) {
	i, ok := c.valueSel.Selected.Get()
	if !ok || i >= len(c.values) {
		return tree.Value{}, false
	}
	return c.values[i], true
}

func (c *Cursor) clearValues() {
	c.owner = tree.Node{}
	c.hasOwner = false
	c.values = nil
	c.valueSel = SelectionState{}
}

// moveValue repositions the value selection without reloading values.
func (c *Cursor) moveValue(delta int) bool {
	n := len(c.values)
	if n == 0 {
		return false
	}
	old := c.valueSel.Selected
	c.valueSel.Selected = At(clampIndex(old.Or(0)+delta, n))
	return c.valueSel.Selected != old
}
