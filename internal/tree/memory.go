package tree

import "fmt"

// Memory is an in-memory Provider. It backs tests and small fixtures.
type Memory struct {
	root     int64
	hasRoot  bool
	nodes    map[int64]Node
	parent   map[int64]int64
	children map[int64][]int64
	values   map[int64][]Value
}

// NewMemory returns an empty tree; call SetRoot before use.
func NewMemory() *Memory {
	return &Memory{
		nodes:    make(map[int64]Node),
		parent:   make(map[int64]int64),
		children: make(map[int64][]int64),
		values:   make(map[int64][]Value),
	}
}

// SetRoot registers n as the root node.
func (m *Memory) SetRoot(n Node) *Memory {
	m.nodes[n.ID] = n
	m.root = n.ID
	m.hasRoot = true
	return m
}

// Add registers child beneath the node identified by parentID. The parent's
// descendant count is kept in step with its children.
func (m *Memory) Add(parentID int64, child Node) *Memory {
	m.nodes[child.ID] = child
	m.parent[child.ID] = parentID
	m.children[parentID] = append(m.children[parentID], child.ID)
	if p, ok := m.nodes[parentID]; ok {
		p.Descendants = len(m.children[parentID])
		m.nodes[parentID] = p
	}
	return m
}

// SetValues replaces the values attached to the node identified by id.
func (m *Memory) SetValues(id int64, values ...Value) *Memory {
	m.values[id] = append([]Value(nil), values...)
	if n, ok := m.nodes[id]; ok {
		n.ValueCount = len(values)
		m.nodes[id] = n
	}
	return m
}

// Node looks up a registered node by id.
func (m *Memory) Node(id int64) (Node, bool) {
	n, ok := m.nodes[id]
	return n, ok
}

func (m *Memory) Root() (Node, error) {
	if !m.hasRoot {
		return Node{}, ErrNoRoot
	}
	return m.nodes[m.root], nil
}

func (m *Memory) Children(n Node) ([]Node, error) {
	if _, ok := m.nodes[n.ID]; !ok {
		return nil, fmt.Errorf("unknown node %d", n.ID)
	}
	ids := m.children[n.ID]
	out := make([]Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.nodes[id])
	}
	return out, nil
}

func (m *Memory) Values(n Node) ([]Value, error) {
	if _, ok := m.nodes[n.ID]; !ok {
		return nil, fmt.Errorf("unknown node %d", n.ID)
	}
	return append([]Value(nil), m.values[n.ID]...), nil
}

func (m *Memory) Parent(n Node) (Node, bool) {
	if m.hasRoot && n.ID == m.root {
		return Node{}, false
	}
	pid, ok := m.parent[n.ID]
	if !ok {
		return Node{}, false
	}
	p, ok := m.nodes[pid]
	return p, ok
}
