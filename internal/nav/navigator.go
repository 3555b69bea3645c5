// Package nav tracks where the operator is within a tree and remembers,
// per key, where they left the subkey and value cursors.
//
// A Navigator owns a tree.Provider and two bounded recency caches keyed by
// node identity: one for the subkey list shown while a key is entered, one
// for the value list shown while a subkey is selected. Only non-default
// positions are cached, so plain walks through the tree do not push out
// history the operator actually built up.
//
// Every operation runs to completion synchronously and never fails; empty
// lists, the root having no parent and cache misses are handled by clamping
// or defaulting. Provider errors after startup are logged and treated as
// empty lists.
package nav

import (
	"fmt"
	"strings"

	"github.com/atomicstack/hiview/internal/logging"
	"github.com/atomicstack/hiview/internal/logging/events"
	"github.com/atomicstack/hiview/internal/lru"
	"github.com/atomicstack/hiview/internal/tree"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxDepth bounds parent-chain walks so a corrupt hive with a parent cycle
// cannot hang the breadcrumb.
const maxDepth = 512

// Options tune a Navigator.
type Options struct {
	CacheSize int
	Sort      SortMode
}

// Navigator is the command surface driven by the UI.
type Navigator struct {
	provider   tree.Provider
	cur        Cursor
	keyCache   *lru.Cache[int64, SelectionState]
	valueCache *lru.Cache[int64, SelectionState]
}

// New builds a Navigator over p. Call EnterRoot before anything else.
func New(p tree.Provider, opts Options) *Navigator {
	size := opts.CacheSize
	if size <= 0 {
		size = lru.DefaultCapacity
	}
	return &Navigator{
		provider:   p,
		cur:        Cursor{sortMode: opts.Sort},
		keyCache:   lru.New[int64, SelectionState](size),
		valueCache: lru.New[int64, SelectionState](size),
	}
}

// EnterRoot loads the provider's root and selects it. Failing to obtain the
// root is the only error a Navigator reports.
func (n *Navigator) EnterRoot() error {
	root, err := n.provider.Root()
	if err != nil {
		return fmt.Errorf("load root key: %w", err)
	}
	n.SelectNode(root)
	return nil
}

// SelectNode makes node the entered key. The outgoing key's subkey cursor and
// the outgoing subkey's value cursor are remembered first, then node's
// subkeys are loaded, sorted and the remembered cursor (or the first entry)
// is selected. A cursor back at its default state removes the key's cache
// entry instead of storing it, so only moved cursors occupy the cache.
func (n *Navigator) SelectNode(node tree.Node) {
	if n.cur.entered {
		n.saveKeyState()
	}
	n.saveValueState()
	n.cur.clearValues()

	n.cur.entered = true
	n.cur.current = node
	children := n.loadChildren(node)
	n.cur.sortMode.Apply(children)
	n.cur.children = children

	state, ok := n.keyCache.Get(node.ID)
	if !ok {
		state = defaultSelection()
	}
	state.clamp(len(children))
	n.cur.keys = state
	if ok {
		events.Nav.Restore("keys", node.ID, state.Selected.Or(-1))
	}
	events.Nav.Enter(node.ID, node.Name, len(children))

	n.selectChild(state.Selected)
}

// EnterChild descends into the selected subkey. It reports whether the
// position changed; with no subkeys it does nothing.
func (n *Navigator) EnterChild() bool {
	child, ok := n.cur.selectedChild()
	if !ok {
		return false
	}
	n.SelectNode(child)
	return true
}

// LeaveToParent ascends to the parent of the entered key. At the root it does
// nothing and reports false.
func (n *Navigator) LeaveToParent() bool {
	if !n.cur.entered {
		return false
	}
	parent, ok := n.provider.Parent(n.cur.current)
	if !ok {
		return false
	}
	from := n.cur.current.ID
	n.SelectNode(parent)
	events.Nav.Leave(from, parent.ID)
	return true
}

// SelectChild selects the given subkey and previews its values. A nil node,
// or one that is not among the current subkeys, clears the selection.
func (n *Navigator) SelectChild(node *tree.Node) {
	idx := Index{}
	if node != nil {
		idx = n.cur.indexOf(node.ID)
	}
	n.selectChild(idx)
}

func (n *Navigator) selectChild(idx Index) {
	n.saveValueState()
	if i, ok := idx.Get(); !ok || i < 0 || i >= len(n.cur.children) {
		idx = Index{}
	}
	n.cur.keys.Selected = idx

	i, ok := idx.Get()
	if !ok {
		n.cur.clearValues()
		return
	}
	child := n.cur.children[i]
	n.cur.owner = child
	n.cur.hasOwner = true
	n.cur.values = n.loadValues(child)

	state, cached := n.valueCache.Get(child.ID)
	if !cached {
		state = defaultSelection()
	}
	state.clamp(len(n.cur.values))
	n.cur.valueSel = state
	if cached {
		events.Nav.Restore("values", child.ID, state.Selected.Or(-1))
	}
}

// MoveChildSelectionBy moves the subkey cursor by delta, clamped to the list
// bounds, and previews the newly selected subkey's values.
func (n *Navigator) MoveChildSelectionBy(delta int) bool {
	count := len(n.cur.children)
	if count == 0 {
		return false
	}
	old := n.cur.keys.Selected
	next := clampIndex(old.Or(0)+delta, count)
	if old.Valid() && old.Or(0) == next {
		return false
	}
	n.selectChild(At(next))
	events.Nav.Cursor(n.cur.current.ID, next)
	return true
}

// MoveValueSelectionBy moves the value cursor by delta, clamped to the list
// bounds. Values are not reloaded.
func (n *Navigator) MoveValueSelectionBy(delta int) bool {
	if !n.cur.moveValue(delta) {
		return false
	}
	events.Nav.ValueCursor(n.cur.owner.ID, n.cur.valueSel.Selected.Or(-1))
	return true
}

// CycleSort advances to the next sort mode and re-sorts the subkeys. The
// previously selected subkey is located again by identity so the selection
// follows the key, not the row.
func (n *Navigator) CycleSort() {
	prev, had := n.cur.selectedChild()
	n.cur.sortMode = n.cur.sortMode.Next()
	n.cur.sortMode.Apply(n.cur.children)
	events.Nav.Sort(n.cur.sortMode.String())
	if !had {
		return
	}
	idx := n.cur.indexOf(prev.ID)
	if !idx.Valid() {
		n.selectChild(Index{})
		return
	}
	n.cur.keys.Selected = idx
}

// FindChild selects the subkey whose name best matches query. Exact
// (case-insensitive) names win, then prefixes, then the closest fuzzy match.
// It reports whether a match was found.
func (n *Navigator) FindChild(query string) bool {
	query = strings.TrimSpace(query)
	if query == "" || len(n.cur.children) == 0 {
		return false
	}
	idx := bestMatch(n.cur.children, query)
	if idx < 0 {
		return false
	}
	n.selectChild(At(idx))
	events.Nav.Find(query, idx)
	return true
}

func bestMatch(nodes []tree.Node, query string) int {
	for i, node := range nodes {
		if strings.EqualFold(node.Name, query) {
			return i
		}
	}
	lower := strings.ToLower(query)
	for i, node := range nodes {
		if strings.HasPrefix(strings.ToLower(node.Name), lower) {
			return i
		}
	}
	names := make([]string, len(nodes))
	for i, node := range nodes {
		names[i] = node.Name
	}
	best := -1
	bestDistance := 0
	for _, rank := range fuzzy.RankFindFold(query, names) {
		if best < 0 || rank.Distance < bestDistance || (rank.Distance == bestDistance && rank.OriginalIndex < best) {
			best = rank.OriginalIndex
			bestDistance = rank.Distance
		}
	}
	return best
}

// SyncViewport keeps both scroll offsets covering their selections given the
// number of visible rows in each list.
func (n *Navigator) SyncViewport(keyRows, valueRows int) {
	n.cur.keys.EnsureVisible(len(n.cur.children), keyRows)
	n.cur.valueSel.EnsureVisible(len(n.cur.values), valueRows)
}

// saveKeyState remembers the subkey cursor of the entered key when it is
// worth remembering, and forgets it once it is back at the default.
func (n *Navigator) saveKeyState() {
	id := n.cur.current.ID
	if n.cur.keys.IsDefault() {
		n.keyCache.Remove(id)
		return
	}
	n.keyCache.Put(id, n.cur.keys)
}

// saveValueState does the same for the value cursor of the subkey whose
// values are loaded. Nothing is saved when no subkey was selected.
func (n *Navigator) saveValueState() {
	if !n.cur.hasOwner {
		return
	}
	id := n.cur.owner.ID
	if n.cur.valueSel.IsDefault() {
		n.valueCache.Remove(id)
		return
	}
	n.valueCache.Put(id, n.cur.valueSel)
}

func (n *Navigator) loadChildren(node tree.Node) []tree.Node {
	children, err := n.provider.Children(node)
	if err != nil {
		logging.Error(fmt.Errorf("read subkeys of %q: %w", node.Name, err))
		events.Hive.Error("children", node.ID, err)
	}
	return append([]tree.Node(nil), children...)
}

func (n *Navigator) loadValues(node tree.Node) []tree.Value {
	values, err := n.provider.Values(node)
	if err != nil {
		logging.Error(fmt.Errorf("read values of %q: %w", node.Name, err))
		events.Hive.Error("values", node.ID, err)
	}
	return append([]tree.Value(nil), values...)
}
