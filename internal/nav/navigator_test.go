package nav

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/atomicstack/hiview/internal/tree"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// newFixture builds:
//
//	ROOT(1)
//	├── Charlie(10)                      0 subkeys, 0 values
//	├── Alpha(20)   -> Deep(21)          1 subkey,  5 values
//	└── Bravo(30)   -> X(31), Y(32)      2 subkeys, 2 values
func newFixture() *tree.Memory {
	m := tree.NewMemory()
	m.SetRoot(tree.Node{ID: 1, Name: "ROOT"})
	m.Add(1, tree.Node{ID: 10, Name: "Charlie", LastWrite: epoch.Add(2 * time.Hour)})
	m.Add(1, tree.Node{ID: 20, Name: "Alpha", LastWrite: epoch.Add(3 * time.Hour)})
	m.Add(1, tree.Node{ID: 30, Name: "Bravo", LastWrite: epoch.Add(1 * time.Hour)})
	m.Add(20, tree.Node{ID: 21, Name: "Deep"})
	m.Add(30, tree.Node{ID: 31, Name: "X"})
	m.Add(30, tree.Node{ID: 32, Name: "Y"})
	values := make([]tree.Value, 5)
	for i := range values {
		values[i] = tree.Value{Name: fmt.Sprintf("v%d", i), Kind: tree.KindInt, Int: uint64(i)}
	}
	m.SetValues(20, values...)
	m.SetValues(30, tree.Value{Name: "a", Kind: tree.KindString, String: "x"}, tree.Value{Name: "b", Kind: tree.KindString, String: "y"})
	return m
}

func newTestNavigator(t *testing.T, p tree.Provider) *Navigator {
	t.Helper()
	n := New(p, Options{})
	if err := n.EnterRoot(); err != nil {
		t.Fatalf("enter root: %v", err)
	}
	return n
}

func childNames(n *Navigator) []string {
	names := make([]string, 0, len(n.Children()))
	for _, c := range n.Children() {
		names = append(names, c.Name)
	}
	return names
}

func selectedName(t *testing.T, n *Navigator) string {
	t.Helper()
	node, ok := n.SelectedChildNode()
	if !ok {
		t.Fatalf("expected a selected child")
	}
	return node.Name
}

func TestEnterRootSelectsFirstChild(t *testing.T) {
	n := newTestNavigator(t, newFixture())
	if n.Current().ID != 1 {
		t.Fatalf("expected root current, got %d", n.Current().ID)
	}
	want := []string{"Charlie", "Alpha", "Bravo"}
	if got := childNames(n); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected children %v, got %v", want, got)
	}
	if idx, ok := n.SelectedChild().Get(); !ok || idx != 0 {
		t.Fatalf("expected child 0 selected, got %s", n.SelectedChild())
	}
	if len(n.Values()) != 0 || n.SelectedValue().Valid() {
		t.Fatalf("expected Charlie to have no values and no value selection")
	}
}

func TestEnterRootFailsWithoutRoot(t *testing.T) {
	n := New(tree.NewMemory(), Options{})
	if err := n.EnterRoot(); err == nil {
		t.Fatalf("expected error for provider without root")
	}
}

func TestSelectingChildLoadsItsValues(t *testing.T) {
	n := newTestNavigator(t, newFixture())
	n.MoveChildSelectionBy(1)
	if got := selectedName(t, n); got != "Alpha" {
		t.Fatalf("expected Alpha, got %s", got)
	}
	if len(n.Values()) != 5 {
		t.Fatalf("expected 5 values, got %d", len(n.Values()))
	}
	if idx, ok := n.SelectedValue().Get(); !ok || idx != 0 {
		t.Fatalf("expected first value selected, got %s", n.SelectedValue())
	}
}

func TestLeaveRestoresNonDefaultSelection(t *testing.T) {
	n := newTestNavigator(t, newFixture())
	n.MoveChildSelectionBy(1)
	if !n.EnterChild() {
		t.Fatalf("expected to enter Alpha")
	}
	if n.Current().ID != 20 {
		t.Fatalf("expected current Alpha, got %d", n.Current().ID)
	}
	if !n.LeaveToParent() {
		t.Fatalf("expected to leave to root")
	}
	if n.Current().ID != 1 {
		t.Fatalf("expected root after leave, got %d", n.Current().ID)
	}
	if idx, ok := n.SelectedChild().Get(); !ok || idx != 1 {
		t.Fatalf("expected selection restored to 1, got %s", n.SelectedChild())
	}
	if got := selectedName(t, n); got != "Alpha" {
		t.Fatalf("expected Alpha selected, got %s", got)
	}
}

func TestValueSelectionRestoredPerChild(t *testing.T) {
	n := newTestNavigator(t, newFixture())
	n.MoveChildSelectionBy(1)
	n.MoveValueSelectionBy(3)
	n.MoveChildSelectionBy(1)
	if got := selectedName(t, n); got != "Bravo" {
		t.Fatalf("expected Bravo, got %s", got)
	}
	if idx, _ := n.SelectedValue().Get(); idx != 0 {
		t.Fatalf("expected Bravo values to start at 0, got %d", idx)
	}
	n.MoveChildSelectionBy(-1)
	if idx, ok := n.SelectedValue().Get(); !ok || idx != 3 {
		t.Fatalf("expected Alpha value cursor restored to 3, got %s", n.SelectedValue())
	}
}

func TestValueSelectionSurvivesEnteringAndLeaving(t *testing.T) {
	n := newTestNavigator(t, newFixture())
	n.MoveChildSelectionBy(1)
	n.MoveValueSelectionBy(2)
	n.EnterChild()
	n.LeaveToParent()
	if got := selectedName(t, n); got != "Alpha" {
		t.Fatalf("expected Alpha, got %s", got)
	}
	if idx, ok := n.SelectedValue().Get(); !ok || idx != 2 {
		t.Fatalf("expected value cursor 2, got %s", n.SelectedValue())
	}
}

func TestDefaultSelectionForgetsStaleHistory(t *testing.T) {
	n := newTestNavigator(t, newFixture())
	n.MoveChildSelectionBy(2)
	n.EnterChild()
	n.LeaveToParent()
	if idx, _ := n.SelectedChild().Get(); idx != 2 {
		t.Fatalf("expected restored index 2, got %d", idx)
	}
	n.MoveChildSelectionBy(-2)
	n.EnterChild()
	n.LeaveToParent()
	if idx, _ := n.SelectedChild().Get(); idx != 0 {
		t.Fatalf("expected index 0 after returning to default, got %d", idx)
	}
	if _, ok := n.keyCache.Peek(1); ok {
		t.Fatalf("expected no cache entry for a default selection")
	}
}

func TestDefaultStatesAreNotCached(t *testing.T) {
	n := newTestNavigator(t, newFixture())
	n.EnterChild() // Charlie, default cursor at root
	n.LeaveToParent()
	if n.keyCache.Len() != 0 {
		t.Fatalf("expected empty key cache, got %d entries", n.keyCache.Len())
	}
	if n.valueCache.Len() != 0 {
		t.Fatalf("expected empty value cache, got %d entries", n.valueCache.Len())
	}
}

func TestEnterChildWithoutChildrenIsNoop(t *testing.T) {
	m := tree.NewMemory()
	m.SetRoot(tree.Node{ID: 1, Name: "ROOT"})
	n := newTestNavigator(t, m)
	if n.EnterChild() {
		t.Fatalf("expected no-op on empty children")
	}
	if n.SelectedChild().Valid() {
		t.Fatalf("expected no selection for empty children")
	}
	if n.MoveChildSelectionBy(1) {
		t.Fatalf("expected no movement on empty children")
	}
	if n.MoveValueSelectionBy(1) {
		t.Fatalf("expected no value movement without values")
	}
}

func TestLeaveAtRootIsIdempotent(t *testing.T) {
	n := newTestNavigator(t, newFixture())
	n.MoveChildSelectionBy(1)
	n.MoveValueSelectionBy(2)
	beforeCursor := n.cur
	beforeKeys := n.keyCache.Keys()
	beforeValues := n.valueCache.Keys()
	if n.LeaveToParent() {
		t.Fatalf("expected leave at root to report no change")
	}
	if !reflect.DeepEqual(beforeCursor, n.cur) {
		t.Fatalf("expected cursor unchanged at root")
	}
	if !reflect.DeepEqual(beforeKeys, n.keyCache.Keys()) || !reflect.DeepEqual(beforeValues, n.valueCache.Keys()) {
		t.Fatalf("expected caches untouched at root")
	}
}

func TestMoveValueSelectionClamps(t *testing.T) {
	n := newTestNavigator(t, newFixture())
	n.MoveChildSelectionBy(1)
	n.MoveValueSelectionBy(2)
	n.MoveValueSelectionBy(-100)
	if idx, _ := n.SelectedValue().Get(); idx != 0 {
		t.Fatalf("expected clamp to 0, got %d", idx)
	}
	n.MoveValueSelectionBy(2)
	n.MoveValueSelectionBy(100)
	if idx, _ := n.SelectedValue().Get(); idx != 4 {
		t.Fatalf("expected clamp to 4, got %d", idx)
	}
	if n.MoveValueSelectionBy(1) {
		t.Fatalf("expected no movement past the end")
	}
}

func TestMoveChildSelectionClampsWithoutWrapping(t *testing.T) {
	n := newTestNavigator(t, newFixture())
	if n.MoveChildSelectionBy(-1) {
		t.Fatalf("expected no movement before the first child")
	}
	n.MoveChildSelectionBy(10)
	if idx, _ := n.SelectedChild().Get(); idx != 2 {
		t.Fatalf("expected clamp to last child, got %d", idx)
	}
	n.MoveChildSelectionBy(-10)
	if idx, _ := n.SelectedChild().Get(); idx != 0 {
		t.Fatalf("expected clamp to first child, got %d", idx)
	}
}

func TestRandomMovesStayInBounds(t *testing.T) {
	n := newTestNavigator(t, newFixture())
	rng := rand.New(rand.NewSource(42))
	deltas := []int{-10, -1, 1, 10, 100, -100}
	for i := 0; i < 500; i++ {
		switch rng.Intn(5) {
		case 0:
			n.MoveChildSelectionBy(deltas[rng.Intn(len(deltas))])
		case 1:
			n.MoveValueSelectionBy(deltas[rng.Intn(len(deltas))])
		case 2:
			n.EnterChild()
		case 3:
			n.LeaveToParent()
		case 4:
			n.CycleSort()
		}
		assertInBounds(t, n.SelectedChild(), len(n.Children()), "child")
		assertInBounds(t, n.SelectedValue(), len(n.Values()), "value")
	}
}

func assertInBounds(t *testing.T, idx Index, n int, label string) {
	t.Helper()
	pos, ok := idx.Get()
	if n == 0 {
		if ok {
			t.Fatalf("expected no %s selection for empty list, got %d", label, pos)
		}
		return
	}
	if !ok {
		t.Fatalf("expected %s selection for list of %d", label, n)
	}
	if pos < 0 || pos >= n {
		t.Fatalf("%s selection %d out of range [0,%d)", label, pos, n)
	}
}

func TestCycleSortReturnsToOriginalMode(t *testing.T) {
	n := newTestNavigator(t, newFixture())
	start := n.SortMode()
	before := childNames(n)
	for i := 0; i < len(SortModes()); i++ {
		n.CycleSort()
	}
	if n.SortMode() != start {
		t.Fatalf("expected mode %s after full cycle, got %s", start, n.SortMode())
	}
	if got := childNames(n); !reflect.DeepEqual(got, before) {
		t.Fatalf("expected order %v after full cycle, got %v", before, got)
	}
}

func TestCycleSortKeepsSelectedChild(t *testing.T) {
	n := newTestNavigator(t, newFixture())
	n.MoveChildSelectionBy(1)
	n.MoveValueSelectionBy(3)
	n.CycleSort()
	if n.SortMode() != SortByName {
		t.Fatalf("expected name sort, got %s", n.SortMode())
	}
	want := []string{"Alpha", "Bravo", "Charlie"}
	if got := childNames(n); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if idx, _ := n.SelectedChild().Get(); idx != 0 {
		t.Fatalf("expected Alpha to move to index 0, got %d", idx)
	}
	if got := selectedName(t, n); got != "Alpha" {
		t.Fatalf("expected Alpha still selected, got %s", got)
	}
	if idx, _ := n.SelectedValue().Get(); idx != 3 {
		t.Fatalf("expected value cursor untouched, got %d", idx)
	}

	n.CycleSort()
	want = []string{"Bravo", "Charlie", "Alpha"}
	if got := childNames(n); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected last-write order %v, got %v", want, got)
	}
	if got := selectedName(t, n); got != "Alpha" {
		t.Fatalf("expected Alpha still selected, got %s", got)
	}
}

func TestSortModeAppliesOnEntry(t *testing.T) {
	n := New(newFixture(), Options{Sort: SortByName})
	if err := n.EnterRoot(); err != nil {
		t.Fatalf("enter root: %v", err)
	}
	want := []string{"Alpha", "Bravo", "Charlie"}
	if got := childNames(n); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSelectChildByNode(t *testing.T) {
	n := newTestNavigator(t, newFixture())
	bravo := n.Children()[2]
	n.SelectChild(&bravo)
	if got := selectedName(t, n); got != "Bravo" {
		t.Fatalf("expected Bravo, got %s", got)
	}
	n.SelectChild(nil)
	if n.SelectedChild().Valid() {
		t.Fatalf("expected selection cleared")
	}
	if len(n.Values()) != 0 || n.SelectedValue().Valid() {
		t.Fatalf("expected values cleared with selection")
	}
	stranger := tree.Node{ID: 999}
	n.SelectChild(&stranger)
	if n.SelectedChild().Valid() {
		t.Fatalf("expected unknown node to clear selection")
	}
}

func TestSelectChildWithoutPriorSelectionDoesNotPanic(t *testing.T) {
	n := newTestNavigator(t, newFixture())
	n.SelectChild(nil)
	n.MoveValueSelectionBy(1)
	alpha := n.Children()[1]
	n.SelectChild(&alpha)
	if got := selectedName(t, n); got != "Alpha" {
		t.Fatalf("expected Alpha, got %s", got)
	}
}

func TestCacheCapacityEvictsOldestKeys(t *testing.T) {
	m := tree.NewMemory()
	m.SetRoot(tree.Node{ID: 1, Name: "ROOT"})
	for parent := int64(100); parent <= 300; parent += 100 {
		m.Add(1, tree.Node{ID: parent, Name: fmt.Sprintf("P%d", parent)})
		for i := int64(1); i <= 3; i++ {
			m.Add(parent, tree.Node{ID: parent + i, Name: fmt.Sprintf("C%d", parent+i)})
		}
	}
	n := New(m, Options{CacheSize: 2})
	if err := n.EnterRoot(); err != nil {
		t.Fatalf("enter root: %v", err)
	}
	for i := 0; i < 3; i++ {
		n.MoveChildSelectionBy(i - n.SelectedChild().Or(0))
		n.EnterChild()
		n.MoveChildSelectionBy(1)
		n.LeaveToParent()
	}
	if n.keyCache.Len() > 2 {
		t.Fatalf("expected cache bounded at 2, got %d", n.keyCache.Len())
	}
	if _, ok := n.keyCache.Peek(100); ok {
		t.Fatalf("expected oldest subkey history evicted")
	}
	if _, ok := n.keyCache.Peek(300); !ok {
		t.Fatalf("expected newest subkey history retained")
	}
}

func TestFindChild(t *testing.T) {
	n := newTestNavigator(t, newFixture())
	if !n.FindChild("bravo") {
		t.Fatalf("expected exact match")
	}
	if got := selectedName(t, n); got != "Bravo" {
		t.Fatalf("expected Bravo, got %s", got)
	}
	if !n.FindChild("al") {
		t.Fatalf("expected prefix match")
	}
	if got := selectedName(t, n); got != "Alpha" {
		t.Fatalf("expected Alpha, got %s", got)
	}
	if !n.FindChild("chl") {
		t.Fatalf("expected fuzzy match")
	}
	if got := selectedName(t, n); got != "Charlie" {
		t.Fatalf("expected Charlie, got %s", got)
	}
	if n.FindChild("zzz") {
		t.Fatalf("expected no match")
	}
	if n.FindChild("  ") {
		t.Fatalf("expected blank query to be ignored")
	}
}

func TestBreadcrumbAndPath(t *testing.T) {
	n := newTestNavigator(t, newFixture())
	n.MoveChildSelectionBy(2)
	n.EnterChild()
	want := []string{"ROOT", "Bravo"}
	if got := n.Breadcrumb(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected breadcrumb %v, got %v", want, got)
	}
	if got := n.Path(); got != `ROOT\Bravo\X` {
		t.Fatalf("expected path ROOT\\Bravo\\X, got %q", got)
	}
}

func TestSyncViewportFollowsSelection(t *testing.T) {
	m := tree.NewMemory()
	m.SetRoot(tree.Node{ID: 1, Name: "ROOT"})
	for i := int64(0); i < 30; i++ {
		m.Add(1, tree.Node{ID: 100 + i, Name: fmt.Sprintf("K%02d", i)})
	}
	n := newTestNavigator(t, m)
	n.MoveChildSelectionBy(20)
	n.SyncViewport(5, 5)
	if off := n.KeyState().Offset; off != 16 {
		t.Fatalf("expected offset 16, got %d", off)
	}
	n.MoveChildSelectionBy(-20)
	n.SyncViewport(5, 5)
	if off := n.KeyState().Offset; off != 0 {
		t.Fatalf("expected offset 0, got %d", off)
	}
}

type failingProvider struct {
	*tree.Memory
}

func (failingProvider) Values(tree.Node) ([]tree.Value, error) {
	return nil, fmt.Errorf("corrupt value list")
}

func TestProviderErrorsBecomeEmptyLists(t *testing.T) {
	t.Chdir(t.TempDir())
	n := newTestNavigator(t, failingProvider{newFixture()})
	n.MoveChildSelectionBy(1)
	if len(n.Values()) != 0 || n.SelectedValue().Valid() {
		t.Fatalf("expected empty values after provider error")
	}
}
