package nav

import "strconv"

// Index is an optional position within a list. The zero value selects
// nothing.
type Index struct {
	pos int
	ok  bool
}

// At returns an Index selecting position i.
func At(i int) Index {
	return Index{pos: i, ok: true}
}

// Get returns the selected position and whether one is set.
func (x Index) Get() (int, bool) {
	return x.pos, x.ok
}

// Valid reports whether a position is selected.
func (x Index) Valid() bool {
	return x.ok
}

// Or returns the selected position, or def when nothing is selected.
func (x Index) Or(def int) int {
	if !x.ok {
		return def
	}
	return x.pos
}

func (x Index) String() string {
	if !x.ok {
		return "none"
	}
	return strconv.Itoa(x.pos)
}

// SelectionState is the cursor and scroll position of one list.
type SelectionState struct {
	Selected Index
	Offset   int
}

func defaultSelection() SelectionState {
	return SelectionState{Selected: At(0)}
}

// IsDefault reports whether the state is what a fresh visit would produce.
// Only non-default states are worth remembering.
func (s SelectionState) IsDefault() bool {
	return s.Selected.Or(0) == 0
}

// clamp fits the state to a list of n entries: nothing is selected in an
// empty list, otherwise the selection lands within [0, n-1].
func (s *SelectionState) clamp(n int) {
	if n <= 0 {
		s.Selected = Index{}
		s.Offset = 0
		return
	}
	pos := s.Selected.Or(0)
	if pos < 0 {
		pos = 0
	}
	if pos > n-1 {
		pos = n - 1
	}
	s.Selected = At(pos)
	if s.Offset < 0 {
		s.Offset = 0
	}
	if s.Offset > n-1 {
		s.Offset = n - 1
	}
}

// EnsureVisible adjusts the scroll offset so the selection stays within a
// window of maxVisible rows over a list of n entries.
func (s *SelectionState) EnsureVisible(n, maxVisible int) {
	if n <= 0 {
		s.Offset = 0
		return
	}
	if maxVisible <= 0 {
		s.Offset = 0
		return
	}
	maxOffset := n - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.Offset > maxOffset {
		s.Offset = maxOffset
	}
	if s.Offset < 0 {
		s.Offset = 0
	}
	pos, ok := s.Selected.Get()
	if !ok {
		return
	}
	if pos < s.Offset {
		s.Offset = pos
	}
	if upper := s.Offset + maxVisible - 1; pos > upper {
		s.Offset = pos - maxVisible + 1
		if s.Offset > maxOffset {
			s.Offset = maxOffset
		}
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}
