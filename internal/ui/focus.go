package ui

// Pane identifies which of the three panes receives pane-specific keys.
type Pane int

const (
	PaneKeys Pane = iota
	PaneValues
	PaneInspector
)

var panes = []Pane{PaneKeys, PaneValues, PaneInspector}

func (p Pane) position() int {
	for i, candidate := range panes {
		if candidate == p {
			return i
		}
	}
	return 0
}

// Next returns the pane after p, wrapping around.
func (p Pane) Next() Pane {
	return panes[(p.position()+1)%len(panes)]
}

// Prev returns the pane before p, wrapping around.
func (p Pane) Prev() Pane {
	return panes[(p.position()+len(panes)-1)%len(panes)]
}

func (p Pane) String() string {
	switch p {
	case PaneValues:
		return "values"
	case PaneInspector:
		return "inspector"
	default:
		return "keys"
	}
}
