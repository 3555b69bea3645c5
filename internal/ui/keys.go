package ui

import "github.com/charmbracelet/bubbles/key"

// pageStep is the distance covered by the page keys.
const pageStep = 10

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Enter    key.Binding
	Leave    key.Binding
	NextPane key.Binding
	PrevPane key.Binding
	Sort     key.Binding
	Find     key.Binding
	Copy     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		PageUp:   key.NewBinding(key.WithKeys("ctrl+k", "pgup"), key.WithHelp("ctrl+k", "up 10")),
		PageDown: key.NewBinding(key.WithKeys("ctrl+j", "pgdown"), key.WithHelp("ctrl+j", "down 10")),
		Top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first")),
		Bottom:   key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last")),
		Enter:    key.NewBinding(key.WithKeys("l", "enter", "right"), key.WithHelp("l", "enter")),
		Leave:    key.NewBinding(key.WithKeys("h", "left", "backspace"), key.WithHelp("h", "back")),
		NextPane: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "pane")),
		PrevPane: key.NewBinding(key.WithKeys("shift+tab")),
		Sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Find:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "find")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy path")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp feeds the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Enter, k.Leave, k.NextPane, k.Sort, k.Find, k.Copy, k.Quit}
}

// FullHelp satisfies help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Enter, k.Leave, k.NextPane, k.PrevPane},
		{k.Sort, k.Find, k.Copy, k.Quit},
	}
}
