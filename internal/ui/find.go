package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) openFind() tea.Cmd {
	m.finding = true
	m.find.SetValue("")
	m.setFocus(PaneKeys)
	return m.find.Focus()
}

func (m *Model) closeFind() {
	m.finding = false
	m.find.Blur()
	m.find.SetValue("")
}

// handleFindKey feeds keys to the find prompt. Enter jumps to the best match
// among the entered key's subkeys; esc abandons the search.
func (m *Model) handleFindKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		query := strings.TrimSpace(m.find.Value())
		m.closeFind()
		if query != "" && !m.nav.FindChild(query) {
			m.setInfo(fmt.Sprintf("No subkey matches %q", query))
		}
		return nil
	case tea.KeyEsc, tea.KeyCtrlC:
		m.closeFind()
		return nil
	}
	var cmd tea.Cmd
	m.find, cmd = m.find.Update(msg)
	return cmd
}
