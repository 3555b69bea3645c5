package ui

import (
	"fmt"

	"github.com/atomicstack/hiview/internal/logging"
	"github.com/atomicstack/hiview/internal/logging/events"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type copyResultMsg struct {
	path string
	err  error
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.finding {
		return m.handleFindKey(keyMsg)
	}
	m.errMsg = ""
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return tea.Quit
	case key.Matches(keyMsg, m.keys.NextPane):
		m.setFocus(m.focus.Next())
		return nil
	case key.Matches(keyMsg, m.keys.PrevPane):
		m.setFocus(m.focus.Prev())
		return nil
	case key.Matches(keyMsg, m.keys.Sort):
		m.nav.CycleSort()
		return nil
	case key.Matches(keyMsg, m.keys.Find):
		return m.openFind()
	case key.Matches(keyMsg, m.keys.Copy):
		return copyPathCmd(m.writeClip, m.nav.Path())
	}
	switch m.focus {
	case PaneKeys:
		m.handleKeysPaneKey(keyMsg)
	case PaneValues:
		m.handleValuesPaneKey(keyMsg)
	case PaneInspector:
		var cmd tea.Cmd
		m.inspector, cmd = m.inspector.Update(keyMsg)
		return cmd
	}
	return nil
}

func (m *Model) handleKeysPaneKey(msg tea.KeyMsg) {
	n := m.nav
	switch {
	case key.Matches(msg, m.keys.Enter):
		n.EnterChild()
	case key.Matches(msg, m.keys.Leave):
		n.LeaveToParent()
	case key.Matches(msg, m.keys.Down):
		n.MoveChildSelectionBy(1)
	case key.Matches(msg, m.keys.Up):
		n.MoveChildSelectionBy(-1)
	case key.Matches(msg, m.keys.PageDown):
		n.MoveChildSelectionBy(pageStep)
	case key.Matches(msg, m.keys.PageUp):
		n.MoveChildSelectionBy(-pageStep)
	case key.Matches(msg, m.keys.Top):
		n.MoveChildSelectionBy(-len(n.Children()))
	case key.Matches(msg, m.keys.Bottom):
		n.MoveChildSelectionBy(len(n.Children()))
	}
}

func (m *Model) handleValuesPaneKey(msg tea.KeyMsg) {
	n := m.nav
	switch {
	case key.Matches(msg, m.keys.Down):
		n.MoveValueSelectionBy(1)
	case key.Matches(msg, m.keys.Up):
		n.MoveValueSelectionBy(-1)
	case key.Matches(msg, m.keys.PageDown):
		n.MoveValueSelectionBy(pageStep)
	case key.Matches(msg, m.keys.PageUp):
		n.MoveValueSelectionBy(-pageStep)
	case key.Matches(msg, m.keys.Top):
		n.MoveValueSelectionBy(-len(n.Values()))
	case key.Matches(msg, m.keys.Bottom):
		n.MoveValueSelectionBy(len(n.Values()))
	}
}

func (m *Model) setFocus(p Pane) {
	if p == m.focus {
		return
	}
	m.focus = p
	events.UI.Focus(p.String())
}

func copyPathCmd(write func(string) error, path string) tea.Cmd {
	return func() tea.Msg {
		return copyResultMsg{path: path, err: write(path)}
	}
}

func (m *Model) handleCopyResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(copyResultMsg)
	if !ok {
		return nil
	}
	events.UI.Copy(result.path, result.err)
	if result.err != nil {
		logging.Error(fmt.Errorf("copy path: %w", result.err))
		m.errMsg = fmt.Sprintf("copy failed: %v", result.err)
		return nil
	}
	m.setInfo("Copied " + result.path)
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	events.UI.Resize(m.width, m.height)
	return nil
}
