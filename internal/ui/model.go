package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/hiview/internal/format/value"
	"github.com/atomicstack/hiview/internal/nav"
	"github.com/atomicstack/hiview/internal/theme"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	Width      int
	Height     int
	ShowFooter bool
}

// inspectedValue identifies the value currently loaded into the inspector.
type inspectedValue struct {
	owner int64
	index int
	ok    bool
}

// Model implements the Bubble Tea model for the hive browser.
type Model struct {
	nav *nav.Navigator

	focus       Pane
	keys        keyMap
	help        help.Model
	inspector   viewport.Model
	inspected   inspectedValue
	find        textinput.Model
	finding     bool
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	errMsg      string
	infoMsg     string
	infoExpire  time.Time
	writeClip   func(string) error

	handlers map[reflect.Type]msgHandler
}

// NewModel wires a model around a navigator that has already entered its
// root.
func NewModel(n *nav.Navigator, opts Options) *Model {
	m := &Model{
		nav:        n,
		focus:      PaneKeys,
		keys:       defaultKeyMap(),
		help:       help.New(),
		inspector:  viewport.New(0, 0),
		showFooter: opts.ShowFooter,
		writeClip:  clipboard.WriteAll,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.find = newFindInput()
	m.registerHandlers()
	m.syncLayout()
	return m
}

func newFindInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "find subkey"
	ti.CharLimit = 256
	if styles.FindPrompt != nil {
		ti.PromptStyle = *styles.FindPrompt
	}
	if styles.FindPlaceholder != nil {
		ti.PlaceholderStyle = *styles.FindPlaceholder
	}
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if handler := m.handlerFor(msg); handler != nil {
		cmd = handler(msg)
	}
	m.syncLayout()
	return m, cmd
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(copyResultMsg{}):     m.handleCopyResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// Focus reports the focused pane.
func (m *Model) Focus() Pane {
	return m.focus
}

// Navigator exposes the navigator driven by the model.
func (m *Model) Navigator() *nav.Navigator {
	return m.nav
}

// syncLayout pushes the visible row counts into the navigator and keeps the
// inspector sized to its pane and showing the selected value.
func (m *Model) syncLayout() {
	l := m.layout()
	m.nav.SyncViewport(l.keyRows(), l.valueRows())
	m.inspector.Width = max(l.rightWidth-2, 0)
	m.inspector.Height = max(l.inspectorHeight-2, 0)
	m.help.Width = l.width

	current := inspectedValue{}
	v, hasValue := m.nav.SelectedValueItem()
	if owner, ok := m.nav.SelectedChildNode(); ok && hasValue {
		current = inspectedValue{owner: owner.ID, index: m.nav.SelectedValue().Or(0), ok: true}
	}
	if current == m.inspected {
		return
	}
	m.inspected = current
	if current.ok {
		m.inspector.SetContent(value.Inspect(v))
	} else {
		m.inspector.SetContent("")
	}
	m.inspector.GotoTop()
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
