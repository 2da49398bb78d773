// Package tui is the interactive surface over the form: it draws the
// field list produced by the renderer, reports edits back as
// (value, path) events, and re-renders from the new tree after every
// update. All state changes happen synchronously inside Update; the view
// is a pure function of the model.
package tui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mcncl/jsonedit/internal/errors"
	"github.com/mcncl/jsonedit/internal/form"
	"github.com/mcncl/jsonedit/internal/render"
)

// viewState tracks which view is active
type viewState int

const (
	viewPaste viewState = iota
	viewForm
	viewEdit
	viewOutput
)

// Model is the bubbletea model for the editor.
type Model struct {
	doc *form.Form

	paste  textarea.Model
	input  textinput.Model
	output viewport.Model

	state     viewState
	fields    []render.Field
	cursor    int
	offset    int // first visible field row
	collapsed map[string]bool
	editIdx   int // index into fields while editing

	errMsg    string
	statusMsg string

	width  int
	height int
}

// New builds the model. A form that already holds a document opens
// straight into the field list; an empty form opens on the paste view.
func New(doc *form.Form) Model {
	ta := textarea.New()
	ta.Placeholder = "Paste JSON here…"
	ta.CharLimit = 0
	ta.Focus()

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 0
	ti.Width = 50

	m := Model{
		doc:       doc,
		paste:     ta,
		input:     ti,
		output:    viewport.New(80, 20),
		state:     viewPaste,
		collapsed: make(map[string]bool),
		editIdx:   -1,
	}
	if doc.Loaded() {
		m.collapsed = render.CollapseBelow(doc.Value(), doc.Config().Form.CollapseDepth)
		m.state = viewForm
		m.refresh()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.state == viewPaste {
		return textarea.Blink
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.paste.SetWidth(msg.Width - 4)
		m.paste.SetHeight(msg.Height - 6)
		m.output.Width = msg.Width - 2
		m.output.Height = msg.Height - 4
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.state {
		case viewPaste:
			return m.updatePaste(msg)
		case viewForm:
			return m.updateForm(msg)
		case viewEdit:
			return m.updateEdit(msg)
		case viewOutput:
			return m.updateOutput(msg)
		}
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlD:
		raw := m.paste.Value()
		if err := m.doc.Load(raw); err != nil {
			// The form keeps any previously loaded tree; the banner
			// carries the parser's diagnostic and the textarea keeps
			// the input for correction.
			m.errMsg = errors.UserFriendlyError(err)
			return m, nil
		}
		m.errMsg = ""
		m.statusMsg = ""
		m.collapsed = render.CollapseBelow(m.doc.Value(), m.doc.Config().Form.CollapseDepth)
		m.state = viewForm
		m.refresh()
		m.cursor = 0
		m.offset = 0
		return m, nil

	case tea.KeyEsc:
		if m.doc.Loaded() {
			m.errMsg = ""
			m.state = viewForm
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.paste, cmd = m.paste.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}

	case "g", "home":
		m.cursor = 0

	case "G", "end":
		if len(m.fields) > 0 {
			m.cursor = len(m.fields) - 1
		}

	case "enter":
		m.startEdit()

	case " ":
		m.toggleAtCursor()

	case "o":
		out, err := m.doc.Export()
		if err != nil {
			m.statusMsg = errors.UserFriendlyError(err)
			return m, nil
		}
		m.output.SetContent(out)
		m.output.GotoTop()
		m.state = viewOutput

	case "y":
		out, err := m.doc.Export()
		if err != nil {
			m.statusMsg = errors.UserFriendlyError(err)
			return m, nil
		}
		if err := clipboard.WriteAll(out); err != nil {
			m.statusMsg = "Clipboard unavailable: " + err.Error()
		} else {
			m.statusMsg = "Copied JSON to clipboard"
		}

	case "p":
		m.paste.SetValue("")
		m.paste.Focus()
		m.errMsg = ""
		m.state = viewPaste
		return m, textarea.Blink
	}

	m.scrollToCursor()
	return m, nil
}

// startEdit opens the inline editor for the field under the cursor.
// Booleans flip in place, section headers toggle their collapse state,
// placeholders do nothing.
func (m *Model) startEdit() {
	if m.cursor >= len(m.fields) {
		return
	}
	f := m.fields[m.cursor]
	switch f.Kind {
	case render.TextField:
		m.input.SetValue(f.Value.Str())
	case render.NumberField:
		m.input.SetValue(f.Value.Num().String())
	case render.ToggleField:
		m.doc.SetBool(f.Path, !f.Value.Bool())
		m.refresh()
		return
	case render.SectionHeader:
		m.toggleAtCursor()
		return
	default:
		m.statusMsg = "Unsupported value at " + f.Path.String() + " cannot be edited"
		return
	}
	m.editIdx = m.cursor
	m.statusMsg = ""
	m.input.CursorEnd()
	m.input.Focus()
	m.state = viewEdit
}

// toggleAtCursor flips a boolean or the collapse state of a section.
func (m *Model) toggleAtCursor() {
	if m.cursor >= len(m.fields) {
		return
	}
	f := m.fields[m.cursor]
	switch f.Kind {
	case render.ToggleField:
		m.doc.SetBool(f.Path, !f.Value.Bool())
		m.refresh()
	case render.SectionHeader:
		key := f.Path.String()
		if m.collapsed[key] {
			delete(m.collapsed, key)
		} else {
			m.collapsed[key] = true
		}
		m.refresh()
	}
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editIdx < 0 || m.editIdx >= len(m.fields) {
		m.state = viewForm
		return m, nil
	}
	f := m.fields[m.editIdx]

	switch msg.Type {
	case tea.KeyEsc:
		m.input.Blur()
		m.editIdx = -1
		m.state = viewForm
		return m, nil

	case tea.KeyEnter:
		switch f.Kind {
		case render.TextField:
			m.doc.SetString(f.Path, m.input.Value())
		case render.NumberField:
			// Non-numeric input is silently coerced to 0 here.
			m.doc.SetNumberText(f.Path, m.input.Value())
		}
		m.input.Blur()
		m.editIdx = -1
		m.state = viewForm
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateOutput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "o":
		m.state = viewForm
		return m, nil
	}
	var cmd tea.Cmd
	m.output, cmd = m.output.Update(msg)
	return m, cmd
}

// refresh re-walks the tree into the field list. It runs after every
// structural change; the list is a pure function of the current tree and
// collapse state.
func (m *Model) refresh() {
	m.fields = render.Walk(m.doc.Value(), render.Options{
		Collapsed:      m.collapsed,
		HumanizeLabels: m.doc.Config().Form.HumanizeLabels,
	})
	if m.cursor >= len(m.fields) {
		m.cursor = len(m.fields) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// scrollToCursor keeps the cursor row inside the visible window.
func (m *Model) scrollToCursor() {
	visible := m.formHeight()
	if visible < 1 {
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}

// Fields exposes the current field list, for tests.
func (m Model) Fields() []render.Field { return m.fields }

// Result returns the serialized document after the program exits, and
// whether there is one to emit.
func (m Model) Result() (string, bool) {
	if !m.doc.Loaded() {
		return "", false
	}
	out, err := m.doc.Export()
	if err != nil {
		return "", false
	}
	return out, true
}
