package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mcncl/jsonedit/internal/render"
)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cursorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	mutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	sectionStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	placeholderStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
	editBoxStyle     = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("208")).
				Padding(1, 2)
)

// View implements tea.Model.
func (m Model) View() string {
	switch m.state {
	case viewPaste:
		return m.viewPaste()
	case viewEdit:
		return m.viewEdit()
	case viewOutput:
		return m.viewOutput()
	default:
		return m.viewForm()
	}
}

func (m Model) viewPaste() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("jsonedit"))
	b.WriteString(mutedStyle.Render("  paste JSON, then ctrl+d to build the form"))
	b.WriteString("\n\n")
	b.WriteString(m.paste.View())
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	hint := "ctrl+d: parse • ctrl+c: quit"
	if m.doc.Loaded() {
		hint = "ctrl+d: parse • esc: back to form • ctrl+c: quit"
	}
	b.WriteString(mutedStyle.Render(hint))
	return b.String()
}

// formHeight is the number of field rows that fit in the form view.
func (m Model) formHeight() int {
	// Title, blank, status, help.
	h := m.height - 4
	if h < 1 {
		h = 10
	}
	return h
}

func (m Model) viewForm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("jsonedit"))
	b.WriteString("\n\n")

	visible := m.formHeight()
	end := m.offset + visible
	if end > len(m.fields) {
		end = len(m.fields)
	}
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderField(i))
		b.WriteString("\n")
	}
	if len(m.fields) == 0 {
		b.WriteString(mutedStyle.Render("  (empty document)"))
		b.WriteString("\n")
	}

	if m.statusMsg != "" {
		if strings.HasPrefix(m.statusMsg, "Error") || strings.HasPrefix(m.statusMsg, "Clipboard") {
			b.WriteString(errorStyle.Render(m.statusMsg))
		} else {
			b.WriteString(successStyle.Render(m.statusMsg))
		}
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("↑/↓: move • enter: edit • space: toggle/fold • o: output • y: copy • p: paste • q: quit"))
	return b.String()
}

func (m Model) renderField(i int) string {
	f := m.fields[i]
	indent := strings.Repeat("  ", f.Depth)
	cursor := "  "
	if i == m.cursor {
		cursor = cursorStyle.Render("❯ ")
	}

	previewWidth := m.doc.Config().Form.PreviewWidth

	switch f.Kind {
	case render.SectionHeader:
		marker := "▾"
		if f.Collapsed {
			marker = "▸"
		}
		return fmt.Sprintf("%s%s%s %s %s", cursor, indent,
			sectionStyle.Render(marker),
			sectionStyle.Render(f.Label),
			mutedStyle.Render(f.Preview(previewWidth)))

	case render.ListHeader:
		return fmt.Sprintf("%s%s%s %s", cursor, indent,
			sectionStyle.Render(f.Label),
			mutedStyle.Render(f.Preview(previewWidth)))

	case render.Placeholder:
		return fmt.Sprintf("%s%s%s %s", cursor, indent,
			labelStyle.Render(f.Label+":"),
			placeholderStyle.Render("unsupported type at "+f.Path.String()))

	case render.ToggleField:
		mark := "☐"
		if f.Value.Bool() {
			mark = "☑"
		}
		return fmt.Sprintf("%s%s%s %s", cursor, indent,
			labelStyle.Render(f.Label+":"), valueStyle.Render(mark))

	default:
		return fmt.Sprintf("%s%s%s %s", cursor, indent,
			labelStyle.Render(f.Label+":"),
			valueStyle.Render(f.Preview(previewWidth)))
	}
}

func (m Model) viewEdit() string {
	if m.editIdx < 0 || m.editIdx >= len(m.fields) {
		return m.viewForm()
	}
	f := m.fields[m.editIdx]

	kind := "text"
	if f.Kind == render.NumberField {
		kind = "number"
	}
	title := lipgloss.NewStyle().Bold(true).Render("Edit " + kind + ": " + f.Path.String())
	current := mutedStyle.Render("Current: " + f.Preview(0))
	help := mutedStyle.Render("enter: save • esc: cancel")

	box := editBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		title, "", current, "", m.input.View(), "", help))
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func (m Model) viewOutput() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("jsonedit"))
	b.WriteString(mutedStyle.Render("  serialized output"))
	b.WriteString("\n")
	b.WriteString(m.output.View())
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("↑/↓: scroll • esc: back"))
	return b.String()
}
