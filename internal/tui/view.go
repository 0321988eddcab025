package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"todo/internal/config"
	"todo/internal/ui"
)

// placeholder shown for todos without a due date (RequireDue=false).
const noDuePlaceholder = "no due date"

func (m Model) View() string {
	var b strings.Builder

	tabs := m.tabs
	tabs.Info = m.statsLine()
	b.WriteString(tabs.View())

	if len(m.visible) == 0 {
		b.WriteString(ui.StatusLine.Render("No todos here. Press 'a' to add one."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderList())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderList() string {
	var b strings.Builder
	editingID, editing := m.session.Editing()
	for i, it := range m.visible {
		cursor := "  "
		if i == m.cursor && m.mode == modeList {
			cursor = "> "
		}

		checkbox := "[ ]"
		if it.Completed {
			checkbox = "[x]"
		}

		text := ui.TodoText
		if it.Completed {
			text = ui.TodoDone
		}
		if m.deleting[it.ID] {
			text = lipgloss.NewStyle().Foreground(ui.Faded).Strikethrough(true)
		}

		due := it.Due.String()
		if due == "" {
			due = noDuePlaceholder
		}

		b.WriteString(cursor)
		if editing && it.ID == editingID && (m.mode == modeEditText || m.mode == modeEditDue) {
			b.WriteString(m.input.View())
		} else {
			b.WriteString(checkbox)
			b.WriteString(" ")
			b.WriteString(text.Render(it.Text))
			b.WriteString(ui.TodoDivider)
			b.WriteString(ui.TodoDue.Render(due))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderFooter() string {
	var b strings.Builder
	switch m.mode {
	case modeAddText, modeAddDue:
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case modeSearch:
		b.WriteString("search: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	if m.errline != "" {
		b.WriteString(ui.ErrorLine.Render(m.errline))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(ui.StatusLine.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(ui.StatusLine.Render(renderHelp(m.cfg.Keys)))
	return b.String()
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s edit • %s toggle • %s delete • %s clear • %s search • %s filter • %s status • %s sort • %s quit",
		k.Up, k.Down, k.Add, k.Edit, k.Toggle, k.Delete, k.Clear, k.Search, k.Filter, k.Tab, k.Sort, k.Quit)
}

func (m Model) statsLine() string {
	st := m.store.Stats()
	line := fmt.Sprintf("Total: %d | Completed: %d | Pending: %d", st.Total, st.Completed, st.Pending)
	extra := []string{}
	if !m.query.On.IsZero() {
		extra = append(extra, "on "+m.query.On.String())
	}
	if m.query.Search != "" {
		extra = append(extra, fmt.Sprintf("search %q", m.query.Search))
	}
	if len(extra) > 0 {
		line += " | " + strings.Join(extra, ", ")
	}
	return line
}
