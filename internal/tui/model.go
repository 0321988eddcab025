// Package tui is the interactive front end. It owns no todo state of
// its own beyond the active query, the cursor, and the inline edit
// session; every mutation goes through the store.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"todo/internal/config"
	"todo/internal/ui"
	"todo/pkg/todo"
	"todo/pkg/todo/date"
)

type mode int

const (
	modeList mode = iota
	modeAddText
	modeAddDue
	modeEditText
	modeEditDue
	modeSearch
	modeConfirmClear
)

// deleteDelay is how long a row stays visible in its "deleting" state
// before the store removal actually runs. Presentation only; Remove
// itself is immediate.
const deleteDelay = 300 * time.Millisecond

type deleteTimeoutMsg struct {
	id int64
}

type Model struct {
	store   *todo.Store
	session *todo.Session
	cfg     config.Config
	log     zerolog.Logger

	input textinput.Model
	tabs  ui.Tabs

	mode    mode
	query   todo.Query
	visible []todo.Item
	cursor  int
	status  string
	errline string

	// filterIdx indexes DistinctDates; -1 means all dates.
	filterIdx int
	draftText string
	deleting  map[int64]bool

	width int
}

func New(store *todo.Store, cfg config.Config, log zerolog.Logger) Model {
	ti := textinput.New()
	ti.Placeholder = "What needs doing?"
	ti.CharLimit = 256
	ti.Width = 40

	sort := todo.SortNone
	switch cfg.DefaultSort {
	case "due":
		sort = todo.SortDue
	case "text":
		sort = todo.SortText
	}

	m := Model{
		store:     store,
		session:   todo.NewSession(store),
		cfg:       cfg,
		log:       log,
		input:     ti,
		tabs:      ui.NewTabs([]string{"All", "Pending", "Done"}),
		query:     todo.Query{Sort: sort},
		filterIdx: -1,
		deleting:  map[int64]bool{},
	}
	m.refresh()
	return m
}

func Run(store *todo.Store, cfg config.Config, log zerolog.Logger) error {
	p := tea.NewProgram(New(store, cfg, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.tabs.Width = msg.Width
		m.input.Width = max(msg.Width-10, 10)
		return m, nil
	case deleteTimeoutMsg:
		return m.finishDelete(msg.id)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeList:
		return m.updateListMode(msg.String())
	case modeConfirmClear:
		return m.updateConfirmClear(msg.String())
	case modeSearch:
		return m.updateSearchMode(msg)
	default:
		return m.updateInputMode(msg)
	}
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	k := m.cfg.Keys
	switch key {
	case "ctrl+c", k.Quit:
		return m, tea.Quit
	case k.Down, "down":
		m.setCursor(m.cursor + 1)
	case k.Up, "up":
		m.setCursor(m.cursor - 1)
	case k.Add:
		m.mode = modeAddText
		m.input.Placeholder = "What needs doing?"
		m.input.SetValue("")
		m.input.Focus()
		m.status = "Add: type the text, enter to continue"
	case k.Edit:
		it, ok := m.atCursor()
		if !ok {
			m.status = "Nothing to edit"
			return m, nil
		}
		if _, err := m.session.Start(it.ID); err != nil {
			m.errline = err.Error()
			return m, nil
		}
		m.mode = modeEditText
		m.input.Placeholder = "Text"
		m.input.SetValue(it.Text)
		m.input.CursorEnd()
		m.input.Focus()
		m.status = "Edit: enter to continue, esc to cancel"
	case k.Toggle:
		it, ok := m.atCursor()
		if !ok {
			return m, nil
		}
		if err := m.store.SetCompleted(it.ID, !it.Completed); err != nil {
			m.errline = err.Error()
			return m, nil
		}
		m.log.Debug().Int64("id", it.ID).Bool("completed", !it.Completed).Msg("toggled todo")
		m.refresh()
	case k.Delete:
		it, ok := m.atCursor()
		if !ok {
			return m, nil
		}
		if m.deleting[it.ID] {
			return m, nil
		}
		m.deleting[it.ID] = true
		m.status = "Deleting…"
		return m, tea.Tick(deleteDelay, func(time.Time) tea.Msg {
			return deleteTimeoutMsg{id: it.ID}
		})
	case k.Clear:
		if m.store.Stats().Total == 0 {
			m.status = "Nothing to clear"
			return m, nil
		}
		m.mode = modeConfirmClear
		m.status = "Delete all todos? y/n"
	case k.Search:
		m.mode = modeSearch
		m.input.Placeholder = "Search"
		m.input.SetValue(m.query.Search)
		m.input.Focus()
		m.status = "Search: enter to keep, esc to clear"
	case k.Filter:
		m.cycleFilter()
	case k.Tab:
		m.tabs.Next()
		m.query.Status = todo.Status(m.tabs.Value())
		m.refresh()
	case k.Sort:
		m.query.Sort = (m.query.Sort + 1) % 3
		m.status = "Sort: " + sortName(m.query.Sort)
		m.refresh()
	}
	return m, nil
}

func (m Model) updateConfirmClear(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		if err := m.store.RemoveAll(); err != nil {
			m.errline = err.Error()
		} else {
			m.status = "Cleared all todos"
			m.log.Info().Msg("cleared all todos")
		}
		m.session.Cancel()
		m.mode = modeList
		m.filterIdx = -1
		m.query.On = date.Date{}
		m.refresh()
	case "n", "N", m.cfg.Keys.Cancel:
		m.status = "Clear cancelled"
		m.mode = modeList
	}
	return m, nil
}

func (m Model) updateSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.cfg.Keys.Cancel:
		m.input.SetValue("")
		m.query.Search = ""
		m.input.Blur()
		m.mode = modeList
		m.refresh()
		return m, nil
	case m.cfg.Keys.Confirm:
		m.input.Blur()
		m.mode = modeList
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	// live narrowing on every keystroke
	m.query.Search = m.input.Value()
	m.refresh()
	return m, cmd
}

// updateInputMode handles the two-step add and edit flows: text first,
// due date second.
func (m Model) updateInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.cfg.Keys
	switch msg.String() {
	case k.Cancel:
		if m.mode == modeEditText || m.mode == modeEditDue {
			m.session.Cancel()
		}
		m.leaveInput("Cancelled")
		return m, nil
	case k.Confirm:
		switch m.mode {
		case modeAddText, modeEditText:
			m.draftText = m.input.Value()
			due := ""
			if m.mode == modeEditText {
				if id, ok := m.session.Editing(); ok {
					if it, err := m.store.Get(id); err == nil {
						due = it.Due.String()
					}
				}
				m.mode = modeEditDue
			} else {
				m.mode = modeAddDue
			}
			m.input.Placeholder = "Due date (" + date.Layout + ")"
			m.input.SetValue(due)
			m.input.CursorEnd()
			m.status = "Due date: enter to save"
			return m, nil
		case modeAddDue:
			due, err := date.Parse(m.input.Value())
			if err != nil {
				m.errline = "Invalid date, use " + date.Layout
				return m, nil
			}
			it, err := m.store.Add(m.draftText, due)
			if err != nil {
				m.errline = friendlyError(err)
				return m, nil
			}
			m.log.Debug().Int64("id", it.ID).Msg("added todo")
			m.leaveInput("Added " + quote(it.Text))
			return m, nil
		case modeEditDue:
			due, err := date.Parse(m.input.Value())
			if err != nil {
				m.errline = "Invalid date, use " + date.Layout
				return m, nil
			}
			it, err := m.session.Save(m.draftText, due)
			if err == todo.ErrNotFound {
				// deleted underneath us; the session already reset
				m.leaveInput(friendlyError(err))
				return m, nil
			}
			if err != nil {
				// validation failure keeps the session open
				m.errline = friendlyError(err)
				return m, nil
			}
			m.log.Debug().Int64("id", it.ID).Msg("edited todo")
			m.leaveInput("Saved " + quote(it.Text))
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) leaveInput(status string) {
	m.mode = modeList
	m.input.Blur()
	m.input.SetValue("")
	m.draftText = ""
	m.status = status
	m.errline = ""
	m.refresh()
}

func (m Model) finishDelete(id int64) (tea.Model, tea.Cmd) {
	if !m.deleting[id] {
		return m, nil
	}
	delete(m.deleting, id)
	if err := m.store.Remove(id); err != nil {
		// a clear-all may have raced the timer; already gone is fine
		if err != todo.ErrNotFound {
			m.errline = err.Error()
		}
		return m, nil
	}
	m.session.Removed(id)
	m.log.Debug().Int64("id", id).Msg("removed todo")
	m.status = "Deleted"
	m.refresh()
	return m, nil
}

// cycleFilter walks the date filter through all distinct due dates and
// back to "all".
func (m *Model) cycleFilter() {
	dates := m.store.DistinctDates()
	if len(dates) == 0 {
		m.filterIdx = -1
		m.query.On = date.Date{}
		m.status = "No dates to filter on"
		m.refresh()
		return
	}
	m.filterIdx++
	if m.filterIdx >= len(dates) {
		m.filterIdx = -1
		m.query.On = date.Date{}
		m.status = "Filter: all dates"
	} else {
		m.query.On = dates[m.filterIdx]
		m.status = "Filter: " + m.query.On.String()
	}
	m.refresh()
}

func (m *Model) refresh() {
	m.visible = m.store.Query(m.query)
	m.setCursor(m.cursor)
}

func (m *Model) setCursor(value int) {
	size := len(m.visible)
	m.cursor = clamp(value, 0, max(size-1, 0))
}

func (m Model) atCursor() (todo.Item, bool) {
	if m.cursor >= len(m.visible) {
		return todo.Item{}, false
	}
	return m.visible[m.cursor], true
}

func sortName(s todo.Sort) string {
	switch s {
	case todo.SortDue:
		return "due date"
	case todo.SortText:
		return "text"
	}
	return "none"
}

func friendlyError(err error) string {
	switch err {
	case todo.ErrEmptyText:
		return "Todo text cannot be empty"
	case todo.ErrMissingDue:
		return "A due date is required"
	case todo.ErrNotFound:
		return "That todo no longer exists"
	}
	return err.Error()
}

// quote wraps a todo text for the status line, shortening long ones.
func quote(s string) string {
	if len(s) > 24 {
		s = s[:21] + "…"
	}
	return fmt.Sprintf("%q", s)
}

func clamp(v, low, high int) int {
	return min(high, max(low, v))
}
