package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/shelf/internal/catalog"
	"github.com/desertthunder/shelf/internal/models"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	BrowseView ViewState = iota
	ConfirmRemoveView
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Model represents the TUI application state.
type Model struct {
	library *catalog.Library
	view    ViewState
	list    list.Model
	pending *models.Book
	notice  string
	failed  bool
	seq     int
	help    help.Model
	keys    keyMap
}

// NewModel creates a TUI model browsing library.
func NewModel(library *catalog.Library) *Model {
	l := list.New(toItems(library.List()), list.NewDefaultDelegate(), defaultWidth, defaultHeight-4)
	l.Title = listTitle(library)
	l.SetShowHelp(false)
	l.SetStatusBarItemName("book", "books")

	return &Model{
		library: library,
		view:    BrowseView,
		list:    l,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init implements [tea.Model]. The catalog is already loaded so there is nothing to fetch.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-4)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.view == ConfirmRemoveView {
			return m.handleConfirmKeys(msg)
		}
		return m.handleBrowseKeys(msg)

	case Msg:
		return m.handleMsg(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case ConfirmRemoveView:
		return m.renderConfirm()
	default:
		return m.renderBrowse()
	}
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// keys belong to the filter input while it is open
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggle):
		return m, m.toggleSelected()
	case key.Matches(msg, m.keys.remove):
		if book, ok := m.selected(); ok {
			m.pending = &book
			m.view = ConfirmRemoveView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		book := *m.pending
		m.pending = nil
		m.view = BrowseView
		removed, err := m.library.Remove(book.ID)
		return m, func() tea.Msg { return bookChangedMsg("removed", removed, err) }
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.quit):
		m.pending = nil
		m.view = BrowseView
	}
	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgBookChanged:
		change := msg.data.(bookChange)
		m.seq++
		if change.err != nil {
			m.failed = true
			m.notice = fmt.Sprintf("Error: %v", change.err)
		} else {
			m.failed = false
			m.notice = fmt.Sprintf("%s %s", change.action, change.book)
		}
		return m, tea.Batch(m.refresh(), expireNotice(m.seq))

	case MsgNoticeExpired:
		if seq, ok := msg.data.(int); ok && seq == m.seq {
			m.notice = ""
			m.failed = false
		}
	}
	return m, nil
}

// toggleSelected flips the status of the selected book through the library.
func (m *Model) toggleSelected() tea.Cmd {
	book, ok := m.selected()
	if !ok {
		return nil
	}

	current, err := m.library.Get(book.ID)
	if err != nil {
		return func() tea.Msg { return bookChangedMsg("updated", book, err) }
	}

	updated, err := m.library.ChangeStatus(current.ID, current.Status.Toggle().String())
	return func() tea.Msg { return bookChangedMsg("updated", updated, err) }
}

func listTitle(library *catalog.Library) string {
	return fmt.Sprintf("Library: %d books (%s)", library.Len(), library.Describe())
}

func (m *Model) selected() (models.Book, bool) {
	item, ok := m.list.SelectedItem().(bookItem)
	if !ok {
		return models.Book{}, false
	}
	return item.book, true
}

// refresh reloads the list items from the library, keeping the cursor in range.
func (m *Model) refresh() tea.Cmd {
	index := m.list.Index()
	m.list.Title = listTitle(m.library)
	cmd := m.list.SetItems(toItems(m.library.List()))
	if n := len(m.list.Items()); n > 0 {
		m.list.Select(min(index, n-1))
	}
	return cmd
}

func (m *Model) renderBrowse() string {
	footer := m.help.ShortHelpView(m.keys.ShortHelp())
	if m.notice != "" {
		if m.failed {
			footer = Error(m.notice) + "\n" + footer
		} else {
			footer = Success(m.notice) + "\n" + footer
		}
	}
	return fmt.Sprintf("%s\n\n%s", m.list.View(), footer)
}

func (m *Model) renderConfirm() string {
	title := Title(fmt.Sprintf("Remove '%s'?", m.pending.Title))
	info := fmt.Sprintf("\n%s\n", m.pending)

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no})
	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}
