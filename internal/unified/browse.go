package unified

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/catalogctl/internal/api"
	"github.com/blackwell-systems/catalogctl/internal/catalog"
	"github.com/blackwell-systems/catalogctl/internal/tui"
)

// BrowseModel is the listing state: the fetched record set, a derived
// client-side filter over it, and the entry points into every other view.
// The visible rows live in a bubbles list; its built-in filtering stays
// off because the search term derives the item set from the full fetched
// slice on every change.
type BrowseModel struct {
	deps Deps
	keys tui.BrowserKeys

	search textinput.Model
	list   list.Model

	books     []catalog.Book // full fetched set, never mutated by filtering
	loading   bool
	busy      bool // delete in flight
	searching bool
	confirm   *catalog.Book // pending delete confirmation
	errMsg    string
	flash     string
	activeCmd string // footer shortcut to highlight briefly

	width  int
	height int
}

// NewBrowseModel creates the listing view.
func NewBrowseModel(deps Deps) BrowseModel {
	search := textinput.New()
	search.Placeholder = "search by title, author, or genre"
	search.Prompt = "/ "
	search.CharLimit = 100
	search.Width = 44

	return BrowseModel{
		deps:    deps,
		keys:    tui.NewBrowserKeys(),
		search:  search,
		list:    tui.NewBookList(),
		loading: true,
	}
}

func (m BrowseModel) Init() tea.Cmd {
	return fetchBooksCmd(m.deps.Client, m.listOptions())
}

func (m *BrowseModel) listOptions() api.ListOptions {
	return api.ListOptions{PerPage: m.deps.Cfg.Defaults.PerPage}
}

// SetSize records the window size and resizes the list to the space left
// after the header, search line and footer.
func (m *BrowseModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	lh := h - 12
	if lh < 5 {
		lh = 5
	}
	lw := w - 6
	if lw < 20 {
		lw = 20
	}
	m.list.SetSize(lw, lh)
}

// Flash sets a transient status line shown above the list.
func (m *BrowseModel) Flash(s string) {
	m.flash = s
	m.errMsg = ""
}

// Reload refetches the record set from the server.
func (m *BrowseModel) Reload() tea.Cmd {
	m.loading = true
	return fetchBooksCmd(m.deps.Client, m.listOptions())
}

// filtered recomputes the visible subset from the full fetched set. Always
// restartable: the previous filtered result is never the input.
func (m BrowseModel) filtered() []catalog.Book {
	return catalog.Filter{Search: m.search.Value()}.Apply(m.books)
}

// applyFilter swaps the list's item set for the derived subset.
func (m *BrowseModel) applyFilter() {
	books := m.filtered()
	items := make([]list.Item, len(books))
	for i, b := range books {
		items[i] = tui.BookItem{Book: b}
	}
	m.list.SetItems(items)
	if m.list.Index() >= len(items) {
		m.list.Select(0)
	}
}

func (m BrowseModel) selected() *catalog.Book {
	item, ok := m.list.SelectedItem().(tui.BookItem)
	if !ok {
		return nil
	}
	book := item.Book
	return &book
}

func (m BrowseModel) Update(msg tea.Msg) (BrowseModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case booksLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = userMessage(msg.err, "failed to get books")
			m.books = nil
		} else {
			m.books = msg.books
			m.errMsg = ""
		}
		m.applyFilter()
		m.list.Select(0)
		return m, nil

	case bookDeletedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = userMessage(msg.err, "failed to delete book")
			return m, nil
		}
		m.flash = "book deleted"
		m.errMsg = ""
		return m, m.Reload()

	case tui.ClearActiveCmdMsg:
		m.activeCmd = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m BrowseModel) handleKey(msg tea.KeyMsg) (BrowseModel, tea.Cmd) {
	// Delete confirmation intercepts everything.
	if m.confirm != nil {
		switch msg.String() {
		case "y", "Y", "enter":
			id := m.confirm.ID
			m.confirm = nil
			m.busy = true
			return m, deleteBookCmd(m.deps.Client, id)
		case "n", "N", "esc", "q":
			m.confirm = nil
		}
		return m, nil
	}

	// Search entry mode: keystrokes edit the term; the item set is derived
	// again on every change.
	if m.searching {
		switch msg.String() {
		case "enter", "esc":
			m.searching = false
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.applyFilter()
		return m, cmd
	}

	if m.busy || m.loading {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, func() tea.Msg { return QuitAppMsg{} }

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.flash = ""
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Refresh):
		m.flash = ""
		m.activeCmd = "r"
		return m, tea.Batch(m.Reload(), tui.HighlightCmd())

	case key.Matches(msg, m.keys.Add):
		m.flash = ""
		return m, func() tea.Msg { return NavigateMsg{Target: "add"} }

	case key.Matches(msg, m.keys.Edit):
		if b := m.selected(); b != nil {
			book := *b
			return m, func() tea.Msg { return NavigateMsg{Target: "edit", Book: &book} }
		}
		return m, nil

	case key.Matches(msg, m.keys.View):
		if b := m.selected(); b != nil {
			book := *b
			return m, func() tea.Msg { return NavigateMsg{Target: "detail", Book: &book} }
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if b := m.selected(); b != nil {
			book := *b
			m.confirm = &book
		}
		return m, nil
	}

	// Cursor movement and paging belong to the list.
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m BrowseModel) View() string {
	var b strings.Builder

	books := m.filtered()

	b.WriteString(tui.StyleHeader.Render(fmt.Sprintf("Library Catalog (%d)", len(books))))
	b.WriteString("\n\n")

	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	if m.errMsg != "" {
		b.WriteString(tui.StyleError.Render("✗ " + m.errMsg))
		b.WriteString("\n\n")
	} else if m.flash != "" {
		b.WriteString(tui.StyleAvailable.Render("✓ " + m.flash))
		b.WriteString("\n\n")
	}

	switch {
	case m.loading:
		b.WriteString(tui.StyleHelp.Render("loading books..."))
		b.WriteString("\n")
	case len(books) == 0:
		b.WriteString(tui.StyleHelp.Render("no books found"))
		b.WriteString("\n")
	default:
		b.WriteString(m.list.View())
	}

	b.WriteString("\n")

	if m.confirm != nil {
		b.WriteString(tui.StyleError.Render(fmt.Sprintf("Delete %q? This cannot be undone. ", m.confirm.Title)))
		b.WriteString(tui.StyleHelp.Render("y/n"))
	} else {
		b.WriteString(tui.RenderFooterBar([]tui.ShortcutEntry{
			{Key: "enter", Label: "enter view"},
			{Key: "a", Label: "a add"},
			{Key: "e", Label: "e edit"},
			{Key: "d", Label: "d delete"},
			{Key: "/", Label: "/ search"},
			{Key: "r", Label: "r refresh"},
			{Key: "q", Label: "q quit"},
		}, m.activeCmd))
	}
	b.WriteString("\n")

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
