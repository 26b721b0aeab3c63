package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/catalogctl/internal/catalog"
)

// BookItem wraps a record for display in the browse list.
type BookItem struct {
	Book catalog.Book
}

// FilterValue returns a string used for filtering in the list
func (b BookItem) FilterValue() string {
	return fmt.Sprintf("%s %s %s", b.Book.Title, b.Book.Author, b.Book.Genre)
}

// BookDelegate renders one record as a single fixed-width row: title,
// author, year, then genre tag, availability mark and a cover indicator.
type BookDelegate struct{}

func (d BookDelegate) Height() int  { return 1 }
func (d BookDelegate) Spacing() int { return 0 }
func (d BookDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

func (d BookDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	bookItem, ok := item.(BookItem)
	if !ok {
		return
	}
	b := bookItem.Book

	var s strings.Builder

	title := fmt.Sprintf("%-34.34s", b.Title)
	author := fmt.Sprintf("%-22.22s", b.Author)
	year := "    "
	if b.PublicationYear != 0 {
		year = fmt.Sprintf("%4d", b.PublicationYear)
	}

	genre := ""
	if b.Genre != "" {
		genre = " " + StyleGenre.Render("["+b.Genre+"]")
	}
	avail := " " + StyleHelp.Render("·")
	if b.Available {
		avail = " " + StyleAvailable.Render("✓")
	}
	cover := ""
	if b.HasImage() {
		cover = " " + StyleHelp.Render("◆")
	}

	if index == m.Index() {
		s.WriteString(StyleHighlight.Render("› " + title + " " + author + " " + year))
	} else {
		s.WriteString("  " + StyleNormal.Render(title) + " " + author + " " + year)
	}
	s.WriteString(genre + avail + cover)

	_, _ = fmt.Fprint(w, s.String())
}

// NewBookList creates the browse list. The caller derives its own filter
// and swaps the item set wholesale, so the list's built-in filtering is
// disabled, as are its quit keys; only cursor movement and paging remain.
func NewBookList() list.Model {
	l := list.New(nil, BookDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.Styles.PaginationStyle = StyleHelp
	return l
}
