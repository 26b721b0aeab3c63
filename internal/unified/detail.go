package unified

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/catalogctl/internal/catalog"
	"github.com/blackwell-systems/catalogctl/internal/tui"
)

// DetailModel shows one record in full, with the description and, where
// the terminal can render inline images, the cover.
type DetailModel struct {
	deps Deps
	book catalog.Book

	protocol  tui.TerminalImageProtocol
	coverData []byte

	busy    bool
	confirm bool
	errMsg  string

	width  int
	height int
}

// NewDetailModel creates the detail view for a record.
func NewDetailModel(deps Deps, book catalog.Book) DetailModel {
	return DetailModel{
		deps:     deps,
		book:     book,
		protocol: tui.DetectImageProtocol(),
	}
}

func (m DetailModel) Init() tea.Cmd {
	if m.book.HasImage() && m.protocol != tui.ProtocolNone {
		return fetchCoverCmd(m.deps.Covers, m.book.ImageURL)
	}
	return nil
}

// SetSize records the window size.
func (m *DetailModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case coverImageMsg:
		if msg.url == m.book.ImageURL {
			m.coverData = msg.data
		}
		return m, nil

	case bookDeletedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = userMessage(msg.err, "failed to delete book")
			return m, nil
		}
		return m, func() tea.Msg {
			return NavigateMsg{Target: "list", Status: "book deleted", Reload: true}
		}

	case tea.KeyMsg:
		if m.confirm {
			switch msg.String() {
			case "y", "Y", "enter":
				m.confirm = false
				m.busy = true
				return m, deleteBookCmd(m.deps.Client, m.book.ID)
			case "n", "N", "esc", "q":
				m.confirm = false
			}
			return m, nil
		}

		if m.busy {
			return m, nil
		}

		switch msg.String() {
		case "esc", "q", "backspace":
			return m, func() tea.Msg { return NavigateMsg{Target: "list"} }
		case "e":
			book := m.book
			return m, func() tea.Msg { return NavigateMsg{Target: "edit", Book: &book} }
		case "d":
			m.confirm = true
		case "ctrl+c":
			return m, func() tea.Msg { return QuitAppMsg{} }
		}
	}

	return m, nil
}

func (m DetailModel) View() string {
	label := lipgloss.NewStyle().Foreground(tui.ColorGray).Width(18)

	var b strings.Builder

	b.WriteString(tui.StyleHeader.Render(m.book.Title))
	b.WriteString("\n")
	if m.book.Genre != "" {
		b.WriteString(tui.StyleGenre.Render(m.book.Genre))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString(tui.StyleError.Render("✗ " + m.errMsg))
		b.WriteString("\n\n")
	}

	if len(m.coverData) > 0 {
		b.WriteString(tui.RenderInlineImageBytes(m.coverData, m.protocol))
		b.WriteString("\n\n")
	}

	rows := []struct{ k, v string }{
		{"Author", m.book.Author},
		{"ISBN", m.book.ISBN},
		{"Publication year", fmt.Sprintf("%d", m.book.PublicationYear)},
		{"Available", yesNo(m.book.Available)},
	}
	for _, r := range rows {
		b.WriteString(label.Render(r.k))
		b.WriteString(" ")
		b.WriteString(tui.StyleNormal.Render(r.v))
		b.WriteString("\n")
	}

	if m.book.Description != "" {
		b.WriteString("\n")
		b.WriteString(label.Render("Description"))
		b.WriteString("\n")
		b.WriteString(tui.StyleNormal.Render(m.book.Description))
		b.WriteString("\n")
	}

	b.WriteString("\n")

	if m.confirm {
		b.WriteString(tui.StyleError.Render(fmt.Sprintf("Delete %q? This cannot be undone. ", m.book.Title)))
		b.WriteString(tui.StyleHelp.Render("y/n"))
	} else if m.busy {
		b.WriteString(tui.StyleHelp.Render("deleting..."))
	} else {
		b.WriteString(tui.RenderFooterBar([]tui.ShortcutEntry{
			{Label: "e edit"},
			{Label: "d delete"},
			{Label: "esc back"},
		}, ""))
	}
	b.WriteString("\n")

	outer := lipgloss.NewStyle().Padding(1, 2)
	return outer.Render(tui.StyleBorder.Render(lipgloss.NewStyle().Padding(0, 2).Render(b.String())))
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
