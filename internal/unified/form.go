package unified

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/catalogctl/internal/attach"
	"github.com/blackwell-systems/catalogctl/internal/catalog"
	"github.com/blackwell-systems/catalogctl/internal/tui"
)

type formMode int

const (
	formAdd formMode = iota
	formEdit
)

const (
	fieldTitle = iota
	fieldAuthor
	fieldISBN
	fieldYear
	fieldGenre
	fieldDescription
	fieldCover
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Author", "ISBN", "Year", "Genre", "Description", "Cover"}

// FormModel is the add/edit state: an owned form buffer behind textinputs,
// plus the image attachment session for this interaction. Submit and cover
// selection are disabled while an upload or save is in flight, so only one
// operation ever touches the session at a time.
type FormModel struct {
	deps Deps
	mode formMode

	bookID  string
	inputs  []textinput.Model
	focused int

	available bool
	session   *attach.Session
	protocol  tui.TerminalImageProtocol

	uploading  bool
	saving     bool
	confirming bool
	errMsg     string

	width  int
	height int
}

// NewFormModel creates the form view. A nil book means add mode; otherwise
// the buffer is populated from the record and the preview seeded from its
// persisted image.
func NewFormModel(deps Deps, book *catalog.Book) FormModel {
	m := FormModel{
		deps:     deps,
		mode:     formAdd,
		inputs:   make([]textinput.Model, fieldCount),
		session:  attach.NewSession(deps.Client, deps.Log),
		protocol: tui.DetectImageProtocol(),
	}

	var buf catalog.FormBuffer
	if book != nil {
		m.mode = formEdit
		m.bookID = book.ID
		buf = catalog.FormFromBook(*book)
		m.available = book.Available
		m.session.SeedPreview(book.ImageURL)
	}

	const fieldWidth = 42

	placeholders := [fieldCount]string{
		"Book title", "Author name", "978-...", "1965", "Genre",
		"Optional description", "path to a local image file",
	}
	values := [fieldCount]string{
		buf.Title, buf.Author, buf.ISBN, buf.PublicationYear, buf.Genre,
		buf.Description, "",
	}

	for i := 0; i < fieldCount; i++ {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.SetValue(values[i])
		in.CharLimit = 200
		in.Width = fieldWidth
		in.Prompt = "│ "
		m.inputs[i] = in
	}
	m.inputs[fieldYear].CharLimit = 4
	m.inputs[fieldYear].Width = 8
	m.inputs[fieldTitle].Focus()

	return m
}

func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize records the window size.
func (m *FormModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m FormModel) busy() bool { return m.uploading || m.saving }

// buffer snapshots the inputs into an owned form value.
func (m FormModel) buffer() catalog.FormBuffer {
	return catalog.FormBuffer{
		Title:           strings.TrimSpace(m.inputs[fieldTitle].Value()),
		Author:          strings.TrimSpace(m.inputs[fieldAuthor].Value()),
		ISBN:            strings.TrimSpace(m.inputs[fieldISBN].Value()),
		PublicationYear: strings.TrimSpace(m.inputs[fieldYear].Value()),
		Genre:           strings.TrimSpace(m.inputs[fieldGenre].Value()),
		Description:     strings.TrimSpace(m.inputs[fieldDescription].Value()),
		Available:       m.available,
	}
}

func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case coverUploadedMsg:
		m.uploading = false
		if msg.err != nil {
			m.errMsg = userMessage(msg.err, "failed to upload image")
		} else {
			m.errMsg = ""
		}
		return m, nil

	case bookSavedMsg:
		m.saving = false
		if msg.err != nil {
			fallback := "failed to add book"
			if msg.mode == formEdit {
				fallback = "failed to update book"
			}
			m.errMsg = userMessage(msg.err, fallback)
			return m, nil
		}
		status := "book added"
		if msg.mode == formEdit {
			status = "book updated"
		}
		return m, func() tea.Msg {
			return NavigateMsg{Target: "list", Status: status, Reload: true}
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	cmd := m.updateInputs(msg)
	return m, cmd
}

func (m FormModel) handleKey(msg tea.KeyMsg) (FormModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, func() tea.Msg { return QuitAppMsg{} }

	case "esc":
		if m.confirming {
			m.confirming = false
			return m, nil
		}
		if m.busy() {
			return m, nil
		}
		// Cancel compensates any session upload before leaving.
		m.session.Discard()
		return m, func() tea.Msg { return NavigateMsg{Target: "list"} }

	case "enter":
		if m.busy() {
			return m, nil
		}
		if m.confirming {
			return m.submit()
		}
		if m.focused == fieldCover {
			return m.selectCover()
		}
		m.confirming = true
		return m, nil

	case "y", "Y":
		if m.confirming {
			return m.submit()
		}

	case "n", "N":
		if m.confirming {
			m.confirming = false
			return m, nil
		}

	case "ctrl+a":
		if !m.confirming {
			m.available = !m.available
			return m, nil
		}

	case "ctrl+x":
		if !m.confirming && !m.busy() {
			m.session.Remove()
			m.inputs[fieldCover].SetValue("")
			m.errMsg = ""
			return m, nil
		}

	case "tab", "shift+tab", "up", "down":
		if m.confirming {
			return m, nil
		}
		if msg.String() == "up" || msg.String() == "shift+tab" {
			m.focused--
		} else {
			m.focused++
		}
		if m.focused < 0 {
			m.focused = fieldCount - 1
		} else if m.focused >= fieldCount {
			m.focused = 0
		}
		cmds := make([]tea.Cmd, 0, fieldCount)
		for i := range m.inputs {
			if i == m.focused {
				cmds = append(cmds, m.inputs[i].Focus())
			} else {
				m.inputs[i].Blur()
			}
		}
		return m, tea.Batch(cmds...)
	}

	if m.confirming {
		return m, nil
	}
	cmd := m.updateInputs(msg)
	return m, cmd
}

// selectCover registers the typed path as the cover candidate and starts
// the upload. The preview is available immediately; the upload runs as its
// own command so the form stays responsive.
func (m FormModel) selectCover() (FormModel, tea.Cmd) {
	path := strings.TrimSpace(m.inputs[fieldCover].Value())
	if path == "" {
		m.confirming = true
		return m, nil
	}
	if err := m.session.Select(path); err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	m.errMsg = ""
	m.uploading = true
	return m, uploadCoverCmd(m.session)
}

// submit validates the buffer and, only if it passes, resolves the image
// and writes the record. Validation failures never reach the network.
func (m FormModel) submit() (FormModel, tea.Cmd) {
	m.confirming = false
	buf := m.buffer()
	if err := buf.Validate(time.Now()); err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	m.errMsg = ""
	m.saving = true
	return m, saveBookCmd(m.deps.Client, m.session, m.mode, m.bookID, buf)
}

func (m *FormModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func (m FormModel) View() string {
	outerStyle := lipgloss.NewStyle().Padding(2, 4)

	sepStyle := lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#444444"})
	formLabel := lipgloss.NewStyle().
		Foreground(tui.ColorGray).
		Width(13).
		Align(lipgloss.Right).
		PaddingRight(1)
	formLabelActive := lipgloss.NewStyle().
		Foreground(tui.ColorYellow).
		Bold(true).
		Width(13).
		Align(lipgloss.Right).
		PaddingRight(1)

	const w = 58
	sep := sepStyle.Render(strings.Repeat("─", w))

	var b strings.Builder

	// ── Header ──
	title := "Add Book"
	if m.mode == formEdit {
		title = "Edit Book"
		b.WriteString(tui.StyleHeader.Render(title))
		b.WriteString("\n")
		b.WriteString(tui.StyleHelp.Render(m.bookID))
	} else {
		b.WriteString(tui.StyleHeader.Render(title))
	}
	b.WriteString("\n\n")
	b.WriteString(sep)
	b.WriteString("\n\n")

	// ── Error ──
	if m.errMsg != "" {
		b.WriteString(tui.StyleError.Render("✗ " + m.errMsg))
		b.WriteString("\n\n")
	}

	// ── Form fields ──
	for i := 0; i < fieldCount; i++ {
		if i == m.focused && !m.confirming {
			b.WriteString(formLabelActive.Render("› " + fieldLabels[i]))
		} else {
			b.WriteString(formLabel.Render(fieldLabels[i]))
		}
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n\n")
	}

	// ── Availability toggle ──
	mark := "[ ]"
	if m.available {
		mark = "[x]"
	}
	b.WriteString(formLabel.Render("Available"))
	b.WriteString(tui.StyleNormal.Render(mark))
	b.WriteString(tui.StyleHelp.Render("  ctrl+a to toggle"))
	b.WriteString("\n\n")

	// ── Cover state ──
	b.WriteString(m.coverStatus(formLabel))

	b.WriteString(sep)
	b.WriteString("\n")

	// ── Footer ──
	switch {
	case m.confirming:
		b.WriteString(tui.StyleHighlight.Render("  Save changes? "))
		b.WriteString(tui.StyleHelp.Render("Y/n"))
	case m.uploading:
		b.WriteString(tui.StyleHelp.Render("  uploading image..."))
	case m.saving:
		b.WriteString(tui.StyleHelp.Render("  saving..."))
	default:
		b.WriteString(tui.RenderFooterBar([]tui.ShortcutEntry{
			{Label: "tab/↑↓ navigate"},
			{Label: "enter submit"},
			{Label: "ctrl+x remove image"},
			{Label: "esc cancel"},
		}, ""))
	}
	b.WriteString("\n")

	innerPadding := lipgloss.NewStyle().Padding(0, 2, 0, 1)
	return outerStyle.Render(tui.StyleBorder.Render(innerPadding.Render(b.String())))
}

func (m FormModel) coverStatus(label lipgloss.Style) string {
	var b strings.Builder
	switch {
	case m.session.RemovalRequested():
		b.WriteString(label.Render(""))
		b.WriteString(tui.StyleError.Render("image will be removed when you save"))
		b.WriteString("\n\n")
	case m.session.Uploaded():
		b.WriteString(label.Render(""))
		b.WriteString(tui.StyleAvailable.Render("✓ image uploaded"))
		b.WriteString("\n\n")
	case m.session.Preview() != "":
		b.WriteString(label.Render(""))
		b.WriteString(tui.StyleHelp.Render(fmt.Sprintf("cover: %s", m.session.Preview())))
		b.WriteString("\n\n")
	}
	// A freshly selected local file can be previewed before the upload
	// finishes, where the terminal supports inline images.
	if m.session.Pending() {
		if img := tui.RenderInlineImage(m.session.Preview(), m.protocol); img != "" {
			b.WriteString(label.Render(""))
			b.WriteString(img)
			b.WriteString("\n\n")
		}
	}
	return b.String()
}
