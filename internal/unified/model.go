// Package unified is the interactive book manager: one orchestrator model
// that switches between the list, detail and form views, in the style of a
// single cyclic state machine. All remote work runs as bubbletea commands;
// the views stay single-flow by disabling their triggers while a command is
// outstanding.
package unified

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/blackwell-systems/catalogctl/internal/api"
	"github.com/blackwell-systems/catalogctl/internal/cache"
	"github.com/blackwell-systems/catalogctl/internal/config"
)

// View represents the current active view
type View string

const (
	ViewList   View = "list"
	ViewDetail View = "detail"
	ViewForm   View = "form"
)

// Deps are the shared collaborators handed to every view.
type Deps struct {
	Client *api.Client
	Cfg    *config.Config
	Covers *cache.Covers
	Log    logrus.FieldLogger
}

// Model is the orchestrator that manages view switching.
type Model struct {
	deps        Deps
	currentView View
	width       int
	height      int

	browse BrowseModel
	detail DetailModel
	form   FormModel
}

// New creates the orchestrator starting at the list view.
func New(deps Deps) Model {
	return Model{
		deps:        deps,
		currentView: ViewList,
		browse:      NewBrowseModel(deps),
	}
}

func (m Model) Init() tea.Cmd {
	return m.browse.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.updateCurrentView(msg)

	case NavigateMsg:
		return m.handleNavigation(msg)

	case QuitAppMsg:
		return m, tea.Quit

	default:
		return m.updateCurrentView(msg)
	}
}

func (m Model) View() string {
	switch m.currentView {
	case ViewList:
		return m.browse.View()
	case ViewDetail:
		return m.detail.View()
	case ViewForm:
		return m.form.View()
	default:
		return "unknown view"
	}
}

func (m Model) updateCurrentView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentView {
	case ViewList:
		m.browse, cmd = m.browse.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewForm:
		m.form, cmd = m.form.Update(msg)
	}
	return m, cmd
}

func (m Model) handleNavigation(msg NavigateMsg) (tea.Model, tea.Cmd) {
	switch msg.Target {
	case "list":
		m.currentView = ViewList
		m.browse.SetSize(m.width, m.height)
		var cmd tea.Cmd
		if msg.Status != "" {
			m.browse.Flash(msg.Status)
		}
		if msg.Reload {
			cmd = m.browse.Reload()
		}
		return m, cmd

	case "detail":
		if msg.Book == nil {
			return m, nil
		}
		m.detail = NewDetailModel(m.deps, *msg.Book)
		m.detail.SetSize(m.width, m.height)
		m.currentView = ViewDetail
		return m, m.detail.Init()

	case "add":
		m.form = NewFormModel(m.deps, nil)
		m.form.SetSize(m.width, m.height)
		m.currentView = ViewForm
		return m, m.form.Init()

	case "edit":
		if msg.Book == nil {
			return m, nil
		}
		m.form = NewFormModel(m.deps, msg.Book)
		m.form.SetSize(m.width, m.height)
		m.currentView = ViewForm
		return m, m.form.Init()

	default:
		return m, nil
	}
}

// Run launches the interactive book manager.
func Run(deps Deps) error {
	p := tea.NewProgram(New(deps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
