package tui

import "github.com/charmbracelet/bubbles/key"

// BrowserKeys are the bindings for the book list view.
type BrowserKeys struct {
	Quit    key.Binding
	View    key.Binding
	Add     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Search  key.Binding
	Refresh key.Binding
}

// NewBrowserKeys creates the list view bindings.
func NewBrowserKeys() BrowserKeys {
	return BrowserKeys{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		View: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
	}
}
