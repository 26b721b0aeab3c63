package unified

import "github.com/blackwell-systems/catalogctl/internal/catalog"

// NavigateMsg is emitted when a view wants to hand control to another view.
// Transitions are driven only by explicit user actions.
type NavigateMsg struct {
	Target string // "list", "detail", "add", "edit"
	Book   *catalog.Book
	Status string // flash message shown by the list view
	Reload bool   // refetch the record set on arrival
}

// QuitAppMsg is emitted when the entire application should quit
type QuitAppMsg struct{}
