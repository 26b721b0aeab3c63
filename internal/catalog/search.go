package catalog

import (
	"strings"

	"github.com/samber/lo"
)

// Filter narrows a fetched record set. Filtering is purely derived: Apply
// never mutates its input, and always recomputes from the full set, so
// repeated application with the same term is idempotent.
type Filter struct {
	Search string // matches title, author, or genre
}

// Apply returns the subset of books matching the search term.
// An empty term returns the full set unchanged.
func (f Filter) Apply(books []Book) []Book {
	if f.Search == "" {
		return books
	}
	return lo.Filter(books, func(b Book, _ int) bool {
		return matchesSearch(b, f.Search)
	})
}

func matchesSearch(b Book, q string) bool {
	q = strings.ToLower(q)
	if strings.Contains(strings.ToLower(b.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(b.Author), q) {
		return true
	}
	return strings.Contains(strings.ToLower(b.Genre), q)
}
