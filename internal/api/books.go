package api

import (
	"encoding/json"
	"net/http"
	neturl "net/url"
	"strconv"

	"github.com/blackwell-systems/catalogctl/internal/catalog"
)

// ListOptions are passed through to the server's pagination query.
// Zero values mean "server default".
type ListOptions struct {
	Page    int
	PerPage int
}

// ListBooks fetches the record set. The server may answer with a bare array
// or with an envelope holding the array under "books"; both normalize to a
// slice, and a malformed shape normalizes to an empty one rather than an
// error.
func (c *Client) ListBooks(opts ListOptions) ([]catalog.Book, error) {
	u := c.url("books") + "/"
	q := neturl.Values{}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(opts.PerPage))
	}
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	data, err := c.doRaw(http.MethodGet, u)
	if err != nil {
		return nil, err
	}
	return decodeBooks(data), nil
}

func decodeBooks(data []byte) []catalog.Book {
	var env struct {
		Books []catalog.Book `json:"books"`
	}
	if err := json.Unmarshal(data, &env); err == nil && env.Books != nil {
		return env.Books
	}
	var list []catalog.Book
	if err := json.Unmarshal(data, &list); err == nil && list != nil {
		return list
	}
	return []catalog.Book{}
}

// GetBook fetches a single record by identifier.
func (c *Client) GetBook(id string) (*catalog.Book, error) {
	var b catalog.Book
	if err := c.doJSON(http.MethodGet, c.url("books", id), nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBook persists a new record. The payload carries no identifier; the
// server assigns one and returns the stored record.
func (c *Client) CreateBook(payload map[string]any) (*catalog.Book, error) {
	var b catalog.Book
	if err := c.doJSON(http.MethodPost, c.url("books")+"/", payload, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateBook applies a partial payload to an existing record. Keys absent
// from the payload are left unchanged server-side; explicit nulls clear.
func (c *Client) UpdateBook(id string, payload map[string]any) (*catalog.Book, error) {
	var b catalog.Book
	if err := c.doJSON(http.MethodPut, c.url("books", id), payload, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// DeleteBook removes a record by identifier.
func (c *Client) DeleteBook(id string) error {
	return c.doJSON(http.MethodDelete, c.url("books", id), nil, nil)
}
