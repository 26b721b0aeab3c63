package unified

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/catalogctl/internal/api"
	"github.com/blackwell-systems/catalogctl/internal/attach"
	"github.com/blackwell-systems/catalogctl/internal/cache"
	"github.com/blackwell-systems/catalogctl/internal/catalog"
)

// --- Async results ---

type booksLoadedMsg struct {
	books []catalog.Book
	err   error
}

type coverUploadedMsg struct {
	err error
}

type bookSavedMsg struct {
	mode formMode
	err  error
}

type bookDeletedMsg struct {
	id  string
	err error
}

type coverImageMsg struct {
	url  string
	data []byte
}

// --- Commands ---

func fetchBooksCmd(client *api.Client, opts api.ListOptions) tea.Cmd {
	return func() tea.Msg {
		books, err := client.ListBooks(opts)
		return booksLoadedMsg{books: books, err: err}
	}
}

func uploadCoverCmd(s *attach.Session) tea.Cmd {
	return func() tea.Msg {
		return coverUploadedMsg{err: s.Upload()}
	}
}

// saveBookCmd resolves the image session and then writes the record. If the
// write fails after a session upload, the upload is compensated before the
// error is reported.
func saveBookCmd(client *api.Client, s *attach.Session, mode formMode, id string, buf catalog.FormBuffer) tea.Cmd {
	return func() tea.Msg {
		res, err := s.Resolve()
		if err != nil {
			// Upload failed; the record write must not proceed.
			return bookSavedMsg{mode: mode, err: err}
		}

		if mode == formAdd {
			_, err = client.CreateBook(buf.CreateBody(res.URL, res.PublicID))
		} else {
			_, err = client.UpdateBook(id, buf.UpdateBody(res.URL, res.PublicID, res.Remove))
		}
		if err != nil {
			s.Compensate()
			return bookSavedMsg{mode: mode, err: err}
		}
		return bookSavedMsg{mode: mode}
	}
}

func deleteBookCmd(client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		return bookDeletedMsg{id: id, err: client.DeleteBook(id)}
	}
}

// fetchCoverCmd produces cover bytes for inline terminal rendering, from
// the local cache when possible and the image host otherwise. Failures
// degrade to a text-only detail view.
func fetchCoverCmd(covers *cache.Covers, url string) tea.Cmd {
	return func() tea.Msg {
		if covers != nil {
			if data, ok := covers.Get(url); ok {
				return coverImageMsg{url: url, data: data}
			}
		}

		httpClient := &http.Client{Timeout: 10 * time.Second}
		resp, err := httpClient.Get(url)
		if err != nil {
			return coverImageMsg{url: url}
		}
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != http.StatusOK {
			return coverImageMsg{url: url}
		}
		data, err := io.ReadAll(io.LimitReader(resp.Body, attach.MaxFileSize+1))
		if err != nil || len(data) == 0 {
			return coverImageMsg{url: url}
		}
		if len(data) > attach.MaxFileSize {
			// Larger than anything the upload path accepts; do not render
			// or cache a truncated image.
			return coverImageMsg{url: url}
		}
		if covers != nil {
			_ = covers.Store(url, bytes.NewReader(data))
		}
		return coverImageMsg{url: url, data: data}
	}
}

// userMessage converts a failure into the single human-readable string the
// UI displays. Validation failures keep their own wording; API failures use
// the server's message; transport failures get the generic fallback.
func userMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var verr *catalog.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	var aerr *api.APIError
	if errors.As(err, &aerr) {
		return aerr.Message
	}
	var nerr *api.NetworkError
	if errors.As(err, &nerr) {
		return fallback + " — network error"
	}
	return fallback
}
