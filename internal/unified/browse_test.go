package unified

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/catalogctl/internal/api"
	"github.com/blackwell-systems/catalogctl/internal/catalog"
	"github.com/blackwell-systems/catalogctl/internal/tui"
)

var browseBooks = []catalog.Book{
	{ID: "b1", Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction"},
	{ID: "b2", Title: "The Left Hand of Darkness", Author: "Ursula K. Le Guin", Genre: "Science Fiction"},
	{ID: "b3", Title: "The Name of the Rose", Author: "Umberto Eco", Genre: "Mystery"},
}

func loadedBrowse(t *testing.T) BrowseModel {
	t.Helper()
	m := NewBrowseModel(testDeps(t, refuseAll(t)))
	m.SetSize(100, 40)
	m, _ = m.Update(booksLoadedMsg{books: browseBooks})
	return m
}

func TestBrowse_LoadSuccess(t *testing.T) {
	m := loadedBrowse(t)
	assert.False(t, m.loading)
	assert.Len(t, m.filtered(), 3)
	assert.Len(t, m.list.Items(), 3)
	assert.Equal(t, 0, m.list.Index())
}

func TestBrowse_LoadFailure(t *testing.T) {
	m := NewBrowseModel(testDeps(t, refuseAll(t)))
	m, _ = m.Update(booksLoadedMsg{err: &api.NetworkError{Err: errors.New("refused")}})
	assert.False(t, m.loading)
	assert.Empty(t, m.books)
	assert.Equal(t, "failed to get books — network error", m.errMsg)
}

func TestBrowse_CursorMovement(t *testing.T) {
	m := loadedBrowse(t)
	m, _ = m.Update(keyMsg("j"))
	m, _ = m.Update(keyMsg("j"))
	assert.Equal(t, 2, m.list.Index())
	m, _ = m.Update(keyMsg("j"))
	assert.Equal(t, 2, m.list.Index(), "cursor stops at the last row")
	m, _ = m.Update(keyMsg("k"))
	assert.Equal(t, 1, m.list.Index())
}

func TestBrowse_SearchNarrowsList(t *testing.T) {
	m := loadedBrowse(t)
	m, _ = m.Update(keyMsg("/"))
	assert.True(t, m.searching)

	for _, r := range "rose" {
		m, _ = m.Update(keyMsg(string(r)))
	}
	filtered := m.filtered()
	require.Len(t, filtered, 1)
	assert.Equal(t, "b3", filtered[0].ID)
	assert.Len(t, m.list.Items(), 1, "the list item set tracks the derived filter")

	m, _ = m.Update(keyMsg("enter"))
	assert.False(t, m.searching)
	assert.Len(t, m.filtered(), 1, "the filter term survives leaving search mode")
}

func TestBrowse_SearchClampsCursor(t *testing.T) {
	m := loadedBrowse(t)
	m, _ = m.Update(keyMsg("j"))
	m, _ = m.Update(keyMsg("j"))
	require.Equal(t, 2, m.list.Index())

	m, _ = m.Update(keyMsg("/"))
	for _, r := range "dune" {
		m, _ = m.Update(keyMsg(string(r)))
	}
	assert.Equal(t, 0, m.list.Index())
}

func TestBrowse_NavigateAdd(t *testing.T) {
	m := loadedBrowse(t)
	_, cmd := m.Update(keyMsg("a"))
	require.NotNil(t, cmd)
	nav, ok := cmd().(NavigateMsg)
	require.True(t, ok)
	assert.Equal(t, "add", nav.Target)
	assert.Nil(t, nav.Book)
}

func TestBrowse_NavigateDetail(t *testing.T) {
	m := loadedBrowse(t)
	m, _ = m.Update(keyMsg("j"))
	_, cmd := m.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	nav, ok := cmd().(NavigateMsg)
	require.True(t, ok)
	assert.Equal(t, "detail", nav.Target)
	require.NotNil(t, nav.Book)
	assert.Equal(t, "b2", nav.Book.ID)
}

func TestBrowse_NavigateEdit(t *testing.T) {
	m := loadedBrowse(t)
	_, cmd := m.Update(keyMsg("e"))
	require.NotNil(t, cmd)
	nav, ok := cmd().(NavigateMsg)
	require.True(t, ok)
	assert.Equal(t, "edit", nav.Target)
	require.NotNil(t, nav.Book)
	assert.Equal(t, "b1", nav.Book.ID)
}

func TestBrowse_EditOnEmptyListDoesNothing(t *testing.T) {
	m := NewBrowseModel(testDeps(t, refuseAll(t)))
	m, _ = m.Update(booksLoadedMsg{books: nil})
	_, cmd := m.Update(keyMsg("e"))
	assert.Nil(t, cmd)
}

func TestBrowse_DeleteNeedsConfirmation(t *testing.T) {
	m := loadedBrowse(t)
	m, cmd := m.Update(keyMsg("d"))
	assert.Nil(t, cmd, "nothing is deleted before the user confirms")
	require.NotNil(t, m.confirm)
	assert.Equal(t, "b1", m.confirm.ID)

	m, cmd = m.Update(keyMsg("n"))
	assert.Nil(t, m.confirm)
	assert.Nil(t, cmd)
}

func TestBrowse_DeleteConfirmed(t *testing.T) {
	m := loadedBrowse(t)
	m, _ = m.Update(keyMsg("d"))
	require.NotNil(t, m.confirm)

	m, cmd := m.Update(keyMsg("y"))
	assert.Nil(t, m.confirm)
	assert.True(t, m.busy)
	assert.NotNil(t, cmd, "confirmation produces the delete command")
}

func TestBrowse_DeleteResultReloads(t *testing.T) {
	m := loadedBrowse(t)
	m.busy = true
	m, cmd := m.Update(bookDeletedMsg{id: "b1"})
	assert.False(t, m.busy)
	assert.Equal(t, "book deleted", m.flash)
	assert.True(t, m.loading)
	assert.NotNil(t, cmd, "a successful delete refetches the record set")
}

func TestBrowse_DeleteFailure(t *testing.T) {
	m := loadedBrowse(t)
	m.busy = true
	m, cmd := m.Update(bookDeletedMsg{id: "b1", err: &api.APIError{Status: 404, Message: "Book not found"}})
	assert.False(t, m.busy)
	assert.Nil(t, cmd)
	assert.Equal(t, "Book not found", m.errMsg)
}

func TestBrowse_KeysBlockedWhileBusy(t *testing.T) {
	m := loadedBrowse(t)
	m.busy = true
	_, cmd := m.Update(keyMsg("a"))
	assert.Nil(t, cmd)
	_, cmd = m.Update(keyMsg("e"))
	assert.Nil(t, cmd)
}

func TestBrowse_RefreshHighlightsFooter(t *testing.T) {
	m := loadedBrowse(t)
	m, cmd := m.Update(keyMsg("r"))
	assert.Equal(t, "r", m.activeCmd)
	assert.True(t, m.loading)
	assert.NotNil(t, cmd)

	m, _ = m.Update(tui.ClearActiveCmdMsg{})
	assert.Empty(t, m.activeCmd)
}

func TestBrowse_QuitKey(t *testing.T) {
	m := loadedBrowse(t)
	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(QuitAppMsg)
	assert.True(t, ok)
}
