package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cover.jpg")
	require.NoError(t, os.WriteFile(path, []byte("fake image bytes"), 0o644))

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/upload-image/", r.URL.Path)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "cover.jpg", header.Filename)
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "fake image bytes", string(data))

		io.WriteString(w, `{"image_url":"https://img.example/cover.jpg","image_public_id":"library_books/cover"}`)
	})

	up, err := c.UploadImage(path)
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/cover.jpg", up.ImageURL)
	assert.Equal(t, "library_books/cover", up.ImagePublicID)
}

func TestUploadImage_MissingFile(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be sent for an unreadable file")
	})
	_, err := c.UploadImage(filepath.Join(t.TempDir(), "absent.png"))
	require.Error(t, err)
}

func TestDeleteImage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/delete-image/", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "library_books/cover", body["public_id"])
		w.WriteHeader(http.StatusOK)
	})
	require.NoError(t, c.DeleteImage("library_books/cover"))
}
