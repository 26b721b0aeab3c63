package attach

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/catalogctl/internal/api"
)

// fakeService records the order of host operations so the tests can assert
// causal ordering (delete the old upload before uploading its replacement).
type fakeService struct {
	calls     []string
	uploadN   int
	uploadErr error
	deleteErr error
}

func (f *fakeService) UploadImage(path string) (*api.ImageUpload, error) {
	f.calls = append(f.calls, "upload:"+filepath.Base(path))
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	f.uploadN++
	return &api.ImageUpload{
		ImageURL:      fmt.Sprintf("https://img.example/%d.png", f.uploadN),
		ImagePublicID: fmt.Sprintf("library_books/p%d", f.uploadN),
	}, nil
}

func (f *fakeService) DeleteImage(publicID string) error {
	f.calls = append(f.calls, "delete:"+publicID)
	return f.deleteErr
}

// pngHeader is the PNG magic that http.DetectContentType keys on.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func writePNG(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, pngHeader, 0o644))
	return path
}

func newTestSession(svc Service) *Session {
	log := logrus.New()
	log.SetOutput(io.Discard)
	s := NewSession(svc, log)
	s.detach = func(f func()) { f() } // run cleanup inline so calls are observable
	return s
}

func TestSelectAndUpload(t *testing.T) {
	svc := &fakeService{}
	s := newTestSession(svc)
	path := writePNG(t, "a.png")

	require.NoError(t, s.Select(path))
	assert.True(t, s.Pending())
	assert.Equal(t, path, s.Preview())

	require.NoError(t, s.Upload())
	assert.False(t, s.Pending())
	assert.True(t, s.Uploaded())
	assert.Equal(t, []string{"upload:a.png"}, svc.calls)

	res, err := s.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/1.png", res.URL)
	assert.Equal(t, "library_books/p1", res.PublicID)
	assert.False(t, res.Remove)
}

func TestSelect_RejectsNonImage(t *testing.T) {
	svc := &fakeService{}
	s := newTestSession(svc)
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text, not an image"), 0o644))

	err := s.Select(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported image type")
	assert.False(t, s.Pending())
	assert.Empty(t, svc.calls)
}

func TestSelect_RejectsOversize(t *testing.T) {
	svc := &fakeService{}
	s := newTestSession(svc)
	path := filepath.Join(t.TempDir(), "huge.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	_, err = f.Write(pngHeader)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(MaxFileSize+1))
	require.NoError(t, f.Close())

	err = s.Select(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smaller than")
}

func TestSelect_RejectsMissingFile(t *testing.T) {
	s := newTestSession(&fakeService{})
	require.Error(t, s.Select(filepath.Join(t.TempDir(), "absent.png")))
}

// Replacing an uploaded cover deletes the old one at the host before the
// replacement is uploaded.
func TestSelect_ReplacementDeletesPriorUpload(t *testing.T) {
	svc := &fakeService{}
	s := newTestSession(svc)

	require.NoError(t, s.Select(writePNG(t, "a.png")))
	require.NoError(t, s.Upload())
	require.NoError(t, s.Select(writePNG(t, "b.png")))
	require.NoError(t, s.Upload())

	assert.Equal(t, []string{
		"upload:a.png",
		"delete:library_books/p1",
		"upload:b.png",
	}, svc.calls)

	res, err := s.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "library_books/p2", res.PublicID)
}

func TestUpload_FailureClearsSelection(t *testing.T) {
	svc := &fakeService{uploadErr: errors.New("host down")}
	s := newTestSession(svc)

	require.NoError(t, s.Select(writePNG(t, "a.png")))
	require.Error(t, s.Upload())
	assert.False(t, s.Pending())
	assert.False(t, s.Uploaded())
	assert.Empty(t, s.Preview())

	res, err := s.Resolve()
	require.NoError(t, err)
	assert.Equal(t, Resolution{}, res)
}

func TestResolve_UploadsPendingFileInline(t *testing.T) {
	svc := &fakeService{}
	s := newTestSession(svc)
	require.NoError(t, s.Select(writePNG(t, "a.png")))

	res, err := s.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "library_books/p1", res.PublicID)
	assert.Equal(t, []string{"upload:a.png"}, svc.calls)
}

func TestResolve_PendingUploadFailureAbortsSave(t *testing.T) {
	svc := &fakeService{uploadErr: errors.New("host down")}
	s := newTestSession(svc)
	require.NoError(t, s.Select(writePNG(t, "a.png")))

	_, err := s.Resolve()
	require.Error(t, err)
}

func TestResolve_EmptySession(t *testing.T) {
	s := newTestSession(&fakeService{})
	res, err := s.Resolve()
	require.NoError(t, err)
	assert.Equal(t, Resolution{}, res)
}

func TestRemove(t *testing.T) {
	svc := &fakeService{}
	s := newTestSession(svc)
	s.SeedPreview("https://img.example/persisted.jpg")

	s.Remove()
	assert.True(t, s.RemovalRequested())
	assert.Empty(t, s.Preview())
	assert.Empty(t, svc.calls, "no session upload, nothing to delete at the host")

	res, err := s.Resolve()
	require.NoError(t, err)
	assert.True(t, res.Remove)
}

func TestRemove_DeletesSessionUpload(t *testing.T) {
	svc := &fakeService{}
	s := newTestSession(svc)
	require.NoError(t, s.Select(writePNG(t, "a.png")))
	require.NoError(t, s.Upload())

	s.Remove()
	assert.Equal(t, []string{"upload:a.png", "delete:library_books/p1"}, svc.calls)
	assert.True(t, s.RemovalRequested())
	assert.False(t, s.Uploaded())
}

// A new selection supersedes a pending removal.
func TestSelect_ClearsRemovalRequest(t *testing.T) {
	s := newTestSession(&fakeService{})
	s.Remove()
	require.NoError(t, s.Select(writePNG(t, "a.png")))
	assert.False(t, s.RemovalRequested())
}

func TestCompensate(t *testing.T) {
	svc := &fakeService{}
	s := newTestSession(svc)
	path := writePNG(t, "a.png")
	require.NoError(t, s.Select(path))
	require.NoError(t, s.Upload())

	s.Compensate()
	assert.Equal(t, []string{"upload:a.png", "delete:library_books/p1"}, svc.calls)
	assert.False(t, s.Uploaded())
	assert.Equal(t, path, s.Preview(), "selection survives so a resubmit re-uploads")
	assert.True(t, s.Pending())

	// Calling again must not issue a second delete.
	s.Compensate()
	assert.Len(t, svc.calls, 2)
}

func TestCompensate_NothingUploaded(t *testing.T) {
	svc := &fakeService{}
	s := newTestSession(svc)
	s.Compensate()
	assert.Empty(t, svc.calls)
}

// Resubmit after a failed record write uploads the kept file again.
func TestCompensateThenResolve_ReUploads(t *testing.T) {
	svc := &fakeService{}
	s := newTestSession(svc)
	require.NoError(t, s.Select(writePNG(t, "a.png")))
	require.NoError(t, s.Upload())
	s.Compensate()

	res, err := s.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "library_books/p2", res.PublicID)
	assert.Equal(t, []string{
		"upload:a.png",
		"delete:library_books/p1",
		"upload:a.png",
	}, svc.calls)
}

func TestDiscard(t *testing.T) {
	svc := &fakeService{}
	s := newTestSession(svc)
	require.NoError(t, s.Select(writePNG(t, "a.png")))
	require.NoError(t, s.Upload())

	s.Discard()
	assert.Equal(t, []string{"upload:a.png", "delete:library_books/p1"}, svc.calls)
	assert.False(t, s.Uploaded())
	assert.False(t, s.Pending())
	assert.Empty(t, s.Preview())
	assert.False(t, s.RemovalRequested())
}

func TestDiscard_EmptySessionIsNoop(t *testing.T) {
	svc := &fakeService{}
	s := newTestSession(svc)
	s.Discard()
	assert.Empty(t, svc.calls)
}

// Delete failures at the host are swallowed: cleanup is best-effort.
func TestDiscard_DeleteFailureIsSilent(t *testing.T) {
	svc := &fakeService{deleteErr: errors.New("host down")}
	s := newTestSession(svc)
	require.NoError(t, s.Select(writePNG(t, "a.png")))
	require.NoError(t, s.Upload())

	s.Discard()
	assert.False(t, s.Uploaded())
}

func TestSeedPreview_DoesNotCountAsUpload(t *testing.T) {
	s := newTestSession(&fakeService{})
	s.SeedPreview("https://img.example/persisted.jpg")
	assert.Equal(t, "https://img.example/persisted.jpg", s.Preview())
	assert.False(t, s.Uploaded())
	assert.False(t, s.Pending())

	res, err := s.Resolve()
	require.NoError(t, err)
	assert.Equal(t, Resolution{}, res, "a seeded preview never touches the payload")
}
