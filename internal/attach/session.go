// Package attach tracks the transient cover image of one edit interaction.
// At most one "live" uploaded image exists per session, and the image host
// never accumulates orphans from abandoned sessions: every path that drops
// a session upload also issues a compensating delete for it.
package attach

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/blackwell-systems/catalogctl/internal/api"
)

// MaxFileSize caps cover uploads, matching the server-side limit.
const MaxFileSize = 5 << 20

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// Service is the slice of the API client the workflow needs.
type Service interface {
	UploadImage(path string) (*api.ImageUpload, error)
	DeleteImage(publicID string) error
}

// Session is the attachment state for one add/edit interaction. It is never
// persisted; it lives exactly as long as the form does. Only one in-flight
// operation touches a Session at a time (the UI disables re-entrant
// triggers), so no locking is needed.
type Session struct {
	svc Service
	log logrus.FieldLogger

	// detach runs best-effort cleanup without the caller waiting on it.
	// Overridden in tests to run inline.
	detach func(func())

	filePath        string // selected locally, candidate for upload
	preview         string // displayable reference: local path or remote URL
	uploadedURL     string
	uploadedID      string
	removeRequested bool
}

// NewSession creates an empty attachment session.
func NewSession(svc Service, log logrus.FieldLogger) *Session {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Session{
		svc:    svc,
		log:    log,
		detach: func(f func()) { go f() },
	}
}

// SeedPreview points the preview at a record's already-persisted image URL
// when entering edit mode. It does not count as a session upload.
func (s *Session) SeedPreview(url string) {
	if url != "" {
		s.preview = url
	}
}

// Preview returns the current displayable reference, or "".
func (s *Session) Preview() string { return s.preview }

// Pending reports a selected file that has not been uploaded yet.
func (s *Session) Pending() bool { return s.filePath != "" && s.uploadedURL == "" }

// Uploaded reports whether this session holds a live upload.
func (s *Session) Uploaded() bool { return s.uploadedID != "" }

// RemovalRequested reports whether the user cleared the image.
func (s *Session) RemovalRequested() bool { return s.removeRequested }

// Select registers a local file as the new cover candidate. A prior session
// upload is deleted remotely first (best-effort, detached); a pending
// removal is superseded. The preview is available immediately, the upload
// itself is a separate step.
func (s *Session) Select(path string) error {
	if err := validateImageFile(path); err != nil {
		return err
	}
	if s.uploadedID != "" {
		s.discard(s.uploadedID)
		s.uploadedURL = ""
		s.uploadedID = ""
	}
	s.removeRequested = false
	s.filePath = path
	s.preview = path
	return nil
}

// Upload pushes the selected file to the image host. On failure the
// selection and preview are cleared, leaving the attachment empty.
func (s *Session) Upload() error {
	if s.filePath == "" {
		return nil
	}
	up, err := s.svc.UploadImage(s.filePath)
	if err != nil {
		s.filePath = ""
		s.preview = ""
		return err
	}
	s.uploadedURL = up.ImageURL
	s.uploadedID = up.ImagePublicID
	return nil
}

// Remove clears the image: any session upload is deleted remotely
// (best-effort), and the removal flag marks intent to null out the record's
// persisted image on the next save.
func (s *Session) Remove() {
	if s.uploadedID != "" {
		s.discard(s.uploadedID)
	}
	s.removeRequested = true
	s.filePath = ""
	s.preview = ""
	s.uploadedURL = ""
	s.uploadedID = ""
}

// Resolution is the save-time outcome: a new image, an explicit removal,
// or no change at all.
type Resolution struct {
	URL      string
	PublicID string
	Remove   bool
}

// Resolve finalizes the attachment before the record write. A file still
// pending when submit fires is uploaded inline; if that upload fails the
// save must not proceed.
func (s *Session) Resolve() (Resolution, error) {
	if s.Pending() {
		if err := s.Upload(); err != nil {
			return Resolution{}, err
		}
	}
	switch {
	case s.uploadedURL != "":
		return Resolution{URL: s.uploadedURL, PublicID: s.uploadedID}, nil
	case s.removeRequested:
		return Resolution{Remove: true}, nil
	default:
		return Resolution{}, nil
	}
}

// Compensate undoes a session upload after the record write failed: the
// just-uploaded image is deleted remotely and the upload state reset, so a
// successful upload never ends up pointing at a nonexistent record. The
// selected file is kept so a resubmit re-uploads it.
func (s *Session) Compensate() {
	if s.uploadedID == "" {
		return
	}
	s.discard(s.uploadedID)
	s.uploadedURL = ""
	s.uploadedID = ""
}

// Discard is the cancel path: delete any session upload and drop all
// transient state.
func (s *Session) Discard() {
	if s.uploadedID != "" {
		s.discard(s.uploadedID)
	}
	s.filePath = ""
	s.preview = ""
	s.uploadedURL = ""
	s.uploadedID = ""
	s.removeRequested = false
}

// discard deletes an uploaded image as a detached task. The caller never
// waits on it and never sees its failure; the operation it cleans up after
// already completed or failed for a more relevant reason.
func (s *Session) discard(publicID string) {
	s.detach(func() {
		if err := s.svc.DeleteImage(publicID); err != nil {
			s.log.WithError(err).WithField("public_id", publicID).
				Warn("best-effort image delete failed")
		}
	})
}

func validateImageFile(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("reading image: %w", err)
	}
	if fi.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if fi.Size() > MaxFileSize {
		return fmt.Errorf("image must be smaller than %dMB", MaxFileSize>>20)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("reading image: %w", err)
	}
	defer f.Close()
	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		return fmt.Errorf("reading image: %w", err)
	}
	if ct := http.DetectContentType(head[:n]); !allowedTypes[ct] {
		return fmt.Errorf("unsupported image type %s (use jpeg, png, webp or gif)", ct)
	}
	return nil
}
