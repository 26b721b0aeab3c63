package api

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// ImageUpload is the image host's handle for an uploaded cover: the public
// URL to display it and the opaque identifier needed to delete it later.
type ImageUpload struct {
	ImageURL      string `json:"image_url"`
	ImagePublicID string `json:"image_public_id"`
}

// UploadImage sends the file as a multipart upload. The server proxies it
// to the external image host and returns the hosted URL plus public id.
func (c *Client) UploadImage(path string) (*ImageUpload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.url("upload-image")+"/", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var up ImageUpload
	if err := jsonDecode(resp.Body, &up); err != nil {
		return nil, err
	}
	return &up, nil
}

// DeleteImage removes a previously uploaded image at the host. Callers
// treat this as best-effort cleanup; failures are logged, never surfaced.
func (c *Client) DeleteImage(publicID string) error {
	body := map[string]string{"public_id": publicID}
	return c.doJSON(http.MethodDelete, c.url("delete-image")+"/", body, nil)
}
