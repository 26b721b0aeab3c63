// Package cache keeps fetched cover images on disk so the detail view does
// not re-download a cover every time it opens. Entries are keyed by the
// image URL; the server rotates the URL when a cover changes, so a cached
// entry never goes stale.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
)

// Covers is the local cover image cache.
type Covers struct {
	dir string
}

// NewCovers creates a cover cache rooted at dir.
func NewCovers(dir string) *Covers {
	return &Covers{dir: dir}
}

// Path returns the cache path for a cover URL.
func (c *Covers) Path(url string) string {
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+".img")
}

// Get returns the cached bytes for a cover URL, or false on a miss.
func (c *Covers) Get(url string) ([]byte, bool) {
	data, err := os.ReadFile(c.Path(url))
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

// Store writes cover bytes for a URL. The write goes through a temp file
// and a rename so a crash never leaves a truncated entry behind.
func (c *Covers) Store(url string, r io.Reader) error {
	if err := os.MkdirAll(c.dir, 0750); err != nil {
		return err
	}

	destPath := c.Path(url)
	tmpPath := destPath + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, destPath)
}

// Remove deletes the cached entry for a URL if it exists.
func (c *Covers) Remove(url string) error {
	err := os.Remove(c.Path(url))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
