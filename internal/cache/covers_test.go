package cache

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestStoreAndGet(t *testing.T) {
	c := NewCovers(filepath.Join(t.TempDir(), "covers"))
	url := "https://img.example/dune.jpg"

	if _, ok := c.Get(url); ok {
		t.Fatal("hit before anything was stored")
	}
	if err := c.Store(url, bytes.NewReader([]byte("image bytes"))); err != nil {
		t.Fatalf("Store: %v", err)
	}
	data, ok := c.Get(url)
	if !ok {
		t.Fatal("miss after store")
	}
	if string(data) != "image bytes" {
		t.Errorf("data = %q", data)
	}
}

func TestDistinctURLsDoNotCollide(t *testing.T) {
	c := NewCovers(t.TempDir())
	if err := c.Store("https://img.example/a.jpg", bytes.NewReader([]byte("a"))); err != nil {
		t.Fatal(err)
	}
	if err := c.Store("https://img.example/b.jpg", bytes.NewReader([]byte("b"))); err != nil {
		t.Fatal(err)
	}
	a, _ := c.Get("https://img.example/a.jpg")
	b, _ := c.Get("https://img.example/b.jpg")
	if string(a) != "a" || string(b) != "b" {
		t.Errorf("entries collided: %q %q", a, b)
	}
}

func TestStoreLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	c := NewCovers(dir)
	if err := c.Store("https://img.example/a.jpg", bytes.NewReader([]byte("a"))); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestRemove(t *testing.T) {
	c := NewCovers(t.TempDir())
	url := "https://img.example/a.jpg"
	if err := c.Store(url, bytes.NewReader([]byte("a"))); err != nil {
		t.Fatal(err)
	}
	if err := c.Remove(url); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok := c.Get(url); ok {
		t.Error("entry survived Remove")
	}
	// Removing again must not fail.
	if err := c.Remove(url); err != nil {
		t.Errorf("Remove on absent entry: %v", err)
	}
}

func TestEmptyEntryIsAMiss(t *testing.T) {
	c := NewCovers(t.TempDir())
	url := "https://img.example/a.jpg"
	if err := c.Store(url, bytes.NewReader(nil)); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get(url); ok {
		t.Error("zero-byte entry reported as a hit")
	}
}
