package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileCacheRoundtrip(t *testing.T) {
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if _, ok := c.Get(1); ok {
		t.Fatal("Get on empty cache reported a hit")
	}

	if err := c.Put(1, "summary one"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok := c.Get(1)
	if !ok || got != "summary one" {
		t.Fatalf("Get after Put = %q, %v", got, ok)
	}

	// Other indexes stay independent misses.
	if _, ok := c.Get(2); ok {
		t.Error("Get(2) hit after only Put(1)")
	}
}

func TestFileCacheOverwrite(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	if err := c.Put(3, "first"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := c.Put(3, "second"); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}
	if got, _ := c.Get(3); got != "second" {
		t.Errorf("Get after overwrite = %q, want %q", got, "second")
	}
}

func TestFileCacheLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	for i := 1; i <= 4; i++ {
		if err := c.Put(i, "s"); err != nil {
			t.Fatalf("Put(%d): %v", i, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("got %d files, want 4", len(entries))
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("leftover temp file %s", e.Name())
		}
		if !strings.HasPrefix(e.Name(), "batch_") || !strings.HasSuffix(e.Name(), "_summary.txt") {
			t.Errorf("unexpected entry name %s", e.Name())
		}
	}
}

func TestFileCacheEntryLayout(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	if err := c.Put(7, "batch seven"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	// The on-disk name is a stable contract with resumed runs.
	data, err := os.ReadFile(filepath.Join(dir, "batch_7_summary.txt"))
	if err != nil {
		t.Fatalf("entry file missing: %v", err)
	}
	if string(data) != "batch seven" {
		t.Errorf("entry content = %q", data)
	}
}
