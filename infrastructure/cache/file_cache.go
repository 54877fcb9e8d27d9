package cache

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"brandpulse-worker/domain/ports"
)

// FileCache - one plain-text file per batch under the cache root:
// {dir}/batch_{n}_summary.txt. Writes go through a temp file and rename so a
// crash mid-write can never leave a truncated entry that would later be
// mistaken for a valid cache hit.
//
// Entries are keyed by positional batch index, not content. If the corpus is
// reordered or resized between runs, stale entries are silently reused; this
// mirrors the upstream design and is documented rather than guarded.
type FileCache struct {
	dir    string
	logger *slog.Logger
}

func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir %s: %w", dir, err)
	}
	return &FileCache{
		dir:    dir,
		logger: slog.Default().With("component", "summary_cache"),
	}, nil
}

func (c *FileCache) Get(index int) (string, bool) {
	data, err := os.ReadFile(c.entryPath(index))
	if err != nil {
		return "", false
	}
	return string(data), true
}

func (c *FileCache) Put(index int, summary string) error {
	tmp, err := os.CreateTemp(c.dir, fmt.Sprintf("batch_%d_*.tmp", index))
	if err != nil {
		return fmt.Errorf("failed to create cache temp file: %w", err)
	}
	if _, err := tmp.WriteString(summary); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close cache temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.entryPath(index)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to commit cache entry: %w", err)
	}
	c.logger.Debug("Cache entry written", "batch", index)
	return nil
}

func (c *FileCache) entryPath(index int) string {
	return filepath.Join(c.dir, fmt.Sprintf("batch_%d_summary.txt", index))
}

// Verify interface implementation
var _ ports.SummaryCachePort = (*FileCache)(nil)
