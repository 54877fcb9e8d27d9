package cleanup

import (
	"context"
	"log/slog"
	"os"
)

// Sweeper removes the large temporary directories (downloaded media, batch
// cache) after a fully successful run. Deletion is advisory: each target is
// attempted independently and failures are logged, never escalated, so a
// stuck directory cannot retroactively fail a run whose report is already
// on disk.
type Sweeper struct {
	logger *slog.Logger
}

func NewSweeper() *Sweeper {
	return &Sweeper{
		logger: slog.Default().With("component", "cleanup"),
	}
}

// Sweep attempts to remove every listed directory. Returns how many were
// actually removed; the count is informational only.
func (s *Sweeper) Sweep(ctx context.Context, dirs ...string) int {
	removed := 0
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if _, err := os.Stat(dir); err != nil {
			continue // already gone
		}
		if err := os.RemoveAll(dir); err != nil {
			s.logger.WarnContext(ctx, "Failed to remove directory",
				"dir", dir,
				"error", err,
			)
			continue
		}
		s.logger.InfoContext(ctx, "Removed directory", "dir", dir)
		removed++
	}
	return removed
}
