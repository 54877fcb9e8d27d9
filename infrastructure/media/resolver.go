package media

import (
	"log/slog"
	"os"
	"path/filepath"

	"brandpulse-worker/domain/models"
	"brandpulse-worker/domain/ports"
)

// Resolver maps video ids to local media using the {dir}/{id}.mp4|.mp3 path
// convention. The existence check is injectable so resolution stays pure and
// unit-testable without a real filesystem.
type Resolver struct {
	videoDir string
	audioDir string
	exists   func(path string) bool
	logger   *slog.Logger
}

func NewResolver(videoDir, audioDir string) *Resolver {
	return &Resolver{
		videoDir: videoDir,
		audioDir: audioDir,
		exists:   fileExists,
		logger:   slog.Default().With("component", "media_resolver"),
	}
}

// Resolve returns one reference per video id that has media on disk,
// preferring the .mp4 over the .mp3 fallback. Ids with neither are skipped
// without error: those videos simply contribute no media to the prompt.
func (r *Resolver) Resolve(videoIDs []string) []models.MediaReference {
	var refs []models.MediaReference
	for _, id := range videoIDs {
		if path := filepath.Join(r.videoDir, id+".mp4"); r.exists(path) {
			refs = append(refs, models.MediaReference{
				VideoID: id,
				Path:    path,
				Kind:    models.MediaKindVideo,
			})
			continue
		}
		if path := filepath.Join(r.audioDir, id+".mp3"); r.exists(path) {
			refs = append(refs, models.MediaReference{
				VideoID: id,
				Path:    path,
				Kind:    models.MediaKindAudio,
			})
			continue
		}
		r.logger.Debug("No media for video", "video_id", id)
	}
	return refs
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Verify interface implementation
var _ ports.MediaResolverPort = (*Resolver)(nil)
