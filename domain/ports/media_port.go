package ports

import "brandpulse-worker/domain/models"

// MediaResolverPort - maps video ids to local media files using the
// {dir}/{video_id}.mp4|.mp3 path convention. Video is preferred over audio;
// ids with neither file are silently skipped.
type MediaResolverPort interface {
	Resolve(videoIDs []string) []models.MediaReference
}
