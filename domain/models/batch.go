package models

// Batch - a contiguous, order-preserving slice of the video corpus. Index is
// 1-based and doubles as the cache key, so batch identity is positional:
// reordering or resizing the corpus between runs silently invalidates the
// cache semantics (known trade-off, kept from the upstream design).
type Batch struct {
	Index  int
	Videos []VideoRecord
}

// VideoIDs returns the ids of the batch's videos in corpus order.
func (b Batch) VideoIDs() []string {
	ids := make([]string, len(b.Videos))
	for i, v := range b.Videos {
		ids[i] = v.VideoID
	}
	return ids
}

// PartitionVideos splits the corpus into ceil(len/batchSize) batches.
// The last batch may be shorter. Deterministic for identical input.
func PartitionVideos(videos []VideoRecord, batchSize int) []Batch {
	if batchSize <= 0 || len(videos) == 0 {
		return nil
	}
	count := (len(videos) + batchSize - 1) / batchSize
	batches := make([]Batch, 0, count)
	for i := 0; i < count; i++ {
		start := i * batchSize
		end := start + batchSize
		if end > len(videos) {
			end = len(videos)
		}
		batches = append(batches, Batch{
			Index:  i + 1,
			Videos: videos[start:end],
		})
	}
	return batches
}

// SelectComments returns the comments whose video id belongs to the batch.
// Input order is preserved; relative order is not significant downstream.
func SelectComments(b Batch, comments []CommentRecord) []CommentRecord {
	ids := make(map[string]struct{}, len(b.Videos))
	for _, v := range b.Videos {
		ids[v.VideoID] = struct{}{}
	}
	var selected []CommentRecord
	for _, c := range comments {
		if _, ok := ids[c.VideoID]; ok {
			selected = append(selected, c)
		}
	}
	return selected
}

// MediaKind - which local artifact stands in for a video's content.
type MediaKind string

const (
	MediaKindVideo MediaKind = "video"
	MediaKindAudio MediaKind = "audio"
)

// MediaReference - a resolved local media file for one video id. Selection is
// video-preferred: the .mp4 wins when both exist, the .mp3 is the fallback,
// and a video with neither contributes no reference.
type MediaReference struct {
	VideoID string
	Path    string
	Kind    MediaKind
}
