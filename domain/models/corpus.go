package models

import "strconv"

// VideoRecord - one discovered video, as produced by the crawler CSV.
// Immutable for the duration of a pipeline run.
type VideoRecord struct {
	VideoID     string `json:"video_id"`
	Title       string `json:"title"`
	Channel     string `json:"channel"`
	URL         string `json:"url"`
	Views       uint64 `json:"views"`
	Likes       uint64 `json:"likes"`
	Comments    uint64 `json:"comments"`
	Engagement  uint64 `json:"engagement"`
	Description string `json:"description"`
}

// CommentRecord - one extracted comment. Many per video, no uniqueness
// constraint; Text may be empty and aggregation must skip it safely.
type CommentRecord struct {
	VideoID     string `json:"video_id"`
	Text        string `json:"text"`
	Author      string `json:"author"`
	PublishedAt string `json:"published_at"`
}

// CorpusStats - aggregate counts over the full corpus, substituted into the
// synthesis prompt. Derived once, independent of batching.
type CorpusStats struct {
	TotalVideos       int    `json:"total_videos"`
	TotalViews        uint64 `json:"total_views"`
	TotalLikes        uint64 `json:"total_likes"`
	TotalComments     uint64 `json:"total_comments"`
	TotalEngagement   uint64 `json:"total_engagement"`
	ExtractedComments int    `json:"extracted_comments"`
}

// ComputeStats sums corpus-wide metrics for the synthesis stage.
func ComputeStats(videos []VideoRecord, comments []CommentRecord) CorpusStats {
	stats := CorpusStats{
		TotalVideos:       len(videos),
		ExtractedComments: len(comments),
	}
	for _, v := range videos {
		stats.TotalViews += v.Views
		stats.TotalLikes += v.Likes
		stats.TotalComments += v.Comments
		stats.TotalEngagement += v.Engagement
	}
	return stats
}

// FormatCount renders a count with thousands separators,
// e.g. 1234567 -> "1,234,567".
func FormatCount(n uint64) string {
	s := strconv.FormatUint(n, 10)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
