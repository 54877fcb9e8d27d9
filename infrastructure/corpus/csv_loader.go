package corpus

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"brandpulse-worker/domain/models"
	"brandpulse-worker/domain/ports"
)

var videoColumns = []string{
	"video_id", "title", "channel", "url",
	"views", "likes", "comments", "engagement", "description",
}

var commentColumns = []string{"video_id", "text", "author", "published_at"}

// Loader reads the crawler's video and comment CSVs. A missing or unreadable
// file yields an empty slice plus a logged diagnostic so the pipeline can
// stop cleanly with "no work to do"; a readable file with missing required
// columns is a hard error.
type Loader struct {
	logger *slog.Logger
}

func NewLoader() *Loader {
	return &Loader{
		logger: slog.Default().With("component", "corpus_loader"),
	}
}

func (l *Loader) LoadVideos(path string) ([]models.VideoRecord, error) {
	rows, header := l.readCSV(path, "videos")
	if header == nil {
		return nil, nil
	}
	col, err := columnIndex(header, videoColumns)
	if err != nil {
		return nil, fmt.Errorf("videos file %s: %w", path, err)
	}

	videos := make([]models.VideoRecord, 0, len(rows))
	for _, row := range rows {
		videos = append(videos, models.VideoRecord{
			VideoID:     row[col["video_id"]],
			Title:       row[col["title"]],
			Channel:     row[col["channel"]],
			URL:         row[col["url"]],
			Views:       parseCount(row[col["views"]]),
			Likes:       parseCount(row[col["likes"]]),
			Comments:    parseCount(row[col["comments"]]),
			Engagement:  parseCount(row[col["engagement"]]),
			Description: row[col["description"]],
		})
	}
	l.logger.Info("Videos loaded", "path", path, "count", len(videos))
	return videos, nil
}

func (l *Loader) LoadComments(path string) ([]models.CommentRecord, error) {
	rows, header := l.readCSV(path, "comments")
	if header == nil {
		return nil, nil
	}
	col, err := columnIndex(header, commentColumns)
	if err != nil {
		return nil, fmt.Errorf("comments file %s: %w", path, err)
	}

	comments := make([]models.CommentRecord, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, models.CommentRecord{
			VideoID:     row[col["video_id"]],
			Text:        row[col["text"]],
			Author:      row[col["author"]],
			PublishedAt: row[col["published_at"]],
		})
	}
	l.logger.Info("Comments loaded", "path", path, "count", len(comments))
	return comments, nil
}

// readCSV returns all data rows plus the cleaned header. A nil header means
// the file was missing or unreadable (already logged, fail-soft).
func (l *Loader) readCSV(path, name string) ([][]string, []string) {
	file, err := os.Open(path)
	if err != nil {
		l.logger.Error("Corpus file not found", "name", name, "path", path, "error", err)
		return nil, nil
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rawHeader, err := reader.Read()
	if err != nil {
		l.logger.Error("Failed to read CSV header", "name", name, "path", path, "error", err)
		return nil, nil
	}
	header := make([]string, len(rawHeader))
	for i, h := range rawHeader {
		header[i] = strings.ReplaceAll(strings.TrimSpace(h), `"`, "")
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			l.logger.Warn("Skipping malformed CSV row", "name", name, "error", err)
			continue
		}
		// Short rows cannot be indexed by column; skip rather than crash.
		if len(row) < len(header) {
			continue
		}
		rows = append(rows, row)
	}
	return rows, header
}

func columnIndex(header, required []string) (map[string]int, error) {
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[h] = i
	}
	var missing []string
	for _, name := range required {
		if _, ok := col[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return col, nil
}

// parseCount tolerates blank and malformed numeric cells, including values
// exported with thousands separators.
func parseCount(s string) uint64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Verify interface implementation
var _ ports.CorpusPort = (*Loader)(nil)
