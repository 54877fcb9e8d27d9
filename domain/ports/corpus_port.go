package ports

import "brandpulse-worker/domain/models"

// CorpusPort - loader for the persisted video and comment corpora. Loading
// fails soft: a missing or unreadable file yields an empty slice and a logged
// diagnostic, while a present file with missing required columns is an error.
type CorpusPort interface {
	LoadVideos(path string) ([]models.VideoRecord, error)
	LoadComments(path string) ([]models.CommentRecord, error)
}
