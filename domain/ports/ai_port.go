package ports

import "context"

// FileState - remote processing state of an uploaded media file.
// Uploads start in PROCESSING and end in ACTIVE or FAILED.
type FileState string

const (
	FileStateProcessing FileState = "PROCESSING"
	FileStateActive     FileState = "ACTIVE"
	FileStateFailed     FileState = "FAILED"
)

// UploadedFile - remote handle for an uploaded media file. Transient: owned
// by the summarizer for the duration of one batch call, never persisted.
type UploadedFile struct {
	Name        string // server-side resource name, used for state polling
	DisplayName string // human-readable name listed in the prompt
	URI         string
	MIMEType    string
}

// AIPort - the generative capability consumed by both pipeline stages.
type AIPort interface {
	// UploadFile pushes a local media file and returns its remote handle.
	// The file is usually still PROCESSING when this returns.
	UploadFile(ctx context.Context, path string) (*UploadedFile, error)

	// FileState reports the current remote state of an uploaded file.
	FileState(ctx context.Context, name string) (FileState, error)

	// Generate runs one generative call against the named model with the
	// prompt and any attached files, returning the response text.
	Generate(ctx context.Context, model, prompt string, files []*UploadedFile) (string, error)
}
