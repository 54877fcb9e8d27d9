package ports

import (
	"context"

	"brandpulse-worker/domain/models"
)

// MessengerPort - Interface for publishing run progress updates so an
// operator can follow a long analysis run.
type MessengerPort interface {
	// SendProgress publishes one progress update.
	SendProgress(ctx context.Context, update *models.RunUpdate) error

	// SendCompleted reports that the run finished and the report was written.
	SendCompleted(ctx context.Context, runID, brand string) error

	// SendFailed reports that the run hit a fatal condition.
	SendFailed(ctx context.Context, runID, brand string, err error) error
}

// Progress stages
const (
	StageLoadingCorpus   = "loading_corpus"
	StageBatchProcessing = "batch_processing"
	StageSynthesis       = "synthesis"
	StageWritingReport   = "writing_report"
	StageCleanup         = "cleanup"
	StageCompleted       = "completed"
	StageFailed          = "failed"
)
