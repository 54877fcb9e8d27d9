package messenger

import (
	"context"
	"log/slog"

	"brandpulse-worker/domain/models"
	"brandpulse-worker/domain/ports"
)

// NoopMessenger - used when no NATS URL is configured; progress stays in the
// local log only.
type NoopMessenger struct {
	logger *slog.Logger
}

func NewNoopMessenger() *NoopMessenger {
	return &NoopMessenger{
		logger: slog.Default().With("component", "noop_messenger"),
	}
}

func (m *NoopMessenger) SendProgress(ctx context.Context, update *models.RunUpdate) error {
	m.logger.DebugContext(ctx, "Progress (noop)",
		"run_id", update.RunID,
		"stage", update.Stage,
		"batch", update.Batch,
	)
	return nil
}

func (m *NoopMessenger) SendCompleted(ctx context.Context, runID, brand string) error {
	m.logger.InfoContext(ctx, "Completed (noop)", "run_id", runID, "brand", brand)
	return nil
}

func (m *NoopMessenger) SendFailed(ctx context.Context, runID, brand string, err error) error {
	m.logger.WarnContext(ctx, "Failed (noop)", "run_id", runID, "brand", brand, "error", err)
	return nil
}

// Verify interface implementation
var _ ports.MessengerPort = (*NoopMessenger)(nil)
