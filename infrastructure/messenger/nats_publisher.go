package messenger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"brandpulse-worker/domain/models"
	"brandpulse-worker/domain/ports"
)

type NATSPublisher struct {
	nc     *nats.Conn
	logger *slog.Logger
}

func NewNATSPublisher(nc *nats.Conn) *NATSPublisher {
	return &NATSPublisher{
		nc:     nc,
		logger: slog.Default().With("component", "nats_publisher"),
	}
}

// SendProgress publishes one run update.
// Subject: brandpulse.progress.{run_id}
func (p *NATSPublisher) SendProgress(ctx context.Context, update *models.RunUpdate) error {
	subject := fmt.Sprintf("brandpulse.progress.%s", update.RunID)

	data, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal run update: %w", err)
	}
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish run update: %w", err)
	}

	p.logger.DebugContext(ctx, "Progress sent",
		"run_id", update.RunID,
		"stage", update.Stage,
		"batch", update.Batch,
	)
	return nil
}

func (p *NATSPublisher) SendCompleted(ctx context.Context, runID, brand string) error {
	update := &models.RunUpdate{
		RunID:     runID,
		Brand:     brand,
		Stage:     ports.StageCompleted,
		Message:   "Strategic report generated successfully",
		Timestamp: time.Now().Unix(),
	}
	return p.SendProgress(ctx, update)
}

func (p *NATSPublisher) SendFailed(ctx context.Context, runID, brand string, err error) error {
	update := &models.RunUpdate{
		RunID:     runID,
		Brand:     brand,
		Stage:     ports.StageFailed,
		Error:     err.Error(),
		Timestamp: time.Now().Unix(),
	}
	return p.SendProgress(ctx, update)
}

// Verify interface implementation
var _ ports.MessengerPort = (*NATSPublisher)(nil)
