package models

import "time"

// RunUpdate - progress notification for one pipeline run. Published over NATS
// when a messenger is configured so an operator UI can follow long runs.
type RunUpdate struct {
	RunID     string `json:"run_id"`
	Brand     string `json:"brand"`
	Stage     string `json:"stage"`
	Batch     int    `json:"batch,omitempty"`
	Batches   int    `json:"batches,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

func NewRunUpdate(runID, brand, stage string) *RunUpdate {
	return &RunUpdate{
		RunID:     runID,
		Brand:     brand,
		Stage:     stage,
		Timestamp: time.Now().Unix(),
	}
}
