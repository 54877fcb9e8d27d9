package models

import (
	"errors"
	"fmt"
)

// ErrNoCorpus - the corpus files are missing, unreadable, or empty. Terminal
// for the run but not a process failure: there is simply no work to do.
var ErrNoCorpus = errors.New("no corpus data to analyze")

// Batch processing stages, recorded on BatchError for diagnostics.
const (
	BatchStageUpload   = "upload"
	BatchStageWait     = "upload_wait"
	BatchStageGenerate = "generate"
	BatchStageCache    = "cache_write"
)

// BatchError - a single batch failed during stage 1. Recovered at batch
// granularity: the batch contributes no summary and the run continues.
type BatchError struct {
	Index int
	Stage string
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch %d failed at %s: %v", e.Index, e.Stage, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }

// SynthesisError - the stage-2 generative call failed. Fatal to the run;
// cleanup is suppressed so cached summaries and media survive for a rerun.
type SynthesisError struct {
	Err error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("final synthesis failed: %v", e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }
