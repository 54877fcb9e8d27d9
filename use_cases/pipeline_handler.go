package use_cases

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"brandpulse-worker/config"
	"brandpulse-worker/domain/models"
	"brandpulse-worker/domain/ports"
	"brandpulse-worker/infrastructure/cleanup"
	"brandpulse-worker/infrastructure/prompt"
	"brandpulse-worker/infrastructure/report"
)

const summarySeparator = "\n\n---\n\n"

// SleepFunc - cooperative wait used between upload-state polls. Injected so
// tests can substitute an instantaneous fake.
type SleepFunc func(ctx context.Context, d time.Duration) error

// PipelineHandler orchestrates the cached two-stage analysis run: partition
// the corpus, summarize each uncached batch with media attachments (stage 1),
// synthesize the final narrative from all summaries (stage 2), assemble the
// report, and only then sweep the temporary media and cache directories.
//
// Execution is strictly sequential in batch-index order. The cache directory
// is the only cross-run shared resource; concurrent runs against the same
// output directory are unsafe and unsupported.
type PipelineHandler struct {
	cfg       *config.Config
	corpus    ports.CorpusPort
	cache     ports.SummaryCachePort
	media     ports.MediaResolverPort
	aiService ports.AIPort
	messenger ports.MessengerPort
	assembler *report.Assembler
	sweeper   *cleanup.Sweeper

	flashPrompt *prompt.Template
	proPrompt   *prompt.Template

	sleep  SleepFunc
	logger *slog.Logger
}

func NewPipelineHandler(
	cfg *config.Config,
	corpus ports.CorpusPort,
	cache ports.SummaryCachePort,
	media ports.MediaResolverPort,
	aiService ports.AIPort,
	messenger ports.MessengerPort,
	assembler *report.Assembler,
	sweeper *cleanup.Sweeper,
	flashPrompt *prompt.Template,
	proPrompt *prompt.Template,
) *PipelineHandler {
	return &PipelineHandler{
		cfg:         cfg,
		corpus:      corpus,
		cache:       cache,
		media:       media,
		aiService:   aiService,
		messenger:   messenger,
		assembler:   assembler,
		sweeper:     sweeper,
		flashPrompt: flashPrompt,
		proPrompt:   proPrompt,
		sleep:       contextSleep,
		logger:      slog.Default().With("component", "pipeline"),
	}
}

// Run executes one full analysis run. A models.ErrNoCorpus return means
// there was no work to do; every other non-nil error is fatal and leaves the
// cache and media directories intact for a resumable rerun.
func (h *PipelineHandler) Run(ctx context.Context) error {
	runID := uuid.NewString()
	logger := h.logger.With("run_id", runID, "brand", h.cfg.Brand.Name)

	logger.InfoContext(ctx, "Starting analysis pipeline",
		"batch_size", h.cfg.Analysis.BatchSize,
		"flash_model", h.cfg.Analysis.FlashModel,
		"pro_model", h.cfg.Analysis.ProModel,
	)
	h.sendProgress(ctx, runID, ports.StageLoadingCorpus, 0, 0)

	videos, err := h.corpus.LoadVideos(h.cfg.Paths.VideosCSV)
	if err != nil {
		h.messenger.SendFailed(ctx, runID, h.cfg.Brand.Name, err)
		return err
	}
	comments, err := h.corpus.LoadComments(h.cfg.Paths.CommentsCSV)
	if err != nil {
		h.messenger.SendFailed(ctx, runID, h.cfg.Brand.Name, err)
		return err
	}
	if len(videos) == 0 || len(comments) == 0 {
		logger.InfoContext(ctx, "Empty corpus, nothing to analyze",
			"videos", len(videos),
			"comments", len(comments),
		)
		return models.ErrNoCorpus
	}

	batches := models.PartitionVideos(videos, h.cfg.Analysis.BatchSize)
	logger.InfoContext(ctx, "Stage 1: processing batches",
		"videos", len(videos),
		"batches", len(batches),
	)

	summaries := h.processBatches(ctx, runID, batches, comments)
	if len(summaries) == 0 {
		err := fmt.Errorf("no batch summaries were produced")
		h.messenger.SendFailed(ctx, runID, h.cfg.Brand.Name, err)
		return err
	}

	h.sendProgress(ctx, runID, ports.StageSynthesis, 0, len(batches))
	logger.InfoContext(ctx, "Stage 2: synthesizing final report",
		"summaries", len(summaries),
	)
	narrative, err := h.synthesize(ctx, summaries, models.ComputeStats(videos, comments))
	if err != nil {
		serr := &models.SynthesisError{Err: err}
		logger.ErrorContext(ctx, "Synthesis failed, keeping cache and media for rerun", "error", err)
		h.messenger.SendFailed(ctx, runID, h.cfg.Brand.Name, serr)
		return serr
	}

	h.sendProgress(ctx, runID, ports.StageWritingReport, 0, len(batches))
	path, err := h.assembler.WriteReport(narrative, videos)
	if err != nil {
		logger.ErrorContext(ctx, "Report assembly failed, keeping cache and media for rerun", "error", err)
		h.messenger.SendFailed(ctx, runID, h.cfg.Brand.Name, err)
		return err
	}
	logger.InfoContext(ctx, "Report written", "path", path)

	// Destructive cleanup only after the report is safely on disk.
	h.sendProgress(ctx, runID, ports.StageCleanup, 0, len(batches))
	h.sweeper.Sweep(ctx,
		h.cfg.Paths.AudioDir,
		h.cfg.Paths.VideoDir,
		h.cfg.Paths.CacheDir,
	)

	h.messenger.SendCompleted(ctx, runID, h.cfg.Brand.Name)
	logger.InfoContext(ctx, "Pipeline completed")
	return nil
}

// processBatches walks the batches in index order. Cached indexes are served
// locally with no uploads or generative calls; a failed batch is logged and
// skipped so the remaining batches still get their attempt.
func (h *PipelineHandler) processBatches(ctx context.Context, runID string, batches []models.Batch, comments []models.CommentRecord) []string {
	summaries := make([]string, 0, len(batches))
	for _, b := range batches {
		if cached, ok := h.cache.Get(b.Index); ok {
			h.logger.InfoContext(ctx, "Cache hit, skipping batch",
				"batch", b.Index,
			)
			summaries = append(summaries, cached)
			continue
		}

		h.sendProgress(ctx, runID, ports.StageBatchProcessing, b.Index, len(batches))
		h.logger.InfoContext(ctx, "Processing batch",
			"batch", b.Index,
			"batches", len(batches),
			"videos", len(b.Videos),
		)

		summary, err := h.summarizeBatch(ctx, b, comments)
		if err != nil {
			h.logger.WarnContext(ctx, "Batch failed, continuing with remaining batches",
				"batch", b.Index,
				"error", err,
			)
			continue
		}
		if err := h.cache.Put(b.Index, summary); err != nil {
			// The summary still feeds this run; only resumability suffers.
			h.logger.WarnContext(ctx, "Failed to cache batch summary",
				"batch", b.Index,
				"error", err,
			)
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// summarizeBatch runs one stage-1 generative call. Prompt construction is
// two-phase: the media-file-list placeholder can only be filled in after the
// uploads exist.
func (h *PipelineHandler) summarizeBatch(ctx context.Context, b models.Batch, allComments []models.CommentRecord) (string, error) {
	batchComments := models.SelectComments(b, allComments)
	staticPrompt := h.flashPrompt.Render(map[string]string{
		"BRAND_NAME":     h.cfg.Brand.Name,
		"TOPIC_NAME":     h.cfg.Brand.Name,
		"VIDEO_METADATA": metadataTable(b.Videos),
		"COMMENTS_DATA":  commentsBlock(batchComments),
	})

	refs := h.media.Resolve(b.VideoIDs())
	if len(refs) == 0 {
		h.logger.WarnContext(ctx, "No media files found for batch, analyzing text only",
			"batch", b.Index,
		)
	}

	uploaded := make([]*ports.UploadedFile, 0, len(refs))
	for _, ref := range refs {
		file, err := h.aiService.UploadFile(ctx, ref.Path)
		if err != nil {
			return "", &models.BatchError{Index: b.Index, Stage: models.BatchStageUpload, Err: err}
		}
		uploaded = append(uploaded, file)
	}
	if err := h.waitForFilesActive(ctx, uploaded); err != nil {
		return "", &models.BatchError{Index: b.Index, Stage: models.BatchStageWait, Err: err}
	}

	fileList := mediaFileList(uploaded)
	finalPrompt := prompt.Apply(staticPrompt, map[string]string{
		"MEDIA_FILES_LIST": fileList,
		// Alias kept for templates written against the audio-only pipeline.
		"AUDIO_FILES_LIST": fileList,
	})

	summary, err := h.aiService.Generate(ctx, h.cfg.Analysis.FlashModel, finalPrompt, uploaded)
	if err != nil {
		return "", &models.BatchError{Index: b.Index, Stage: models.BatchStageGenerate, Err: err}
	}
	return summary, nil
}

// waitForFilesActive blocks until every uploaded file leaves PROCESSING.
// Any FAILED file fails the whole batch: a batch is never partially
// submitted. The poll interval and optional per-file cap come from config.
func (h *PipelineHandler) waitForFilesActive(ctx context.Context, files []*ports.UploadedFile) error {
	for _, f := range files {
		polls := 0
		for {
			state, err := h.aiService.FileState(ctx, f.Name)
			if err != nil {
				return err
			}
			if state == ports.FileStateActive {
				break
			}
			if state == ports.FileStateFailed {
				return fmt.Errorf("file %s failed to process", f.Name)
			}
			polls++
			if limit := h.cfg.Analysis.MaxPolls; limit > 0 && polls >= limit {
				return fmt.Errorf("file %s still processing after %d polls", f.Name, polls)
			}
			if err := h.sleep(ctx, h.cfg.Analysis.PollInterval); err != nil {
				return err
			}
		}
	}
	return nil
}

// synthesize runs the single stage-2 call: all summaries joined in batch
// order plus corpus-wide aggregate statistics, no media attachments.
func (h *PipelineHandler) synthesize(ctx context.Context, summaries []string, stats models.CorpusStats) (string, error) {
	finalPrompt := h.proPrompt.Render(map[string]string{
		"BRAND_NAME":               h.cfg.Brand.Name,
		"TOPIC_NAME":               h.cfg.Brand.Name,
		"BATCH_SUMMARIES":          strings.Join(summaries, summarySeparator),
		"TOTAL_VIDEOS":             strconv.Itoa(stats.TotalVideos),
		"TOTAL_VIEWS":              models.FormatCount(stats.TotalViews),
		"TOTAL_LIKES":              models.FormatCount(stats.TotalLikes),
		"TOTAL_COMMENTS_STATS":     models.FormatCount(stats.TotalComments),
		"TOTAL_ENGAGEMENT":         models.FormatCount(stats.TotalEngagement),
		"TOTAL_COMMENTS_EXTRACTED": models.FormatCount(uint64(stats.ExtractedComments)),
	})
	return h.aiService.Generate(ctx, h.cfg.Analysis.ProModel, finalPrompt, nil)
}

func (h *PipelineHandler) sendProgress(ctx context.Context, runID, stage string, batch, batches int) {
	update := models.NewRunUpdate(runID, h.cfg.Brand.Name, stage)
	update.Batch = batch
	update.Batches = batches
	if err := h.messenger.SendProgress(ctx, update); err != nil {
		h.logger.DebugContext(ctx, "Failed to send progress", "error", err)
	}
}

// metadataTable renders the batch's video metadata as an aligned text table
// for the stage-1 prompt.
func metadataTable(videos []models.VideoRecord) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "title\tchannel\tviews\tlikes\tcomments")
	for _, v := range videos {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n", v.Title, v.Channel, v.Views, v.Likes, v.Comments)
	}
	w.Flush()
	return strings.TrimRight(buf.String(), "\n")
}

// commentsBlock aggregates comment text into one bullet list, skipping
// blank entries.
func commentsBlock(comments []models.CommentRecord) string {
	var sb strings.Builder
	for _, c := range comments {
		text := strings.TrimSpace(c.Text)
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("- ")
		sb.WriteString(text)
	}
	return sb.String()
}

// mediaFileList renders the uploaded files as the bullet list substituted
// into the prompt after uploads complete.
func mediaFileList(files []*ports.UploadedFile) string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = "- " + f.DisplayName
	}
	return strings.Join(names, "\n")
}

func contextSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
