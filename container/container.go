package container

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"brandpulse-worker/config"
	"brandpulse-worker/domain/ports"
	"brandpulse-worker/infrastructure/ai"
	"brandpulse-worker/infrastructure/cache"
	"brandpulse-worker/infrastructure/cleanup"
	"brandpulse-worker/infrastructure/corpus"
	"brandpulse-worker/infrastructure/media"
	"brandpulse-worker/infrastructure/messenger"
	"brandpulse-worker/infrastructure/prompt"
	"brandpulse-worker/infrastructure/report"
	"brandpulse-worker/use_cases"
)

// Container - Dependency Injection Container
type Container struct {
	Config *config.Config

	// External connections
	NATSConn *nats.Conn

	// Ports (Interfaces)
	Corpus    ports.CorpusPort
	Cache     ports.SummaryCachePort
	Media     ports.MediaResolverPort
	AIService ports.AIPort
	Messenger ports.MessengerPort

	// Use Cases
	Pipeline *use_cases.PipelineHandler

	// Internal
	geminiClient *ai.GeminiClient
	logger       *slog.Logger
}

func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{
		Config: cfg,
		logger: slog.Default().With("component", "container"),
	}

	var err error

	// NATS is optional: without it, progress stays in the local log.
	if cfg.NATS.URL != "" {
		c.NATSConn, err = nats.Connect(cfg.NATS.URL,
			nats.MaxReconnects(-1),
			nats.ReconnectWait(2*time.Second),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		c.Messenger = messenger.NewNATSPublisher(c.NATSConn)
		c.logger.Info("Connected to NATS", "url", cfg.NATS.URL)
	} else {
		c.Messenger = messenger.NewNoopMessenger()
	}

	// Gemini AI Service
	c.geminiClient, err = ai.NewGeminiClient(ctx, cfg.Gemini.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c.AIService = c.geminiClient
	c.logger.Info("Gemini client created",
		"flash_model", cfg.Analysis.FlashModel,
		"pro_model", cfg.Analysis.ProModel,
	)

	// Batch summary cache
	c.Cache, err = cache.NewFileCache(cfg.Paths.CacheDir)
	if err != nil {
		return nil, err
	}
	c.logger.Info("Summary cache ready", "dir", cfg.Paths.CacheDir)

	// Corpus loader and media resolver
	c.Corpus = corpus.NewLoader()
	c.Media = media.NewResolver(cfg.Paths.VideoDir, cfg.Paths.AudioDir)

	// Prompt templates (fail fast: without them no stage can run)
	flashPrompt, err := prompt.Load(cfg.Analysis.FlashPromptPath)
	if err != nil {
		return nil, err
	}
	proPrompt, err := prompt.Load(cfg.Analysis.ProPromptPath)
	if err != nil {
		return nil, err
	}

	assembler := report.NewAssembler(
		cfg.Brand.Name,
		cfg.Analysis.ReportFormat,
		cfg.Analysis.ReportTemplatePath,
		cfg.Paths.ReportPath,
	)

	c.Pipeline = use_cases.NewPipelineHandler(
		cfg,
		c.Corpus,
		c.Cache,
		c.Media,
		c.AIService,
		c.Messenger,
		assembler,
		cleanup.NewSweeper(),
		flashPrompt,
		proPrompt,
	)

	return c, nil
}

func (c *Container) Close() {
	if c.geminiClient != nil {
		if err := c.geminiClient.Close(); err != nil {
			c.logger.Warn("Failed to close Gemini client", "error", err)
		}
	}
	if c.NATSConn != nil {
		c.NATSConn.Close()
	}
}
