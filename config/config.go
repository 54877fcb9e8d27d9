package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gosimple/slug"
	"github.com/joho/godotenv"
)

type Config struct {
	Brand    BrandConfig
	Analysis AnalysisConfig
	Gemini   GeminiConfig
	NATS     NATSConfig
	Paths    PathConfig
}

type BrandConfig struct {
	Name     string
	SafeName string // filesystem-safe slug used for all derived paths
}

type AnalysisConfig struct {
	BatchSize          int
	FlashModel         string // stage 1, cheap per-batch summaries
	ProModel           string // stage 2, final synthesis
	FlashPromptPath    string
	ProPromptPath      string
	ReportTemplatePath string
	ReportFormat       string // "markdown" or "html"
	PollInterval       time.Duration
	MaxPolls           int // per-file cap for upload polling, 0 = unbounded
}

type GeminiConfig struct {
	APIKey string
}

type NATSConfig struct {
	URL string // empty disables progress publishing
}

// PathConfig - every filesystem location the pipeline touches, derived once
// from the brand name at load time. Components receive these values
// explicitly; nothing re-derives paths from ambient state.
type PathConfig struct {
	OutputDir   string
	VideosCSV   string
	CommentsCSV string
	VideoDir    string
	AudioDir    string
	CacheDir    string
	ReportPath  string
}

func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	brand := os.Getenv("BRAND_NAME")
	if brand == "" {
		return nil, fmt.Errorf("BRAND_NAME must be set")
	}
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY must be set")
	}

	batchSize, err := strconv.Atoi(getEnv("BATCH_SIZE", "10"))
	if err != nil || batchSize <= 0 {
		return nil, fmt.Errorf("BATCH_SIZE must be a positive integer")
	}

	format := getEnv("REPORT_FORMAT", "markdown")
	if format != "markdown" && format != "html" {
		return nil, fmt.Errorf("REPORT_FORMAT must be markdown or html, got %q", format)
	}

	pollSeconds, _ := strconv.Atoi(getEnv("UPLOAD_POLL_SECONDS", "2"))
	if pollSeconds <= 0 {
		pollSeconds = 2
	}
	maxPolls, _ := strconv.Atoi(getEnv("UPLOAD_MAX_POLLS", "0"))

	safeName := slug.Make(brand)
	outputDir := filepath.Join(getEnv("OUTPUT_ROOT", "outputs"), safeName)

	return &Config{
		Brand: BrandConfig{
			Name:     brand,
			SafeName: safeName,
		},
		Analysis: AnalysisConfig{
			BatchSize:          batchSize,
			FlashModel:         getEnv("FLASH_MODEL", "gemini-1.5-flash"),
			ProModel:           getEnv("PRO_MODEL", "gemini-1.5-pro"),
			FlashPromptPath:    getEnv("FLASH_PROMPT_PATH", "templates/batch_summary_prompt.txt"),
			ProPromptPath:      getEnv("PRO_PROMPT_PATH", "templates/strategic_report_prompt.txt"),
			ReportTemplatePath: getEnv("REPORT_TEMPLATE_PATH", "templates/strategic_report_template.html"),
			ReportFormat:       format,
			PollInterval:       time.Duration(pollSeconds) * time.Second,
			MaxPolls:           maxPolls,
		},
		Gemini: GeminiConfig{
			APIKey: apiKey,
		},
		NATS: NATSConfig{
			URL: getEnv("NATS_URL", ""),
		},
		Paths: derivePaths(outputDir, safeName, format),
	}, nil
}

func derivePaths(outputDir, safeName, format string) PathConfig {
	ext := "md"
	if format == "html" {
		ext = "html"
	}
	return PathConfig{
		OutputDir:   outputDir,
		VideosCSV:   filepath.Join(outputDir, safeName+"_discovered_videos.csv"),
		CommentsCSV: filepath.Join(outputDir, safeName+"_raw_comments.csv"),
		VideoDir:    filepath.Join(outputDir, getEnv("VIDEO_DIR_NAME", "video")),
		AudioDir:    filepath.Join(outputDir, getEnv("AUDIO_DIR_NAME", "audio")),
		CacheDir:    filepath.Join(outputDir, getEnv("CACHE_DIR_NAME", "cache")),
		ReportPath:  filepath.Join(outputDir, safeName+"_strategic_report."+ext),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
