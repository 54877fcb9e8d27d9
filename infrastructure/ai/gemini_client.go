package ai

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"brandpulse-worker/domain/ports"
)

// GeminiClient implements the generative capability on the Gemini API:
// media file upload, file-state polling, and text generation with optional
// file attachments. Model selection is per call because the two pipeline
// stages use different models.
type GeminiClient struct {
	client *genai.Client
	logger *slog.Logger
}

func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiClient{
		client: client,
		logger: slog.Default().With("component", "gemini"),
	}, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func (c *GeminiClient) UploadFile(ctx context.Context, path string) (*ports.UploadedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open media file %s: %w", path, err)
	}
	defer f.Close()

	base := filepath.Base(path)
	file, err := c.client.UploadFile(ctx, "", f, &genai.UploadFileOptions{
		DisplayName: base,
		MIMEType:    mimeTypeFor(path),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", base, err)
	}

	c.logger.Debug("Media uploaded",
		"file", base,
		"remote_name", file.Name,
	)

	return &ports.UploadedFile{
		Name:        file.Name,
		DisplayName: displayName(file, base),
		URI:         file.URI,
		MIMEType:    file.MIMEType,
	}, nil
}

func (c *GeminiClient) FileState(ctx context.Context, name string) (ports.FileState, error) {
	file, err := c.client.GetFile(ctx, name)
	if err != nil {
		return "", fmt.Errorf("failed to get file %s: %w", name, err)
	}
	switch file.State {
	case genai.FileStateActive:
		return ports.FileStateActive, nil
	case genai.FileStateFailed:
		return ports.FileStateFailed, nil
	default:
		return ports.FileStateProcessing, nil
	}
}

func (c *GeminiClient) Generate(ctx context.Context, model, prompt string, files []*ports.UploadedFile) (string, error) {
	m := c.client.GenerativeModel(model)

	parts := make([]genai.Part, 0, len(files)+1)
	parts = append(parts, genai.Text(strings.ToValidUTF8(prompt, "")))
	for _, f := range files {
		parts = append(parts, genai.FileData{MIMEType: f.MIMEType, URI: f.URI})
	}

	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}
	return extractText(resp)
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from gemini")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text parts in gemini response")
	}
	return sb.String(), nil
}

func displayName(file *genai.File, fallback string) string {
	if file.DisplayName != "" {
		return file.DisplayName
	}
	return fallback
}

func mimeTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4":
		return "video/mp4"
	case ".mp3":
		return "audio/mpeg"
	default:
		return "application/octet-stream"
	}
}

// Verify interface implementation
var _ ports.AIPort = (*GeminiClient)(nil)
