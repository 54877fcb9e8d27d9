package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"brandpulse-worker/domain/models"
	"brandpulse-worker/infrastructure/prompt"
)

// appendixSize - the ranked appendix always lists the top videos by views
// over the whole corpus, independent of batch boundaries.
const appendixSize = 15

const sectionSeparator = "\n\n---\n\n"

// Assembler turns the synthesized narrative into the final report document:
// narrative + ranked appendix, converted to HTML and wrapped in the brand
// template when the configured format asks for it.
type Assembler struct {
	brand       string
	format      string // "markdown" or "html"
	wrapperPath string
	outputPath  string
	logger      *slog.Logger
}

func NewAssembler(brand, format, wrapperPath, outputPath string) *Assembler {
	return &Assembler{
		brand:       brand,
		format:      format,
		wrapperPath: wrapperPath,
		outputPath:  outputPath,
		logger:      slog.Default().With("component", "report_assembler"),
	}
}

// WriteReport renders and writes the final document, returning its path.
// Any failure here is fatal to the run and must suppress cleanup.
func (a *Assembler) WriteReport(narrative string, videos []models.VideoRecord) (string, error) {
	doc := narrative + sectionSeparator + BuildAppendix(videos, appendixSize)

	content := doc
	if a.format == "html" {
		wrapper, err := prompt.Load(a.wrapperPath)
		if err != nil {
			return "", err
		}
		content = wrapper.Render(map[string]string{
			"BRAND_NAME":       a.brand,
			"ANALYSIS_CONTENT": renderHTML(doc),
		})
	}

	if err := os.MkdirAll(filepath.Dir(a.outputPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}
	if err := os.WriteFile(a.outputPath, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	a.logger.Info("Strategic report saved",
		"path", a.outputPath,
		"format", a.format,
	)
	return a.outputPath, nil
}

// BuildAppendix renders the top videos by descending view count as a
// markdown table with thousands-separated numbers.
func BuildAppendix(videos []models.VideoRecord, limit int) string {
	ranked := make([]models.VideoRecord, len(videos))
	copy(ranked, videos)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Views > ranked[j].Views
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Appendix: Top %d Videos Analyzed by Views\n\n", limit)
	sb.WriteString("| Title | Channel | Views | Likes | Comments |\n")
	sb.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, v := range ranked {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
			escapeCell(v.Title),
			escapeCell(v.Channel),
			models.FormatCount(v.Views),
			models.FormatCount(v.Likes),
			models.FormatCount(v.Comments),
		)
	}
	return sb.String()
}

func renderHTML(md string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(markdown.ToHTML([]byte(md), p, renderer))
}

// escapeCell keeps titles with pipes or newlines from breaking table rows.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}
