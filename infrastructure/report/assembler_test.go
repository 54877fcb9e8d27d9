package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"brandpulse-worker/domain/models"
)

func rankedVideos(n int) []models.VideoRecord {
	videos := make([]models.VideoRecord, n)
	for i := range videos {
		videos[i] = models.VideoRecord{
			VideoID:  fmt.Sprintf("v%02d", i+1),
			Title:    fmt.Sprintf("Video %d", i+1),
			Channel:  "Chan",
			Views:    uint64(i+1) * 1000,
			Likes:    uint64(i + 1),
			Comments: uint64(i + 1),
		}
	}
	return videos
}

func TestBuildAppendix(t *testing.T) {
	appendix := BuildAppendix(rankedVideos(20), 15)

	lines := strings.Split(strings.TrimRight(appendix, "\n"), "\n")
	// Heading, blank line, header row, divider, then 15 data rows.
	if len(lines) != 4+15 {
		t.Fatalf("got %d lines, want %d", len(lines), 4+15)
	}
	if !strings.HasPrefix(lines[0], "## Appendix: Top 15 Videos") {
		t.Errorf("heading = %q", lines[0])
	}
	// Ranked descending by views, thousands-separated.
	if !strings.Contains(lines[4], "Video 20") || !strings.Contains(lines[4], "20,000") {
		t.Errorf("first data row = %q", lines[4])
	}
	if !strings.Contains(lines[18], "Video 6") || !strings.Contains(lines[18], "6,000") {
		t.Errorf("last data row = %q", lines[18])
	}
}

func TestBuildAppendixFewerThanLimit(t *testing.T) {
	appendix := BuildAppendix(rankedVideos(3), 15)
	rows := strings.Count(appendix, "\n| Video")
	if rows != 3 {
		t.Errorf("got %d data rows, want 3", rows)
	}
}

func TestBuildAppendixEscapesCells(t *testing.T) {
	videos := []models.VideoRecord{{
		Title:   "Pipes | and\nnewlines",
		Channel: "C",
		Views:   1,
	}}
	appendix := BuildAppendix(videos, 15)
	if !strings.Contains(appendix, `Pipes \| and newlines`) {
		t.Errorf("cell not escaped:\n%s", appendix)
	}
}

func TestWriteReportMarkdown(t *testing.T) {
	out := filepath.Join(t.TempDir(), "reports", "acme_strategic_report.md")
	a := NewAssembler("Acme", "markdown", "", out)

	path, err := a.WriteReport("# Narrative\n\nBody.", rankedVideos(2))
	if err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	if path != out {
		t.Errorf("returned path %q, want %q", path, out)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "# Narrative") {
		t.Errorf("narrative missing:\n%s", content)
	}
	if !strings.Contains(content, "\n\n---\n\n## Appendix") {
		t.Errorf("appendix not separated from narrative:\n%s", content)
	}
}

func TestWriteReportHTML(t *testing.T) {
	dir := t.TempDir()
	wrapper := filepath.Join(dir, "wrapper.html")
	body := "<html><title>{{BRAND_NAME}}</title><body>{{ANALYSIS_CONTENT}}</body></html>"
	if err := os.WriteFile(wrapper, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "report.html")

	a := NewAssembler("Acme", "html", wrapper, out)
	if _, err := a.WriteReport("# Heading\n\nText.", rankedVideos(1)); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, "<title>Acme</title>") {
		t.Errorf("brand not substituted:\n%s", content)
	}
	if !strings.Contains(content, "<h1") || !strings.Contains(content, "<table>") {
		t.Errorf("markdown not converted to HTML:\n%s", content)
	}
}

func TestWriteReportHTMLMissingWrapper(t *testing.T) {
	a := NewAssembler("Acme", "html", "/does/not/exist.html", filepath.Join(t.TempDir(), "r.html"))
	if _, err := a.WriteReport("x", nil); err == nil {
		t.Fatal("expected error for missing wrapper template")
	}
}
