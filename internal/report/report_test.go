package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/triagelab/logtriage/internal/ai"
	"github.com/triagelab/logtriage/internal/model"
)

const sampleAnalysis = "ROOT CAUSE: Database connectivity failure.\n\nFIXES:\n1. Restart the database\n2. Check connection pool settings\n3. Verify DNS resolution\n\nPREVENTION: Add health checks"

// sampleReport mirrors the summary produced by the bundled demo log.
func sampleReport() model.Report {
	return model.Report{
		GeneratedAt: time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC),
		Source:      "/tmp/sample_app.log",
		Analysis:    sampleAnalysis,
		Summary: model.PatternSummary{
			TotalEntries: 8,
			ErrorCount:   6,
			UniqueErrors: 4,
			LevelCounts:  map[string]int{"ERROR": 6, "INFO": 2},
			TopErrors: []model.ErrorPattern{
				{Message: "Connection refused to database at db.example.com:N", Count: 2},
				{Message: "Failed to fetch user data from database", Count: 2},
				{Message: "API request to /api/users failed with status N", Count: 1},
				{Message: "API request to /api/products failed with status N", Count: 1},
			},
			Timeline: []model.TimelineEvent{
				{Time: "2024-01-15 14:23:15", Message: "Connection refused to database at db.example.com:5432"},
				{Time: "2024-01-15 14:23:16", Message: "Failed to fetch user data from database"},
			},
			Cascades: []model.Cascade{},
		},
	}
}

func TestBuild(t *testing.T) {
	summary := sampleReport().Summary
	stats := &ai.Stats{
		Provider:        "NVIDIA",
		Model:           "nvidia/llama-3.1-nemotron-70b-instruct",
		InputTokens:     1500,
		OutputTokens:    250,
		DurationSeconds: 1.2,
	}

	rep := Build("/var/log/app.log", summary, sampleAnalysis, stats)

	if rep.Source != "/var/log/app.log" {
		t.Errorf("Source = %q", rep.Source)
	}
	if rep.Analysis != sampleAnalysis {
		t.Errorf("Analysis = %q", rep.Analysis)
	}
	if rep.Summary.ErrorCount != 6 {
		t.Errorf("Summary.ErrorCount = %d", rep.Summary.ErrorCount)
	}
	if rep.Provider != "NVIDIA" || rep.Model != "nvidia/llama-3.1-nemotron-70b-instruct" {
		t.Errorf("provenance = %q/%q", rep.Provider, rep.Model)
	}
	if rep.InputTokens != 1500 || rep.OutputTokens != 250 {
		t.Errorf("tokens = %d/%d", rep.InputTokens, rep.OutputTokens)
	}
	if rep.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not set")
	}
	if !rep.RemoteAnalysis() {
		t.Error("RemoteAnalysis() = false for a report with stats")
	}
}

func TestBuild_FallbackHasNoProvenance(t *testing.T) {
	rep := Build("/var/log/app.log", sampleReport().Summary, sampleAnalysis, nil)

	if rep.Provider != "" || rep.Model != "" || rep.InputTokens != 0 {
		t.Errorf("fallback report carries provenance: %+v", rep)
	}
	if rep.RemoteAnalysis() {
		t.Error("RemoteAnalysis() = true for a fallback report")
	}
}

func TestWrite_Markdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")

	if err := Write(path, FormatMarkdown, sampleReport()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "# 🔍 Log Analysis Report\n") {
		t.Errorf("unexpected report opening:\n%s", content)
	}
	if !strings.Contains(content, "ROOT CAUSE: Database connectivity failure.") {
		t.Errorf("analysis missing from report:\n%s", content)
	}
}

func TestWrite_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")

	if err := Write(path, FormatJSON, sampleReport()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	if !strings.Contains(string(data), `"error_count": 6`) {
		t.Errorf("summary missing from JSON report:\n%s", data)
	}
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xml")

	err := Write(path, "xml", sampleReport())
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if !strings.Contains(err.Error(), "unsupported report format") {
		t.Errorf("error = %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("no file should be written for an unsupported format")
	}
}

func TestWrite_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "report.md")

	if err := Write(path, FormatMarkdown, sampleReport()); err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
