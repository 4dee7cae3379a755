// Package report assembles triage run results and renders them to the
// terminal, to markdown or to JSON.
package report

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/triagelab/logtriage/internal/ai"
	"github.com/triagelab/logtriage/internal/model"
)

// Supported file report formats.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Build assembles a report from the pipeline outputs. A nil stats means the
// rule-based analysis answered and the provenance fields stay empty.
func Build(source string, summary model.PatternSummary, analysis string, stats *ai.Stats) model.Report {
	rep := model.Report{
		GeneratedAt: time.Now(),
		Source:      source,
		Summary:     summary,
		Analysis:    analysis,
	}
	if stats != nil {
		rep.Provider = stats.Provider
		rep.Model = stats.Model
		rep.InputTokens = stats.InputTokens
		rep.OutputTokens = stats.OutputTokens
		rep.DurationSeconds = stats.DurationSeconds
	}
	return rep
}

// Write renders the report in the given format and writes it to path.
// The file is only touched after the render succeeded.
func Write(path, format string, rep model.Report) error {
	var buf bytes.Buffer

	switch format {
	case FormatMarkdown:
		if err := WriteMarkdown(&buf, rep); err != nil {
			return fmt.Errorf("failed to render markdown report: %w", err)
		}
	case FormatJSON:
		if err := WriteJSON(&buf, rep); err != nil {
			return fmt.Errorf("failed to render JSON report: %w", err)
		}
	default:
		return fmt.Errorf("unsupported report format: %q (supported: markdown, json)", format)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}
