package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/triagelab/logtriage/internal/model"
)

// markdownTimeline caps the timeline section of the file report.
const markdownTimeline = 10

// WriteMarkdown renders the report as a markdown document.
func WriteMarkdown(w io.Writer, rep model.Report) error {
	var b strings.Builder

	b.WriteString("# 🔍 Log Analysis Report\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n\n", rep.GeneratedAt.Format("2006-01-02 15:04:05"))

	b.WriteString("## 📊 Summary\n\n")
	fmt.Fprintf(&b, "- **Total Entries:** %d\n", rep.Summary.TotalEntries)
	fmt.Fprintf(&b, "- **Error Count:** %d\n", rep.Summary.ErrorCount)
	fmt.Fprintf(&b, "- **Unique Error Patterns:** %d\n", rep.Summary.UniqueErrors)

	b.WriteString("\n## 🔥 Top Error Patterns\n\n")
	for i, p := range rep.Summary.TopErrors {
		fmt.Fprintf(&b, "%d. **(%dx)** %s\n", i+1, p.Count, p.Message)
	}

	b.WriteString("\n## 📅 Error Timeline\n\n")
	timeline := rep.Summary.Timeline
	if len(timeline) > markdownTimeline {
		timeline = timeline[:markdownTimeline]
	}
	for _, e := range timeline {
		fmt.Fprintf(&b, "- `[%s]` %s\n", e.Time, e.Message)
	}

	fmt.Fprintf(&b, "\n## 🤖 AI Analysis\n\n%s\n", rep.Analysis)
	b.WriteString("\n---\n\n*Report generated by AI-Powered Production Log Analyzer*\n")

	_, err := io.WriteString(w, b.String())
	return err
}
