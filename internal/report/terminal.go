package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/triagelab/logtriage/internal/model"
)

// terminalTopErrors caps the patterns shown on screen; the full list goes
// to the file report.
const terminalTopErrors = 5

// terminalTimeline caps the timeline events shown on screen.
const terminalTimeline = 5

// terminalMsgLimit trims pattern messages so a row stays on one line.
const terminalMsgLimit = 80

var (
	styleTitle    = lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true) // cyan
	styleMetric   = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
	styleValue    = lipgloss.NewStyle().Foreground(lipgloss.Color("220")) // yellow
	styleErrValue = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true) // red bold
	styleSection  = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	styleTimeline = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true) // blue
	styleAITitle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true) // green

	styleTitleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("51")).
			Padding(0, 1)
	styleAIBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("42")).
			Padding(0, 1)
)

// TerminalRenderer prints a triage report to the terminal with
// severity-based colors.
type TerminalRenderer struct {
	w io.Writer
}

// NewTerminalRenderer returns a renderer that writes styled text to stdout.
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{w: os.Stdout}
}

func (r *TerminalRenderer) Render(rep model.Report) error {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(styleTitleBox.Render(styleTitle.Render("🔍 Log Analysis Report")))
	b.WriteString("\n\n")

	b.WriteString(styleSection.Render("📊 Summary"))
	b.WriteString("\n")
	writeMetric(&b, "Total Entries", styleValue.Render(fmt.Sprintf("%d", rep.Summary.TotalEntries)))
	writeMetric(&b, "Error Count", styleErrValue.Render(fmt.Sprintf("%d", rep.Summary.ErrorCount)))
	writeMetric(&b, "Unique Errors", styleValue.Render(fmt.Sprintf("%d", rep.Summary.UniqueErrors)))
	b.WriteString("\n")

	if len(rep.Summary.TopErrors) > 0 {
		b.WriteString(styleSection.Render("🔥 Top Error Patterns:"))
		b.WriteString("\n")
		top := rep.Summary.TopErrors
		if len(top) > terminalTopErrors {
			top = top[:terminalTopErrors]
		}
		for i, p := range top {
			fmt.Fprintf(&b, "  %d. (%dx) %s...\n", i+1, p.Count, truncateRunes(p.Message, terminalMsgLimit))
		}
		b.WriteString("\n")
	}

	if len(rep.Summary.Timeline) > 0 {
		b.WriteString(styleTimeline.Render("📅 Error Timeline:"))
		b.WriteString("\n")
		timeline := rep.Summary.Timeline
		if len(timeline) > terminalTimeline {
			timeline = timeline[:terminalTimeline]
		}
		for _, e := range timeline {
			fmt.Fprintf(&b, "  [%s] %s\n", e.Time, e.Message)
		}
		b.WriteString("\n")
	}

	b.WriteString(styleAITitle.Render("🤖 AI Analysis & Recommendations"))
	b.WriteString("\n")
	b.WriteString(styleAIBox.Render(rep.Analysis))
	b.WriteString("\n\n")

	_, err := io.WriteString(r.w, b.String())
	return err
}

func writeMetric(b *strings.Builder, name, value string) {
	fmt.Fprintf(b, "  %s %s\n", styleMetric.Render(fmt.Sprintf("%-15s", name)), value)
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
