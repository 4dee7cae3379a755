package ai

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/triagelab/logtriage/internal/model"
)

const (
	// contextTopErrors caps the recurring signatures quoted to the model.
	contextTopErrors = 3
	// contextSampleErrors caps the raw sample lines quoted to the model.
	contextSampleErrors = 5
	// contextMsgLimit caps each quoted sample message.
	contextMsgLimit = 100
)

// GetSystemPrompt returns the system prompt framing the model as an SRE.
func GetSystemPrompt() string {
	return "You are an expert SRE analyzing production logs. Provide concise, actionable root cause analysis and fixes."
}

// BuildContext renders the pattern summary and sample errors into the text
// block embedded in the user prompt.
func BuildContext(summary model.PatternSummary, sampleErrors []model.LogEntry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Total log entries: %d\n", summary.TotalEntries)
	fmt.Fprintf(&b, "Errors found: %d\n", summary.ErrorCount)
	fmt.Fprintf(&b, "Unique error patterns: %d\n", summary.UniqueErrors)

	b.WriteString("\nTop error messages:\n")
	top := summary.TopErrors
	if len(top) > contextTopErrors {
		top = top[:contextTopErrors]
	}
	for _, e := range top {
		fmt.Fprintf(&b, "- (%dx) %s\n", e.Count, e.Message)
	}

	b.WriteString("\nSample error logs:\n")
	samples := sampleErrors
	if len(samples) > contextSampleErrors {
		samples = samples[:contextSampleErrors]
	}
	for _, e := range samples {
		fmt.Fprintf(&b, "[%s] %s: %s\n", e.Timestamp, e.Level, truncateRunes(e.Message, contextMsgLimit))
	}

	return b.String()
}

// GetUserPrompt constructs the user prompt around a context block. The
// context is sanitized because it embeds untrusted log text.
func GetUserPrompt(context string) string {
	return fmt.Sprintf(`Analyze these production logs and provide:
1. Root cause (one sentence)
2. Top 3 recommended fixes
3. Prevention strategy

Log Summary:
%s

Format your response as:
ROOT CAUSE: <one sentence>
FIXES:
1. <fix>
2. <fix>
3. <fix>
PREVENTION: <strategy>`, SanitizeLogContent(context))
}

// promptInjectionPatterns contains regex patterns for common prompt injection attempts
var promptInjectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(all\s+)?(previous|prior|above)\s+(instructions?|prompts?|rules?)`),
	regexp.MustCompile(`(?i)disregard\s+(all\s+)?(previous|prior|above)\s+(instructions?|prompts?|rules?)`),
	regexp.MustCompile(`(?i)forget\s+(all\s+)?(previous|prior|above)\s+(instructions?|prompts?|rules?)`),
	regexp.MustCompile(`(?i)you\s+are\s+now\s+a`),
	regexp.MustCompile(`(?i)new\s+instructions?:`),
	regexp.MustCompile(`(?i)system\s*prompt\s*:`),
	regexp.MustCompile(`(?i)\bASSISTANT\s*:`),
	regexp.MustCompile(`(?i)\bHUMAN\s*:`),
	regexp.MustCompile(`(?i)\bUSER\s*:`),
	regexp.MustCompile(`(?i)\bSYSTEM\s*:`),
}

var excessiveNewlines = regexp.MustCompile(`\n{4,}`)

// SanitizeLogContent sanitizes log-derived text before it is sent to a model.
// Removes non-printable characters (except newlines, tabs, carriage returns),
// masks common prompt injection phrasing, and collapses excessive newlines.
func SanitizeLogContent(content string) string {
	var sanitized strings.Builder
	sanitized.Grow(len(content))

	for _, r := range content {
		if unicode.IsPrint(r) || r == '\n' || r == '\t' || r == '\r' {
			sanitized.WriteRune(r)
		}
	}

	result := sanitized.String()

	for _, pattern := range promptInjectionPatterns {
		result = pattern.ReplaceAllString(result, "[FILTERED]")
	}

	return excessiveNewlines.ReplaceAllString(result, "\n\n\n")
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
