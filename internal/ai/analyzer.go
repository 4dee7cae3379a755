// Package ai produces the root cause analysis for a triage run, either by
// asking a remote LLM or, when that is impossible, by rule-based heuristics.
// Analysis never fails a run: every error path degrades to the fallback.
package ai

import (
	"context"

	"github.com/triagelab/logtriage/internal/logging"
	"github.com/triagelab/logtriage/internal/model"
)

// maxSampleErrors caps how many raw error entries are handed to the analyzer.
const maxSampleErrors = 10

// Analyzer turns a pattern summary into analysis text.
type Analyzer struct {
	provider Provider // nil means rule-based analysis only
	log      *logging.SecureLogger
}

// NewAnalyzer creates an analyzer. A nil provider is valid and selects the
// rule-based fallback unconditionally.
func NewAnalyzer(provider Provider, log *logging.SecureLogger) *Analyzer {
	if log == nil {
		log = logging.Nop()
	}
	return &Analyzer{provider: provider, log: log}
}

// Analyze returns the analysis text for the summary. One remote attempt is
// made; any failure is logged and answered with FallbackAnalysis, so the
// returned text is always usable. Stats is nil when the fallback answered.
func (a *Analyzer) Analyze(ctx context.Context, summary model.PatternSummary, sampleErrors []model.LogEntry) (string, *Stats) {
	if a.provider == nil {
		a.log.Debug().Msg("No AI provider configured, using rule-based analysis")
		return FallbackAnalysis(summary), nil
	}

	if len(sampleErrors) > maxSampleErrors {
		sampleErrors = sampleErrors[:maxSampleErrors]
	}

	logContext := BuildContext(summary, sampleErrors)
	text, stats, err := a.provider.Complete(ctx, GetSystemPrompt(), GetUserPrompt(logContext))
	if err != nil {
		a.log.Warn().
			Err(err).
			Str("provider", a.provider.GetProviderName()).
			Msg("AI analysis failed, using fallback")
		return FallbackAnalysis(summary), nil
	}

	a.log.Debug().
		Str("provider", stats.Provider).
		Str("model", stats.Model).
		Int("input_tokens", stats.InputTokens).
		Int("output_tokens", stats.OutputTokens).
		Float64("duration_seconds", stats.DurationSeconds).
		Msg("AI analysis complete")

	return text, stats
}
