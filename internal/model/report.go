package model

import "time"

// Report is the assembled output of one triage run, consumed by every
// renderer. Stat fields are zero when the rule-based analysis answered.
type Report struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Source      string         `json:"source"`
	Summary     PatternSummary `json:"summary"`
	Analysis    string         `json:"analysis"`

	Provider        string  `json:"provider,omitempty"`
	Model           string  `json:"model,omitempty"`
	InputTokens     int     `json:"input_tokens,omitempty"`
	OutputTokens    int     `json:"output_tokens,omitempty"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
}

// RemoteAnalysis reports whether the analysis text came from a remote
// model rather than the rule-based fallback.
func (r Report) RemoteAnalysis() bool {
	return r.Provider != ""
}
