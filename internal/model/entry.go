// Package model holds the data contract shared by the parsing, detection,
// analysis and reporting stages of a triage run.
package model

// LogEntry represents a single parsed log line.
type LogEntry struct {
	Timestamp string `json:"timestamp"` // format-dependent; "unknown" when absent
	Level     string `json:"level"`     // uppercased; open vocabulary
	Message   string `json:"message"`   // parsed message content
	Raw       string `json:"raw"`       // original line text
}

// errorLevels is the set of severities treated as errors by the detector
// and the analyzer sample selection.
var errorLevels = map[string]bool{
	"ERROR":    true,
	"CRITICAL": true,
	"FATAL":    true,
}

// IsError reports whether the entry's level counts as an error.
// Levels are matched exactly against the already-uppercased set.
func (e LogEntry) IsError() bool {
	return errorLevels[e.Level]
}
