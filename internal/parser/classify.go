// Package parser turns raw log lines into structured entries. It recognizes
// a small set of common timestamp layouts and degrades gracefully for
// everything else, so a triage run never fails on format drift.
package parser

import (
	"regexp"
	"strings"

	"github.com/triagelab/logtriage/internal/model"
)

// format is one recognized line layout. Patterns are anchored at the start
// of the line and tried in order; the first match wins.
type format struct {
	name    string
	re      *regexp.Regexp
	hasTime bool // first capture group is a timestamp
}

var formats = []format{
	{
		// 2024-01-15 14:23:15 ERROR: message
		name:    "iso",
		re:      regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2}:\d{2})\s+(\w+):\s+(.+)`),
		hasTime: true,
	},
	{
		// Jan 15 14:23:15 ERROR: message
		name:    "syslog",
		re:      regexp.MustCompile(`^(\w{3}\s+\d{1,2}\s+\d{2}:\d{2}:\d{2})\s+(\w+):\s+(.+)`),
		hasTime: true,
	},
	{
		// [2024-01-15 14:23:15] ERROR message
		name:    "bracketed",
		re:      regexp.MustCompile(`^\[(\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2}:\d{2})\]\s+(\w+)\s+(.+)`),
		hasTime: true,
	},
	{
		// ERROR: message or [ERROR]: message
		name:    "level-only",
		re:      regexp.MustCompile(`^\[?(\w+)\]?:\s+(.+)`),
		hasTime: false,
	},
}

// unknownTimestamp marks entries whose line carried no parseable timestamp.
const unknownTimestamp = "unknown"

// Classify parses a single log line into a structured entry. Lines matching
// no known format degrade to an INFO entry carrying the whole line as its
// message, never an error.
func Classify(line string) model.LogEntry {
	for _, f := range formats {
		m := f.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if f.hasTime {
			return model.LogEntry{
				Timestamp: m[1],
				Level:     strings.ToUpper(m[2]),
				Message:   m[3],
				Raw:       line,
			}
		}
		return model.LogEntry{
			Timestamp: unknownTimestamp,
			Level:     strings.ToUpper(m[1]),
			Message:   m[2],
			Raw:       line,
		}
	}

	return model.LogEntry{
		Timestamp: unknownTimestamp,
		Level:     "INFO",
		Message:   line,
		Raw:       line,
	}
}
