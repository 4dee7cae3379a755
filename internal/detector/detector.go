// Package detector derives aggregate failure patterns from classified log
// entries: level distributions, recurring error signatures, an error
// timeline and cascading failure bursts.
package detector

import (
	"regexp"
	"sort"

	"github.com/triagelab/logtriage/internal/model"
)

const (
	maxTopErrors     = 5
	maxTimelineSize  = 20
	timelineMsgLimit = 80
	signatureLimit   = 100

	// Cascade bucketing. A bucket fills to capacity; the error arriving at
	// a full bucket flushes it and seeds the next one. A trailing bucket
	// that never overflows is not reported.
	cascadeCapacity  = 10
	maxCascades      = 5
	minCascadeErrors = 3
)

var (
	numberRe = regexp.MustCompile(`\b\d+\b`)
	hexRe    = regexp.MustCompile(`\b[0-9a-f]{8,}\b`)
)

// Detector computes a PatternSummary from parsed entries.
type Detector struct{}

// New creates a new pattern detector.
func New() *Detector {
	return &Detector{}
}

// Analyze walks the entries once and returns the aggregate summary.
// Input order is preserved everywhere order matters: the timeline keeps
// arrival order and equal-count error signatures rank first-seen first.
func (d *Detector) Analyze(entries []model.LogEntry) model.PatternSummary {
	levelCounts := make(map[string]int)
	for _, e := range entries {
		levelCounts[e.Level]++
	}

	errors := FilterErrors(entries)

	// Count normalized signatures, remembering first-seen order so that
	// the stable sort below breaks count ties by arrival.
	sigCounts := make(map[string]int)
	var sigOrder []string
	for _, e := range errors {
		sig := NormalizeMessage(e.Message)
		if _, seen := sigCounts[sig]; !seen {
			sigOrder = append(sigOrder, sig)
		}
		sigCounts[sig]++
	}

	topErrors := make([]model.ErrorPattern, 0, len(sigOrder))
	for _, sig := range sigOrder {
		topErrors = append(topErrors, model.ErrorPattern{Message: sig, Count: sigCounts[sig]})
	}
	sort.SliceStable(topErrors, func(i, j int) bool {
		return topErrors[i].Count > topErrors[j].Count
	})
	if len(topErrors) > maxTopErrors {
		topErrors = topErrors[:maxTopErrors]
	}

	return model.PatternSummary{
		TotalEntries: len(entries),
		ErrorCount:   len(errors),
		UniqueErrors: len(sigCounts),
		LevelCounts:  levelCounts,
		TopErrors:    topErrors,
		Timeline:     buildTimeline(errors),
		Cascades:     findCascades(errors),
	}
}

// FilterErrors returns the entries at an error-class level, preserving order.
func FilterErrors(entries []model.LogEntry) []model.LogEntry {
	var errors []model.LogEntry
	for _, e := range entries {
		if e.IsError() {
			errors = append(errors, e)
		}
	}
	return errors
}

// NormalizeMessage collapses variable fragments of an error message into a
// stable signature: digit runs become "N", then long lowercase hex runs
// become "ID", then the result is capped at 100 characters. The digit pass
// runs first so an all-digit token reads "N", not "ID".
func NormalizeMessage(msg string) string {
	normalized := numberRe.ReplaceAllString(msg, "N")
	normalized = hexRe.ReplaceAllString(normalized, "ID")
	return truncateRunes(normalized, signatureLimit)
}

func buildTimeline(errors []model.LogEntry) []model.TimelineEvent {
	n := len(errors)
	if n > maxTimelineSize {
		n = maxTimelineSize
	}
	timeline := make([]model.TimelineEvent, 0, n)
	for _, e := range errors[:n] {
		timeline = append(timeline, model.TimelineEvent{
			Time:    e.Timestamp,
			Message: truncateRunes(e.Message, timelineMsgLimit),
		})
	}
	return timeline
}

func findCascades(errors []model.LogEntry) []model.Cascade {
	cascades := make([]model.Cascade, 0, maxCascades)
	if len(errors) < minCascadeErrors {
		return cascades
	}

	var current []model.LogEntry
	for i, e := range errors {
		if i == 0 {
			current = []model.LogEntry{e}
			continue
		}

		if len(current) < cascadeCapacity {
			current = append(current, e)
			continue
		}

		if len(current) >= minCascadeErrors {
			cascades = append(cascades, model.Cascade{
				Count: len(current),
				First: current[0].Timestamp,
				Last:  current[len(current)-1].Timestamp,
			})
		}
		current = []model.LogEntry{e}
	}

	if len(cascades) > maxCascades {
		cascades = cascades[:maxCascades]
	}
	return cascades
}

// truncateRunes caps s at max characters, not bytes, so multibyte text
// is never cut mid-rune.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
