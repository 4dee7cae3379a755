package model

// ErrorPattern is a recurring error signature with its occurrence count.
// The message is the normalized form used as the grouping key.
type ErrorPattern struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// TimelineEvent is one error occurrence on the summary timeline.
type TimelineEvent struct {
	Time    string `json:"time"`
	Message string `json:"message"`
}

// Cascade records a burst of consecutive error entries treated as a single
// incident. First and Last carry the timestamps of the bucket boundaries.
type Cascade struct {
	Count int    `json:"count"`
	First string `json:"first"`
	Last  string `json:"last"`
}

// PatternSummary is the aggregate analysis result for one run. It is built
// once by the detector and read by both the root-cause analyzer and the
// report renderers.
type PatternSummary struct {
	TotalEntries int             `json:"total_entries"`
	ErrorCount   int             `json:"error_count"`
	UniqueErrors int             `json:"unique_errors"`
	LevelCounts  map[string]int  `json:"level_counts"`
	TopErrors    []ErrorPattern  `json:"top_errors"`
	Timeline     []TimelineEvent `json:"timeline"`
	Cascades     []Cascade       `json:"cascades"`
}

// TopError returns the highest-ranked error signature, or "" when the run
// produced no errors.
func (s PatternSummary) TopError() string {
	if len(s.TopErrors) == 0 {
		return ""
	}
	return s.TopErrors[0].Message
}
