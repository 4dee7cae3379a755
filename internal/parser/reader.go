package parser

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/triagelab/logtriage/internal/logging"
	"github.com/triagelab/logtriage/internal/model"
)

// defaultMaxSizeBytes caps ingestion when the caller passes no limit.
const defaultMaxSizeBytes = 10 * 1024 * 1024

// scannerBufferSize allows lines up to 1MB before the scanner gives up.
const scannerBufferSize = 1024 * 1024

// SourceInfo describes the ingested log file.
type SourceInfo struct {
	Path      string
	SizeBytes int64
	Modified  time.Time
	Lines     int // non-blank lines turned into entries
}

// Parser reads a log file from disk and classifies every line.
type Parser struct {
	maxSizeBytes int64
	log          *logging.SecureLogger
}

// New creates a parser enforcing the given size cap in bytes. A cap of zero
// or less falls back to 10MB.
func New(maxSizeBytes int64, log *logging.SecureLogger) *Parser {
	if maxSizeBytes <= 0 {
		maxSizeBytes = defaultMaxSizeBytes
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Parser{maxSizeBytes: maxSizeBytes, log: log}
}

// ParseFile reads the file at path and returns one entry per non-blank line.
// An empty file yields an empty slice, not an error. Lines are trimmed of
// surrounding whitespace and stripped of invalid UTF-8 before classification.
func (p *Parser) ParseFile(path string) ([]model.LogEntry, *SourceInfo, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("log file not found: %s", path)
		}
		return nil, nil, fmt.Errorf("failed to stat log file: %w", err)
	}

	if fileInfo.IsDir() {
		return nil, nil, fmt.Errorf("log path is a directory: %s", path)
	}

	if fileInfo.Mode().Perm()&0400 == 0 {
		return nil, nil, fmt.Errorf("log file is not readable: %s", path)
	}

	if fileInfo.Size() > p.maxSizeBytes {
		return nil, nil, fmt.Errorf("log file exceeds maximum size of %dMB (size: %.2fMB)",
			p.maxSizeBytes/1024/1024, float64(fileInfo.Size())/1024/1024)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var entries []model.LogEntry

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), scannerBufferSize)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		// Keep going on encoding garbage instead of failing the run.
		line = strings.ToValidUTF8(line, "")
		entries = append(entries, Classify(line))
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read log file: %w", err)
	}

	info := &SourceInfo{
		Path:      path,
		SizeBytes: fileInfo.Size(),
		Modified:  fileInfo.ModTime(),
		Lines:     len(entries),
	}

	p.log.Debug().
		Str("path", path).
		Int64("size_bytes", info.SizeBytes).
		Int("entries", len(entries)).
		Msg("Parsed log file")

	return entries, info, nil
}

// ParseLines classifies a batch of already-loaded lines. Blank lines are
// skipped the same way ParseFile skips them.
func ParseLines(lines []string) []model.LogEntry {
	var entries []model.LogEntry
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		entries = append(entries, Classify(line))
	}
	return entries
}
