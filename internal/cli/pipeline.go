package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/triagelab/logtriage/internal/ai"
	"github.com/triagelab/logtriage/internal/config"
	"github.com/triagelab/logtriage/internal/detector"
	"github.com/triagelab/logtriage/internal/logging"
	"github.com/triagelab/logtriage/internal/parser"
	"github.com/triagelab/logtriage/internal/report"
	"github.com/triagelab/logtriage/pkg/logger"
)

// runPipeline drives one triage run: parse, detect, analyze, report.
// outputPath empty means terminal output only.
func runPipeline(ctx context.Context, path, outputPath, format string) error {
	if outputPath != "" && format != report.FormatMarkdown && format != report.FormatJSON {
		return fmt.Errorf("unsupported report format: %q (supported: markdown, json)", format)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	baseLog := logger.New(logger.Config{
		Level:      level,
		LogDir:     cfg.LogDir,
		Filename:   "logtriage.log",
		MaxSizeMB:  10,
		MaxBackups: 5,
		Console:    true,
	})
	log := logging.NewSecure(baseLog)

	fmt.Fprintf(os.Stderr, "\nAnalyzing %s...\n\n", path)

	p := parser.New(cfg.MaxLogSizeBytes(), log.WithComponent("parser"))
	entries, info, err := p.ParseFile(path)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no log entries found in %s", path)
	}
	log.Debug().
		Str("path", info.Path).
		Int64("size_bytes", info.SizeBytes).
		Int("lines", info.Lines).
		Msg("Log file parsed")

	fmt.Fprintln(os.Stderr, "Detecting patterns...")
	summary := detector.New().Analyze(entries)

	fmt.Fprintln(os.Stderr, "Running AI analysis...")
	var provider ai.Provider
	if cfg.HasCredential() {
		provider, err = ai.NewProviderFromConfig(cfg)
		if err != nil {
			log.Warn().Err(err).Msg("AI provider unavailable, using rule-based analysis")
		}
	} else {
		log.Debug().Msg("No API key configured, using rule-based analysis")
	}

	analysis, stats := ai.NewAnalyzer(provider, log.WithComponent("ai")).
		Analyze(ctx, summary, detector.FilterErrors(entries))

	rep := report.Build(path, summary, analysis, stats)
	if err := report.NewTerminalRenderer().Render(rep); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if outputPath != "" {
		if err := report.Write(outputPath, format, rep); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✓ Report saved to %s\n", outputPath)
	}

	return nil
}
