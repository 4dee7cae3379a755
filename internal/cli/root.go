// Package cli wires the triage pipeline into the logtriage command tree.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "logtriage",
	Short: "AI-powered production log triage",
	Long: `logtriage reads a production log file, classifies every line, surfaces
recurring error patterns and cascading failures, and asks an LLM for a
root cause analysis with recommended fixes. Without an API key the
analysis falls back to built-in heuristics.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree. Build metadata is injected by main.
func Execute(ctx context.Context, version, gitCommit, buildTime string) error {
	rootCmd.Version = formatVersion(version, gitCommit, buildTime)
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func formatVersion(version, gitCommit, buildTime string) string {
	v := version
	if gitCommit != "unknown" {
		v += fmt.Sprintf("\n  commit: %s", gitCommit)
	}
	if buildTime != "unknown" {
		v += fmt.Sprintf("\n  built:  %s", buildTime)
	}
	return v
}
