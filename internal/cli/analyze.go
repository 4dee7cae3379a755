package cli

import (
	"github.com/spf13/cobra"

	"github.com/triagelab/logtriage/internal/report"
)

var (
	outputPath   string
	outputFormat string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a log file",
	Long: `Parse a log file, detect error patterns and produce a root cause
analysis. The report is printed to the terminal; with --output it is
also written to a file.

Examples:
  logtriage analyze myapp.log
  logtriage analyze app.log -o report.md
  logtriage analyze app.log -o report.json --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write a report file to this path")
	analyzeCmd.Flags().StringVar(&outputFormat, "format", report.FormatMarkdown, "report file format: markdown, json")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	return runPipeline(cmd.Context(), args[0], outputPath, outputFormat)
}
