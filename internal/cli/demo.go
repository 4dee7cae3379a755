package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/triagelab/logtriage/internal/report"
)

// demoLog is a short outage-and-recovery sequence: a database failure
// cascading into API errors, then the service coming back.
const demoLog = `2024-01-15 14:23:15 ERROR: Connection refused to database at db.example.com:5432
2024-01-15 14:23:16 ERROR: Failed to fetch user data from database
2024-01-15 14:23:17 ERROR: API request to /api/users failed with status 500
2024-01-15 14:23:18 ERROR: Connection refused to database at db.example.com:5432
2024-01-15 14:23:19 ERROR: Failed to fetch user data from database
2024-01-15 14:23:20 ERROR: API request to /api/products failed with status 500
2024-01-15 14:24:00 INFO: Database connection restored
2024-01-15 14:24:01 INFO: Service recovered, processing requests
`

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the analysis on a bundled sample log",
	RunE:  runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, _ []string) error {
	fmt.Fprintln(os.Stderr, "🎮 Demo mode - analyzing sample logs")

	path := filepath.Join(os.TempDir(), "sample_app.log")
	if err := os.WriteFile(path, []byte(demoLog), 0644); err != nil {
		return fmt.Errorf("failed to write sample log: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Sample log created at %s\n", path)

	return runPipeline(cmd.Context(), path, "", report.FormatMarkdown)
}
