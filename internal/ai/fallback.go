package ai

import (
	"fmt"
	"strings"

	"github.com/triagelab/logtriage/internal/model"
)

// FallbackAnalysis produces a rule-based analysis in the same
// ROOT CAUSE / FIXES / PREVENTION shape the model is asked for. Used
// whenever no remote completion is available.
func FallbackAnalysis(summary model.PatternSummary) string {
	if summary.ErrorCount == 0 {
		return composeAnalysis(
			"No errors detected in logs. System appears healthy.",
			[3]string{
				"No action required",
				"Continue monitoring",
				"Review info/warning logs for potential issues",
			},
			"Maintain current monitoring and alerting",
		)
	}

	topError := strings.ToLower(summary.TopError())

	switch {
	case strings.Contains(topError, "connection") || strings.Contains(topError, "refused"):
		return composeAnalysis(
			"Network connectivity or service connection failure",
			[3]string{
				"Check network connectivity between services",
				"Verify target service is running and accepting connections",
				"Review firewall rules and security groups",
			},
			"Implement health checks, connection pooling, and retry logic with exponential backoff",
		)

	case strings.Contains(topError, "timeout"):
		return composeAnalysis(
			"Service timeout - operations taking too long",
			[3]string{
				"Increase timeout values in configuration",
				"Optimize slow database queries or API calls",
				"Add caching layer for frequently accessed data",
			},
			"Set up performance monitoring and alerts for slow operations",
		)

	case strings.Contains(topError, "memory") || strings.Contains(topError, "oom"):
		return composeAnalysis(
			"Memory exhaustion - possible memory leak",
			[3]string{
				"Increase memory allocation for the service",
				"Review code for memory leaks",
				"Restart affected services",
			},
			"Add memory monitoring, implement proper cleanup, and consider memory profiling",
		)

	case strings.Contains(topError, "permission") || strings.Contains(topError, "denied"):
		return composeAnalysis(
			"Permission or authentication failure",
			[3]string{
				"Review and update service permissions",
				"Verify credentials are correct and not expired",
				"Check IAM roles and policies",
			},
			"Implement proper credential rotation and access control management",
		)

	default:
		return composeAnalysis(
			fmt.Sprintf("Multiple errors detected: %d total, %d unique patterns",
				summary.ErrorCount, summary.UniqueErrors),
			[3]string{
				"Review the top error messages listed above",
				"Check service logs around the error timestamps",
				"Correlate with recent deployments or configuration changes",
			},
			"Enhance logging, add monitoring alerts, and implement gradual rollouts",
		)
	}
}

// composeAnalysis assembles the marker-structured analysis text.
func composeAnalysis(rootCause string, fixes [3]string, prevention string) string {
	var b strings.Builder
	b.WriteString("ROOT CAUSE: ")
	b.WriteString(rootCause)
	b.WriteString("\n\nFIXES:\n")
	for i, fix := range fixes {
		fmt.Fprintf(&b, "%d. %s\n", i+1, fix)
	}
	b.WriteString("\nPREVENTION: ")
	b.WriteString(prevention)
	return b.String()
}
