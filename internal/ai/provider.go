package ai

import "context"

// Provider defines the interface for remote LLM backends (NVIDIA, Anthropic).
type Provider interface {
	// Complete sends the prompts and returns the model's reply text verbatim.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, *Stats, error)

	// GetProviderName returns the name of the provider (e.g., "NVIDIA", "Anthropic")
	GetProviderName() string
}

// Stats holds statistics about one completion call.
type Stats struct {
	Provider        string
	Model           string
	InputTokens     int
	OutputTokens    int
	DurationSeconds float64
}
