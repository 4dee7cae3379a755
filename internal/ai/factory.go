package ai

import (
	"fmt"

	"github.com/triagelab/logtriage/internal/config"
)

// NewProviderFromConfig builds the provider selected by LLM_PROVIDER.
// A missing credential is an error here; callers treat it as "run without
// a provider" rather than aborting.
func NewProviderFromConfig(cfg *config.Config) (Provider, error) {
	switch cfg.LLMProvider {
	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is not set")
		}
		return NewAnthropicClient(AnthropicConfig{
			APIKey:         cfg.AnthropicAPIKey,
			Model:          cfg.ClaudeModel,
			TimeoutSeconds: cfg.AITimeoutSeconds,
			MaxTokens:      cfg.AIMaxTokens,
		})

	case config.ProviderNvidia:
		if cfg.NvidiaAPIKey == "" {
			return nil, fmt.Errorf("NVIDIA_API_KEY is not set (OPENAI_API_KEY is also accepted)")
		}
		return NewNvidiaClient(NvidiaConfig{
			BaseURL:        cfg.NvidiaBaseURL,
			APIKey:         cfg.NvidiaAPIKey,
			Model:          cfg.NvidiaModel,
			TimeoutSeconds: cfg.AITimeoutSeconds,
			MaxTokens:      cfg.AIMaxTokens,
		})

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.LLMProvider)
	}
}
