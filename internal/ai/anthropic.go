package ai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/liushuangls/go-anthropic/v2"

	internalerrors "github.com/triagelab/logtriage/internal/errors"
)

// AnthropicClient wraps the Anthropic Messages API as an alternative
// analysis backend.
type AnthropicClient struct {
	client    *anthropic.Client
	model     string
	maxTokens int
}

// AnthropicConfig holds Anthropic-specific configuration
type AnthropicConfig struct {
	APIKey         string
	Model          string // e.g., "claude-sonnet-4-5-20250929"
	TimeoutSeconds int
	MaxTokens      int
}

// NewAnthropicClient creates a new Anthropic client
func NewAnthropicClient(cfg AnthropicConfig) (*AnthropicClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("Anthropic model is required")
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 30
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 500
	}

	client := anthropic.NewClient(
		cfg.APIKey,
		anthropic.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		}),
	)

	return &AnthropicClient{
		client:    client,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}, nil
}

// Complete sends one message request and returns the text content verbatim.
// Single attempt, same contract as the NVIDIA client.
func (c *AnthropicClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, *Stats, error) {
	startTime := time.Now()

	request := anthropic.MessagesRequest{
		Model: anthropic.Model(c.model),
		Messages: []anthropic.Message{
			{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewTextMessageContent(userPrompt),
				},
			},
		},
		System:    systemPrompt,
		MaxTokens: c.maxTokens,
	}

	response, err := c.client.CreateMessages(ctx, request)
	if err != nil {
		// Keep credentials out of surfaced errors
		return "", nil, internalerrors.Wrapf(err, "API call failed")
	}

	if len(response.Content) == 0 {
		return "", nil, fmt.Errorf("empty response from Anthropic API")
	}

	responseText := ""
	for _, content := range response.Content {
		if content.Type == "text" && content.Text != nil {
			responseText += *content.Text
		}
	}
	if responseText == "" {
		return "", nil, fmt.Errorf("empty response from Anthropic API")
	}

	stats := &Stats{
		Provider:        c.GetProviderName(),
		Model:           c.model,
		InputTokens:     response.Usage.InputTokens,
		OutputTokens:    response.Usage.OutputTokens,
		DurationSeconds: time.Since(startTime).Seconds(),
	}

	return responseText, stats, nil
}

// GetProviderName returns the name of the provider
func (c *AnthropicClient) GetProviderName() string {
	return "Anthropic"
}

// Ensure AnthropicClient implements Provider interface
var _ Provider = (*AnthropicClient)(nil)
