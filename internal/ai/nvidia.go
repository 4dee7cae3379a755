package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Low temperature keeps the analysis factual and reproducible across runs.
const completionTemperature = 0.2

// NvidiaClient wraps the NVIDIA API catalog's OpenAI-compatible REST API
// (integrate.api.nvidia.com). Any OpenAI-compatible chat-completions
// endpoint works by overriding BaseURL.
type NvidiaClient struct {
	baseURL    string
	apiKey     string
	model      string
	maxTokens  int
	httpClient *http.Client
}

// NvidiaConfig holds NVIDIA-specific configuration
type NvidiaConfig struct {
	BaseURL        string // e.g., "https://integrate.api.nvidia.com/v1"
	APIKey         string
	Model          string // e.g., "nvidia/llama-3.1-nemotron-70b-instruct"
	TimeoutSeconds int    // Request timeout
	MaxTokens      int    // Max tokens in response
}

// openAIChatRequest is the request body for OpenAI-compatible /chat/completions
type openAIChatRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens"`
}

// openAIMessage represents a chat message in OpenAI format
type openAIMessage struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// openAIChatResponse is the response from OpenAI-compatible /chat/completions
type openAIChatResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int           `json:"index"`
		Message      openAIMessage `json:"message"`
		FinishReason string        `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// NewNvidiaClient creates a new NVIDIA API client
func NewNvidiaClient(cfg NvidiaConfig) (*NvidiaClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("NVIDIA API key is required")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://integrate.api.nvidia.com/v1"
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	if cfg.Model == "" {
		cfg.Model = "nvidia/llama-3.1-nemotron-70b-instruct"
	}

	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 30
	}

	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 500
	}

	return &NvidiaClient{
		baseURL:   cfg.BaseURL,
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// Complete sends one chat completion request and returns the first choice's
// content verbatim. There is no retry: a triage run makes a single attempt
// and the caller degrades to rule-based analysis on any failure.
func (c *NvidiaClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, *Stats, error) {
	startTime := time.Now()

	response, err := c.callAPI(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", nil, err
	}

	if len(response.Choices) == 0 {
		return "", nil, fmt.Errorf("empty response from NVIDIA API (no choices)")
	}

	responseText := response.Choices[0].Message.Content
	if responseText == "" {
		return "", nil, fmt.Errorf("empty response from NVIDIA API")
	}

	stats := &Stats{
		Provider:        c.GetProviderName(),
		Model:           c.model,
		InputTokens:     response.Usage.PromptTokens,
		OutputTokens:    response.Usage.CompletionTokens,
		DurationSeconds: time.Since(startTime).Seconds(),
	}

	return responseText, stats, nil
}

// callAPI makes the actual API call using the OpenAI-compatible endpoint
func (c *NvidiaClient) callAPI(ctx context.Context, systemPrompt, userPrompt string) (*openAIChatResponse, error) {
	request := openAIChatRequest{
		Model: c.model,
		Messages: []openAIMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: completionTemperature,
		MaxTokens:   c.maxTokens,
	}

	headers := map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}

	url := c.baseURL + "/chat/completions"
	return doJSONPost[openAIChatResponse](ctx, c.httpClient, url, request, headers)
}

// GetProviderName returns the name of the provider
func (c *NvidiaClient) GetProviderName() string {
	return "NVIDIA"
}

// Ensure NvidiaClient implements Provider interface
var _ Provider = (*NvidiaClient)(nil)
