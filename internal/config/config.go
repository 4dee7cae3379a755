// Package config loads and validates application configuration from the
// environment. Priority: OS environment variables, overridden by a .env file
// in the working directory.
package config

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Provider names accepted in LLM_PROVIDER.
const (
	ProviderNvidia    = "nvidia"
	ProviderAnthropic = "anthropic"
)

// Config holds all application configuration.
type Config struct {
	// LLM Provider Selection
	LLMProvider string // "nvidia" (default) or "anthropic"

	// NVIDIA Settings (used when LLMProvider = "nvidia")
	NvidiaAPIKey  string // NVIDIA_API_KEY, falling back to OPENAI_API_KEY
	NvidiaBaseURL string // e.g., "https://integrate.api.nvidia.com/v1"
	NvidiaModel   string // e.g., "nvidia/llama-3.1-nemotron-70b-instruct"

	// Anthropic Settings (used when LLMProvider = "anthropic")
	AnthropicAPIKey string
	ClaudeModel     string

	// AI request settings
	AITimeoutSeconds int
	AIMaxTokens      int

	// Log ingestion
	MaxLogSizeMB int

	// Application
	LogLevel string
	LogDir   string // empty disables file logging
}

// Load loads configuration from the environment and a .env file if present.
func Load() (*Config, error) {
	// Set up viper first to read OS environment variables
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// godotenv.Load() sets OS env vars from .env, which viper then reads
	_ = godotenv.Load()

	setDefaults()

	cfg := &Config{
		LLMProvider:     viper.GetString("LLM_PROVIDER"),
		NvidiaAPIKey:    viper.GetString("NVIDIA_API_KEY"),
		NvidiaBaseURL:   viper.GetString("NVIDIA_BASE_URL"),
		NvidiaModel:     viper.GetString("NVIDIA_MODEL"),
		AnthropicAPIKey: viper.GetString("ANTHROPIC_API_KEY"),
		ClaudeModel:     viper.GetString("CLAUDE_MODEL"),

		AITimeoutSeconds: viper.GetInt("AI_TIMEOUT_SECONDS"),
		AIMaxTokens:      viper.GetInt("AI_MAX_TOKENS"),

		MaxLogSizeMB: viper.GetInt("MAX_LOG_SIZE_MB"),

		LogLevel: viper.GetString("LOG_LEVEL"),
		LogDir:   viper.GetString("LOG_DIR"),
	}

	// NVIDIA cloud endpoints also accept OpenAI-style keys
	if cfg.NvidiaAPIKey == "" {
		cfg.NvidiaAPIKey = viper.GetString("OPENAI_API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("LLM_PROVIDER", ProviderNvidia)
	viper.SetDefault("NVIDIA_BASE_URL", "https://integrate.api.nvidia.com/v1")
	viper.SetDefault("NVIDIA_MODEL", "nvidia/llama-3.1-nemotron-70b-instruct")
	viper.SetDefault("CLAUDE_MODEL", "claude-sonnet-4-5-20250929")

	viper.SetDefault("AI_TIMEOUT_SECONDS", 30)
	viper.SetDefault("AI_MAX_TOKENS", 500)

	viper.SetDefault("MAX_LOG_SIZE_MB", 10)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_DIR", "")
}

// Validate validates the configuration. A missing API key is not an error:
// the analyzer degrades to rule-based analysis without a credential. A key
// that is present but malformed fails fast instead.
func (c *Config) Validate() error {
	if err := c.validateLLMProvider(); err != nil {
		return err
	}

	if c.MaxLogSizeMB < 1 || c.MaxLogSizeMB > 100 {
		return fmt.Errorf("MAX_LOG_SIZE_MB must be between 1 and 100")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error")
	}

	if c.AITimeoutSeconds < 5 || c.AITimeoutSeconds > 600 {
		return fmt.Errorf("AI_TIMEOUT_SECONDS must be between 5 and 600")
	}
	if c.AIMaxTokens < 100 || c.AIMaxTokens > 16000 {
		return fmt.Errorf("AI_MAX_TOKENS must be between 100 and 16000")
	}

	return nil
}

// constantTimePrefixMatch checks if s starts with prefix using constant-time
// comparison. Returns false if s is shorter than prefix.
func constantTimePrefixMatch(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s[:len(prefix)]), []byte(prefix)) == 1
}

// validateLLMProvider validates LLM provider configuration.
func (c *Config) validateLLMProvider() error {
	validProviders := map[string]bool{
		ProviderNvidia:    true,
		ProviderAnthropic: true,
	}

	if !validProviders[c.LLMProvider] {
		return fmt.Errorf("LLM_PROVIDER must be 'nvidia' or 'anthropic' (got: %s)", c.LLMProvider)
	}

	switch c.LLMProvider {
	case ProviderNvidia:
		if c.NvidiaBaseURL == "" {
			return fmt.Errorf("NVIDIA_BASE_URL is required when LLM_PROVIDER=nvidia")
		}
		if !strings.HasPrefix(c.NvidiaBaseURL, "http://") && !strings.HasPrefix(c.NvidiaBaseURL, "https://") {
			return fmt.Errorf("NVIDIA_BASE_URL must start with 'http://' or 'https://'")
		}
		if c.NvidiaModel == "" {
			return fmt.Errorf("NVIDIA_MODEL is required when LLM_PROVIDER=nvidia")
		}

	case ProviderAnthropic:
		// Key absence means rule-based fallback; a present key must be well-formed.
		if c.AnthropicAPIKey != "" && !constantTimePrefixMatch(c.AnthropicAPIKey, "sk-ant-") {
			return fmt.Errorf("ANTHROPIC_API_KEY must start with 'sk-ant-'")
		}
		if c.ClaudeModel == "" {
			return fmt.Errorf("CLAUDE_MODEL is required when LLM_PROVIDER=anthropic")
		}
	}

	return nil
}

// HasCredential returns true if the active provider has an API key configured.
func (c *Config) HasCredential() bool {
	switch c.LLMProvider {
	case ProviderAnthropic:
		return c.AnthropicAPIKey != ""
	default:
		return c.NvidiaAPIKey != ""
	}
}

// IsNvidia returns true if the LLM provider is NVIDIA.
func (c *Config) IsNvidia() bool {
	return c.LLMProvider == ProviderNvidia
}

// IsAnthropic returns true if the LLM provider is Anthropic.
func (c *Config) IsAnthropic() bool {
	return c.LLMProvider == ProviderAnthropic
}

// GetLLMModel returns the model name for the current LLM provider.
func (c *Config) GetLLMModel() string {
	switch c.LLMProvider {
	case ProviderAnthropic:
		return c.ClaudeModel
	default:
		return c.NvidiaModel
	}
}

// AITimeout returns the AI request timeout as a duration.
func (c *Config) AITimeout() time.Duration {
	return time.Duration(c.AITimeoutSeconds) * time.Second
}

// MaxLogSizeBytes returns the log size cap in bytes.
func (c *Config) MaxLogSizeBytes() int64 {
	return int64(c.MaxLogSizeMB) * 1024 * 1024
}
