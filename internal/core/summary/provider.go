// Package summary produces the short natural-language condition report
// shown above the dive cards for the selected date.
package summary

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/penwyp/go-dive-monitor/internal/util"
)

const (
	ProviderGemini = "gemini"
	ProviderNone   = "none"

	DefaultModel     = "gemini-2.0-flash"
	DefaultAPIKeyEnv = "GEMINI_API_KEY"
	DefaultTimeout   = 30 * time.Second
)

var ErrMissingAPIKey = errors.New("summary api key not set")

// Provider is the interface for text generation backends
type Provider interface {
	// GenerateText generates text from a prompt
	GenerateText(ctx context.Context, prompt string) (string, error)

	// Name returns the provider name
	Name() string
}

// Config selects and configures the summary backend
type Config struct {
	Provider  string        `validate:"oneof=gemini none"`
	Model     string        `validate:"required_if=Provider gemini"`
	APIKeyEnv string        `validate:"required_if=Provider gemini"`
	BaseURL   string        `validate:"omitempty,url"`
	Prompt    string
	Timeout   time.Duration `validate:"gte=0"`
}

// ApplyDefaults fills unset fields
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderGemini
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.APIKeyEnv == "" {
		c.APIKeyEnv = DefaultAPIKeyEnv
	}
	if c.Prompt == "" {
		c.Prompt = DefaultPromptTemplate
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
}

// NewProvider builds the configured provider. A nil Provider with a nil
// error means summaries are disabled.
func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case ProviderNone:
		return nil, nil
	case ProviderGemini, "":
		key := os.Getenv(cfg.APIKeyEnv)
		if key == "" {
			util.LogWarn("AI summaries disabled: API key environment variable is empty",
				util.F("env", cfg.APIKeyEnv))
			return nil, ErrMissingAPIKey
		}
		return NewGeminiProvider(key, cfg.Model, cfg.BaseURL), nil
	default:
		return nil, errors.New("unknown summary provider: " + cfg.Provider)
	}
}
