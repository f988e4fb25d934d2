package ai

import (
	"fmt"

	"emailsmart-backend/pkg/gemini"
)

// Config holds extraction provider configuration.
//
// The API key is injected per call site rather than read from ambient state:
// a factory invocation builds a fresh provider bound to exactly this
// credential, so a credential swapped between calls takes effect immediately.
type Config struct {
	Provider ProviderType

	// Gemini config
	GeminiAPIKey   string
	GeminiModel    string // empty uses the provider default
	ThinkingBudget int32  // bounded reasoning effort, 0 uses the provider default
}

// NewThreadExtractor creates a ThreadExtractor based on the config.
// This is the factory function - switch provider by changing config.Provider.
func NewThreadExtractor(cfg Config) (ThreadExtractor, error) {
	switch cfg.Provider {
	case ProviderGemini, "":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for Gemini provider")
		}
		return gemini.NewService(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.ThinkingBudget), nil

	default:
		return nil, fmt.Errorf("unknown extraction provider: %s", cfg.Provider)
	}
}
