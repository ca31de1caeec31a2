package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms/googleai"
)

// GoogleAIConfig holds configuration for the GoogleAI (Gemini) provider
type GoogleAIConfig struct {
	APIKey  string // required
	Model   string // defaults to gemini-2.5-flash
	Persona string // optional persona override
}

// NewGoogleAI creates the default response/translation provider
func NewGoogleAI(ctx context.Context, cfg GoogleAIConfig) (*ChatModel, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("googleai: missing API key (set GEMINI_API_KEY or api_key in config)")
	}
	if cfg.Model == "" {
		// Optimized for speed and multimodal input
		cfg.Model = "gemini-2.5-flash"
	}

	model, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create GoogleAI client: %w", err)
	}

	return &ChatModel{model: model, name: "googleai", persona: cfg.Persona}, nil
}
