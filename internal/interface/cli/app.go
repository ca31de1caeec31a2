package cli

import (
	"context"
	"fmt"

	"github.com/neilberkman/biodish/internal/core/config"
	"github.com/neilberkman/biodish/internal/core/i18n"
	"github.com/neilberkman/biodish/internal/core/llm"
	"github.com/neilberkman/biodish/internal/core/store"
)

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if storePathFlag != "" {
		cfg.StorePath = storePathFlag
	}
	if langFlag != "" {
		cfg.Language = langFlag
	}
	return cfg, nil
}

// displayLanguage resolves the startup display language: flag/config first,
// then the process locale.
func displayLanguage(cfg *config.Config) i18n.Language {
	if cfg.Language != "" {
		if l, ok := i18n.ByCode(cfg.Language); ok {
			return l
		}
	}
	return i18n.Detect()
}

// openStore opens the configured blob backend and loads the session store.
func openStore(cfg *config.Config, lang i18n.Language) (*store.SessionStore, error) {
	var blob store.BlobStore
	var err error
	switch cfg.StoreBackend {
	case "file":
		blob, err = store.NewFileBlobStore(cfg.StorePath)
	default:
		blob, err = store.NewSQLiteBlobStore(cfg.StorePath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	st, err := store.New(blob, lang)
	if err != nil {
		_ = blob.Close()
		return nil, err
	}
	return st, nil
}

// newChatModel builds the configured response/translation provider.
func newChatModel(ctx context.Context, cfg *config.Config) (*llm.ChatModel, error) {
	switch cfg.Provider {
	case "bedrock":
		return llm.NewBedrock(ctx, llm.BedrockConfig{
			Region:          cfg.Bedrock.Region,
			ModelID:         cfg.Bedrock.ModelID,
			Profile:         cfg.Bedrock.Profile,
			AccessKeyID:     cfg.Bedrock.AccessKeyID,
			SecretAccessKey: cfg.Bedrock.SecretAccessKey,
			Persona:         cfg.Persona,
		})
	case "googleai", "":
		return llm.NewGoogleAI(ctx, llm.GoogleAIConfig{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			Persona: cfg.Persona,
		})
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
