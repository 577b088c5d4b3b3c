package provider

import (
	"context"

	"video-profile-extractor/config"
	"video-profile-extractor/internal/domain"
	"video-profile-extractor/pkg/logger"
)

// candidate is one entry of the fallback chain: a probe for the required
// credential and a constructor. Keeping the set closed and ordered here means
// adding a vendor is one slice entry, and priority is explicit.
type candidate struct {
	name          string
	hasCredential func(cfg *config.Config) bool
	construct     func(ctx context.Context, cfg *config.Config, prompts domain.PromptRepository) (domain.AIProvider, error)
}

var candidates = []candidate{
	{
		name:          "groq",
		hasCredential: func(cfg *config.Config) bool { return cfg.GroqAPIKey != "" },
		construct: func(ctx context.Context, cfg *config.Config, prompts domain.PromptRepository) (domain.AIProvider, error) {
			return NewGroqProvider(cfg, prompts)
		},
	},
	{
		name:          "gemini",
		hasCredential: func(cfg *config.Config) bool { return cfg.GeminiAPIKey != "" },
		construct: func(ctx context.Context, cfg *config.Config, prompts domain.PromptRepository) (domain.AIProvider, error) {
			return NewGeminiProvider(ctx, cfg, prompts)
		},
	},
}

// NewFromConfig walks the fallback chain once, at startup, and returns the
// first provider that has its credential and constructs cleanly. Candidates
// without a credential are skipped silently; construction failures are logged
// and the next candidate is tried. The selection is never re-evaluated.
func NewFromConfig(ctx context.Context, cfg *config.Config, prompts domain.PromptRepository) (domain.AIProvider, error) {
	for _, c := range candidates {
		if !c.hasCredential(cfg) {
			continue
		}
		p, err := c.construct(ctx, cfg, prompts)
		if err != nil {
			logger.Log.Warn("Failed to initialize AI provider, trying next candidate",
				"provider", c.name, "error", err)
			continue
		}
		logger.Log.Info("AI provider initialized", "provider", p.Name())
		return p, nil
	}
	return nil, domain.ErrNoProvider
}
