package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/Vovarama1992/memo_coach/internal/ai"
	"github.com/Vovarama1992/memo_coach/internal/config"
	"github.com/Vovarama1992/memo_coach/internal/doc"
	"github.com/Vovarama1992/memo_coach/internal/extraction"
)

type provider interface {
	ai.Generator
	ai.Speaker
}

func newProvider(ctx context.Context, cfg config.Config) (provider, error) {
	switch cfg.AI.Provider {
	case "", "openai":
		if cfg.AI.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is not set")
		}
		return ai.NewOpenAIClient(ai.OpenAIConfig{
			APIKey:  cfg.AI.OpenAI.APIKey,
			BaseURL: cfg.AI.OpenAI.BaseURL,
			Model:   cfg.AI.OpenAI.Model,
			Voice:   cfg.AI.OpenAI.Voice,
		}), nil
	case "gemini":
		if cfg.AI.Gemini.APIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is not set")
		}
		return ai.NewGeminiClient(ctx, ai.GeminiConfig{
			APIKey:   cfg.AI.Gemini.APIKey,
			Model:    cfg.AI.Gemini.Model,
			TTSModel: cfg.AI.Gemini.TTSModel,
		})
	}
	return nil, fmt.Errorf("unknown AI_PROVIDER %q", cfg.AI.Provider)
}

func newExtractor(gen ai.Generator, cfg config.Config) *extraction.Client {
	docs := doc.NewService(
		doc.NewPDFTextReader(),
		doc.NewPythonDocConverter(cfg.AI.DocServiceURL),
	)
	return extraction.NewClient(
		gen,
		docs,
		config.Duration(cfg.Timeouts.Extract, 120*time.Second),
		cfg.MaxUploadBytes(),
	)
}
