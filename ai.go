package main

import (
	"context"

	"github.com/alexjean/devify/internal/assistant"
	"github.com/alexjean/devify/internal/config"
	"github.com/alexjean/devify/internal/gemini"
	"go.uber.org/zap"
)

// newAI returns the Gemini client for both adapters, or a disabled stand-in
// when no API key is configured so the site still serves fallbacks.
func newAI(ctx context.Context, cfg config.Config, logger *zap.Logger) (assistant.TextGenerator, assistant.SpeechSynthesizer, error) {
	if cfg.AI.APIKey == "" {
		logger.Warn("GEMINI_API_KEY not set; search and greeting will fall back")
		return gemini.Disabled{}, gemini.Disabled{}, nil
	}
	client, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:      cfg.AI.APIKey,
		TextModel:   cfg.AI.TextModel,
		SpeechModel: cfg.AI.SpeechModel,
	})
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Gemini client ready", zap.String("client", client.Name()))
	return client, client, nil
}
