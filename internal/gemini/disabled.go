package gemini

import "context"

// Disabled stands in for Client when no API key is configured. Every call
// fails with ErrNoAPIKey so the adapters fall back.
type Disabled struct{}

func (Disabled) GenerateText(context.Context, string, string) (string, error) {
	return "", ErrNoAPIKey
}

func (Disabled) SynthesizeSpeech(context.Context, string, string) ([]byte, error) {
	return nil, ErrNoAPIKey
}
