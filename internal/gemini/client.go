// Package gemini talks to Google's Gemini API for the portfolio's text
// answers and spoken greeting.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	DefaultTextModel   = "gemini-3-flash-preview"
	DefaultSpeechModel = "gemini-2.5-flash-preview-tts"
)

var (
	// ErrNoAPIKey is returned when no credential was configured.
	ErrNoAPIKey = errors.New("gemini API key is required")
	// ErrNoAudio indicates a speech response without inline audio data.
	ErrNoAudio = errors.New("no audio in speech response")
)

// Config selects credentials and models.
type Config struct {
	APIKey      string
	TextModel   string
	SpeechModel string
}

// Client implements assistant.TextGenerator and assistant.SpeechSynthesizer.
type Client struct {
	client      *genai.Client
	textModel   string
	speechModel string
}

// NewClient creates a Gemini API client.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if cfg.TextModel == "" {
		cfg.TextModel = DefaultTextModel
	}
	if cfg.SpeechModel == "" {
		cfg.SpeechModel = DefaultSpeechModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Client{
		client:      client,
		textModel:   cfg.TextModel,
		speechModel: cfg.SpeechModel,
	}, nil
}

// GenerateText sends query as user content with system as the system
// instruction and returns the concatenated text parts.
func (c *Client) GenerateText(ctx context.Context, system, query string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.textModel, genai.Text(query), config)
	if err != nil {
		return "", fmt.Errorf("GenAI generate content failed: %w", err)
	}
	return resp.Text(), nil
}

// SynthesizeSpeech asks the TTS model to speak prompt and returns the raw
// audio payload (16-bit little-endian PCM, 24 kHz, mono).
func (c *Client) SynthesizeSpeech(ctx context.Context, prompt, voice string) ([]byte, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
			},
		},
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.speechModel, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("GenAI speech synthesis failed: %w", err)
	}
	return audioPayload(resp)
}

// audioPayload returns the first inline data blob of the first candidate.
func audioPayload(resp *genai.GenerateContentResponse) ([]byte, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, ErrNoAudio
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return nil, ErrNoAudio
	}
	for _, part := range content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data, nil
		}
	}
	return nil, ErrNoAudio
}

// Name returns the client's text model for logs.
func (c *Client) Name() string {
	return fmt.Sprintf("genai:%s", c.textModel)
}
