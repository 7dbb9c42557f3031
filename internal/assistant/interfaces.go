package assistant

import "context"

// TextGenerator sends one prompt to a text generation model. system is the
// system-level instruction, query the user content.
type TextGenerator interface {
	GenerateText(ctx context.Context, system, query string) (string, error)
}

// SpeechSynthesizer turns a prompt into raw audio bytes using the named
// voice.
type SpeechSynthesizer interface {
	SynthesizeSpeech(ctx context.Context, prompt, voice string) ([]byte, error)
}

// Player plays a decoded clip once and returns when playback has ended.
type Player interface {
	Play(ctx context.Context, clip *Clip) error
}

// ContextProvider supplies the system instruction for portfolio questions.
type ContextProvider interface {
	AssistantContext() string
}
