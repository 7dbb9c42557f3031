package assistant

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexjean/devify/internal/metrics"
	"go.uber.org/zap"
)

const (
	// DefaultGreetingPrompt is spoken when the listener presses the
	// greeting button.
	DefaultGreetingPrompt = "Say cheerfully: Hey there, welcome to my portfolio! Press play on any project to hear what I've been building."
	// DefaultVoice is the prebuilt voice used for the greeting.
	DefaultVoice = "Kore"
)

// WithVoice overrides the greeting voice.
func WithVoice(voice string) Option {
	return func(o *options) { o.voice = voice }
}

// WithPrompt overrides the greeting prompt.
func WithPrompt(prompt string) Option {
	return func(o *options) { o.prompt = prompt }
}

// Greeter plays a synthesized spoken greeting. At most one greeting is in
// flight at a time; a second trigger while busy is a no-op.
type Greeter struct {
	synth  SpeechSynthesizer
	logger *zap.Logger
	opts   options
	busy   atomic.Bool
}

func NewGreeter(synth SpeechSynthesizer, logger *zap.Logger, opts ...Option) *Greeter {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Greeter{
		synth:  synth,
		logger: logger.Named("greeting"),
		opts:   options{voice: DefaultVoice, prompt: DefaultGreetingPrompt},
	}
	for _, opt := range opts {
		opt(&g.opts)
	}
	return g
}

// Busy reports whether a greeting is being synthesized or played.
func (g *Greeter) Busy() bool {
	return g.busy.Load()
}

// Greet synthesizes the greeting and plays it once through player. It
// returns ErrBusy without doing anything if a greeting is outstanding. The
// busy flag clears when playback returns, or immediately on failure.
func (g *Greeter) Greet(ctx context.Context, player Player) error {
	if !g.busy.CompareAndSwap(false, true) {
		g.opts.metrics.AIOutcome(metrics.AdapterGreeting, metrics.OutcomeBusy)
		return ErrBusy
	}
	defer g.busy.Store(false)

	clip, err := g.synthesize(ctx)
	if err != nil {
		g.logger.Warn("Greeting synthesis failed", zap.Error(err))
		g.opts.metrics.AIOutcome(metrics.AdapterGreeting, metrics.OutcomeFailed)
		return err
	}

	if err := player.Play(ctx, clip); err != nil {
		g.logger.Warn("Greeting playback failed", zap.Error(err))
		g.opts.metrics.AIOutcome(metrics.AdapterGreeting, metrics.OutcomeFailed)
		return fmt.Errorf("play greeting: %w", err)
	}

	g.logger.Debug("Greeting played", zap.Duration("length", clip.Duration()))
	g.opts.metrics.AIOutcome(metrics.AdapterGreeting, metrics.OutcomeOK)
	return nil
}

func (g *Greeter) synthesize(ctx context.Context) (*Clip, error) {
	if g.opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.timeout)
		defer cancel()
	}

	started := time.Now()
	data, err := g.synth.SynthesizeSpeech(ctx, g.opts.prompt, g.opts.voice)
	if err != nil {
		return nil, fmt.Errorf("synthesize greeting: %w", err)
	}
	if len(data) < 2 {
		return nil, fmt.Errorf("synthesize greeting: %w", ErrEmptyResponse)
	}
	g.logger.Debug("Greeting synthesized",
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(started)))
	return DecodePCM(data), nil
}
