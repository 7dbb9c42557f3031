// Package assistant wraps the two generative AI features of the portfolio:
// answering free-text questions about the developer and playing a spoken
// greeting. Neither adapter ever surfaces a panic or raw failure to the
// page; both report failures as values.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexjean/devify/internal/metrics"
	"go.uber.org/zap"
)

const (
	// FallbackError is shown when the model could not be reached.
	FallbackError = "Error connecting to the AI brain. Try again later."
	// FallbackEmpty is shown when the model answered with nothing.
	FallbackEmpty = "I'm not sure about that. Try asking about specific projects!"
)

// Answer is the outcome of one question. Text is always renderable: on
// failure it holds a fallback string and Err holds the reason.
type Answer struct {
	Query   string
	Text    string
	Err     error
	Skipped bool
}

// Fallback reports whether Text is a canned fallback rather than a model
// answer.
func (a Answer) Fallback() bool {
	return a.Err != nil
}

// Option customizes an adapter.
type Option func(*options)

type options struct {
	metrics *metrics.Metrics
	timeout time.Duration
	voice   string
	prompt  string
}

// WithMetrics records adapter outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithTimeout bounds each outbound model call.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// QueryAdapter answers portfolio questions with a text generation model.
type QueryAdapter struct {
	gen      TextGenerator
	provider ContextProvider
	logger   *zap.Logger
	opts     options
}

func NewQueryAdapter(gen TextGenerator, provider ContextProvider, logger *zap.Logger, opts ...Option) *QueryAdapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &QueryAdapter{
		gen:      gen,
		provider: provider,
		logger:   logger.Named("query"),
	}
	for _, opt := range opts {
		opt(&a.opts)
	}
	return a
}

// Ask sends query together with the portfolio context. A blank query is a
// no-op and makes no call.
func (a *QueryAdapter) Ask(ctx context.Context, query string) Answer {
	if strings.TrimSpace(query) == "" {
		a.opts.metrics.AIOutcome(metrics.AdapterQuery, metrics.OutcomeSkipped)
		return Answer{Query: query, Skipped: true}
	}

	if a.opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.timeout)
		defer cancel()
	}

	started := time.Now()
	text, err := a.gen.GenerateText(ctx, a.provider.AssistantContext(), query)
	if err != nil {
		a.logger.Warn("Portfolio question failed",
			zap.String("query", query),
			zap.Duration("elapsed", time.Since(started)),
			zap.Error(err))
		a.opts.metrics.AIOutcome(metrics.AdapterQuery, metrics.OutcomeFallback)
		return Answer{Query: query, Text: FallbackError, Err: fmt.Errorf("generate answer: %w", err)}
	}
	if strings.TrimSpace(text) == "" {
		a.logger.Info("Model returned an empty answer", zap.String("query", query))
		a.opts.metrics.AIOutcome(metrics.AdapterQuery, metrics.OutcomeFallback)
		return Answer{Query: query, Text: FallbackEmpty, Err: ErrEmptyResponse}
	}

	a.logger.Debug("Portfolio question answered",
		zap.String("query", query),
		zap.Duration("elapsed", time.Since(started)))
	a.opts.metrics.AIOutcome(metrics.AdapterQuery, metrics.OutcomeOK)
	return Answer{Query: query, Text: text}
}
