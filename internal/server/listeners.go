package server

import (
	"context"
	"sync"
	"time"

	"github.com/alexjean/devify/internal/assistant"
	"github.com/alexjean/devify/internal/metrics"
	"github.com/alexjean/devify/internal/tracker"
	"github.com/alexjean/devify/internal/view"
	"go.uber.org/zap"
)

// Listener is the server-side state of one browser.
type Listener struct {
	ID      string
	View    *view.Controller
	Tracker *tracker.Tracker
	Search  *assistant.SearchSession
	Greeter *assistant.Greeter
	Console *Console

	mu       sync.Mutex
	lastSeen time.Time
}

func (l *Listener) touch(now time.Time) {
	l.mu.Lock()
	l.lastSeen = now
	l.mu.Unlock()
}

func (l *Listener) idleSince() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastSeen
}

func (l *Listener) busy() bool {
	return l.Greeter != nil && l.Greeter.Busy()
}

// ListenerFactory builds a fresh listener for id.
type ListenerFactory func(ctx context.Context, id string) *Listener

// Registry holds listeners in memory and forgets idle ones. A forgotten
// listener's recently played list stays in storage and is reloaded when the
// browser returns.
type Registry struct {
	factory ListenerFactory
	idle    time.Duration
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time

	mu        sync.Mutex
	listeners map[string]*Listener
}

func NewRegistry(factory ListenerFactory, idle time.Duration, m *metrics.Metrics, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		factory:   factory,
		idle:      idle,
		metrics:   m,
		logger:    logger.Named("listeners"),
		now:       time.Now,
		listeners: make(map[string]*Listener),
	}
}

// Get returns the listener for id, creating it on first sight.
func (r *Registry) Get(ctx context.Context, id string) *Listener {
	now := r.now()

	r.mu.Lock()
	l, ok := r.listeners[id]
	r.mu.Unlock()
	if ok {
		l.touch(now)
		return l
	}

	// The factory loads history from storage; keep it outside the lock.
	fresh := r.factory(ctx, id)
	fresh.ID = id
	fresh.touch(now)

	r.mu.Lock()
	if existing, ok := r.listeners[id]; ok {
		r.mu.Unlock()
		existing.touch(now)
		return existing
	}
	r.listeners[id] = fresh
	n := len(r.listeners)
	r.mu.Unlock()

	r.metrics.SetListeners(n)
	r.logger.Debug("New listener", zap.String("listener", id))
	return fresh
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.listeners)
}

// Sweep drops listeners idle longer than the idle timeout and returns how
// many were dropped.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.idle)

	r.mu.Lock()
	removed := 0
	for id, l := range r.listeners {
		if l.idleSince().Before(cutoff) && !l.busy() {
			delete(r.listeners, id)
			removed++
		}
	}
	n := len(r.listeners)
	r.mu.Unlock()

	r.metrics.SetListeners(n)
	if removed > 0 {
		r.logger.Debug("Swept idle listeners", zap.Int("removed", removed), zap.Int("remaining", n))
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.Sweep()
		}
	}
}
