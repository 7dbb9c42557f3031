// Package tracker keeps a listener's "recently played" projects: most
// recent first, no duplicates, at most MaxEntries ids, persisted after every
// change.
package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/alexjean/devify/internal/catalog"
	"go.uber.org/zap"
)

const (
	// Namespace is the fixed storage namespace for recently played lists.
	Namespace = "devify.recentlyPlayed"
	// MaxEntries caps the list length.
	MaxEntries = 10
)

// ProjectLookup resolves project ids against the live catalog.
type ProjectLookup interface {
	Project(id string) (*catalog.Project, bool)
}

// Tracker is safe for concurrent use; calls are applied in call order.
type Tracker struct {
	store  Store
	key    string
	logger *zap.Logger

	mu  sync.Mutex
	ids []string
}

// New creates an empty tracker persisting under key. Call Load to restore
// earlier state.
func New(store Store, key string, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{
		store:  store,
		key:    key,
		logger: logger.With(zap.String("tracker_key", key)),
	}
}

// Load replaces the in-memory list with the persisted one. A missing or
// unreadable value leaves the tracker empty; the failure is only logged.
func (t *Tracker) Load(ctx context.Context) []string {
	ids := t.read(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.ids = ids
	return append([]string(nil), t.ids...)
}

func (t *Tracker) read(ctx context.Context) []string {
	if t.store == nil {
		return nil
	}
	raw, err := t.store.Get(ctx, Namespace, t.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			t.logger.Warn("Recently played history unavailable", zap.Error(err))
		}
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		t.logger.Warn("Discarding malformed recently played history", zap.Error(err))
		return nil
	}
	return normalize(ids)
}

// Record moves id to the front, drops any earlier occurrence, truncates to
// MaxEntries and persists the whole list in a single write.
func (t *Tracker) Record(ctx context.Context, id string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := make([]string, 0, MaxEntries)
	next = append(next, id)
	for _, existing := range t.ids {
		if existing == id {
			continue
		}
		if len(next) == MaxEntries {
			break
		}
		next = append(next, existing)
	}
	t.ids = next

	t.persist(ctx)
	return append([]string(nil), t.ids...)
}

// persist must be called with mu held so writes land in call order.
func (t *Tracker) persist(ctx context.Context) {
	if t.store == nil {
		return
	}
	payload, err := json.Marshal(t.ids)
	if err != nil {
		t.logger.Error("Encoding recently played history", zap.Error(err))
		return
	}
	if err := t.store.Put(ctx, Namespace, t.key, string(payload)); err != nil {
		t.logger.Warn("Persisting recently played history failed", zap.Error(err))
	}
}

// IDs returns the current order, most recent first.
func (t *Tracker) IDs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.ids))
	copy(out, t.ids)
	return out
}

// Resolve maps ids to live projects. Ids the catalog no longer knows are
// dropped silently.
func (t *Tracker) Resolve(lookup ProjectLookup) []*catalog.Project {
	ids := t.IDs()
	out := make([]*catalog.Project, 0, len(ids))
	for _, id := range ids {
		if p, ok := lookup.Project(id); ok {
			out = append(out, p)
		}
	}
	return out
}

// normalize enforces the list invariants on data read from storage.
func normalize(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
		if len(out) == MaxEntries {
			break
		}
	}
	return out
}
