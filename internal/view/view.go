// Package view selects which top-level panel a listener sees and owns the
// listener's selected project and experience references.
package view

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/alexjean/devify/internal/catalog"
)

// View is one of the closed set of top-level panels.
type View int

const (
	Home View = iota
	Search
	Library
	Artist
	Lyrics
	Bio
	Wrapped
)

// ErrUnknownView is returned by Parse for names outside the closed set.
var ErrUnknownView = errors.New("unknown view")

var names = [...]string{
	Home:    "home",
	Search:  "search",
	Library: "library",
	Artist:  "artist",
	Lyrics:  "lyrics",
	Bio:     "bio",
	Wrapped: "wrapped",
}

// All lists every view in declaration order.
func All() []View {
	return []View{Home, Search, Library, Artist, Lyrics, Bio, Wrapped}
}

func (v View) String() string {
	if v < 0 || int(v) >= len(names) {
		return fmt.Sprintf("view(%d)", int(v))
	}
	return names[v]
}

// Valid reports whether v is part of the closed set.
func (v View) Valid() bool {
	return v >= 0 && int(v) < len(names)
}

// Parse maps a route name ("lyrics", "Wrapped", "detail") to a View.
func Parse(name string) (View, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "detail" {
		return Artist, nil
	}
	for v, n := range names {
		if n == name {
			return View(v), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownView, name)
}

// IsOverlay reports whether v covers the main panel and is dismissed with
// Close.
func IsOverlay(v View) bool {
	return v == Lyrics || v == Bio || v == Wrapped
}

// Snapshot is a read-only copy of the controller state handed to panels.
// The pointers reference catalog records and must not be mutated.
type Snapshot struct {
	Current          View
	NowPlaying       *catalog.Project
	DetailProject    *catalog.Project
	DetailExperience *catalog.Experience
}

// HasDetail reports whether the detail modal is open.
func (s Snapshot) HasDetail() bool {
	return s.DetailProject != nil || s.DetailExperience != nil
}

// Controller holds exactly one current view. Transitions are unconditional:
// any view is reachable from any other in one step.
type Controller struct {
	mu               sync.RWMutex
	current          View
	nowPlaying       *catalog.Project
	detailProject    *catalog.Project
	detailExperience *catalog.Experience
}

// NewController starts on the artist page with nowPlaying queued in the
// player bar (nil leaves the bar empty).
func NewController(nowPlaying *catalog.Project) *Controller {
	return &Controller{current: Artist, nowPlaying: nowPlaying}
}

func (c *Controller) Current() View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Set switches to v. Callers obtain v from the constants or Parse, so
// there is nothing to reject.
func (c *Controller) Set(v View) {
	c.mu.Lock()
	c.current = v
	c.mu.Unlock()
}

// Close dismisses an overlay (or anything else) back to the artist page.
func (c *Controller) Close() {
	c.Set(Artist)
}

// ToggleLyrics is the player bar's microphone button.
func (c *Controller) ToggleLyrics() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == Lyrics {
		c.current = Artist
	} else {
		c.current = Lyrics
	}
	return c.current
}

// Play puts p in the player bar.
func (c *Controller) Play(p *catalog.Project) {
	c.mu.Lock()
	c.nowPlaying = p
	c.mu.Unlock()
}

// ShowProject opens the detail modal for p, replacing any open detail.
func (c *Controller) ShowProject(p *catalog.Project) {
	c.mu.Lock()
	c.detailProject = p
	c.detailExperience = nil
	c.mu.Unlock()
}

// ShowExperience opens the detail modal for e, replacing any open detail.
func (c *Controller) ShowExperience(e *catalog.Experience) {
	c.mu.Lock()
	c.detailExperience = e
	c.detailProject = nil
	c.mu.Unlock()
}

func (c *Controller) CloseDetail() {
	c.mu.Lock()
	c.detailProject = nil
	c.detailExperience = nil
	c.mu.Unlock()
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{
		Current:          c.current,
		NowPlaying:       c.nowPlaying,
		DetailProject:    c.detailProject,
		DetailExperience: c.detailExperience,
	}
}
