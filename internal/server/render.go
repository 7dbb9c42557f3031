package server

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexjean/devify/internal/assistant"
	"github.com/alexjean/devify/internal/catalog"
	"github.com/alexjean/devify/internal/view"
	"github.com/alexjean/devify/internal/wrapped"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// pageData is what every template receives.
type pageData struct {
	Developer    catalog.Developer
	View         string
	Overlay      bool
	Snapshot     view.Snapshot
	Projects     []*catalog.Project
	Experiences  []*catalog.Experience
	Skills       []skillCard
	TourDates    []catalog.TourDate
	Merch        []catalog.MerchItem
	Hackathons   []catalog.Hackathon
	Achievements []catalog.GlobalAchievement
	Recent       []*catalog.Project
	Wrapped      wrapped.Summary
	Answer       assistant.Answer
	HasAnswer    bool
	Pending      bool
	Console      []string
	Contact      bool
	Year         int
}

func (s *Server) page(c *gin.Context, l *Listener) pageData {
	snap := l.View.Snapshot()
	answer, ok, pending := l.Search.Latest()
	d := pageData{
		Developer:    s.catalog.Developer(),
		View:         panelName(snap.Current),
		Overlay:      view.IsOverlay(snap.Current),
		Snapshot:     snap,
		Projects:     s.catalog.Projects(),
		Experiences:  s.catalog.Experiences(),
		Skills:       skillCards(s.catalog.Skills()),
		TourDates:    s.catalog.TourDates(),
		Merch:        s.catalog.Merch(),
		Hackathons:   s.catalog.Hackathons(),
		Achievements: s.catalog.Achievements(),
		Recent:       l.Tracker.Resolve(s.catalog),
		Answer:       answer,
		HasAnswer:    ok,
		Pending:      pending,
		Console:      l.Console.Lines(),
		Contact:      s.mailer != nil,
		Year:         time.Now().Year(),
	}
	if snap.Current == view.Wrapped {
		d.Wrapped = wrapped.Build(s.catalog, s.playCounts(c))
	}
	return d
}

func (s *Server) playCounts(c *gin.Context) map[string]int64 {
	if s.analytics == nil {
		return nil
	}
	counts, err := s.analytics.PlayCounts(c.Request.Context())
	if err != nil {
		s.logger.Warn("Error loading play counts", zap.Error(err))
		return nil
	}
	return counts
}

type trackRow struct {
	Index   int
	Project *catalog.Project
}

func newTrackRow(i int, p *catalog.Project) trackRow {
	return trackRow{Index: i + 1, Project: p}
}

// panelName maps a view to its template; home and artist share one panel.
func panelName(v view.View) string {
	if v == view.Home {
		return view.Artist.String()
	}
	return v.String()
}

// formatStars renders 2400 as "2.4k".
func formatStars(n int) string {
	if n < 1000 {
		return strconv.Itoa(n)
	}
	return strings.Replace(fmt.Sprintf("%.1fk", float64(n)/1000), ".0k", "k", 1)
}
