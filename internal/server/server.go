// Package server is the portfolio's HTTP surface: gin handlers returning
// full pages or htmx fragments, one listener session per browser.
package server

import (
	"context"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/alexjean/devify/internal/analytics"
	"github.com/alexjean/devify/internal/assistant"
	"github.com/alexjean/devify/internal/catalog"
	"github.com/alexjean/devify/internal/contact"
	"github.com/alexjean/devify/internal/metrics"
	"github.com/alexjean/devify/internal/tracker"
	"github.com/alexjean/devify/internal/view"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Options wires the server's collaborators. Analytics and Mailer may be
// nil, which disables visitor tracking with the admin area and the contact
// form respectively.
type Options struct {
	Catalog   *catalog.Catalog
	Store     tracker.Store
	Generator assistant.TextGenerator
	Synth     assistant.SpeechSynthesizer
	Analytics *analytics.Service
	Mailer    contact.Sender
	Metrics   *metrics.Metrics
	Logger    *zap.Logger

	AITimeout   time.Duration
	Voice       string
	IdleTimeout time.Duration
	Admin       AdminCredentials
}

// Server owns the gin engine and the listener registry.
type Server struct {
	engine    *gin.Engine
	catalog   *catalog.Catalog
	listeners *Registry
	analytics *analytics.Service
	mailer    contact.Sender
	metrics   *metrics.Metrics
	logger    *zap.Logger
	admin     *adminAuth
}

// New builds the engine and registers every route. gin's mode must be set
// by the caller beforehand.
func New(opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	store := opts.Store
	if store == nil {
		store = tracker.NewMemoryStore()
	}
	idle := opts.IdleTimeout
	if idle <= 0 {
		idle = 2 * time.Hour
	}

	s := &Server{
		catalog:   opts.Catalog,
		analytics: opts.Analytics,
		mailer:    opts.Mailer,
		metrics:   opts.Metrics,
		logger:    logger.Named("http"),
	}

	query := assistant.NewQueryAdapter(opts.Generator, opts.Catalog, logger,
		assistant.WithMetrics(opts.Metrics),
		assistant.WithTimeout(opts.AITimeout))

	greetOpts := []assistant.Option{
		assistant.WithMetrics(opts.Metrics),
		assistant.WithTimeout(opts.AITimeout),
	}
	if opts.Voice != "" {
		greetOpts = append(greetOpts, assistant.WithVoice(opts.Voice))
	}

	s.listeners = NewRegistry(func(ctx context.Context, id string) *Listener {
		t := tracker.New(store, id, logger)
		t.Load(ctx)
		return &Listener{
			View:    view.NewController(opts.Catalog.FirstProject()),
			Tracker: t,
			Search:  assistant.NewSearchSession(query),
			Greeter: assistant.NewGreeter(opts.Synth, logger, greetOpts...),
			Console: NewConsole(),
		}
	}, idle, opts.Metrics, logger)

	if opts.Analytics != nil {
		admin, err := newAdminAuth(opts.Admin, opts.Analytics, logger)
		if err != nil {
			return nil, err
		}
		s.admin = admin
	}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(static))
	r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))

	if s.analytics != nil {
		r.Use(s.visitorTracking())
	}

	pages := r.Group("/", s.listenerSession())
	pages.GET("/", s.home)
	pages.GET("/views/:view", s.showView)
	pages.POST("/views/close", s.closeView)
	pages.POST("/player/lyrics", s.toggleLyrics)
	pages.POST("/play/:id", s.play)
	pages.GET("/projects/:id", s.showProject)
	pages.GET("/experiences/:id", s.showExperience)
	pages.POST("/modal/close", s.closeModal)
	pages.POST("/search", s.search)
	pages.POST("/greeting", s.greeting)
	pages.GET("/recent", s.recent)
	pages.GET("/console", s.console)
	pages.GET("/contact-form", s.contactForm)
	pages.POST("/contact", s.submitContact)

	r.GET("/api/catalog", s.catalogJSON)
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy", gin.H{"title": "Privacy Policy"})
	})

	if s.admin != nil {
		s.admin.routes(r)
	}

	s.engine = r
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Listeners exposes the registry so the caller can run its sweeper.
func (s *Server) Listeners() *Registry {
	return s.listeners
}

var templateFuncs = template.FuncMap{
	"join":   strings.Join,
	"add":    func(a, b int) int { return a + b },
	"lyrics": catalog.LyricsLines,
	"stars":  formatStars,
	"lower":  strings.ToLower,
	"row":    newTrackRow,
}
