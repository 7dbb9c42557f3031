package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/alexjean/devify/internal/assistant"
	"github.com/alexjean/devify/internal/catalog"
	"github.com/alexjean/devify/internal/contact"
	"github.com/alexjean/devify/internal/view"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Home page route
func (s *Server) home(c *gin.Context) {
	l := listenerFrom(c)
	c.HTML(http.StatusOK, "index", s.page(c, l))
}

func (s *Server) renderPanel(c *gin.Context, l *Listener) {
	c.HTML(http.StatusOK, "panel", s.page(c, l))
}

func (s *Server) showView(c *gin.Context) {
	v, err := view.Parse(c.Param("view"))
	if err != nil {
		c.String(http.StatusNotFound, "unknown view")
		return
	}
	l := listenerFrom(c)
	l.View.Set(v)
	s.renderPanel(c, l)
}

func (s *Server) closeView(c *gin.Context) {
	l := listenerFrom(c)
	l.View.Close()
	s.renderPanel(c, l)
}

func (s *Server) toggleLyrics(c *gin.Context) {
	l := listenerFrom(c)
	l.View.ToggleLyrics()
	s.renderPanel(c, l)
}

// play queues a project in the player bar and records it as recently
// played.
func (s *Server) play(c *gin.Context) {
	p, ok := s.catalog.Project(c.Param("id"))
	if !ok {
		c.String(http.StatusNotFound, "unknown project")
		return
	}
	l := listenerFrom(c)
	l.View.Play(p)
	l.Tracker.Record(c.Request.Context(), p.ID)
	s.metrics.Play(p.ID)
	if s.analytics != nil {
		s.analytics.RecordPlay(c.Request.Context(), p.ID, l.ID)
	}
	c.HTML(http.StatusOK, "player-bar", s.page(c, l))
}

func (s *Server) showProject(c *gin.Context) {
	p, ok := s.catalog.Project(c.Param("id"))
	if !ok {
		c.String(http.StatusNotFound, "unknown project")
		return
	}
	l := listenerFrom(c)
	l.View.ShowProject(p)
	c.HTML(http.StatusOK, "modal", s.page(c, l))
}

func (s *Server) showExperience(c *gin.Context) {
	e, ok := s.catalog.Experience(c.Param("id"))
	if !ok {
		c.String(http.StatusNotFound, "unknown experience")
		return
	}
	l := listenerFrom(c)
	l.View.ShowExperience(e)
	c.HTML(http.StatusOK, "modal", s.page(c, l))
}

func (s *Server) closeModal(c *gin.Context) {
	listenerFrom(c).View.CloseDetail()
	c.String(http.StatusOK, "")
}

// search answers a portfolio question. Blank queries and answers overtaken
// by a newer submission return 204 so htmx leaves the page alone.
func (s *Server) search(c *gin.Context) {
	l := listenerFrom(c)
	answer, applied := l.Search.Submit(c.Request.Context(), c.PostForm("q"))
	if answer.Skipped || !applied {
		c.Status(http.StatusNoContent)
		return
	}
	data := s.page(c, l)
	data.Answer, data.HasAnswer = answer, true
	c.HTML(http.StatusOK, "search-answer", data)
}

// greeting streams the synthesized greeting as a WAV body. A greeting
// already in flight or a synthesis failure yields 204.
func (s *Server) greeting(c *gin.Context) {
	l := listenerFrom(c)
	started := false
	player := assistant.WAVPlayer{
		W: c.Writer,
		Before: func(clip *assistant.Clip) {
			started = true
			c.Header("Content-Type", "audio/wav")
			c.Header("Content-Length", strconv.Itoa(clip.WAVSize()))
			c.Header("Cache-Control", "no-store")
			c.Status(http.StatusOK)
		},
	}

	err := l.Greeter.Greet(c.Request.Context(), player)
	switch {
	case err == nil:
	case started:
		// Headers are gone; the browser sees a truncated body.
		_ = c.Error(err)
	default:
		if !errors.Is(err, assistant.ErrBusy) {
			_ = c.Error(err)
		}
		c.Status(http.StatusNoContent)
	}
}

type recentResponse struct {
	IDs      []string           `json:"ids"`
	Projects []*catalog.Project `json:"projects"`
}

func (s *Server) recent(c *gin.Context) {
	l := listenerFrom(c)
	c.JSON(http.StatusOK, recentResponse{
		IDs:      l.Tracker.IDs(),
		Projects: l.Tracker.Resolve(s.catalog),
	})
}

func (s *Server) console(c *gin.Context) {
	l := listenerFrom(c)
	c.HTML(http.StatusOK, "console", gin.H{"Console": l.Console.Next()})
}

type catalogResponse struct {
	Developer    catalog.Developer           `json:"developer"`
	Projects     []*catalog.Project          `json:"projects"`
	Experiences  []*catalog.Experience       `json:"experiences"`
	Skills       []catalog.Skill             `json:"skills"`
	TourDates    []catalog.TourDate          `json:"tourDates"`
	Merch        []catalog.MerchItem         `json:"merch"`
	Hackathons   []catalog.Hackathon         `json:"hackathons"`
	Achievements []catalog.GlobalAchievement `json:"achievements"`
}

func (s *Server) catalogJSON(c *gin.Context) {
	c.JSON(http.StatusOK, catalogResponse{
		Developer:    s.catalog.Developer(),
		Projects:     s.catalog.Projects(),
		Experiences:  s.catalog.Experiences(),
		Skills:       s.catalog.Skills(),
		TourDates:    s.catalog.TourDates(),
		Merch:        s.catalog.Merch(),
		Hackathons:   s.catalog.Hackathons(),
		Achievements: s.catalog.Achievements(),
	})
}

// HTMX Contact form endpoint - returns just the form HTML
func (s *Server) contactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact-form", gin.H{
		"title":   "Contact Me",
		"enabled": s.mailer != nil,
	})
}

// Handle contact form submission with HTMX
func (s *Server) submitContact(c *gin.Context) {
	if s.mailer == nil {
		c.HTML(http.StatusOK, "contact-error", gin.H{
			"error": "The contact form is not available right now.",
		})
		return
	}

	err := s.mailer.Send(c.Request.Context(), contact.Message{
		Name:  c.PostForm("fullName"),
		Email: c.PostForm("email"),
		Body:  c.PostForm("message"),
	})
	switch {
	case errors.Is(err, contact.ErrInvalidMessage):
		c.HTML(http.StatusOK, "contact-error", gin.H{
			"error": "Please fill in your name, email and message.",
		})
	case err != nil:
		s.logger.Warn("Contact form delivery failed", zap.Error(err))
		c.HTML(http.StatusOK, "contact-error", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
	default:
		c.HTML(http.StatusOK, "contact-success", gin.H{
			"success": "Thank you for your message! I'll get back to you soon.",
		})
	}
}
