package server

import (
	"context"
	"net/http"
	"time"

	"github.com/alexjean/devify/internal/analytics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	listenerCookie    = "devify_listener"
	listenerCookieAge = 365 * 24 * 3600
	listenerKey       = "listener"
)

// requestLogger replaces gin's default logger.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if l, ok := c.Get(listenerKey); ok {
			fields = append(fields, zap.String("listener", l.(*Listener).ID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		logger.Info("request", fields...)
	}
}

// listenerSession attaches the browser's Listener, issuing a cookie on
// first visit.
func (s *Server) listenerSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(listenerCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(listenerCookie, id, listenerCookieAge, "/", "", false, true)
		}
		c.Set(listenerKey, s.listeners.Get(c.Request.Context(), id))
		c.Next()
	}
}

func listenerFrom(c *gin.Context) *Listener {
	return c.MustGet(listenerKey).(*Listener)
}

// Privacy-conscious visitor tracking middleware
func (s *Server) visitorTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if !analytics.ShouldTrack(path, c.GetHeader("DNT") == "1") {
			c.Next()
			return
		}

		// Track visitor with hashed IP in background
		ctx := context.WithoutCancel(c.Request.Context())
		ip, ua := c.ClientIP(), c.GetHeader("User-Agent")
		go s.analytics.TrackVisit(ctx, ip, ua, path)
		c.Next()
	}
}
