// Package analytics records privacy-conscious visitor and play statistics.
// IP addresses and listener ids are hashed with a per-process salt before
// they reach storage.
package analytics

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// Retention is how long visits and plays are kept.
	Retention = 12 * 30 * 24 * time.Hour

	topProjectsLimit    = 10
	recentVisitorsLimit = 50
)

// untrackedPrefixes are never recorded as visits.
var untrackedPrefixes = []string{
	"/static/",
	"/images/",
	"/admin/",
	"/favicon",
	"/privacy",
	"/metrics",
}

// Service records visits and plays and summarizes them.
type Service struct {
	repo     Repository
	projects ProjectLookup
	logger   *zap.Logger
	salt     string
	now      func() time.Time
}

// NewService creates the analytics service with a fresh random hashing
// salt.
func NewService(repo Repository, projects ProjectLookup, logger *zap.Logger) (*Service, error) {
	salt, err := RandomToken()
	if err != nil {
		return nil, fmt.Errorf("generate hashing salt: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		projects: projects,
		logger:   logger.Named("analytics"),
		salt:     salt,
		now:      time.Now,
	}, nil
}

// RandomToken returns 32 random bytes hex encoded.
func RandomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Hash pseudonymizes an IP or listener id, consistently within a process.
func (s *Service) Hash(value string) string {
	sum := sha256.Sum256([]byte(value + s.salt))
	return hex.EncodeToString(sum[:])[:16] // Truncate for storage efficiency
}

// ShouldTrack reports whether a request path is counted as a visit. Do Not
// Track requests are never counted.
func ShouldTrack(path string, doNotTrack bool) bool {
	if doNotTrack {
		return false
	}
	for _, prefix := range untrackedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

// TrackVisit stores a hashed page view. Failures are logged only.
func (s *Service) TrackVisit(ctx context.Context, ip, userAgent, path string) {
	err := s.repo.InsertVisit(ctx, VisitorMetric{
		HashedIP:  s.Hash(ip),
		UserAgent: userAgent,
		Path:      path,
		Timestamp: s.now().UTC(),
	})
	if err != nil {
		s.logger.Warn("Error recording visitor", zap.Error(err))
	}
}

// RecordPlay stores a play of projectID by a listener. Failures are logged
// only.
func (s *Service) RecordPlay(ctx context.Context, projectID, listenerID string) {
	if err := s.repo.InsertPlay(ctx, projectID, s.Hash(listenerID), s.now().UTC()); err != nil {
		s.logger.Warn("Error recording play", zap.String("project", projectID), zap.Error(err))
	}
}

// Stats summarizes visits and plays for the admin dashboard.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	now := s.now().UTC()
	window := Window{
		Today: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Week:  now.Add(-7 * 24 * time.Hour),
	}
	stats, err := s.repo.Stats(ctx, window, topProjectsLimit, recentVisitorsLimit)
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}
	for i := range stats.TopProjects {
		if p, ok := s.projects.Project(stats.TopProjects[i].ProjectID); ok {
			stats.TopProjects[i].Title = p.Title
		}
	}
	return stats, nil
}

// PlayCounts returns plays per project id.
func (s *Service) PlayCounts(ctx context.Context) (map[string]int64, error) {
	counts, err := s.repo.PlayCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load play counts: %w", err)
	}
	return counts, nil
}

// RecentVisitors lists the latest visits, newest first.
func (s *Service) RecentVisitors(ctx context.Context, limit int) ([]VisitorMetric, error) {
	return s.repo.RecentVisitors(ctx, limit)
}

// Cleanup removes visits and plays older than Retention.
func (s *Service) Cleanup(ctx context.Context) error {
	visitors, plays, err := s.repo.DeleteBefore(ctx, s.now().UTC().Add(-Retention))
	if err != nil {
		s.logger.Warn("Error cleaning up old analytics data", zap.Error(err))
		return err
	}
	if visitors > 0 || plays > 0 {
		s.logger.Info("Privacy cleanup removed old records",
			zap.Int64("visitors", visitors),
			zap.Int64("plays", plays))
	}
	return nil
}
