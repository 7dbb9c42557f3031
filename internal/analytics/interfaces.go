package analytics

import (
	"context"
	"time"

	"github.com/alexjean/devify/internal/catalog"
)

// Repository persists visits and plays.
type Repository interface {
	InsertVisit(ctx context.Context, v VisitorMetric) error
	InsertPlay(ctx context.Context, projectID, listener string, at time.Time) error
	Stats(ctx context.Context, w Window, topLimit, recentLimit int) (*Stats, error)
	PlayCounts(ctx context.Context) (map[string]int64, error)
	RecentVisitors(ctx context.Context, limit int) ([]VisitorMetric, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (visitors, plays int64, err error)
}

// ProjectLookup names projects in stats.
type ProjectLookup interface {
	Project(id string) (*catalog.Project, bool)
}
