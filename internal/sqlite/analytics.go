package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/alexjean/devify/internal/analytics"
)

// timeLayout is how timestamps are stored so SQL comparisons stay
// lexicographic.
const timeLayout = "2006-01-02 15:04:05"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime accepts whatever the driver hands back for a DATETIME column:
// modernc parses well-formed text into time.Time on its own.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case string:
		return parseTimeText(t)
	case []byte:
		return parseTimeText(string(t))
	default:
		return time.Time{}
	}
}

func parseTimeText(s string) time.Time {
	for _, layout := range []string{timeLayout, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// AnalyticsRepository implements analytics.Repository.
type AnalyticsRepository struct {
	db *DB
}

func NewAnalyticsRepository(db *DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) InsertVisit(ctx context.Context, v analytics.VisitorMetric) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp, country)
		VALUES (?, ?, ?, ?, ?)
	`, v.HashedIP, v.UserAgent, v.Path, formatTime(v.Timestamp), v.Country)
	if err != nil {
		return fmt.Errorf("insert visitor: %w", err)
	}
	return nil
}

func (r *AnalyticsRepository) InsertPlay(ctx context.Context, projectID, listener string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO plays (project_id, listener, timestamp) VALUES (?, ?, ?)
	`, projectID, listener, formatTime(at))
	if err != nil {
		return fmt.Errorf("insert play: %w", err)
	}
	return nil
}

// Stats gathers every dashboard counter.
func (r *AnalyticsRepository) Stats(ctx context.Context, w analytics.Window, topLimit, recentLimit int) (*analytics.Stats, error) {
	stats := &analytics.Stats{}

	counters := []struct {
		query string
		args  []any
		dest  *int64
	}{
		{"SELECT COUNT(*) FROM visitors", nil, &stats.TotalVisitors},
		{"SELECT COUNT(DISTINCT hashed_ip) FROM visitors", nil, &stats.UniqueVisitors},
		{"SELECT COUNT(*) FROM visitors WHERE timestamp >= ?", []any{formatTime(w.Today)}, &stats.VisitorsToday},
		{"SELECT COUNT(*) FROM visitors WHERE timestamp >= ?", []any{formatTime(w.Week)}, &stats.VisitorsThisWeek},
		{"SELECT COUNT(*) FROM plays", nil, &stats.TotalPlays},
		{"SELECT COUNT(DISTINCT listener) FROM plays", nil, &stats.UniqueListeners},
	}
	for _, c := range counters {
		if err := r.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("count (%s): %w", c.query, err)
		}
	}

	top, err := r.topProjects(ctx, topLimit)
	if err != nil {
		return nil, err
	}
	stats.TopProjects = top

	recent, err := r.RecentVisitors(ctx, recentLimit)
	if err != nil {
		return nil, err
	}
	stats.RecentVisitors = recent

	return stats, nil
}

func (r *AnalyticsRepository) topProjects(ctx context.Context, limit int) ([]analytics.ProjectPlays, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT project_id, COUNT(*) AS plays
		FROM plays
		GROUP BY project_id
		ORDER BY plays DESC, project_id ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query top projects: %w", err)
	}
	defer rows.Close()

	var out []analytics.ProjectPlays
	for rows.Next() {
		var p analytics.ProjectPlays
		if err := rows.Scan(&p.ProjectID, &p.Plays); err != nil {
			return nil, fmt.Errorf("scan top project: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *AnalyticsRepository) PlayCounts(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT project_id, COUNT(*) FROM plays GROUP BY project_id`)
	if err != nil {
		return nil, fmt.Errorf("query play counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var id string
		var n int64
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan play count: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

func (r *AnalyticsRepository) RecentVisitors(ctx context.Context, limit int) ([]analytics.VisitorMetric, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp, COALESCE(country, '')
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query visitors: %w", err)
	}
	defer rows.Close()

	var visitors []analytics.VisitorMetric
	for rows.Next() {
		var v analytics.VisitorMetric
		var ts any
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts, &v.Country); err != nil {
			return nil, fmt.Errorf("scan visitor: %w", err)
		}
		v.Timestamp = parseTime(ts)
		visitors = append(visitors, v)
	}
	return visitors, rows.Err()
}

// DeleteBefore removes visits and plays older than cutoff.
func (r *AnalyticsRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, int64, error) {
	ts := formatTime(cutoff)

	res, err := r.db.ExecContext(ctx, `DELETE FROM visitors WHERE timestamp < ?`, ts)
	if err != nil {
		return 0, 0, fmt.Errorf("delete old visitors: %w", err)
	}
	visitors, _ := res.RowsAffected()

	res, err = r.db.ExecContext(ctx, `DELETE FROM plays WHERE timestamp < ?`, ts)
	if err != nil {
		return visitors, 0, fmt.Errorf("delete old plays: %w", err)
	}
	plays, _ := res.RowsAffected()

	return visitors, plays, nil
}
