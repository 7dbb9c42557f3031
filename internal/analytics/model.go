package analytics

import "time"

// VisitorMetric is one privacy-conscious page view.
type VisitorMetric struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"` // Hashed instead of raw IP for privacy
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
	Country   string    `json:"country,omitempty"`
}

// ProjectPlays counts how often a project was played.
type ProjectPlays struct {
	ProjectID string `json:"project_id"`
	Title     string `json:"title,omitempty"`
	Plays     int64  `json:"plays"`
}

// Stats feeds the admin dashboard.
type Stats struct {
	TotalVisitors    int64           `json:"total_visitors"`
	UniqueVisitors   int64           `json:"unique_visitors"`
	VisitorsToday    int64           `json:"visitors_today"`
	VisitorsThisWeek int64           `json:"visitors_this_week"`
	TotalPlays       int64           `json:"total_plays"`
	UniqueListeners  int64           `json:"unique_listeners"`
	TopProjects      []ProjectPlays  `json:"top_projects"`
	RecentVisitors   []VisitorMetric `json:"recent_visitors"`
}

// Window bounds the "today" and "this week" counters.
type Window struct {
	Today time.Time
	Week  time.Time
}
