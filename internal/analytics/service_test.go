package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexjean/devify/internal/analytics"
	"github.com/alexjean/devify/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) InsertVisit(ctx context.Context, v analytics.VisitorMetric) error {
	return m.Called(ctx, v).Error(0)
}

func (m *mockRepository) InsertPlay(ctx context.Context, projectID, listener string, at time.Time) error {
	return m.Called(ctx, projectID, listener, at).Error(0)
}

func (m *mockRepository) Stats(ctx context.Context, w analytics.Window, topLimit, recentLimit int) (*analytics.Stats, error) {
	args := m.Called(ctx, w, topLimit, recentLimit)
	if stats, ok := args.Get(0).(*analytics.Stats); ok {
		return stats, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) PlayCounts(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if counts, ok := args.Get(0).(map[string]int64); ok {
		return counts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) RecentVisitors(ctx context.Context, limit int) ([]analytics.VisitorMetric, error) {
	args := m.Called(ctx, limit)
	if visitors, ok := args.Get(0).([]analytics.VisitorMetric); ok {
		return visitors, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func TestShouldTrack(t *testing.T) {
	assert.True(t, analytics.ShouldTrack("/", false))
	assert.True(t, analytics.ShouldTrack("/views/bio", false))
	assert.False(t, analytics.ShouldTrack("/", true))
	for _, path := range []string{"/static/app.css", "/images/x.png", "/admin/dashboard", "/favicon.ico", "/metrics"} {
		assert.False(t, analytics.ShouldTrack(path, false), path)
	}
}

func TestHashIsStableAndOpaque(t *testing.T) {
	svc, err := analytics.NewService(&mockRepository{}, catalog.Default(), nil)
	require.NoError(t, err)

	a := svc.Hash("203.0.113.7")
	assert.Len(t, a, 16)
	assert.Equal(t, a, svc.Hash("203.0.113.7"))
	assert.NotEqual(t, a, svc.Hash("203.0.113.8"))
	assert.NotContains(t, a, "203")

	other, err := analytics.NewService(&mockRepository{}, catalog.Default(), nil)
	require.NoError(t, err)
	assert.NotEqual(t, a, other.Hash("203.0.113.7"), "salt is per process")
}

func TestTrackVisitStoresHashedIP(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepository{}
	svc, err := analytics.NewService(repo, catalog.Default(), nil)
	require.NoError(t, err)

	repo.On("InsertVisit", ctx, mock.MatchedBy(func(v analytics.VisitorMetric) bool {
		return v.HashedIP == svc.Hash("198.51.100.1") && v.Path == "/" && v.UserAgent == "curl"
	})).Return(nil)

	svc.TrackVisit(ctx, "198.51.100.1", "curl", "/")
	repo.AssertExpectations(t)
}

func TestRecordPlayFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepository{}
	svc, err := analytics.NewService(repo, catalog.Default(), nil)
	require.NoError(t, err)

	repo.On("InsertPlay", ctx, "1", svc.Hash("listener"), mock.AnythingOfType("time.Time")).
		Return(errors.New("database is locked"))

	svc.RecordPlay(ctx, "1", "listener")
	repo.AssertExpectations(t)
}

func TestStatsAddsTitles(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepository{}
	svc, err := analytics.NewService(repo, catalog.Default(), nil)
	require.NoError(t, err)

	repo.On("Stats", ctx, mock.AnythingOfType("analytics.Window"), 10, 50).Return(&analytics.Stats{
		TotalPlays: 3,
		TopProjects: []analytics.ProjectPlays{
			{ProjectID: "2", Plays: 2},
			{ProjectID: "retired", Plays: 1},
		},
	}, nil)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "AI Chat Interface", stats.TopProjects[0].Title)
	assert.Empty(t, stats.TopProjects[1].Title)
}

func TestStatsWrapsErrors(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepository{}
	svc, err := analytics.NewService(repo, catalog.Default(), nil)
	require.NoError(t, err)

	boom := errors.New("boom")
	repo.On("Stats", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil, boom)
	_, err = svc.Stats(ctx)
	assert.ErrorIs(t, err, boom)
}

func TestCleanupUsesRetentionCutoff(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepository{}
	svc, err := analytics.NewService(repo, catalog.Default(), nil)
	require.NoError(t, err)

	repo.On("DeleteBefore", ctx, mock.MatchedBy(func(cutoff time.Time) bool {
		age := time.Since(cutoff)
		return age > analytics.Retention-time.Minute && age < analytics.Retention+time.Minute
	})).Return(int64(4), int64(2), nil)

	require.NoError(t, svc.Cleanup(ctx))
	repo.AssertExpectations(t)
}
