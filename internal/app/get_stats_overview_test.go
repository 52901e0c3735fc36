package app

import (
	"context"
	"testing"
	"time"

	"github.com/courselight/courselight/internal/adapters/cache"
	"github.com/courselight/courselight/internal/domain"
	"github.com/stretchr/testify/require"
)

type mockOverviewGetter struct {
	t        *testing.T
	calls    int
	overview domain.StatsOverview
	err      error
}

func (m *mockOverviewGetter) GetOverview(ctx context.Context) (domain.StatsOverview, error) {
	m.t.Helper()
	m.calls++
	return m.overview, m.err
}

type mockVisitStatsGetter struct {
	t     *testing.T
	stats domain.VisitStats
	since time.Time
}

func (m *mockVisitStatsGetter) GetVisitStats(ctx context.Context, since time.Time) (domain.VisitStats, error) {
	m.t.Helper()
	m.since = since
	return m.stats, nil
}

func TestBuildGetStatsOverview(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	admin := domain.Session{UserID: "a1", Role: domain.RoleAdmin}
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	nowFunc := func() time.Time { return now }

	t.Run("combines upstream and local numbers", func(t *testing.T) {
		t.Parallel()

		overviewGetter := &mockOverviewGetter{
			t:        t,
			overview: domain.StatsOverview{TotalCourses: 4, TotalStudents: 120},
		}
		visitGetter := &mockVisitStatsGetter{
			t:     t,
			stats: domain.VisitStats{UniqueVisitors: 40, TotalVisits: 300},
		}

		getOverview := BuildGetStatsOverview(
			cache.NewTTLOverviewCache(time.Minute),
			overviewGetter,
			visitGetter,
			nowFunc,
		)

		summary, err := getOverview(ctx, admin)
		require.NoError(t, err)
		require.Equal(t, int64(4), summary.Overview.TotalCourses)
		require.Equal(t, int64(300), summary.Visits.TotalVisits)
		require.Equal(t, now.Add(-30*24*time.Hour), visitGetter.since)
	})

	t.Run("upstream overview is cached", func(t *testing.T) {
		t.Parallel()

		overviewGetter := &mockOverviewGetter{t: t, overview: domain.StatsOverview{TotalCourses: 4}}
		visitGetter := &mockVisitStatsGetter{t: t}

		getOverview := BuildGetStatsOverview(
			cache.NewTTLOverviewCache(time.Minute),
			overviewGetter,
			visitGetter,
			nowFunc,
		)

		_, err := getOverview(ctx, admin)
		require.NoError(t, err)
		_, err = getOverview(ctx, admin)
		require.NoError(t, err)

		require.Equal(t, 1, overviewGetter.calls)
	})

	t.Run("only admins", func(t *testing.T) {
		t.Parallel()

		getOverview := BuildGetStatsOverview(
			cache.NewTTLOverviewCache(time.Minute),
			&mockOverviewGetter{t: t},
			&mockVisitStatsGetter{t: t},
			nowFunc,
		)

		_, err := getOverview(ctx, domain.Session{UserID: "e1", Role: domain.RoleEmployee})
		require.ErrorIs(t, err, domain.ErrAccessDenied)

		_, err = getOverview(ctx, domain.Session{})
		require.ErrorIs(t, err, domain.ErrNotAuthenticated)
	})
}
