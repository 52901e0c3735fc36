package app

import (
	"context"
	"time"

	"github.com/courselight/courselight/internal/adapters/cache"
	"github.com/courselight/courselight/internal/domain"
)

type overviewGetter interface {
	GetOverview(ctx context.Context) (domain.StatsOverview, error)
}

type visitStatsGetter interface {
	GetVisitStats(ctx context.Context, since time.Time) (domain.VisitStats, error)
}

// StatsSummary combines the upstream dashboard counts with the
// gateway's own visit numbers.
type StatsSummary struct {
	Overview domain.StatsOverview
	Visits   domain.VisitStats
}

type GetStatsOverview func(ctx context.Context, session domain.Session) (StatsSummary, error)

const visitStatsWindow = 30 * 24 * time.Hour

func BuildGetStatsOverview(
	overviewCache cache.OverviewCache,
	stats overviewGetter,
	visits visitStatsGetter,
	nowFunc func() time.Time,
) GetStatsOverview {
	return func(ctx context.Context, session domain.Session) (StatsSummary, error) {
		if err := requireRole(session, domain.RoleAdmin); err != nil {
			return StatsSummary{}, err
		}

		overview, err := cache.GetOrCreate(ctx, overviewCache, "overview", func() (domain.StatsOverview, error) {
			return stats.GetOverview(ctx)
		})
		if err != nil {
			return StatsSummary{}, err
		}

		visitStats, err := visits.GetVisitStats(ctx, nowFunc().Add(-visitStatsWindow))
		if err != nil {
			return StatsSummary{}, err
		}

		return StatsSummary{
			Overview: overview,
			Visits:   visitStats,
		}, nil
	}
}
