package cache

import (
	"time"

	"github.com/courselight/courselight/internal/domain"
)

// The stats overview aggregates upstream counts with local visit numbers,
// so it is comparatively expensive to compute and changes slowly.
type OverviewCache = Cache[domain.StatsOverview]

func NewTTLOverviewCache(ttl time.Duration) OverviewCache {
	return NewTTLCache[domain.StatsOverview](ttl)
}
