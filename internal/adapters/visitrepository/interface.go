package visitrepository

import (
	"context"
	"time"

	"github.com/courselight/courselight/internal/domain"
)

type VisitRepository interface {
	StoreVisit(ctx context.Context, visit domain.Visit) error
	GetVisitStats(ctx context.Context, since time.Time) (domain.VisitStats, error)
}
