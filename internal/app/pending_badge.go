package app

import (
	"context"
	"time"

	"github.com/courselight/courselight/internal/cachestore"
	"github.com/courselight/courselight/internal/domain"
	"github.com/courselight/courselight/internal/logging"
)

type pendingEnrollmentWatcher interface {
	SubscribePendingEnrollments(
		ctx context.Context,
		onChange func(enrollments []domain.Enrollment, err error),
		options ...cachestore.SubscribeOption,
	) (*cachestore.Subscription, error)
}

type WatchPendingEnrollments func(ctx context.Context, onCount func(count int)) (func(), error)

// BuildWatchPendingEnrollments feeds the admin badge: the pending count
// is pushed on every change, refreshed both by tag invalidation and on
// a fixed polling cadence. Errors keep the previous count.
func BuildWatchPendingEnrollments(
	enrollments pendingEnrollmentWatcher,
	pollInterval time.Duration,
) WatchPendingEnrollments {
	return func(ctx context.Context, onCount func(count int)) (func(), error) {
		subscription, err := enrollments.SubscribePendingEnrollments(
			ctx,
			func(pending []domain.Enrollment, err error) {
				if err != nil {
					logging.FromContext(ctx).WarnContext(ctx, "Pending enrollment refresh failed", "error", err.Error())
					return
				}
				onCount(len(pending))
			},
			cachestore.WithPollInterval(pollInterval),
		)
		if err != nil {
			return nil, err
		}
		return subscription.Unsubscribe, nil
	}
}
