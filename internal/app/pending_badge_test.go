package app

import (
	"context"
	"testing"
	"time"

	"github.com/courselight/courselight/internal/cachestore"
	"github.com/courselight/courselight/internal/domain"
	"github.com/stretchr/testify/require"
)

type mockPendingWatcher struct {
	t       *testing.T
	store   *cachestore.Store
	pending func() []domain.Enrollment
}

func (m *mockPendingWatcher) SubscribePendingEnrollments(
	ctx context.Context,
	onChange func(enrollments []domain.Enrollment, err error),
	options ...cachestore.SubscribeOption,
) (*cachestore.Subscription, error) {
	m.t.Helper()

	key, err := cachestore.NewKey("enrollment.pending", struct{}{})
	require.NoError(m.t, err)

	return m.store.Subscribe(ctx, key, func(ctx context.Context) (cachestore.FetchResult, error) {
		return cachestore.FetchResult{Data: m.pending()}, nil
	}, func(snapshot cachestore.Snapshot) {
		if snapshot.Status != cachestore.StatusSuccess {
			return
		}
		enrollments, ok := snapshot.Data.([]domain.Enrollment)
		if !ok {
			return
		}
		onChange(enrollments, nil)
	}, options...)
}

func TestBuildWatchPendingEnrollments(t *testing.T) {
	t.Parallel()

	store := cachestore.New()
	t.Cleanup(store.Teardown)

	pendingCount := 0
	watcher := &mockPendingWatcher{
		t:     t,
		store: store,
		pending: func() []domain.Enrollment {
			pending := make([]domain.Enrollment, pendingCount)
			pendingCount++
			return pending
		},
	}

	watchPending := BuildWatchPendingEnrollments(watcher, 10*time.Millisecond)

	counts := make(chan int, 16)
	stop, err := watchPending(t.Context(), func(count int) {
		counts <- count
	})
	require.NoError(t, err)
	defer stop()

	// The first fetch reports zero pending, polling picks up the growth
	require.Eventually(t, func() bool {
		select {
		case count := <-counts:
			return count >= 2
		default:
			return false
		}
	}, 5*time.Second, 5*time.Millisecond)
}
