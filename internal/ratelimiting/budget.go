package ratelimiting

import (
	"context"
	"slices"
	"sync"
	"time"
)

// CallBudget bounds how many calls may run within one sliding window.
// The gateway uses it to keep total traffic to the upstream LMS API
// under the quota it has been granted, no matter how many handlers are
// fanning out requests.
//
// Callers queue until a window slot frees up. A caller whose context
// deadline cannot outlast the queue wait plus its reserved call time is
// refused up front instead of holding a slot it can never use.
type CallBudget struct {
	calls  int
	window time.Duration

	nowFunc   func() time.Time
	afterFunc func(time.Duration) <-chan time.Time

	slots chan struct{}

	mu sync.Mutex
	// completions holds the finish time of the last `calls` calls,
	// oldest first. A new call may start once the oldest completion has
	// left the window.
	completions []time.Time
}

func NewCallBudget(
	calls int,
	window time.Duration,
	nowFunc func() time.Time,
	afterFunc func(duration time.Duration) <-chan time.Time,
) *CallBudget {
	slots := make(chan struct{}, calls)
	for i := 0; i < calls; i++ {
		slots <- struct{}{}
	}

	// Seed the history outside the window so the first `calls` calls
	// start without waiting
	seed := nowFunc().Add(-window)
	completions := make([]time.Time, calls)
	for i := range completions {
		completions[i] = seed
	}

	return &CallBudget{
		calls:  calls,
		window: window,

		nowFunc:   nowFunc,
		afterFunc: afterFunc,

		slots:       slots,
		completions: completions,
	}
}

// Spend runs call within the budget. It reports whether call ran:
// false means the context was cancelled, or its deadline could not
// cover the queue wait plus reserve.
func (b *CallBudget) Spend(ctx context.Context, reserve time.Duration, call func()) bool {
	return b.SpendCancelable(ctx, reserve, func() bool {
		call()
		return true
	})
}

// SpendCancelable is Spend for calls that may decide not to count
// against the budget after all: when call returns false the spent slot
// is restored as if the call never happened.
func (b *CallBudget) SpendCancelable(ctx context.Context, reserve time.Duration, call func() bool) bool {
	select {
	case <-b.slots:
		defer func() {
			b.slots <- struct{}{}
		}()
	case <-ctx.Done():
		return false
	}

	oldest, ok := b.takeOldestCompletion(ctx, reserve)
	if !ok {
		return false
	}

	// Until the call completes, the taken history entry stands in for
	// it. If the call never runs, the old entry goes back unchanged.
	completedAt := oldest
	defer func() {
		b.recordCompletion(completedAt)
	}()

	if wait := b.timeUntilFree(oldest); wait > 0 {
		select {
		case <-ctx.Done():
			return false
		case <-b.afterFunc(wait):
		}
	}

	if !call() {
		return false
	}

	completedAt = b.nowFunc()
	return true
}

// timeUntilFree reports how long until the given completion leaves the
// window.
func (b *CallBudget) timeUntilFree(completion time.Time) time.Duration {
	elapsed := b.nowFunc().Sub(completion)
	return b.window - elapsed
}

// takeOldestCompletion removes and returns the oldest history entry.
// It refuses (without removing) when the caller's deadline cannot cover
// the implied wait plus the reserved call time.
func (b *CallBudget) takeOldestCompletion(ctx context.Context, reserve time.Duration) (time.Time, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	oldest := b.completions[0]

	if deadline, ok := ctx.Deadline(); ok {
		wait := b.timeUntilFree(oldest)
		if wait < 0 {
			wait = 0
		}
		if wait+reserve > deadline.Sub(b.nowFunc()) {
			return time.Time{}, false
		}
	}

	b.completions = b.completions[1:]
	return oldest, true
}

func (b *CallBudget) recordCompletion(completedAt time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.completions = insertCompletion(b.completions, completedAt)
}

// insertCompletion keeps the history sorted oldest-first.
func insertCompletion(completions []time.Time, completedAt time.Time) []time.Time {
	i, _ := slices.BinarySearchFunc(completions, completedAt, func(a, b time.Time) int {
		return a.Compare(b)
	})
	return slices.Insert(completions, i, completedAt)
}
