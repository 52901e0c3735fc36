package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type overviewJSON = string

func makeOverview(variant int) overviewJSON {
	return fmt.Sprintf(`{"totalCourses":%d}`, variant)
}

func fetchOverview(variant int) func() (overviewJSON, error) {
	return func() (overviewJSON, error) {
		return makeOverview(variant), nil
	}
}

func fetchError(variant int) func() (overviewJSON, error) {
	return func() (overviewJSON, error) {
		return "", fmt.Errorf("upstream error %d", variant)
	}
}

func fetchUnreachable(t *testing.T) func() (overviewJSON, error) {
	return func() (overviewJSON, error) {
		t.Fatal("fetch ran for a key that should have been cached")
		return "", nil
	}
}

func slowedBy(handle *lockstepHandle[overviewJSON], steps int, fetch func() (overviewJSON, error)) func() (overviewJSON, error) {
	return func() (overviewJSON, error) {
		for range steps {
			handle.wait()
		}
		return fetch()
	}
}

func TestLockstepRunFinishes(t *testing.T) {
	for participants := 0; participants < 10; participants++ {
		coordinator, handles := newLockstep[overviewJSON](participants, 100)

		var wg sync.WaitGroup
		wg.Add(participants)
		for _, handle := range handles {
			go func() {
				handle.waitUntilFinished()
				wg.Done()
			}()
		}

		coordinator.run()
		wg.Wait()
	}
}

func TestGetOrCreateSingleCaller(t *testing.T) {
	coordinator, handles := newLockstep[overviewJSON](1, 10)

	go func() {
		handle := handles[0]
		assert.Equal(t, 0, handle.coordinator.currentStep)

		data, err := GetOrCreate(context.Background(), handle, "stats", fetchOverview(1))
		assert.NoError(t, err)
		assert.Equal(t, makeOverview(1), data)
		// An immediate fetch resolves without advancing a step
		assert.Equal(t, 0, handle.coordinator.currentStep)

		handle.wait()
		assert.Equal(t, 1, handle.coordinator.currentStep)

		handle.waitUntilFinished()
	}()

	coordinator.run()
}

func TestGetOrCreateDeduplicates(t *testing.T) {
	coordinator, handles := newLockstep[overviewJSON](2, 10)

	go func() {
		handle := handles[0]
		data, err := GetOrCreate(context.Background(), handle, "stats", fetchOverview(1))
		assert.NoError(t, err)
		assert.Equal(t, makeOverview(1), data)
		assert.Equal(t, 0, handle.coordinator.currentStep)

		data, err = GetOrCreate(context.Background(), handle, "courses", slowedBy(handle, 2, fetchOverview(2)))
		assert.NoError(t, err)
		assert.Equal(t, makeOverview(2), data)
		assert.Equal(t, 2, handle.coordinator.currentStep)

		handle.waitUntilFinished()
	}()

	go func() {
		handle := handles[1]
		handle.wait() // let the first caller populate the cache

		data, err := GetOrCreate(context.Background(), handle, "stats", fetchUnreachable(t))
		assert.NoError(t, err)
		assert.Equal(t, makeOverview(1), data)
		assert.Equal(t, 1, handle.coordinator.currentStep)

		data, err = GetOrCreate(context.Background(), handle, "courses", fetchUnreachable(t))
		assert.NoError(t, err)
		assert.Equal(t, makeOverview(2), data)
		// Whether we see the slow fetch land on its own step or one
		// later depends on goroutine ordering within the step.
		assert.True(t, handle.coordinator.currentStep == 2 || handle.coordinator.currentStep == 3)

		handle.waitUntilFinished()
	}()

	coordinator.run()
}

func TestGetOrCreateRetriesAfterError(t *testing.T) {
	coordinator, handles := newLockstep[overviewJSON](2, 10)

	go func() {
		handle := handles[0]
		_, err := GetOrCreate(context.Background(), handle, "stats", slowedBy(handle, 2, fetchError(1)))
		assert.Error(t, err)
		assert.Equal(t, 2, handle.coordinator.currentStep)

		handle.waitUntilFinished()
	}()

	go func() {
		handle := handles[1]
		handle.wait()

		// The first caller's fetch fails and releases its claim, so
		// this caller retries and succeeds.
		data, err := GetOrCreate(context.Background(), handle, "stats", slowedBy(handle, 2, fetchOverview(1)))
		assert.NoError(t, err)
		assert.Equal(t, makeOverview(1), data)
		assert.True(t, handle.coordinator.currentStep == 4 || handle.coordinator.currentStep == 5)

		handle.waitUntilFinished()
	}()

	coordinator.run()
}

func TestGetOrCreateReleasesClaimOnError(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name  string
		cache Cache[overviewJSON]
	}{
		{name: "memory cache", cache: NewMemoryCache[overviewJSON]()},
		{name: "ttl cache", cache: NewTTLCache[overviewJSON](1 * time.Minute)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := GetOrCreate(context.Background(), c.cache, "stats", fetchError(10))
			require.Error(t, err)

			// The failed claim must not wedge the key
			data, err := GetOrCreate(context.Background(), c.cache, "stats", fetchOverview(1))
			require.NoError(t, err)
			require.Equal(t, makeOverview(1), data)
		})
	}
}

func TestGetOrCreateConcurrentTTLCache(t *testing.T) {
	t.Run("concurrent callers share one fetch per key", func(t *testing.T) {
		ctx := context.Background()
		cache := NewTTLCache[overviewJSON](1 * time.Minute)

		for round := 0; round < 100; round++ {
			t.Run(fmt.Sprintf("round #%d", round), func(t *testing.T) {
				t.Parallel()

				fetched := false
				fetchOnce := func() (overviewJSON, error) {
					require.False(t, fetched, "fetch ran twice for the same key")
					fetched = true
					return makeOverview(1), nil
				}

				for caller := 0; caller < 10; caller++ {
					go func() {
						data, err := GetOrCreate(ctx, cache, fmt.Sprintf("stats-%d", round), fetchOnce)
						require.NoError(t, err)
						require.Equal(t, makeOverview(1), data)
					}()
				}
			})
		}
	})
}
