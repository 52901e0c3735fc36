package cache

import (
	"context"
	"fmt"

	"github.com/courselight/courselight/internal/logging"
)

// GetOrCreate returns the cached value for key, running create at most
// once per key across concurrent callers. A caller that claims the key
// but fails releases the claim so others can retry.
func GetOrCreate[T any](ctx context.Context, cache Cache[T], key string, create func() (T, error)) (T, error) {
	claimed := false
	set := false
	defer func() {
		if claimed && !set {
			cache.delete(key)
		}
	}()

	for {
		result := cache.getOrClaim(key)

		if result.claimed {
			claimed = true

			logging.FromContext(ctx).InfoContext(ctx, "Getting cached value", "cache", "miss")

			data, err := create()
			if err != nil {
				var empty T
				return empty, fmt.Errorf("failed to create cache entry: %w", err)
			}

			cache.set(key, data)
			set = true

			return data, nil
		}

		if result.valid {
			logging.FromContext(ctx).InfoContext(ctx, "Getting cached value", "cache", "hit")
			return result.data, nil
		}

		// Someone else holds the claim. Wait for them to either set
		// the value or release it.
		logging.FromContext(ctx).InfoContext(ctx, "Waiting for cache")
		cache.wait()
	}
}
