package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLCacheImpl(t *testing.T) {
	t.Run("Set and get", func(t *testing.T) {
		overviewCache := NewTTLCache[string](1000 * time.Second)

		overviewCache.set("test", "cached")

		result := overviewCache.getOrClaim("test")
		assert.False(t, result.claimed, "Expected entry to exist")
		assert.True(t, result.valid)
		assert.Equal(t, "cached", result.data)
	})

	t.Run("getOrClaim claims when missing", func(t *testing.T) {
		overviewCache := NewTTLCache[string](1000 * time.Second)

		result := overviewCache.getOrClaim("test")
		assert.True(t, result.claimed, "Expected entry to not exist and get claimed")

		result = overviewCache.getOrClaim("test")
		assert.False(t, result.claimed, "Expected entry to exist and not get claimed")
		assert.False(t, result.valid, "Expected entry to be invalid")
	})

	t.Run("delete", func(t *testing.T) {
		overviewCache := NewTTLCache[string](1000 * time.Second)
		overviewCache.set("test", "cached")

		overviewCache.delete("test")

		result := overviewCache.getOrClaim("test")
		assert.True(t, result.claimed, "Expected to not find a value")
	})

	t.Run("delete missing entry", func(t *testing.T) {
		overviewCache := NewTTLCache[string](1000 * time.Second)

		overviewCache.delete("test")

		result := overviewCache.getOrClaim("test")
		assert.True(t, result.claimed, "Expected to not find a value")
	})

	t.Run("wait", func(t *testing.T) {
		overviewCache := NewTTLCache[string](1000 * time.Second)
		overviewCache.wait()
	})
}
