package cache

import "sync"

type memoryEntry[T any] struct {
	data  T
	valid bool
}

// memoryCache is an unbounded map-backed Cache. Entries never expire,
// so it only suits short-lived processes and tests.
type memoryCache[T any] struct {
	mu      sync.Mutex
	entries map[string]memoryEntry[T]
}

func NewMemoryCache[T any]() *memoryCache[T] {
	return &memoryCache[T]{entries: make(map[string]memoryEntry[T])}
}

func (c *memoryCache[T]) getOrClaim(key string) hitResult[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[key]; ok {
		return hitResult[T]{data: entry.data, valid: entry.valid, claimed: false}
	}

	c.entries[key] = memoryEntry[T]{valid: false}
	return hitResult[T]{valid: false, claimed: true}
}

func (c *memoryCache[T]) set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryEntry[T]{data: data, valid: true}
}

func (c *memoryCache[T]) delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

func (c *memoryCache[T]) wait() {}
