package cache

import (
	"runtime"
	"sync"
)

// The lockstep cache is a deterministic Cache for tests. Each
// participant gets its own handle; wait() blocks until every
// participant has waited, at which point the coordinator advances
// one step. This makes the interleaving of concurrent GetOrCreate
// calls reproducible.

type lockstepEntry[T any] struct {
	data       T
	valid      bool
	insertedAt int
}

type lockstepCoordinator[T any] struct {
	entries      map[string]lockstepEntry[T]
	entryMu      sync.Mutex
	stepMu       sync.Mutex
	currentStep  int
	maxSteps     int
	participants int
	waitedCount  int
}

type lockstepHandle[T any] struct {
	coordinator *lockstepCoordinator[T]
	targetStep  int
}

func newLockstep[T any](participants int, maxSteps int) (*lockstepCoordinator[T], []*lockstepHandle[T]) {
	coordinator := &lockstepCoordinator[T]{
		entries:      make(map[string]lockstepEntry[T]),
		maxSteps:     maxSteps,
		participants: participants,
	}

	handles := make([]*lockstepHandle[T], participants)
	for i := range participants {
		handles[i] = &lockstepHandle[T]{coordinator: coordinator}
	}

	return coordinator, handles
}

func (h *lockstepHandle[T]) getOrClaim(key string) hitResult[T] {
	h.coordinator.entryMu.Lock()
	defer h.coordinator.entryMu.Unlock()

	if entry, ok := h.coordinator.entries[key]; ok {
		return hitResult[T]{data: entry.data, valid: entry.valid, claimed: false}
	}

	h.coordinator.entries[key] = lockstepEntry[T]{
		valid:      false,
		insertedAt: h.coordinator.currentStep,
	}
	return hitResult[T]{valid: false, claimed: true}
}

func (h *lockstepHandle[T]) set(key string, data T) {
	h.coordinator.entryMu.Lock()
	defer h.coordinator.entryMu.Unlock()

	h.coordinator.entries[key] = lockstepEntry[T]{
		data:       data,
		valid:      true,
		insertedAt: h.coordinator.currentStep,
	}
}

func (h *lockstepHandle[T]) delete(key string) {
	h.coordinator.entryMu.Lock()
	defer h.coordinator.entryMu.Unlock()

	delete(h.coordinator.entries, key)
}

func (h *lockstepHandle[T]) wait() {
	if h.coordinator.finished() {
		panic("wait() called after the lockstep run finished")
	}

	h.coordinator.stepMu.Lock()
	h.coordinator.waitedCount++
	h.coordinator.stepMu.Unlock()

	h.targetStep++

	for h.coordinator.currentStep < h.targetStep {
		runtime.Gosched()
	}
}

func (h *lockstepHandle[T]) waitUntilFinished() {
	for !h.coordinator.finished() {
		h.wait()
	}
}

func (c *lockstepCoordinator[T]) finished() bool {
	return c.currentStep >= c.maxSteps
}

// run advances steps until maxSteps, each time every participant has
// called wait(). Call from the test goroutine.
func (c *lockstepCoordinator[T]) run() {
	for !c.finished() {
		if c.waitedCount != c.participants {
			runtime.Gosched()
			continue
		}

		c.stepMu.Lock()
		c.waitedCount = 0
		c.currentStep++
		c.stepMu.Unlock()
	}
}
