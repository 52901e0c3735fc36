package cachestore

import "sync"

// Subscription is one observer's registration on a key. All onChange
// callbacks for a subscription are serialized under its own lock, and
// none are delivered after Unsubscribe returns.
type Subscription struct {
	store *Store
	key   Key
	id    uint64

	mu          sync.Mutex
	closed      bool
	onChange    func(Snapshot)
	cancelPoll  func()
	lastVersion uint64
}

func (sub *Subscription) Key() Key {
	return sub.key
}

// Unsubscribe releases interest in the key. The last unsubscriber arms
// the grace-period eviction timer. Any fetch still in flight keeps
// running, but this subscriber will not hear about its result.
func (sub *Subscription) Unsubscribe() {
	sub.mu.Lock()
	if sub.closed {
		sub.mu.Unlock()
		return
	}
	sub.closed = true
	cancelPoll := sub.cancelPoll
	sub.cancelPoll = nil
	sub.mu.Unlock()

	if cancelPoll != nil {
		cancelPoll()
	}

	sub.store.unsubscribe(sub)
}

func (sub *Subscription) notify(snapshot Snapshot, version uint64) {
	sub.mu.Lock()
	defer sub.mu.Unlock()

	if sub.closed || sub.onChange == nil {
		return
	}
	if version <= sub.lastVersion {
		// A newer state was already delivered; never step backwards.
		return
	}
	sub.lastVersion = version
	sub.onChange(snapshot)
}

func (sub *Subscription) isClosed() bool {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	return sub.closed
}
