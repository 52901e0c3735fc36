package cachestore

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/courselight/courselight/internal/logging"
)

type Status int

const (
	StatusUninitialized Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	}
	return "unknown"
}

var ErrStoreClosed = errors.New("cachestore: store is closed")

// Snapshot is the synchronous view of one entry. Data is retained across
// refetches, so a stale-but-previously-successful entry still carries the
// last good value while Stale is set.
type Snapshot struct {
	Status Status
	Data   any
	Err    error
	Stale  bool
}

// FetchResult carries the fetched data together with the tags the entry
// provides. Tags may be parameterized by the result, e.g. per-row id tags
// for list endpoints.
type FetchResult struct {
	Data any
	Tags []Tag
}

type FetchFunc func(ctx context.Context) (FetchResult, error)

// Store is the process-wide table of cache entries shared by all resource
// clients. All mutation goes through fetch completions and Invalidate;
// subscribers only observe.
type Store struct {
	mu      sync.Mutex
	entries map[Key]*entry
	closed  bool

	gracePeriod time.Duration
	afterFunc   func(time.Duration, func()) func()

	nextSubID uint64
}

type entry struct {
	key    Key
	status Status
	data   any
	err    error
	tags   map[Tag]struct{}
	stale  bool

	// generation counts issued fetches. A completing fetch is applied
	// only if its generation is still current; anything older has been
	// superseded and is discarded.
	generation uint64
	fetching   bool

	// version counts applied state changes. Subscribers drop
	// notifications older than the last one they saw, so a slow initial
	// snapshot cannot overwrite a fetch result delivered before it.
	version uint64

	fetch    FetchFunc
	fetchCtx context.Context

	subs        map[uint64]*Subscription
	cancelEvict func()
}

type Option func(*Store)

// WithGracePeriod sets how long a zero-subscriber entry survives before
// eviction. The default of one minute lets entries survive rapid
// unsubscribe/resubscribe cycles such as route transitions.
func WithGracePeriod(d time.Duration) Option {
	return func(s *Store) {
		s.gracePeriod = d
	}
}

// WithAfterFunc overrides the timer used for eviction and polling so
// tests control time.
func WithAfterFunc(afterFunc func(time.Duration, func()) func()) Option {
	return func(s *Store) {
		s.afterFunc = afterFunc
	}
}

func New(options ...Option) *Store {
	store := &Store{
		entries:     make(map[Key]*entry),
		gracePeriod: time.Minute,
		afterFunc: func(d time.Duration, f func()) func() {
			timer := time.AfterFunc(d, f)
			return func() {
				timer.Stop()
			}
		},
	}
	for _, option := range options {
		option(store)
	}
	return store
}

// Teardown drops all entries and rejects further subscriptions. Results
// of still in-flight fetches are discarded. Intended for tests and
// shutdown.
func (s *Store) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	for _, e := range s.entries {
		if e.cancelEvict != nil {
			e.cancelEvict()
			e.cancelEvict = nil
		}
	}
	s.entries = make(map[Key]*entry)
}

type subscribeConfig struct {
	pollInterval time.Duration
}

type SubscribeOption func(*subscribeConfig)

// WithPollInterval refetches the entry on a fixed cadence while the
// subscription is live, independent of tag invalidation.
func WithPollInterval(interval time.Duration) SubscribeOption {
	return func(c *subscribeConfig) {
		c.pollInterval = interval
	}
}

// Subscribe registers interest in a key. If the entry is absent, stale or
// errored, a fetch is started; a fetch already in flight is shared. The
// subscriber is notified with the current snapshot immediately, and again
// on every applied change, until Unsubscribe.
//
// onChange must not call Unsubscribe on its own subscription
// synchronously.
func (s *Store) Subscribe(
	ctx context.Context,
	key Key,
	fetch FetchFunc,
	onChange func(Snapshot),
	options ...SubscribeOption,
) (*Subscription, error) {
	config := subscribeConfig{}
	for _, option := range options {
		option(&config)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrStoreClosed
	}

	e, ok := s.entries[key]
	if !ok {
		e = &entry{
			key:    key,
			status: StatusUninitialized,
			tags:   make(map[Tag]struct{}),
			subs:   make(map[uint64]*Subscription),
		}
		s.entries[key] = e
	}

	e.fetch = fetch
	// Unsubscribing must not cancel a shared in-flight fetch, so the
	// fetch context is detached from the subscriber's.
	e.fetchCtx = context.WithoutCancel(ctx)

	if e.cancelEvict != nil {
		e.cancelEvict()
		e.cancelEvict = nil
	}

	s.nextSubID++
	sub := &Subscription{
		store:    s,
		key:      key,
		id:       s.nextSubID,
		onChange: onChange,
	}
	e.subs[sub.id] = sub

	needsFetch := e.status == StatusUninitialized || e.status == StatusError || e.stale
	if needsFetch && !e.fetching {
		s.startFetchLocked(e)
	}

	snapshot := snapshotLocked(e)
	version := e.version
	s.mu.Unlock()

	sub.notify(snapshot, version)

	if config.pollInterval > 0 {
		s.schedulePoll(sub, config.pollInterval)
	}

	return sub, nil
}

// Get resolves a key once without a standing subscription: it waits for
// the shared fetch (or returns the cached value synchronously) and then
// releases interest, leaving the entry to the grace-period reaper.
func (s *Store) Get(ctx context.Context, key Key, fetch FetchFunc) (any, error) {
	done := make(chan Snapshot, 1)

	sub, err := s.Subscribe(ctx, key, fetch, func(snapshot Snapshot) {
		if snapshot.Status != StatusSuccess && snapshot.Status != StatusError {
			return
		}
		// A stale success is superseded data with its refetch already in
		// flight; wait for the fresh value instead.
		if snapshot.Status == StatusSuccess && snapshot.Stale {
			return
		}
		select {
		case done <- snapshot:
		default:
		}
	})
	if err != nil {
		return nil, err
	}
	defer sub.Unsubscribe()

	select {
	case snapshot := <-done:
		if snapshot.Status == StatusError {
			return nil, snapshot.Err
		}
		return snapshot.Data, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Snapshot is a synchronous read of the current entry state. Unknown keys
// report as uninitialized.
func (s *Store) Snapshot(key Key) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return Snapshot{Status: StatusUninitialized}
	}
	return snapshotLocked(e)
}

// Invalidate marks every entry whose tag set intersects tags as stale.
// Entries with live subscribers refetch immediately; the rest refetch on
// their next subscription. An in-flight fetch for a hit entry is
// superseded: its eventual response is discarded since it may predate the
// mutation that triggered the invalidation.
func (s *Store) Invalidate(tags []Tag) {
	s.mu.Lock()

	var notifications []notification
	for _, e := range s.entries {
		if !anyTagMatchesLocked(tags, e) {
			continue
		}

		e.stale = true
		e.version++
		if e.fetching {
			e.generation++
			e.fetching = false
			if e.status == StatusLoading {
				e.status = StatusUninitialized
			}
		}

		if len(e.subs) > 0 {
			s.startFetchLocked(e)
		}

		notifications = append(notifications, collectLocked(e))
	}
	s.mu.Unlock()

	deliver(notifications)
}

// Refetch forces a fresh fetch for a key if one is not already running.
// Used by polling subscriptions.
func (s *Store) Refetch(key Key) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	e, ok := s.entries[key]
	if !ok || e.fetching || e.fetch == nil {
		s.mu.Unlock()
		return
	}
	s.startFetchLocked(e)
	s.mu.Unlock()
}

func anyTagMatchesLocked(tags []Tag, e *entry) bool {
	for _, tag := range tags {
		for provided := range e.tags {
			if tag.matches(provided) {
				return true
			}
		}
	}
	return false
}

func (s *Store) startFetchLocked(e *entry) {
	e.generation++
	e.fetching = true
	if e.status == StatusUninitialized || e.status == StatusError {
		// A retried error goes back to loading; callers should never be
		// served the superseded error while the retry is in flight.
		e.status = StatusLoading
		e.err = nil
	}
	e.version++

	generation := e.generation
	fetch := e.fetch
	ctx := e.fetchCtx
	if ctx == nil {
		ctx = context.Background()
	}
	key := e.key

	go func() {
		result, err := fetch(ctx)
		s.complete(ctx, key, generation, result, err)
	}()
}

func (s *Store) complete(ctx context.Context, key Key, generation uint64, result FetchResult, err error) {
	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()
		return
	}

	e, ok := s.entries[key]
	if !ok {
		// Evicted while the fetch was in flight
		s.mu.Unlock()
		return
	}

	if generation != e.generation {
		// Superseded by a newer fetch for the same key. Discard
		// silently so the cache never regresses to older data.
		s.mu.Unlock()
		logging.FromContext(ctx).InfoContext(ctx, "Discarding superseded response", "key", key.String())
		return
	}

	e.fetching = false
	e.version++
	if err != nil {
		e.status = StatusError
		e.err = err
		// An errored entry is not valid: it keeps no tags, so it can
		// only recover through a retry, not an invalidation.
		e.tags = make(map[Tag]struct{})
	} else {
		e.status = StatusSuccess
		e.data = result.Data
		e.err = nil
		e.stale = false
		e.tags = make(map[Tag]struct{}, len(result.Tags))
		for _, tag := range result.Tags {
			e.tags[tag] = struct{}{}
		}
	}

	n := collectLocked(e)
	s.mu.Unlock()

	deliver([]notification{n})
}

type notification struct {
	snapshot Snapshot
	version  uint64
	subs     []*Subscription
}

func collectLocked(e *entry) notification {
	subs := make([]*Subscription, 0, len(e.subs))
	for _, sub := range e.subs {
		subs = append(subs, sub)
	}
	return notification{
		snapshot: snapshotLocked(e),
		version:  e.version,
		subs:     subs,
	}
}

func deliver(notifications []notification) {
	for _, n := range notifications {
		for _, sub := range n.subs {
			sub.notify(n.snapshot, n.version)
		}
	}
}

func snapshotLocked(e *entry) Snapshot {
	return Snapshot{
		Status: e.status,
		Data:   e.data,
		Err:    e.err,
		Stale:  e.stale,
	}
}

func (s *Store) unsubscribe(sub *Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[sub.key]
	if !ok {
		return
	}

	delete(e.subs, sub.id)
	if len(e.subs) > 0 {
		return
	}

	if e.cancelEvict != nil {
		e.cancelEvict()
	}

	key := sub.key
	e.cancelEvict = s.afterFunc(s.gracePeriod, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		evictee, ok := s.entries[key]
		if !ok || len(evictee.subs) > 0 {
			return
		}
		delete(s.entries, key)
	})
}

func (s *Store) schedulePoll(sub *Subscription, interval time.Duration) {
	var arm func()
	arm = func() {
		cancel := s.afterFunc(interval, func() {
			if sub.isClosed() {
				return
			}
			s.Refetch(sub.key)
			arm()
		})

		sub.mu.Lock()
		if sub.closed {
			sub.mu.Unlock()
			cancel()
			return
		}
		sub.cancelPoll = cancel
		sub.mu.Unlock()
	}
	arm()
}
