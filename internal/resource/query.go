package resource

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/courselight/courselight/internal/cachestore"
)

// Query is a read operation on a resource. The path function maps call
// arguments to a URL relative to the resource's base path; provides
// declares the tags the cached result carries, parameterized by both the
// arguments and the decoded result so list responses can carry per-row
// id tags.
type Query[A any, R any] struct {
	resource *Resource
	name     string
	path     func(args A) string
	provides func(args A, result R) []cachestore.Tag
}

func NewQuery[A any, R any](
	resource *Resource,
	name string,
	path func(args A) string,
	provides func(args A, result R) []cachestore.Tag,
) *Query[A, R] {
	return &Query[A, R]{
		resource: resource,
		name:     name,
		path:     path,
		provides: provides,
	}
}

// Key is the cache identity of one call to this query.
func (q *Query[A, R]) Key(args A) (cachestore.Key, error) {
	return cachestore.NewKey(q.resource.name+"."+q.name, args)
}

func (q *Query[A, R]) fetchFunc(args A) cachestore.FetchFunc {
	return func(ctx context.Context) (cachestore.FetchResult, error) {
		client := q.resource.client

		data, err := client.do(ctx, "GET", q.resource.url(q.path(args)), nil)
		if err != nil {
			return cachestore.FetchResult{}, fmt.Errorf("query %s.%s failed: %w", q.resource.name, q.name, err)
		}

		var result R
		if err := json.Unmarshal(data, &result); err != nil {
			return cachestore.FetchResult{}, fmt.Errorf("query %s.%s returned unexpected shape: %w", q.resource.name, q.name, err)
		}

		var tags []cachestore.Tag
		if q.provides != nil {
			tags = q.provides(args, result)
		}

		return cachestore.FetchResult{Data: result, Tags: tags}, nil
	}
}

// Subscribe registers a live subscription for the query in the shared
// store. Concurrent subscriptions with equal arguments share one fetch.
func (q *Query[A, R]) Subscribe(
	ctx context.Context,
	args A,
	onChange func(cachestore.Snapshot),
	options ...cachestore.SubscribeOption,
) (*cachestore.Subscription, error) {
	key, err := q.Key(args)
	if err != nil {
		return nil, err
	}
	return q.resource.client.store.Subscribe(ctx, key, q.fetchFunc(args), onChange, options...)
}

// Get resolves the query once through the store: cached data is served
// without a network call, concurrent calls share one fetch.
func (q *Query[A, R]) Get(ctx context.Context, args A) (R, error) {
	var empty R

	key, err := q.Key(args)
	if err != nil {
		return empty, err
	}

	data, err := q.resource.client.store.Get(ctx, key, q.fetchFunc(args))
	if err != nil {
		return empty, err
	}

	result, ok := data.(R)
	if !ok {
		return empty, fmt.Errorf("query %s.%s: cached data has unexpected type %T", q.resource.name, q.name, data)
	}
	return result, nil
}

// Data extracts a typed result from a snapshot. The second return is
// false when the snapshot holds no data of that type yet.
func Data[R any](snapshot cachestore.Snapshot) (R, bool) {
	result, ok := snapshot.Data.(R)
	return result, ok
}
