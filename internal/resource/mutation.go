package resource

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/courselight/courselight/internal/cachestore"
)

// Request is the HTTP shape of one mutation call. Path is relative to the
// resource's base path; a nil Body sends no payload.
type Request struct {
	Method string
	Path   string
	Body   any
}

// Mutation is a write operation on a resource. On success every cache
// entry whose tag set intersects the declared invalidation tags is marked
// stale; subscribed entries refetch immediately. On failure nothing is
// invalidated, so cached state stays exactly as it was.
type Mutation[A any, R any] struct {
	resource    *Resource
	name        string
	request     func(args A) Request
	invalidates func(args A, result R) []cachestore.Tag
}

func NewMutation[A any, R any](
	resource *Resource,
	name string,
	request func(args A) Request,
	invalidates func(args A, result R) []cachestore.Tag,
) *Mutation[A, R] {
	return &Mutation[A, R]{
		resource:    resource,
		name:        name,
		request:     request,
		invalidates: invalidates,
	}
}

func (m *Mutation[A, R]) Do(ctx context.Context, args A) (R, error) {
	var empty R

	request := m.request(args)
	data, err := m.resource.client.do(ctx, request.Method, m.resource.url(request.Path), request.Body)
	if err != nil {
		return empty, fmt.Errorf("mutation %s.%s failed: %w", m.resource.name, m.name, err)
	}

	var result R
	if len(data) > 0 {
		if err := json.Unmarshal(data, &result); err != nil {
			return empty, fmt.Errorf("mutation %s.%s returned unexpected shape: %w", m.resource.name, m.name, err)
		}
	}

	if m.invalidates != nil {
		if tags := m.invalidates(args, result); len(tags) > 0 {
			m.resource.client.store.Invalidate(tags)
		}
	}

	return result, nil
}
