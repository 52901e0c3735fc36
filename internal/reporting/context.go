package reporting

import (
	"context"
	"maps"
	"time"
)

type metaContextKey struct{}

// ReportingMeta accumulates what we know about a request as it moves
// through the gateway: sentry tags (port, userId), extras (upstream
// URLs, course ids), the caller from the auth-proxy headers, and when
// handling started.
type ReportingMeta struct {
	tags      map[string]string
	extras    map[string]string
	userID    string
	startedAt time.Time
}

// MetaFromContext returns a copy of the accumulated meta. Mutating the
// copy never leaks into the context, so handlers can enrich freely.
func MetaFromContext(ctx context.Context) ReportingMeta {
	meta, ok := ctx.Value(metaContextKey{}).(ReportingMeta)
	if !ok {
		return ReportingMeta{
			tags:   make(map[string]string),
			extras: make(map[string]string),
		}
	}

	return ReportingMeta{
		tags:      maps.Clone(meta.tags),
		extras:    maps.Clone(meta.extras),
		userID:    meta.userID,
		startedAt: meta.startedAt,
	}
}

func storeMeta(ctx context.Context, meta ReportingMeta) context.Context {
	return context.WithValue(ctx, metaContextKey{}, meta)
}

func setStartedAtInContext(ctx context.Context, startedAt time.Time) context.Context {
	meta := MetaFromContext(ctx)
	meta.startedAt = startedAt
	return storeMeta(ctx, meta)
}

func AddExtrasToContext(ctx context.Context, extras map[string]string) context.Context {
	meta := MetaFromContext(ctx)
	maps.Copy(meta.extras, extras)
	return storeMeta(ctx, meta)
}

func AddTagsToContext(ctx context.Context, tags map[string]string) context.Context {
	meta := MetaFromContext(ctx)
	maps.Copy(meta.tags, tags)
	return storeMeta(ctx, meta)
}

func SetUserIDInContext(ctx context.Context, userID string) context.Context {
	meta := MetaFromContext(ctx)
	meta.userID = userID
	return storeMeta(ctx, meta)
}
