package resource

import (
	"context"
	"net/http"
)

type sessionCookiesContextKey struct{}

// WithSessionCookies attaches the caller's session cookies to the
// context. Every upstream request built from that context forwards them,
// so upstream sees the same session the caller presented to the gateway.
func WithSessionCookies(ctx context.Context, cookies []*http.Cookie) context.Context {
	if len(cookies) == 0 {
		return ctx
	}
	return context.WithValue(ctx, sessionCookiesContextKey{}, cookies)
}

func sessionCookiesFromContext(ctx context.Context) []*http.Cookie {
	cookies, ok := ctx.Value(sessionCookiesContextKey{}).([]*http.Cookie)
	if !ok {
		return nil
	}
	return cookies
}
