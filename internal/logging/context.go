package logging

import (
	"context"
	"log/slog"
	"os"
)

type contextLoggerKey struct{}

// FromContext returns the request-scoped logger. Code running outside a
// request (startup, the pending-enrollment watcher) gets a plain JSON
// logger marked as the fallback rather than nothing.
func FromContext(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(contextLoggerKey{}).(*slog.Logger)
	if !ok || logger == nil {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("logger", "fallback"))
	}
	return logger
}

func AddToContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextLoggerKey{}, logger)
}

// AddMetaToContext rebinds the context logger with extra attributes, so
// everything logged later in the request carries them.
func AddMetaToContext(ctx context.Context, attrs ...slog.Attr) context.Context {
	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		args = append(args, attr)
	}

	return AddToContext(ctx, FromContext(ctx).With(args...))
}
