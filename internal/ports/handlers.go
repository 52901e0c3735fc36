package ports

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/courselight/courselight/internal/domain"
	"github.com/courselight/courselight/internal/logging"
	"github.com/courselight/courselight/internal/ratelimiting"
	"github.com/courselight/courselight/internal/reporting"
	"github.com/courselight/courselight/internal/resource"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Cause   string `json:"cause"`
}

// sessionFromRequest trusts the identity headers set by the auth proxy
// in front of the gateway. The session cookie itself is only forwarded
// upstream, never decoded here.
func sessionFromRequest(r *http.Request) domain.Session {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		return domain.Session{}
	}

	role := domain.RoleStudent
	switch r.Header.Get("X-User-Role") {
	case "admin":
		role = domain.RoleAdmin
	case "employee":
		role = domain.RoleEmployee
	}

	return domain.Session{UserID: userID, Role: role}
}

func requestContext(r *http.Request) (context.Context, domain.Session) {
	session := sessionFromRequest(r)

	ctx := r.Context()
	ctx = reporting.SetUserIDInContext(ctx, session.UserID)

	userID := session.UserID
	if userID == "" {
		userID = "<missing>"
	}
	ctx = logging.AddMetaToContext(ctx,
		slog.String("userId", userID),
		slog.String("role", string(session.Role)),
	)

	// Upstream sees the same session the caller presented
	ctx = resource.WithSessionCookies(ctx, r.Cookies())

	return ctx, session
}

func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		reporting.Report(ctx, err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"cause":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(data)
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	logger := logging.FromContext(ctx)

	statusCode := http.StatusInternalServerError
	cause := "internal server error"

	var httpError *resource.HTTPError

	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		statusCode = http.StatusUnauthorized
		cause = "not authenticated"
	case errors.Is(err, domain.ErrAccessDenied):
		statusCode = http.StatusForbidden
		cause = "access denied"
	case errors.Is(err, domain.ErrCourseNotFound):
		statusCode = http.StatusNotFound
		cause = "course not found"
	case errors.Is(err, domain.ErrEnrollmentNotFound):
		statusCode = http.StatusNotFound
		cause = "enrollment not found"
	case errors.Is(err, domain.ErrTemporarilyUnavailable):
		statusCode = http.StatusServiceUnavailable
		cause = "temporarily unavailable, try again later"
	case errors.As(err, &httpError):
		// Upstream application errors pass through with their message
		statusCode = httpError.StatusCode
		cause = httpError.Message
		if cause == "" {
			cause = "upstream error"
		}
	default:
		reporting.Report(ctx, err)
	}

	logger.InfoContext(ctx, "Request failed", "statusCode", statusCode, "error", err.Error())
	writeJSON(ctx, w, statusCode, errorResponse{Success: false, Cause: cause})
}

type rateLimits struct {
	ipRefillPerSecond      ratelimiting.RefillPerSecond
	ipBurstSize            ratelimiting.BurstSize
	sessionRefillPerSecond ratelimiting.RefillPerSecond
	sessionBurstSize       ratelimiting.BurstSize
}

func standardMiddleware(
	port string,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
	limits rateLimits,
) func(http.HandlerFunc) http.HandlerFunc {
	ipLimiter, _ := ratelimiting.NewTokenBucketRateLimiter(limits.ipRefillPerSecond, limits.ipBurstSize)
	ipRateLimiter := ratelimiting.NewRequestBasedRateLimiter(ipLimiter, ratelimiting.IPKeyFunc)

	sessionLimiter, _ := ratelimiting.NewTokenBucketRateLimiter(limits.sessionRefillPerSecond, limits.sessionBurstSize)
	// NOTE: Rate limiting based on user controlled value
	sessionRateLimiter := ratelimiting.NewRequestBasedRateLimiter(sessionLimiter, ratelimiting.SessionKeyFunc)

	makeOnLimitExceeded := func(rateLimiter ratelimiting.RequestRateLimiter) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			logger := logging.FromContext(ctx)

			statusCode := http.StatusTooManyRequests

			logger.Info("Rate limit exceeded", "statusCode", statusCode, "key", rateLimiter.KeyFor(r))

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(statusCode)
			w.Write([]byte(`{"success":false,"cause":"rate limit exceeded"}`))
		}
	}

	return ComposeMiddlewares(
		buildMetricsMiddleware(),
		logging.NewRequestLoggerMiddleware(rootLogger),
		sentryMiddleware,
		reporting.NewAddMetaMiddleware(port),
		BuildCORSMiddleware(allowedOrigins),
		NewRateLimitMiddleware(ipRateLimiter, makeOnLimitExceeded(ipRateLimiter)),
		NewRateLimitMiddleware(sessionRateLimiter, makeOnLimitExceeded(sessionRateLimiter)),
	)
}
