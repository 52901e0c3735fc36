package ports

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/courselight/courselight/internal/app"
	"github.com/courselight/courselight/internal/domain"
)

type userPayload struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func userToPayload(user domain.User) userPayload {
	return userPayload{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

func userRateLimits() rateLimits {
	return rateLimits{
		ipRefillPerSecond:      4,
		ipBurstSize:            120,
		sessionRefillPerSecond: 2,
		sessionBurstSize:       60,
	}
}

func MakeGetUsersHandler(
	getUsers app.GetUsers,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := standardMiddleware("users", allowedOrigins, rootLogger, sentryMiddleware, userRateLimits())

	return middleware(func(w http.ResponseWriter, r *http.Request) {
		ctx, session := requestContext(r)

		users, err := getUsers(ctx, session)
		if err != nil {
			writeError(ctx, w, err)
			return
		}

		payloads := make([]userPayload, 0, len(users))
		for _, user := range users {
			payloads = append(payloads, userToPayload(user))
		}
		writeJSON(ctx, w, http.StatusOK, map[string]any{"success": true, "users": payloads})
	})
}

func MakeUpdateUserRoleHandler(
	updateUserRole app.UpdateUserRole,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := standardMiddleware("update-user-role", allowedOrigins, rootLogger, sentryMiddleware, userRateLimits())

	return middleware(func(w http.ResponseWriter, r *http.Request) {
		ctx, session := requestContext(r)

		var payload struct {
			Role string `json:"role"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(ctx, w, http.StatusBadRequest, errorResponse{Success: false, Cause: "invalid request body"})
			return
		}

		var role domain.UserRole
		switch payload.Role {
		case "student":
			role = domain.RoleStudent
		case "employee":
			role = domain.RoleEmployee
		case "admin":
			role = domain.RoleAdmin
		default:
			writeJSON(ctx, w, http.StatusBadRequest, errorResponse{Success: false, Cause: "unknown role"})
			return
		}

		user, err := updateUserRole(ctx, session, r.PathValue("id"), role)
		if err != nil {
			writeError(ctx, w, err)
			return
		}

		writeJSON(ctx, w, http.StatusOK, map[string]any{"success": true, "user": userToPayload(user)})
	})
}

func MakeDeleteUserHandler(
	deleteUser app.DeleteUser,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := standardMiddleware("delete-user", allowedOrigins, rootLogger, sentryMiddleware, userRateLimits())

	return middleware(func(w http.ResponseWriter, r *http.Request) {
		ctx, session := requestContext(r)

		if err := deleteUser(ctx, session, r.PathValue("id")); err != nil {
			writeError(ctx, w, err)
			return
		}
		writeJSON(ctx, w, http.StatusOK, errorResponse{Success: true})
	})
}
