package ports_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/courselight/courselight/internal/app"
	"github.com/courselight/courselight/internal/domain"
	"github.com/courselight/courselight/internal/ports"
	"github.com/stretchr/testify/require"
)

func TestMakeCheckAccessHandler(t *testing.T) {
	t.Parallel()

	allowedOrigins := testAllowedOrigins(t)

	makeHandler := func(checkAccess app.CheckAccess) http.HandlerFunc {
		return ports.MakeCheckAccessHandler(checkAccess, allowedOrigins, testLogger, noopMiddleware)
	}

	makeRequest := func(courseID string, userID string, role string) *http.Request {
		req := httptest.NewRequest("GET", "/v1/courses/"+courseID+"/access", nil)
		req.SetPathValue("courseId", courseID)
		if userID != "" {
			req.Header.Set("X-User-Id", userID)
		}
		if role != "" {
			req.Header.Set("X-User-Role", role)
		}
		return req
	}

	t.Run("reports access state", func(t *testing.T) {
		t.Parallel()

		handler := makeHandler(func(ctx context.Context, session domain.Session, courseID string) (domain.AccessState, error) {
			require.Equal(t, "c1", courseID)
			require.Equal(t, "user1", session.UserID)
			require.Equal(t, domain.RoleStudent, session.Role)
			return domain.AccessActive, nil
		})

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, makeRequest("c1", "user1", ""))

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"success":true,"status":"active"}`, w.Body.String())
	})

	t.Run("anonymous callers get none", func(t *testing.T) {
		t.Parallel()

		handler := makeHandler(func(ctx context.Context, session domain.Session, courseID string) (domain.AccessState, error) {
			require.False(t, session.Authenticated())
			return domain.AccessNone, nil
		})

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, makeRequest("c1", "", ""))

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"success":true,"status":"none"}`, w.Body.String())
	})
}

func TestMakeDecideEnrollmentHandler(t *testing.T) {
	t.Parallel()

	allowedOrigins := testAllowedOrigins(t)

	makeHandler := func(decide app.DecideEnrollment) http.HandlerFunc {
		return ports.MakeDecideEnrollmentHandler(decide, "approve", allowedOrigins, testLogger, noopMiddleware)
	}

	makeRequest := func(enrollmentID string, role string) *http.Request {
		req := httptest.NewRequest("POST", "/v1/enrollments/"+enrollmentID+"/approve", nil)
		req.SetPathValue("id", enrollmentID)
		req.Header.Set("X-User-Id", "admin1")
		req.Header.Set("X-User-Role", role)
		return req
	}

	t.Run("returns the updated enrollment", func(t *testing.T) {
		t.Parallel()

		handler := makeHandler(func(ctx context.Context, session domain.Session, enrollmentID string) (domain.Enrollment, error) {
			require.Equal(t, "e1", enrollmentID)
			require.Equal(t, domain.RoleAdmin, session.Role)
			return domain.Enrollment{
				ID:        "e1",
				StudentID: "user1",
				CourseID:  "c1",
				Status:    domain.EnrollmentStatusActive,
			}, nil
		})

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, makeRequest("e1", "admin"))

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success    bool `json:"success"`
			Enrollment struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"enrollment"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.True(t, resp.Success)
		require.Equal(t, "e1", resp.Enrollment.ID)
		require.Equal(t, "active", resp.Enrollment.Status)
	})

	t.Run("access denied maps to 403", func(t *testing.T) {
		t.Parallel()

		handler := makeHandler(func(ctx context.Context, session domain.Session, enrollmentID string) (domain.Enrollment, error) {
			return domain.Enrollment{}, domain.ErrAccessDenied
		})

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, makeRequest("e1", "student"))

		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unknown enrollment maps to 404", func(t *testing.T) {
		t.Parallel()

		handler := makeHandler(func(ctx context.Context, session domain.Session, enrollmentID string) (domain.Enrollment, error) {
			return domain.Enrollment{}, domain.ErrEnrollmentNotFound
		})

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, makeRequest("missing", "admin"))

		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMakeGetPendingCountHandler(t *testing.T) {
	t.Parallel()

	allowedOrigins := testAllowedOrigins(t)

	handler := ports.MakeGetPendingCountHandler(
		func() int { return 3 },
		allowedOrigins,
		testLogger,
		noopMiddleware,
	)

	makeRequest := func(userID string, role string) *http.Request {
		req := httptest.NewRequest("GET", "/v1/enrollments/pending/count", nil)
		if userID != "" {
			req.Header.Set("X-User-Id", userID)
		}
		if role != "" {
			req.Header.Set("X-User-Role", role)
		}
		return req
	}

	t.Run("admin sees the count", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, makeRequest("admin1", "admin"))

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"success":true,"count":3}`, w.Body.String())
	})

	t.Run("anonymous callers are rejected", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, makeRequest("", ""))

		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("students are rejected", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, makeRequest("user1", "student"))

		require.Equal(t, http.StatusForbidden, w.Code)
	})
}
