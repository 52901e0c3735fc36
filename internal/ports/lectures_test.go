package ports_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/courselight/courselight/internal/app"
	"github.com/courselight/courselight/internal/domain"
	"github.com/courselight/courselight/internal/ports"
	"github.com/stretchr/testify/require"
)

func TestMakeSaveLectureHandler(t *testing.T) {
	t.Parallel()

	allowedOrigins := testAllowedOrigins(t)

	makeHandler := func(saveLecture app.SaveLecture) http.HandlerFunc {
		return ports.MakeSaveLectureHandler(saveLecture, "add-lecture", allowedOrigins, testLogger, noopMiddleware)
	}

	makeRequest := func(courseID string, body string) *http.Request {
		req := httptest.NewRequest("POST", "/v1/courses/"+courseID+"/lectures", strings.NewReader(body))
		req.SetPathValue("courseId", courseID)
		req.Header.Set("X-User-Id", "emp1")
		req.Header.Set("X-User-Role", "employee")
		return req
	}

	t.Run("returns the saved lecture", func(t *testing.T) {
		t.Parallel()

		handler := makeHandler(func(ctx context.Context, session domain.Session, lecture domain.Lecture) (domain.Lecture, error) {
			require.Equal(t, "c1", lecture.CourseID)
			require.Equal(t, "Intro", lecture.Title)
			require.Equal(t, 90*time.Second, lecture.Duration)
			require.Equal(t, domain.RoleEmployee, session.Role)
			lecture.ID = "l1"
			return lecture, nil
		})

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, makeRequest("c1", `{"title":"Intro","position":1,"durationSeconds":90,"videoUrl":"https://cdn.example.com/intro.mp4"}`))

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool `json:"success"`
			Lecture struct {
				ID              string `json:"id"`
				CourseID        string `json:"courseId"`
				DurationSeconds int    `json:"durationSeconds"`
			} `json:"lecture"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.True(t, resp.Success)
		require.Equal(t, "l1", resp.Lecture.ID)
		require.Equal(t, "c1", resp.Lecture.CourseID)
		require.Equal(t, 90, resp.Lecture.DurationSeconds)
	})

	t.Run("path course id wins over the payload", func(t *testing.T) {
		t.Parallel()

		handler := makeHandler(func(ctx context.Context, session domain.Session, lecture domain.Lecture) (domain.Lecture, error) {
			require.Equal(t, "c1", lecture.CourseID)
			return lecture, nil
		})

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, makeRequest("c1", `{"title":"Intro","courseId":"other-course"}`))

		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects a lecture without a title", func(t *testing.T) {
		t.Parallel()

		called := false
		handler := makeHandler(func(ctx context.Context, session domain.Session, lecture domain.Lecture) (domain.Lecture, error) {
			called = true
			return lecture, nil
		})

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, makeRequest("c1", `{"position":1}`))

		require.Equal(t, http.StatusBadRequest, w.Code)
		require.False(t, called)
	})

	t.Run("rejects a lecture without a course", func(t *testing.T) {
		t.Parallel()

		handler := makeHandler(func(ctx context.Context, session domain.Session, lecture domain.Lecture) (domain.Lecture, error) {
			return lecture, nil
		})

		req := httptest.NewRequest("POST", "/v1/lectures", strings.NewReader(`{"title":"Intro"}`))
		req.Header.Set("X-User-Id", "emp1")
		req.Header.Set("X-User-Role", "employee")

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()

		handler := makeHandler(func(ctx context.Context, session domain.Session, lecture domain.Lecture) (domain.Lecture, error) {
			return lecture, nil
		})

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, makeRequest("c1", `{"title":`))

		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("access denied maps to 403", func(t *testing.T) {
		t.Parallel()

		handler := makeHandler(func(ctx context.Context, session domain.Session, lecture domain.Lecture) (domain.Lecture, error) {
			return domain.Lecture{}, domain.ErrAccessDenied
		})

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, makeRequest("c1", `{"title":"Intro"}`))

		require.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestMakeDeleteLectureHandler(t *testing.T) {
	t.Parallel()

	allowedOrigins := testAllowedOrigins(t)

	makeHandler := func(deleteLecture app.DeleteLecture) http.HandlerFunc {
		return ports.MakeDeleteLectureHandler(deleteLecture, allowedOrigins, testLogger, noopMiddleware)
	}

	makeRequest := func(courseID string, lectureID string) *http.Request {
		req := httptest.NewRequest("DELETE", "/v1/courses/"+courseID+"/lectures/"+lectureID, nil)
		req.SetPathValue("courseId", courseID)
		req.SetPathValue("id", lectureID)
		req.Header.Set("X-User-Id", "admin1")
		req.Header.Set("X-User-Role", "admin")
		return req
	}

	t.Run("deletes by course and lecture id", func(t *testing.T) {
		t.Parallel()

		handler := makeHandler(func(ctx context.Context, session domain.Session, courseID string, lectureID string) error {
			require.Equal(t, "c1", courseID)
			require.Equal(t, "l1", lectureID)
			return nil
		})

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, makeRequest("c1", "l1"))

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"success":true,"cause":""}`, w.Body.String())
	})

	t.Run("unknown course maps to 404", func(t *testing.T) {
		t.Parallel()

		handler := makeHandler(func(ctx context.Context, session domain.Session, courseID string, lectureID string) error {
			return domain.ErrCourseNotFound
		})

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, makeRequest("missing", "l1"))

		require.Equal(t, http.StatusNotFound, w.Code)
	})
}
