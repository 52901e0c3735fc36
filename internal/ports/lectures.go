package ports

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/courselight/courselight/internal/app"
	"github.com/courselight/courselight/internal/domain"
)

type lecturePayload struct {
	ID              string `json:"id,omitempty"`
	CourseID        string `json:"courseId"`
	Title           string `json:"title"`
	Position        int    `json:"position"`
	DurationSeconds int    `json:"durationSeconds"`
	VideoURL        string `json:"videoUrl"`
}

func lectureRateLimits() rateLimits {
	return rateLimits{
		ipRefillPerSecond:      2,
		ipBurstSize:            60,
		sessionRefillPerSecond: 2,
		sessionBurstSize:       60,
	}
}

func lectureFromPayload(payload lecturePayload) domain.Lecture {
	return domain.Lecture{
		ID:       payload.ID,
		CourseID: payload.CourseID,
		Title:    payload.Title,
		Position: payload.Position,
		Duration: time.Duration(payload.DurationSeconds) * time.Second,
		VideoURL: payload.VideoURL,
	}
}

func lectureToPayload(lecture domain.Lecture) lecturePayload {
	return lecturePayload{
		ID:              lecture.ID,
		CourseID:        lecture.CourseID,
		Title:           lecture.Title,
		Position:        lecture.Position,
		DurationSeconds: int(lecture.Duration / time.Second),
		VideoURL:        lecture.VideoURL,
	}
}

func MakeSaveLectureHandler(
	saveLecture app.SaveLecture,
	port string,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := standardMiddleware(port, allowedOrigins, rootLogger, sentryMiddleware, lectureRateLimits())

	return middleware(func(w http.ResponseWriter, r *http.Request) {
		ctx, session := requestContext(r)

		var payload lecturePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(ctx, w, http.StatusBadRequest, errorResponse{Success: false, Cause: "invalid request body"})
			return
		}
		if payload.Title == "" {
			writeJSON(ctx, w, http.StatusBadRequest, errorResponse{Success: false, Cause: "title is required"})
			return
		}

		if courseID := r.PathValue("courseId"); courseID != "" {
			payload.CourseID = courseID
		}
		if id := r.PathValue("id"); id != "" {
			payload.ID = id
		}
		if payload.CourseID == "" {
			writeJSON(ctx, w, http.StatusBadRequest, errorResponse{Success: false, Cause: "courseId is required"})
			return
		}

		lecture, err := saveLecture(ctx, session, lectureFromPayload(payload))
		if err != nil {
			writeError(ctx, w, err)
			return
		}

		writeJSON(ctx, w, http.StatusOK, map[string]any{"success": true, "lecture": lectureToPayload(lecture)})
	})
}

func MakeDeleteLectureHandler(
	deleteLecture app.DeleteLecture,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := standardMiddleware("delete-lecture", allowedOrigins, rootLogger, sentryMiddleware, lectureRateLimits())

	return middleware(func(w http.ResponseWriter, r *http.Request) {
		ctx, session := requestContext(r)

		if err := deleteLecture(ctx, session, r.PathValue("courseId"), r.PathValue("id")); err != nil {
			writeError(ctx, w, err)
			return
		}
		writeJSON(ctx, w, http.StatusOK, errorResponse{Success: true})
	})
}
