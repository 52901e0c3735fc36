package ports

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/courselight/courselight/internal/app"
	"github.com/courselight/courselight/internal/domain"
	"github.com/courselight/courselight/internal/logging"
	"github.com/courselight/courselight/internal/reporting"
)

type courseResponse struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	Description      string    `json:"description"`
	CourseType       string    `json:"courseType"`
	FreePreviewCount int       `json:"freePreviewCount"`
	CreatedAt        time.Time `json:"createdAt"`
}

type lectureResponse struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Position        int    `json:"position"`
	DurationSeconds int    `json:"durationSeconds"`
	VideoURL        string `json:"videoUrl,omitempty"`
	Locked          bool   `json:"locked"`
}

type courseListResponse struct {
	Success bool             `json:"success"`
	Courses []courseResponse `json:"courses"`
}

type courseContentResponse struct {
	Success  bool              `json:"success"`
	Course   courseResponse    `json:"course"`
	Lectures []lectureResponse `json:"lectures"`
}

func courseToResponse(course domain.Course) courseResponse {
	return courseResponse{
		ID:               course.ID,
		Title:            course.Title,
		Slug:             course.Slug,
		Description:      course.Description,
		CourseType:       string(course.CourseType),
		FreePreviewCount: course.FreePreviewCount,
		CreatedAt:        course.CreatedAt,
	}
}

func MakeGetPublishedCoursesHandler(
	getPublishedCourses app.GetPublishedCourses,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := standardMiddleware("courses", allowedOrigins, rootLogger, sentryMiddleware, rateLimits{
		ipRefillPerSecond:      8,
		ipBurstSize:            480,
		sessionRefillPerSecond: 4,
		sessionBurstSize:       240,
	})

	return middleware(func(w http.ResponseWriter, r *http.Request) {
		ctx, _ := requestContext(r)

		courses, err := getPublishedCourses(ctx)
		if err != nil {
			writeError(ctx, w, err)
			return
		}

		response := courseListResponse{Success: true, Courses: make([]courseResponse, 0, len(courses))}
		for _, course := range courses {
			response.Courses = append(response.Courses, courseToResponse(course))
		}
		writeJSON(ctx, w, http.StatusOK, response)
	})
}

func MakeGetCourseContentHandler(
	getCourseContent app.GetCourseContent,
	registerVisit app.RegisterVisit,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := standardMiddleware("course-content", allowedOrigins, rootLogger, sentryMiddleware, rateLimits{
		ipRefillPerSecond:      8,
		ipBurstSize:            240,
		sessionRefillPerSecond: 4,
		sessionBurstSize:       120,
	})

	return middleware(func(w http.ResponseWriter, r *http.Request) {
		ctx, session := requestContext(r)
		courseID := r.PathValue("courseId")

		content, err := getCourseContent(ctx, session, courseID)
		if err != nil {
			writeError(ctx, w, err)
			return
		}

		// A failed visit write must not fail the read
		if err := registerVisit(ctx, session, courseID); err != nil {
			logging.FromContext(ctx).WarnContext(ctx, "Failed to register visit", "error", err.Error())
			reporting.Report(ctx, err)
		}

		response := courseContentResponse{
			Success:  true,
			Course:   courseToResponse(content.Course),
			Lectures: make([]lectureResponse, 0, len(content.Lectures)),
		}
		for _, gated := range content.Lectures {
			response.Lectures = append(response.Lectures, lectureResponse{
				ID:              gated.Lecture.ID,
				Title:           gated.Lecture.Title,
				Position:        gated.Lecture.Position,
				DurationSeconds: int(gated.Lecture.Duration / time.Second),
				VideoURL:        gated.Lecture.VideoURL,
				Locked:          gated.Locked,
			})
		}
		writeJSON(ctx, w, http.StatusOK, response)
	})
}
