package ports

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/courselight/courselight/internal/app"
	"github.com/courselight/courselight/internal/domain"
)

type accessResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
}

type enrollmentResponse struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId"`
	CourseID  string    `json:"courseId"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type enrollmentListResponse struct {
	Success     bool                 `json:"success"`
	Enrollments []enrollmentResponse `json:"enrollments"`
}

type enrollmentDecisionResponse struct {
	Success    bool               `json:"success"`
	Enrollment enrollmentResponse `json:"enrollment"`
}

func enrollmentToResponse(enrollment domain.Enrollment) enrollmentResponse {
	return enrollmentResponse{
		ID:        enrollment.ID,
		StudentID: enrollment.StudentID,
		CourseID:  enrollment.CourseID,
		Status:    string(enrollment.Status),
		CreatedAt: enrollment.CreatedAt,
		UpdatedAt: enrollment.UpdatedAt,
	}
}

func MakeCheckAccessHandler(
	checkAccess app.CheckAccess,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := standardMiddleware("check-access", allowedOrigins, rootLogger, sentryMiddleware, rateLimits{
		ipRefillPerSecond:      8,
		ipBurstSize:            240,
		sessionRefillPerSecond: 4,
		sessionBurstSize:       120,
	})

	return middleware(func(w http.ResponseWriter, r *http.Request) {
		ctx, session := requestContext(r)
		courseID := r.PathValue("courseId")

		state, err := checkAccess(ctx, session, courseID)
		if err != nil {
			writeError(ctx, w, err)
			return
		}

		writeJSON(ctx, w, http.StatusOK, accessResponse{Success: true, Status: string(state)})
	})
}

func MakeEnrollFreeHandler(
	enrollFree app.EnrollFree,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := standardMiddleware("enroll-free", allowedOrigins, rootLogger, sentryMiddleware, rateLimits{
		ipRefillPerSecond:      2,
		ipBurstSize:            60,
		sessionRefillPerSecond: 1,
		sessionBurstSize:       20,
	})

	return middleware(func(w http.ResponseWriter, r *http.Request) {
		ctx, session := requestContext(r)
		courseID := r.PathValue("courseId")

		if err := enrollFree(ctx, session, courseID); err != nil {
			writeError(ctx, w, err)
			return
		}

		writeJSON(ctx, w, http.StatusOK, errorResponse{Success: true})
	})
}

func MakeRequestAccessHandler(
	requestAccess app.RequestAccess,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := standardMiddleware("request-access", allowedOrigins, rootLogger, sentryMiddleware, rateLimits{
		ipRefillPerSecond:      2,
		ipBurstSize:            60,
		sessionRefillPerSecond: 1,
		sessionBurstSize:       20,
	})

	return middleware(func(w http.ResponseWriter, r *http.Request) {
		ctx, session := requestContext(r)
		courseID := r.PathValue("courseId")

		if err := requestAccess(ctx, session, courseID); err != nil {
			writeError(ctx, w, err)
			return
		}

		writeJSON(ctx, w, http.StatusOK, errorResponse{Success: true})
	})
}

func MakeDecideEnrollmentHandler(
	decide app.DecideEnrollment,
	action string,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := standardMiddleware("enrollment-"+action, allowedOrigins, rootLogger, sentryMiddleware, rateLimits{
		ipRefillPerSecond:      2,
		ipBurstSize:            60,
		sessionRefillPerSecond: 2,
		sessionBurstSize:       60,
	})

	return middleware(func(w http.ResponseWriter, r *http.Request) {
		ctx, session := requestContext(r)
		enrollmentID := r.PathValue("id")

		enrollment, err := decide(ctx, session, enrollmentID)
		if err != nil {
			writeError(ctx, w, err)
			return
		}

		writeJSON(ctx, w, http.StatusOK, enrollmentDecisionResponse{
			Success:    true,
			Enrollment: enrollmentToResponse(enrollment),
		})
	})
}

// MakeGetPendingCountHandler serves the admin badge. The count is fed
// by the pending enrollment watcher, so this read never touches the
// upstream API.
func MakeGetPendingCountHandler(
	pendingCount func() int,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := standardMiddleware("pending-count", allowedOrigins, rootLogger, sentryMiddleware, rateLimits{
		ipRefillPerSecond:      8,
		ipBurstSize:            240,
		sessionRefillPerSecond: 4,
		sessionBurstSize:       120,
	})

	return middleware(func(w http.ResponseWriter, r *http.Request) {
		ctx, session := requestContext(r)

		if session.UserID == "" {
			writeError(ctx, w, domain.ErrNotAuthenticated)
			return
		}
		if session.Role != domain.RoleAdmin {
			writeError(ctx, w, domain.ErrAccessDenied)
			return
		}

		writeJSON(ctx, w, http.StatusOK, map[string]any{"success": true, "count": pendingCount()})
	})
}

func MakeGetEnrollmentsHandler(
	getEnrollments app.GetEnrollments,
	port string,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := standardMiddleware(port, allowedOrigins, rootLogger, sentryMiddleware, rateLimits{
		ipRefillPerSecond:      4,
		ipBurstSize:            120,
		sessionRefillPerSecond: 2,
		sessionBurstSize:       60,
	})

	return middleware(func(w http.ResponseWriter, r *http.Request) {
		ctx, session := requestContext(r)

		enrollments, err := getEnrollments(ctx, session)
		if err != nil {
			writeError(ctx, w, err)
			return
		}

		response := enrollmentListResponse{
			Success:     true,
			Enrollments: make([]enrollmentResponse, 0, len(enrollments)),
		}
		for _, enrollment := range enrollments {
			response.Enrollments = append(response.Enrollments, enrollmentToResponse(enrollment))
		}
		writeJSON(ctx, w, http.StatusOK, response)
	})
}
