package ports

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/courselight/courselight/internal/app"
)

type statsOverviewResponse struct {
	Success            bool      `json:"success"`
	TotalCourses       int64     `json:"totalCourses"`
	TotalStudents      int64     `json:"totalStudents"`
	ActiveEnrollments  int64     `json:"activeEnrollments"`
	PendingEnrollments int64     `json:"pendingEnrollments"`
	UniqueVisitors     int64     `json:"uniqueVisitors"`
	TotalVisits        int64     `json:"totalVisits"`
	VisitsSince        time.Time `json:"visitsSince"`
}

func MakeGetStatsOverviewHandler(
	getStatsOverview app.GetStatsOverview,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := standardMiddleware("stats-overview", allowedOrigins, rootLogger, sentryMiddleware, rateLimits{
		ipRefillPerSecond:      2,
		ipBurstSize:            60,
		sessionRefillPerSecond: 1,
		sessionBurstSize:       30,
	})

	return middleware(func(w http.ResponseWriter, r *http.Request) {
		ctx, session := requestContext(r)

		summary, err := getStatsOverview(ctx, session)
		if err != nil {
			writeError(ctx, w, err)
			return
		}

		writeJSON(ctx, w, http.StatusOK, statsOverviewResponse{
			Success:            true,
			TotalCourses:       summary.Overview.TotalCourses,
			TotalStudents:      summary.Overview.TotalStudents,
			ActiveEnrollments:  summary.Overview.ActiveEnrollments,
			PendingEnrollments: summary.Overview.PendingEnrollments,
			UniqueVisitors:     summary.Visits.UniqueVisitors,
			TotalVisits:        summary.Visits.TotalVisits,
			VisitsSince:        summary.Visits.Since,
		})
	})
}
