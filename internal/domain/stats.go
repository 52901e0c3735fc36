package domain

import "time"

// Visit is one student page view recorded by the gateway.
type Visit struct {
	VisitID  string
	UserID   string
	CourseID string
	SeenAt   time.Time
}

// VisitStats is the gateway-local aggregation served under the stats
// resource alongside the upstream overview numbers.
type VisitStats struct {
	UniqueVisitors int64
	TotalVisits    int64
	Since          time.Time
}

// StatsOverview is the upstream-reported admin dashboard summary.
type StatsOverview struct {
	TotalCourses       int64
	TotalStudents      int64
	ActiveEnrollments  int64
	PendingEnrollments int64
}
