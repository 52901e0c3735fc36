package domain

import "time"

// AccessState describes a student's current relationship to a course.
// It is always derived from fetched records and never stored.
type AccessState string

const (
	AccessNone    AccessState = "none"
	AccessPending AccessState = "pending"
	AccessActive  AccessState = "active"
)

type EnrollmentStatus string

const (
	EnrollmentStatusActive   EnrollmentStatus = "active"
	EnrollmentStatusPending  EnrollmentStatus = "pending"
	EnrollmentStatusRejected EnrollmentStatus = "rejected"
	EnrollmentStatusRevoked  EnrollmentStatus = "revoked"
)

type Enrollment struct {
	ID        string
	StudentID string
	CourseID  string
	Status    EnrollmentStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
