package domain

import "errors"

var (
	ErrCourseNotFound         = errors.New("course not found")
	ErrEnrollmentNotFound     = errors.New("enrollment not found")
	ErrNotAuthenticated       = errors.New("not authenticated")
	ErrAccessDenied           = errors.New("access denied")
	ErrTemporarilyUnavailable = errors.New("temporarily unavailable")
)
