package app

import (
	"context"

	"github.com/courselight/courselight/internal/domain"
)

type enroller interface {
	EnrollFree(ctx context.Context, courseID string) error
	RequestAccess(ctx context.Context, courseID string) error
}

type EnrollFree func(ctx context.Context, session domain.Session, courseID string) error
type RequestAccess func(ctx context.Context, session domain.Session, courseID string) error

func BuildEnrollFree(enrollments enroller) EnrollFree {
	return func(ctx context.Context, session domain.Session, courseID string) error {
		if !session.Authenticated() {
			return domain.ErrNotAuthenticated
		}
		return enrollments.EnrollFree(ctx, courseID)
	}
}

func BuildRequestAccess(enrollments enroller) RequestAccess {
	return func(ctx context.Context, session domain.Session, courseID string) error {
		if !session.Authenticated() {
			return domain.ErrNotAuthenticated
		}
		return enrollments.RequestAccess(ctx, courseID)
	}
}
