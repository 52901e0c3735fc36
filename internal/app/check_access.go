package app

import (
	"context"

	"github.com/courselight/courselight/internal/domain"
)

type accessChecker interface {
	CheckAccess(ctx context.Context, userID string, courseID string) (domain.AccessState, error)
}

type CheckAccess func(ctx context.Context, session domain.Session, courseID string) (domain.AccessState, error)

// BuildCheckAccess resolves the caller's access to a course.
// Unauthenticated callers are always none; upstream is not consulted.
func BuildCheckAccess(enrollments accessChecker) CheckAccess {
	return func(ctx context.Context, session domain.Session, courseID string) (domain.AccessState, error) {
		if !session.Authenticated() {
			return domain.AccessNone, nil
		}
		return enrollments.CheckAccess(ctx, session.UserID, courseID)
	}
}
