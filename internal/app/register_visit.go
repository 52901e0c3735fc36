package app

import (
	"context"
	"time"

	"github.com/courselight/courselight/internal/domain"
)

type visitStore interface {
	StoreVisit(ctx context.Context, visit domain.Visit) error
}

type RegisterVisit func(ctx context.Context, session domain.Session, courseID string) error

// BuildRegisterVisit records a page view for an authenticated caller.
// Anonymous visits are dropped, not errors.
func BuildRegisterVisit(visits visitStore, nowFunc func() time.Time) RegisterVisit {
	return func(ctx context.Context, session domain.Session, courseID string) error {
		if !session.Authenticated() {
			return nil
		}
		return visits.StoreVisit(ctx, domain.Visit{
			UserID:   session.UserID,
			CourseID: courseID,
			SeenAt:   nowFunc(),
		})
	}
}
