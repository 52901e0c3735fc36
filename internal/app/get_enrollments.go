package app

import (
	"context"

	"github.com/courselight/courselight/internal/domain"
)

type enrollmentLister interface {
	GetAllEnrollments(ctx context.Context) ([]domain.Enrollment, error)
	GetPendingEnrollments(ctx context.Context) ([]domain.Enrollment, error)
}

type GetEnrollments func(ctx context.Context, session domain.Session) ([]domain.Enrollment, error)

func BuildGetAllEnrollments(enrollments enrollmentLister) GetEnrollments {
	return func(ctx context.Context, session domain.Session) ([]domain.Enrollment, error) {
		if err := requireRole(session, domain.RoleAdmin); err != nil {
			return nil, err
		}
		return enrollments.GetAllEnrollments(ctx)
	}
}

func BuildGetPendingEnrollments(enrollments enrollmentLister) GetEnrollments {
	return func(ctx context.Context, session domain.Session) ([]domain.Enrollment, error) {
		if err := requireRole(session, domain.RoleAdmin); err != nil {
			return nil, err
		}
		return enrollments.GetPendingEnrollments(ctx)
	}
}
