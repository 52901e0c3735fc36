package app

import (
	"context"

	"github.com/courselight/courselight/internal/domain"
)

type enrollmentDecider interface {
	ApproveEnrollment(ctx context.Context, enrollmentID string) (domain.Enrollment, error)
	RejectEnrollment(ctx context.Context, enrollmentID string) (domain.Enrollment, error)
	RevokeEnrollment(ctx context.Context, enrollmentID string) (domain.Enrollment, error)
}

type DecideEnrollment func(ctx context.Context, session domain.Session, enrollmentID string) (domain.Enrollment, error)

func BuildApproveEnrollment(enrollments enrollmentDecider) DecideEnrollment {
	return buildDecision(func(ctx context.Context, enrollmentID string) (domain.Enrollment, error) {
		return enrollments.ApproveEnrollment(ctx, enrollmentID)
	})
}

func BuildRejectEnrollment(enrollments enrollmentDecider) DecideEnrollment {
	return buildDecision(func(ctx context.Context, enrollmentID string) (domain.Enrollment, error) {
		return enrollments.RejectEnrollment(ctx, enrollmentID)
	})
}

func BuildRevokeEnrollment(enrollments enrollmentDecider) DecideEnrollment {
	return buildDecision(func(ctx context.Context, enrollmentID string) (domain.Enrollment, error) {
		return enrollments.RevokeEnrollment(ctx, enrollmentID)
	})
}

func buildDecision(decide func(ctx context.Context, enrollmentID string) (domain.Enrollment, error)) DecideEnrollment {
	return func(ctx context.Context, session domain.Session, enrollmentID string) (domain.Enrollment, error) {
		if err := requireRole(session, domain.RoleAdmin); err != nil {
			return domain.Enrollment{}, err
		}
		return decide(ctx, enrollmentID)
	}
}
