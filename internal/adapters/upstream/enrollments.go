package upstream

import (
	"context"
	"fmt"

	"github.com/courselight/courselight/internal/access"
	"github.com/courselight/courselight/internal/cachestore"
	"github.com/courselight/courselight/internal/domain"
	"github.com/courselight/courselight/internal/resource"
)

func (c *Client) CheckAccess(ctx context.Context, userID string, courseID string) (domain.AccessState, error) {
	result, err := c.checkAccess.Get(ctx, checkAccessArgs{UserID: userID, CourseID: courseID})
	if err != nil {
		return domain.AccessNone, translateError(err)
	}

	// Unknown statuses map to none, never to active.
	return access.FromWireStatus(result.Status), nil
}

func (c *Client) EnrollFree(ctx context.Context, courseID string) error {
	_, err := c.enrollFree.Do(ctx, courseID)
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: %s", domain.ErrCourseNotFound, courseID)
		}
		return translateError(err)
	}
	return nil
}

func (c *Client) RequestAccess(ctx context.Context, courseID string) error {
	_, err := c.requestAccess.Do(ctx, courseID)
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: %s", domain.ErrCourseNotFound, courseID)
		}
		return translateError(err)
	}
	return nil
}

func (c *Client) ApproveEnrollment(ctx context.Context, enrollmentID string) (domain.Enrollment, error) {
	return c.decideEnrollment(ctx, c.approveEnrollment, enrollmentID)
}

func (c *Client) RejectEnrollment(ctx context.Context, enrollmentID string) (domain.Enrollment, error) {
	return c.decideEnrollment(ctx, c.rejectEnrollment, enrollmentID)
}

func (c *Client) RevokeEnrollment(ctx context.Context, enrollmentID string) (domain.Enrollment, error) {
	return c.decideEnrollment(ctx, c.revokeEnrollment, enrollmentID)
}

func (c *Client) decideEnrollment(
	ctx context.Context,
	decision *resource.Mutation[string, wireEnrollment],
	enrollmentID string,
) (domain.Enrollment, error) {
	result, err := decision.Do(ctx, enrollmentID)
	if err != nil {
		if isNotFound(err) {
			return domain.Enrollment{}, fmt.Errorf("%w: %s", domain.ErrEnrollmentNotFound, enrollmentID)
		}
		return domain.Enrollment{}, translateError(err)
	}

	enrollment, err := result.toDomain()
	if err != nil {
		return domain.Enrollment{}, fmt.Errorf("invalid enrollment in response: %w", err)
	}
	return enrollment, nil
}

func (c *Client) GetAllEnrollments(ctx context.Context) ([]domain.Enrollment, error) {
	return c.listEnrollments(ctx, c.allEnrollments)
}

func (c *Client) GetPendingEnrollments(ctx context.Context) ([]domain.Enrollment, error) {
	return c.listEnrollments(ctx, c.pendingEnrollments)
}

func (c *Client) listEnrollments(
	ctx context.Context,
	list *resource.Query[struct{}, []wireEnrollment],
) ([]domain.Enrollment, error) {
	wireEnrollments, err := list.Get(ctx, struct{}{})
	if err != nil {
		return nil, translateError(err)
	}

	enrollments := make([]domain.Enrollment, 0, len(wireEnrollments))
	for _, wireEnrollment := range wireEnrollments {
		enrollment, err := wireEnrollment.toDomain()
		if err != nil {
			return nil, fmt.Errorf("invalid enrollment in list: %w", err)
		}
		enrollments = append(enrollments, enrollment)
	}
	return enrollments, nil
}

func (c *Client) SubscribePendingEnrollments(
	ctx context.Context,
	onChange func(enrollments []domain.Enrollment, err error),
	options ...cachestore.SubscribeOption,
) (*cachestore.Subscription, error) {
	return c.pendingEnrollments.Subscribe(ctx, struct{}{}, func(snapshot cachestore.Snapshot) {
		switch snapshot.Status {
		case cachestore.StatusSuccess:
			wireEnrollments, ok := resource.Data[[]wireEnrollment](snapshot)
			if !ok {
				return
			}
			enrollments := make([]domain.Enrollment, 0, len(wireEnrollments))
			for _, wireEnrollment := range wireEnrollments {
				enrollment, err := wireEnrollment.toDomain()
				if err != nil {
					onChange(nil, fmt.Errorf("invalid enrollment in list: %w", err))
					return
				}
				enrollments = append(enrollments, enrollment)
			}
			onChange(enrollments, nil)
		case cachestore.StatusError:
			onChange(nil, translateError(snapshot.Err))
		}
	}, options...)
}
