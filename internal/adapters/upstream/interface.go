package upstream

import (
	"context"

	"github.com/courselight/courselight/internal/cachestore"
	"github.com/courselight/courselight/internal/domain"
)

type CourseProvider interface {
	GetPublishedCourses(ctx context.Context) ([]domain.Course, error)

	// Raises domain.ErrCourseNotFound if the course does not exist
	//
	// Raises domain.ErrTemporarilyUnavailable if the upstream API receives an error believed to be intermittent. The call may be retried later.
	GetCourseContent(ctx context.Context, courseID string) (domain.CourseContent, error)

	AddLecture(ctx context.Context, lecture domain.Lecture) (domain.Lecture, error)
	UpdateLecture(ctx context.Context, lecture domain.Lecture) (domain.Lecture, error)
	DeleteLecture(ctx context.Context, courseID string, lectureID string) error
}

type EnrollmentProvider interface {
	// CheckAccess reports the caller's access to the course. The caller is
	// identified by the session cookies carried on the context.
	CheckAccess(ctx context.Context, userID string, courseID string) (domain.AccessState, error)

	EnrollFree(ctx context.Context, courseID string) error
	RequestAccess(ctx context.Context, courseID string) error

	// Raises domain.ErrEnrollmentNotFound if the enrollment does not exist
	ApproveEnrollment(ctx context.Context, enrollmentID string) (domain.Enrollment, error)
	// Raises domain.ErrEnrollmentNotFound if the enrollment does not exist
	RejectEnrollment(ctx context.Context, enrollmentID string) (domain.Enrollment, error)
	// Raises domain.ErrEnrollmentNotFound if the enrollment does not exist
	RevokeEnrollment(ctx context.Context, enrollmentID string) (domain.Enrollment, error)

	GetAllEnrollments(ctx context.Context) ([]domain.Enrollment, error)
	GetPendingEnrollments(ctx context.Context) ([]domain.Enrollment, error)

	// SubscribePendingEnrollments keeps the pending list fresh on a fixed
	// cadence in addition to tag-based invalidation. Loading states are
	// not delivered; consumers keep showing the previous value.
	SubscribePendingEnrollments(
		ctx context.Context,
		onChange func(enrollments []domain.Enrollment, err error),
		options ...cachestore.SubscribeOption,
	) (*cachestore.Subscription, error)
}

type ContentProvider interface {
	GetArticles(ctx context.Context) ([]domain.Article, error)
	CreateArticle(ctx context.Context, article domain.Article) (domain.Article, error)
	UpdateArticle(ctx context.Context, article domain.Article) (domain.Article, error)
	DeleteArticle(ctx context.Context, articleID string) error

	GetPlacements(ctx context.Context) ([]domain.Placement, error)
	CreatePlacement(ctx context.Context, placement domain.Placement) (domain.Placement, error)
	DeletePlacement(ctx context.Context, placementID string) error

	GetContacts(ctx context.Context) ([]domain.Contact, error)
	DeleteContact(ctx context.Context, contactID string) error

	CreateEnquiry(ctx context.Context, enquiry domain.Enquiry) (domain.Enquiry, error)
}

type UserProvider interface {
	GetUsers(ctx context.Context) ([]domain.User, error)
	UpdateUserRole(ctx context.Context, userID string, role domain.UserRole) (domain.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

type StatsProvider interface {
	GetOverview(ctx context.Context) (domain.StatsOverview, error)
}
