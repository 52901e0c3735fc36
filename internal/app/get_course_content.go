package app

import (
	"context"

	"github.com/courselight/courselight/internal/access"
	"github.com/courselight/courselight/internal/domain"
	"github.com/courselight/courselight/internal/logging"
	"github.com/courselight/courselight/internal/reporting"
)

type courseContentGetter interface {
	GetCourseContent(ctx context.Context, courseID string) (domain.CourseContent, error)
}

type GetCourseContent func(ctx context.Context, session domain.Session, courseID string) (domain.CourseContent, error)

// BuildGetCourseContent returns course content with lectures gated for
// the given caller. When the access check fails the caller is treated
// as having no access: lectures beyond the free preview stay locked.
func BuildGetCourseContent(
	courses courseContentGetter,
	checkAccess CheckAccess,
) GetCourseContent {
	return func(ctx context.Context, session domain.Session, courseID string) (domain.CourseContent, error) {
		content, err := courses.GetCourseContent(ctx, courseID)
		if err != nil {
			return domain.CourseContent{}, err
		}

		state, err := checkAccess(ctx, session, courseID)
		if err != nil {
			// Fail closed, but still serve the previewable part
			logging.FromContext(ctx).WarnContext(ctx, "Access check failed, serving locked content", "error", err.Error())
			reporting.Report(ctx, err, map[string]string{
				"courseId": courseID,
			})
			state = domain.AccessNone
		}

		lectures := make([]domain.Lecture, 0, len(content.Lectures))
		for _, gated := range content.Lectures {
			lectures = append(lectures, gated.Lecture)
		}
		content.Lectures = access.GateLectures(lectures, state, content.Course.FreePreviewCount)

		return content, nil
	}
}
