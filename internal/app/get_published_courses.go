package app

import (
	"context"

	"github.com/courselight/courselight/internal/domain"
)

type publishedCourseLister interface {
	GetPublishedCourses(ctx context.Context) ([]domain.Course, error)
}

type GetPublishedCourses func(ctx context.Context) ([]domain.Course, error)

func BuildGetPublishedCourses(courses publishedCourseLister) GetPublishedCourses {
	return func(ctx context.Context) ([]domain.Course, error) {
		return courses.GetPublishedCourses(ctx)
	}
}
