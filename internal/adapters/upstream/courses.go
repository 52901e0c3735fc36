package upstream

import (
	"context"
	"fmt"

	"github.com/courselight/courselight/internal/domain"
)

func (c *Client) GetPublishedCourses(ctx context.Context) ([]domain.Course, error) {
	wireCourses, err := c.publishedCourses.Get(ctx, struct{}{})
	if err != nil {
		return nil, translateError(err)
	}

	courses := make([]domain.Course, 0, len(wireCourses))
	for _, wireCourse := range wireCourses {
		course, err := wireCourse.toDomain()
		if err != nil {
			return nil, fmt.Errorf("invalid course in published list: %w", err)
		}
		courses = append(courses, course)
	}
	return courses, nil
}

func (c *Client) GetCourseContent(ctx context.Context, courseID string) (domain.CourseContent, error) {
	wireContent, err := c.courseContent.Get(ctx, courseID)
	if err != nil {
		if isNotFound(err) {
			return domain.CourseContent{}, fmt.Errorf("%w: %s", domain.ErrCourseNotFound, courseID)
		}
		return domain.CourseContent{}, translateError(err)
	}

	course, err := wireContent.Course.toDomain()
	if err != nil {
		return domain.CourseContent{}, fmt.Errorf("invalid course %s: %w", courseID, err)
	}

	// Lectures are returned ungated here. Gating is applied per caller
	// once the caller's access state is known.
	lectures := make([]domain.GatedLecture, 0, len(wireContent.Lectures))
	for _, wireLecture := range wireContent.Lectures {
		lecture, err := wireLecture.toDomain()
		if err != nil {
			return domain.CourseContent{}, fmt.Errorf("invalid lecture in course %s: %w", courseID, err)
		}
		lectures = append(lectures, domain.GatedLecture{Lecture: lecture})
	}

	return domain.CourseContent{
		Course:   course,
		Lectures: lectures,
	}, nil
}

func (c *Client) AddLecture(ctx context.Context, lecture domain.Lecture) (domain.Lecture, error) {
	result, err := c.addLecture.Do(ctx, lectureToWire(lecture))
	if err != nil {
		return domain.Lecture{}, translateError(err)
	}
	created, err := result.toDomain()
	if err != nil {
		return domain.Lecture{}, fmt.Errorf("invalid lecture in response: %w", err)
	}
	return created, nil
}

func (c *Client) UpdateLecture(ctx context.Context, lecture domain.Lecture) (domain.Lecture, error) {
	result, err := c.updateLecture.Do(ctx, lectureToWire(lecture))
	if err != nil {
		if isNotFound(err) {
			return domain.Lecture{}, fmt.Errorf("%w: lecture %s", domain.ErrCourseNotFound, lecture.ID)
		}
		return domain.Lecture{}, translateError(err)
	}
	updated, err := result.toDomain()
	if err != nil {
		return domain.Lecture{}, fmt.Errorf("invalid lecture in response: %w", err)
	}
	return updated, nil
}

func (c *Client) DeleteLecture(ctx context.Context, courseID string, lectureID string) error {
	_, err := c.deleteLecture.Do(ctx, deleteLectureArgs{CourseID: courseID, LectureID: lectureID})
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: lecture %s", domain.ErrCourseNotFound, lectureID)
		}
		return translateError(err)
	}
	return nil
}
