package app

import (
	"context"

	"github.com/courselight/courselight/internal/domain"
)

type lectureManager interface {
	AddLecture(ctx context.Context, lecture domain.Lecture) (domain.Lecture, error)
	UpdateLecture(ctx context.Context, lecture domain.Lecture) (domain.Lecture, error)
	DeleteLecture(ctx context.Context, courseID string, lectureID string) error
}

type SaveLecture func(ctx context.Context, session domain.Session, lecture domain.Lecture) (domain.Lecture, error)
type DeleteLecture func(ctx context.Context, session domain.Session, courseID string, lectureID string) error

func BuildAddLecture(lectures lectureManager) SaveLecture {
	return func(ctx context.Context, session domain.Session, lecture domain.Lecture) (domain.Lecture, error) {
		if err := requireRole(session, domain.RoleAdmin, domain.RoleEmployee); err != nil {
			return domain.Lecture{}, err
		}
		return lectures.AddLecture(ctx, lecture)
	}
}

func BuildUpdateLecture(lectures lectureManager) SaveLecture {
	return func(ctx context.Context, session domain.Session, lecture domain.Lecture) (domain.Lecture, error) {
		if err := requireRole(session, domain.RoleAdmin, domain.RoleEmployee); err != nil {
			return domain.Lecture{}, err
		}
		return lectures.UpdateLecture(ctx, lecture)
	}
}

func BuildDeleteLecture(lectures lectureManager) DeleteLecture {
	return func(ctx context.Context, session domain.Session, courseID string, lectureID string) error {
		if err := requireRole(session, domain.RoleAdmin, domain.RoleEmployee); err != nil {
			return err
		}
		return lectures.DeleteLecture(ctx, courseID, lectureID)
	}
}
