package app

import (
	"context"

	"github.com/courselight/courselight/internal/domain"
)

type userManager interface {
	GetUsers(ctx context.Context) ([]domain.User, error)
	UpdateUserRole(ctx context.Context, userID string, role domain.UserRole) (domain.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

type GetUsers func(ctx context.Context, session domain.Session) ([]domain.User, error)
type UpdateUserRole func(ctx context.Context, session domain.Session, userID string, role domain.UserRole) (domain.User, error)
type DeleteUser func(ctx context.Context, session domain.Session, userID string) error

func BuildGetUsers(users userManager) GetUsers {
	return func(ctx context.Context, session domain.Session) ([]domain.User, error) {
		if err := requireRole(session, domain.RoleAdmin); err != nil {
			return nil, err
		}
		return users.GetUsers(ctx)
	}
}

func BuildUpdateUserRole(users userManager) UpdateUserRole {
	return func(ctx context.Context, session domain.Session, userID string, role domain.UserRole) (domain.User, error) {
		if err := requireRole(session, domain.RoleAdmin); err != nil {
			return domain.User{}, err
		}
		return users.UpdateUserRole(ctx, userID, role)
	}
}

func BuildDeleteUser(users userManager) DeleteUser {
	return func(ctx context.Context, session domain.Session, userID string) error {
		if err := requireRole(session, domain.RoleAdmin); err != nil {
			return err
		}
		return users.DeleteUser(ctx, userID)
	}
}
