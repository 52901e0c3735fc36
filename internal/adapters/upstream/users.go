package upstream

import (
	"context"
	"fmt"

	"github.com/courselight/courselight/internal/domain"
)

func (c *Client) GetUsers(ctx context.Context) ([]domain.User, error) {
	wireUsers, err := c.users.Get(ctx, struct{}{})
	if err != nil {
		return nil, translateError(err)
	}

	users := make([]domain.User, 0, len(wireUsers))
	for _, wireUser := range wireUsers {
		user, err := wireUser.toDomain()
		if err != nil {
			return nil, fmt.Errorf("invalid user in list: %w", err)
		}
		users = append(users, user)
	}
	return users, nil
}

func (c *Client) UpdateUserRole(ctx context.Context, userID string, role domain.UserRole) (domain.User, error) {
	result, err := c.updateUserRole.Do(ctx, updateUserRoleArgs{UserID: userID, Role: string(role)})
	if err != nil {
		return domain.User{}, translateError(err)
	}

	user, err := result.toDomain()
	if err != nil {
		return domain.User{}, fmt.Errorf("invalid user in response: %w", err)
	}
	return user, nil
}

func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	if _, err := c.deleteUser.Do(ctx, userID); err != nil {
		return translateError(err)
	}
	return nil
}
