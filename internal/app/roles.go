package app

import (
	"fmt"

	"github.com/courselight/courselight/internal/domain"
)

func requireRole(session domain.Session, roles ...domain.UserRole) error {
	if !session.Authenticated() {
		return domain.ErrNotAuthenticated
	}
	for _, role := range roles {
		if session.Role == role {
			return nil
		}
	}
	return fmt.Errorf("%w: role %s is not allowed", domain.ErrAccessDenied, session.Role)
}
