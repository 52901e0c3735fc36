package domain

import "time"

type UserRole string

const (
	RoleStudent  UserRole = "student"
	RoleEmployee UserRole = "employee"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	ID        string
	Name      string
	Email     string
	Role      UserRole
	CreatedAt time.Time
}

// Session is the caller identity the gateway forwards to the upstream API.
// An empty UserID means the caller is not authenticated.
type Session struct {
	UserID string
	Role   UserRole
}

func (s Session) Authenticated() bool {
	return s.UserID != ""
}
